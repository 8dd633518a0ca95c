// Package handler serves the examination hall as a JSON API over chi.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	appI18n "github.com/pavelanni/examhall/internal/i18n"
	"github.com/pavelanni/examhall/internal/model"
	"github.com/pavelanni/examhall/internal/school"
)

// Handler holds shared dependencies for HTTP handlers.
type Handler struct {
	school *school.School
}

// New creates a new Handler.
func New(s *school.School) *Handler {
	return &Handler{school: s}
}

// Routes registers all HTTP routes. Every route requires HTTP Basic
// credentials; the path prefix decides which role they are checked against.
func (h *Handler) Routes(r chi.Router) {
	r.With(h.requireRole(model.UserRoleTeacher, model.UserRoleStudent)).Get("/subjects", h.handleSubjects)

	r.Route("/teacher", func(r chi.Router) {
		r.Use(h.requireRole(model.UserRoleTeacher))
		r.Post("/exams", h.handleCreateExam)
		r.Get("/grades", h.handleStudentGrades)
	})

	r.Route("/student", func(r chi.Router) {
		r.Use(h.requireRole(model.UserRoleStudent))
		r.Get("/subjects/{subjectID}/exams/{index}", h.handleExamPaper)
		r.Post("/subjects/{subjectID}/exams/{index}/attempts", h.handleAttempt)
		r.Get("/grades", h.handleGrades)
	})
}

type examSummary struct {
	Index         int            `json:"index"`
	ID            model.ExamID   `json:"id"`
	SubjectID     int            `json:"subject_id"`
	Kind          model.ExamKind `json:"kind"`
	DurationHours float64        `json:"duration_hours"`
	QuestionCount int            `json:"question_count"`
	MaxScore      float64        `json:"max_score"`
}

func summarize(index int, e *model.Exam) examSummary {
	return examSummary{
		Index:         index,
		ID:            e.ID(),
		SubjectID:     e.Subject().ID(),
		Kind:          e.Kind(),
		DurationHours: e.Duration().Hours(),
		QuestionCount: e.QuestionCount(),
		MaxScore:      e.MaxScore(),
	}
}

type subjectView struct {
	ID    int           `json:"id"`
	Name  string        `json:"name"`
	Exams []examSummary `json:"exams"`
}

func (h *Handler) handleSubjects(w http.ResponseWriter, r *http.Request) {
	subjects := h.school.Subjects()
	out := make([]subjectView, 0, len(subjects))
	for _, s := range subjects {
		v := subjectView{ID: s.ID(), Name: s.Name(), Exams: []examSummary{}}
		for i, e := range s.Exams() {
			v.Exams = append(v.Exams, summarize(i, e))
		}
		out = append(out, v)
	}
	writeJSON(w, http.StatusOK, out)
}

// examRef reads the subject id and zero-based exam index from the path.
func examRef(r *http.Request) (subjectID, index int, err error) {
	if subjectID, err = strconv.Atoi(chi.URLParam(r, "subjectID")); err != nil {
		return 0, 0, model.ErrSubjectNotFound
	}
	if index, err = strconv.Atoi(chi.URLParam(r, "index")); err != nil {
		return 0, 0, model.ErrExamIndexOutOfRange
	}
	return subjectID, index, nil
}

type errorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

var errBadRequest = errors.New("bad request")

// writeError maps a sentinel to its status code and a localized message.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, msgID := http.StatusInternalServerError, "ErrInternal"
	switch {
	case errors.Is(err, model.ErrNotFound):
		status, msgID = http.StatusNotFound, "ErrNotFound"
	case errors.Is(err, model.ErrInvalidSpec):
		status, msgID = http.StatusUnprocessableEntity, "ErrInvalidSpec"
	case errors.Is(err, model.ErrAnswerCountMismatch):
		status, msgID = http.StatusUnprocessableEntity, "ErrAnswerCountMismatch"
	case errors.Is(err, model.ErrAuthFailure):
		status, msgID = http.StatusUnauthorized, "ErrAuthFailure"
	case errors.Is(err, errBadRequest):
		status, msgID = http.StatusBadRequest, "ErrBadRequest"
	}
	resp := errorResponse{Error: appI18n.T(r.Context(), msgID)}
	if status == http.StatusInternalServerError {
		slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	} else {
		resp.Detail = err.Error()
	}
	writeJSON(w, status, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Join(errBadRequest, err)
	}
	return nil
}
