package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/pavelanni/examhall/internal/model"
	"github.com/pavelanni/examhall/internal/school"
)

type paperQuestion struct {
	Number  int                `json:"number"`
	Kind    model.QuestionKind `json:"kind"`
	Header  string             `json:"header"`
	Body    string             `json:"body"`
	Mark    float64            `json:"mark"`
	Answers []model.Answer     `json:"answers"`
}

type examPaper struct {
	examSummary
	Subject   string          `json:"subject"`
	Questions []paperQuestion `json:"questions"`
}

// handleExamPaper returns the exam without its correct answers.
func (h *Handler) handleExamPaper(w http.ResponseWriter, r *http.Request) {
	subjectID, index, err := examRef(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	exam, err := h.school.Exam(subjectID, index)
	if err != nil {
		writeError(w, r, err)
		return
	}

	paper := examPaper{
		examSummary: summarize(index, exam),
		Subject:     exam.Subject().Name(),
	}
	for i, q := range exam.Questions() {
		paper.Questions = append(paper.Questions, paperQuestion{
			Number:  i + 1,
			Kind:    q.Kind(),
			Header:  q.Header(),
			Body:    q.Body(),
			Mark:    q.Mark(),
			Answers: q.Answers(),
		})
	}
	writeJSON(w, http.StatusOK, paper)
}

type attemptRequest struct {
	Answers []int `json:"answers"`
}

func (h *Handler) handleAttempt(w http.ResponseWriter, r *http.Request) {
	student, ok := currentStudent(r)
	if !ok {
		writeError(w, r, model.ErrAuthFailure)
		return
	}
	subjectID, index, err := examRef(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req attemptRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	g, err := h.school.TakeExam(r.Context(), student, subjectID, index, req.Answers)
	if errors.Is(err, school.ErrLedger) {
		slog.Error("attempt graded but not recorded", "exam_id", g.ExamID, "error", err)
		err = nil
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, g)
}

func (h *Handler) handleGrades(w http.ResponseWriter, r *http.Request) {
	student, ok := currentStudent(r)
	if !ok {
		writeError(w, r, model.ErrAuthFailure)
		return
	}
	writeJSON(w, http.StatusOK, h.school.ShowGrades(student))
}
