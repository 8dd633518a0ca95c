package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/pavelanni/examhall/internal/model"
	"github.com/pavelanni/examhall/internal/school"
)

func (h *Handler) handleCreateExam(w http.ResponseWriter, r *http.Request) {
	teacher, ok := currentTeacher(r)
	if !ok {
		writeError(w, r, model.ErrAuthFailure)
		return
	}
	var in model.ExamImport
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, err)
		return
	}

	exam, index, err := h.school.CreateExam(r.Context(), teacher, in)
	if errors.Is(err, school.ErrLedger) {
		slog.Error("exam created but not recorded", "exam_id", exam.ID(), "error", err)
		err = nil
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, summarize(index, exam))
}

func (h *Handler) handleStudentGrades(w http.ResponseWriter, r *http.Request) {
	teacher, ok := currentTeacher(r)
	if !ok {
		writeError(w, r, model.ErrAuthFailure)
		return
	}
	grades := h.school.ShowStudentGrades(teacher)
	if grades == nil {
		grades = []model.StudentGrade{}
	}
	writeJSON(w, http.StatusOK, grades)
}
