package model

import (
	"errors"
	"math"
	"testing"
)

func mathImport() ExamImport {
	return ExamImport{
		SubjectID:     1,
		DurationHours: 1.5,
		Type:          "final",
		Questions: []QuestionImport{
			{Type: "true_false", Header: "Q1", Body: "2+2=4", Mark: 5, CorrectAnswerID: 1},
			{Type: "multiple_choice", Header: "Q2", Body: "Capital?", Mark: 10, Choices: []string{"Paris", "London", "Berlin"}, CorrectAnswerID: 2},
		},
	}
}

func TestTeacherCreateExam(t *testing.T) {
	subjects := []*Subject{NewSubject(1, "Math"), NewSubject(2, "Science")}
	teacher := NewTeacher(1, "teacher1", "")

	exam, _, err := teacher.CreateExam(subjects, mathImport())
	if err != nil {
		t.Fatalf("CreateExam: %v", err)
	}
	if exam.QuestionCount() != 2 || exam.MaxScore() != 15 {
		t.Errorf("unexpected exam: %d questions, max %v", exam.QuestionCount(), exam.MaxScore())
	}
	if exam.Duration().Minutes() != 90 {
		t.Errorf("duration = %s, want 1h30m", exam.Duration())
	}
	if subjects[0].ExamCount() != 1 {
		t.Errorf("exam not attached to subject")
	}
	if _, ok := exam.Questions()[0].(*TrueFalse); !ok {
		t.Errorf("first question has type %T", exam.Questions()[0])
	}
}

func TestTeacherCreateExamErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ExamImport)
		want   error
	}{
		{"unknown subject", func(in *ExamImport) { in.SubjectID = 9 }, ErrSubjectNotFound},
		{"unknown exam type", func(in *ExamImport) { in.Type = "quiz" }, ErrInvalidSpec},
		{"unknown question type", func(in *ExamImport) { in.Questions[0].Type = "essay" }, ErrInvalidSpec},
		{"bad correct id", func(in *ExamImport) { in.Questions[1].CorrectAnswerID = 4 }, ErrInvalidSpec},
		{"no choices", func(in *ExamImport) { in.Questions[1].Choices = nil }, ErrInvalidSpec},
		{"zero duration", func(in *ExamImport) { in.DurationHours = 0 }, ErrInvalidSpec},
		{"NaN duration", func(in *ExamImport) { in.DurationHours = math.NaN() }, ErrInvalidSpec},
		{"infinite duration", func(in *ExamImport) { in.DurationHours = math.Inf(1) }, ErrInvalidSpec},
		{"NaN mark", func(in *ExamImport) { in.Questions[0].Mark = math.NaN() }, ErrInvalidSpec},
		{"no questions", func(in *ExamImport) { in.Questions = nil }, ErrInvalidSpec},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subjects := []*Subject{NewSubject(1, "Math")}
			in := mathImport()
			tt.mutate(&in)
			_, _, err := NewTeacher(1, "t", "").CreateExam(subjects, in)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if subjects[0].ExamCount() != 0 {
				t.Error("invalid exam was attached to the subject")
			}
		})
	}
}

func TestStudentResultsKeyedByExamID(t *testing.T) {
	subjects := []*Subject{NewSubject(1, "Math")}
	exam, _, err := NewTeacher(1, "t", "").CreateExam(subjects, mathImport())
	if err != nil {
		t.Fatalf("CreateExam: %v", err)
	}
	student := NewStudent(1, "student1", "")

	if _, err := student.TakeExam(exam, []int{1, 2}); err != nil {
		t.Fatalf("TakeExam: %v", err)
	}
	// Same exam again: last attempt wins.
	if _, err := student.TakeExam(exam, []int{1, 1}); err != nil {
		t.Fatalf("TakeExam: %v", err)
	}
	r, ok := student.Result(exam.ID())
	if !ok || r.Score != 5 {
		t.Fatalf("expected overwritten score 5, got %+v (found %v)", r, ok)
	}
	if student.ResultCount() != 1 {
		t.Fatalf("expected 1 result, got %d", student.ResultCount())
	}

	// A structurally identical exam is a separate entry.
	twin := exam.Clone()
	if _, err := student.TakeExam(twin, []int{1, 2}); err != nil {
		t.Fatalf("TakeExam twin: %v", err)
	}
	grades := student.ShowGrades()
	if len(grades) != 2 {
		t.Fatalf("expected 2 results, got %d", len(grades))
	}
	if grades[0].ExamID != exam.ID() || grades[0].Score != 5 {
		t.Errorf("unexpected first result %+v", grades[0])
	}
	if grades[1].ExamID != twin.ID() || grades[1].Score != 15 || grades[1].SubjectName != "Math" {
		t.Errorf("unexpected second result %+v", grades[1])
	}
}

func TestStudentTakeExamMismatchRecordsNothing(t *testing.T) {
	subjects := []*Subject{NewSubject(1, "Math")}
	exam, _, _ := NewTeacher(1, "t", "").CreateExam(subjects, mathImport())
	student := NewStudent(1, "s", "")

	if _, err := student.TakeExam(exam, []int{1}); !errors.Is(err, ErrAnswerCountMismatch) {
		t.Fatalf("expected ErrAnswerCountMismatch, got %v", err)
	}
	if student.ResultCount() != 0 {
		t.Error("failed attempt was recorded")
	}
}

func TestShowStudentGrades(t *testing.T) {
	subjects := []*Subject{NewSubject(1, "Math"), NewSubject(2, "Science")}
	teacher := NewTeacher(1, "t", "")
	math, _, _ := teacher.CreateExam(subjects, mathImport())
	in := mathImport()
	in.SubjectID = 2
	science, _, _ := teacher.CreateExam(subjects, in)

	alice := NewStudent(1, "alice", "")
	bob := NewStudent(2, "bob", "")
	_, _ = alice.TakeExam(math, []int{1, 2})
	_, _ = bob.TakeExam(science, []int{2, 2})
	_, _ = bob.TakeExam(math, []int{2, 1})

	got := teacher.ShowStudentGrades([]*Student{alice, bob})
	want := []struct {
		student, subject string
		score            float64
	}{
		{"alice", "Math", 15},
		{"bob", "Science", 10},
		{"bob", "Math", 0},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d lines, got %d", len(want), len(got))
	}
	for i, w := range want {
		if got[i].StudentName != w.student || got[i].SubjectName != w.subject || got[i].Score != w.score {
			t.Errorf("line %d = %+v, want %+v", i, got[i], w)
		}
	}
}

func TestParseUserRole(t *testing.T) {
	if r, err := ParseUserRole("1"); err != nil || r != UserRoleTeacher {
		t.Errorf("ParseUserRole(1) = %q, %v", r, err)
	}
	if r, err := ParseUserRole("Student"); err != nil || r != UserRoleStudent {
		t.Errorf("ParseUserRole(Student) = %q, %v", r, err)
	}
	if _, err := ParseUserRole("admin"); !errors.Is(err, ErrAuthFailure) {
		t.Errorf("expected ErrAuthFailure, got %v", err)
	}
}
