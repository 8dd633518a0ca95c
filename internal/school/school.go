// Package school routes authenticated users to the exam model. It owns the
// subject catalog and the user list for the life of the process and keeps
// grading logic out of the console and HTTP layers.
package school

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"golang.org/x/crypto/bcrypt"

	"github.com/pavelanni/examhall/internal/model"
)

// ErrLedger marks failures of the optional grade ledger. The in-memory change
// has already been applied when it is returned.
var ErrLedger = errors.New("grade ledger")

// Ledger records created exams and graded attempts outside the process.
type Ledger interface {
	RecordExam(ctx context.Context, e *model.Exam) error
	RecordAttempt(ctx context.Context, a model.Attempt) (int64, error)
}

// School holds the subject catalog and users.
type School struct {
	subjects []*model.Subject
	teachers []*model.Teacher
	students []*model.Student
	ledger   Ledger
}

// Option configures a School.
type Option func(*School)

// WithLedger records exams and attempts in l.
func WithLedger(l Ledger) Option {
	return func(s *School) { s.ledger = l }
}

// New returns a School over the given subjects and users. Subjects are kept
// ordered by id.
func New(subjects []*model.Subject, users []model.User, opts ...Option) *School {
	s := &School{subjects: slices.Clone(subjects)}
	slices.SortStableFunc(s.subjects, (*model.Subject).Compare)
	for _, u := range users {
		switch u := u.(type) {
		case *model.Teacher:
			s.teachers = append(s.teachers, u)
		case *model.Student:
			s.students = append(s.students, u)
		}
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Authenticate returns the user whose username, password and role all match.
func (s *School) Authenticate(username, password string, role model.UserRole) (model.User, error) {
	for _, u := range s.users() {
		if u.Username() != username || u.Role() != role {
			continue
		}
		if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash()), []byte(password)); err != nil {
			break
		}
		slog.Info("user logged in", "username", username, "role", role)
		return u, nil
	}
	slog.Warn("login failed", "username", username, "role", role)
	return nil, model.ErrAuthFailure
}

func (s *School) users() []model.User {
	out := make([]model.User, 0, len(s.teachers)+len(s.students))
	for _, t := range s.teachers {
		out = append(out, t)
	}
	for _, st := range s.students {
		out = append(out, st)
	}
	return out
}

// Subjects returns the catalog ordered by subject id.
func (s *School) Subjects() []*model.Subject {
	return slices.Clone(s.subjects)
}

// Teachers returns all teachers.
func (s *School) Teachers() []*model.Teacher {
	return slices.Clone(s.teachers)
}

// Students returns all students.
func (s *School) Students() []*model.Student {
	return slices.Clone(s.students)
}

// FindSubject looks a subject up by id.
func (s *School) FindSubject(id int) (*model.Subject, error) {
	return model.FindSubject(s.subjects, id)
}

// Exam returns the exam at zero-based examIndex of a subject.
func (s *School) Exam(subjectID, examIndex int) (*model.Exam, error) {
	subject, err := s.FindSubject(subjectID)
	if err != nil {
		return nil, err
	}
	return subject.ExamAt(examIndex)
}

// CreateExam builds an exam on behalf of teacher, attaches it to its subject
// and returns it with its zero-based index in that subject.
func (s *School) CreateExam(ctx context.Context, teacher *model.Teacher, in model.ExamImport) (*model.Exam, int, error) {
	exam, index, err := teacher.CreateExam(s.subjects, in)
	if err != nil {
		slog.Warn("exam rejected", "teacher", teacher.Username(), "subject_id", in.SubjectID, "error", err)
		return nil, 0, err
	}
	slog.Info("created exam",
		"exam_id", exam.ID(),
		"teacher", teacher.Username(),
		"subject", exam.Subject().Name(),
		"kind", exam.Kind(),
		"questions", exam.QuestionCount(),
		"index", index,
	)
	if s.ledger != nil {
		if err := s.ledger.RecordExam(ctx, exam); err != nil {
			return exam, index, fmt.Errorf("%w: record exam: %w", ErrLedger, err)
		}
	}
	return exam, index, nil
}

// TakeExam grades answers for the exam at examIndex of a subject and records
// the result for student.
func (s *School) TakeExam(ctx context.Context, student *model.Student, subjectID, examIndex int, answers []int) (model.Grade, error) {
	exam, err := s.Exam(subjectID, examIndex)
	if err != nil {
		return model.Grade{}, err
	}
	g, err := student.TakeExam(exam, answers)
	if err != nil {
		slog.Warn("submission rejected", "student", student.Username(), "exam_id", exam.ID(), "error", err)
		return model.Grade{}, err
	}
	slog.Info("graded exam",
		"student", student.Username(),
		"exam_id", exam.ID(),
		"subject", exam.Subject().Name(),
		"score", g.Score,
		"max_score", g.MaxScore,
	)
	if s.ledger != nil {
		_, err := s.ledger.RecordAttempt(ctx, model.Attempt{
			StudentID:   student.ID(),
			StudentName: student.Username(),
			ExamID:      exam.ID(),
			SubjectID:   exam.Subject().ID(),
			SubjectName: exam.Subject().Name(),
			Kind:        exam.Kind(),
			Score:       g.Score,
			MaxScore:    g.MaxScore,
		})
		if err != nil {
			return g, fmt.Errorf("%w: record attempt: %w", ErrLedger, err)
		}
	}
	return g, nil
}

// ShowGrades returns the student's latest result per exam.
func (s *School) ShowGrades(student *model.Student) []model.Result {
	return student.ShowGrades()
}

// ShowStudentGrades returns every student's results for a teacher.
func (s *School) ShowStudentGrades(teacher *model.Teacher) []model.StudentGrade {
	return teacher.ShowStudentGrades(s.students)
}
