package model

import (
	"fmt"
	"sync"
	"time"
)

type account struct {
	id           int
	username     string
	passwordHash string
}

func (a *account) ID() int { return a.id }

func (a *account) Username() string { return a.username }

// PasswordHash is the bcrypt hash of the user's password.
func (a *account) PasswordHash() string { return a.passwordHash }

// Teacher authors exams.
type Teacher struct {
	account
}

// NewTeacher returns a teacher with a bcrypt password hash.
func NewTeacher(id int, username, passwordHash string) *Teacher {
	return &Teacher{account{id: id, username: username, passwordHash: passwordHash}}
}

func (*Teacher) Role() UserRole { return UserRoleTeacher }

// CreateExam builds an exam from in, appends it to its subject and returns
// it with its index there. Nothing is added when any part of in is invalid.
func (t *Teacher) CreateExam(subjects []*Subject, in ExamImport) (*Exam, int, error) {
	subject, err := FindSubject(subjects, in.SubjectID)
	if err != nil {
		return nil, 0, err
	}
	exam, err := in.Build(subject)
	if err != nil {
		return nil, 0, err
	}
	return exam, subject.AddExam(exam), nil
}

// StudentGrade is one line of a teacher's grade report.
type StudentGrade struct {
	StudentName string `json:"student_name"`
	Result
}

// ShowStudentGrades lists every recorded result of every student, students in
// the given order and each student's results in the order first taken.
func (t *Teacher) ShowStudentGrades(students []*Student) []StudentGrade {
	var out []StudentGrade
	for _, s := range students {
		for _, r := range s.ShowGrades() {
			out = append(out, StudentGrade{StudentName: s.Username(), Result: r})
		}
	}
	return out
}

// Result is a student's latest score on one exam.
type Result struct {
	ExamID      ExamID    `json:"exam_id"`
	SubjectID   int       `json:"subject_id"`
	SubjectName string    `json:"subject_name"`
	Kind        ExamKind  `json:"kind"`
	Score       float64   `json:"score"`
	MaxScore    float64   `json:"max_score"`
	TakenAt     time.Time `json:"taken_at"`
}

// Student takes exams and keeps their latest result per exam.
type Student struct {
	account

	mu      sync.Mutex
	results map[ExamID]Result
	order   []ExamID
}

// NewStudent returns a student with no results.
func NewStudent(id int, username, passwordHash string) *Student {
	return &Student{
		account: account{id: id, username: username, passwordHash: passwordHash},
		results: make(map[ExamID]Result),
	}
}

func (*Student) Role() UserRole { return UserRoleStudent }

// TakeExam evaluates answers against exam and records the score. Taking the
// same exam again replaces the earlier result.
func (s *Student) TakeExam(exam *Exam, answers []int) (Grade, error) {
	g, err := exam.Evaluate(answers)
	if err != nil {
		return Grade{}, fmt.Errorf("evaluate exam %s: %w", exam.ID(), err)
	}
	s.record(exam, g)
	return g, nil
}

func (s *Student) record(exam *Exam, g Grade) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, seen := s.results[exam.ID()]; !seen {
		s.order = append(s.order, exam.ID())
	}
	s.results[exam.ID()] = Result{
		ExamID:      exam.ID(),
		SubjectID:   exam.Subject().ID(),
		SubjectName: exam.Subject().Name(),
		Kind:        exam.Kind(),
		Score:       g.Score,
		MaxScore:    g.MaxScore,
		TakenAt:     time.Now(),
	}
}

// Result returns the recorded result for an exam.
func (s *Student) Result(id ExamID) (Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.results[id]
	return r, ok
}

// ShowGrades returns every recorded result in the order exams were first taken.
func (s *Student) ShowGrades() []Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Result, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.results[id])
	}
	return out
}

// ResultCount is the number of distinct exams the student has results for.
func (s *Student) ResultCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.order)
}
