package model

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ExamKind identifies an exam variant. Kinds differ in feedback, not in scoring.
type ExamKind string

const (
	// ExamFinal grades silently.
	ExamFinal ExamKind = "final"
	// ExamPractical grades with per-question feedback.
	ExamPractical ExamKind = "practical"
)

// ParseExamKind accepts kind names and the legacy menu numbers.
func ParseExamKind(s string) (ExamKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(ExamFinal), "1":
		return ExamFinal, nil
	case string(ExamPractical), "2":
		return ExamPractical, nil
	}
	return "", invalidSpec("unknown exam type %q", s)
}

// Title is the display name of the kind.
func (k ExamKind) Title() string {
	switch k {
	case ExamFinal:
		return "Final"
	case ExamPractical:
		return "Practical"
	}
	return string(k)
}

// ExamID is the surrogate identity of an exam instance. Results are keyed by
// it, so two exams with identical content are still distinct.
type ExamID string

// NewExamID returns a fresh random exam id.
func NewExamID() ExamID {
	return ExamID(uuid.NewString())
}

// Exam is an ordered set of questions for one subject.
type Exam struct {
	id        ExamID
	kind      ExamKind
	duration  time.Duration
	subject   *Subject
	questions []Question
	createdAt time.Time
}

// NewExam assembles an exam. The subject is a back-reference only; NewExam
// does not add the exam to it.
func NewExam(kind ExamKind, duration time.Duration, subject *Subject, questions []Question) (*Exam, error) {
	if kind != ExamFinal && kind != ExamPractical {
		return nil, invalidSpec("unknown exam type %q", kind)
	}
	if duration <= 0 {
		return nil, invalidSpec("exam duration must be positive, got %s", duration)
	}
	if subject == nil {
		return nil, invalidSpec("exam has no subject")
	}
	if len(questions) == 0 {
		return nil, invalidSpec("exam has no questions")
	}
	for i, q := range questions {
		if q == nil {
			return nil, invalidSpec("question %d is missing", i+1)
		}
	}
	return &Exam{
		id:        NewExamID(),
		kind:      kind,
		duration:  duration,
		subject:   subject,
		questions: slices.Clone(questions),
		createdAt: time.Now(),
	}, nil
}

func (e *Exam) ID() ExamID { return e.id }

func (e *Exam) Kind() ExamKind { return e.kind }

func (e *Exam) Duration() time.Duration { return e.duration }

// Subject is the non-owning back-reference to the exam's subject.
func (e *Exam) Subject() *Subject { return e.subject }

func (e *Exam) CreatedAt() time.Time { return e.createdAt }

// QuestionCount is always len(Questions()).
func (e *Exam) QuestionCount() int { return len(e.questions) }

// Questions returns the questions in exam order.
func (e *Exam) Questions() []Question {
	return slices.Clone(e.questions)
}

// MaxScore is the sum of all question marks.
func (e *Exam) MaxScore() float64 {
	var total float64
	for _, q := range e.questions {
		total += q.Mark()
	}
	return total
}

// Show writes the exam heading followed by every question in order.
func (e *Exam) Show(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "%s Exam for %s\nDuration: %s\nNumber of Questions: %d\n",
		e.kind.Title(), e.subject.Name(), e.duration, e.QuestionCount()); err != nil {
		return err
	}
	for _, q := range e.questions {
		if err := q.Display(w); err != nil {
			return err
		}
	}
	return nil
}

// Clone issues an independent copy of the exam with a new id. Questions are
// deep-copied. The clone points at a detached copy of the subject carrying only
// its id and name, so cloning an exam never walks the subject's exam list.
func (e *Exam) Clone() *Exam {
	return e.cloneFor(e.subject.detached())
}

func (e *Exam) cloneFor(subject *Subject) *Exam {
	qs := make([]Question, len(e.questions))
	for i, q := range e.questions {
		qs[i] = q.Clone()
	}
	return &Exam{
		id:        NewExamID(),
		kind:      e.kind,
		duration:  e.duration,
		subject:   subject,
		questions: qs,
		createdAt: time.Now(),
	}
}

func (e *Exam) String() string {
	return e.subject.Name()
}
