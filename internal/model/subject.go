package model

import (
	"cmp"
	"fmt"
	"slices"
	"sync"
)

// Subject is a named catalog of exams.
type Subject struct {
	id   int
	name string

	mu    sync.RWMutex
	exams []*Exam
}

// NewSubject returns a subject with no exams.
func NewSubject(id int, name string) *Subject {
	return &Subject{id: id, name: name}
}

func (s *Subject) ID() int { return s.id }

func (s *Subject) Name() string { return s.name }

// AddExam appends an exam and returns its zero-based index. Insertion order
// is kept and duplicates are not checked.
func (s *Subject) AddExam(e *Exam) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.exams = append(s.exams, e)
	return len(s.exams) - 1
}

// Exams returns the exams in the order they were added.
func (s *Subject) Exams() []*Exam {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.exams)
}

// ExamCount returns the number of exams added so far.
func (s *Subject) ExamCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.exams)
}

// ExamAt returns the exam at zero-based position i.
func (s *Subject) ExamAt(i int) (*Exam, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i < 0 || i >= len(s.exams) {
		return nil, fmt.Errorf("%w: subject %d has %d exams, asked for index %d",
			ErrExamIndexOutOfRange, s.id, len(s.exams), i)
	}
	return s.exams[i], nil
}

// Clone copies the subject together with its exams. Each cloned exam gets a
// new id and points back at the new subject.
func (s *Subject) Clone() *Subject {
	c := s.detached()
	for _, e := range s.Exams() {
		c.exams = append(c.exams, e.cloneFor(c))
	}
	return c
}

func (s *Subject) detached() *Subject {
	return NewSubject(s.id, s.name)
}

// Compare orders subjects by id.
func (s *Subject) Compare(other *Subject) int {
	return cmp.Compare(s.id, other.id)
}

func (s *Subject) String() string {
	return s.name
}

// FindSubject returns the first subject with the given id.
func FindSubject(subjects []*Subject, id int) (*Subject, error) {
	for _, s := range subjects {
		if s.id == id {
			return s, nil
		}
	}
	return nil, fmt.Errorf("%w: id %d", ErrSubjectNotFound, id)
}
