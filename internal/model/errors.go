package model

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a subject or exam lookup has no match.
	ErrNotFound = errors.New("not found")
	// ErrSubjectNotFound is returned when no subject has the requested id.
	ErrSubjectNotFound = fmt.Errorf("subject %w", ErrNotFound)
	// ErrExamIndexOutOfRange is returned when a subject has no exam at the requested position.
	ErrExamIndexOutOfRange = fmt.Errorf("exam index out of range: %w", ErrNotFound)
	// ErrInvalidSpec is returned for malformed question or exam authoring input.
	ErrInvalidSpec = errors.New("invalid spec")
	// ErrAnswerCountMismatch is returned when a submission does not have one answer per question.
	ErrAnswerCountMismatch = errors.New("answer count mismatch")
	// ErrAuthFailure is returned when credentials or role do not match a known user.
	ErrAuthFailure = errors.New("authentication failed")
)

func invalidSpec(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidSpec, fmt.Sprintf(format, args...))
}
