package model

import (
	"fmt"
	"math"
	"time"
)

// Build turns the authoring input into a question of the requested variant.
func (in QuestionImport) Build() (Question, error) {
	kind, err := ParseQuestionKind(in.Type)
	if err != nil {
		return nil, err
	}
	var q Question
	switch kind {
	case KindTrueFalse:
		tf, err := NewTrueFalse(in.Header, in.Body, in.Mark, in.CorrectAnswerID)
		if err != nil {
			return nil, err
		}
		q = tf
	case KindMultipleChoice:
		mc, err := NewMultipleChoiceFromChoices(in.Header, in.Body, in.Mark, in.Choices, in.CorrectAnswerID)
		if err != nil {
			return nil, err
		}
		q = mc
	}
	return q, nil
}

// Build assembles the exam for subject without adding it there.
func (in ExamImport) Build(subject *Subject) (*Exam, error) {
	kind, err := ParseExamKind(in.Type)
	if err != nil {
		return nil, err
	}
	if !(in.DurationHours > 0) || math.IsInf(in.DurationHours, 1) {
		return nil, invalidSpec("exam duration must be positive, got %v hours", in.DurationHours)
	}
	questions := make([]Question, 0, len(in.Questions))
	for i, qi := range in.Questions {
		q, err := qi.Build()
		if err != nil {
			return nil, fmt.Errorf("question %d: %w", i+1, err)
		}
		questions = append(questions, q)
	}
	return NewExam(kind, time.Duration(in.DurationHours*float64(time.Hour)), subject, questions)
}
