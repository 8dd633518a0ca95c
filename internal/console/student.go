package console

import (
	"context"
	"errors"
	"log/slog"

	appI18n "github.com/pavelanni/examhall/internal/i18n"
	"github.com/pavelanni/examhall/internal/model"
	"github.com/pavelanni/examhall/internal/school"
)

func (s *Session) takeExam(ctx context.Context, st *model.Student) error {
	subject, err := s.chooseSubject(ctx)
	if err != nil || subject == nil {
		return err
	}
	exams := subject.Exams()
	if len(exams) == 0 {
		s.println(appI18n.T(ctx, "NoExams"))
		return nil
	}
	s.println(appI18n.Tp(ctx, "ExamsAvailable", len(exams)))
	for i, e := range exams {
		s.println(appI18n.Td(ctx, "ExamListItem", map[string]any{
			"N":        i + 1,
			"Kind":     e.Kind().Title(),
			"Duration": e.Duration().String(),
		}))
	}

	n, err := s.readInt(ctx, appI18n.T(ctx, "EnterExamNumber"))
	if err != nil {
		return err
	}
	// Exams are numbered from 1 on screen.
	exam, err := s.school.Exam(subject.ID(), n-1)
	if err != nil {
		s.println(appI18n.T(ctx, "InvalidExamNumber"))
		return nil
	}
	if err := exam.Show(s.out); err != nil {
		return err
	}

	answers := make([]int, exam.QuestionCount())
	for i := range answers {
		if answers[i], err = s.readInt(ctx, appI18n.Td(ctx, "EnterAnswer", map[string]any{"N": i + 1})); err != nil {
			return err
		}
	}

	g, err := s.school.TakeExam(ctx, st, subject.ID(), n-1, answers)
	if errors.Is(err, school.ErrLedger) {
		slog.Error("attempt graded but not recorded", "exam_id", exam.ID(), "error", err)
		err = nil
	}
	if err != nil {
		s.println(appI18n.Td(ctx, "SubmissionRejected", map[string]any{"Error": err.Error()}))
		return nil
	}
	s.printFeedback(ctx, g.Feedback)
	s.println(appI18n.Td(ctx, "YourScore", map[string]any{
		"Score": formatScore(g.Score),
		"Max":   formatScore(g.MaxScore),
	}))
	return nil
}

func (s *Session) printFeedback(ctx context.Context, feedback []model.Feedback) {
	for _, f := range feedback {
		switch {
		case f.Correct:
			s.println(appI18n.Td(ctx, "AnswerCorrect", map[string]any{"N": f.Question, "Text": f.ChosenText}))
		case f.ChosenText != "":
			s.println(appI18n.Td(ctx, "AnswerWrongChosen", map[string]any{
				"N": f.Question, "Chosen": f.ChosenText, "Text": f.CorrectText,
			}))
		default:
			s.println(appI18n.Td(ctx, "AnswerWrong", map[string]any{"N": f.Question, "Text": f.CorrectText}))
		}
	}
}

func (s *Session) showGrades(ctx context.Context, st *model.Student) {
	s.printGrades(ctx, s.school.ShowGrades(st))
}

func (s *Session) printGrades(ctx context.Context, grades []model.Result) {
	if len(grades) == 0 {
		s.println(appI18n.T(ctx, "NoGrades"))
		return
	}
	for _, r := range grades {
		s.println(appI18n.Td(ctx, "GradeLine", map[string]any{
			"Subject": r.SubjectName,
			"Score":   formatScore(r.Score),
		}))
	}
}
