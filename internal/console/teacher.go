package console

import (
	"context"
	"errors"
	"log/slog"

	appI18n "github.com/pavelanni/examhall/internal/i18n"
	"github.com/pavelanni/examhall/internal/model"
	"github.com/pavelanni/examhall/internal/school"
)

func (s *Session) createExam(ctx context.Context, t *model.Teacher) error {
	subject, err := s.chooseSubject(ctx)
	if err != nil || subject == nil {
		return err
	}
	in := model.ExamImport{SubjectID: subject.ID()}
	if in.DurationHours, err = s.readFloat(ctx, appI18n.T(ctx, "EnterDuration")); err != nil {
		return err
	}
	count, err := s.readInt(ctx, appI18n.T(ctx, "EnterQuestionCount"))
	if err != nil {
		return err
	}
	for range count {
		q, err := s.readQuestion(ctx)
		if err != nil {
			return err
		}
		in.Questions = append(in.Questions, q)
	}
	kind, err := s.readExamKind(ctx)
	if err != nil {
		return err
	}
	in.Type = string(kind)

	exam, _, err := s.school.CreateExam(ctx, t, in)
	if errors.Is(err, school.ErrLedger) {
		slog.Error("exam created but not recorded", "exam_id", exam.ID(), "error", err)
		err = nil
	}
	if err != nil {
		s.println(appI18n.Td(ctx, "ExamRejected", map[string]any{"Error": err.Error()}))
		return nil
	}
	s.println(appI18n.Td(ctx, "ExamCreated", map[string]any{
		"Kind":    exam.Kind().Title(),
		"Count":   exam.QuestionCount(),
		"Subject": subject.Name(),
	}))
	return nil
}

func (s *Session) readQuestion(ctx context.Context) (model.QuestionImport, error) {
	var q model.QuestionImport
	for {
		line, err := s.readLine(ctx, appI18n.T(ctx, "EnterQuestionType"))
		if err != nil {
			return q, err
		}
		kind, err := model.ParseQuestionKind(line)
		if err == nil {
			q.Type = string(kind)
			break
		}
		s.println(appI18n.T(ctx, "InvalidQuestionType"))
	}

	var err error
	if q.Header, err = s.readLine(ctx, appI18n.T(ctx, "EnterHeader")); err != nil {
		return q, err
	}
	if q.Body, err = s.readLine(ctx, appI18n.T(ctx, "EnterBody")); err != nil {
		return q, err
	}
	if q.Mark, err = s.readFloat(ctx, appI18n.T(ctx, "EnterMark")); err != nil {
		return q, err
	}

	if q.Type == string(model.KindTrueFalse) {
		q.CorrectAnswerID, err = s.readInt(ctx, appI18n.T(ctx, "EnterTrueFalseAnswer"))
		return q, err
	}
	n, err := s.readInt(ctx, appI18n.T(ctx, "EnterChoiceCount"))
	if err != nil {
		return q, err
	}
	for i := range n {
		choice, err := s.readLine(ctx, appI18n.Td(ctx, "EnterChoiceText", map[string]any{"N": i + 1}))
		if err != nil {
			return q, err
		}
		q.Choices = append(q.Choices, choice)
	}
	q.CorrectAnswerID, err = s.readInt(ctx, appI18n.T(ctx, "EnterCorrectAnswer"))
	return q, err
}

func (s *Session) readExamKind(ctx context.Context) (model.ExamKind, error) {
	for {
		line, err := s.readLine(ctx, appI18n.T(ctx, "EnterExamType"))
		if err != nil {
			return "", err
		}
		kind, err := model.ParseExamKind(line)
		if err == nil {
			return kind, nil
		}
		s.println(appI18n.T(ctx, "InvalidChoice"))
	}
}

// showStudentGrades prints every student followed by their grade lines.
func (s *Session) showStudentGrades(ctx context.Context) {
	students := s.school.Students()
	if len(students) == 0 {
		s.println(appI18n.T(ctx, "NoGrades"))
		return
	}
	for _, st := range students {
		s.println(appI18n.Td(ctx, "StudentHeader", map[string]any{"Name": st.Username()}))
		s.printGrades(ctx, s.school.ShowGrades(st))
	}
}
