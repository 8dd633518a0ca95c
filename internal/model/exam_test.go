package model

import (
	"errors"
	"strings"
	"testing"
	"time"
)

// newMathExam builds the reference exam: a true/false question worth 5 with
// "True" correct and a multiple choice question worth 10 with "London" correct.
func newMathExam(t *testing.T, kind ExamKind) (*Subject, *Exam) {
	t.Helper()
	math := NewSubject(1, "Math")
	tf, err := NewTrueFalse("Q1", "Two plus two is four", 5, TrueAnswerID)
	if err != nil {
		t.Fatalf("NewTrueFalse: %v", err)
	}
	mc, err := NewMultipleChoiceFromChoices("Q2", "Capital of England?", 10, []string{"Paris", "London", "Berlin"}, 2)
	if err != nil {
		t.Fatalf("NewMultipleChoiceFromChoices: %v", err)
	}
	exam, err := NewExam(kind, time.Hour, math, []Question{tf, mc})
	if err != nil {
		t.Fatalf("NewExam: %v", err)
	}
	math.AddExam(exam)
	return math, exam
}

func TestEvaluateScenario(t *testing.T) {
	tests := []struct {
		name    string
		answers []int
		want    float64
	}{
		{"all correct", []int{1, 2}, 15},
		{"all wrong", []int{2, 1}, 0},
		{"first correct", []int{1, 1}, 5},
		{"second correct", []int{2, 2}, 10},
		{"unknown ids", []int{9, 0}, 0},
	}

	for _, kind := range []ExamKind{ExamFinal, ExamPractical} {
		_, exam := newMathExam(t, kind)
		for _, tt := range tests {
			t.Run(string(kind)+"/"+tt.name, func(t *testing.T) {
				g, err := exam.Evaluate(tt.answers)
				if err != nil {
					t.Fatalf("Evaluate: %v", err)
				}
				if g.Score != tt.want {
					t.Errorf("score = %v, want %v", g.Score, tt.want)
				}
				if g.MaxScore != 15 {
					t.Errorf("max score = %v, want 15", g.MaxScore)
				}
			})
		}
	}
}

func TestEvaluateFullAndZeroMarks(t *testing.T) {
	subject := NewSubject(2, "Science")
	var questions []Question
	var correct, wrong []int
	var total float64
	for i := 1; i <= 6; i++ {
		mark := float64(i) * 1.5
		total += mark
		if i%2 == 0 {
			q, err := NewTrueFalse("tf", "b", mark, FalseAnswerID)
			if err != nil {
				t.Fatalf("NewTrueFalse: %v", err)
			}
			questions = append(questions, q)
			correct = append(correct, FalseAnswerID)
			wrong = append(wrong, TrueAnswerID)
			continue
		}
		q, err := NewMultipleChoiceFromChoices("mc", "b", mark, []string{"a", "b", "c", "d"}, i%4+1)
		if err != nil {
			t.Fatalf("NewMultipleChoiceFromChoices: %v", err)
		}
		questions = append(questions, q)
		correct = append(correct, i%4+1)
		wrong = append(wrong, (i%4+1)%4+1)
	}
	exam, err := NewExam(ExamFinal, 90*time.Minute, subject, questions)
	if err != nil {
		t.Fatalf("NewExam: %v", err)
	}

	g, err := exam.Evaluate(correct)
	if err != nil {
		t.Fatalf("Evaluate correct: %v", err)
	}
	if g.Score != total {
		t.Errorf("all correct score = %v, want %v", g.Score, total)
	}
	g, err = exam.Evaluate(wrong)
	if err != nil {
		t.Fatalf("Evaluate wrong: %v", err)
	}
	if g.Score != 0 {
		t.Errorf("all wrong score = %v, want 0", g.Score)
	}
}

func TestEvaluateAnswerCountMismatch(t *testing.T) {
	_, exam := newMathExam(t, ExamFinal)
	for _, answers := range [][]int{nil, {1}, {1, 2, 3}} {
		if _, err := exam.Evaluate(answers); !errors.Is(err, ErrAnswerCountMismatch) {
			t.Errorf("Evaluate(%v) error = %v, want ErrAnswerCountMismatch", answers, err)
		}
	}
}

func TestEvaluateFeedback(t *testing.T) {
	_, final := newMathExam(t, ExamFinal)
	g, err := final.Evaluate([]int{2, 1})
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if len(g.Feedback) != 0 {
		t.Errorf("final exam produced %d feedback entries", len(g.Feedback))
	}

	_, practical := newMathExam(t, ExamPractical)
	g, err = practical.Evaluate([]int{2, 1})
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if g.Score != 0 {
		t.Errorf("score = %v, want 0", g.Score)
	}
	if len(g.Feedback) != 2 {
		t.Fatalf("expected 2 feedback entries, got %d", len(g.Feedback))
	}
	fb := g.Feedback[1]
	if fb.Question != 2 || fb.Correct {
		t.Errorf("unexpected feedback %+v", fb)
	}
	if fb.ChosenText != "Paris" {
		t.Errorf("chosen text = %q, want Paris", fb.ChosenText)
	}
	if fb.CorrectText != "London" {
		t.Errorf("correct text = %q, want London", fb.CorrectText)
	}
	if !strings.Contains(fb.String(), "London") {
		t.Errorf("feedback message %q does not name the correct answer", fb.String())
	}

	g, _ = practical.Evaluate([]int{1, 7})
	if !g.Feedback[0].Correct || g.Feedback[0].ChosenText != "True" {
		t.Errorf("unexpected first feedback %+v", g.Feedback[0])
	}
	if g.Feedback[1].ChosenText != "" {
		t.Errorf("unknown answer id should have no text, got %q", g.Feedback[1].ChosenText)
	}
}

func TestNewExamValidation(t *testing.T) {
	subject := NewSubject(1, "Math")
	q, _ := NewTrueFalse("h", "b", 1, TrueAnswerID)

	tests := []struct {
		name      string
		kind      ExamKind
		duration  time.Duration
		subject   *Subject
		questions []Question
	}{
		{"unknown kind", ExamKind("midterm"), time.Hour, subject, []Question{q}},
		{"zero duration", ExamFinal, 0, subject, []Question{q}},
		{"no subject", ExamFinal, time.Hour, nil, []Question{q}},
		{"no questions", ExamPractical, time.Hour, subject, nil},
		{"nil question", ExamPractical, time.Hour, subject, []Question{q, nil}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewExam(tt.kind, tt.duration, tt.subject, tt.questions); !errors.Is(err, ErrInvalidSpec) {
				t.Errorf("expected ErrInvalidSpec, got %v", err)
			}
		})
	}
}

func TestExamShow(t *testing.T) {
	_, exam := newMathExam(t, ExamPractical)
	var sb strings.Builder
	if err := exam.Show(&sb); err != nil {
		t.Fatalf("Show: %v", err)
	}
	out := sb.String()
	for _, want := range []string{
		"Practical Exam for Math",
		"Duration: 1h0m0s",
		"Number of Questions: 2",
		"1. True\n2. False",
		"1. Paris\n2. London\n3. Berlin",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "Q1") > strings.Index(out, "Q2") {
		t.Error("questions not shown in exam order")
	}
}

func TestExamClone(t *testing.T) {
	math, exam := newMathExam(t, ExamPractical)
	c := exam.Clone()

	if c.ID() == exam.ID() {
		t.Error("clone kept the original id")
	}
	if c.Kind() != exam.Kind() || c.Duration() != exam.Duration() || c.QuestionCount() != exam.QuestionCount() {
		t.Error("clone scalar fields differ")
	}
	if c.Subject() == math {
		t.Error("clone shares the subject instance")
	}
	if c.Subject().ID() != 1 || c.Subject().Name() != "Math" {
		t.Errorf("clone subject = %d %q", c.Subject().ID(), c.Subject().Name())
	}
	if c.Subject().ExamCount() != 0 {
		t.Errorf("detached subject has %d exams, want 0", c.Subject().ExamCount())
	}
	for i, q := range c.Questions() {
		if q == exam.Questions()[i] {
			t.Errorf("question %d is shared with the original", i)
		}
	}

	g, err := c.Evaluate([]int{1, 2})
	if err != nil || g.Score != 15 {
		t.Errorf("clone Evaluate = %v, %v; want 15", g.Score, err)
	}
}

func TestParseExamKind(t *testing.T) {
	for in, want := range map[string]ExamKind{"final": ExamFinal, "1": ExamFinal, "Practical": ExamPractical, "2": ExamPractical} {
		got, err := ParseExamKind(in)
		if err != nil || got != want {
			t.Errorf("ParseExamKind(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseExamKind("3"); !errors.Is(err, ErrInvalidSpec) {
		t.Errorf("expected ErrInvalidSpec, got %v", err)
	}
}
