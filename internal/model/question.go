package model

import (
	"fmt"
	"io"
	"maps"
	"math"
	"slices"
	"strings"
)

// QuestionKind identifies a question variant.
type QuestionKind string

const (
	// KindTrueFalse is a fixed two-choice question.
	KindTrueFalse QuestionKind = "true_false"
	// KindMultipleChoice is a question with author-defined choices.
	KindMultipleChoice QuestionKind = "multiple_choice"
)

// Answer ids used by every true/false question.
const (
	TrueAnswerID  = 1
	FalseAnswerID = 2
)

// ParseQuestionKind accepts the canonical kind names plus the short forms
// used on the console ("tf", "mcq") and the legacy menu numbers.
func ParseQuestionKind(s string) (QuestionKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(KindTrueFalse), "tf", "truefalse", "1":
		return KindTrueFalse, nil
	case string(KindMultipleChoice), "mcq", "mc", "2":
		return KindMultipleChoice, nil
	}
	return "", invalidSpec("unknown question type %q", s)
}

// Question is implemented only by *TrueFalse and *MultipleChoice.
// Questions are immutable after construction; accessors return copies.
type Question interface {
	Kind() QuestionKind
	Header() string
	Body() string
	Mark() float64
	Answers() []Answer
	CorrectAnswerID() int
	AnswerByID(id int) (Answer, bool)
	// Display writes the header, body and 1-indexed choices.
	Display(w io.Writer) error
	// Clone returns a question of the same variant that shares no answer storage with q.
	Clone() Question

	isQuestion()
}

// question holds the fields shared by all variants.
type question struct {
	header    string
	body      string
	mark      float64
	answers   []Answer
	byID      map[int]int
	correctID int
}

func newQuestion(header, body string, mark float64, answers []Answer, correctID int) (question, error) {
	if !(mark > 0) || math.IsInf(mark, 1) {
		return question{}, invalidSpec("mark must be positive, got %v", mark)
	}
	if len(answers) == 0 {
		return question{}, invalidSpec("question %q has no answers", header)
	}
	byID := make(map[int]int, len(answers))
	for i, a := range answers {
		if _, dup := byID[a.ID]; dup {
			return question{}, invalidSpec("question %q has duplicate answer id %d", header, a.ID)
		}
		byID[a.ID] = i
	}
	if _, ok := byID[correctID]; !ok {
		return question{}, invalidSpec("question %q: correct answer id %d is not among its answers", header, correctID)
	}
	return question{
		header:    header,
		body:      body,
		mark:      mark,
		answers:   slices.Clone(answers),
		byID:      byID,
		correctID: correctID,
	}, nil
}

func (*question) isQuestion() {}

func (q *question) Header() string { return q.header }

func (q *question) Body() string { return q.body }

func (q *question) Mark() float64 { return q.mark }

func (q *question) CorrectAnswerID() int { return q.correctID }

// Answers returns a copy of the stored answers in authoring order.
func (q *question) Answers() []Answer {
	return slices.Clone(q.answers)
}

// AnswerByID looks an answer up by id.
func (q *question) AnswerByID(id int) (Answer, bool) {
	i, ok := q.byID[id]
	if !ok {
		return Answer{}, false
	}
	return q.answers[i], true
}

func (q *question) clone() question {
	c := *q
	c.answers = slices.Clone(q.answers)
	c.byID = maps.Clone(q.byID)
	return c
}

// TrueFalse is a question with the fixed choices True and False.
type TrueFalse struct {
	question
}

// NewTrueFalse builds a true/false question. correctID must be TrueAnswerID or FalseAnswerID.
func NewTrueFalse(header, body string, mark float64, correctID int) (*TrueFalse, error) {
	answers := []Answer{
		NewAnswer(TrueAnswerID, "True"),
		NewAnswer(FalseAnswerID, "False"),
	}
	q, err := newQuestion(header, body, mark, answers, correctID)
	if err != nil {
		return nil, err
	}
	return &TrueFalse{question: q}, nil
}

func (*TrueFalse) Kind() QuestionKind { return KindTrueFalse }

// Display always lists "True" and "False", whatever the stored answers say.
func (q *TrueFalse) Display(w io.Writer) error {
	_, err := fmt.Fprintf(w, "%s\n%s\n1. True\n2. False\n", q.header, q.body)
	return err
}

func (q *TrueFalse) Clone() Question {
	return &TrueFalse{question: q.clone()}
}

// MultipleChoice is a question with author-defined choices.
type MultipleChoice struct {
	question
}

// NewMultipleChoice builds a question from explicit answers.
func NewMultipleChoice(header, body string, mark float64, answers []Answer, correctID int) (*MultipleChoice, error) {
	q, err := newQuestion(header, body, mark, answers, correctID)
	if err != nil {
		return nil, err
	}
	return &MultipleChoice{question: q}, nil
}

// NewMultipleChoiceFromChoices numbers choices from 1 in order, the way
// teachers author them.
func NewMultipleChoiceFromChoices(header, body string, mark float64, choices []string, correctID int) (*MultipleChoice, error) {
	answers := make([]Answer, len(choices))
	for i, c := range choices {
		answers[i] = NewAnswer(i+1, c)
	}
	return NewMultipleChoice(header, body, mark, answers, correctID)
}

func (*MultipleChoice) Kind() QuestionKind { return KindMultipleChoice }

func (q *MultipleChoice) Display(w io.Writer) error {
	var sb strings.Builder
	sb.WriteString(q.header + "\n" + q.body + "\n")
	for i, a := range q.answers {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, a.Text)
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func (q *MultipleChoice) Clone() Question {
	return &MultipleChoice{question: q.clone()}
}

// CorrectAnswer returns the answer a question accepts as correct.
func CorrectAnswer(q Question) Answer {
	a, _ := q.AnswerByID(q.CorrectAnswerID())
	return a
}

// CompareQuestions orders questions by header.
func CompareQuestions(a, b Question) int {
	return strings.Compare(a.Header(), b.Header())
}
