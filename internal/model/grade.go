package model

import "fmt"

// Feedback describes the outcome of one question in a practical exam.
type Feedback struct {
	Question    int    `json:"question"` // 1-based position in the exam
	ChosenID    int    `json:"chosen_id"`
	ChosenText  string `json:"chosen_text,omitempty"`
	Correct     bool   `json:"correct"`
	CorrectID   int    `json:"correct_id"`
	CorrectText string `json:"correct_text"`
}

func (f Feedback) String() string {
	if f.Correct {
		return "Your answer is correct: " + f.ChosenText
	}
	return "Your answer is wrong. The correct answer is: " + f.CorrectText
}

// Grade is the outcome of evaluating one submission.
type Grade struct {
	ExamID   ExamID     `json:"exam_id"`
	Kind     ExamKind   `json:"kind"`
	Score    float64    `json:"score"`
	MaxScore float64    `json:"max_score"`
	Feedback []Feedback `json:"feedback,omitempty"`
}

// Evaluate scores a submission. answers[i] is the chosen answer id for the
// i-th question; a match with the question's correct id earns its mark, anything
// else earns nothing. Practical exams also report per-question feedback.
func (e *Exam) Evaluate(answers []int) (Grade, error) {
	if len(answers) != len(e.questions) {
		return Grade{}, fmt.Errorf("%w: got %d answers for %d questions",
			ErrAnswerCountMismatch, len(answers), len(e.questions))
	}

	g := Grade{
		ExamID:   e.id,
		Kind:     e.kind,
		MaxScore: e.MaxScore(),
	}
	for i, q := range e.questions {
		correct := answers[i] == q.CorrectAnswerID()
		if correct {
			g.Score += q.Mark()
		}
		if e.kind == ExamPractical {
			g.Feedback = append(g.Feedback, feedbackFor(i, q, answers[i], correct))
		}
	}
	return g, nil
}

func feedbackFor(i int, q Question, chosen int, correct bool) Feedback {
	want := CorrectAnswer(q)
	fb := Feedback{
		Question:    i + 1,
		ChosenID:    chosen,
		Correct:     correct,
		CorrectID:   want.ID,
		CorrectText: want.Text,
	}
	// An id outside the answer set has no text to report.
	if a, ok := q.AnswerByID(chosen); ok {
		fb.ChosenText = a.Text
	}
	return fb
}
