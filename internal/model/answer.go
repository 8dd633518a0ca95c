package model

import "cmp"

// Answer is one selectable choice of a question.
type Answer struct {
	ID   int    `json:"id" yaml:"id"`
	Text string `json:"text" yaml:"text"`
}

// NewAnswer returns an answer with the given id and text.
func NewAnswer(id int, text string) Answer {
	return Answer{ID: id, Text: text}
}

// String renders the answer as its text.
func (a Answer) String() string {
	return a.Text
}

// Compare orders answers by id.
func (a Answer) Compare(other Answer) int {
	return cmp.Compare(a.ID, other.ID)
}
