package model

import "time"

// ImportFile is the on-disk layout of an exam authoring file.
type ImportFile struct {
	Exams []ExamImport `json:"exams" yaml:"exams"`
}

// ExamImport is the authoring input for one exam, shared by files, the
// console and the HTTP API.
type ExamImport struct {
	SubjectID     int              `json:"subject_id" yaml:"subject_id"`
	DurationHours float64          `json:"duration_hours" yaml:"duration_hours"`
	Type          string           `json:"type" yaml:"type"`
	Questions     []QuestionImport `json:"questions" yaml:"questions"`
}

// QuestionImport is the authoring input for one question. Choices are only
// read for multiple choice questions and are numbered from 1.
type QuestionImport struct {
	Type            string   `json:"type" yaml:"type"`
	Header          string   `json:"header" yaml:"header"`
	Body            string   `json:"body" yaml:"body"`
	Mark            float64  `json:"mark" yaml:"mark"`
	Choices         []string `json:"choices,omitempty" yaml:"choices,omitempty"`
	CorrectAnswerID int      `json:"correct_answer_id" yaml:"correct_answer_id"`
}

// Attempt is one graded submission as kept by the grade ledger.
type Attempt struct {
	ID          int64     `json:"id"`
	StudentID   int       `json:"student_id"`
	StudentName string    `json:"student_name"`
	ExamID      ExamID    `json:"exam_id"`
	SubjectID   int       `json:"subject_id"`
	SubjectName string    `json:"subject_name"`
	Kind        ExamKind  `json:"kind"`
	Score       float64   `json:"score"`
	MaxScore    float64   `json:"max_score"`
	TakenAt     time.Time `json:"taken_at"`
}

// GradeExport is the top-level JSON structure written by the export command.
type GradeExport struct {
	GeneratedAt time.Time `json:"generated_at"`
	Attempts    []Attempt `json:"attempts"`
}
