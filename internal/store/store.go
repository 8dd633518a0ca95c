package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/pavelanni/examhall/internal/model"

	_ "modernc.org/sqlite"
)

// Store is the append-only grade ledger. It records exams as they are
// created and every graded attempt; it is never used to rebuild the
// in-memory catalog.
type Store struct {
	db *sql.DB
}

func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// A :memory: database exists per connection.
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS exams (
		id TEXT PRIMARY KEY,
		subject_id INTEGER NOT NULL,
		subject_name TEXT NOT NULL,
		kind TEXT NOT NULL,
		duration_seconds INTEGER NOT NULL,
		question_count INTEGER NOT NULL,
		max_score REAL NOT NULL,
		created_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS attempts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		student_id INTEGER NOT NULL,
		student_name TEXT NOT NULL,
		exam_id TEXT NOT NULL,
		score REAL NOT NULL,
		taken_at DATETIME NOT NULL,
		FOREIGN KEY (exam_id) REFERENCES exams(id)
	);

	CREATE INDEX IF NOT EXISTS attempts_student_exam ON attempts (student_id, exam_id);
	`
	_, err := s.db.Exec(schema)
	return err
}

// RecordExam stores the summary of a newly created exam. Recording the same
// exam twice is a no-op.
func (s *Store) RecordExam(ctx context.Context, e *model.Exam) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO exams (id, subject_id, subject_name, kind, duration_seconds, question_count, max_score, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO NOTHING`,
		string(e.ID()), e.Subject().ID(), e.Subject().Name(), string(e.Kind()),
		int64(e.Duration()/time.Second), e.QuestionCount(), e.MaxScore(), e.CreatedAt(),
	)
	if err != nil {
		slog.Error("failed to record exam", "exam_id", e.ID(), "error", err)
		return err
	}
	return nil
}

// RecordAttempt appends a graded attempt and returns its ledger id. The exam
// must have been recorded first.
func (s *Store) RecordAttempt(ctx context.Context, a model.Attempt) (int64, error) {
	takenAt := a.TakenAt
	if takenAt.IsZero() {
		takenAt = time.Now()
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO attempts (student_id, student_name, exam_id, score, taken_at) VALUES (?, ?, ?, ?, ?)`,
		a.StudentID, a.StudentName, string(a.ExamID), a.Score, takenAt,
	)
	if err != nil {
		slog.Error("failed to record attempt", "student", a.StudentName, "exam_id", a.ExamID, "error", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	slog.Debug("recorded attempt", "id", id, "student", a.StudentName, "exam_id", a.ExamID, "score", a.Score)
	return id, nil
}

const attemptColumns = `a.id, a.student_id, a.student_name, a.exam_id, e.subject_id, e.subject_name, e.kind,
	a.score, e.max_score, a.taken_at`

func scanAttempts(rows *sql.Rows) ([]model.Attempt, error) {
	defer rows.Close()
	var attempts []model.Attempt
	for rows.Next() {
		var a model.Attempt
		if err := rows.Scan(&a.ID, &a.StudentID, &a.StudentName, &a.ExamID, &a.SubjectID, &a.SubjectName,
			&a.Kind, &a.Score, &a.MaxScore, &a.TakenAt); err != nil {
			return nil, err
		}
		attempts = append(attempts, a)
	}
	return attempts, rows.Err()
}

// ListAttempts returns every attempt in the order it was recorded.
func (s *Store) ListAttempts(ctx context.Context) ([]model.Attempt, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+attemptColumns+` FROM attempts a JOIN exams e ON e.id = a.exam_id ORDER BY a.id`)
	if err != nil {
		return nil, err
	}
	return scanAttempts(rows)
}

// LatestAttempts returns the last attempt of each student on each exam, the
// same view a student's in-memory results give.
func (s *Store) LatestAttempts(ctx context.Context) ([]model.Attempt, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+attemptColumns+` FROM attempts a JOIN exams e ON e.id = a.exam_id
		 WHERE a.id IN (SELECT MAX(id) FROM attempts GROUP BY student_id, exam_id)
		 ORDER BY a.id`)
	if err != nil {
		return nil, err
	}
	return scanAttempts(rows)
}

// AttemptCount returns the number of recorded attempts.
func (s *Store) AttemptCount(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM attempts`).Scan(&count)
	return count, err
}

// ExamCount returns the number of recorded exams.
func (s *Store) ExamCount(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM exams`).Scan(&count)
	return count, err
}
