package store

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/pavelanni/examhall/internal/model"
)

// ExportGrades builds the export document. With latestOnly set, only the last
// attempt per student and exam is included.
func (s *Store) ExportGrades(ctx context.Context, latestOnly bool) (model.GradeExport, error) {
	list := s.ListAttempts
	if latestOnly {
		list = s.LatestAttempts
	}
	attempts, err := list(ctx)
	if err != nil {
		return model.GradeExport{}, fmt.Errorf("list attempts: %w", err)
	}
	if attempts == nil {
		attempts = []model.Attempt{}
	}
	return model.GradeExport{
		GeneratedAt: time.Now().UTC(),
		Attempts:    attempts,
	}, nil
}

var sheetHeaders = []string{"student", "subject", "kind", "score", "max_score", "exam_id", "taken_at"}

// WriteXLSX writes the attempts as a single-sheet workbook.
func WriteXLSX(w io.Writer, export model.GradeExport) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	for i, h := range sheetHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}
	for i, a := range export.Attempts {
		row := i + 2
		values := []any{
			a.StudentName,
			a.SubjectName,
			string(a.Kind),
			a.Score,
			a.MaxScore,
			string(a.ExamID),
			a.TakenAt.Format("2006-01-02 15:04:05"),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}
	_ = f.SetColWidth(sheet, "A", "G", 20)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write excel: %w", err)
	}
	return nil
}
