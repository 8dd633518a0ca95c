package school

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/pavelanni/examhall/internal/model"
)

// ParseExamFile decodes exam authoring input. YAML is used for .yaml and .yml
// files, JSON otherwise. Both a bare list of exams and an object with an
// "exams" key are accepted.
func ParseExamFile(name string, data []byte) ([]model.ExamImport, error) {
	var (
		file model.ImportFile
		list []model.ExamImport
	)
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &file); err == nil && len(file.Exams) > 0 {
			return file.Exams, nil
		}
		if err := yaml.Unmarshal(data, &list); err != nil {
			return nil, fmt.Errorf("%w: parse yaml: %w", model.ErrInvalidSpec, err)
		}
	default:
		trimmed := bytes.TrimSpace(data)
		if len(trimmed) > 0 && trimmed[0] == '{' {
			if err := json.Unmarshal(trimmed, &file); err != nil {
				return nil, fmt.Errorf("%w: parse json: %w", model.ErrInvalidSpec, err)
			}
			return file.Exams, nil
		}
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, fmt.Errorf("%w: parse json: %w", model.ErrInvalidSpec, err)
		}
	}
	return list, nil
}

// ImportExamFiles creates every exam found in paths on behalf of teacher and
// returns how many were created. It stops at the first invalid exam. Ledger
// failures are logged and do not stop the import.
func (s *School) ImportExamFiles(ctx context.Context, teacher *model.Teacher, paths []string) (int, error) {
	created := 0
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return created, fmt.Errorf("read %s: %w", path, err)
		}
		exams, err := ParseExamFile(path, data)
		if err != nil {
			return created, fmt.Errorf("%s: %w", path, err)
		}
		for i, in := range exams {
			exam, _, err := s.CreateExam(ctx, teacher, in)
			if errors.Is(err, ErrLedger) {
				slog.Error("imported exam not recorded", "path", path, "exam_id", exam.ID(), "error", err)
				err = nil
			}
			if err != nil {
				return created, fmt.Errorf("%s: exam %d: %w", path, i+1, err)
			}
			created++
		}
		slog.Info("imported exams", "path", path, "count", len(exams))
	}
	return created, nil
}
