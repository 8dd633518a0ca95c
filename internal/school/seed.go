package school

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/pavelanni/examhall/internal/model"
)

// SeedConfig holds the bootstrap credentials.
type SeedConfig struct {
	TeacherPassword string
	StudentPassword string
}

// DefaultSeedPassword is used for seed users when no password is configured.
const DefaultSeedPassword = "pass1"

// Seed returns a School with the bootstrap catalog: subjects Math (1) and
// Science (2), teacher "teacher1" and student "student1".
func Seed(cfg SeedConfig, opts ...Option) (*School, error) {
	teacherHash, err := hashPassword(cfg.TeacherPassword)
	if err != nil {
		return nil, fmt.Errorf("hash teacher password: %w", err)
	}
	studentHash, err := hashPassword(cfg.StudentPassword)
	if err != nil {
		return nil, fmt.Errorf("hash student password: %w", err)
	}

	subjects := []*model.Subject{
		model.NewSubject(1, "Math"),
		model.NewSubject(2, "Science"),
	}
	users := []model.User{
		model.NewTeacher(1, "teacher1", teacherHash),
		model.NewStudent(1, "student1", studentHash),
	}
	return New(subjects, users, opts...), nil
}

func hashPassword(password string) (string, error) {
	if password == "" {
		password = DefaultSeedPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
