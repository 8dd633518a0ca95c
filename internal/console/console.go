// Package console runs the interactive examination hall on a line-oriented
// terminal. It only reads input, prints prompts and forwards requests to a
// school.School; every rule is enforced there.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	appI18n "github.com/pavelanni/examhall/internal/i18n"
	"github.com/pavelanni/examhall/internal/model"
	"github.com/pavelanni/examhall/internal/school"
)

// errQuit ends the session on end of input or an explicit "q".
var errQuit = errors.New("quit")

// Session is one console conversation.
type Session struct {
	school *school.School
	in     *bufio.Scanner
	out    io.Writer
}

// New returns a session reading lines from in and writing to out.
func New(s *school.School, in io.Reader, out io.Writer) *Session {
	return &Session{school: s, in: bufio.NewScanner(in), out: out}
}

// Run loops over login and the role menus until input ends or the user quits.
// Messages are localized with the localizer carried by ctx.
func (s *Session) Run(ctx context.Context) error {
	s.println(appI18n.T(ctx, "AppTitle"))
	for {
		user, err := s.login(ctx)
		if err == nil {
			switch u := user.(type) {
			case *model.Teacher:
				err = s.teacherMenu(ctx, u)
			case *model.Student:
				err = s.studentMenu(ctx, u)
			}
		}
		if errors.Is(err, errQuit) {
			s.println(appI18n.T(ctx, "Goodbye"))
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (s *Session) login(ctx context.Context) (model.User, error) {
	for {
		line, err := s.readLine(ctx, appI18n.T(ctx, "ChooseRole")+"\n")
		if err != nil {
			return nil, err
		}
		if strings.EqualFold(line, "q") {
			return nil, errQuit
		}
		role, err := model.ParseUserRole(line)
		if err != nil {
			s.println(appI18n.T(ctx, "InvalidRole"))
			continue
		}
		username, err := s.readLine(ctx, appI18n.T(ctx, "EnterUsername"))
		if err != nil {
			return nil, err
		}
		password, err := s.readLine(ctx, appI18n.T(ctx, "EnterPassword"))
		if err != nil {
			return nil, err
		}
		user, err := s.school.Authenticate(username, password, role)
		if err != nil {
			s.println(appI18n.T(ctx, "LoginFailed"))
			continue
		}
		s.println(appI18n.Td(ctx, "Welcome", map[string]any{"Name": user.Username()}))
		return user, nil
	}
}

func (s *Session) teacherMenu(ctx context.Context, t *model.Teacher) error {
	for {
		choice, err := s.readInt(ctx, appI18n.T(ctx, "TeacherMenu")+"\n")
		if err != nil {
			return err
		}
		switch choice {
		case 1:
			err = s.createExam(ctx, t)
		case 2:
			s.showStudentGrades(ctx)
		case 3:
			return nil
		default:
			s.println(appI18n.T(ctx, "InvalidChoice"))
		}
		if err != nil {
			return err
		}
	}
}

func (s *Session) studentMenu(ctx context.Context, st *model.Student) error {
	for {
		choice, err := s.readInt(ctx, appI18n.T(ctx, "StudentMenu")+"\n")
		if err != nil {
			return err
		}
		switch choice {
		case 1:
			err = s.takeExam(ctx, st)
		case 2:
			s.showGrades(ctx, st)
		case 3:
			return nil
		default:
			s.println(appI18n.T(ctx, "InvalidChoice"))
		}
		if err != nil {
			return err
		}
	}
}

// chooseSubject lists the catalog and reads a subject id. It returns nil
// without error when the id is unknown.
func (s *Session) chooseSubject(ctx context.Context) (*model.Subject, error) {
	s.println(appI18n.T(ctx, "SubjectList"))
	for _, sub := range s.school.Subjects() {
		s.println(appI18n.Td(ctx, "SubjectListItem", map[string]any{"ID": sub.ID(), "Name": sub.Name()}))
	}
	id, err := s.readInt(ctx, appI18n.T(ctx, "EnterSubjectID"))
	if err != nil {
		return nil, err
	}
	subject, err := s.school.FindSubject(id)
	if err != nil {
		s.println(appI18n.T(ctx, "SubjectNotFound"))
		return nil, nil
	}
	return subject, nil
}

func (s *Session) println(msg string) {
	fmt.Fprintln(s.out, msg)
}

// readLine prints prompt and returns the next trimmed input line.
func (s *Session) readLine(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	fmt.Fprint(s.out, prompt)
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return "", errQuit
	}
	return strings.TrimSpace(s.in.Text()), nil
}

// readInt re-prompts until the line parses as an integer.
func (s *Session) readInt(ctx context.Context, prompt string) (int, error) {
	for {
		line, err := s.readLine(ctx, prompt)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(line)
		if err == nil {
			return n, nil
		}
		slog.Debug("non-numeric input", "input", line)
		s.println(appI18n.T(ctx, "NotANumber"))
	}
}

// readFloat re-prompts until the line parses as a number.
func (s *Session) readFloat(ctx context.Context, prompt string) (float64, error) {
	for {
		line, err := s.readLine(ctx, prompt)
		if err != nil {
			return 0, err
		}
		f, err := strconv.ParseFloat(line, 64)
		if err == nil {
			return f, nil
		}
		s.println(appI18n.T(ctx, "NotANumber"))
	}
}

func formatScore(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
