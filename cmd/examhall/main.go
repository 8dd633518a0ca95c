package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pavelanni/examhall/internal/console"
	"github.com/pavelanni/examhall/internal/handler"
	appI18n "github.com/pavelanni/examhall/internal/i18n"
	"github.com/pavelanni/examhall/internal/school"
	"github.com/pavelanni/examhall/internal/store"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "examhall",
		Short: "Examination hall for teachers and students",
	}

	session := sessionCmd()
	root.AddCommand(session, serveCmd(), exportCmd())

	// Make "session" the default when no subcommand is given.
	root.RunE = session.RunE
	root.Flags().AddFlagSet(session.Flags())

	return root
}

// addSchoolFlags registers the flags shared by every command that builds a school.
func addSchoolFlags(f *pflag.FlagSet, logLevel string) {
	f.StringP("lang", "l", "en", "UI language (en, ru)")
	f.StringSliceP("exams", "e", nil, "Paths to exam files, JSON or YAML (repeatable)")
	f.String("db", "examhall.db", "SQLite grade ledger path (empty disables the ledger)")
	f.String("teacher-password", "", "Password for the seed teacher (default pass1)")
	f.String("student-password", "", "Password for the seed student (default pass1)")
	f.String("log-level", logLevel, "Log level (debug, info, warn, error)")
	f.String("log-format", "text", "Log format (text, json)")
}

func sessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Run an interactive console session",
		RunE:  runSession,
	}
	// Console prompts share the terminal with stderr, so keep logs quiet.
	addSchoolFlags(cmd.Flags(), "warn")
	return cmd
}

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP exam API",
		RunE:  runServe,
	}
	f := cmd.Flags()
	f.StringP("addr", "a", ":8080", "HTTP listen address")
	addSchoolFlags(f, "info")
	return cmd
}

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export recorded grades as JSON or XLSX",
		RunE:  runExport,
	}
	f := cmd.Flags()
	f.String("db", "examhall.db", "SQLite grade ledger path")
	f.String("format", "json", "Output format (json, xlsx)")
	f.Bool("latest", false, "Only the latest attempt per student and exam")
	f.StringP("output", "o", "-", "Output file path (- for stdout)")
	f.String("log-level", "info", "Log level (debug, info, warn, error)")
	f.String("log-format", "text", "Log format (text, json)")
	return cmd
}

func setupLogging(cmd *cobra.Command) {
	v := viperForCmd(cmd)

	var logLevel slog.Level
	switch strings.ToLower(v.GetString("log-level")) {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	handlerOpts := &slog.HandlerOptions{Level: logLevel}
	var logHandler slog.Handler
	switch strings.ToLower(v.GetString("log-format")) {
	case "json":
		logHandler = slog.NewJSONHandler(os.Stderr, handlerOpts)
	default:
		logHandler = slog.NewTextHandler(os.Stderr, handlerOpts)
	}
	slog.SetDefault(slog.New(logHandler))
}

// viperForCmd binds a command's flags and environment to a fresh viper instance.
func viperForCmd(cmd *cobra.Command) *viper.Viper {
	v := viper.New()
	_ = v.BindPFlags(cmd.Flags())

	v.SetEnvPrefix("EXAMHALL")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetConfigName("examhall")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/examhall")
	v.AddConfigPath("/etc/examhall")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			slog.Warn("error reading config file", "error", err)
		}
	} else {
		slog.Debug("loaded config file", "path", v.ConfigFileUsed())
	}

	return v
}

// openSchool seeds the school, attaches the ledger when configured and
// imports exam files on behalf of the seed teacher. The returned func closes
// the ledger.
func openSchool(ctx context.Context, v *viper.Viper) (*school.School, func(), error) {
	var opts []school.Option
	closeLedger := func() {}
	if path := v.GetString("db"); path != "" {
		db, err := store.New(path)
		if err != nil {
			return nil, nil, fmt.Errorf("open ledger: %w", err)
		}
		opts = append(opts, school.WithLedger(db))
		closeLedger = func() {
			if err := db.Close(); err != nil {
				slog.Warn("close ledger", "error", err)
			}
		}
		slog.Info("opened grade ledger", "path", path)
	}

	s, err := school.Seed(school.SeedConfig{
		TeacherPassword: v.GetString("teacher-password"),
		StudentPassword: v.GetString("student-password"),
	}, opts...)
	if err != nil {
		closeLedger()
		return nil, nil, fmt.Errorf("seed: %w", err)
	}

	if paths := v.GetStringSlice("exams"); len(paths) > 0 {
		n, err := s.ImportExamFiles(ctx, s.Teachers()[0], paths)
		if err != nil {
			closeLedger()
			return nil, nil, fmt.Errorf("import exams: %w", err)
		}
		slog.Info("exam import finished", "files", len(paths), "exams", n)
	}
	return s, closeLedger, nil
}

func runSession(cmd *cobra.Command, _ []string) error {
	setupLogging(cmd)
	v := viperForCmd(cmd)

	lang := v.GetString("lang")
	if err := appI18n.Init(lang); err != nil {
		return fmt.Errorf("init i18n: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	s, closeLedger, err := openSchool(ctx, v)
	if err != nil {
		return err
	}
	defer closeLedger()

	ctx = appI18n.WithLocalizer(ctx, appI18n.NewLocalizer(lang))
	return console.New(s, cmd.InOrStdin(), cmd.OutOrStdout()).Run(ctx)
}

func runServe(cmd *cobra.Command, _ []string) error {
	setupLogging(cmd)
	v := viperForCmd(cmd)

	lang := v.GetString("lang")
	if err := appI18n.Init(lang); err != nil {
		return fmt.Errorf("init i18n: %w", err)
	}

	s, closeLedger, err := openSchool(context.Background(), v)
	if err != nil {
		return err
	}
	defer closeLedger()

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(appI18n.Middleware(lang))
	handler.New(s).Routes(r)

	addr := v.GetString("addr")
	slog.Info("starting server",
		"addr", addr,
		"lang", lang,
		"db", v.GetString("db"),
		"subjects", len(s.Subjects()),
	)
	return http.ListenAndServe(addr, r)
}

func runExport(cmd *cobra.Command, _ []string) error {
	setupLogging(cmd)
	v := viperForCmd(cmd)

	path := v.GetString("db")
	if path == "" {
		return errors.New("export needs a ledger: set --db or EXAMHALL_DB")
	}
	db, err := store.New(path)
	if err != nil {
		return fmt.Errorf("open ledger: %w", err)
	}
	defer db.Close()

	export, err := db.ExportGrades(context.Background(), v.GetBool("latest"))
	if err != nil {
		return fmt.Errorf("export grades: %w", err)
	}

	outPath := v.GetString("output")
	var w io.Writer
	if outPath == "" || outPath == "-" {
		w = cmd.OutOrStdout()
	} else {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	switch format := strings.ToLower(v.GetString("format")); format {
	case "xlsx":
		if err := store.WriteXLSX(w, export); err != nil {
			return fmt.Errorf("write xlsx: %w", err)
		}
	case "json":
		data, err := json.MarshalIndent(export, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal JSON: %w", err)
		}
		if _, err := w.Write(data); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		// Ensure trailing newline.
		_, _ = fmt.Fprintln(w)
	default:
		return fmt.Errorf("unknown export format %q", format)
	}

	slog.Info("exported grades", "attempts", len(export.Attempts), "output", outPath)
	return nil
}
