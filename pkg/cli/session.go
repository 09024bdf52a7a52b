package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"sqlpad/internal/app"
	"sqlpad/internal/config"
	"sqlpad/internal/service/query"
	"sqlpad/internal/theme"
)

// annotationSession marks commands that need the loaded settings and an App.
const annotationSession = "sqlpad/session"

var sessionAnnotation = map[string]string{annotationSession: "true"}

func needsSession(cmd *cobra.Command) bool {
	return cmd.Annotations[annotationSession] == "true"
}

// rootOptions holds the persistent flag values.
type rootOptions struct {
	settingsPath string
	database     string
	format       string
	logLevel     string
	logFormat    string
	theme        string
	output       string
	noColor      bool
}

func addRootFlags(fs *pflag.FlagSet, o *rootOptions) {
	fs.StringVar(&o.settingsPath, "settings", "", "Settings file (default files/settings.json, env SQLPAD_SETTINGS)")
	fs.StringVarP(&o.database, "db", "d", "", "Database file (env SQLPAD_DB)")
	fs.StringVarP(&o.format, "format", "f", "", "Table style (env SQLPAD_FORMAT)")
	fs.StringVar(&o.logLevel, "log-level", "", "Log level: debug, info, warn, error (env SQLPAD_LOG_LEVEL)")
	fs.StringVar(&o.logFormat, "log-format", "", "Log format: text or json (env SQLPAD_LOG_FORMAT)")
	fs.StringVar(&o.theme, "theme", "", "Colour theme: light, dark or auto (env SQLPAD_THEME)")
	fs.StringVarP(&o.output, "output", "o", "text", "Output format (text, json, yaml)")
	fs.BoolVar(&o.noColor, "no-color", false, "Disable coloured output")
}

// session is the state shared by the commands of one invocation.
type session struct {
	opts *rootOptions

	cfg          *config.Config
	logger       *slog.Logger
	settingsPath string
	settings     *config.Settings
	theme        *theme.Theme
	runner       *query.Service
	app          *app.App
}

// resolve applies precedence: flag > env > fallback.
func resolve(fs *pflag.FlagSet, name, flagValue, envKey, fallback string) string {
	if fs.Changed(name) {
		return flagValue
	}
	if v := os.Getenv(envKey); v != "" {
		return v
	}
	return fallback
}

// open loads the environment, the logger and the settings, then builds the App.
func (s *session) open(cmd *cobra.Command) error {
	if err := config.LoadDotEnv(".env"); err != nil {
		return fmt.Errorf("load .env: %w", err)
	}
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return err
	}

	fs := cmd.Flags()
	if fs.Changed("log-level") {
		cfg.LogLevel = s.opts.logLevel
	}
	if fs.Changed("log-format") {
		cfg.LogFormat = s.opts.logFormat
	}
	if fs.Changed("theme") {
		cfg.Theme = s.opts.theme
	}
	if fs.Changed("settings") {
		cfg.SettingsPath = s.opts.settingsPath
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	s.cfg = cfg

	s.logger = cfg.NewLogger(os.Stderr)
	for _, w := range cfg.Warnings {
		s.logger.Warn(w)
	}

	if s.opts.noColor {
		color.NoColor = true
	}
	th, err := theme.ByName(cfg.Theme)
	if err != nil {
		return err
	}
	s.theme = th

	s.settingsPath = cfg.SettingsPath
	settings, warnings := config.LoadSettings(s.settingsPath)
	for _, w := range warnings {
		s.logger.Warn(w, "path", s.settingsPath)
	}
	s.settings = settings

	s.runner = query.NewService(s.logger)
	s.app = app.New(app.Options{
		Settings:     settings,
		SettingsPath: s.settingsPath,
		Runner:       s.runner,
		Logger:       s.logger,
	})

	if db := resolve(fs, "db", s.opts.database, "SQLPAD_DB", ""); fs.Changed("db") || db != "" {
		s.app.SetDatabase(db)
	}
	if f := resolve(fs, "format", s.opts.format, "SQLPAD_FORMAT", ""); f != "" {
		if err := s.app.SetFormat(f); err != nil {
			return err
		}
	}

	s.logger.Debug("session opened",
		"settings", s.settingsPath,
		"database", s.app.Database(),
		"format", s.app.Format(),
		"theme", s.theme.Name,
	)
	return nil
}

// close saves the settings. Notebooks still open are discarded because a
// one-shot command has no way to ask.
func (s *session) close() error {
	if s.app == nil {
		return nil
	}
	return s.app.Shutdown(true)
}
