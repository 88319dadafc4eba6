package main

import (
	"context"
	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/joho/godotenv"
	"github.com/swhawkins/LAPOK/internal/envstruct"
	"github.com/swhawkins/LAPOK/internal/errors"
	"github.com/swhawkins/LAPOK/internal/logging"
	"github.com/swhawkins/LAPOK/internal/models"
	"github.com/swhawkins/LAPOK/internal/questionnaire"
	"github.com/swhawkins/LAPOK/internal/report"
	"github.com/swhawkins/LAPOK/internal/repositories"
	"github.com/swhawkins/LAPOK/internal/sqlite"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

type application struct {
	logger         *slog.Logger
	sessionManager *scs.SessionManager
	assessments    *repositories.AssessmentRepository
	questionnaire  *questionnaire.Questionnaire
	reports        *report.Generator
	defaultTheme   models.Theme
	pprof          bool
	timeout        time.Duration
}

type config struct {
	// Addr is the address the server listens on. Keep it on localhost, there is no authentication.
	Addr string `env:"LAP_ADDR" envDefault:"localhost:4000"`
	// SqliteURL is the path to the SQLite database file or ":memory:".
	SqliteURL string `env:"LAP_SQLITE_URL" envDefault:"./lap.sqlite3"`
	// Questionnaire is a built-in questionnaire name or the path to a YAML definition.
	Questionnaire string `env:"LAP_QUESTIONNAIRE" envDefault:"protocol"`
	// ReportDelay is waited before a report is rendered.
	ReportDelay     time.Duration `env:"LAP_REPORT_DELAY" envDefault:"0s"`
	DefaultTheme    string        `env:"LAP_DEFAULT_THEME" envDefault:"light"`
	SessionLifetime time.Duration `env:"LAP_SESSION_LIFETIME" envDefault:"12h"`
	// Pprof exposes the /debug/pprof/ endpoints.
	Pprof bool `env:"LAP_PPROF" envDefault:"false"`
}

// defaultTimeout bounds reading and writing a request on top of the configured report delay.
const defaultTimeout = 5 * time.Second

func run(ctx context.Context, logger *slog.Logger, lookupEnv func(string) (string, bool)) error {
	var (
		cfg config
		err error
	)
	if err = envstruct.Populate(&cfg, lookupEnv); err != nil {
		return errors.Wrap(err, "populate config from env")
	}

	theme, ok := models.ParseTheme(cfg.DefaultTheme)
	if !ok {
		return errors.New("unknown default theme", slog.String("theme", cfg.DefaultTheme))
	}
	if cfg.ReportDelay < 0 {
		return errors.New("report delay must not be negative", slog.Duration("delay", cfg.ReportDelay))
	}

	var q *questionnaire.Questionnaire
	if q, err = questionnaire.Load(cfg.Questionnaire); err != nil {
		return errors.Wrap(err, "load questionnaire")
	}

	var db *sqlite.Database
	if db, err = sqlite.NewDatabase(ctx, cfg.SqliteURL, logger); err != nil {
		return errors.Wrap(err, "open database", slog.String("url", cfg.SqliteURL))
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			logger.LogAttrs(ctx, slog.LevelError, "failed to close database", errors.SlogError(closeErr))
		}
	}()

	store := sqlite3store.NewWithCleanupInterval(db.ReadWrite.DB, time.Hour)
	defer store.StopCleanup()
	sessionManager := scs.New()
	sessionManager.Store = store
	sessionManager.Lifetime = cfg.SessionLifetime
	sessionManager.Cookie.Name = "lap_session"
	sessionManager.Cookie.SameSite = http.SameSiteLaxMode

	app := application{
		logger:         logger,
		sessionManager: sessionManager,
		assessments:    repositories.NewAssessmentRepository(db, logger),
		questionnaire:  q,
		reports:        report.NewGenerator(logger, q, cfg.ReportDelay),
		defaultTheme:   theme,
		pprof:          cfg.Pprof,
		timeout:        defaultTimeout + cfg.ReportDelay,
	}

	logger.LogAttrs(ctx, slog.LevelInfo, "loaded questionnaire",
		slog.String("name", q.Name), slog.String("policy", q.Policy.Name), slog.String("layout", string(q.Layout)))

	if err = app.configureAndStartServer(ctx, cfg.Addr); err != nil {
		return errors.Wrap(err, "start server")
	}
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	logger := logging.NewLogger(os.Stdout, slog.LevelDebug, true)

	// .env is optional.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.LogAttrs(ctx, slog.LevelError, "failed to load .env", errors.SlogError(err))
		stop()
		os.Exit(1)
	}

	err := run(ctx, logger, os.LookupEnv)
	stop()
	if err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "failure starting application", errors.SlogError(err))
		os.Exit(1)
	}
}
