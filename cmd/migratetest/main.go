package main

import (
	"context"
	"github.com/swhawkins/LAPOK/internal/errors"
	"github.com/swhawkins/LAPOK/internal/models"
	"github.com/swhawkins/LAPOK/internal/questionnaire"
	"github.com/swhawkins/LAPOK/internal/repositories"
	"github.com/swhawkins/LAPOK/internal/sqlite"
	"github.com/swhawkins/LAPOK/internal/testhelpers"
	"log/slog"
	"os"
	"time"
)

// main migrates a copy of a production database to the current schema and checks that the saved data survived.
func main() {
	logger := testhelpers.NewLogger(os.Stdout)
	var (
		err       error
		start     = time.Now()
		ctx       context.Context
		sqliteURL string
		ok        bool
		cancel    context.CancelFunc
	)
	ctx = context.Background()
	ctx, cancel = context.WithTimeout(ctx, 5*time.Second) //nolint:mnd // 5 seconds

	if sqliteURL, ok = os.LookupEnv("LAP_SQLITE_URL"); !ok {
		logger.LogAttrs(ctx, slog.LevelError, "LAP_SQLITE_URL not set")
		os.Exit(1)
	}

	var db *sqlite.Database
	if db, err = sqlite.NewDatabase(ctx, sqliteURL, logger); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error creating database",
			slog.String("url", sqliteURL), errors.SlogError(err))
		os.Exit(1)
	}

	var count int
	if err = db.ReadOnly.GetContext(ctx, &count, `SELECT COUNT(*) FROM kv`); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error fetching key count", errors.SlogError(err))
		os.Exit(1)
	}
	if count == 0 {
		logger.LogAttrs(ctx, slog.LevelError, "no saved keys found, something is likely wrong")
		os.Exit(1)
	}
	logger.LogAttrs(ctx, slog.LevelInfo, "key count", slog.Int("count", count))

	q, err := questionnaire.Load("protocol")
	if err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error loading questionnaire", errors.SlogError(err))
		os.Exit(1)
	}
	assessments := repositories.NewAssessmentRepository(db, logger)
	var questions []models.Question
	if questions, err = assessments.LoadQuestions(ctx, q.Defaults()); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error loading saved answers", errors.SlogError(err))
		os.Exit(1)
	}
	logger.LogAttrs(ctx, slog.LevelInfo, "saved answers", slog.Int("questions", len(questions)))

	if err = db.Close(); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error closing database", errors.SlogError(err))
	}
	logger.LogAttrs(ctx, slog.LevelInfo, "Migration test successful 🙌", slog.Duration("duration", time.Since(start)))
	cancel()
	os.Exit(0)
}
