package repositories_test

import (
	"context"
	"github.com/swhawkins/LAPOK/internal/sqlite"
	"github.com/swhawkins/LAPOK/internal/testhelpers"
	"io"
	"log/slog"
	"testing"
)

// newTestDB creates a new in-memory database with the application schema for testing purposes.
func newTestDB(t *testing.T, logSink io.Writer) (*sqlite.Database, *slog.Logger) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	logger := testhelpers.NewLogger(logSink)
	db, err := sqlite.NewDatabase(ctx, ":memory:", logger)
	if err != nil {
		cancel()
		t.Fatal(err)
	}
	t.Cleanup(func() {
		cancel()
		if err = db.Close(); err != nil {
			t.Error(err)
		}
	})
	return db, logger
}
