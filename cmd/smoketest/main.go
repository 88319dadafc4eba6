package main

import (
	"context"
	"github.com/swhawkins/LAPOK/internal/e2etest"
	"github.com/swhawkins/LAPOK/internal/errors"
	"github.com/swhawkins/LAPOK/internal/logging"
	"log/slog"
	"net/http"
	"os"
	"time"
)

// TestAssessmentPage checks that the server is healthy and renders a page with the report form.
func TestAssessmentPage(client *e2etest.Client) error {
	ctx := context.Background()
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second) //nolint:mnd // 10 seconds
	defer cancel()

	resp, err := client.Get(ctx, "/api/healthy")
	if err != nil {
		return errors.Wrap(err, "get health check")
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return errors.New("unhealthy", slog.Int("status", resp.StatusCode))
	}

	doc, err := client.GetDoc(ctx, "/")
	if err != nil {
		return errors.Wrap(err, "get home page")
	}
	if doc.Find("form[action='/case'], form[action='/report']").Length() == 0 {
		return errors.New("neither case nor report form found")
	}
	return nil
}

func main() {
	logger := logging.NewLogger(os.Stdout, slog.LevelDebug, false)
	ctx := context.Background()

	if len(os.Args) != 2 { //nolint:mnd // we expect only the base URL to be passed as argument.
		logger.LogAttrs(ctx, slog.LevelError, "usage: smoketest <url>")
		os.Exit(1)
	}

	var (
		url    = os.Args[1]
		client *e2etest.Client
		err    error
	)
	ctx = logging.WithAttrs(ctx, slog.String("url", url))

	if client, err = e2etest.NewClient(url); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error creating client", errors.SlogError(err))
		os.Exit(1)
	}
	if err = TestAssessmentPage(client); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error testing assessment page", errors.SlogError(err))
		os.Exit(1)
	}

	logger.LogAttrs(ctx, slog.LevelInfo, "Smoke test successful 🙌")
	os.Exit(0)
}
