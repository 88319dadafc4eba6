package main

import (
	"context"
	"github.com/stretchr/testify/require"
	"github.com/swhawkins/LAPOK/internal/e2etest"
	"io"
	"net/url"
	"testing"
)

// startTestServer starts a server with an in-memory database. env overrides the test defaults.
func startTestServer(t *testing.T, logSink io.Writer, env map[string]string) *e2etest.Server {
	t.Helper()
	lookupEnv := func(key string) (string, bool) {
		if v, ok := env[key]; ok {
			return v, true
		}
		switch key {
		case "LAP_ADDR":
			return "localhost:0", true
		case "LAP_SQLITE_URL":
			return ":memory:", true
		default:
			return "", false
		}
	}
	server, err := e2etest.StartServer(context.Background(), logSink, lookupEnv, run)
	require.NoError(t, err)
	t.Cleanup(server.Stop)
	return server
}

func validCase() url.Values {
	return url.Values{
		"officer-name":         {"Jane Doe"},
		"badge-number":         {"B-17"},
		"case-number":          {"2024-001"},
		"victim-name":          {"Alex Roe"},
		"victim-dob":           {"1990-01-02"},
		"victim-address":       {"1 Main St"},
		"victim-phone":         {"555-0100"},
		"victim-relationship":  {"Spouse"},
		"agency":               {"Shawnee Police Department"},
		"suspect-name":         {"Sam Roe"},
		"suspect-dob":          {"1988-07-09"},
		"suspect-address":      {"1 Main St"},
		"suspect-phone":        {"555-0101"},
		"suspect-relationship": {"Spouse"},
	}
}

// submitCase fills in the case form and returns the assessment page.
func submitCase(ctx context.Context, t *testing.T, client *e2etest.Client) {
	t.Helper()
	doc, err := client.SubmitForm(ctx, "/", "/case", validCase())
	require.NoError(t, err)
	require.Equal(t, 1, doc.Find("#danger-level").Length(), "expected the assessment page")
}
