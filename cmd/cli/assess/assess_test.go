package assess

import (
	"bytes"
	"context"
	"github.com/stretchr/testify/require"
	"github.com/swhawkins/LAPOK/internal/logging"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeAnswers(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "answers.json")
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))
	return path
}

func TestEvaluate(t *testing.T) {
	path := writeAnswers(t, `[
		{"id":2,"text":"b","answer":true,"isHighRisk":true},
		{"id":1,"text":"a","answer":"refused"},
		{"id":6,"text":"f","answer":true},
		{"id":7,"text":"g","answer":null}
	]`)

	tests := []struct {
		name   string
		policy string
		want   string
	}{
		{
			name:   "protocol",
			policy: "protocol",
			want:   "Danger Level: HIGH\nAnswered: 3 of 4\nYes: 1 counted, 1 high risk\n",
		},
		{
			name:   "simplified",
			policy: "simplified",
			want:   "Danger Level: MEDIUM\nAnswered: 3 of 4\nYes: 2 counted, 0 high risk\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			require.NoError(t, evaluate(&out, path, tt.policy))
			require.Equal(t, tt.want, out.String())
		})
	}

	t.Run("unknown policy", func(t *testing.T) {
		require.ErrorIs(t, evaluate(&bytes.Buffer{}, path, "strict"), ErrUnknownPolicy)
	})
	t.Run("malformed file", func(t *testing.T) {
		require.Error(t, evaluate(&bytes.Buffer{}, writeAnswers(t, `{"theme":"dark"}`), "protocol"))
	})
	t.Run("missing file", func(t *testing.T) {
		require.ErrorIs(t, evaluate(&bytes.Buffer{}, filepath.Join(t.TempDir(), "nope.json"), "protocol"),
			os.ErrNotExist)
	})
}

func TestPrintReport(t *testing.T) {
	path := writeAnswers(t, `[{"id":2,"text":"Second?","answer":false},{"id":1,"text":"First?","answer":true}]`)
	now := func() time.Time { return time.Date(2024, 3, 5, 14, 7, 9, 0, time.UTC) }
	logger := logging.NewLogger(&bytes.Buffer{}, slog.LevelDebug, false)

	var out bytes.Buffer
	require.NoError(t, printReport(context.Background(), &out, logger, path, "simplified", now))
	require.Equal(t, "Oklahoma LAP Assessment Report\n\n"+
		"Date: 3/5/2024\n"+
		"Time: 2:07:09 PM\n\n"+
		"Danger Level: LOW\n\n"+
		"Questions Answered:\n"+
		"1. First?\nAnswer: Yes\n\n"+
		"2. Second?\nAnswer: No\n", out.String())

	out.Reset()
	require.NoError(t, printReport(context.Background(), &out, logger, path, "protocol", now))
	require.Contains(t, out.String(), "Risk Level: LOW\n")
	require.Contains(t, out.String(), "Screening Result:\n")
}
