package repositories_test

import (
	"bytes"
	"context"
	"github.com/stretchr/testify/require"
	"github.com/swhawkins/LAPOK/internal/models"
	"github.com/swhawkins/LAPOK/internal/questionnaire"
	"github.com/swhawkins/LAPOK/internal/repositories"
	"io"
	"testing"
)

func defaults(t *testing.T) []models.Question {
	t.Helper()
	q, err := questionnaire.Load("protocol")
	require.NoError(t, err)
	return q.Defaults()
}

func TestAssessmentRepository_Questions(t *testing.T) {
	db, logger := newTestDB(t, io.Discard)
	repo := repositories.NewAssessmentRepository(db, logger)
	ctx := context.Background()

	got, err := repo.LoadQuestions(ctx, defaults(t))
	require.NoError(t, err)
	require.Equal(t, defaults(t), got, "nothing saved yet")

	questionnaire.SetAnswer(got, 1, models.AnswerYes)
	questionnaire.SetAnswer(got, 6, models.AnswerRefused)
	questionnaire.SetAnswer(got, 7, models.AnswerNo)
	require.NoError(t, repo.SaveQuestions(ctx, got))

	loaded, err := repo.LoadQuestions(ctx, defaults(t))
	require.NoError(t, err)
	require.Equal(t, got, loaded)

	// Saving again overwrites.
	questionnaire.SetAnswer(got, 1, models.AnswerNo)
	require.NoError(t, repo.SaveQuestions(ctx, got))
	loaded, err = repo.LoadQuestions(ctx, defaults(t))
	require.NoError(t, err)
	require.Equal(t, models.AnswerNo, loaded[0].Answer)

	require.NoError(t, repo.Reset(ctx))
	loaded, err = repo.LoadQuestions(ctx, defaults(t))
	require.NoError(t, err)
	require.Equal(t, defaults(t), loaded)
}

func TestAssessmentRepository_LoadQuestionsMalformed(t *testing.T) {
	tests := []struct {
		name  string
		value string
		warns bool
	}{
		{name: "not json", value: "{not json", warns: true},
		{name: "wrong shape", value: `{"id": 1}`, warns: true},
		{name: "null", value: "null", warns: false},
		{name: "empty list", value: "[]", warns: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logs bytes.Buffer
			db, logger := newTestDB(t, &logs)
			repo := repositories.NewAssessmentRepository(db, logger)
			ctx := context.Background()
			_, err := db.ReadWrite.ExecContext(ctx, `INSERT INTO kv (key, value) VALUES (?, ?)`,
				repositories.KeyAnswers, tt.value)
			require.NoError(t, err)

			got, err := repo.LoadQuestions(ctx, defaults(t))
			require.NoError(t, err)
			require.Equal(t, defaults(t), got)
			if tt.warns {
				require.Contains(t, logs.String(), "discarding malformed saved answers")
			}
		})
	}
}

func TestAssessmentRepository_LoadQuestionsLenientAnswers(t *testing.T) {
	db, logger := newTestDB(t, io.Discard)
	repo := repositories.NewAssessmentRepository(db, logger)
	ctx := context.Background()
	saved := `[{"id":2,"text":"B","answer":"maybe"},{"id":1,"text":"A","answer":true,"isHighRisk":true}]`
	_, err := db.ReadWrite.ExecContext(ctx, `INSERT INTO kv (key, value) VALUES (?, ?)`, repositories.KeyAnswers, saved)
	require.NoError(t, err)

	got, err := repo.LoadQuestions(ctx, []models.Question{
		{ID: 2, Text: "Second", Answer: models.AnswerUnanswered, IsHighRisk: false},
		{ID: 1, Text: "First", Answer: models.AnswerUnanswered, IsHighRisk: false},
	})
	require.NoError(t, err)
	require.Equal(t, []models.Question{
		{ID: 1, Text: "First", Answer: models.AnswerYes, IsHighRisk: false},
		{ID: 2, Text: "Second", Answer: models.AnswerUnanswered, IsHighRisk: false},
	}, got)
}

func TestAssessmentRepository_LoadQuestionsOtherQuestionnaire(t *testing.T) {
	var logs bytes.Buffer
	db, logger := newTestDB(t, &logs)
	repo := repositories.NewAssessmentRepository(db, logger)
	ctx := context.Background()

	// Answers saved by the protocol questionnaire.
	protocol := defaults(t)
	questionnaire.SetAnswer(protocol, 1, models.AnswerYes)
	questionnaire.SetAnswer(protocol, 11, models.AnswerNo)
	require.NoError(t, repo.SaveQuestions(ctx, protocol))

	simplified, err := questionnaire.Load("simplified")
	require.NoError(t, err)
	got, err := repo.LoadQuestions(ctx, simplified.Defaults())
	require.NoError(t, err)

	require.Len(t, got, 15)
	want := simplified.Defaults()
	for i := range got {
		require.Equal(t, want[i].ID, got[i].ID)
		require.Equal(t, want[i].Text, got[i].Text)
		require.False(t, got[i].IsHighRisk, "flags come from the definition")
	}
	require.Equal(t, models.AnswerYes, got[0].Answer)
	require.Equal(t, models.AnswerNo, got[10].Answer)
	require.Equal(t, models.AnswerUnanswered, got[11].Answer)

	// Going back drops the answers of questions the protocol set does not have.
	questionnaire.SetAnswer(got, 14, models.AnswerYes)
	require.NoError(t, repo.SaveQuestions(ctx, got))
	back, err := repo.LoadQuestions(ctx, defaults(t))
	require.NoError(t, err)
	require.Len(t, back, 11)
	require.True(t, back[0].IsHighRisk)
	require.Contains(t, logs.String(), "ignoring saved answers of unknown questions")
}

func TestAssessmentRepository_Theme(t *testing.T) {
	db, logger := newTestDB(t, io.Discard)
	repo := repositories.NewAssessmentRepository(db, logger)
	ctx := context.Background()

	theme, err := repo.LoadTheme(ctx, models.ThemeLight)
	require.NoError(t, err)
	require.Equal(t, models.ThemeLight, theme)

	require.NoError(t, repo.SaveTheme(ctx, models.ThemeDark))
	theme, err = repo.LoadTheme(ctx, models.ThemeLight)
	require.NoError(t, err)
	require.Equal(t, models.ThemeDark, theme)

	// Reset keeps the theme.
	require.NoError(t, repo.Reset(ctx))
	theme, err = repo.LoadTheme(ctx, models.ThemeLight)
	require.NoError(t, err)
	require.Equal(t, models.ThemeDark, theme)

	_, err = db.ReadWrite.ExecContext(ctx, `UPDATE kv SET value = 'sepia' WHERE key = ?`, repositories.KeyTheme)
	require.NoError(t, err)
	theme, err = repo.LoadTheme(ctx, models.ThemeDark)
	require.NoError(t, err)
	require.Equal(t, models.ThemeDark, theme)
}
