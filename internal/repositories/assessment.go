package repositories

import (
	"context"
	"database/sql"
	"github.com/swhawkins/LAPOK/internal/errors"
	"github.com/swhawkins/LAPOK/internal/models"
	"github.com/swhawkins/LAPOK/internal/questionnaire"
	"github.com/swhawkins/LAPOK/internal/sqlite"
	"log/slog"
	"time"
)

const (
	// KeyAnswers holds the JSON encoded question list including answers.
	KeyAnswers = "lapAnswers"
	// KeyTheme holds the selected colour theme.
	KeyTheme = "theme"
)

// AssessmentRepository persists the state of the single local assessment in the kv table.
type AssessmentRepository struct {
	db     *sqlite.Database
	logger *slog.Logger
	now    func() time.Time
}

func NewAssessmentRepository(db *sqlite.Database, logger *slog.Logger) *AssessmentRepository {
	return &AssessmentRepository{
		db:     db,
		logger: logger.With(slog.String("source", "AssessmentRepository")),
		now:    time.Now,
	}
}

type kvEntry struct {
	Key     string `db:"key"`
	Value   string `db:"value"`
	Updated string `db:"updated"`
}

// get returns the value stored under key. ok is false when the key is absent.
func (r *AssessmentRepository) get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := r.db.ReadOnly.GetContext(ctx, &value, `SELECT value FROM kv WHERE key = ?`, key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.Wrap(err, "select value", slog.String("key", key))
	}
	return value, true, nil
}

func (r *AssessmentRepository) set(ctx context.Context, key string, value string) error {
	entry := kvEntry{Key: key, Value: value, Updated: r.now().UTC().Format(time.RFC3339Nano)}
	stmt := `INSERT INTO kv (key, value, updated) VALUES (:key, :value, :updated)
ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated = excluded.updated`
	if _, err := r.db.ReadWrite.NamedExecContext(ctx, stmt, entry); err != nil {
		return errors.Wrap(err, "upsert value", slog.String("key", key))
	}
	return nil
}

// LoadQuestions returns defaults with the saved answers applied by question ID. Text and high risk flags always come
// from defaults, saved questions that defaults do not contain are ignored. If nothing is saved, or the saved value
// cannot be decoded, defaults are returned unanswered. Only database failures are reported as errors.
func (r *AssessmentRepository) LoadQuestions(ctx context.Context, defaults []models.Question) ([]models.Question, error) {
	value, ok, err := r.get(ctx, KeyAnswers)
	if err != nil {
		return nil, errors.Wrap(err, "load answers")
	}
	questions := append([]models.Question(nil), defaults...)
	questionnaire.SortByID(questions)
	if !ok {
		return questions, nil
	}

	saved, err := models.DecodeQuestions([]byte(value))
	if err != nil {
		r.logger.LogAttrs(ctx, slog.LevelWarn, "discarding malformed saved answers", errors.SlogError(err))
		return questions, nil
	}
	var ignored int
	for _, q := range saved {
		if !questionnaire.SetAnswer(questions, q.ID, q.Answer) {
			ignored++
		}
	}
	if ignored > 0 {
		r.logger.LogAttrs(ctx, slog.LevelWarn, "ignoring saved answers of unknown questions",
			slog.Int("ignored", ignored), slog.Int("saved", len(saved)))
	}
	return questions, nil
}

// SaveQuestions stores questions as the current answers.
func (r *AssessmentRepository) SaveQuestions(ctx context.Context, questions []models.Question) error {
	data, err := models.EncodeQuestions(questions)
	if err != nil {
		return errors.Wrap(err, "encode questions")
	}
	if err = r.set(ctx, KeyAnswers, string(data)); err != nil {
		return errors.Wrap(err, "save answers")
	}
	return nil
}

// Reset forgets the saved answers so that the next LoadQuestions returns the defaults.
func (r *AssessmentRepository) Reset(ctx context.Context) error {
	if _, err := r.db.ReadWrite.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, KeyAnswers); err != nil {
		return errors.Wrap(err, "delete answers")
	}
	r.logger.LogAttrs(ctx, slog.LevelInfo, "answers reset")
	return nil
}

// LoadTheme returns the saved theme, or fallback when none or an unknown value is saved.
func (r *AssessmentRepository) LoadTheme(ctx context.Context, fallback models.Theme) (models.Theme, error) {
	value, ok, err := r.get(ctx, KeyTheme)
	if err != nil {
		return fallback, errors.Wrap(err, "load theme")
	}
	if !ok {
		return fallback, nil
	}
	theme, known := models.ParseTheme(value)
	if !known {
		r.logger.LogAttrs(ctx, slog.LevelWarn, "ignoring unknown saved theme", slog.String("theme", value))
		return fallback, nil
	}
	return theme, nil
}

// SaveTheme stores the selected theme.
func (r *AssessmentRepository) SaveTheme(ctx context.Context, theme models.Theme) error {
	if err := r.set(ctx, KeyTheme, string(theme)); err != nil {
		return errors.Wrap(err, "save theme")
	}
	return nil
}
