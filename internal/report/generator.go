package report

import (
	"context"
	"github.com/swhawkins/LAPOK/internal/logging"
	"github.com/swhawkins/LAPOK/internal/models"
	"github.com/swhawkins/LAPOK/internal/questionnaire"
	"github.com/swhawkins/LAPOK/internal/risk"
	"log/slog"
	"time"
)

// Document is a generated report ready to be downloaded.
type Document struct {
	Filename string
	Level    models.DangerLevel
	Body     string
}

// Generator produces report documents for a questionnaire.
type Generator struct {
	logger        *slog.Logger
	questionnaire *questionnaire.Questionnaire
	// delay is waited before the report is rendered. Generation runs to completion once started.
	delay time.Duration
	now   func() time.Time
}

func NewGenerator(logger *slog.Logger, q *questionnaire.Questionnaire, delay time.Duration) *Generator {
	return &Generator{
		logger:        logger,
		questionnaire: q,
		delay:         delay,
		now:           time.Now,
	}
}

// WithClock replaces the clock used to date reports.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// Generate evaluates the answers and renders the report in the layout of the questionnaire.
func (g *Generator) Generate(ctx context.Context, record models.CaseRecord, questions []models.Question) Document {
	// The wait is not cancelled by ctx.
	if g.delay > 0 {
		time.Sleep(g.delay)
	}

	now := g.now()
	level := risk.Evaluate(g.questionnaire.Policy, questions)
	var body string
	switch g.questionnaire.Layout {
	case questionnaire.LayoutBrief:
		body = FormatBrief(questions, level, now)
	case questionnaire.LayoutFull:
		body = Format(record, questions, level, now)
	default:
		body = Format(record, questions, level, now)
	}

	doc := Document{Filename: Filename(now), Level: level, Body: body}
	ctx = logging.WithAttrs(ctx, slog.String("questionnaire", g.questionnaire.Name))
	g.logger.LogAttrs(ctx, slog.LevelInfo, "report generated",
		slog.String("filename", doc.Filename), slog.String("level", string(level)), slog.Int("bytes", len(body)))
	return doc
}
