package questionnaire_test

import (
	"github.com/stretchr/testify/require"
	"github.com/swhawkins/LAPOK/internal/models"
	"github.com/swhawkins/LAPOK/internal/questionnaire"
	"github.com/swhawkins/LAPOK/internal/risk"
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Builtin(t *testing.T) {
	protocol, err := questionnaire.Load("protocol")
	require.NoError(t, err)
	require.Equal(t, risk.Protocol(), protocol.Policy)
	require.Equal(t, questionnaire.LayoutFull, protocol.Layout)
	questions := protocol.Defaults()
	require.Len(t, questions, 11)
	for i, q := range questions {
		require.Equal(t, i+1, q.ID)
		require.Equal(t, q.ID <= 5, q.IsHighRisk, "question %d", q.ID)
		require.Equal(t, models.AnswerUnanswered, q.Answer)
	}
	require.Equal(t, "Is the person unemployed?", questions[10].Text)

	simplified, err := questionnaire.Load("simplified")
	require.NoError(t, err)
	require.Equal(t, risk.Simplified(), simplified.Policy)
	require.Equal(t, questionnaire.LayoutBrief, simplified.Layout)
	require.Len(t, simplified.Defaults(), 15)
	for _, q := range simplified.Defaults() {
		require.False(t, q.IsHighRisk)
	}

	_, err = questionnaire.Load("danger-assessment")
	require.ErrorIs(t, err, questionnaire.ErrUnknown)
}

func TestDefaults_ReturnsCopy(t *testing.T) {
	q, err := questionnaire.Load("protocol")
	require.NoError(t, err)
	first := q.Defaults()
	require.True(t, questionnaire.SetAnswer(first, 3, models.AnswerYes))
	require.False(t, questionnaire.SetAnswer(first, 42, models.AnswerYes))
	require.Equal(t, models.AnswerUnanswered, q.Defaults()[2].Answer)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	err := os.WriteFile(path, []byte(`name: custom
title: Custom
scoring:
  highRiskTrigger: true
  thresholds:
    - minYes: 2
      level: medium
questions:
  - id: 2
    text: Second
  - id: 1
    text: First
    highRisk: true
`), 0o600)
	require.NoError(t, err)

	q, err := questionnaire.Load(path)
	require.NoError(t, err)
	require.Equal(t, "custom", q.Policy.Name)
	require.Equal(t, questionnaire.LayoutFull, q.Layout)
	questions := q.Defaults()
	require.Equal(t, 1, questions[0].ID)
	require.True(t, questions[0].IsHighRisk)
	require.Equal(t, 2, questions[1].ID)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{name: "not yaml", yaml: "::"},
		{name: "unknown field", yaml: "name: x\npolicy: protocol\nweight: 3\nquestions:\n  - id: 1\n    text: a\n"},
		{name: "unknown policy", yaml: "name: x\npolicy: strict\nquestions:\n  - id: 1\n    text: a\n"},
		{name: "no questions", yaml: "name: x\npolicy: protocol\n"},
		{name: "duplicate id", yaml: "name: x\npolicy: protocol\nquestions:\n  - id: 1\n    text: a\n  - id: 1\n    text: b\n"},
		{name: "zero id", yaml: "name: x\npolicy: protocol\nquestions:\n  - id: 0\n    text: a\n"},
		{name: "empty text", yaml: "name: x\npolicy: protocol\nquestions:\n  - id: 1\n    text: ' '\n"},
		{name: "bad layout", yaml: "name: x\nlayout: poster\npolicy: protocol\nquestions:\n  - id: 1\n    text: a\n"},
		{
			name: "bad level",
			yaml: "name: x\nscoring:\n  thresholds:\n    - minYes: 1\n      level: extreme\nquestions:\n  - id: 1\n    text: a\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := questionnaire.Parse([]byte(tt.yaml))
			require.ErrorIs(t, err, questionnaire.ErrInvalid)
		})
	}
}
