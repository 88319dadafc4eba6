// Package risk classifies an answered questionnaire into a danger level.
//
// Both question sets of the program are scored by the same [Evaluate] function. They differ only in their
// [Policy]: the protocol policy lets a single flagged question decide the outcome, the simplified policy counts
// affirmative answers against two thresholds.
package risk

import (
	"cmp"
	"github.com/swhawkins/LAPOK/internal/errors"
	"github.com/swhawkins/LAPOK/internal/models"
	"log/slog"
	"slices"
)

var ErrInvalidPolicy = errors.NewSentinel("invalid scoring policy")

// Threshold maps a minimum number of counted yes answers to a danger level.
type Threshold struct {
	MinYes int                `yaml:"minYes"`
	Level  models.DangerLevel `yaml:"level"`
}

// Policy configures how answers are scored.
type Policy struct {
	Name string `yaml:"name"`
	// HighRiskTrigger makes a yes to any question flagged as high risk classify the screening as high. Flagged
	// questions are then left out of the yes count used for the thresholds.
	HighRiskTrigger bool `yaml:"highRiskTrigger"`
	// Thresholds are checked from the largest MinYes down, the first one reached decides the level.
	Thresholds []Threshold `yaml:"thresholds"`
}

// Protocol is the policy of the officer protocol question set: a yes to any of the flagged questions, or three
// yes answers to the other questions, triggers the protocol referral.
func Protocol() Policy {
	return Policy{
		Name:            "protocol",
		HighRiskTrigger: true,
		Thresholds:      []Threshold{{MinYes: 3, Level: models.DangerHigh}}, //nolint:mnd // protocol rule
	}
}

// Simplified is the policy of the shorter self-report question set without flagged questions.
func Simplified() Policy {
	return Policy{
		Name:            "simplified",
		HighRiskTrigger: false,
		Thresholds: []Threshold{
			{MinYes: 4, Level: models.DangerHigh},   //nolint:mnd // simplified rule
			{MinYes: 2, Level: models.DangerMedium}, //nolint:mnd // simplified rule
		},
	}
}

// PolicyByName returns one of the built-in policies.
func PolicyByName(name string) (Policy, bool) {
	switch name {
	case "protocol":
		return Protocol(), true
	case "simplified":
		return Simplified(), true
	default:
		return Policy{}, false //nolint:exhaustruct // zero value with ok=false
	}
}

// Validate checks that all threshold levels are known and thresholds are positive.
func (p Policy) Validate() error {
	for _, th := range p.Thresholds {
		if !th.Level.Valid() {
			return errors.Wrap(ErrInvalidPolicy, "unknown level",
				slog.String("policy", p.Name), slog.String("level", string(th.Level)))
		}
		if th.MinYes < 1 {
			return errors.Wrap(ErrInvalidPolicy, "threshold must be positive",
				slog.String("policy", p.Name), slog.Int("min_yes", th.MinYes))
		}
	}
	return nil
}

// Tally holds the counts that a classification is based on.
type Tally struct {
	// HighRiskYes is the number of flagged questions answered yes. Always zero when the policy has no trigger.
	HighRiskYes int
	// CountedYes is the number of yes answers compared against the thresholds.
	CountedYes int
	// Answered is the number of questions with any answer including refusals.
	Answered int
	// Total is the number of questions.
	Total int
}

// Count tallies the answers according to policy. Unanswered and refused questions never count as yes.
func Count(policy Policy, questions []models.Question) Tally {
	var t Tally
	t.Total = len(questions)
	for _, q := range questions {
		if q.Answer != models.AnswerUnanswered {
			t.Answered++
		}
		if q.Answer != models.AnswerYes {
			continue
		}
		if policy.HighRiskTrigger && q.IsHighRisk {
			t.HighRiskYes++
			continue
		}
		t.CountedYes++
	}
	return t
}

// Evaluate classifies questions according to policy.
//
// The result only depends on how many questions of each kind were answered yes, not on their order. An empty set
// of questions is low.
func Evaluate(policy Policy, questions []models.Question) models.DangerLevel {
	return Classify(policy, Count(policy, questions))
}

// Classify maps a tally to a danger level.
func Classify(policy Policy, t Tally) models.DangerLevel {
	if policy.HighRiskTrigger && t.HighRiskYes > 0 {
		return models.DangerHigh
	}
	thresholds := slices.SortedFunc(slices.Values(policy.Thresholds), func(a, b Threshold) int {
		return cmp.Compare(b.MinYes, a.MinYes)
	})
	for _, th := range thresholds {
		if t.CountedYes >= th.MinYes {
			return th.Level
		}
	}
	return models.DangerLow
}
