// Package questionnaire provides the question sets of the assessment together with the policy used to score them.
package questionnaire

import (
	"bytes"
	"cmp"
	"embed"
	"github.com/swhawkins/LAPOK/internal/errors"
	"github.com/swhawkins/LAPOK/internal/models"
	"github.com/swhawkins/LAPOK/internal/risk"
	"gopkg.in/yaml.v3"
	"log/slog"
	"os"
	"slices"
	"strings"
)

//go:embed *.yaml
var builtins embed.FS

var (
	ErrUnknown = errors.NewSentinel("unknown questionnaire")
	ErrInvalid = errors.NewSentinel("invalid questionnaire")
)

// Layout selects the report layout for a questionnaire.
type Layout string

const (
	// LayoutFull is the officer report with case information and protocol follow-up.
	LayoutFull Layout = "full"
	// LayoutBrief lists only the danger level and the answers.
	LayoutBrief Layout = "brief"
)

// Questionnaire is a named set of questions and the policy that scores them.
type Questionnaire struct {
	Name     string
	Title    string
	Subtitle string
	Layout   Layout
	Policy   risk.Policy
	// questions are the unanswered questions sorted by ID.
	questions []models.Question
}

type definition struct {
	Name      string            `yaml:"name"`
	Title     string            `yaml:"title"`
	Subtitle  string            `yaml:"subtitle"`
	Layout    Layout            `yaml:"layout"`
	Policy    string            `yaml:"policy"`
	Scoring   *risk.Policy      `yaml:"scoring"`
	Questions []models.Question `yaml:"questions"`
}

// Builtin returns the names of the embedded questionnaires.
func Builtin() []string {
	return []string{"protocol", "simplified"}
}

// Load returns the built-in questionnaire called nameOrPath or, if nameOrPath ends in .yaml or .yml, reads the
// questionnaire definition from that file.
func Load(nameOrPath string) (*Questionnaire, error) {
	var (
		data []byte
		err  error
	)
	if strings.HasSuffix(nameOrPath, ".yaml") || strings.HasSuffix(nameOrPath, ".yml") {
		if data, err = os.ReadFile(nameOrPath); err != nil {
			return nil, errors.Wrap(err, "read questionnaire file", slog.String("path", nameOrPath))
		}
	} else if !slices.Contains(Builtin(), nameOrPath) {
		return nil, errors.Wrap(ErrUnknown, "lookup builtin", slog.String("name", nameOrPath))
	} else if data, err = builtins.ReadFile(nameOrPath + ".yaml"); err != nil {
		return nil, errors.Wrap(err, "read builtin questionnaire", slog.String("name", nameOrPath))
	}

	var q *Questionnaire
	if q, err = Parse(data); err != nil {
		return nil, errors.Wrap(err, "parse questionnaire", slog.String("source", nameOrPath))
	}
	return q, nil
}

// Parse parses and validates a YAML questionnaire definition.
func Parse(data []byte) (*Questionnaire, error) {
	var def definition
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&def); err != nil {
		return nil, errors.Wrap(ErrInvalid, "decode yaml", slog.String("cause", err.Error()))
	}

	var policy risk.Policy
	switch {
	case def.Scoring != nil:
		policy = *def.Scoring
		if policy.Name == "" {
			policy.Name = def.Name
		}
	default:
		var ok bool
		if policy, ok = risk.PolicyByName(def.Policy); !ok {
			return nil, errors.Wrap(ErrInvalid, "unknown policy", slog.String("policy", def.Policy))
		}
	}
	if err := policy.Validate(); err != nil {
		return nil, errors.Wrap(errors.Join(ErrInvalid, err), "validate policy")
	}

	layout := cmp.Or(def.Layout, LayoutFull)
	if layout != LayoutFull && layout != LayoutBrief {
		return nil, errors.Wrap(ErrInvalid, "unknown layout", slog.String("layout", string(layout)))
	}
	if len(def.Questions) == 0 {
		return nil, errors.Wrap(ErrInvalid, "no questions")
	}

	seen := make(map[int]bool, len(def.Questions))
	for _, question := range def.Questions {
		if question.ID < 1 {
			return nil, errors.Wrap(ErrInvalid, "question id must be positive", slog.Int("id", question.ID))
		}
		if seen[question.ID] {
			return nil, errors.Wrap(ErrInvalid, "duplicate question id", slog.Int("id", question.ID))
		}
		seen[question.ID] = true
		if strings.TrimSpace(question.Text) == "" {
			return nil, errors.Wrap(ErrInvalid, "question text missing", slog.Int("id", question.ID))
		}
	}

	questions := slices.Clone(def.Questions)
	SortByID(questions)

	return &Questionnaire{
		Name:      def.Name,
		Title:     def.Title,
		Subtitle:  def.Subtitle,
		Layout:    layout,
		Policy:    policy,
		questions: questions,
	}, nil
}

// Defaults returns a fresh unanswered copy of the questions sorted by ID.
func (q *Questionnaire) Defaults() []models.Question {
	questions := slices.Clone(q.questions)
	for i := range questions {
		questions[i].Answer = models.AnswerUnanswered
	}
	return questions
}

// SortByID sorts questions by ID in place.
func SortByID(questions []models.Question) {
	slices.SortStableFunc(questions, func(a, b models.Question) int {
		return cmp.Compare(a.ID, b.ID)
	})
}

// SetAnswer sets the answer of the question with id and reports whether such a question exists.
func SetAnswer(questions []models.Question, id int, answer models.Answer) bool {
	for i := range questions {
		if questions[i].ID == id {
			questions[i].Answer = answer
			return true
		}
	}
	return false
}
