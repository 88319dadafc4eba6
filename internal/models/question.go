package models

import (
	"bytes"
	"encoding/json"
)

// Answer is the response recorded for a single question.
type Answer int

const (
	AnswerUnanswered Answer = iota
	AnswerYes
	AnswerNo
	AnswerRefused
)

// ParseAnswer parses the form value of an answer button. ok is false for unknown values.
func ParseAnswer(s string) (Answer, bool) {
	switch s {
	case "yes":
		return AnswerYes, true
	case "no":
		return AnswerNo, true
	case "refused":
		return AnswerRefused, true
	case "unanswered", "":
		return AnswerUnanswered, true
	default:
		return AnswerUnanswered, false
	}
}

// String returns the form value of the answer.
func (a Answer) String() string {
	switch a {
	case AnswerYes:
		return "yes"
	case AnswerNo:
		return "no"
	case AnswerRefused:
		return "refused"
	case AnswerUnanswered:
		return "unanswered"
	default:
		return "unanswered"
	}
}

// Label is the human-readable answer used in reports.
func (a Answer) Label() string {
	switch a {
	case AnswerYes:
		return "Yes"
	case AnswerNo:
		return "No"
	case AnswerRefused:
		return "Refused"
	case AnswerUnanswered:
		return "Not Answered"
	default:
		return "Not Answered"
	}
}

// MarshalJSON encodes the answer in the persisted format: null, true, false or "refused".
func (a Answer) MarshalJSON() ([]byte, error) {
	switch a {
	case AnswerYes:
		return []byte("true"), nil
	case AnswerNo:
		return []byte("false"), nil
	case AnswerRefused:
		return []byte(`"refused"`), nil
	case AnswerUnanswered:
		return []byte("null"), nil
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON decodes the persisted format. Values it does not recognise decode to AnswerUnanswered
// instead of failing, persisted answers are external data.
func (a *Answer) UnmarshalJSON(data []byte) error {
	switch string(bytes.TrimSpace(data)) {
	case "true":
		*a = AnswerYes
	case "false":
		*a = AnswerNo
	case `"refused"`:
		*a = AnswerRefused
	default:
		*a = AnswerUnanswered
	}
	return nil
}

// Question is a single screening question. Only Answer changes during an assessment.
type Question struct {
	ID         int    `json:"id" yaml:"id"`
	Text       string `json:"text" yaml:"text"`
	Answer     Answer `json:"answer" yaml:"-"`
	IsHighRisk bool   `json:"isHighRisk,omitempty" yaml:"highRisk"`
}

// DecodeQuestions parses the persisted JSON array of questions.
func DecodeQuestions(data []byte) ([]Question, error) {
	var questions []Question
	if err := json.Unmarshal(data, &questions); err != nil {
		return nil, err //nolint:wrapcheck // callers annotate
	}
	return questions, nil
}

// EncodeQuestions serialises questions to the persisted JSON array format.
func EncodeQuestions(questions []Question) ([]byte, error) {
	if questions == nil {
		questions = []Question{}
	}
	return json.Marshal(questions) //nolint:wrapcheck // callers annotate
}
