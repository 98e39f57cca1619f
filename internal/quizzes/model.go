package quizzes

import (
	"fmt"
	"strings"
	"time"
)

// Question types. The question list arrives from an external generator and is
// validated into this tagged shape at the boundary.
const (
	TypeMCQ   = "mcq"
	TypeFill  = "fill"
	TypeShort = "short"
)

// Question is one quiz item. Order in the quiz defines presentation order.
// Options is present only for mcq questions.
type Question struct {
	ID            int      `json:"id"`
	Type          string   `json:"type"`
	QuestionText  string   `json:"question"`
	Options       []string `json:"options,omitempty"`
	CorrectAnswer string   `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
}

// Quiz is the stored question set for a (document, user) pair. One quiz per
// pair: regeneration replaces the question set.
type Quiz struct {
	ID         string
	DocumentID string
	UserID     string
	Questions  []Question
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NormalizeQuestions validates and coerces an externally-supplied question
// list. Entries with an unknown type, empty question text, or empty correct
// answer are dropped; mcq entries additionally need at least two options.
// Surviving questions get stable sequential integer ids starting at 1.
func NormalizeQuestions(raw []Question) []Question {
	out := make([]Question, 0, len(raw))
	for _, q := range raw {
		q.Type = strings.ToLower(strings.TrimSpace(q.Type))
		q.QuestionText = strings.TrimSpace(q.QuestionText)
		q.CorrectAnswer = strings.TrimSpace(q.CorrectAnswer)
		q.Explanation = strings.TrimSpace(q.Explanation)

		switch q.Type {
		case TypeMCQ:
			q.Options = trimOptions(q.Options)
			if len(q.Options) < 2 {
				continue
			}
		case TypeFill, TypeShort:
			q.Options = nil
		default:
			continue
		}

		if q.QuestionText == "" || q.CorrectAnswer == "" {
			continue
		}

		q.ID = len(out) + 1
		out = append(out, q)
	}
	return out
}

// ValidateQuestions reports the first problem in an already-normalized list,
// or nil when every entry is well-formed.
func ValidateQuestions(questions []Question) error {
	for i, q := range questions {
		switch q.Type {
		case TypeMCQ:
			if len(q.Options) < 2 {
				return fmt.Errorf("question %d: mcq requires at least two options", i+1)
			}
		case TypeFill, TypeShort:
		default:
			return fmt.Errorf("question %d: unknown type %q", i+1, q.Type)
		}
		if strings.TrimSpace(q.QuestionText) == "" {
			return fmt.Errorf("question %d: empty question text", i+1)
		}
		if strings.TrimSpace(q.CorrectAnswer) == "" {
			return fmt.Errorf("question %d: empty correct answer", i+1)
		}
	}
	return nil
}

func trimOptions(options []string) []string {
	out := make([]string, 0, len(options))
	for _, opt := range options {
		opt = strings.TrimSpace(opt)
		if opt != "" {
			out = append(out, opt)
		}
	}
	return out
}
