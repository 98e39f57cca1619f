package quizzes

import (
	"math"
	"strings"
)

// Score-percentage brackets. Message tiers drive congratulatory copy, color
// tiers drive the three-color result scheme; the two threshold sets differ
// and both are part of the contract.
const (
	messageTierTop  = 90
	messageTierMid  = 70
	colorTierGreen  = 80
	colorTierYellow = 60
)

// Session walks a fixed ordered question list one index at a time, records
// answers, and scores on completion. It is a plain state machine: all
// transitions happen synchronously and the question list is never mutated.
type Session struct {
	questions []Question
	current   int
	answers   []string
	pending   string
	completed bool
	score     int
}

// NewSession starts a fresh attempt over the given questions.
func NewSession(questions []Question) *Session {
	return &Session{
		questions: questions,
		answers:   make([]string, len(questions)),
	}
}

// SelectAnswer stores the pending answer for the current question without
// advancing.
func (s *Session) SelectAnswer(text string) {
	if s.completed {
		return
	}
	s.pending = text
}

// Advance records the pending answer at the current index and moves forward.
// On the last question it completes the session and scores it. An empty
// (post-trim) pending answer is rejected with no state change.
func (s *Session) Advance() error {
	if s.completed {
		return ErrInvalidInput
	}
	if strings.TrimSpace(s.pending) == "" {
		return ErrAnswerRequired
	}

	s.answers[s.current] = s.pending

	if s.current == len(s.questions)-1 {
		s.completed = true
		s.score = s.computeScore()
		s.pending = ""
		return nil
	}

	s.current++
	// Restore any answer recorded earlier for this index.
	s.pending = s.answers[s.current]
	return nil
}

// Retreat moves back one index, restoring the previously recorded answer as
// the pending answer. Invalid at index zero or after completion.
func (s *Session) Retreat() error {
	if s.completed || s.current == 0 {
		return ErrInvalidInput
	}
	// Keep the current pending answer so forward navigation restores it.
	s.answers[s.current] = s.pending
	s.current--
	s.pending = s.answers[s.current]
	return nil
}

// Reset discards all recorded answers and returns to the initial state.
// Idempotent; the question list is untouched.
func (s *Session) Reset() {
	s.current = 0
	s.answers = make([]string, len(s.questions))
	s.pending = ""
	s.completed = false
	s.score = 0
}

// CurrentIndex returns the active question index.
func (s *Session) CurrentIndex() int { return s.current }

// Pending returns the pending answer for the current question.
func (s *Session) Pending() string { return s.pending }

// Completed reports whether the session has been scored.
func (s *Session) Completed() bool { return s.completed }

// Score returns the number of correct answers; valid once completed.
func (s *Session) Score() int { return s.score }

// Total returns the number of questions.
func (s *Session) Total() int { return len(s.questions) }

// Questions returns the underlying question list.
func (s *Session) Questions() []Question { return s.questions }

// Percentage returns the rounded score percentage.
func (s *Session) Percentage() int {
	if len(s.questions) == 0 {
		return 0
	}
	return int(math.Round(100 * float64(s.score) / float64(len(s.questions))))
}

// MessageTier buckets the percentage for congratulatory copy: top at 90,
// mid at 70, low below.
func (s *Session) MessageTier() string {
	pct := s.Percentage()
	switch {
	case pct >= messageTierTop:
		return "top"
	case pct >= messageTierMid:
		return "mid"
	default:
		return "low"
	}
}

// ColorTier buckets the percentage for the result color: green at 80,
// yellow at 60, red below.
func (s *Session) ColorTier() string {
	pct := s.Percentage()
	switch {
	case pct >= colorTierGreen:
		return "green"
	case pct >= colorTierYellow:
		return "yellow"
	default:
		return "red"
	}
}

func (s *Session) computeScore() int {
	score := 0
	for i, q := range s.questions {
		if answersMatch(s.answers[i], q.CorrectAnswer) {
			score++
		}
	}
	return score
}

// answersMatch applies the scoring rule: case-insensitive, whitespace-trimmed
// exact equality. No partial credit, no fuzzy matching.
func answersMatch(submitted, correct string) bool {
	return strings.EqualFold(strings.TrimSpace(submitted), strings.TrimSpace(correct))
}
