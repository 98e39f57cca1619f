package generation

import (
	"encoding/json"
	"fmt"

	"doclearn-backend/internal/quizzes"
	"doclearn-backend/internal/summaries"
)

// payload is the wire shape expected from the generator: a summary object
// and/or a quiz array. Both optional, but at least one must be present.
type payload struct {
	Summary *summaryPayload   `json:"summary"`
	Quiz    []json.RawMessage `json:"quiz"`
}

type summaryPayload struct {
	LongSummary  string   `json:"longSummary"`
	ShortSummary string   `json:"shortSummary"`
	KeyPoints    []string `json:"keyPoints"`
	MainTopics   []string `json:"mainTopics"`
	DocumentType string   `json:"documentType"`
	Difficulty   string   `json:"difficulty"`
}

// parsePayload validates and coerces the raw generator response. Individual
// malformed quiz entries are dropped rather than failing the whole response;
// the response as a whole fails only when it is not valid JSON or carries
// neither a summary nor any usable question.
func parsePayload(raw json.RawMessage) (*summaries.Fields, []quizzes.Question, error) {
	var p payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, nil, fmt.Errorf("malformed generation payload: %w", err)
	}

	var fields *summaries.Fields
	if p.Summary != nil {
		fields = &summaries.Fields{
			Detailed:     p.Summary.LongSummary,
			Brief:        p.Summary.ShortSummary,
			KeyPoints:    p.Summary.KeyPoints,
			MainTopics:   p.Summary.MainTopics,
			DocumentType: p.Summary.DocumentType,
			Difficulty:   p.Summary.Difficulty,
		}
	}

	questions := parseQuestions(p.Quiz)

	if fields == nil && len(questions) == 0 {
		return nil, nil, fmt.Errorf("generation payload omits both summary and quiz")
	}
	return fields, questions, nil
}

func parseQuestions(raw []json.RawMessage) []quizzes.Question {
	parsed := make([]quizzes.Question, 0, len(raw))
	for _, entry := range raw {
		var q quizzes.Question
		if err := json.Unmarshal(entry, &q); err != nil {
			continue
		}
		parsed = append(parsed, q)
	}
	return quizzes.NormalizeQuestions(parsed)
}
