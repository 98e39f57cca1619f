// Package summaries implements the tagged-text storage format for document
// summaries. A summary is stored as a single text blob with five "##" sections
// and decoded back into structured fields for display; decode is total and
// backfills any missing field with a fixed placeholder.
package summaries

import (
	"fmt"
	"strings"
)

// Fields is the structured summary produced by generation, before encoding.
type Fields struct {
	Detailed     string
	Brief        string
	KeyPoints    []string
	MainTopics   []string
	DocumentType string
	Difficulty   string
}

// Sections is the decoded view of a stored summary blob. Every field is
// guaranteed non-empty: decode substitutes placeholders where parsing finds
// nothing.
type Sections struct {
	Detailed     string   `json:"detailed"`
	Brief        string   `json:"brief"`
	KeyPoints    []string `json:"keyPoints"`
	MainTopics   string   `json:"mainTopics"`
	DocumentType string   `json:"documentType"`
	Difficulty   string   `json:"difficulty"`
}

const (
	headerDetailed       = "Detailed Summary"
	headerBrief          = "Brief Summary"
	headerKeyPoints      = "Key Points"
	headerMainTopics     = "Main Topics"
	headerClassification = "Document Classification"

	bulletMarker = "- "

	fallbackDetailed   = "Detailed summary not available"
	fallbackBrief      = "Brief summary not available"
	fallbackKeyPoint   = "Key points not available"
	fallbackMainTopics = "Main topics not available"
	fallbackUnknown    = "Unknown"
)

// Encode renders fields as the storage blob: five "##" sections in fixed order.
func Encode(f Fields) string {
	var b strings.Builder

	fmt.Fprintf(&b, "## %s\n%s\n\n", headerDetailed, strings.TrimSpace(f.Detailed))
	fmt.Fprintf(&b, "## %s\n%s\n\n", headerBrief, strings.TrimSpace(f.Brief))

	b.WriteString("## " + headerKeyPoints + "\n")
	for _, point := range f.KeyPoints {
		point = strings.TrimSpace(point)
		if point == "" {
			continue
		}
		b.WriteString(bulletMarker + point + "\n")
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "## %s\n%s\n\n", headerMainTopics, strings.Join(trimAll(f.MainTopics), ", "))

	fmt.Fprintf(&b, "## %s\nType: %s\nDifficulty: %s\n",
		headerClassification,
		strings.TrimSpace(f.DocumentType),
		strings.TrimSpace(f.Difficulty),
	)

	return b.String()
}

// Decode parses a stored blob back into sections. It never fails: blobs with
// missing or unrecognizable sections come back with per-field placeholders.
func Decode(blob string) Sections {
	out := Sections{}

	for _, section := range strings.Split(blob, "##") {
		section = strings.TrimSpace(section)
		if section == "" {
			continue
		}
		lines := strings.Split(section, "\n")
		header := strings.ToLower(strings.TrimSpace(lines[0]))
		body := lines[1:]

		switch {
		case strings.Contains(header, strings.ToLower(headerDetailed)):
			out.Detailed = strings.TrimSpace(strings.Join(body, "\n"))
		case strings.Contains(header, strings.ToLower(headerBrief)):
			out.Brief = strings.TrimSpace(strings.Join(body, "\n"))
		case strings.Contains(header, strings.ToLower(headerKeyPoints)):
			out.KeyPoints = parseBullets(body)
		case strings.Contains(header, strings.ToLower(headerMainTopics)):
			out.MainTopics = strings.TrimSpace(strings.Join(body, "\n"))
		case strings.Contains(header, strings.ToLower(headerClassification)):
			out.DocumentType, out.Difficulty = parseClassification(body)
		}
	}

	applyFallbacks(&out)
	return out
}

func parseBullets(lines []string) []string {
	points := make([]string, 0, len(lines))
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, strings.TrimSpace(bulletMarker)) {
			continue
		}
		point := strings.TrimSpace(strings.TrimPrefix(trimmed, strings.TrimSpace(bulletMarker)))
		if point != "" {
			points = append(points, point)
		}
	}
	return points
}

func parseClassification(lines []string) (docType string, difficulty string) {
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		lower := strings.ToLower(trimmed)
		switch {
		case strings.HasPrefix(lower, "type:"):
			docType = strings.TrimSpace(trimmed[len("type:"):])
		case strings.HasPrefix(lower, "difficulty:"):
			difficulty = strings.TrimSpace(trimmed[len("difficulty:"):])
		}
	}
	return docType, difficulty
}

func applyFallbacks(s *Sections) {
	if s.Detailed == "" {
		s.Detailed = fallbackDetailed
	}
	if s.Brief == "" {
		s.Brief = fallbackBrief
	}
	if len(s.KeyPoints) == 0 {
		s.KeyPoints = []string{fallbackKeyPoint}
	}
	if s.MainTopics == "" {
		s.MainTopics = fallbackMainTopics
	}
	if s.DocumentType == "" {
		s.DocumentType = fallbackUnknown
	}
	if s.Difficulty == "" {
		s.Difficulty = fallbackUnknown
	}
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
