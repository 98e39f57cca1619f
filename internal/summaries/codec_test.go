package summaries

import (
	"reflect"
	"testing"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	fields := Fields{
		Detailed:     "A long walk through the material.\nSecond paragraph of detail.",
		Brief:        "Short version.",
		KeyPoints:    []string{"first point", "second point", "third point"},
		MainTopics:   []string{"history", "geography"},
		DocumentType: "Textbook",
		Difficulty:   "Intermediate",
	}

	got := Decode(Encode(fields))

	if got.Detailed != fields.Detailed {
		t.Errorf("detailed = %q, want %q", got.Detailed, fields.Detailed)
	}
	if got.Brief != fields.Brief {
		t.Errorf("brief = %q, want %q", got.Brief, fields.Brief)
	}
	if !reflect.DeepEqual(got.KeyPoints, fields.KeyPoints) {
		t.Errorf("keyPoints = %v, want %v", got.KeyPoints, fields.KeyPoints)
	}
	if got.MainTopics != "history, geography" {
		t.Errorf("mainTopics = %q, want %q", got.MainTopics, "history, geography")
	}
	if got.DocumentType != "Textbook" {
		t.Errorf("documentType = %q", got.DocumentType)
	}
	if got.Difficulty != "Intermediate" {
		t.Errorf("difficulty = %q", got.Difficulty)
	}
}

func TestDecodeTotality(t *testing.T) {
	want := Sections{
		Detailed:     "Detailed summary not available",
		Brief:        "Brief summary not available",
		KeyPoints:    []string{"Key points not available"},
		MainTopics:   "Main topics not available",
		DocumentType: "Unknown",
		Difficulty:   "Unknown",
	}

	for _, blob := range []string{"", "garbage with no headers", "   \n\n  "} {
		got := Decode(blob)
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Decode(%q) = %+v, want all fallbacks", blob, got)
		}
	}
}

func TestDecodePartialBlobBackfills(t *testing.T) {
	blob := "## Brief Summary\nJust the short one.\n"
	got := Decode(blob)

	if got.Brief != "Just the short one." {
		t.Errorf("brief = %q", got.Brief)
	}
	if got.Detailed != "Detailed summary not available" {
		t.Errorf("detailed fallback missing, got %q", got.Detailed)
	}
	if len(got.KeyPoints) != 1 || got.KeyPoints[0] != "Key points not available" {
		t.Errorf("keyPoints fallback missing, got %v", got.KeyPoints)
	}
}

func TestDecodeHeaderMatchingIsCaseInsensitive(t *testing.T) {
	blob := "## DETAILED SUMMARY\ncontent here\n\n## document classification\nType: Report\nDifficulty: Easy\n"
	got := Decode(blob)

	if got.Detailed != "content here" {
		t.Errorf("detailed = %q", got.Detailed)
	}
	if got.DocumentType != "Report" || got.Difficulty != "Easy" {
		t.Errorf("classification = %q/%q", got.DocumentType, got.Difficulty)
	}
}

func TestDecodeDropsEmptyBullets(t *testing.T) {
	blob := "## Key Points\n- real point\n-   \nnot a bullet line\n- another\n"
	got := Decode(blob)

	want := []string{"real point", "another"}
	if !reflect.DeepEqual(got.KeyPoints, want) {
		t.Errorf("keyPoints = %v, want %v", got.KeyPoints, want)
	}
}
