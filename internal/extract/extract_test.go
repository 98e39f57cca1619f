package extract

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestTextPlainPassthrough(t *testing.T) {
	body := "line one\nline two\n"
	got, err := Text(context.Background(), "notes.txt", "text/plain", []byte(body))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != body {
		t.Fatalf("expected raw passthrough, got %q", got)
	}
}

func TestTextStripsMarkup(t *testing.T) {
	body := "<html><body><h1>Hello</h1><p>world &amp; beyond</p></body></html>"
	got, err := Text(context.Background(), "page.html", "text/html", []byte(body))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(got, "<") || strings.Contains(got, ">") {
		t.Fatalf("expected tags removed, got %q", got)
	}
	for _, word := range []string{"Hello", "world", "beyond"} {
		if !strings.Contains(got, word) {
			t.Fatalf("expected %q preserved, got %q", word, got)
		}
	}
	if !strings.Contains(got, "&") {
		t.Fatalf("expected entity decoded, got %q", got)
	}
}

func TestTextReindentsJSON(t *testing.T) {
	got, err := Text(context.Background(), "data.json", "application/json", []byte(`{"b":1,"a":[2,3]}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(got, "\n  ") {
		t.Fatalf("expected indented output, got %q", got)
	}
}

func TestTextMalformedJSONFallsBackToRaw(t *testing.T) {
	raw := `{"broken": `
	got, err := Text(context.Background(), "data.json", "application/json", []byte(raw))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != raw {
		t.Fatalf("expected raw fallback, got %q", got)
	}
}

func TestTextRendersCSV(t *testing.T) {
	got, err := Text(context.Background(), "table.csv", "text/csv", []byte("name,age\r\nada,36\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "name | age\nada | 36"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestTextUnknownTypeSyntheticDescription(t *testing.T) {
	data := make([]byte, 2_100_000)
	got, err := Text(context.Background(), "report.bin", "application/octet-stream", data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(got, "report.bin") {
		t.Fatalf("expected file name in description, got %q", got)
	}
	if !strings.Contains(got, "substantial") {
		t.Fatalf("expected substantial label, got %q", got)
	}
	if !strings.Contains(got, "1050 minutes") {
		t.Fatalf("expected 1050 minute reading time, got %q", got)
	}
}

func TestTextInvalidEncodingFails(t *testing.T) {
	_, err := Text(context.Background(), "notes.txt", "text/plain", []byte{0xff, 0xfe, 0xfd})
	if err == nil {
		t.Fatal("expected extraction error")
	}
	var extractErr *ExtractionError
	if !errors.As(err, &extractErr) {
		t.Fatalf("expected *ExtractionError, got %T", err)
	}
	if !strings.Contains(err.Error(), "notes.txt") {
		t.Fatalf("expected file name in error, got %q", err.Error())
	}
}

func TestTextCorruptPDFDegradesToDescription(t *testing.T) {
	got, err := Text(context.Background(), "paper.pdf", "application/pdf", []byte("not a pdf"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(got, "paper.pdf") {
		t.Fatalf("expected metadata description, got %q", got)
	}
}
