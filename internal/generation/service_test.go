package generation

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"doclearn-backend/internal/documents"
	"doclearn-backend/internal/llm"
	"doclearn-backend/internal/quizzes"
)

const testContent = "alpha bravo charlie delta echo foxtrot golf hotel india juliet kilo lima mike november oscar"

type fakeLLM struct {
	payload json.RawMessage
	err     error

	started  chan struct{}
	release  chan struct{}
	lastCall llm.GenerateInput
}

func (f *fakeLLM) GenerateStudyAids(ctx context.Context, input llm.GenerateInput) (json.RawMessage, error) {
	f.lastCall = input
	if f.started != nil {
		close(f.started)
	}
	if f.release != nil {
		<-f.release
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.payload, nil
}

func newTestService(t *testing.T, client llm.Client) (*Service, *documents.MemoryRepo, *quizzes.Service) {
	t.Helper()
	docs := documents.NewMemoryRepo()
	quizSvc := quizzes.NewService(quizzes.NewMemoryRepo())
	return NewService(docs, quizSvc, client), docs, quizSvc
}

func seedDocument(t *testing.T, docs *documents.MemoryRepo, size int64) documents.Document {
	t.Helper()
	doc := documents.Document{
		ID:         "doc-1",
		UserID:     "user-1",
		Title:      "notes",
		FileName:   "notes.txt",
		FileType:   "text/plain",
		FileSize:   size,
		Content:    testContent,
		UploadDate: time.Now().UTC(),
	}
	if err := docs.Create(context.Background(), doc); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return doc
}

func TestQuestionCountStepFunction(t *testing.T) {
	cases := []struct {
		size int64
		want int
	}{
		{2_000_000, 15},
		{1_000_001, 15},
		{1_000_000, 10},
		{500_001, 10},
		{500_000, 5},
		{100, 5},
	}
	for _, tc := range cases {
		if got := questionCountFor(tc.size); got != tc.want {
			t.Errorf("questionCountFor(%d) = %d, want %d", tc.size, got, tc.want)
		}
	}
}

func TestGenerateSuccessStoresSummaryAndQuiz(t *testing.T) {
	client := &fakeLLM{payload: json.RawMessage(`{
		"summary": {
			"longSummary": "the long one",
			"shortSummary": "the short one",
			"keyPoints": ["first", "second"],
			"mainTopics": ["topic a", "topic b"],
			"documentType": "Article",
			"difficulty": "Beginner"
		},
		"quiz": [
			{"id": 1, "type": "short", "question": "Capital of France?", "correctAnswer": "Paris", "explanation": "geography"}
		]
	}`)}
	svc, docs, quizSvc := newTestService(t, client)
	seedDocument(t, docs, 1_200_000)

	result, err := svc.Generate(context.Background(), "user-1", "doc-1")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if client.lastCall.QuestionCount != 15 {
		t.Fatalf("question count = %d, want 15 for a >1MB file", client.lastCall.QuestionCount)
	}
	if result.Summary.Brief != "the short one" {
		t.Fatalf("brief = %q", result.Summary.Brief)
	}
	if result.QuizSize != 1 {
		t.Fatalf("quizSize = %d", result.QuizSize)
	}

	doc, err := docs.GetByID(context.Background(), "user-1", "doc-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if !doc.Processed {
		t.Fatal("expected processed=true after generation")
	}
	if !strings.Contains(doc.Summary, "## Brief Summary") {
		t.Fatalf("stored summary not encoded: %q", doc.Summary)
	}

	quiz, err := quizSvc.Get(context.Background(), "user-1", "doc-1")
	if err != nil {
		t.Fatalf("quiz get: %v", err)
	}
	if len(quiz.Questions) != 1 || quiz.Questions[0].CorrectAnswer != "Paris" {
		t.Fatalf("unexpected quiz: %+v", quiz.Questions)
	}
}

func TestGenerateFailureMarksProcessed(t *testing.T) {
	client := &fakeLLM{err: errors.New("quota exceeded")}
	svc, docs, _ := newTestService(t, client)
	seedDocument(t, docs, 100)

	_, err := svc.Generate(context.Background(), "user-1", "doc-1")
	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("expected *GenerationError, got %v", err)
	}
	if !strings.Contains(genErr.Message, "quota exceeded") {
		t.Fatalf("expected upstream message, got %q", genErr.Message)
	}

	doc, err := docs.GetByID(context.Background(), "user-1", "doc-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if !doc.Processed {
		t.Fatal("failed generation must still mark the document processed")
	}
	if doc.Summary != "" {
		t.Fatalf("summary should stay unset on failure, got %q", doc.Summary)
	}
}

func TestGenerateMalformedPayloadFails(t *testing.T) {
	client := &fakeLLM{payload: json.RawMessage(`{"neither": true}`)}
	svc, docs, _ := newTestService(t, client)
	seedDocument(t, docs, 100)

	_, err := svc.Generate(context.Background(), "user-1", "doc-1")
	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("expected *GenerationError, got %v", err)
	}

	doc, _ := docs.GetByID(context.Background(), "user-1", "doc-1")
	if !doc.Processed {
		t.Fatal("expected processed=true after malformed payload")
	}
}

func TestGenerateRejectsThinContentBeforeCalling(t *testing.T) {
	client := &fakeLLM{payload: json.RawMessage(`{}`)}
	svc, docs, _ := newTestService(t, client)

	doc := documents.Document{
		ID:      "doc-thin",
		UserID:  "user-1",
		Content: "too short",
	}
	if err := docs.Create(context.Background(), doc); err != nil {
		t.Fatalf("seed: %v", err)
	}

	_, err := svc.Generate(context.Background(), "user-1", "doc-thin")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if client.lastCall.Content != "" {
		t.Fatal("external call must not happen for invalid content")
	}
}

func TestStatusReflectsRunningAndProcessed(t *testing.T) {
	client := &fakeLLM{
		payload: json.RawMessage(`{"summary": {"shortSummary": "s"}}`),
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	svc, docs, _ := newTestService(t, client)
	seedDocument(t, docs, 100)

	status, err := svc.Status(context.Background(), "user-1", "doc-1")
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if status.Running || status.Processed || status.HasSummary {
		t.Fatalf("fresh document should be idle, got %+v", status)
	}

	done := make(chan error, 1)
	go func() {
		_, err := svc.Generate(context.Background(), "user-1", "doc-1")
		done <- err
	}()
	<-client.started

	status, err = svc.Status(context.Background(), "user-1", "doc-1")
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if !status.Running {
		t.Fatal("expected running=true while generation is in flight")
	}

	close(client.release)
	if err := <-done; err != nil {
		t.Fatalf("generation failed: %v", err)
	}

	status, err = svc.Status(context.Background(), "user-1", "doc-1")
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if status.Running {
		t.Fatal("expected running=false after generation")
	}
	if !status.Processed || !status.HasSummary {
		t.Fatalf("expected processed with a stored summary, got %+v", status)
	}

	_, err = svc.Status(context.Background(), "user-1", "missing")
	if !errors.Is(err, documents.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown document, got %v", err)
	}
}

func TestGenerateAtMostOneInFlightPerDocument(t *testing.T) {
	client := &fakeLLM{
		payload: json.RawMessage(`{"summary": {"shortSummary": "s"}}`),
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	svc, docs, _ := newTestService(t, client)
	seedDocument(t, docs, 100)

	done := make(chan error, 1)
	go func() {
		_, err := svc.Generate(context.Background(), "user-1", "doc-1")
		done <- err
	}()

	<-client.started

	_, err := svc.Generate(context.Background(), "user-1", "doc-1")
	if !errors.Is(err, ErrInFlight) {
		t.Fatalf("expected ErrInFlight for overlapping request, got %v", err)
	}

	close(client.release)
	if err := <-done; err != nil {
		t.Fatalf("first generation failed: %v", err)
	}
}
