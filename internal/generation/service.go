package generation

import (
	"context"
	"fmt"
	"sync"
	"time"

	"doclearn-backend/internal/documents"
	"doclearn-backend/internal/extract"
	"doclearn-backend/internal/llm"
	"doclearn-backend/internal/quizzes"
	"doclearn-backend/internal/shared/metrics"
	"doclearn-backend/internal/shared/telemetry"
	"doclearn-backend/internal/summaries"
)

// Quiz length scales with file size: bigger documents get more questions.
// The generator may return a different count; callers must not assume the
// requested count is exact.
func questionCountFor(fileSizeBytes int64) int {
	switch {
	case fileSizeBytes > 1_000_000:
		return 15
	case fileSizeBytes > 500_000:
		return 10
	default:
		return 5
	}
}

// Result is the outcome of a successful generation.
type Result struct {
	Summary   summaries.Sections `json:"summary"`
	Questions []quizzes.Question `json:"-"`
	QuizSize  int                `json:"quizSize"`
}

// Service orchestrates summary and quiz generation for documents.
type Service struct {
	Docs    documents.DocumentsRepo
	Quizzes *quizzes.Service
	LLM     llm.Client

	mu       sync.Mutex
	inflight map[string]struct{}
}

// NewService constructs a Service.
func NewService(docs documents.DocumentsRepo, quizzes *quizzes.Service, client llm.Client) *Service {
	return &Service{
		Docs:     docs,
		Quizzes:  quizzes,
		LLM:      client,
		inflight: make(map[string]struct{}),
	}
}

// Generate runs one generation attempt for a document: gate the content, call
// the external generator once, store the encoded summary, and upsert the
// quiz. At most one generation per document may be in flight. On a failed
// attempt the document is still marked processed so the UI never sticks in a
// retry loop; the summary is left as it was.
func (s *Service) Generate(ctx context.Context, userId, documentID string) (Result, error) {
	doc, err := s.Docs.GetByID(ctx, userId, documentID)
	if err != nil {
		return Result{}, err
	}

	if !extract.ValidateContent(doc.Content) {
		return Result{}, fmt.Errorf("%w: document content is too short for analysis", ErrInvalidInput)
	}

	if !s.claim(documentID) {
		return Result{}, ErrInFlight
	}
	defer s.release(documentID)

	count := questionCountFor(doc.FileSize)
	metrics.IncGenerationStarted()
	started := time.Now()

	raw, err := s.LLM.GenerateStudyAids(ctx, llm.GenerateInput{
		Content:       doc.Content,
		Title:         doc.Title,
		QuestionCount: count,
	})
	if err != nil {
		return Result{}, s.fail(ctx, doc, started, err.Error())
	}

	fields, questions, err := parsePayload(raw)
	if err != nil {
		return Result{}, s.fail(ctx, doc, started, err.Error())
	}

	encoded := doc.Summary
	if fields != nil {
		encoded = summaries.Encode(*fields)
	}
	if err := s.Docs.SetSummary(ctx, doc.UserID, doc.ID, encoded, true); err != nil {
		return Result{}, err
	}

	if len(questions) > 0 {
		if _, err := s.Quizzes.Save(ctx, doc.UserID, doc.ID, questions); err != nil {
			return Result{}, err
		}
	}

	elapsed := time.Since(started)
	metrics.IncGenerationCompleted()
	metrics.ObserveGenerationDurationMs(float64(elapsed.Milliseconds()))
	telemetry.Info("generation.completed", map[string]any{
		"documentId": doc.ID,
		"questions":  len(questions),
		"durationMs": elapsed.Milliseconds(),
	})

	return Result{
		Summary:   summaries.Decode(encoded),
		Questions: questions,
		QuizSize:  len(questions),
	}, nil
}

// Status reports the generation state of a document.
type Status struct {
	DocumentID string `json:"documentId"`
	Running    bool   `json:"running"`
	Processed  bool   `json:"processed"`
	HasSummary bool   `json:"hasSummary"`
}

// Status returns whether a generation is currently running for the document
// and whether a past attempt has completed.
func (s *Service) Status(ctx context.Context, userId, documentID string) (Status, error) {
	doc, err := s.Docs.GetByID(ctx, userId, documentID)
	if err != nil {
		return Status{}, err
	}
	s.mu.Lock()
	_, running := s.inflight[documentID]
	s.mu.Unlock()
	return Status{
		DocumentID: doc.ID,
		Running:    running,
		Processed:  doc.Processed,
		HasSummary: doc.Summary != "",
	}, nil
}

// fail marks the document processed with its summary untouched and returns a
// GenerationError carrying the upstream message.
func (s *Service) fail(ctx context.Context, doc documents.Document, started time.Time, message string) error {
	metrics.IncGenerationFailed()
	metrics.ObserveGenerationDurationMs(float64(time.Since(started).Milliseconds()))
	telemetry.Error("generation.failed", map[string]any{
		"documentId": doc.ID,
		"error":      message,
	})

	if err := s.Docs.SetSummary(ctx, doc.UserID, doc.ID, doc.Summary, true); err != nil {
		telemetry.Error("generation.mark_processed_failed", map[string]any{
			"documentId": doc.ID,
			"error":      err.Error(),
		})
	}

	return &GenerationError{Message: message}
}

func (s *Service) claim(documentID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inflight[documentID]; busy {
		return false
	}
	s.inflight[documentID] = struct{}{}
	return true
}

func (s *Service) release(documentID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inflight, documentID)
}
