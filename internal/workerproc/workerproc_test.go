package workerproc

import (
	"context"
	"errors"
	"testing"

	"doclearn-backend/internal/bootstrap"
	"doclearn-backend/internal/generation"
	"doclearn-backend/internal/queue"
)

type fakeProcessor struct {
	userID     string
	documentID string
	err        error
}

func (f *fakeProcessor) Generate(ctx context.Context, userID, documentID string) (generation.Result, error) {
	f.userID = userID
	f.documentID = documentID
	return generation.Result{}, f.err
}

func TestParseMessageEmptyBody(t *testing.T) {
	_, _, err := ParseMessage("   ")
	var empty ErrEmptyBody
	if !errors.As(err, &empty) {
		t.Fatalf("expected ErrEmptyBody, got %v", err)
	}
}

func TestParseMessageInvalidJSON(t *testing.T) {
	_, meta, err := ParseMessage("{not json")
	var decode ErrDecode
	if !errors.As(err, &decode) {
		t.Fatalf("expected ErrDecode, got %v", err)
	}
	if meta.BodyLen != len("{not json") {
		t.Fatalf("expected body len %d, got %d", len("{not json"), meta.BodyLen)
	}
	if meta.BodySHA == "" {
		t.Fatalf("expected body sha to be set")
	}
}

func TestParseMessageMissingIdentity(t *testing.T) {
	_, _, err := ParseMessage(`{"requestId":"req-1"}`)
	var missing ErrMissingIdentity
	if !errors.As(err, &missing) {
		t.Fatalf("expected ErrMissingIdentity, got %v", err)
	}
	if missing.RequestID != "req-1" {
		t.Fatalf("expected request id req-1, got %q", missing.RequestID)
	}
}

func TestParseMessageValid(t *testing.T) {
	msg, _, err := ParseMessage(`{"documentId":"doc-1","userId":"user-1","requestId":"req-1"}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if msg.DocumentID != "doc-1" || msg.UserID != "user-1" {
		t.Fatalf("unexpected message: %+v", msg)
	}
}

func TestHandleMessageRunsProcessor(t *testing.T) {
	proc := &fakeProcessor{}
	app := &bootstrap.App{Processor: proc}

	body := `{"documentId":"doc-1","userId":"user-1","requestId":"req-1"}`
	if err := HandleMessage(context.Background(), app, body); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if proc.userID != "user-1" || proc.documentID != "doc-1" {
		t.Fatalf("processor called with %q/%q", proc.userID, proc.documentID)
	}
}

func TestHandleMessageWrapsProcessorError(t *testing.T) {
	proc := &fakeProcessor{err: errors.New("boom")}
	app := &bootstrap.App{Processor: proc}

	body := `{"documentId":"doc-1","userId":"user-1"}`
	err := HandleMessage(context.Background(), app, body)
	var procErr ErrProcess
	if !errors.As(err, &procErr) {
		t.Fatalf("expected ErrProcess, got %v", err)
	}
	if procErr.DocumentID != "doc-1" {
		t.Fatalf("expected document id doc-1, got %q", procErr.DocumentID)
	}
}

func TestHandleMessageReusesParsedContext(t *testing.T) {
	proc := &fakeProcessor{}
	app := &bootstrap.App{Processor: proc}

	msg := queue.Message{DocumentID: "doc-2", UserID: "user-2"}
	ctx := WithParsedMessage(context.Background(), msg)

	// Body disagrees with the parsed message; the parsed one wins.
	if err := HandleMessage(ctx, app, `{"documentId":"other","userId":"other"}`); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if proc.documentID != "doc-2" {
		t.Fatalf("expected doc-2, got %q", proc.documentID)
	}
}
