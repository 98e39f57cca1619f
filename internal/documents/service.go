package documents

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"doclearn-backend/internal/extract"
	"doclearn-backend/internal/shared/metrics"
	"doclearn-backend/internal/shared/storage/object"
	"doclearn-backend/internal/shared/telemetry"
	"doclearn-backend/internal/shared/util"
	"doclearn-backend/internal/summaries"
)

// Upload limits enforced at the request boundary.
const (
	MaxFileSize  = 50 << 20  // per file
	MaxFileCount = 10        // per batch
	MaxTotalSize = 200 << 20 // per batch
)

var allowedExtensions = map[string]struct{}{
	".pdf": {}, ".doc": {}, ".docx": {}, ".ppt": {}, ".pptx": {},
	".txt": {}, ".html": {}, ".css": {}, ".js": {}, ".json": {},
	".xml": {}, ".csv": {}, ".xls": {}, ".xlsx": {}, ".rtf": {},
	".odt": {}, ".epub": {},
}

// AllowedExtension reports whether the file extension is on the upload allow-list.
func AllowedExtension(fileName string) bool {
	_, ok := allowedExtensions[util.FileExt(fileName)]
	return ok
}

// UploadFile is one file in an upload batch.
type UploadFile struct {
	Name string
	Type string
	Data []byte
}

// UploadResult reports the per-item outcome of a batch upload.
type UploadResult struct {
	FileName   string `json:"fileName"`
	DocumentID string `json:"documentId,omitempty"`
	Status     string `json:"status"` // created | rejected | failed
	Error      string `json:"error,omitempty"`
}

// Service contains business logic for documents.
type Service struct {
	Store object.ObjectStore
	Repo  DocumentsRepo
}

// UploadBatch processes files sequentially: each file is validated, extracted,
// saved to object storage, and recorded. Validation and extraction failures
// are reported per item and do not stop the batch; a persistence failure
// aborts the loop, leaving earlier saves intact, and is returned alongside
// the results accumulated so far.
func (s *Service) UploadBatch(ctx context.Context, userId string, files []UploadFile) ([]UploadResult, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no files provided", ErrInvalidInput)
	}
	if len(files) > MaxFileCount {
		return nil, fmt.Errorf("%w: at most %d files per upload", ErrInvalidInput, MaxFileCount)
	}

	var total int64
	for _, f := range files {
		total += int64(len(f.Data))
	}
	if total > MaxTotalSize {
		return nil, fmt.Errorf("%w: upload exceeds total size limit", ErrInvalidInput)
	}

	results := make([]UploadResult, 0, len(files))
	for _, f := range files {
		item := UploadResult{FileName: f.Name}

		if reason := validateFile(f); reason != "" {
			item.Status = "rejected"
			item.Error = reason
			metrics.IncUploadRejected()
			results = append(results, item)
			continue
		}

		text, err := extract.Text(ctx, f.Name, f.Type, f.Data)
		if err != nil {
			var extractErr *extract.ExtractionError
			if errors.As(err, &extractErr) {
				item.Status = "failed"
				item.Error = err.Error()
				results = append(results, item)
				continue
			}
			return results, err
		}

		storageKey, _, mimeType, err := s.Store.Save(ctx, userId, f.Name, bytes.NewReader(f.Data))
		if err != nil {
			return results, fmt.Errorf("save %s: %w", f.Name, err)
		}

		fileType := f.Type
		if fileType == "" {
			fileType = mimeType
		}

		// Persist the extracted text next to the original when the store
		// supports keyed writes, so workers can reread it without reparsing.
		extractedKey := ""
		if saver, ok := s.Store.(object.KeyedSaver); ok {
			extractedKey = storageKey + ".extracted.txt"
			if _, err := saver.SaveWithKey(ctx, extractedKey, "text/plain; charset=utf-8", strings.NewReader(text)); err != nil {
				return results, fmt.Errorf("save extracted text for %s: %w", f.Name, err)
			}
		}

		doc := Document{
			ID:               uuid.NewString(),
			UserID:           userId,
			Title:            titleFromFileName(f.Name),
			FileName:         f.Name,
			FileType:         fileType,
			FileSize:         int64(len(f.Data)),
			Content:          text,
			Processed:        false,
			StorageKey:       storageKey,
			ExtractedTextKey: extractedKey,
			UploadDate:       time.Now().UTC(),
		}

		if err := s.Repo.Create(ctx, doc); err != nil {
			return results, fmt.Errorf("create document %s: %w", f.Name, err)
		}

		metrics.IncUploadAccepted()
		telemetry.Info("document.created", map[string]any{
			"documentId": doc.ID,
			"fileName":   doc.FileName,
			"sizeBytes":  doc.FileSize,
		})

		item.Status = "created"
		item.DocumentID = doc.ID
		results = append(results, item)
	}

	return results, nil
}

// Get returns a document by ID scoped to the owning user.
func (s *Service) Get(ctx context.Context, userId, documentID string) (Document, error) {
	if userId == "" || documentID == "" {
		return Document{}, ErrInvalidInput
	}
	return s.Repo.GetByID(ctx, userId, documentID)
}

// List returns the user's documents, newest first.
func (s *Service) List(ctx context.Context, userId string, limit, offset int) ([]Document, error) {
	if userId == "" {
		return nil, ErrInvalidInput
	}
	return s.Repo.ListByUser(ctx, userId, limit, offset)
}

// Summary returns the decoded summary sections for a document. Decoding is
// total: an absent summary yields placeholder sections with Processed
// reporting whether generation has been attempted.
func (s *Service) Summary(ctx context.Context, userId, documentID string) (summaries.Sections, bool, error) {
	doc, err := s.Get(ctx, userId, documentID)
	if err != nil {
		return summaries.Sections{}, false, err
	}
	return summaries.Decode(doc.Summary), doc.Processed, nil
}

func validateFile(f UploadFile) string {
	if strings.TrimSpace(f.Name) == "" {
		return "file name is required"
	}
	if !AllowedExtension(f.Name) {
		return fmt.Sprintf("file type %s is not supported", util.FileExt(f.Name))
	}
	if len(f.Data) == 0 {
		return "file is empty"
	}
	if int64(len(f.Data)) > MaxFileSize {
		return "file exceeds the 50MB limit"
	}
	return ""
}

func titleFromFileName(name string) string {
	if i := strings.LastIndex(name, "."); i > 0 {
		return name[:i]
	}
	return name
}
