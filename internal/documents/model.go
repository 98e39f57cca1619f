package documents

import "time"

// Document represents an uploaded document owned by a user. Content holds the
// extracted text and is immutable after creation. Summary holds the encoded
// summary blob and stays empty until generation succeeds; Processed flips to
// true once generation has been attempted, regardless of outcome.
type Document struct {
	ID               string
	UserID           string
	Title            string
	FileName         string
	FileType         string
	FileSize         int64
	Content          string
	Summary          string
	Processed        bool
	StorageKey       string
	ExtractedTextKey string
	UploadDate       time.Time
}
