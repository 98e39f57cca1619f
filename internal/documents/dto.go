package documents

import "time"

// DocumentResponse is the outward-facing list representation of a document.
type DocumentResponse struct {
	DocumentID string    `json:"documentId"`
	Title      string    `json:"title"`
	FileName   string    `json:"fileName"`
	FileType   string    `json:"fileType"`
	FileSize   int64     `json:"fileSize"`
	Processed  bool      `json:"processed"`
	HasSummary bool      `json:"hasSummary"`
	UploadDate time.Time `json:"uploadDate"`
}

// DocumentDetailResponse adds the extracted content for the viewer.
type DocumentDetailResponse struct {
	DocumentResponse
	Content string `json:"content"`
}

func toResponse(doc Document) DocumentResponse {
	return DocumentResponse{
		DocumentID: doc.ID,
		Title:      doc.Title,
		FileName:   doc.FileName,
		FileType:   doc.FileType,
		FileSize:   doc.FileSize,
		Processed:  doc.Processed,
		HasSummary: doc.Summary != "",
		UploadDate: doc.UploadDate,
	}
}

func toDetailResponse(doc Document) DocumentDetailResponse {
	return DocumentDetailResponse{
		DocumentResponse: toResponse(doc),
		Content:          doc.Content,
	}
}
