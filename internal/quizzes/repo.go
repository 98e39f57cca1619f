package quizzes

import "context"

// QuizzesRepo defines persistence operations for quizzes.
type QuizzesRepo interface {
	// Upsert inserts or replaces the quiz keyed on (documentId, userId).
	Upsert(ctx context.Context, quiz Quiz) error
	GetByDocument(ctx context.Context, documentID, userId string) (Quiz, error)
}
