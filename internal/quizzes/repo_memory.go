package quizzes

import (
	"context"
	"sync"
)

// MemoryRepo is an in-memory implementation of QuizzesRepo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]Quiz // documentId|userId -> quiz
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		data: make(map[string]Quiz),
	}
}

// Upsert inserts or replaces the quiz for its (documentId, userId) pair.
func (r *MemoryRepo) Upsert(ctx context.Context, quiz Quiz) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[quizKey(quiz.DocumentID, quiz.UserID)] = quiz
	return nil
}

// GetByDocument fetches the quiz for a (document, user) pair.
func (r *MemoryRepo) GetByDocument(ctx context.Context, documentID, userId string) (Quiz, error) {
	if err := ctx.Err(); err != nil {
		return Quiz{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	quiz, ok := r.data[quizKey(documentID, userId)]
	if !ok {
		return Quiz{}, ErrNotFound
	}
	return quiz, nil
}

func quizKey(documentID, userId string) string {
	return documentID + "|" + userId
}

var _ QuizzesRepo = (*MemoryRepo)(nil)
