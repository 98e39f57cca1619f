package quizzes

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// PGRepo implements QuizzesRepo using Postgres. Questions are stored as JSONB.
type PGRepo struct {
	DB *sql.DB
}

// Upsert inserts or replaces the quiz for its (documentId, userId) pair.
func (r *PGRepo) Upsert(ctx context.Context, quiz Quiz) error {
	const query = `
INSERT INTO quizzes (id, document_id, user_id, questions, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (document_id, user_id)
DO UPDATE SET questions = EXCLUDED.questions, updated_at = EXCLUDED.updated_at`

	payload, err := json.Marshal(quiz.Questions)
	if err != nil {
		return fmt.Errorf("marshal questions: %w", err)
	}

	_, err = r.DB.ExecContext(
		ctx,
		query,
		quiz.ID,
		quiz.DocumentID,
		quiz.UserID,
		payload,
		quiz.CreatedAt,
		quiz.UpdatedAt,
	)
	return err
}

// GetByDocument fetches the quiz for a (document, user) pair.
func (r *PGRepo) GetByDocument(ctx context.Context, documentID, userId string) (Quiz, error) {
	const query = `
SELECT id, document_id, user_id, questions, created_at, updated_at
FROM quizzes
WHERE document_id = $1 AND user_id = $2
LIMIT 1`

	var quiz Quiz
	var payload []byte
	err := r.DB.QueryRowContext(ctx, query, documentID, userId).Scan(
		&quiz.ID,
		&quiz.DocumentID,
		&quiz.UserID,
		&payload,
		&quiz.CreatedAt,
		&quiz.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Quiz{}, ErrNotFound
		}
		return Quiz{}, err
	}

	if err := json.Unmarshal(payload, &quiz.Questions); err != nil {
		return Quiz{}, fmt.Errorf("unmarshal questions: %w", err)
	}
	return quiz, nil
}

var _ QuizzesRepo = (*PGRepo)(nil)
