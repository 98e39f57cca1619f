package quizzes

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Service contains business logic for quizzes and quiz attempts.
type Service struct {
	Repo     QuizzesRepo
	Attempts *AttemptStore
}

// NewService constructs a Service.
func NewService(repo QuizzesRepo) *Service {
	return &Service{
		Repo:     repo,
		Attempts: NewAttemptStore(),
	}
}

// Get returns the quiz for a (document, user) pair.
func (s *Service) Get(ctx context.Context, userId, documentID string) (Quiz, error) {
	if userId == "" || documentID == "" {
		return Quiz{}, ErrInvalidInput
	}
	return s.Repo.GetByDocument(ctx, documentID, userId)
}

// Save upserts the question set for a (document, user) pair, replacing any
// previous quiz. Any stale in-memory attempt over the old question set is
// dropped.
func (s *Service) Save(ctx context.Context, userId, documentID string, questions []Question) (Quiz, error) {
	if userId == "" || documentID == "" {
		return Quiz{}, ErrInvalidInput
	}
	if err := ValidateQuestions(questions); err != nil {
		return Quiz{}, err
	}

	now := time.Now().UTC()
	quiz := Quiz{
		ID:         uuid.NewString(),
		DocumentID: documentID,
		UserID:     userId,
		Questions:  questions,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.Repo.Upsert(ctx, quiz); err != nil {
		return Quiz{}, err
	}

	s.Attempts.Drop(userId, documentID)
	return quiz, nil
}

// StartAttempt begins a fresh attempt over the stored quiz.
func (s *Service) StartAttempt(ctx context.Context, userId, documentID string) (*Session, error) {
	quiz, err := s.Get(ctx, userId, documentID)
	if err != nil {
		return nil, err
	}
	return s.Attempts.Start(userId, documentID, quiz.Questions), nil
}

// Attempt returns the active attempt for the user's quiz.
func (s *Service) Attempt(userId, documentID string) (*Session, error) {
	sess, ok := s.Attempts.Get(userId, documentID)
	if !ok {
		return nil, ErrNoActiveAttempt
	}
	return sess, nil
}
