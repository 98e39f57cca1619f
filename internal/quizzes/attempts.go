package quizzes

import "sync"

// AttemptStore holds in-flight quiz attempts in memory, keyed by user and
// document. Attempts are transient: starting over replaces the session and
// nothing is persisted.
type AttemptStore struct {
	mu   sync.Mutex
	data map[string]*Session
}

// NewAttemptStore constructs an AttemptStore.
func NewAttemptStore() *AttemptStore {
	return &AttemptStore{
		data: make(map[string]*Session),
	}
}

// Start creates a fresh session for the user's quiz, replacing any existing one.
func (a *AttemptStore) Start(userId, documentID string, questions []Question) *Session {
	a.mu.Lock()
	defer a.mu.Unlock()
	sess := NewSession(questions)
	a.data[quizKey(documentID, userId)] = sess
	return sess
}

// Get returns the active session for the user's quiz, if any.
func (a *AttemptStore) Get(userId, documentID string) (*Session, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	sess, ok := a.data[quizKey(documentID, userId)]
	return sess, ok
}

// Drop removes the session for the user's quiz.
func (a *AttemptStore) Drop(userId, documentID string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.data, quizKey(documentID, userId))
}
