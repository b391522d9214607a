package quiz

import (
	"context"
	"errors"
	"sync"
)

var (
	ErrQuizNotFound    = errors.New("quiz not found")
	ErrSessionNotFound = errors.New("session not found")
)

// QuizSummary is the listing row for the admin surface.
type QuizSummary struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Questions int    `json:"questions"`
	CreatedAt int64  `json:"created_at"`
}

// Store persists quizzes and session snapshots. The state machine itself runs
// on Session values; callers save a snapshot after every accepted operation.
type Store interface {
	PutQuiz(ctx context.Context, qz Quiz) error
	GetQuiz(ctx context.Context, id string) (Quiz, error)
	ListQuizzes(ctx context.Context) ([]QuizSummary, error)
	DeleteQuiz(ctx context.Context, id string) error

	PutSession(ctx context.Context, s *Session) error
	GetSession(ctx context.Context, id string) (*Session, error)
	DeleteSession(ctx context.Context, id string) error
}

type memoryStore struct {
	mu       sync.RWMutex
	quizzes  map[string]Quiz
	sessions map[string]Session
}

// NewInMemoryStore backs a dev deployment (and tests) with process memory.
func NewInMemoryStore() Store {
	return &memoryStore{
		quizzes:  map[string]Quiz{},
		sessions: map[string]Session{},
	}
}

func (m *memoryStore) PutQuiz(_ context.Context, qz Quiz) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.quizzes[qz.ID] = qz
	return nil
}

func (m *memoryStore) GetQuiz(_ context.Context, id string) (Quiz, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	qz, ok := m.quizzes[id]
	if !ok {
		return Quiz{}, ErrQuizNotFound
	}
	return qz, nil
}

func (m *memoryStore) ListQuizzes(_ context.Context) ([]QuizSummary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]QuizSummary, 0, len(m.quizzes))
	for _, qz := range m.quizzes {
		out = append(out, QuizSummary{ID: qz.ID, Title: qz.Title, Questions: len(qz.Questions), CreatedAt: qz.CreatedAt})
	}
	return out, nil
}

func (m *memoryStore) DeleteQuiz(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.quizzes[id]; !ok {
		return ErrQuizNotFound
	}
	delete(m.quizzes, id)
	return nil
}

func (m *memoryStore) PutSession(_ context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = *s
	return nil
}

func (m *memoryStore) GetSession(_ context.Context, id string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	cp := s
	if cp.Questions == nil && cp.QuizID != "" {
		qz, err := m.GetQuiz(context.Background(), cp.QuizID)
		if err != nil {
			return nil, err
		}
		cp.Questions = qz.Questions
	}
	return &cp, nil
}

func (m *memoryStore) DeleteSession(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}
