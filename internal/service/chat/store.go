package chat

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/zhouzirui/ollama-chat/backend/internal/model/chat"
)

var (
	ErrInvalidSession  = errors.New("session not found")
	ErrNoActiveSession = errors.New("no active session")
	ErrEmptyInput      = errors.New("input text is empty")
	ErrUnsupportedFile = errors.New("unsupported file type")
	ErrInvalidEncoding = errors.New("file content is not valid utf-8")
)

// Store owns every conversation of one browser context and the label that is
// currently on screen.
type Store struct {
	mu     sync.RWMutex
	order  []chat.Session
	turns  map[string][]chat.Turn
	active string
}

// NewStore returns an empty store with no active session.
func NewStore() *Store {
	return &Store{
		turns: make(map[string][]chat.Turn),
	}
}

// CreateSession allocates the next "Chat N" label and makes it active.
func (s *Store) CreateSession(_ context.Context) chat.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	session := chat.Session{
		Label:     fmt.Sprintf("Chat %d", len(s.order)+1),
		CreatedAt: time.Now().UTC(),
	}

	s.order = append(s.order, session)
	s.turns[session.Label] = make([]chat.Turn, 0, 16)
	s.active = session.Label
	return session
}

// SelectSession switches the active session.
func (s *Store) SelectSession(_ context.Context, label string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.turns[label]; !ok {
		return fmt.Errorf("select %q: %w", label, ErrInvalidSession)
	}
	s.active = label
	return nil
}

// Active returns the label of the session on screen, if any.
func (s *Store) Active(_ context.Context) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active, s.active != ""
}

// AppendUserTurn records text typed (or a file label produced) by the user.
func (s *Store) AppendUserTurn(_ context.Context, label, text string) error {
	return s.appendTurn(label, chat.UserTurn(text))
}

// AppendAgentTurn records a reply produced by the model.
func (s *Store) AppendAgentTurn(_ context.Context, label, text string) error {
	return s.appendTurn(label, chat.AgentTurn(text))
}

func (s *Store) appendTurn(label string, turn chat.Turn) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	turns, ok := s.turns[label]
	if !ok {
		return fmt.Errorf("append to %q: %w", label, ErrInvalidSession)
	}
	s.turns[label] = append(turns, turn)
	return nil
}

// ListSessions returns sessions in creation order.
func (s *Store) ListSessions(_ context.Context) []chat.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]chat.Session(nil), s.order...)
}

// GetTurns returns a copy of the session's turns.
func (s *Store) GetTurns(_ context.Context, label string) ([]chat.Turn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	turns, ok := s.turns[label]
	if !ok {
		return nil, fmt.Errorf("turns of %q: %w", label, ErrInvalidSession)
	}

	copied := make([]chat.Turn, len(turns))
	copy(copied, turns)
	return copied, nil
}
