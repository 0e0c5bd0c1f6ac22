// Package storage provides per-conversation history storage.
//
// Information Hiding:
// - Map storage structure hidden from users
// - Thread-safe access via RWMutex hidden behind interface
//
// History is process-memory only: entries are appended after a pipeline run
// completes and vanish when the process exits.

package storage

import (
	"context"
	"sync"

	"github.com/richinex/gamal/model"
)

// HistoryStore keeps an append-only inquiry history per conversation.
type HistoryStore interface {
	// Append adds a completed entry to a conversation's history.
	Append(ctx context.Context, conversationID string, entry model.HistoryEntry) error

	// Load returns the conversation history in insertion order.
	// Returns empty slice (not nil) if the conversation doesn't exist.
	Load(ctx context.Context, conversationID string) ([]model.HistoryEntry, error)

	// Reset deletes a conversation's history.
	Reset(ctx context.Context, conversationID string) error
}

// InMemoryHistory implements HistoryStore using an in-memory map.
// Data is lost when the process terminates.
type InMemoryHistory struct {
	mu            sync.RWMutex
	conversations map[string][]model.HistoryEntry
}

// NewInMemoryHistory creates a new in-memory history store.
func NewInMemoryHistory() *InMemoryHistory {
	return &InMemoryHistory{
		conversations: make(map[string][]model.HistoryEntry),
	}
}

// Append adds an entry to a conversation's history.
func (s *InMemoryHistory) Append(ctx context.Context, conversationID string, entry model.HistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.conversations[conversationID] = append(s.conversations[conversationID], entry)
	return nil
}

// Load returns the conversation history.
// Returns empty slice if the conversation doesn't exist.
func (s *InMemoryHistory) Load(ctx context.Context, conversationID string) ([]model.HistoryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history, ok := s.conversations[conversationID]
	if !ok {
		return []model.HistoryEntry{}, nil
	}

	// Return a copy to avoid external mutations
	copied := make([]model.HistoryEntry, len(history))
	copy(copied, history)
	return copied, nil
}

// Reset deletes a conversation's history.
func (s *InMemoryHistory) Reset(ctx context.Context, conversationID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.conversations, conversationID)
	return nil
}

// Verify InMemoryHistory implements HistoryStore
var _ HistoryStore = (*InMemoryHistory)(nil)
