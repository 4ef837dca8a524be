package session

import (
	"context"
	"sync"
)

// MemoryHolder keeps the active session in process memory.
//
// The zero value is an empty, ready to use holder. It never returns an error.
type MemoryHolder struct {
	mu      sync.Mutex
	current *Session
}

// NewMemoryHolder returns an empty in-memory holder.
func NewMemoryHolder() *MemoryHolder {
	return &MemoryHolder{}
}

func (h *MemoryHolder) Load(context.Context) (*Session, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.current.Clone(), nil
}

func (h *MemoryHolder) Store(_ context.Context, s *Session) error {
	h.mu.Lock()
	h.current = s.Clone()
	h.mu.Unlock()
	return nil
}

func (h *MemoryHolder) Take(context.Context) (*Session, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := h.current
	h.current = nil
	return out, nil
}
