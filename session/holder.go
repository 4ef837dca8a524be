package session

import "context"

//go:generate mockgen -source=holder.go -destination=mocks/holder_mock.go -package=mocks

// Holder owns the single active-session slot.
//
// Implementations must make Take atomic: the returned session is the one that was
// cleared, and no concurrent Store can be lost between the read and the clear.
type Holder interface {
	// Load returns the active session, or nil when the slot is empty.
	Load(ctx context.Context) (*Session, error)
	// Store replaces the active session.
	Store(ctx context.Context, s *Session) error
	// Take returns the active session (nil when empty) and clears the slot.
	Take(ctx context.Context) (*Session, error)
}

var (
	_ Holder = (*MemoryHolder)(nil)
	_ Holder = (*Store)(nil)
)
