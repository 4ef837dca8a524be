package session

import "time"

// Session is the record of the currently authenticated identity.
//
// UserID and Token are opaque identifiers generated fresh for every successful login.
type Session struct {
	UserID    string `json:"userId"`
	Token     string `json:"token"`
	CreatedAt int64  `json:"createdAt,omitempty"`
}

// Clone returns a copy of s, or nil when s is nil.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	out := *s
	return &out
}

// Created returns CreatedAt as a time.Time.
func (s *Session) Created() time.Time {
	if s == nil || s.CreatedAt == 0 {
		return time.Time{}
	}
	return time.Unix(s.CreatedAt, 0)
}
