package goMockAuth

import "github.com/MrEthical07/goMockAuth/session"

// Credentials is the transient login input. It is never stored.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Session is the active-session record returned by Login and Logout.
type Session = session.Session
