package domain

import "time"

// Session is a server-side login session. One session belongs to exactly
// one user; it is created at sign-in and destroyed at sign-out or expiry.
type Session struct {
	ID        string
	UserID    string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the session is past its expiry at the given time.
func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
