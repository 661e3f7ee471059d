package domain

import "time"

// UserSession is a login session record. It references its owning user but
// does not own it; deleting a session never touches the user.
type UserSession struct {
	ID        string
	UserID    string
	ExpiresAt time.Time
}

// SessionTTL is how long a freshly created session lives. Fixed policy,
// enforced lazily at read time rather than by a background sweep.
const SessionTTL = 7 * 24 * time.Hour

// Expired reports whether the session is past its expiry at the given time.
func (s UserSession) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
