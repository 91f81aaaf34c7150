package domain

import "time"

// Identity is the minimal handle for an authenticated caller. It lives for
// one request and never carries account fields beyond the id.
type Identity struct {
	ID string
}

// IssuedToken describes a signed token handed to a client.
type IssuedToken struct {
	Value     string
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}
