package domain

import "time"

// Token is one issued bearer credential. Only the SHA-256 digest of the
// plaintext value is persisted; the plaintext leaves the service exactly once
// at issuance. A principal may hold many tokens at a time (one per session)
// and logout deletes all of them together.
type Token struct {
	ID        string
	Name      string
	Digest    string
	Abilities []string
	OwnerRole Role
	OwnerID   string
	IssuedAt  time.Time
}
