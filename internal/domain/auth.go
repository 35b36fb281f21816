package domain

import "time"

// AccessLevel tags what a token grants. Only full auth exists today.
type AccessLevel string

const (
	AccessLevelAuth AccessLevel = "auth"
)

// Token represents issued authentication token metadata.
type Token struct {
	SubjectID string
	Access    AccessLevel
	IssuedAt  time.Time
	ExpiresAt time.Time
}
