package auth

import (
	"errors"
	"time"
)

// RoleAdmin is the catalog API role that unlocks the admin surface.
const RoleAdmin = "admin"

// DefaultTTL bounds sessions whose token carries no exp claim.
const DefaultTTL = 24 * time.Hour

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrProfile            = errors.New("could not load profile")
	ErrNotAuthenticated   = errors.New("not authenticated")
)

// Record is the persisted form of a logged-in session.
type Record struct {
	SessionID string    `dynamodbav:"session_id"` // PK
	Token     string    `dynamodbav:"token"`
	UserID    int       `dynamodbav:"user_id"`
	Email     string    `dynamodbav:"email"`
	Name      string    `dynamodbav:"name,omitempty"`
	Role      string    `dynamodbav:"role"`
	Avatar    string    `dynamodbav:"avatar,omitempty"`
	CreatedAt time.Time `dynamodbav:"created_at"`
	ExpiresAt int64     `dynamodbav:"expires_at"` // TTL epoch seconds
}
