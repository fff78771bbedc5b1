package session

import (
	"context"
	"time"
)

// Session carries the server-side state for one client: who they are
// (once a password check succeeds) and the progress of a pending
// step-up challenge. The OTP code lives only here; it is never written
// to a response body.
type Session struct {
	SessionID string    `json:"session_id"`
	UserID    int64     `json:"user_id"` // 0 until a login or OTP request identifies the client
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`

	OTPCode     string    `json:"otp_code,omitempty"`
	OTPIssuedAt time.Time `json:"otp_issued_at,omitempty"`
	OTPAttempts int       `json:"otp_attempts,omitempty"`
	OTPVerified bool      `json:"otp_verified,omitempty"`
}

// Store defines how sessions are stored and retrieved.
// Get returns (nil, nil) for a missing or expired session.
type Store interface {
	Create(ctx context.Context, s Session) error
	Get(ctx context.Context, sessionID string) (*Session, error)
	Update(ctx context.Context, s Session) error
	Delete(ctx context.Context, sessionID string) error
}
