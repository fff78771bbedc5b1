package otp

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"hash/fnv"
	"math/big"
	"sync"
	"time"

	"github.com/gla-dpsingh/Animal-Care/internal/auth/credentials"
	"github.com/gla-dpsingh/Animal-Care/internal/session"
)

const (
	CodeLength   = 6
	ChallengeTTL = 5 * time.Minute
	MaxAttempts  = 5

	mailSubject = "Your OTP Code"
)

var (
	ErrUserNotFound     = errors.New("otp: user not found")
	ErrSessionExpired   = errors.New("otp: session expired")
	ErrNoChallenge      = errors.New("otp: no pending challenge")
	ErrInvalidCode      = errors.New("otp: invalid code")
	ErrChallengeExpired = errors.New("otp: challenge expired")
	ErrTooManyAttempts  = errors.New("otp: too many attempts")
)

// UserDirectory resolves portal users for challenge dispatch.
// *credentials.Service satisfies it.
type UserDirectory interface {
	FindByEmail(ctx context.Context, email string) (*credentials.User, error)
	FindByID(ctx context.Context, id int64) (*credentials.User, error)
}

// Notifier delivers the code out of band. The code must never travel
// on any other channel.
type Notifier interface {
	Send(ctx context.Context, to, subject, body string) error
}

// Manager issues, verifies and reissues one-time passcodes scoped to a
// session. Each session's challenge state is guarded by a striped lock
// so a reissue cannot race a verify on the stored code.
type Manager struct {
	store    session.Store
	users    UserDirectory
	notifier Notifier
	locks    [64]sync.Mutex
	now      func() time.Time
}

func NewManager(store session.Store, users UserDirectory, notifier Notifier) *Manager {
	return &Manager{
		store:    store,
		users:    users,
		notifier: notifier,
		now:      time.Now,
	}
}

func (m *Manager) lockFor(sessionID string) *sync.Mutex {
	h := fnv.New32a()
	h.Write([]byte(sessionID))
	return &m.locks[h.Sum32()%uint32(len(m.locks))]
}

// Issue generates a fresh challenge for the session, binds the session
// to the resolved user and dispatches the code.
func (m *Manager) Issue(ctx context.Context, sessionID, email string) error {
	user, err := m.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, credentials.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	lock := m.lockFor(sessionID)
	lock.Lock()
	defer lock.Unlock()

	sess, err := m.store.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	if sess == nil {
		return ErrSessionExpired
	}

	code, err := generateCode()
	if err != nil {
		return err
	}

	sess.UserID = user.ID
	sess.OTPCode = code
	sess.OTPIssuedAt = m.now()
	sess.OTPAttempts = 0
	sess.OTPVerified = false

	if err := m.store.Update(ctx, *sess); err != nil {
		return err
	}

	return m.notifier.Send(ctx, user.Email, mailSubject, "Your OTP Code is "+code)
}

// Verify compares the candidate against the stored code. A match is
// single-use: the code is cleared and the session marked verified.
func (m *Manager) Verify(ctx context.Context, sessionID, candidate string) error {
	lock := m.lockFor(sessionID)
	lock.Lock()
	defer lock.Unlock()

	sess, err := m.store.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	if sess == nil || sess.OTPCode == "" {
		return ErrNoChallenge
	}

	if m.now().Sub(sess.OTPIssuedAt) > ChallengeTTL {
		sess.OTPCode = ""
		if err := m.store.Update(ctx, *sess); err != nil {
			return err
		}
		return ErrChallengeExpired
	}

	if sess.OTPAttempts >= MaxAttempts {
		sess.OTPCode = ""
		if err := m.store.Update(ctx, *sess); err != nil {
			return err
		}
		return ErrTooManyAttempts
	}

	if subtle.ConstantTimeCompare([]byte(sess.OTPCode), []byte(candidate)) != 1 {
		sess.OTPAttempts++
		if err := m.store.Update(ctx, *sess); err != nil {
			return err
		}
		return ErrInvalidCode
	}

	sess.OTPCode = ""
	sess.OTPVerified = true

	return m.store.Update(ctx, *sess)
}

// Reissue overwrites the pending code for a session that already has
// an associated user. The previous code becomes worthless.
func (m *Manager) Reissue(ctx context.Context, sessionID string) error {
	lock := m.lockFor(sessionID)
	lock.Lock()
	defer lock.Unlock()

	sess, err := m.store.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	if sess == nil || sess.UserID == 0 {
		return ErrSessionExpired
	}

	user, err := m.users.FindByID(ctx, sess.UserID)
	if err != nil {
		if errors.Is(err, credentials.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	code, err := generateCode()
	if err != nil {
		return err
	}

	sess.OTPCode = code
	sess.OTPIssuedAt = m.now()
	sess.OTPAttempts = 0
	sess.OTPVerified = false

	if err := m.store.Update(ctx, *sess); err != nil {
		return err
	}

	return m.notifier.Send(ctx, user.Email, mailSubject, "Your OTP Code is "+code)
}

// generateCode draws 6 uniformly distributed digits from crypto/rand.
func generateCode() (string, error) {
	limit := big.NewInt(1_000_000)
	n, err := rand.Int(rand.Reader, limit)
	if err != nil {
		return "", fmt.Errorf("otp: failed to generate code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
