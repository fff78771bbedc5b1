package otp

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/gla-dpsingh/Animal-Care/internal/auth/credentials"
	"github.com/gla-dpsingh/Animal-Care/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDirectory struct {
	users map[string]*credentials.User
}

func (d *fakeDirectory) FindByEmail(_ context.Context, email string) (*credentials.User, error) {
	u, ok := d.users[email]
	if !ok {
		return nil, credentials.ErrUserNotFound
	}
	return u, nil
}

func (d *fakeDirectory) FindByID(_ context.Context, id int64) (*credentials.User, error) {
	for _, u := range d.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, credentials.ErrUserNotFound
}

type fakeNotifier struct {
	sent []string // bodies, in dispatch order
	to   []string
}

func (n *fakeNotifier) Send(_ context.Context, to, _, body string) error {
	n.to = append(n.to, to)
	n.sent = append(n.sent, body)
	return nil
}

var codeRe = regexp.MustCompile(`\d{6}`)

func (n *fakeNotifier) lastCode(t *testing.T) string {
	t.Helper()
	require.NotEmpty(t, n.sent)
	code := codeRe.FindString(n.sent[len(n.sent)-1])
	require.Len(t, code, 6)
	return code
}

func newTestManager(t *testing.T) (*Manager, session.Store, *fakeNotifier) {
	t.Helper()

	store := session.NewMemoryStore()
	t.Cleanup(store.Close)

	dir := &fakeDirectory{users: map[string]*credentials.User{
		"a@x.com": {ID: 1, Email: "a@x.com", Username: "alice"},
	}}
	notifier := &fakeNotifier{}

	return NewManager(store, dir, notifier), store, notifier
}

func createSession(t *testing.T, store session.Store, id string) {
	t.Helper()
	require.NoError(t, store.Create(context.Background(), session.Session{
		SessionID: id,
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(time.Hour),
	}))
}

func TestIssueAndVerify(t *testing.T) {
	t.Parallel()

	m, store, notifier := newTestManager(t)
	ctx := context.Background()
	createSession(t, store, "s1")

	require.NoError(t, m.Issue(ctx, "s1", "a@x.com"))
	assert.Equal(t, []string{"a@x.com"}, notifier.to)

	code := notifier.lastCode(t)
	require.NoError(t, m.Verify(ctx, "s1", code))

	sess, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.True(t, sess.OTPVerified)
	assert.Empty(t, sess.OTPCode, "code must be single-use")
	assert.Equal(t, int64(1), sess.UserID)
}

func TestVerify_SingleUse(t *testing.T) {
	t.Parallel()

	m, store, notifier := newTestManager(t)
	ctx := context.Background()
	createSession(t, store, "s1")

	require.NoError(t, m.Issue(ctx, "s1", "a@x.com"))
	code := notifier.lastCode(t)

	require.NoError(t, m.Verify(ctx, "s1", code))
	require.ErrorIs(t, m.Verify(ctx, "s1", code), ErrNoChallenge)
}

func TestVerify_WrongCode(t *testing.T) {
	t.Parallel()

	m, store, notifier := newTestManager(t)
	ctx := context.Background()
	createSession(t, store, "s1")

	require.NoError(t, m.Issue(ctx, "s1", "a@x.com"))
	code := notifier.lastCode(t)

	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}
	require.ErrorIs(t, m.Verify(ctx, "s1", wrong), ErrInvalidCode)

	// challenge still pending, the right code still works
	sess, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, sess.OTPVerified)
	assert.Equal(t, 1, sess.OTPAttempts)

	require.NoError(t, m.Verify(ctx, "s1", code))
}

func TestVerify_NoChallenge(t *testing.T) {
	t.Parallel()

	m, store, _ := newTestManager(t)
	createSession(t, store, "s1")

	require.ErrorIs(t, m.Verify(context.Background(), "s1", "123456"), ErrNoChallenge)
	require.ErrorIs(t, m.Verify(context.Background(), "unknown", "123456"), ErrNoChallenge)
}

func TestVerify_Expired(t *testing.T) {
	t.Parallel()

	m, store, notifier := newTestManager(t)
	ctx := context.Background()
	createSession(t, store, "s1")

	require.NoError(t, m.Issue(ctx, "s1", "a@x.com"))
	code := notifier.lastCode(t)

	m.now = func() time.Time { return time.Now().Add(ChallengeTTL + time.Second) }

	require.ErrorIs(t, m.Verify(ctx, "s1", code), ErrChallengeExpired)

	// expired challenge is cleared, not retried
	require.ErrorIs(t, m.Verify(ctx, "s1", code), ErrNoChallenge)
}

func TestVerify_TooManyAttempts(t *testing.T) {
	t.Parallel()

	m, store, notifier := newTestManager(t)
	ctx := context.Background()
	createSession(t, store, "s1")

	require.NoError(t, m.Issue(ctx, "s1", "a@x.com"))
	code := notifier.lastCode(t)

	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}

	for i := 0; i < MaxAttempts; i++ {
		require.ErrorIs(t, m.Verify(ctx, "s1", wrong), ErrInvalidCode)
	}

	// even the right code is refused once the cap is hit
	require.ErrorIs(t, m.Verify(ctx, "s1", code), ErrTooManyAttempts)
}

func TestIssue_UnknownEmail(t *testing.T) {
	t.Parallel()

	m, store, _ := newTestManager(t)
	createSession(t, store, "s1")

	require.ErrorIs(t, m.Issue(context.Background(), "s1", "nobody@x.com"), ErrUserNotFound)
}

func TestIssue_MissingSession(t *testing.T) {
	t.Parallel()

	m, _, _ := newTestManager(t)

	require.ErrorIs(t, m.Issue(context.Background(), "gone", "a@x.com"), ErrSessionExpired)
}

func TestReissue_InvalidatesOldCode(t *testing.T) {
	t.Parallel()

	m, store, notifier := newTestManager(t)
	ctx := context.Background()
	createSession(t, store, "s1")

	require.NoError(t, m.Issue(ctx, "s1", "a@x.com"))
	oldCode := notifier.lastCode(t)

	require.NoError(t, m.Reissue(ctx, "s1"))
	newCode := notifier.lastCode(t)

	if oldCode != newCode {
		require.ErrorIs(t, m.Verify(ctx, "s1", oldCode), ErrInvalidCode)
	}
	require.NoError(t, m.Verify(ctx, "s1", newCode))
}

func TestReissue_RequiresAssociatedUser(t *testing.T) {
	t.Parallel()

	m, store, _ := newTestManager(t)
	ctx := context.Background()
	createSession(t, store, "s1")

	require.ErrorIs(t, m.Reissue(ctx, "s1"), ErrSessionExpired)
	require.ErrorIs(t, m.Reissue(ctx, "missing"), ErrSessionExpired)
}

func TestReissue_UserVanished(t *testing.T) {
	t.Parallel()

	store := session.NewMemoryStore()
	t.Cleanup(store.Close)

	dir := &fakeDirectory{users: map[string]*credentials.User{}}
	m := NewManager(store, dir, &fakeNotifier{})

	ctx := context.Background()
	require.NoError(t, store.Create(ctx, session.Session{
		SessionID: "s1",
		UserID:    99,
		ExpiresAt: time.Now().Add(time.Hour),
	}))

	require.ErrorIs(t, m.Reissue(ctx, "s1"), ErrUserNotFound)
}

func TestChallenges_AreSessionScoped(t *testing.T) {
	t.Parallel()

	m, store, notifier := newTestManager(t)
	ctx := context.Background()
	createSession(t, store, "s1")
	createSession(t, store, "s2")

	require.NoError(t, m.Issue(ctx, "s1", "a@x.com"))
	codeS1 := notifier.lastCode(t)

	require.NoError(t, m.Issue(ctx, "s2", "a@x.com"))
	codeS2 := notifier.lastCode(t)

	// a second session's challenge never disturbs the first
	require.NoError(t, m.Verify(ctx, "s1", codeS1))
	require.NoError(t, m.Verify(ctx, "s2", codeS2))
}

func TestGenerateCode_Format(t *testing.T) {
	t.Parallel()

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		code, err := generateCode()
		require.NoError(t, err)
		require.Len(t, code, CodeLength)
		require.Regexp(t, `^\d{6}$`, code)
		seen[code] = true
	}
	// 50 draws from a million-value space collapsing to one value
	// would mean the generator is broken
	assert.Greater(t, len(seen), 1)
}
