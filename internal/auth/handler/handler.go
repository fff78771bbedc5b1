package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gla-dpsingh/Animal-Care/internal/middleware"
	"github.com/gla-dpsingh/Animal-Care/internal/session"

	"github.com/gin-gonic/gin"
)

const sessionTTL = 24 * time.Hour

// CredentialService verifies and creates password credentials.
// *credentials.Service satisfies it.
type CredentialService interface {
	Register(ctx context.Context, username, email, password, phone string) (int64, error)
	Authenticate(ctx context.Context, email, password string) (int64, error)
}

// ChallengeManager drives the OTP step-up state machine.
// *otp.Manager satisfies it.
type ChallengeManager interface {
	Issue(ctx context.Context, sessionID, email string) error
	Verify(ctx context.Context, sessionID, code string) error
	Reissue(ctx context.Context, sessionID string) error
}

// TokenIssuer mints ephemeral channel tokens. *rtc.Issuer satisfies it.
type TokenIssuer interface {
	IssueToken(channelName string, uid int64) (string, error)
}

type Handler struct {
	credentials CredentialService
	challenges  ChallengeManager
	tokens      TokenIssuer
	sessions    session.Store
}

func NewHandler(
	credentials CredentialService,
	challenges ChallengeManager,
	tokens TokenIssuer,
	sessions session.Store,
) *Handler {
	return &Handler{
		credentials: credentials,
		challenges:  challenges,
		tokens:      tokens,
		sessions:    sessions,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine, auth *middleware.AuthMiddleware) {
	r.POST("/login", h.Login)
	r.POST("/register", h.Register)
	r.POST("/request_otp", h.RequestOTP)
	r.POST("/verify_otp", h.VerifyOTP)
	r.POST("/resend_otp", h.ResendOTP)
	r.POST("/auth/logout", h.Logout)

	r.POST("/get_video_call_token", auth.RequireAuth(), h.VideoCallToken)
}

// requireJSON rejects anything but a JSON body with 415, mirroring the
// portal's original contract.
func requireJSON(c *gin.Context) bool {
	if c.ContentType() != "application/json" {
		c.JSON(http.StatusUnsupportedMediaType, gin.H{
			"success": false, "message": "Unsupported Media Type",
		})
		return false
	}
	return true
}

// ensureSession returns the caller's live session, creating one and
// issuing the cookie when none exists yet.
func (h *Handler) ensureSession(c *gin.Context) (*session.Session, error) {
	if cookie, err := c.Request.Cookie(session.CookieName); err == nil && cookie.Value != "" {
		sess, err := h.sessions.Get(c.Request.Context(), cookie.Value)
		if err == nil && sess != nil {
			return sess, nil
		}
	}

	id, err := session.GenerateID()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	sess := session.Session{
		SessionID: id,
		CreatedAt: now,
		ExpiresAt: now.Add(sessionTTL),
	}

	if err := h.sessions.Create(c.Request.Context(), sess); err != nil {
		return nil, err
	}

	session.SetCookie(c.Writer, id, sess.ExpiresAt, session.CookieOptions{
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})

	return &sess, nil
}

func (h *Handler) Logout(c *gin.Context) {
	cookie, err := c.Request.Cookie(session.CookieName)
	if err == nil && cookie.Value != "" {
		_ = h.sessions.Delete(c.Request.Context(), cookie.Value)
	}

	session.ClearCookie(c.Writer, session.CookieOptions{
		Path:     "/",
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	c.Status(http.StatusNoContent)
}
