package rtc

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL is fixed: every token expires exactly one hour after issue.
const TokenTTL = time.Hour

// Claims is the channel-token payload. The token is a self-contained
// assertion that uid may join channel_name until exp; verification is
// the RTC provider's job.
type Claims struct {
	AppID       string `json:"app_id"`
	UID         int64  `json:"uid"`
	ChannelName string `json:"channel_name"`
	IssuedAt    int64  `json:"iat"`
	ExpiresAt   int64  `json:"exp"`
	SignKey     string `json:"sign_key"`
}

func (c Claims) GetExpirationTime() (*jwt.NumericDate, error) {
	return jwt.NewNumericDate(time.Unix(c.ExpiresAt, 0)), nil
}
func (c Claims) GetIssuedAt() (*jwt.NumericDate, error) {
	return jwt.NewNumericDate(time.Unix(c.IssuedAt, 0)), nil
}
func (c Claims) GetNotBefore() (*jwt.NumericDate, error) { return nil, nil }
func (c Claims) GetIssuer() (string, error)              { return "", nil }
func (c Claims) GetSubject() (string, error)             { return "", nil }
func (c Claims) GetAudience() (jwt.ClaimStrings, error)  { return nil, nil }

// Issuer mints ephemeral channel tokens signed with the shared app
// certificate. Missing credentials are a startup error, never a
// per-call one.
type Issuer struct {
	appID          string
	appCertificate string
	now            func() time.Time
}

func NewIssuer(appID, appCertificate string) (*Issuer, error) {
	if appID == "" || appCertificate == "" {
		return nil, errors.New("rtc: app id and certificate are required")
	}
	return &Issuer{
		appID:          appID,
		appCertificate: appCertificate,
		now:            time.Now,
	}, nil
}

// IssueToken signs a token authorizing uid to join channelName for the
// next hour. The per-call sign_key is derived from the issuance
// instant at nanosecond granularity, so two tokens minted in the same
// second still carry distinct signatures.
func (i *Issuer) IssueToken(channelName string, uid int64) (string, error) {
	issuedAt := i.now()
	expiresAt := issuedAt.Add(TokenTTL)

	nonce := sha256.Sum256(fmt.Appendf(nil, "%s%s%d",
		i.appID, i.appCertificate, issuedAt.UnixNano()))

	claims := Claims{
		AppID:       i.appID,
		UID:         uid,
		ChannelName: channelName,
		IssuedAt:    issuedAt.Unix(),
		ExpiresAt:   expiresAt.Unix(),
		SignKey:     hex.EncodeToString(nonce[:]),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString([]byte(i.appCertificate))
	if err != nil {
		return "", fmt.Errorf("rtc: failed to sign token: %w", err)
	}

	return signed, nil
}

// ParseToken verifies a token's signature and expiry and returns its
// claims. The service itself does not consume tokens; this exists for
// diagnostics and tests.
func (i *Issuer) ParseToken(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return []byte(i.appCertificate), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("rtc: invalid token")
	}

	return claims, nil
}
