package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// CookieName is the session cookie the bridge sets on shoppers.
const CookieName = "storefront_sid"

// Common cookie token errors.
var (
	ErrInvalidToken = errors.New("invalid session token")
	ErrExpiredToken = errors.New("session token has expired")
)

// cookieClaims binds the session id into a signed token.
type cookieClaims struct {
	jwt.RegisteredClaims
	SessionID string `json:"sid"`
}

// CookieCodec signs and verifies the session cookie. The cookie carries only
// the session id; all session state stays server side.
type CookieCodec struct {
	secret     []byte
	issuer     string
	expiration time.Duration
}

// NewCookieCodec creates a codec signing with the given secret.
func NewCookieCodec(secret, issuer string, expiration time.Duration) *CookieCodec {
	if expiration <= 0 {
		expiration = 24 * time.Hour
	}
	return &CookieCodec{
		secret:     []byte(secret),
		issuer:     issuer,
		expiration: expiration,
	}
}

// Encode signs a cookie value binding the session id.
func (c *CookieCodec) Encode(sessionID string) (string, error) {
	now := time.Now()
	claims := &cookieClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Issuer:    c.issuer,
			Subject:   sessionID,
			ExpiresAt: jwt.NewNumericDate(now.Add(c.expiration)),
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		SessionID: sessionID,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

// Decode verifies a cookie value and returns the session id it carries.
func (c *CookieCodec) Decode(value string) (string, error) {
	token, err := jwt.ParseWithClaims(value, &cookieClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return c.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrExpiredToken
		}
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(*cookieClaims)
	if !ok || !token.Valid || claims.SessionID == "" {
		return "", ErrInvalidToken
	}
	return claims.SessionID, nil
}
