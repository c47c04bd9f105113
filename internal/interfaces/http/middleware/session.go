package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/storefront/bridge/internal/infrastructure/session"
)

// SessionKey is the gin context key holding the shopper session.
const SessionKey = "session"

// CookieOptions controls the session cookie attributes.
type CookieOptions struct {
	Domain   string
	Path     string
	Secure   bool
	SameSite string // "strict", "lax" or "none"
	TTL      time.Duration
}

// Shopper loads the shopper session for the request and persists it
// afterwards. A missing, invalid or expired cookie yields a fresh session;
// the request never fails on session problems. Sessions that stay empty are
// not persisted, so anonymous catalog browsing does not fill the store.
func Shopper(store session.Store, codec *session.CookieCodec, opts CookieOptions, logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	sameSite := parseSameSite(opts.SameSite)

	return func(c *gin.Context) {
		sess, existed := loadSession(c, store, codec, logger)
		c.Set(SessionKey, sess)
		c.Set("session_id", sess.ID)

		c.Next()

		if !existed && sessionIsEmpty(sess) {
			return
		}

		sess.UpdatedAt = time.Now().UTC()
		if err := store.Save(c.Request.Context(), sess); err != nil {
			logger.Error("session save failed",
				zap.String("session_id", sess.ID),
				zap.Error(err),
			)
			return
		}

		value, err := codec.Encode(sess.ID)
		if err != nil {
			logger.Error("session cookie encode failed", zap.Error(err))
			return
		}
		c.SetSameSite(sameSite)
		c.SetCookie(session.CookieName, value, int(opts.TTL.Seconds()), opts.Path, opts.Domain, opts.Secure, true)
	}
}

// SessionFrom returns the shopper session attached to the gin context.
func SessionFrom(c *gin.Context) *session.Session {
	if v, ok := c.Get(SessionKey); ok {
		if sess, ok := v.(*session.Session); ok {
			return sess
		}
	}
	return session.New()
}

// loadSession resolves the request cookie to a stored session, falling back
// to a fresh one.
func loadSession(c *gin.Context, store session.Store, codec *session.CookieCodec, logger *zap.Logger) (*session.Session, bool) {
	value, err := c.Cookie(session.CookieName)
	if err != nil || value == "" {
		return session.New(), false
	}

	id, err := codec.Decode(value)
	if err != nil {
		// Tampered or expired cookies are routine, not incidents.
		logger.Debug("session cookie rejected", zap.Error(err))
		return session.New(), false
	}

	sess, err := store.Get(c.Request.Context(), id)
	if err != nil {
		return session.New(), false
	}
	return sess, true
}

func sessionIsEmpty(s *session.Session) bool {
	return s.CartID == "" &&
		s.CustomerToken == "" &&
		s.Currency == "" &&
		s.Timezone == "" &&
		s.Checkout == (session.CheckoutState{})
}

func parseSameSite(v string) http.SameSite {
	switch v {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
