package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefront/bridge/internal/infrastructure/session"
)

func shopperRouter(store session.Store, codec *session.CookieCodec, handler gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(Shopper(store, codec, CookieOptions{Path: "/", TTL: time.Hour}, nil))
	r.POST("/graphql", handler)
	return r
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == session.CookieName {
			return c
		}
	}
	return nil
}

func TestShopperSkipsPersistingEmptySessions(t *testing.T) {
	store := session.NewMemoryStore(time.Hour)
	codec := session.NewCookieCodec("test-secret", "test", time.Hour)
	r := shopperRouter(store, codec, func(c *gin.Context) {
		assert.NotNil(t, SessionFrom(c))
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/graphql", nil))

	// Anonymous browsing leaves no session behind and sets no cookie.
	assert.Nil(t, sessionCookie(t, w))
}

func TestShopperPersistsDirtySession(t *testing.T) {
	store := session.NewMemoryStore(time.Hour)
	codec := session.NewCookieCodec("test-secret", "test", time.Hour)

	var sessionID string
	r := shopperRouter(store, codec, func(c *gin.Context) {
		sess := SessionFrom(c)
		sess.CartID = "masked"
		sessionID = sess.ID
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/graphql", nil))

	cookie := sessionCookie(t, w)
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)

	id, err := codec.Decode(cookie.Value)
	require.NoError(t, err)
	assert.Equal(t, sessionID, id)

	stored, err := store.Get(httptest.NewRequest(http.MethodGet, "/", nil).Context(), sessionID)
	require.NoError(t, err)
	assert.Equal(t, "masked", stored.CartID)
}

func TestShopperResumesSessionFromCookie(t *testing.T) {
	store := session.NewMemoryStore(time.Hour)
	codec := session.NewCookieCodec("test-secret", "test", time.Hour)

	var firstID string
	r := shopperRouter(store, codec, func(c *gin.Context) {
		sess := SessionFrom(c)
		if sess.CartID == "" {
			sess.CartID = "masked"
		}
		firstID = sess.ID
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/graphql", nil))
	cookie := sessionCookie(t, w)
	require.NotNil(t, cookie)

	var resumed *session.Session
	r2 := shopperRouter(store, codec, func(c *gin.Context) {
		resumed = SessionFrom(c)
		c.Status(http.StatusOK)
	})

	w2 := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/graphql", nil)
	req.AddCookie(cookie)
	r2.ServeHTTP(w2, req)

	require.NotNil(t, resumed)
	assert.Equal(t, firstID, resumed.ID)
	assert.Equal(t, "masked", resumed.CartID)

	// A resumed session gets a refreshed cookie even when unchanged.
	assert.NotNil(t, sessionCookie(t, w2))
}

func TestShopperIgnoresTamperedCookie(t *testing.T) {
	store := session.NewMemoryStore(time.Hour)
	codec := session.NewCookieCodec("test-secret", "test", time.Hour)

	var sess *session.Session
	r := shopperRouter(store, codec, func(c *gin.Context) {
		sess = SessionFrom(c)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/graphql", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: "garbage"})
	r.ServeHTTP(w, req)

	require.NotNil(t, sess)
	assert.False(t, sess.HasCart())
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestShopperFallsBackWhenStoreLostSession(t *testing.T) {
	store := session.NewMemoryStore(time.Hour)
	codec := session.NewCookieCodec("test-secret", "test", time.Hour)

	value, err := codec.Encode("vanished-session-id")
	require.NoError(t, err)

	var sess *session.Session
	r := shopperRouter(store, codec, func(c *gin.Context) {
		sess = SessionFrom(c)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/graphql", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: value})
	r.ServeHTTP(w, req)

	require.NotNil(t, sess)
	assert.NotEqual(t, "vanished-session-id", sess.ID)
}
