package cookie_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opsuite/sessionkit/pkg/cookie"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newManager(t *testing.T, opts ...cookie.Option) *cookie.Manager {
	t.Helper()
	m, err := cookie.New([]string{testSecret}, opts...)
	require.NoError(t, err)
	return m
}

func requestWithCookies(w *httptest.ResponseRecorder) *http.Request {
	r := httptest.NewRequest("GET", "/", nil)
	for _, c := range w.Result().Cookies() {
		r.AddCookie(c)
	}
	return r
}

func TestNew(t *testing.T) {
	t.Run("no secrets", func(t *testing.T) {
		_, err := cookie.New(nil)
		assert.ErrorIs(t, err, cookie.ErrNoSecret)

		_, err = cookie.New([]string{""})
		assert.ErrorIs(t, err, cookie.ErrNoSecret)
	})

	t.Run("secret too short", func(t *testing.T) {
		_, err := cookie.New([]string{"short"})
		assert.ErrorIs(t, err, cookie.ErrSecretTooShort)
	})
}

func TestManager_PlainCookies(t *testing.T) {
	m := newManager(t)

	w := httptest.NewRecorder()
	require.NoError(t, m.Set(w, "name", "value"))

	got, err := m.Get(requestWithCookies(w), "name")
	require.NoError(t, err)
	assert.Equal(t, "value", got)

	t.Run("missing cookie", func(t *testing.T) {
		_, err := m.Get(httptest.NewRequest("GET", "/", nil), "absent")
		assert.ErrorIs(t, err, cookie.ErrCookieNotFound)
	})

	t.Run("default attributes", func(t *testing.T) {
		c := w.Result().Cookies()[0]
		assert.True(t, c.HttpOnly)
		assert.Equal(t, "/", c.Path)
		assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
	})

	t.Run("delete expires the cookie", func(t *testing.T) {
		w2 := httptest.NewRecorder()
		m.Delete(w2, "name")
		c := w2.Result().Cookies()[0]
		assert.Equal(t, -1, c.MaxAge)
		assert.Empty(t, c.Value)
	})
}

func TestManager_SignedCookies(t *testing.T) {
	m := newManager(t)

	w := httptest.NewRecorder()
	require.NoError(t, m.SetSigned(w, "signed", "payload"))

	got, err := m.GetSigned(requestWithCookies(w), "signed")
	require.NoError(t, err)
	assert.Equal(t, "payload", got)

	t.Run("tampered value rejected", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/", nil)
		c := w.Result().Cookies()[0]
		r.AddCookie(&http.Cookie{Name: "signed", Value: "tampered|" + c.Value})

		_, err := m.GetSigned(r, "signed")
		assert.Error(t, err)
	})

	t.Run("garbage rejected", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/", nil)
		r.AddCookie(&http.Cookie{Name: "signed", Value: "no-separator"})

		_, err := m.GetSigned(r, "signed")
		assert.ErrorIs(t, err, cookie.ErrInvalidFormat)
	})
}

func TestManager_EncryptedCookies(t *testing.T) {
	m := newManager(t)

	w := httptest.NewRecorder()
	require.NoError(t, m.SetEncrypted(w, "enc", "secret-value"))

	// Ciphertext must not contain the plaintext.
	raw := w.Result().Cookies()[0].Value
	assert.NotContains(t, raw, "secret-value")

	got, err := m.GetEncrypted(requestWithCookies(w), "enc")
	require.NoError(t, err)
	assert.Equal(t, "secret-value", got)

	t.Run("tampered ciphertext rejected", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/", nil)
		r.AddCookie(&http.Cookie{Name: "enc", Value: "AAAA" + raw[4:]})

		_, err := m.GetEncrypted(r, "enc")
		assert.Error(t, err)
	})
}

func TestManager_SecretRotation(t *testing.T) {
	oldSecret := "old-secret-old-secret-old-secret-old"
	old, err := cookie.New([]string{oldSecret})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	require.NoError(t, old.SetEncrypted(w, "enc", "carried-over"))
	require.NoError(t, old.SetSigned(w, "signed", "carried-over"))

	// New deployment: fresh active secret, old one retained for verification.
	rotated, err := cookie.New([]string{testSecret, oldSecret})
	require.NoError(t, err)

	r := requestWithCookies(w)

	got, err := rotated.GetEncrypted(r, "enc")
	require.NoError(t, err)
	assert.Equal(t, "carried-over", got)

	got, err = rotated.GetSigned(r, "signed")
	require.NoError(t, err)
	assert.Equal(t, "carried-over", got)
}
