package session

import (
	"net/http"
	"time"

	"github.com/opsuite/sessionkit/pkg/cookie"
)

// Transport defines how session tokens travel between client and server.
type Transport interface {
	// GetToken extracts the session token from the request.
	GetToken(r *http.Request) (string, error)

	// SetToken sends the session token in the response with the given TTL.
	SetToken(w http.ResponseWriter, token string, ttl time.Duration) error

	// ClearToken removes the session token from the client.
	ClearToken(w http.ResponseWriter) error
}

// CookieTransport carries the session token in an encrypted cookie.
type CookieTransport struct {
	cookieMgr  *cookie.Manager
	cookieName string
	secure     bool
	sameSite   http.SameSite
	options    []cookie.Option
}

// NewCookieTransport creates a cookie-based transport. The cookie is always
// HttpOnly; secure and sameSite follow the session configuration.
func NewCookieTransport(cookieMgr *cookie.Manager, cookieName string, secure bool, sameSite http.SameSite, opts ...cookie.Option) *CookieTransport {
	if sameSite == 0 {
		sameSite = http.SameSiteLaxMode
	}
	return &CookieTransport{
		cookieMgr:  cookieMgr,
		cookieName: cookieName,
		secure:     secure,
		sameSite:   sameSite,
		options:    opts,
	}
}

func (t *CookieTransport) GetToken(r *http.Request) (string, error) {
	token, err := t.cookieMgr.GetEncrypted(r, t.cookieName)
	if err != nil {
		return "", ErrNoToken
	}
	return token, nil
}

// SetToken writes the session cookie. Max-Age equals the remaining absolute
// TTL, so the cookie and the stored record expire together.
func (t *CookieTransport) SetToken(w http.ResponseWriter, token string, ttl time.Duration) error {
	opts := []cookie.Option{
		cookie.WithMaxAge(int(ttl.Seconds())),
		cookie.WithPath("/"),
		cookie.WithHTTPOnly(true),
		cookie.WithSameSite(t.sameSite),
	}
	if t.secure {
		opts = append(opts, cookie.WithSecure(true))
	}
	opts = append(opts, t.options...)

	return t.cookieMgr.SetEncrypted(w, t.cookieName, token, opts...)
}

func (t *CookieTransport) ClearToken(w http.ResponseWriter) error {
	t.cookieMgr.Delete(w, t.cookieName)
	return nil
}
