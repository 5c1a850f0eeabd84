// Package session is an external session store for [hyper.Connection], backed by [scs.SessionManager].
package session

import (
	"context"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
	"maragu.dev/errors"

	"maragu.dev/hyperglue/hyper"
)

// flashPrefix for keys of values that are removed after being read once.
const flashPrefix = "__flash_"

type Manager struct {
	sm *scs.SessionManager
}

type NewManagerOptions struct {
	CookieName   string
	Lifetime     time.Duration
	SecureCookie bool
	// Store for session data. If nil, sessions are kept in memory.
	Store scs.Store
}

// NewManager with the given options.
// Cookies are HTTP only and SameSite=Lax, so redirects after a POST keep the session.
func NewManager(opts NewManagerOptions) *Manager {
	sm := scs.New()

	if opts.Store != nil {
		sm.Store = opts.Store
	}

	if opts.Lifetime == 0 {
		opts.Lifetime = 365 * 24 * time.Hour
	}
	sm.Lifetime = opts.Lifetime

	if opts.CookieName != "" {
		sm.Cookie.Name = opts.CookieName
	}
	sm.Cookie.HttpOnly = true
	sm.Cookie.Persist = true
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Secure = opts.SecureCookie

	return &Manager{sm: sm}
}

// Load the session for the token in the given Cookie header value.
// A missing or unknown token gives a new, empty session.
func (m *Manager) Load(ctx context.Context, cookieHeader string) (hyper.Session, error) {
	ctx, err := m.sm.Load(ctx, m.token(cookieHeader))
	if err != nil {
		return nil, errors.Wrap(err, "error loading session")
	}
	return &Handle{ctx: ctx, sm: m.sm}, nil
}

// token from the session cookie in cookieHeader, or the empty string.
func (m *Manager) token(cookieHeader string) string {
	if cookieHeader == "" {
		return ""
	}
	cookies, err := http.ParseCookie(cookieHeader)
	if err != nil {
		return ""
	}
	for _, c := range cookies {
		if c.Name == m.sm.Cookie.Name {
			return c.Value
		}
	}
	return ""
}

// Commit the session to the store, and return the value for a Set-Cookie header.
func (m *Manager) Commit(ctx context.Context, s hyper.Session) (string, error) {
	h, ok := s.(*Handle)
	if !ok {
		return "", errors.Newf("error committing session, got unknown session type %T", s)
	}

	token, expiry, err := m.sm.Commit(h.ctx)
	if err != nil {
		return "", errors.Wrap(err, "error committing session")
	}

	return m.cookie(token, expiry).String(), nil
}

func (m *Manager) cookie(token string, expiry time.Time) *http.Cookie {
	c := m.sm.Cookie
	cookie := &http.Cookie{
		Name:     c.Name,
		Value:    token,
		Path:     c.Path,
		Domain:   c.Domain,
		Secure:   c.Secure,
		HttpOnly: c.HttpOnly,
		SameSite: c.SameSite,
	}
	if c.Persist {
		cookie.Expires = time.Unix(expiry.Unix()+1, 0)
		cookie.MaxAge = int(time.Until(expiry).Seconds() + 1)
	}
	return cookie
}

// Handle to a loaded session. It satisfies [hyper.Session].
// It keeps the context scs stores the session data in.
type Handle struct {
	ctx context.Context
	sm  *scs.SessionManager
}

// Get the value under key. A flash value is returned and removed before a persistent one.
func (h *Handle) Get(key string) any {
	if v := h.sm.Pop(h.ctx, flashPrefix+key); v != nil {
		return v
	}
	return h.sm.Get(h.ctx, key)
}

func (h *Handle) Set(key, value string) {
	h.sm.Put(h.ctx, key, value)
}

// Unset key, including any flash value under it.
func (h *Handle) Unset(key string) {
	h.sm.Remove(h.ctx, key)
	h.sm.Remove(h.ctx, flashPrefix+key)
}

func (h *Handle) Flash(key, value string) {
	h.sm.Put(h.ctx, flashPrefix+key, value)
}

var _ hyper.Session = (*Handle)(nil)
