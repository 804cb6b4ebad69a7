package auth

import (
	"net/http"
	"time"

	"github.com/Faisal-Ahmad-dotlabs/webseed-website/internal"
)

// SessionCookieName is fixed; the whole application shares one session.
const SessionCookieName = "session"

// SessionManager persists the signed session token in an HTTP-only cookie.
// The exp claim inside the token is the authoritative expiry; the cookie
// expiry is derived from the same TTL so the two cannot diverge.
type SessionManager struct {
	codec  *TokenCodec
	secure bool
}

func NewSessionManager(codec *TokenCodec, secure bool) *SessionManager {
	return &SessionManager{
		codec:  codec,
		secure: secure,
	}
}

// Create mints a session token and sets it as the session cookie.
func (m *SessionManager) Create(w http.ResponseWriter, userID int64, email, role string, isPasswordChanged bool) error {
	token, err := m.codec.Encode(userID, email, role, isPasswordChanged)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(m.codec.TTL()),
		MaxAge:   int(m.codec.TTL().Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Verify reads the cookie and decodes it, returning nil when the cookie is
// absent or the token does not verify. Expiry is not checked here.
func (m *SessionManager) Verify(r *http.Request) *SessionClaims {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}
	return m.codec.Decode(cookie.Value)
}

// RequireUser returns the live session claims or an unauthorized error the
// caller must translate into a redirect to login. Terminal for the request.
func (m *SessionManager) RequireUser(r *http.Request) (*SessionClaims, error) {
	claims := m.Verify(r)
	if claims == nil || claims.Expired() {
		return nil, internal.ErrSessionInvalid
	}
	return claims, nil
}

// HasValidSession is the cheap fast-path gate: cookie present, signature
// good, exp claim still in the future. Never errors.
func (m *SessionManager) HasValidSession(r *http.Request) bool {
	claims := m.Verify(r)
	return claims != nil && !claims.Expired()
}

// Destroy deletes the session cookie. Idempotent.
func (m *SessionManager) Destroy(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
