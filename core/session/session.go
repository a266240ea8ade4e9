package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/unicrm/unicli/core/user"
)

var (
	nowFunc = time.Now // mockable

	// errors
	errInvalidToken = errors.New("invalid token")
	errNoExpiry     = errors.New("token has no expiry claim")
)

// Session is the client's view of an authenticated backend session.
type Session struct {
	Token     string
	User      user.User
	ExpiresAt time.Time
}

// DecodeExpiry extracts the exp claim from a JWT without verifying its
// signature. The client cannot verify, having no key, but it can avoid
// presenting a token the backend is guaranteed to reject.
func DecodeExpiry(token string) (time.Time, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, errInvalidToken
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, errNoExpiry
	}
	return exp.Time, nil
}

// TokenValid reports whether token decodes and has not expired yet.
func TokenValid(token string) bool {
	if token == "" {
		return false
	}
	exp, err := DecodeExpiry(token)
	if err != nil {
		return false
	}
	return exp.After(nowFunc())
}

// Load restores a session from the store; it fails when either key is
// missing or the token has expired.
func Load(store *Store) (Session, bool) {
	token, ok := store.Token()
	if !ok {
		return Session{}, false
	}
	usr, ok := store.User()
	if !ok {
		return Session{}, false
	}
	exp, err := DecodeExpiry(token)
	if err != nil || !exp.After(nowFunc()) {
		return Session{}, false
	}
	return Session{Token: token, User: usr, ExpiresAt: exp}, true
}
