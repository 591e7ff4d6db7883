package helpers

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenManager issues and verifies the opaque session tokens handed out on
// login and signup. Callers choose the lifetime per call (remember-me logins
// get the long one).
type TokenManager struct {
	Secret []byte
}

var defaultManager *TokenManager

func NewTokenManager(secret string) *TokenManager {
	m := &TokenManager{Secret: []byte(secret)}
	defaultManager = m
	return m
}

// DefaultTokenManager returns the last constructed TokenManager (used for
// auto-wiring routes).
func DefaultTokenManager() *TokenManager { return defaultManager }

type SessionClaims struct {
	UserID string `json:"uid"`
	Admin  bool   `json:"adm"`
	jwt.RegisteredClaims
}

// Issue mints a session token for the given user with the given lifetime.
func (m *TokenManager) Issue(userID string, admin bool, ttl time.Duration) (string, time.Time, error) {
	exp := time.Now().Add(ttl)
	claims := &SessionClaims{
		UserID: userID,
		Admin:  admin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := t.SignedString(m.Secret)
	return s, exp, err
}

// Parse verifies a session token and returns its claims.
func (m *TokenManager) Parse(tokenStr string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.Secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !tkn.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
