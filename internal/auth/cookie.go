package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid session token")

type sessionClaims struct {
	jwt.RegisteredClaims
	SID string `json:"sid"`
}

// Signer wraps a session id into an HS256 token so cookie values cannot be
// forged or guessed without the server secret.
type Signer struct {
	secret []byte
	ttl    time.Duration
}

func NewSigner(secret []byte, ttl time.Duration) *Signer {
	return &Signer{secret: secret, ttl: ttl}
}

func (s *Signer) Sign(sid string) (string, error) {
	now := time.Now()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		SID: sid,
	})
	return tok.SignedString(s.secret)
}

func (s *Signer) Parse(value string) (string, error) {
	claims := &sessionClaims{}
	tok, err := jwt.ParseWithClaims(value, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", errors.Join(ErrInvalidToken, err)
	}
	if !tok.Valid || claims.SID == "" {
		return "", ErrInvalidToken
	}
	return claims.SID, nil
}
