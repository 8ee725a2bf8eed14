/**
 * @description
 * Session token minting and verification. The service issues its own signed
 * bearer tokens that reference a server-side session row; the vendor's access
 * token never leaves the backend.
 *
 * @dependencies
 * - github.com/golang-jwt/jwt/v5: HS256 signing and claims validation.
 * - github.com/google/uuid: session identifiers carried in the subject claim.
 */

package app

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid session token")

// TokenIssuer mints and parses the signed bearer tokens handed to clients.
type TokenIssuer struct {
	signingKey []byte
}

func NewTokenIssuer(signingKey string) *TokenIssuer {
	return &TokenIssuer{signingKey: []byte(signingKey)}
}

// Issue returns a signed token whose subject is the session ID.
func (t *TokenIssuer) Issue(sessionID uuid.UUID, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   sessionID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.signingKey)
}

// Parse validates the signature and expiry and returns the session ID.
func (t *TokenIssuer) Parse(tokenString string) (uuid.UUID, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return t.signingKey, nil
	})
	if err != nil || !parsed.Valid {
		return uuid.Nil, ErrInvalidToken
	}
	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return uuid.Nil, ErrInvalidToken
	}
	sessionID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}
	return sessionID, nil
}
