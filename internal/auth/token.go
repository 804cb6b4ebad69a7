package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenCodec signs and verifies the session claims payload with a single
// symmetric secret loaded at startup.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenCodec(secret string, ttl time.Duration) *TokenCodec {
	return &TokenCodec{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

func (c *TokenCodec) TTL() time.Duration {
	return c.ttl
}

// Encode produces a signed HS256 token whose exp claim is now + the
// configured session TTL.
func (c *TokenCodec) Encode(userID int64, email, role string, isPasswordChanged bool) (string, error) {
	now := time.Now()
	claims := &SessionClaims{
		UserID:            userID,
		Email:             email,
		Role:              role,
		IsPasswordChanged: isPasswordChanged,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

// Decode verifies the signature and algorithm and returns the claims, or
// nil on any failure: bad signature, malformed token, wrong algorithm.
// It does not reject an expired exp claim; callers that need liveness
// must check Expired themselves.
func (c *TokenCodec) Decode(tokenString string) *SessionClaims {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)

	token, err := parser.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		return c.secret, nil
	})
	if err != nil {
		return nil
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil
	}
	return claims
}
