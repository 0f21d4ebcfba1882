package service

import (
	"errors"
	"fmt"
	"time"

	"platform-auth/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrTokenExpired means the token's embedded expiry has passed.
	ErrTokenExpired = errors.New("token has expired")
	// ErrTokenMalformed covers structural and signature failures.
	ErrTokenMalformed = errors.New("token is malformed")
)

// TokenCodec signs and verifies the compact claim set handed to clients.
// Secret and algorithm are process-wide configuration, fixed at startup.
type TokenCodec struct {
	secret []byte
	method jwt.SigningMethod
}

func NewTokenCodec(secret, algorithm string) (*TokenCodec, error) {
	method := jwt.GetSigningMethod(algorithm)
	if method == nil {
		return nil, fmt.Errorf("unknown signing algorithm %q", algorithm)
	}
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("signing algorithm %q does not take a shared secret", algorithm)
	}
	return &TokenCodec{secret: []byte(secret), method: method}, nil
}

// Issue embeds an absolute expiry of now+ttl into the claims and returns the
// signed compact token.
func (c *TokenCodec) Issue(claims *models.Claims, ttl time.Duration) (string, error) {
	now := time.Now()
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))

	token := jwt.NewWithClaims(c.method, claims)
	return token.SignedString(c.secret)
}

// Parse verifies signature and expiry and reconstructs the claims. Expiry is
// checked by the jwt library's own validation, never re-derived here.
func (c *TokenCodec) Parse(tokenString string) (*models.Claims, error) {
	claims := &models.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != c.method.Alg() {
			return nil, jwt.ErrSignatureInvalid
		}
		return c.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenMalformed),
			errors.Is(err, jwt.ErrTokenSignatureInvalid),
			errors.Is(err, jwt.ErrSignatureInvalid),
			errors.Is(err, jwt.ErrTokenUnverifiable):
			return nil, ErrTokenMalformed
		default:
			return nil, err
		}
	}
	if !token.Valid {
		return nil, ErrTokenMalformed
	}
	return claims, nil
}
