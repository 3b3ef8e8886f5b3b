package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mpartaud/school-records/internal/domain"
)

// Claims is the decoded identity a token carries. It is trustworthy only
// when produced by Tokens.Verify.
type Claims struct {
	UserID int64
}

// Tokens issues and verifies HS256 JWTs keyed on a user id.
type Tokens struct {
	secret []byte
	ttl    time.Duration
}

func NewTokens(secret []byte, ttl time.Duration) *Tokens {
	return &Tokens{secret: secret, ttl: ttl}
}

// Issue signs a token embedding the user id, issued-at and expiry. Any
// alteration of the payload invalidates the signature.
func (t *Tokens) Issue(userID int64) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"userId": userID,
		"iat":    now.Unix(),
		"exp":    now.Add(t.ttl).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature and expiry and returns the claims. There is no
// decode-without-verify path: authorization must never trust an unverified
// payload.
func (t *Tokens) Verify(raw string) (Claims, error) {
	token, err := jwt.Parse(raw, func(tok *jwt.Token) (any, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return t.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return Claims{}, domain.ErrTokenMalformed
		case errors.Is(err, jwt.ErrTokenExpired):
			return Claims{}, domain.ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return Claims{}, domain.ErrTokenSignature
		default:
			return Claims{}, domain.ErrTokenInvalid
		}
	}
	if !token.Valid {
		return Claims{}, domain.ErrTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, domain.ErrTokenMalformed
	}
	// JSON numbers decode as float64.
	id, ok := claims["userId"].(float64)
	if !ok || id <= 0 {
		return Claims{}, domain.ErrTokenMalformed
	}
	return Claims{UserID: int64(id)}, nil
}
