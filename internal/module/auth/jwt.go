package auth

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// JWTManager signs and verifies admin access tokens (HS256). Its Verify
// method satisfies the middleware TokenVerifier interface.
type JWTManager struct {
	secret []byte
	expiry time.Duration
}

type accessClaims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

func NewJWTManager(secret string, expiry time.Duration) *JWTManager {
	return &JWTManager{secret: []byte(secret), expiry: expiry}
}

// Generate issues a signed token for the user. The user id travels in the
// subject claim, the role in a private claim.
func (m *JWTManager) Generate(userID uint, role string) (token string, expiresAt time.Time, err error) {
	now := time.Now()
	expiresAt = now.Add(m.expiry)

	claims := accessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Role: role,
	}

	token, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return token, expiresAt, nil
}

// Verify parses and validates a token, returning the user id and role.
func (m *JWTManager) Verify(token string) (uint, string, error) {
	var claims accessClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !parsed.Valid {
		return 0, "", fmt.Errorf("invalid token: %w", err)
	}

	userID, err := strconv.ParseUint(claims.Subject, 10, 32)
	if err != nil {
		return 0, "", fmt.Errorf("invalid subject claim %q", claims.Subject)
	}
	return uint(userID), claims.Role, nil
}
