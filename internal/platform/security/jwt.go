package security

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// JWTManager signs access tokens with a process-wide HS256 secret loaded
// once at startup.
type JWTManager struct {
	secret    []byte
	accessTTL time.Duration
}

func NewJWTManager(secret string, accessTTL time.Duration) *JWTManager {
	return &JWTManager{secret: []byte(secret), accessTTL: accessTTL}
}

func (j *JWTManager) IssueAccess(accountID string, role string) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(j.accessTTL)
	claims := jwt.MapClaims{
		"sub":  accountID,
		"role": role,
		"iat":  now.Unix(),
		"exp":  exp.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	token, err := t.SignedString(j.secret)
	return token, exp, err
}
