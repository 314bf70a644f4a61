package security

import (
	"encoding/base64"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	RoleEmployee = "employee"
	RoleReviewer = "reviewer"
)

// Subject is what the identity service vouches for. This service never
// verifies credentials itself; it only trusts the signed claims.
type Subject struct {
	ID   string
	Name string
	Role string
}

type SubjectClaims struct {
	Name string `json:"name"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// CreateSubjectToken issues an HS256 token for a subject. Used by the
// createtoken command and by tests; production tokens come from the
// identity service with the same shape.
func CreateSubjectToken(subject *Subject, base64Secret string, expiresInSeconds int64) (string, error) {
	secretBytes, err := base64.StdEncoding.DecodeString(base64Secret)
	if err != nil {
		return "", err
	}
	claims := SubjectClaims{
		Name: subject.Name,
		Role: subject.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject.ID,
			Issuer:    "pontual",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Duration(expiresInSeconds) * time.Second)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString(secretBytes)
}

// ParseSubjectToken validates a token and returns the subject it names.
func ParseSubjectToken(tokenStr string, secret []byte) (*Subject, error) {
	claims := &SubjectClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}

	role := claims.Role
	if role == "" {
		role = RoleEmployee
	}
	return &Subject{ID: claims.Subject, Name: claims.Name, Role: role}, nil
}
