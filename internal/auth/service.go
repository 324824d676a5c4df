// Package auth issues session tokens for the admin account.
package auth

import (
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/bucketcms/service/internal/apperr"
)

const tokenTTL = 24 * time.Hour

// Service checks admin credentials and signs tokens accepted by
// middleware.RequireAuth.
type Service struct {
	username  string
	password  string
	jwtSecret string
	now       func() time.Time
}

// NewService creates a new auth Service.
func NewService(username, password, jwtSecret string) *Service {
	return &Service{
		username:  username,
		password:  password,
		jwtSecret: jwtSecret,
		now:       time.Now,
	}
}

// Login returns a signed token when username and password match the
// configured admin account.
func (s *Service) Login(username, password string) (string, error) {
	if s.password == "" {
		return "", apperr.Auth.New("login is disabled: no admin password configured")
	}
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.password)) == 1
	if !userOK || !passOK {
		return "", apperr.Auth.New("invalid username or password")
	}

	token, err := s.issueToken(username)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}

// issueToken creates a signed JWT for the given admin.
func (s *Service) issueToken(subject string) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub": subject,
		"iat": now.Unix(),
		"exp": now.Add(tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}
