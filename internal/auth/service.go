package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned for a bad username/password pair.
var ErrInvalidCredentials = errors.New("invalid username or password")

// Options configures the single-admin identity and token issuance.
type Options struct {
	// AdminUsername is the only accepted login.
	AdminUsername string
	// AdminPasswordHash is the bcrypt hash of the admin password. When it is
	// empty, AdminPassword is compared directly (local development only).
	AdminPasswordHash string
	AdminPassword     string
	JWTSecret         string
	TokenTTL          time.Duration
}

// Service issues and validates admin session tokens.
type Service struct {
	options Options
}

// NewService creates an auth service.
func NewService(options Options) *Service {
	if options.TokenTTL <= 0 {
		options.TokenTTL = 12 * time.Hour
	}
	return &Service{options: options}
}

// Login checks the credentials against the configured admin identity and
// returns a signed session token.
func (s *Service) Login(username, password string) (string, error) {
	if username != s.options.AdminUsername {
		return "", ErrInvalidCredentials
	}
	if s.options.AdminPasswordHash != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(s.options.AdminPasswordHash), []byte(password)); err != nil {
			return "", ErrInvalidCredentials
		}
	} else if password == "" || password != s.options.AdminPassword {
		return "", ErrInvalidCredentials
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.options.TokenTTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.options.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Validate parses a session token and returns the admin username it carries.
func (s *Service) Validate(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(s.options.JWTSecret), nil
	})
	if err != nil {
		return "", err
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid {
		return "", errors.New("invalid token")
	}
	return claims.Subject, nil
}
