// Package app holds the application services and business logic.
package app

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"gamelibrary/internal/domain"
)

// TokenLifetime is how long an issued token stays valid.
const TokenLifetime = 24 * time.Hour

var (
	// ErrInvalidCredentials indicates that the provided password was incorrect.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrNameNotUnique indicates that the username is already taken.
	ErrNameNotUnique = errors.New("username already taken")
	// ErrInvalidUsername indicates a username shorter than three characters.
	ErrInvalidUsername = errors.New("username must be at least 3 characters")
	// ErrWeakPassword indicates a password that fails the strength rules.
	ErrWeakPassword = errors.New("password must be at least 8 characters and contain an upper case letter, a lower case letter and a digit")
	// ErrInvalidToken indicates a token that is malformed, expired or revoked.
	ErrInvalidToken = errors.New("invalid token")
)

// AuthService handles registration, login and token validation.
type AuthService struct {
	repo   domain.Repository
	secret []byte
	now    func() time.Time

	mu      sync.Mutex
	revoked map[string]time.Time // jti -> expiry
}

// NewAuthService creates a new authentication service that signs tokens with secret.
func NewAuthService(repo domain.Repository, secret string) *AuthService {
	return &AuthService{
		repo:    repo,
		secret:  []byte(secret),
		now:     time.Now,
		revoked: make(map[string]time.Time),
	}
}

// Register creates a user with a bcrypt-hashed password.
func (s *AuthService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if len([]rune(username)) < 3 {
		return nil, ErrInvalidUsername
	}
	if !strongPassword(password) {
		return nil, ErrWeakPassword
	}

	existing, err := s.repo.GetUser(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrNameNotUnique
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := domain.NewUser(username, string(hash))
	if err := s.repo.AddUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func strongPassword(p string) bool {
	if len([]rune(p)) < 8 {
		return false
	}
	var upper, lower, digit bool
	for _, r := range p {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return upper && lower && digit
}

// Login authenticates a user and returns a signed token.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.repo.GetUser(ctx, username)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", ErrUnknownUser
	}
	// SSO-provisioned users have no password.
	if user.PasswordHash == "" {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}
	return s.issueToken(user.Username)
}

// LoginWithUser issues a token for a user already authenticated elsewhere
// (e.g. via SSO), creating the user on first login.
func (s *AuthService) LoginWithUser(ctx context.Context, username string) (string, error) {
	user, err := s.repo.GetUser(ctx, username)
	if err != nil {
		return "", err
	}
	if user == nil {
		user = domain.NewUser(username, "")
		if err := s.repo.AddUser(ctx, user); err != nil {
			// Lost a race with a concurrent first login.
			existing, getErr := s.repo.GetUser(ctx, username)
			if getErr != nil || existing == nil {
				return "", err
			}
		}
	}
	return s.issueToken(username)
}

func (s *AuthService) issueToken(username string) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   username,
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(TokenLifetime)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ValidateToken checks a token's signature, expiry and revocation, and
// returns the user it was issued to.
func (s *AuthService) ValidateToken(ctx context.Context, tokenString string) (*domain.User, error) {
	claims, err := s.parse(tokenString)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	_, revoked := s.revoked[claims.ID]
	s.mu.Unlock()
	if revoked {
		return nil, ErrInvalidToken
	}

	user, err := s.repo.GetUser(ctx, claims.Subject)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUnknownUser
	}
	return user, nil
}

// Logout revokes a token until it would have expired anyway.
func (s *AuthService) Logout(ctx context.Context, tokenString string) error {
	claims, err := s.parse(tokenString)
	if err != nil {
		// Nothing to revoke.
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	for id, exp := range s.revoked {
		if now.After(exp) {
			delete(s.revoked, id)
		}
	}
	s.revoked[claims.ID] = claims.ExpiresAt.Time
	return nil
}

func (s *AuthService) parse(tokenString string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Subject == "" || claims.ID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// ConstantTimeCompare performs a constant-time comparison of two strings.
func ConstantTimeCompare(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
