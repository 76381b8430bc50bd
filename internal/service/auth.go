package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"cloudnotes/internal/domain"
)

// AuthService handles user registration, login, and session token operations.
type AuthService struct {
	users      domain.UserRepository
	jwtSecret  []byte
	bcryptCost int
}

// NewAuthService creates a new AuthService. The JWT secret is injected here
// at startup and never read from anywhere else.
func NewAuthService(users domain.UserRepository, jwtSecret string, bcryptCost int) *AuthService {
	return &AuthService{
		users:      users,
		jwtSecret:  []byte(jwtSecret),
		bcryptCost: bcryptCost,
	}
}

// tokenClaims carries the authenticated user's id. Tokens are stateless and
// carry no expiry: any correctly signed token is accepted for the lifetime
// of the secret.
type tokenClaims struct {
	jwt.RegisteredClaims
	UserID string `json:"userId"`
}

// Register validates inputs, stores a new user with a hashed password, and
// returns a session token for the created account. All violated fields are
// reported together in a single *domain.ValidationError.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (string, error) {
	var verr domain.ValidationError
	if len(name) < 3 {
		verr.Add("name", "Enter a valid name")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		verr.Add("email", "Enter a valid email")
	}
	if len(password) < 7 {
		verr.Add("password", "Enter a password of at least 7 characters")
	}
	if verr.Any() {
		return "", &verr
	}

	// Friendly pre-check; the unique index on users.email is what actually
	// closes the race between concurrent registrations.
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return "", domain.ErrDuplicateEmail
	} else if !errors.Is(err, domain.ErrNotFound) {
		return "", fmt.Errorf("check existing user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return "", domain.ErrDuplicateEmail
		}
		return "", fmt.Errorf("create user: %w", err)
	}

	token, err := s.GenerateToken(user.ID)
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return token, nil
}

// Login verifies credentials and returns a signed session token. An unknown
// email and a wrong password produce the same error so responses cannot be
// used to enumerate accounts.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", fmt.Errorf("get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", domain.ErrInvalidCredentials
	}

	token, err := s.GenerateToken(user.ID)
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return token, nil
}

// GetUser returns the user for the given id.
func (s *AuthService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

// GenerateToken signs an HS256 token embedding the user id.
func (s *AuthService) GenerateToken(userID string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{UserID: userID})
	return token.SignedString(s.jwtSecret)
}

// ValidateToken parses and verifies a session token, returning the embedded
// user id. Malformed or tampered tokens fail with domain.ErrUnauthenticated.
func (s *AuthService) ValidateToken(tokenString string) (string, error) {
	claims := &tokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid || claims.UserID == "" {
		return "", domain.ErrUnauthenticated
	}
	return claims.UserID, nil
}
