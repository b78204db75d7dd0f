package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gage_backend/internal/models"
	"gage_backend/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const defaultTokenTTL = time.Hour

// Token is an issued session credential.
type Token struct {
	Value     string
	ExpiresAt time.Time
	Session   models.Session
}

// Claims defines JWT claims; Subject repeats Email.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Role  string `json:"role"`
	Plant string `json:"plant"`
}

// AuthService issues and verifies session tokens.
type AuthService struct {
	customers repository.CustomerRepo
	sessions  repository.SessionRepo
	key       []byte
	ttl       time.Duration
	now       func() time.Time
}

func NewAuthService(customers repository.CustomerRepo, sessions repository.SessionRepo, s AuthSettings) *AuthService {
	ttl := s.TokenTTL
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &AuthService{
		customers: customers,
		sessions:  sessions,
		key:       s.SigningKey,
		ttl:       ttl,
		now:       time.Now,
	}
}

// Login validates credentials and returns a signed token.
// Unknown email and wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (Token, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	c, err := s.customers.GetByEmail(ctx, email)
	if err != nil {
		return Token{}, err
	}
	if c == nil {
		return Token{}, ErrInvalidCredentials
	}
	if err := verifyPassword(c.PasswordHash, password); err != nil {
		return Token{}, ErrInvalidCredentials
	}
	return s.issueToken(*c)
}

// ParseToken verifies signature, expiry and revocation status.
func (s *AuthService) ParseToken(ctx context.Context, accessToken string) (models.Session, error) {
	token, err := jwt.ParseWithClaims(accessToken, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Ensure HMAC signing is used
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.key, nil
	}, jwt.WithExpirationRequired(), jwt.WithTimeFunc(s.now))
	if err != nil {
		return models.Session{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Email == "" || claims.ID == "" {
		return models.Session{}, ErrInvalidToken
	}

	revoked, err := s.sessions.IsRevoked(ctx, claims.ID)
	if err != nil {
		return models.Session{}, err
	}
	if revoked {
		return models.Session{}, ErrTokenRevoked
	}

	return models.Session{
		TokenID:   claims.ID,
		Email:     claims.Email,
		Role:      claims.Role,
		Plant:     claims.Plant,
		ExpiresAt: claims.ExpiresAt.Time.UTC(),
	}, nil
}

// Logout revokes the session's token until it would have expired.
func (s *AuthService) Logout(ctx context.Context, sess models.Session) error {
	if sess.TokenID == "" {
		return ErrInvalidToken
	}
	return s.sessions.Revoke(ctx, sess.TokenID, sess.ExpiresAt)
}

func (s *AuthService) issueToken(c models.Customer) (Token, error) {
	if len(s.key) == 0 {
		return Token{}, errors.New("signing key is not configured")
	}
	now := s.now()
	exp := now.Add(s.ttl)
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   c.Email,
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Email: c.Email,
		Role:  c.Role,
		Plant: c.Plant,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
	if err != nil {
		return Token{}, fmt.Errorf("sign token: %w", err)
	}
	return Token{
		Value:     signed,
		ExpiresAt: claims.ExpiresAt.Time.UTC(),
		Session: models.Session{
			TokenID:   claims.ID,
			Email:     c.Email,
			Role:      c.Role,
			Plant:     c.Plant,
			ExpiresAt: claims.ExpiresAt.Time.UTC(),
		},
	}, nil
}

// HashPassword hashes a non-blank password with bcrypt.
func HashPassword(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", errors.New("password is empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// helper: verify password against hash
func verifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
