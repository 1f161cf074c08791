package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"user_accounts/internal/config"
	"user_accounts/internal/models"
	"user_accounts/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const tokenTypeBearer = "bearer"

// Domain errors for auth flows.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
)

// AuthService verifies credentials and issues signed bearer tokens.
type AuthService struct {
	users repository.Users
	audit AuditLog

	signingKey  []byte
	tokenTTLMin int
	defaultRole string
}

func NewAuthService(users repository.Users, audit AuditLog, cfg config.Config) *AuthService {
	return &AuthService{
		users:       users,
		audit:       audit,
		signingKey:  []byte(cfg.Token.Secret),
		tokenTTLMin: cfg.Token.ExpiresIn,
		defaultRole: cfg.Auth.DefaultRole,
	}
}

var _ Authorization = (*AuthService)(nil)

// Claims defines the JWT payload: subject is the username, role the stored
// authorization class.
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// Authenticate checks a username/password pair against the stored hash.
// An unknown or soft-deleted username is a plain no-match, never an error;
// only store failures surface as errors.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (bool, error) {
	u, err := s.users.GetActiveByUsername(ctx, username)
	if err != nil {
		return false, err
	}
	if u == nil {
		return false, nil
	}
	return verifyPassword(u.PasswordHash, password) == nil, nil
}

// Role resolves the stored role for the username, falling back to the
// configured default role when the user does not exist.
func (s *AuthService) Role(ctx context.Context, username string) (string, error) {
	u, err := s.users.GetActiveByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	if u == nil {
		return s.defaultRole, nil
	}
	return u.Role, nil
}

// Login verifies the credentials and issues a bearer token carrying the
// username and role, expiring after the configured number of minutes.
// A token stays valid until expiry regardless of later account changes.
func (s *AuthService) Login(ctx context.Context, username, password string) (models.Token, error) {
	ok, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return models.Token{}, err
	}
	if !ok {
		s.audit.Record(ctx, models.AuditEvent{
			Type:        models.AuditLoginFailed,
			Description: fmt.Sprintf("failed login for %q", username),
		})
		return models.Token{}, ErrInvalidCredentials
	}

	role, err := s.Role(ctx, username)
	if err != nil {
		return models.Token{}, err
	}

	accessToken, err := s.issueToken(username, role)
	if err != nil {
		return models.Token{}, fmt.Errorf("sign token: %w", err)
	}

	s.audit.Record(ctx, models.AuditEvent{
		Type:        models.AuditLoginOK,
		Description: fmt.Sprintf("user %q logged in", username),
		Metadata:    map[string]any{"role": role},
	})

	return models.Token{
		AccessToken: accessToken,
		TokenType:   tokenTypeBearer,
		ExpiresIn:   s.tokenTTLMin,
	}, nil
}

// ParseToken validates a bearer token and returns its claims.
func (s *AuthService) ParseToken(accessToken string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(accessToken, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Ensure HMAC signing is used
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.signingKey, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// helper: issue a signed JWT for a username/role pair
func (s *AuthService) issueToken(username, role string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(s.tokenTTLMin) * time.Minute)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Role: role,
	})
	return token.SignedString(s.signingKey)
}

// helper: hash password safely
func hashPassword(password string) (string, error) {
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
