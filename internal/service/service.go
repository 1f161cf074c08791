package service

import (
	"context"
	"time"

	"user_accounts/internal/config"
	"user_accounts/internal/logger"
	"user_accounts/internal/models"
	"user_accounts/internal/repository"
)

// Authorization covers credential verification and bearer-token issuance.
type Authorization interface {
	Authenticate(ctx context.Context, username, password string) (bool, error)
	Role(ctx context.Context, username string) (string, error)
	Login(ctx context.Context, username, password string) (models.Token, error)
	ParseToken(accessToken string) (*Claims, error)
}

// Users exposes account queries and mutations.
type Users interface {
	GetUsers(ctx context.Context, f models.UserFilter) ([]models.UserResponse, error)
	CreateUser(ctx context.Context, p CreateUserParams) (models.UserResponse, error)
	UpdateUser(ctx context.Context, u models.UserUpdate) (*models.UserResponse, error)
	DeleteUser(ctx context.Context, id int) (bool, error)
}

// AuditLog exposes the append-only account audit trail with filtering access.
type AuditLog interface {
	Record(ctx context.Context, e models.AuditEvent)
	List(ctx context.Context, f AuditFilter) ([]models.AuditEvent, error)
}

// CreateUserParams carries a create request; the password arrives plaintext
// and is hashed before it touches the store.
type CreateUserParams struct {
	Username string
	Password string
	Role     string // empty means the configured default
}

// AuditFilter supports audit-trail filtering by time range and type.
type AuditFilter struct {
	From time.Time // inclusive; zero means no lower bound
	To   time.Time // inclusive; zero means no upper bound
	Type string    // "", USER_CREATED, USER_UPDATED, USER_DELETED, LOGIN_OK, LOGIN_FAILED
}

// Service aggregates all sub-services.
type Service struct {
	Authorization
	Users
	AuditLog
}

// NewService wires the repository layer into concrete services.
func NewService(repos *repository.Repository, cfg config.Config, log *logger.Logger) *Service {
	audit := NewAuditService(repos.AuditLog, log)
	return &Service{
		Authorization: NewAuthService(repos.Users, audit, cfg),
		Users:         NewUserService(repos.Users, audit, cfg),
		AuditLog:      audit,
	}
}
