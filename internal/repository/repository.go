package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"user_accounts/internal/models"
)

// ErrDuplicateUsername is returned by Insert when the username is already
// taken. The UNIQUE constraint spans deleted rows too, so a soft delete does
// not free the name.
var ErrDuplicateUsername = errors.New("username already exists")

// UserChanges lists the columns an update may touch; nil means keep the
// stored value. UpdatedAt is always written.
type UserChanges struct {
	Username     *string
	PasswordHash *string
	Role         *string
	IsDeleted    *bool
	UpdatedAt    time.Time
}

type Users interface {
	Insert(ctx context.Context, u models.User) (int, error)
	GetByID(ctx context.Context, id int) (*models.User, error)
	GetActiveByUsername(ctx context.Context, username string) (*models.User, error)
	Find(ctx context.Context, f models.UserFilter) ([]models.User, error)
	Update(ctx context.Context, id int, ch UserChanges) (*models.User, error)
	SoftDelete(ctx context.Context, id int, now time.Time) (bool, error)
}

type AuditLog interface {
	Append(ctx context.Context, e models.AuditEvent) error
	List(ctx context.Context, from, to time.Time, typ string) ([]models.AuditEvent, error)
}

type Repository struct {
	Users    Users
	AuditLog AuditLog
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Users:    NewUserRepository(db),
		AuditLog: NewAuditSQLite(db),
	}
}
