package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"user_accounts/internal/config"
	"user_accounts/internal/models"
	"user_accounts/internal/repository"
)

// UserService implements account queries and mutations on top of the store.
type UserService struct {
	users       repository.Users
	audit       AuditLog
	defaultRole string
}

func NewUserService(users repository.Users, audit AuditLog, cfg config.Config) *UserService {
	return &UserService{users: users, audit: audit, defaultRole: cfg.Auth.DefaultRole}
}

var _ Users = (*UserService)(nil)

// GetUsers returns the users matching the filter as API projections.
// When the request does not mention is_deleted, soft-deleted rows are
// excluded; they are queryable only by asking for them explicitly.
func (s *UserService) GetUsers(ctx context.Context, f models.UserFilter) ([]models.UserResponse, error) {
	if f.IsDeleted == nil {
		active := false
		f.IsDeleted = &active
	}

	users, err := s.users.Find(ctx, f)
	if err != nil {
		return nil, err
	}

	out := make([]models.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, u.Response())
	}
	return out, nil
}

// CreateUser hashes the plaintext password, defaults the role, stamps both
// timestamps and stores the record. A taken username fails with
// repository.ErrDuplicateUsername.
func (s *UserService) CreateUser(ctx context.Context, p CreateUserParams) (models.UserResponse, error) {
	username := strings.TrimSpace(p.Username)
	if username == "" {
		return models.UserResponse{}, fmt.Errorf("username is empty")
	}

	hash, err := hashPassword(p.Password)
	if err != nil {
		return models.UserResponse{}, fmt.Errorf("invalid password: %w", err)
	}

	role := strings.TrimSpace(p.Role)
	if role == "" {
		role = s.defaultRole
	}

	now := time.Now().UTC()
	u := models.User{
		Username:     username,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
		IsDeleted:    false,
	}

	id, err := s.users.Insert(ctx, u)
	if err != nil {
		return models.UserResponse{}, err
	}
	u.ID = id

	s.audit.Record(ctx, models.AuditEvent{
		Type:        models.AuditUserCreated,
		Description: fmt.Sprintf("user %q created", username),
		Metadata:    map[string]any{"id": id, "role": role},
	})

	return u.Response(), nil
}

// UpdateUser applies only the fields present in the request and refreshes
// updated_at. An unknown id yields (nil, nil): not-found is a normal
// outcome here, not a fault.
func (s *UserService) UpdateUser(ctx context.Context, in models.UserUpdate) (*models.UserResponse, error) {
	ch := repository.UserChanges{
		Username:  in.Username,
		Role:      in.Role,
		IsDeleted: in.IsDeleted,
		UpdatedAt: time.Now().UTC(),
	}
	if in.Password != nil {
		hash, err := hashPassword(*in.Password)
		if err != nil {
			return nil, fmt.Errorf("invalid password: %w", err)
		}
		ch.PasswordHash = &hash
	}

	u, err := s.users.Update(ctx, in.ID, ch)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, nil
	}

	s.audit.Record(ctx, models.AuditEvent{
		Type:        models.AuditUserUpdated,
		Description: fmt.Sprintf("user %q updated", u.Username),
		Metadata:    map[string]any{"id": u.ID},
	})

	resp := u.Response()
	return &resp, nil
}

// DeleteUser soft-deletes the account. True iff an active row existed and
// was flagged; a repeat call returns false.
func (s *UserService) DeleteUser(ctx context.Context, id int) (bool, error) {
	deleted, err := s.users.SoftDelete(ctx, id, time.Now().UTC())
	if err != nil {
		return false, err
	}
	if deleted {
		s.audit.Record(ctx, models.AuditEvent{
			Type:        models.AuditUserDeleted,
			Description: fmt.Sprintf("user id=%d deleted", id),
			Metadata:    map[string]any{"id": id},
		})
	}
	return deleted, nil
}
