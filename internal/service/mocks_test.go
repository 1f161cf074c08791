package service

import (
	"context"
	"time"

	"user_accounts/internal/config"
	"user_accounts/internal/models"
	"user_accounts/internal/repository"
)

// fakeUserRepo is a lightweight in-test implementation of repository.Users
// driven by function fields; unset functions fail loudly via nil panic so a
// test never silently exercises an unexpected path.
type fakeUserRepo struct {
	InsertFn              func(ctx context.Context, u models.User) (int, error)
	GetByIDFn             func(ctx context.Context, id int) (*models.User, error)
	GetActiveByUsernameFn func(ctx context.Context, username string) (*models.User, error)
	FindFn                func(ctx context.Context, f models.UserFilter) ([]models.User, error)
	UpdateFn              func(ctx context.Context, id int, ch repository.UserChanges) (*models.User, error)
	SoftDeleteFn          func(ctx context.Context, id int, now time.Time) (bool, error)

	insertCalls []models.User
	updateCalls []repository.UserChanges
	getCalls    []string
}

var _ repository.Users = (*fakeUserRepo)(nil)

func (m *fakeUserRepo) Insert(ctx context.Context, u models.User) (int, error) {
	m.insertCalls = append(m.insertCalls, u)
	return m.InsertFn(ctx, u)
}

func (m *fakeUserRepo) GetByID(ctx context.Context, id int) (*models.User, error) {
	return m.GetByIDFn(ctx, id)
}

func (m *fakeUserRepo) GetActiveByUsername(ctx context.Context, username string) (*models.User, error) {
	m.getCalls = append(m.getCalls, username)
	return m.GetActiveByUsernameFn(ctx, username)
}

func (m *fakeUserRepo) Find(ctx context.Context, f models.UserFilter) ([]models.User, error) {
	return m.FindFn(ctx, f)
}

func (m *fakeUserRepo) Update(ctx context.Context, id int, ch repository.UserChanges) (*models.User, error) {
	m.updateCalls = append(m.updateCalls, ch)
	return m.UpdateFn(ctx, id, ch)
}

func (m *fakeUserRepo) SoftDelete(ctx context.Context, id int, now time.Time) (bool, error) {
	return m.SoftDeleteFn(ctx, id, now)
}

// recordingAudit captures audit events in memory.
type recordingAudit struct {
	events []models.AuditEvent
}

var _ AuditLog = (*recordingAudit)(nil)

func (r *recordingAudit) Record(_ context.Context, e models.AuditEvent) {
	r.events = append(r.events, e)
}

func (r *recordingAudit) List(_ context.Context, _ AuditFilter) ([]models.AuditEvent, error) {
	return r.events, nil
}

func (r *recordingAudit) lastType() string {
	if len(r.events) == 0 {
		return ""
	}
	return r.events[len(r.events)-1].Type
}

func testConfig() config.Config {
	var cfg config.Config
	cfg.Token.Secret = "test-secret"
	cfg.Token.ExpiresIn = 30
	cfg.Auth.DefaultRole = "user"
	return cfg
}
