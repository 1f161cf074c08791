package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"user_accounts/internal/models"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Ensure implementation of Users interface at compile time.
var _ Users = (*UserRepository)(nil)

const (
	insertUserSQL = `INSERT INTO users (username, password_hash, role, created_at, updated_at, is_deleted) VALUES (?, ?, ?, ?, ?, ?)`

	userColumns = `id, username, password_hash, role, created_at, updated_at, is_deleted`

	selectUserByIDSQL             = `SELECT id, username, password_hash, role, created_at, updated_at, is_deleted FROM users WHERE id = ?`
	selectActiveUserByUsernameSQL = `SELECT id, username, password_hash, role, created_at, updated_at, is_deleted FROM users WHERE username = ? AND is_deleted = 0`

	softDeleteUserSQL = `UPDATE users SET is_deleted = 1, updated_at = ? WHERE id = ? AND is_deleted = 0`
)

// isUniqueViolation reports whether the driver error is a UNIQUE constraint
// failure (modernc.org/sqlite exposes it only through the message).
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "unique")
}

// scanUser reads one user row from a *sql.Row or *sql.Rows.
func scanUser(row interface{ Scan(dest ...any) error }) (*models.User, error) {
	var u models.User
	if err := row.Scan(
		&u.ID,
		&u.Username,
		&u.PasswordHash,
		&u.Role,
		&u.CreatedAt,
		&u.UpdatedAt,
		&u.IsDeleted,
	); err != nil {
		return nil, err
	}
	u.CreatedAt = u.CreatedAt.UTC()
	u.UpdatedAt = u.UpdatedAt.UTC()
	return &u, nil
}

// Insert stores a new user and returns its ID. A username collision with any
// existing row, active or soft-deleted, yields ErrDuplicateUsername.
func (r *UserRepository) Insert(ctx context.Context, u models.User) (int, error) {
	res, err := r.db.ExecContext(ctx, insertUserSQL,
		u.Username,
		u.PasswordHash,
		u.Role,
		u.CreatedAt.UTC(),
		u.UpdatedAt.UTC(),
		u.IsDeleted,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("insert user %q: %w", u.Username, ErrDuplicateUsername)
		}
		return 0, fmt.Errorf("insert user %q: %w", u.Username, err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for user %q: %w", u.Username, err)
	}
	return int(lastID), nil
}

// GetByID fetches a user by id regardless of the soft-delete flag.
// Returns (nil, nil) if not found.
func (r *UserRepository) GetByID(ctx context.Context, id int) (*models.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, selectUserByIDSQL, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select user id=%d: %w", id, err)
	}
	return u, nil
}

// GetActiveByUsername fetches a non-deleted user by username.
// Returns (nil, nil) if not found.
func (r *UserRepository) GetActiveByUsername(ctx context.Context, username string) (*models.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, selectActiveUserByUsernameSQL, username))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select user %q: %w", username, err)
	}
	return u, nil
}

// Find returns users matching every present filter field, ordered by id so
// identical queries against the same data read back identically.
func (r *UserRepository) Find(ctx context.Context, f models.UserFilter) ([]models.User, error) {
	var (
		conds []string
		args  []any
	)
	if f.ID != nil {
		conds = append(conds, "id = ?")
		args = append(args, *f.ID)
	}
	if f.Username != nil {
		conds = append(conds, "username = ?")
		args = append(args, *f.Username)
	}
	if f.CreatedAt != nil {
		conds = append(conds, "created_at = ?")
		args = append(args, f.CreatedAt.UTC())
	}
	if f.UpdatedAt != nil {
		conds = append(conds, "updated_at = ?")
		args = append(args, f.UpdatedAt.UTC())
	}
	if f.IsDeleted != nil {
		conds = append(conds, "is_deleted = ?")
		args = append(args, *f.IsDeleted)
	}

	q := `SELECT ` + userColumns + ` FROM users`
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY id ASC"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("find users: %w", err)
	}
	defer rows.Close()

	out := make([]models.User, 0, 16)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user row: %w", err)
		}
		out = append(out, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate user rows: %w", err)
	}
	return out, nil
}

// Update applies the non-nil changes to the row with the given id and returns
// the updated record, or (nil, nil) when no such row exists.
func (r *UserRepository) Update(ctx context.Context, id int, ch UserChanges) (*models.User, error) {
	existing, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, nil
	}

	sets := []string{"updated_at = ?"}
	args := []any{ch.UpdatedAt.UTC()}
	if ch.Username != nil {
		sets = append(sets, "username = ?")
		args = append(args, *ch.Username)
	}
	if ch.PasswordHash != nil {
		sets = append(sets, "password_hash = ?")
		args = append(args, *ch.PasswordHash)
	}
	if ch.Role != nil {
		sets = append(sets, "role = ?")
		args = append(args, *ch.Role)
	}
	if ch.IsDeleted != nil {
		sets = append(sets, "is_deleted = ?")
		args = append(args, *ch.IsDeleted)
	}
	args = append(args, id)

	q := `UPDATE users SET ` + strings.Join(sets, ", ") + ` WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, q, args...); err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("update user id=%d: %w", id, ErrDuplicateUsername)
		}
		return nil, fmt.Errorf("update user id=%d: %w", id, err)
	}

	return r.GetByID(ctx, id)
}

// SoftDelete flags an active row as deleted. Returns true iff a row was
// flipped; deleting an already-deleted or unknown id is a no-op returning
// false, which makes the operation idempotent.
func (r *UserRepository) SoftDelete(ctx context.Context, id int, now time.Time) (bool, error) {
	res, err := r.db.ExecContext(ctx, softDeleteUserSQL, now.UTC(), id)
	if err != nil {
		return false, fmt.Errorf("soft delete user id=%d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected for delete id=%d: %w", id, err)
	}
	return affected > 0, nil
}
