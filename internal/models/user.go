package models

import "time"

// User is the stored account record.
type User struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // don’t expose hash
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	IsDeleted    bool      `json:"is_deleted"`
}

// UserResponse is the outward projection of User. It deliberately has no
// password field at all, so a marshalling change can never leak the hash.
type UserResponse struct {
	ID        int       `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	IsDeleted bool      `json:"is_deleted"`
}

// Response projects the record into its API shape.
func (u User) Response() UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
		IsDeleted: u.IsDeleted,
	}
}

// UserFilter holds optional exact-match predicates for user queries.
// Present fields are AND-ed; absent fields impose no constraint, except
// IsDeleted which defaults to false so soft-deleted rows only show up when
// asked for explicitly.
type UserFilter struct {
	ID        *int       `json:"id,omitempty"`
	Username  *string    `json:"username,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
	IsDeleted *bool      `json:"is_deleted,omitempty"`
}

// UserUpdate carries the fields of an update request; nil means "leave as is".
// Password is plaintext and gets hashed by the service before it reaches the
// store.
type UserUpdate struct {
	ID        int     `json:"id"`
	Username  *string `json:"username,omitempty"`
	Password  *string `json:"password,omitempty"`
	Role      *string `json:"role,omitempty"`
	IsDeleted *bool   `json:"is_deleted,omitempty"`
}

// Token is the payload returned by a successful login.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"` // minutes
}
