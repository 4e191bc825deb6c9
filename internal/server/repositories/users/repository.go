package users

import (
	"context"
	"time"

	"github.com/dmitrijs2005/phonebook/internal/models"
)

// User is the stored account row. Unlike the wire model it carries the
// password hash, which must never leave the server.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	Role         models.Role
	IsActive     bool
	CreatedAt    time.Time
}

// Model strips the credential fields for use in API responses.
func (u *User) Model() models.User {
	return models.User{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

type Repository interface {
	Create(ctx context.Context, user *User) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context) ([]User, error)
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, id int64) error
	CountAdmins(ctx context.Context) (int, error)
}
