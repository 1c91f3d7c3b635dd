package domain

import "context"

// Admin role value checked by the auth gate.
const RoleAdmin = "admin"

// User is an administrative account. The public site has no user concept;
// these rows only exist to gate mutation endpoints.
type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Username     string `gorm:"size:100;uniqueIndex;not null" json:"username"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Role         string `gorm:"size:50;not null;default:admin" json:"role"`
	CreatedAt    int64  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    int64  `gorm:"autoUpdateTime" json:"updated_at"`
}

// UserRepository defines the data access interface for admin accounts.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByUsername(ctx context.Context, username string) (*User, error)
}
