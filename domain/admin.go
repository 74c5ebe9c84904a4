package domain

import "time"

// Admin is an identity allowed to edit site content.
type Admin struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`

	// PasswordHash is a bcrypt hash; admins without one cannot log in.
	PasswordHash string `json:"-"`
}

func (a *Admin) CanEdit() bool {
	return a != nil && a.IsActive
}
