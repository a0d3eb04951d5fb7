package model

import "time"

// AdminUsername is the account seeded on first start. It cannot be deleted.
const AdminUsername = "admin"

// User is an account allowed to manage the tournament
type User struct {
	Username     string    `json:"username"`      // login username (immutable)
	PasswordHash string    `json:"password_hash"` // bcrypt hash
	IsAdmin      bool      `json:"is_admin"`
	CreatedAt    time.Time `json:"created_at"`
}
