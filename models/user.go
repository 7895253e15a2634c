package models

// Role is the access level granted to a portal login.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleClient Role = "client"
)

// User represents a login identity.
// It maps to the `users` table in SQLite. A user carries no billing state of
// its own; that lives on the Customer row linked back via customers.user_id.
type User struct {
	ID           int64  `db:"id" json:"id"`
	Email        string `db:"email" json:"email"`
	PasswordHash string `db:"password_hash" json:"-"`
	Role         Role   `db:"role" json:"role"`
}
