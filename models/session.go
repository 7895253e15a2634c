package models

// Session is the role-scoped result of a successful authentication.
// Token is a signed JWT carrying the email and role claims; the interactive
// shell re-derives the caller's role from it when routing between portals.
type Session struct {
	ID     string `json:"id"`
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
	Token  string `json:"-"`
}
