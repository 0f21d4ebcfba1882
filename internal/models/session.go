package models

// Session is one authenticated login. Rows are soft-invalidated on logout or
// when a new login supersedes them, never deleted.
type Session struct {
	ID       string `db:"id"`
	UserID   string `db:"platform_user_id"`
	IsActive int16  `db:"is_active"`
}
