package models

import "time"

// Account is a registered user.
type Account struct {
	ID           int       `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// AccountSummary is the public view of an account.
type AccountSummary struct {
	ID       int    `db:"id" json:"id"`
	Username string `db:"username" json:"username"`
}

// Summary strips private fields.
func (a Account) Summary() AccountSummary {
	return AccountSummary{ID: a.ID, Username: a.Username}
}
