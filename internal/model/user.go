package model

// User represents a registered account
type User struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`         // Do not expose password hash in JSON responses
	IsLender     bool   `json:"is_lender"` // Reserved, nothing sets it yet
}
