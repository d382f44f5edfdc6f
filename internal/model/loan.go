package model

import "time"

const LoanStatusPending = "pending"

// Loan represents a loan record between two users
type Loan struct {
	ID         int64     `json:"id"`
	Amount     float64   `json:"amount"`
	Status     string    `json:"status"` // free-form label, defaults to "pending"
	CreatedAt  time.Time `json:"created_at"`
	LenderID   int       `json:"lender_id"`
	BorrowerID int       `json:"borrower_id"`
}

// LoanView is a loan joined with the usernames of both parties
type LoanView struct {
	ID        int64     `json:"id"`
	Amount    float64   `json:"amount"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	Lender    string    `json:"lender"`
	Borrower  string    `json:"borrower"`
}

// CreateLoanRequest is used for creating a new loan
type CreateLoanRequest struct {
	Amount   *float64 `json:"amount" binding:"required"` // pointer so zero is accepted; no range check
	Lender   string   `json:"lender" binding:"required"`
	Borrower string   `json:"borrower" binding:"required"`
}

// UpdateLoanRequest overwrites amount and status of an existing loan.
// Both fields are required; status is intentionally not restricted to an enum.
type UpdateLoanRequest struct {
	Amount *float64 `json:"amount" binding:"required"`
	Status *string  `json:"status" binding:"required"`
}

// UserLoanFilters contains filter parameters for a user's own loan queries
type UserLoanFilters struct {
	Role   *string // "lender" or "borrower"; nil means both sides
	Status *string
}
