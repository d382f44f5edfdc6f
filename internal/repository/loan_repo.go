package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"loan_tracker/internal/model"

	"github.com/jackc/pgx/v5"
)

// LoanRepository defines operations for loan data
type LoanRepository interface {
	Create(ctx context.Context, loan *model.Loan) error
	FindByID(ctx context.Context, id int64) (*model.Loan, error)
	FindViewByID(ctx context.Context, id int64) (*model.LoanView, error)
	FindAllViews(ctx context.Context) ([]model.LoanView, error)
	FindViewsByUser(ctx context.Context, userID int, filters model.UserLoanFilters) ([]model.LoanView, error)
	Update(ctx context.Context, loan *model.Loan) error
	Delete(ctx context.Context, id int64) error
}

type loanRepository struct {
	db DB
}

// NewLoanRepository creates a new LoanRepository
func NewLoanRepository(db DB) LoanRepository {
	return &loanRepository{db: db}
}

const loanViewSelect = `SELECT l.id, l.amount, l.status, l.created_at, lu.username, bu.username
            FROM loans l
            JOIN users lu ON l.lender_id = lu.id
            JOIN users bu ON l.borrower_id = bu.id`

// Create inserts a new loan into the database
func (r *loanRepository) Create(ctx context.Context, l *model.Loan) error {
	sql := `INSERT INTO loans (amount, status, created_at, lender_id, borrower_id)
            VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at`
	err := r.db.QueryRow(ctx, sql, l.Amount, l.Status, l.CreatedAt, l.LenderID, l.BorrowerID).Scan(&l.ID, &l.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create loan: %w", err)
	}
	return nil
}

// FindByID retrieves a loan by its ID
func (r *loanRepository) FindByID(ctx context.Context, id int64) (*model.Loan, error) {
	l := &model.Loan{}
	sql := `SELECT id, amount, status, created_at, lender_id, borrower_id FROM loans WHERE id = $1`
	err := r.db.QueryRow(ctx, sql, id).Scan(
		&l.ID, &l.Amount, &l.Status, &l.CreatedAt, &l.LenderID, &l.BorrowerID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("failed to find loan by ID: %w", err)
	}
	return l, nil
}

// FindViewByID retrieves a loan joined with both party usernames
func (r *loanRepository) FindViewByID(ctx context.Context, id int64) (*model.LoanView, error) {
	v := &model.LoanView{}
	sql := loanViewSelect + ` WHERE l.id = $1`
	err := r.db.QueryRow(ctx, sql, id).Scan(
		&v.ID, &v.Amount, &v.Status, &v.CreatedAt, &v.Lender, &v.Borrower,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("failed to find loan view by ID: %w", err)
	}
	return v, nil
}

// FindAllViews retrieves all loans joined with party usernames, in storage order
func (r *loanRepository) FindAllViews(ctx context.Context) ([]model.LoanView, error) {
	rows, err := r.db.Query(ctx, loanViewSelect)
	if err != nil {
		return nil, fmt.Errorf("failed to query loans: %w", err)
	}
	defer rows.Close()

	return scanLoanViews(rows)
}

// FindViewsByUser retrieves loans where the user is a party, with optional filters
func (r *loanRepository) FindViewsByUser(ctx context.Context, userID int, filters model.UserLoanFilters) ([]model.LoanView, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(loanViewSelect)

	args := []interface{}{userID}

	if filters.Role != nil && *filters.Role == "lender" {
		queryBuilder.WriteString(" WHERE l.lender_id = $1")
	} else if filters.Role != nil && *filters.Role == "borrower" {
		queryBuilder.WriteString(" WHERE l.borrower_id = $1")
	} else {
		queryBuilder.WriteString(" WHERE (l.lender_id = $1 OR l.borrower_id = $1)")
	}

	if filters.Status != nil && *filters.Status != "" {
		queryBuilder.WriteString(" AND l.status = $2")
		args = append(args, *filters.Status)
	}

	rows, err := r.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query loans by user: %w", err)
	}
	defer rows.Close()

	return scanLoanViews(rows)
}

// Update overwrites the amount and status of an existing loan
func (r *loanRepository) Update(ctx context.Context, l *model.Loan) error {
	sql := `UPDATE loans SET amount = $1, status = $2 WHERE id = $3`
	cmdTag, err := r.db.Exec(ctx, sql, l.Amount, l.Status, l.ID)
	if err != nil {
		return fmt.Errorf("failed to update loan: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("loan not found for update")
	}
	return nil
}

// Delete removes a loan from the database
func (r *loanRepository) Delete(ctx context.Context, id int64) error {
	sql := `DELETE FROM loans WHERE id = $1`
	cmdTag, err := r.db.Exec(ctx, sql, id)
	if err != nil {
		return fmt.Errorf("failed to delete loan: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("loan not found for deletion")
	}
	return nil
}

func scanLoanViews(rows pgx.Rows) ([]model.LoanView, error) {
	views := []model.LoanView{}
	for rows.Next() {
		var v model.LoanView
		if err := rows.Scan(
			&v.ID, &v.Amount, &v.Status, &v.CreatedAt, &v.Lender, &v.Borrower,
		); err != nil {
			return nil, fmt.Errorf("failed to scan loan row: %w", err)
		}
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating loan rows: %w", err)
	}
	return views, nil
}
