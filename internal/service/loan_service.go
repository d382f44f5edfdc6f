package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"loan_tracker/internal/model"
	"loan_tracker/internal/repository"
)

var (
	ErrLoanNotFound = errors.New("loan not found")
	ErrForbidden    = errors.New("only the original lender can modify this loan")
	ErrUnknownParty = errors.New("invalid lender or borrower")
)

// LoanService defines operations over loan records
type LoanService interface {
	ListLoans(ctx context.Context) ([]model.LoanView, error)
	GetLoanByID(ctx context.Context, loanID int64) (*model.LoanView, error)
	GetUserLoans(ctx context.Context, userID int, filters model.UserLoanFilters) ([]model.LoanView, error)
	CreateLoan(ctx context.Context, caller *model.User, req model.CreateLoanRequest) (*model.LoanView, error)
	UpdateLoan(ctx context.Context, caller *model.User, loanID int64, req model.UpdateLoanRequest) (*model.LoanView, error)
	DeleteLoan(ctx context.Context, caller *model.User, loanID int64) error
}

type loanService struct {
	loanRepo repository.LoanRepository
	userRepo repository.UserRepository
}

// NewLoanService creates a new LoanService
func NewLoanService(loanRepo repository.LoanRepository, userRepo repository.UserRepository) LoanService {
	return &loanService{loanRepo: loanRepo, userRepo: userRepo}
}

func (s *loanService) ListLoans(ctx context.Context) ([]model.LoanView, error) {
	views, err := s.loanRepo.FindAllViews(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list loans: %w", err)
	}
	return views, nil
}

func (s *loanService) GetLoanByID(ctx context.Context, loanID int64) (*model.LoanView, error) {
	view, err := s.loanRepo.FindViewByID(ctx, loanID)
	if err != nil {
		return nil, fmt.Errorf("failed to find loan by ID: %w", err)
	}
	if view == nil {
		return nil, ErrLoanNotFound
	}
	return view, nil
}

func (s *loanService) GetUserLoans(ctx context.Context, userID int, filters model.UserLoanFilters) ([]model.LoanView, error) {
	views, err := s.loanRepo.FindViewsByUser(ctx, userID, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to get user loans: %w", err)
	}
	return views, nil
}

// CreateLoan records a loan between the named lender and borrower. The caller
// must be authenticated but is not required to be either party.
func (s *loanService) CreateLoan(ctx context.Context, caller *model.User, req model.CreateLoanRequest) (*model.LoanView, error) {
	lender, err := s.userRepo.FindByUsername(ctx, req.Lender)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve lender: %w", err)
	}
	borrower, err := s.userRepo.FindByUsername(ctx, req.Borrower)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve borrower: %w", err)
	}
	if lender == nil || borrower == nil {
		return nil, ErrUnknownParty
	}

	loan := &model.Loan{
		Amount:     *req.Amount,
		Status:     model.LoanStatusPending,
		CreatedAt:  time.Now(),
		LenderID:   lender.ID,
		BorrowerID: borrower.ID,
	}

	if err := s.loanRepo.Create(ctx, loan); err != nil {
		return nil, fmt.Errorf("failed to create loan in repo: %w", err)
	}

	return &model.LoanView{
		ID:        loan.ID,
		Amount:    loan.Amount,
		Status:    loan.Status,
		CreatedAt: loan.CreatedAt,
		Lender:    lender.Username,
		Borrower:  borrower.Username,
	}, nil
}

// UpdateLoan overwrites amount and status. Lender-only.
func (s *loanService) UpdateLoan(ctx context.Context, caller *model.User, loanID int64, req model.UpdateLoanRequest) (*model.LoanView, error) {
	existing, err := s.loanRepo.FindByID(ctx, loanID)
	if err != nil {
		return nil, fmt.Errorf("failed to find loan for update: %w", err)
	}
	if existing == nil {
		return nil, ErrLoanNotFound
	}
	if existing.LenderID != caller.ID {
		return nil, ErrForbidden
	}

	existing.Amount = *req.Amount
	existing.Status = *req.Status

	if err := s.loanRepo.Update(ctx, existing); err != nil {
		return nil, fmt.Errorf("failed to update loan in repo: %w", err)
	}

	view, err := s.loanRepo.FindViewByID(ctx, loanID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload updated loan: %w", err)
	}
	if view == nil {
		return nil, ErrLoanNotFound
	}
	return view, nil
}

// DeleteLoan removes a loan permanently. Lender-only.
func (s *loanService) DeleteLoan(ctx context.Context, caller *model.User, loanID int64) error {
	existing, err := s.loanRepo.FindByID(ctx, loanID)
	if err != nil {
		return fmt.Errorf("failed to find loan for deletion: %w", err)
	}
	if existing == nil {
		return ErrLoanNotFound
	}
	if existing.LenderID != caller.ID {
		return ErrForbidden
	}

	if err := s.loanRepo.Delete(ctx, loanID); err != nil {
		return fmt.Errorf("failed to delete loan in repo: %w", err)
	}
	return nil
}
