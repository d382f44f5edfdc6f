package service

import (
	"context"

	"loan_tracker/internal/model"
)

// Function-field mocks for the repository interfaces.

type mockUserRepo struct {
	CreateFn         func(ctx context.Context, user *model.User) error
	FindByUsernameFn func(ctx context.Context, username string) (*model.User, error)
	FindByIDFn       func(ctx context.Context, id int) (*model.User, error)
}

func (m *mockUserRepo) Create(ctx context.Context, user *model.User) error {
	return m.CreateFn(ctx, user)
}

func (m *mockUserRepo) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	return m.FindByUsernameFn(ctx, username)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id int) (*model.User, error) {
	return m.FindByIDFn(ctx, id)
}

type mockLoanRepo struct {
	CreateFn          func(ctx context.Context, loan *model.Loan) error
	FindByIDFn        func(ctx context.Context, id int64) (*model.Loan, error)
	FindViewByIDFn    func(ctx context.Context, id int64) (*model.LoanView, error)
	FindAllViewsFn    func(ctx context.Context) ([]model.LoanView, error)
	FindViewsByUserFn func(ctx context.Context, userID int, filters model.UserLoanFilters) ([]model.LoanView, error)
	UpdateFn          func(ctx context.Context, loan *model.Loan) error
	DeleteFn          func(ctx context.Context, id int64) error
}

func (m *mockLoanRepo) Create(ctx context.Context, loan *model.Loan) error {
	return m.CreateFn(ctx, loan)
}

func (m *mockLoanRepo) FindByID(ctx context.Context, id int64) (*model.Loan, error) {
	return m.FindByIDFn(ctx, id)
}

func (m *mockLoanRepo) FindViewByID(ctx context.Context, id int64) (*model.LoanView, error) {
	return m.FindViewByIDFn(ctx, id)
}

func (m *mockLoanRepo) FindAllViews(ctx context.Context) ([]model.LoanView, error) {
	return m.FindAllViewsFn(ctx)
}

func (m *mockLoanRepo) FindViewsByUser(ctx context.Context, userID int, filters model.UserLoanFilters) ([]model.LoanView, error) {
	return m.FindViewsByUserFn(ctx, userID, filters)
}

func (m *mockLoanRepo) Update(ctx context.Context, loan *model.Loan) error {
	return m.UpdateFn(ctx, loan)
}

func (m *mockLoanRepo) Delete(ctx context.Context, id int64) error {
	return m.DeleteFn(ctx, id)
}
