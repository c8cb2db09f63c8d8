package handler

import (
	"context"

	"github.com/biblioteca/loan-service/loan/internal/model"
	"github.com/biblioteca/loan-service/loan/internal/service"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

var _ LoanService = (*service.Service)(nil)

type LoanService interface {
	CreateLoan(ctx context.Context, req model.CreateLoanRequest) (model.Loan, error)
	ReturnLoan(ctx context.Context, loanUID string) (model.Loan, error)
	GetLoan(ctx context.Context, loanUID string) (model.Loan, error)
	ListLoans(ctx context.Context, filter model.LoanFilter) ([]model.Loan, error)
}
