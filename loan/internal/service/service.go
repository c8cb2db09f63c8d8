package service

import (
	"context"
	"time"

	"github.com/biblioteca/loan-service/loan/internal/client/book"
	"github.com/biblioteca/loan-service/loan/internal/client/user"
	"github.com/biblioteca/loan-service/loan/internal/errs"
	"github.com/biblioteca/loan-service/loan/internal/model"
	"github.com/biblioteca/loan-service/loan/internal/repository"
	"github.com/biblioteca/loan-service/pkg/circuit_breaker"
	"github.com/biblioteca/loan-service/pkg/kafka"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

var (
	_ UserClient = (*user.Client)(nil)
	_ BookClient = (*book.Client)(nil)
)

// UserClient is the patron-status collaborator. Errors carry a cause from
// the errs package.
type UserClient interface {
	ValidateActive(ctx context.Context, userID int64) error
}

// BookClient is the stock collaborator. Stock is mutated only through
// DecreaseStock (reserve) and IncreaseStock (release).
type BookClient interface {
	GetStock(ctx context.Context, bookID int64) (model.BookStock, error)
	DecreaseStock(ctx context.Context, bookID int64) error
	IncreaseStock(ctx context.Context, bookID int64) error
}

type Enqueuer interface {
	Enqueue(topic string, v any) error
}

// Service orchestrates loan creation and return across the users service,
// the books service and the loan store. No transaction spans the three;
// consistency rests on the call ordering in CreateLoan/ReturnLoan.
type Service struct {
	log      *zap.Logger
	repo     repository.Repository
	userSvc  UserClient
	bookSvc  BookClient
	enqueuer Enqueuer
	userCB   circuit_breaker.CircuitBreaker
	bookCB   circuit_breaker.CircuitBreaker
}

const (
	cbRecordLength     = 10
	cbTimeout          = 5 * time.Second
	cbPercentile       = 0.5
	cbRecoveryRequests = 3
)

func NewService(repo repository.Repository, userSvc UserClient, bookSvc BookClient, enqueuer Enqueuer, log *zap.Logger) *Service {
	return &Service{
		log:      log,
		repo:     repo,
		userSvc:  userSvc,
		bookSvc:  bookSvc,
		enqueuer: enqueuer,
		userCB:   circuit_breaker.New(cbRecordLength, cbTimeout, cbPercentile, cbRecoveryRequests),
		bookCB:   circuit_breaker.New(cbRecordLength, cbTimeout, cbPercentile, cbRecoveryRequests),
	}
}

// call routes a collaborator call through its breaker; an open breaker
// reads as the collaborator being unavailable.
func (s *Service) call(cb circuit_breaker.CircuitBreaker, fn func() error) error {
	err := cb.Call(fn)
	if errors.Is(err, circuit_breaker.ErrOpenCB) {
		return errors.Wrap(errs.ErrUnavailable, "circuit breaker is open")
	}
	return err
}

// CreateLoan runs the create protocol: user check, stock read, reserve,
// persist — in that order. A failure before the reserve leaves no side
// effect anywhere; a reserve refused by the books service (someone else
// took the last copy) is treated the same as seeing no availability.
func (s *Service) CreateLoan(ctx context.Context, req model.CreateLoanRequest) (model.Loan, error) {
	if err := s.call(s.userCB, func() error {
		return s.userSvc.ValidateActive(ctx, req.UserID)
	}); err != nil {
		return model.Loan{}, err
	}

	var stock model.BookStock
	if err := s.call(s.bookCB, func() error {
		var err error
		stock, err = s.bookSvc.GetStock(ctx, req.BookID)
		return err
	}); err != nil {
		return model.Loan{}, err
	}
	if !stock.Available || stock.AvailableCopies <= 0 {
		return model.Loan{}, errors.Wrapf(errs.ErrRejected, "book %d has no available copies", req.BookID)
	}

	if err := s.call(s.bookCB, func() error {
		return s.bookSvc.DecreaseStock(ctx, req.BookID)
	}); err != nil {
		return model.Loan{}, err
	}

	loan, err := s.repo.Create(ctx, req.UserID, req.BookID, time.Now().UTC())
	if err != nil {
		// the copy is already reserved; give it back so the count stays honest
		s.compensateReserve(ctx, req.BookID)
		return model.Loan{}, err
	}

	s.log.Info("loan created",
		zap.String("loanUid", loan.LoanUid),
		zap.Int64("userId", req.UserID),
		zap.Int64("bookId", req.BookID))
	return loan, nil
}

// compensateReserve releases a reserved copy after the loan record failed
// to persist. If the books service is down the release is parked on the
// stock topic and replayed by the consumer.
func (s *Service) compensateReserve(ctx context.Context, bookID int64) {
	err := s.bookSvc.IncreaseStock(ctx, bookID)
	if err == nil {
		return
	}
	if errors.Is(err, errs.ErrUnavailable) {
		if qErr := s.enqueuer.Enqueue(kafka.StockTopic, model.StockReleaseMsg{BookID: bookID}); qErr != nil {
			s.log.Error("enqueue stock release", zap.Int64("bookId", bookID), zap.Error(qErr))
		}
		return
	}
	s.log.Error("compensating stock release", zap.Int64("bookId", bookID), zap.Error(err))
}

// ReturnLoan closes an active loan exactly once. The release goes out
// before the store update, so the loan stays active (and retryable) if the
// books service refuses; the inverse window, release done but update
// failed, is accepted and logged.
func (s *Service) ReturnLoan(ctx context.Context, loanUID string) (model.Loan, error) {
	loan, err := s.repo.GetByUID(ctx, loanUID)
	if err != nil {
		return model.Loan{}, err
	}
	if loan.Returned() {
		return model.Loan{}, errors.Wrapf(errs.ErrAlreadyReturned, "loan %s", loanUID)
	}

	returnDate := time.Now().UTC()

	if err := s.call(s.bookCB, func() error {
		return s.bookSvc.IncreaseStock(ctx, loan.BookID)
	}); err != nil {
		return model.Loan{}, err
	}

	updated, err := s.repo.SetReturned(ctx, loanUID, returnDate)
	if err != nil {
		s.log.Error("loan close not persisted after stock release",
			zap.String("loanUid", loanUID),
			zap.Int64("bookId", loan.BookID),
			zap.Error(err))
		return model.Loan{}, err
	}

	s.log.Info("loan returned",
		zap.String("loanUid", loanUID),
		zap.Int64("bookId", loan.BookID))
	return updated, nil
}

func (s *Service) GetLoan(ctx context.Context, loanUID string) (model.Loan, error) {
	return s.repo.GetByUID(ctx, loanUID)
}

func (s *Service) ListLoans(ctx context.Context, filter model.LoanFilter) ([]model.Loan, error) {
	return s.repo.List(ctx, filter)
}
