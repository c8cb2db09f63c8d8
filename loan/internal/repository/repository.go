package repository

import (
	"context"
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/biblioteca/loan-service/loan/internal/errs"
	"github.com/biblioteca/loan-service/loan/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

//go:generate go run github.com/golang/mock/mockgen -source=repository.go -destination=mocks/mock.go

type Repository interface {
	Create(ctx context.Context, userID, bookID int64, loanDate time.Time) (model.Loan, error)
	GetByUID(ctx context.Context, loanUID string) (model.Loan, error)
	List(ctx context.Context, filter model.LoanFilter) ([]model.Loan, error)
	SetReturned(ctx context.Context, loanUID string, returnDate time.Time) (model.Loan, error)
}

type repository struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewRepository(db *sqlx.DB, log *zap.Logger) (*repository, error) {
	return &repository{
		db:  db,
		log: log.Named("repo"),
	}, nil
}

const (
	loansTableName = `loans`
)

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type loanRow struct {
	ID         int          `db:"id"`
	LoanUid    string       `db:"loan_uid"`
	UserID     int64        `db:"user_id"`
	BookID     int64        `db:"book_id"`
	LoanDate   time.Time    `db:"loan_date"`
	ReturnDate sql.NullTime `db:"return_date"`
}

func (r loanRow) toModel() model.Loan {
	loan := model.Loan{
		ID:       r.ID,
		LoanUid:  r.LoanUid,
		UserID:   r.UserID,
		BookID:   r.BookID,
		LoanDate: model.Date{Time: r.LoanDate},
	}
	if r.ReturnDate.Valid {
		loan.ReturnDate = &model.Date{Time: r.ReturnDate.Time}
	}
	return loan
}

func (r *repository) Create(ctx context.Context, userID, bookID int64, loanDate time.Time) (model.Loan, error) {
	q, args, err := qb.Insert(loansTableName).
		Columns("loan_uid", "user_id", "book_id", "loan_date").
		Values(uuid.New(), userID, bookID, loanDate.Format(time.DateOnly)).
		Suffix("returning *").
		ToSql()
	if err != nil {
		return model.Loan{}, err
	}
	var row loanRow
	if err := r.db.GetContext(ctx, &row, q, args...); err != nil {
		r.log.Error("Create", zap.String("q", q), zap.Any("args", args))
		return model.Loan{}, dbError(err)
	}
	return row.toModel(), nil
}

func (r *repository) GetByUID(ctx context.Context, loanUID string) (model.Loan, error) {
	q, args, err := qb.Select("id", "loan_uid", "user_id", "book_id", "loan_date", "return_date").
		From(loansTableName).
		Where(sq.Eq{"loan_uid": loanUID}).
		Limit(1).
		ToSql()
	if err != nil {
		return model.Loan{}, err
	}
	var row loanRow
	if err := r.db.GetContext(ctx, &row, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Loan{}, errors.Wrapf(errs.ErrLoanNotFound, "loan %s", loanUID)
		}
		return model.Loan{}, err
	}
	return row.toModel(), nil
}

func (r *repository) List(ctx context.Context, filter model.LoanFilter) ([]model.Loan, error) {
	q := qb.Select("id", "loan_uid", "user_id", "book_id", "loan_date", "return_date").
		From(loansTableName).
		OrderBy("id")
	if filter.OnlyActive {
		q = q.Where(sq.Eq{"return_date": nil})
	}
	if filter.UserID != nil {
		q = q.Where(sq.Eq{"user_id": *filter.UserID})
	}
	if filter.BookID != nil {
		q = q.Where(sq.Eq{"book_id": *filter.BookID})
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}
	var rows []loanRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}
	loans := make([]model.Loan, 0, len(rows))
	for _, row := range rows {
		loans = append(loans, row.toModel())
	}
	return loans, nil
}

// SetReturned closes the loan. The `return_date is null` guard makes the
// close monotonic even if two return requests race past the service check.
func (r *repository) SetReturned(ctx context.Context, loanUID string, returnDate time.Time) (model.Loan, error) {
	q := `update loans
	set return_date = $2
	where loan_uid = $1 and return_date is null
	returning *`

	var row loanRow
	if err := r.db.GetContext(ctx, &row, q, loanUID, returnDate.Format(time.DateOnly)); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Loan{}, errors.Wrapf(errs.ErrAlreadyReturned, "loan %s", loanUID)
		}
		return model.Loan{}, dbError(err)
	}
	return row.toModel(), nil
}

func dbError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgerrcode.IsIntegrityConstraintViolation(pgErr.Code) {
		return errors.Wrap(errs.ErrRejected, pgErr.Message)
	}
	return err
}
