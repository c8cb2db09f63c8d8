package model

import (
	"strings"
	"time"
)

// Date serializes as a plain calendar date (no time-of-day part).
type Date struct {
	time.Time `json:",inline"`
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(time.DateOnly) + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) (err error) {
	s := strings.Trim(string(b), "\"")
	date, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return err
	}
	d.Time = date
	return
}

// Loan is the only entity this service owns. ReturnDate is nil while the
// loan is active and is set exactly once on return.
type Loan struct {
	ID         int    `json:"-"`
	LoanUid    string `json:"loanUid"`
	UserID     int64  `json:"userId"`
	BookID     int64  `json:"bookId"`
	LoanDate   Date   `json:"loanDate"`
	ReturnDate *Date  `json:"returnDate"`
}

func (l Loan) Returned() bool {
	return l.ReturnDate != nil
}

type CreateLoanRequest struct {
	UserID int64 `json:"userId" validate:"required"`
	BookID int64 `json:"bookId" validate:"required"`
}

// BookStock is the read-only stock view owned by the books service.
type BookStock struct {
	ID              int64  `json:"id"`
	Title           string `json:"title"`
	AvailableCopies int    `json:"availableCopies"`
	Available       bool   `json:"available"`
}

// LoanFilter selects loans on list queries. Nil fields do not constrain.
type LoanFilter struct {
	OnlyActive bool
	UserID     *int64
	BookID     *int64
}

// StockReleaseMsg is the payload of a deferred compensating stock release.
type StockReleaseMsg struct {
	BookID int64 `json:"bookId"`
}
