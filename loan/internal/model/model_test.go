package model_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/biblioteca/loan-service/loan/internal/model"
	"github.com/stretchr/testify/require"
)

func TestLoanJSON_ReturnDateNullable(t *testing.T) {
	loanDate, err := time.Parse(time.DateOnly, "2024-03-01")
	require.NoError(t, err)

	loan := model.Loan{
		ID:       1,
		LoanUid:  "83575e12-7ce0-48ee-9931-51919ff3c9ee",
		UserID:   1,
		BookID:   2,
		LoanDate: model.Date{Time: loanDate},
	}

	b, err := json.Marshal(loan)
	require.NoError(t, err)
	require.JSONEq(t, `{"loanUid":"83575e12-7ce0-48ee-9931-51919ff3c9ee","userId":1,"bookId":2,"loanDate":"2024-03-01","returnDate":null}`, string(b))

	returnDate := model.Date{Time: loanDate.AddDate(0, 0, 4)}
	loan.ReturnDate = &returnDate
	b, err = json.Marshal(loan)
	require.NoError(t, err)
	require.JSONEq(t, `{"loanUid":"83575e12-7ce0-48ee-9931-51919ff3c9ee","userId":1,"bookId":2,"loanDate":"2024-03-01","returnDate":"2024-03-05"}`, string(b))
}

func TestDate_UnmarshalJSON(t *testing.T) {
	var d model.Date
	require.NoError(t, json.Unmarshal([]byte(`"2024-03-01"`), &d))
	require.Equal(t, "2024-03-01", d.Format(time.DateOnly))

	require.Error(t, json.Unmarshal([]byte(`"01.03.2024"`), &d))
}
