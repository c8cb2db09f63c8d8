package handler_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/biblioteca/loan-service/loan/internal/errs"
	"github.com/biblioteca/loan-service/loan/internal/handler"
	"github.com/biblioteca/loan-service/loan/internal/model"
	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	service_mocks "github.com/biblioteca/loan-service/loan/internal/handler/mocks"
)

const testLoanUid = "83575e12-7ce0-48ee-9931-51919ff3c9ee"

func mustDate(t *testing.T, s string) model.Date {
	t.Helper()
	d, err := time.Parse(time.DateOnly, s)
	require.NoError(t, err)
	return model.Date{Time: d}
}

func testLoan(t *testing.T, returned string) model.Loan {
	t.Helper()
	loan := model.Loan{
		ID:       1,
		LoanUid:  testLoanUid,
		UserID:   1,
		BookID:   2,
		LoanDate: mustDate(t, "2024-03-01"),
	}
	if returned != "" {
		d := mustDate(t, returned)
		loan.ReturnDate = &d
	}
	return loan
}

func TestHandler_CreateLoan(t *testing.T) {
	t.Parallel()
	type mockBehavior func(r *service_mocks.MockLoanService)
	type response struct {
		expectedCode int
		expectedBody string
		bodyContains string
	}

	var tests = []struct {
		name         string
		body         string
		mockBehavior mockBehavior
		response     response
	}{
		{
			name: "ok",
			body: `{"userId":1,"bookId":2}`,
			mockBehavior: func(r *service_mocks.MockLoanService) {
				r.EXPECT().
					CreateLoan(gomock.Any(), model.CreateLoanRequest{UserID: 1, BookID: 2}).
					Return(testLoan(t, ""), nil)
			},
			response: response{
				expectedCode: http.StatusCreated,
				expectedBody: `{"loanUid":"83575e12-7ce0-48ee-9931-51919ff3c9ee","userId":1,"bookId":2,"loanDate":"2024-03-01","returnDate":null}`,
			},
		},
		{
			name:         "err. missing bookId",
			body:         `{"userId":1}`,
			mockBehavior: func(r *service_mocks.MockLoanService) {},
			response: response{
				expectedCode: http.StatusBadRequest,
				bodyContains: "BookID",
			},
		},
		{
			name:         "err. missing userId",
			body:         `{"bookId":2}`,
			mockBehavior: func(r *service_mocks.MockLoanService) {},
			response: response{
				expectedCode: http.StatusBadRequest,
				bodyContains: "UserID",
			},
		},
		{
			name: "err. user inactive",
			body: `{"userId":1,"bookId":2}`,
			mockBehavior: func(r *service_mocks.MockLoanService) {
				r.EXPECT().
					CreateLoan(gomock.Any(), model.CreateLoanRequest{UserID: 1, BookID: 2}).
					Return(model.Loan{}, errors.Wrapf(errs.ErrRejected, "user %d is not active", 1))
			},
			response: response{
				expectedCode: http.StatusServiceUnavailable,
				expectedBody: `{"message":"user 1 is not active: rejected"}`,
			},
		},
		{
			name: "err. books service down",
			body: `{"userId":1,"bookId":2}`,
			mockBehavior: func(r *service_mocks.MockLoanService) {
				r.EXPECT().
					CreateLoan(gomock.Any(), model.CreateLoanRequest{UserID: 1, BookID: 2}).
					Return(model.Loan{}, errors.Wrap(errs.ErrUnavailable, "books service: status 500"))
			},
			response: response{
				expectedCode: http.StatusServiceUnavailable,
				expectedBody: `{"message":"books service: status 500: service unavailable"}`,
			},
		},
		{
			name: "err. internal",
			body: `{"userId":1,"bookId":2}`,
			mockBehavior: func(r *service_mocks.MockLoanService) {
				r.EXPECT().
					CreateLoan(gomock.Any(), model.CreateLoanRequest{UserID: 1, BookID: 2}).
					Return(model.Loan{}, errors.New("db internal"))
			},
			response: response{
				expectedCode: http.StatusInternalServerError,
				expectedBody: `{"message":"db internal"}`,
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := gomock.NewController(t)
			defer c.Finish()
			svc := service_mocks.NewMockLoanService(c)
			tt.mockBehavior(svc)

			h := handler.New(svc, zap.NewExample().Named("test"))
			e := h.NewRouter()

			r := httptest.NewRequest(http.MethodPost, "/api/v1/loans", bytes.NewBufferString(tt.body))
			r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			w := httptest.NewRecorder()

			e.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			if tt.response.expectedBody != "" {
				require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
			}
			if tt.response.bodyContains != "" {
				require.Contains(t, w.Body.String(), tt.response.bodyContains)
			}
		})
	}
}

func TestHandler_ReturnLoan(t *testing.T) {
	t.Parallel()
	type mockBehavior func(r *service_mocks.MockLoanService)
	type response struct {
		expectedCode int
		expectedBody string
	}

	var tests = []struct {
		name         string
		mockBehavior mockBehavior
		response     response
	}{
		{
			name: "ok",
			mockBehavior: func(r *service_mocks.MockLoanService) {
				r.EXPECT().
					ReturnLoan(gomock.Any(), testLoanUid).
					Return(testLoan(t, "2024-03-05"), nil)
			},
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: `{"loanUid":"83575e12-7ce0-48ee-9931-51919ff3c9ee","userId":1,"bookId":2,"loanDate":"2024-03-01","returnDate":"2024-03-05"}`,
			},
		},
		{
			name: "err. already returned",
			mockBehavior: func(r *service_mocks.MockLoanService) {
				r.EXPECT().
					ReturnLoan(gomock.Any(), testLoanUid).
					Return(model.Loan{}, errors.Wrapf(errs.ErrAlreadyReturned, "loan %s", testLoanUid))
			},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"loan 83575e12-7ce0-48ee-9931-51919ff3c9ee: loan already returned"}`,
			},
		},
		{
			name: "err. not found",
			mockBehavior: func(r *service_mocks.MockLoanService) {
				r.EXPECT().
					ReturnLoan(gomock.Any(), testLoanUid).
					Return(model.Loan{}, errors.Wrapf(errs.ErrLoanNotFound, "loan %s", testLoanUid))
			},
			response: response{
				expectedCode: http.StatusNotFound,
				expectedBody: `{"message":"loan 83575e12-7ce0-48ee-9931-51919ff3c9ee: loan not found"}`,
			},
		},
		{
			name: "err. books service down",
			mockBehavior: func(r *service_mocks.MockLoanService) {
				r.EXPECT().
					ReturnLoan(gomock.Any(), testLoanUid).
					Return(model.Loan{}, errors.Wrap(errs.ErrUnavailable, "books service"))
			},
			response: response{
				expectedCode: http.StatusServiceUnavailable,
				expectedBody: `{"message":"books service: service unavailable"}`,
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := gomock.NewController(t)
			defer c.Finish()
			svc := service_mocks.NewMockLoanService(c)
			tt.mockBehavior(svc)

			h := handler.New(svc, zap.NewExample().Named("test"))
			e := h.NewRouter()

			r := httptest.NewRequest(http.MethodPost, "/api/v1/loans/"+testLoanUid+"/return", http.NoBody)
			r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			w := httptest.NewRecorder()

			e.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
		})
	}
}

func TestHandler_GetLoan(t *testing.T) {
	t.Parallel()
	c := gomock.NewController(t)
	defer c.Finish()
	svc := service_mocks.NewMockLoanService(c)

	svc.EXPECT().GetLoan(gomock.Any(), testLoanUid).Return(testLoan(t, ""), nil)
	svc.EXPECT().GetLoan(gomock.Any(), "missing").
		Return(model.Loan{}, errors.Wrapf(errs.ErrLoanNotFound, "loan %s", "missing"))

	h := handler.New(svc, zap.NewExample().Named("test"))
	e := h.NewRouter()

	w := httptest.NewRecorder()
	e.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/loans/"+testLoanUid, http.NoBody))
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t,
		`{"loanUid":"83575e12-7ce0-48ee-9931-51919ff3c9ee","userId":1,"bookId":2,"loanDate":"2024-03-01","returnDate":null}`,
		strings.Trim(w.Body.String(), "\n"))

	w = httptest.NewRecorder()
	e.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/loans/missing", http.NoBody))
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandler_ListLoans(t *testing.T) {
	t.Parallel()
	userID := int64(1)
	bookID := int64(2)

	var tests = []struct {
		name         string
		target       string
		expectedCode int
		wantFilter   *model.LoanFilter
	}{
		{name: "all", target: "/api/v1/loans", expectedCode: http.StatusOK, wantFilter: &model.LoanFilter{}},
		{name: "active route", target: "/api/v1/loans/active", expectedCode: http.StatusOK, wantFilter: &model.LoanFilter{OnlyActive: true}},
		{name: "active query", target: "/api/v1/loans?active=true", expectedCode: http.StatusOK, wantFilter: &model.LoanFilter{OnlyActive: true}},
		{name: "by user", target: "/api/v1/loans/user/1", expectedCode: http.StatusOK, wantFilter: &model.LoanFilter{UserID: &userID}},
		{name: "by book", target: "/api/v1/loans/book/2", expectedCode: http.StatusOK, wantFilter: &model.LoanFilter{BookID: &bookID}},
		{name: "err. bad userId", target: "/api/v1/loans/user/abc", expectedCode: http.StatusBadRequest},
		{name: "err. bad active", target: "/api/v1/loans?active=nope", expectedCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := gomock.NewController(t)
			defer c.Finish()
			svc := service_mocks.NewMockLoanService(c)
			if tt.wantFilter != nil {
				svc.EXPECT().
					ListLoans(gomock.Any(), filterMatcher{*tt.wantFilter}).
					Return([]model.Loan{testLoan(t, "")}, nil)
			}

			h := handler.New(svc, zap.NewExample().Named("test"))
			e := h.NewRouter()

			w := httptest.NewRecorder()
			e.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.target, http.NoBody))
			require.Equal(t, tt.expectedCode, w.Code)
		})
	}
}

// filterMatcher compares LoanFilter by value, following pointers.
type filterMatcher struct {
	want model.LoanFilter
}

func (m filterMatcher) Matches(x interface{}) bool {
	got, ok := x.(model.LoanFilter)
	if !ok {
		return false
	}
	if got.OnlyActive != m.want.OnlyActive {
		return false
	}
	if (got.UserID == nil) != (m.want.UserID == nil) {
		return false
	}
	if got.UserID != nil && *got.UserID != *m.want.UserID {
		return false
	}
	if (got.BookID == nil) != (m.want.BookID == nil) {
		return false
	}
	if got.BookID != nil && *got.BookID != *m.want.BookID {
		return false
	}
	return true
}

func (m filterMatcher) String() string {
	return "matches loan filter"
}
