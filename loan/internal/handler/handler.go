package handler

import (
	"net/http"
	"strconv"

	"github.com/biblioteca/loan-service/loan/internal/errs"
	"github.com/biblioteca/loan-service/loan/internal/model"
	"github.com/biblioteca/loan-service/pkg/validate"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type Handler struct {
	loanSvc LoanService
	log     *zap.Logger
}

func New(loanSvc LoanService, log *zap.Logger) *Handler {
	return &Handler{
		loanSvc: loanSvc,
		log:     log,
	}
}

func (h *Handler) NewRouter() *echo.Echo {
	e := echo.New()
	const (
		baseRPS = 10
		apiRPS  = 100
	)
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 4 << 10, // 4 KB
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodOptions, http.MethodHead, http.MethodPut, http.MethodPatch, http.MethodPost, http.MethodDelete},
		AllowCredentials: true,
	}))

	base := e.Group("", newRateLimiterMW(baseRPS))
	base.GET("/manage/health", h.Health)

	e.Validator = validate.NewCustomValidator()

	api := e.Group("/api/v1",
		middleware.RequestLoggerWithConfig(requestLoggerConfig()),
		middleware.RequestID(),
		newRateLimiterMW(apiRPS),
	)

	api.POST("/loans", h.CreateLoan)
	api.GET("/loans", h.GetLoans)
	api.GET("/loans/active", h.GetActiveLoans)
	api.GET("/loans/user/:userId", h.GetLoansByUser)
	api.GET("/loans/book/:bookId", h.GetLoansByBook)
	api.GET("/loans/:loanUid", h.GetLoan)
	api.POST("/loans/:loanUid/return", h.ReturnLoan)

	return e
}

func (h *Handler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

func (h *Handler) CreateLoan(c echo.Context) error {
	var req model.CreateLoanRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	loan, err := h.loanSvc.CreateLoan(c.Request().Context(), req)
	if err != nil {
		if errs.IsUpstream(err) {
			return echo.NewHTTPError(http.StatusServiceUnavailable, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, loan)
}

func (h *Handler) ReturnLoan(c echo.Context) error {
	loanUID := c.Param("loanUid")
	if loanUID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "loanUid is empty")
	}

	loan, err := h.loanSvc.ReturnLoan(c.Request().Context(), loanUID)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrLoanNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, errs.ErrAlreadyReturned):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errs.IsUpstream(err):
			return echo.NewHTTPError(http.StatusServiceUnavailable, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}
	return c.JSON(http.StatusOK, loan)
}

func (h *Handler) GetLoan(c echo.Context) error {
	loanUID := c.Param("loanUid")
	if loanUID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "loanUid is empty")
	}

	loan, err := h.loanSvc.GetLoan(c.Request().Context(), loanUID)
	if err != nil {
		if errors.Is(err, errs.ErrLoanNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, loan)
}

func (h *Handler) GetLoans(c echo.Context) error {
	var filter model.LoanFilter
	if v := c.QueryParam("active"); v != "" {
		active, err := strconv.ParseBool(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid active")
		}
		filter.OnlyActive = active
	}
	if v := c.QueryParam("userId"); v != "" {
		userID, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid userId")
		}
		filter.UserID = &userID
	}
	if v := c.QueryParam("bookId"); v != "" {
		bookID, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid bookId")
		}
		filter.BookID = &bookID
	}
	return h.listLoans(c, filter)
}

func (h *Handler) GetActiveLoans(c echo.Context) error {
	return h.listLoans(c, model.LoanFilter{OnlyActive: true})
}

func (h *Handler) GetLoansByUser(c echo.Context) error {
	userID, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid userId")
	}
	return h.listLoans(c, model.LoanFilter{UserID: &userID})
}

func (h *Handler) GetLoansByBook(c echo.Context) error {
	bookID, err := strconv.ParseInt(c.Param("bookId"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid bookId")
	}
	return h.listLoans(c, model.LoanFilter{BookID: &bookID})
}

func (h *Handler) listLoans(c echo.Context, filter model.LoanFilter) error {
	loans, err := h.loanSvc.ListLoans(c.Request().Context(), filter)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, loans)
}
