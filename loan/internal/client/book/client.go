package book

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/biblioteca/loan-service/loan/config"
	"github.com/biblioteca/loan-service/loan/internal/errs"
	"github.com/biblioteca/loan-service/loan/internal/model"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Client talks to the books service, which owns the authoritative stock
// count. Stock is only ever mutated through its reserve/release endpoints.
type Client struct {
	log    *zap.Logger
	client *http.Client
	cfg    config.BooksHTTPServer
}

func NewClient(log *zap.Logger, cfg config.BooksHTTPServer) *Client {
	return &Client{
		log:    log.Named("books-client"),
		client: &http.Client{Timeout: time.Minute},
		cfg:    cfg,
	}
}

func (c *Client) url(format string, args ...any) string {
	return fmt.Sprintf("http://%s", net.JoinHostPort(c.cfg.Host, c.cfg.Port)) + fmt.Sprintf(format, args...)
}

func (c *Client) GetStock(ctx context.Context, bookID int64) (model.BookStock, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url("/api/v1/books/%d/stock", bookID), http.NoBody)
	if err != nil {
		return model.BookStock{}, errors.Wrap(errs.ErrUnavailable, err.Error())
	}
	req.Header.Set("Content-Type", echo.MIMEApplicationJSONCharsetUTF8)
	resp, err := c.client.Do(req)
	if err != nil {
		return model.BookStock{}, errors.Wrapf(errs.ErrUnavailable, "books service: %v", err)
	}
	defer resp.Body.Close()

	if cause := errs.FromStatus(resp.StatusCode); cause != nil {
		if errors.Is(cause, errs.ErrNotFound) {
			return model.BookStock{}, errors.Wrapf(cause, "book %d not found", bookID)
		}
		return model.BookStock{}, errors.Wrapf(cause, "books service: status %d", resp.StatusCode)
	}

	var stock model.BookStock
	if err := json.NewDecoder(resp.Body).Decode(&stock); err != nil {
		return model.BookStock{}, errors.Wrapf(errs.ErrUnavailable, "books service: decode stock: %v", err)
	}
	return stock, nil
}

// DecreaseStock reserves one copy. The books service performs the decrement
// atomically and refuses to go below zero, so a lost race comes back as
// errs.ErrRejected.
func (c *Client) DecreaseStock(ctx context.Context, bookID int64) error {
	return c.patchStock(ctx, bookID, "decrease-stock")
}

// IncreaseStock releases one copy back.
func (c *Client) IncreaseStock(ctx context.Context, bookID int64) error {
	return c.patchStock(ctx, bookID, "increase-stock")
}

func (c *Client) patchStock(ctx context.Context, bookID int64, op string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, c.url("/api/v1/books/%d/%s", bookID, op), http.NoBody)
	if err != nil {
		return errors.Wrap(errs.ErrUnavailable, err.Error())
	}
	req.Header.Set("Content-Type", echo.MIMEApplicationJSONCharsetUTF8)
	resp, err := c.client.Do(req)
	if err != nil {
		return errors.Wrapf(errs.ErrUnavailable, "books service: %v", err)
	}
	defer resp.Body.Close()

	switch cause := errs.FromStatus(resp.StatusCode); {
	case cause == nil:
		return nil
	case errors.Is(cause, errs.ErrNotFound):
		return errors.Wrapf(cause, "book %d not found", bookID)
	case errors.Is(cause, errs.ErrRejected):
		return errors.Wrapf(cause, "book %d has no available copies", bookID)
	default:
		return errors.Wrapf(cause, "books service: %s: status %d", op, resp.StatusCode)
	}
}
