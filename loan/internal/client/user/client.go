package user

import (
	"fmt"
	"net"
	"net/http"
	"time"

	"context"

	"github.com/biblioteca/loan-service/loan/config"
	"github.com/biblioteca/loan-service/loan/internal/errs"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Client talks to the users service, which owns patron activity state.
type Client struct {
	log    *zap.Logger
	client *http.Client
	cfg    config.UsersHTTPServer
}

func NewClient(log *zap.Logger, cfg config.UsersHTTPServer) *Client {
	return &Client{
		log:    log.Named("users-client"),
		client: &http.Client{Timeout: time.Minute},
		cfg:    cfg,
	}
}

// ValidateActive asks the users service whether the user exists and is
// active. The outcome is classified: errs.ErrNotFound for a missing user,
// errs.ErrRejected for an inactive one, errs.ErrUnavailable otherwise.
func (c *Client) ValidateActive(ctx context.Context, userID int64) error {
	url := fmt.Sprintf("http://%s/api/v1/users/%d/validate-active", net.JoinHostPort(c.cfg.Host, c.cfg.Port), userID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return errors.Wrap(errs.ErrUnavailable, err.Error())
	}
	req.Header.Set("Content-Type", echo.MIMEApplicationJSONCharsetUTF8)
	resp, err := c.client.Do(req)
	if err != nil {
		return errors.Wrapf(errs.ErrUnavailable, "users service: %v", err)
	}
	defer resp.Body.Close()

	switch cause := errs.FromStatus(resp.StatusCode); {
	case cause == nil:
		return nil
	case errors.Is(cause, errs.ErrNotFound):
		return errors.Wrapf(cause, "user %d not found", userID)
	case errors.Is(cause, errs.ErrRejected):
		return errors.Wrapf(cause, "user %d is not active", userID)
	default:
		return errors.Wrapf(cause, "users service: status %d", resp.StatusCode)
	}
}
