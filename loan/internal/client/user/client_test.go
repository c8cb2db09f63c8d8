package user_test

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/biblioteca/loan-service/loan/config"
	"github.com/biblioteca/loan-service/loan/internal/client/user"
	"github.com/biblioteca/loan-service/loan/internal/errs"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *user.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	host, port, err := net.SplitHostPort(strings.TrimPrefix(srv.URL, "http://"))
	require.NoError(t, err)
	return user.NewClient(zap.NewExample().Named("test"), config.UsersHTTPServer{Host: host, Port: port})
}

func TestClient_ValidateActive(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	var tests = []struct {
		name    string
		status  int
		wantErr error
	}{
		{name: "active", status: http.StatusOK, wantErr: nil},
		{name: "not found", status: http.StatusNotFound, wantErr: errs.ErrNotFound},
		{name: "inactive", status: http.StatusBadRequest, wantErr: errs.ErrRejected},
		{name: "down", status: http.StatusInternalServerError, wantErr: errs.ErrUnavailable},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, http.MethodGet, r.Method)
				require.Equal(t, "/api/v1/users/1/validate-active", r.URL.Path)
				w.WriteHeader(tt.status)
			})
			err := c.ValidateActive(ctx, 1)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}
