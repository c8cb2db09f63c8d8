package book_test

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/biblioteca/loan-service/loan/config"
	"github.com/biblioteca/loan-service/loan/internal/client/book"
	"github.com/biblioteca/loan-service/loan/internal/errs"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, h http.HandlerFunc) (*book.Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	host, port, err := net.SplitHostPort(strings.TrimPrefix(srv.URL, "http://"))
	require.NoError(t, err)
	return book.NewClient(zap.NewExample().Named("test"), config.BooksHTTPServer{Host: host, Port: port}), srv
}

func TestClient_GetStock(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("ok", func(t *testing.T) {
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodGet, r.Method)
			require.Equal(t, "/api/v1/books/2/stock", r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":2,"title":"El Quijote","availableCopies":5,"available":true}`))
		})
		stock, err := c.GetStock(ctx, 2)
		require.NoError(t, err)
		require.Equal(t, int64(2), stock.ID)
		require.Equal(t, 5, stock.AvailableCopies)
		require.True(t, stock.Available)
	})

	t.Run("not found", func(t *testing.T) {
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})
		_, err := c.GetStock(ctx, 2)
		require.ErrorIs(t, err, errs.ErrNotFound)
	})

	t.Run("internal", func(t *testing.T) {
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})
		_, err := c.GetStock(ctx, 2)
		require.ErrorIs(t, err, errs.ErrUnavailable)
	})

	t.Run("connection refused", func(t *testing.T) {
		c, srv := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})
		srv.Close()
		_, err := c.GetStock(ctx, 2)
		require.ErrorIs(t, err, errs.ErrUnavailable)
	})
}

func TestClient_DecreaseStock(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("ok", func(t *testing.T) {
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPatch, r.Method)
			require.Equal(t, "/api/v1/books/2/decrease-stock", r.URL.Path)
			w.WriteHeader(http.StatusOK)
		})
		require.NoError(t, c.DecreaseStock(ctx, 2))
	})

	t.Run("no copies left", func(t *testing.T) {
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusConflict)
		})
		err := c.DecreaseStock(ctx, 2)
		require.ErrorIs(t, err, errs.ErrRejected)
		require.Contains(t, err.Error(), "no available copies")
	})
}

func TestClient_IncreaseStock(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		require.Equal(t, "/api/v1/books/2/increase-stock", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	})
	require.NoError(t, c.IncreaseStock(ctx, 2))
}
