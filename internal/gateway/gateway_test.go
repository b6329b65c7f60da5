package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/openshelf/openshelf/config"
	"github.com/openshelf/openshelf/types"
)

type recordingNavigator struct {
	pushes []string
}

func (n *recordingNavigator) Push(path string) {
	n.pushes = append(n.pushes, path)
}

type stubTransport struct {
	raw json.RawMessage
	err error
}

func (t *stubTransport) RoundTrip(context.Context, string, RequestOptions) (json.RawMessage, error) {
	return t.raw, t.err
}

func TestRequestUnauthenticatedRedirects(t *testing.T) {
	nav := &recordingNavigator{}
	gw := NewWithTransport(&stubTransport{err: ErrUnauthenticated}, nav, nil)

	_, err := gw.Get(context.Background(), "/api/loans")
	if !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
	if len(nav.pushes) != 1 || nav.pushes[0] != "/login" {
		t.Fatalf("expected a single /login redirect, got %v", nav.pushes)
	}
}

func TestExchangeSkipsRedirect(t *testing.T) {
	nav := &recordingNavigator{}
	gw := NewWithTransport(&stubTransport{err: ErrUnauthenticated}, nav, nil)

	_, err := gw.Exchange(context.Background(), "/api/user", RequestOptions{})
	if !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
	if len(nav.pushes) != 0 {
		t.Fatalf("exchange must not navigate, got %v", nav.pushes)
	}
}

func TestRequestAPIErrorPropagates(t *testing.T) {
	wantErr := &APIError{StatusCode: 422, Message: "validation failed"}
	gw := NewWithTransport(&stubTransport{err: wantErr}, nil, nil)

	_, err := gw.Post(context.Background(), "/api/books", nil)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.StatusCode != 422 || apiErr.Message != "validation failed" {
		t.Fatalf("unexpected error: %+v", apiErr)
	}
}

func TestDevelopmentFallsBackToMockData(t *testing.T) {
	// A server that is immediately closed produces a network-level
	// failure, not an HTTP rejection.
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	cfg := config.Config{Env: "dev", APIURL: srv.URL}
	gw := New(cfg, nil, nil)
	gw.fallback = NewMockTransport(time.Millisecond)

	raw, err := gw.Get(context.Background(), "/api/books")
	if err != nil {
		t.Fatalf("expected mock fallback, got %v", err)
	}
	var books struct {
		Data []types.Book `json:"data"`
	}
	if err := json.Unmarshal(raw, &books); err != nil {
		t.Fatalf("decode fallback payload: %v", err)
	}
	if len(books.Data) != 5 {
		t.Fatalf("expected mock catalog, got %d books", len(books.Data))
	}
}

func TestProductionPropagatesNetworkErrors(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	cfg := config.Config{Env: "production", APIURL: srv.URL}
	gw := New(cfg, nil, nil)

	_, err := gw.Get(context.Background(), "/api/books")
	if err == nil {
		t.Fatalf("expected network error in production")
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		t.Fatalf("network failure must not surface as *APIError: %v", err)
	}
}

func TestMockModePinsTransport(t *testing.T) {
	cfg := config.Config{Env: "production", MockAPI: true}
	gw := New(cfg, nil, nil)

	if _, ok := gw.transport.(*MockTransport); !ok {
		t.Fatalf("expected mock transport, got %T", gw.transport)
	}
	if gw.fallback != nil {
		t.Fatalf("mock mode needs no fallback")
	}
}
