package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRemoteTransportStatuses(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/unauthorized":
			w.WriteHeader(http.StatusUnauthorized)
		case "/rejected":
			w.WriteHeader(http.StatusUnprocessableEntity)
			json.NewEncoder(w).Encode(map[string]string{"message": "email taken"})
		case "/rejected-error-key":
			w.WriteHeader(http.StatusConflict)
			json.NewEncoder(w).Encode(map[string]string{"error": "duplicate"})
		case "/empty":
			w.WriteHeader(http.StatusOK)
		case "/garbage":
			w.Write([]byte("<html>not json</html>"))
		default:
			json.NewEncoder(w).Encode(map[string]string{"hello": "world"})
		}
	}))
	defer srv.Close()

	transport := NewRemoteTransport(srv.URL)
	ctx := context.Background()

	_, err := transport.RoundTrip(ctx, "/unauthorized", RequestOptions{})
	if !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}

	_, err = transport.RoundTrip(ctx, "/rejected", RequestOptions{Method: "POST"})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.StatusCode != 422 || apiErr.Message != "email taken" {
		t.Fatalf("unexpected rejection: %+v", apiErr)
	}

	_, err = transport.RoundTrip(ctx, "/rejected-error-key", RequestOptions{Method: "POST"})
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.Message != "duplicate" {
		t.Fatalf("expected error-key message, got %q", apiErr.Message)
	}

	raw, err := transport.RoundTrip(ctx, "/empty", RequestOptions{})
	if err != nil {
		t.Fatalf("empty body round trip: %v", err)
	}
	var ack struct {
		Success bool `json:"success"`
	}
	if err := json.Unmarshal(raw, &ack); err != nil || !ack.Success {
		t.Fatalf("empty body should normalize to success, got %s (%v)", raw, err)
	}

	_, err = transport.RoundTrip(ctx, "/garbage", RequestOptions{})
	if err == nil {
		t.Fatalf("expected error for non-JSON body")
	}
	if errors.As(err, &apiErr) {
		t.Fatalf("malformed body is a transport failure, not an API rejection")
	}
}

func TestRemoteTransportEchoesXSRFToken(t *testing.T) {
	var gotToken string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/sanctum/csrf-cookie":
			http.SetCookie(w, &http.Cookie{Name: "XSRF-TOKEN", Value: "tok-123", Path: "/"})
			w.WriteHeader(http.StatusNoContent)
		default:
			gotToken = r.Header.Get("X-XSRF-TOKEN")
			w.WriteHeader(http.StatusOK)
		}
	}))
	defer srv.Close()

	transport := NewRemoteTransport(srv.URL)
	ctx := context.Background()

	if _, err := transport.RoundTrip(ctx, "/sanctum/csrf-cookie", RequestOptions{}); err != nil {
		t.Fatalf("prime csrf cookie: %v", err)
	}
	if _, err := transport.RoundTrip(ctx, "/api/login", RequestOptions{Method: "POST", Body: map[string]string{}}); err != nil {
		t.Fatalf("post after priming: %v", err)
	}
	if gotToken != "tok-123" {
		t.Fatalf("expected XSRF header echo, got %q", gotToken)
	}

	gotToken = "unset"
	if _, err := transport.RoundTrip(ctx, "/api/books", RequestOptions{}); err != nil {
		t.Fatalf("get: %v", err)
	}
	if gotToken != "" {
		t.Fatalf("GET requests must not carry the XSRF header, got %q", gotToken)
	}
}
