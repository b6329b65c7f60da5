package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/openshelf/openshelf/types"
)

func TestMockTransportCatalog(t *testing.T) {
	transport := NewMockTransport(time.Millisecond)
	ctx := context.Background()

	raw, err := transport.RoundTrip(ctx, "/api/books", RequestOptions{})
	if err != nil {
		t.Fatalf("books round trip: %v", err)
	}
	var books struct {
		Data []types.Book `json:"data"`
	}
	if err := json.Unmarshal(raw, &books); err != nil {
		t.Fatalf("decode books: %v", err)
	}
	if len(books.Data) != 5 {
		t.Fatalf("expected 5 books, got %d", len(books.Data))
	}
	if books.Data[0].Title != "To Kill a Mockingbird" {
		t.Fatalf("unexpected first book: %q", books.Data[0].Title)
	}
	if books.Data[0].ISBN != "9780061120084" {
		t.Fatalf("unexpected first ISBN: %q", books.Data[0].ISBN)
	}

	raw, err = transport.RoundTrip(ctx, "/api/user/stats", RequestOptions{})
	if err != nil {
		t.Fatalf("stats round trip: %v", err)
	}
	var stats types.UserStats
	if err := json.Unmarshal(raw, &stats); err != nil {
		t.Fatalf("decode stats: %v", err)
	}
	if stats.TotalBooks != MockUserStats.TotalBooks {
		t.Fatalf("unexpected total books: %d", stats.TotalBooks)
	}
}

func TestMockTransportStripsQuery(t *testing.T) {
	transport := NewMockTransport(time.Millisecond)

	raw, err := transport.RoundTrip(context.Background(), "/api/books?search=kill", RequestOptions{})
	if err != nil {
		t.Fatalf("round trip: %v", err)
	}
	var books struct {
		Data []types.Book `json:"data"`
	}
	if err := json.Unmarshal(raw, &books); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(books.Data) == 0 {
		t.Fatalf("query string should not change dispatch")
	}
}

func TestMockTransportUnknownEndpoint(t *testing.T) {
	transport := NewMockTransport(time.Millisecond)

	raw, err := transport.RoundTrip(context.Background(), "/api/anything", RequestOptions{Method: "POST"})
	if err != nil {
		t.Fatalf("round trip: %v", err)
	}
	var ack struct {
		Success bool `json:"success"`
	}
	if err := json.Unmarshal(raw, &ack); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !ack.Success {
		t.Fatalf("expected generic success acknowledgment")
	}
}

func TestMockTransportHonorsCancellation(t *testing.T) {
	transport := NewMockTransport(time.Minute)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := transport.RoundTrip(ctx, "/api/books", RequestOptions{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
