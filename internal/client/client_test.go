package client

import (
	"context"
	"encoding/json"
	"net/url"
	"testing"

	"github.com/openshelf/openshelf/internal/gateway"
	"github.com/openshelf/openshelf/types"
)

type stubTransport struct {
	lastEndpoint string
	lastOpts     gateway.RequestOptions
	raw          json.RawMessage
	err          error
}

func (t *stubTransport) RoundTrip(_ context.Context, endpoint string, opts gateway.RequestOptions) (json.RawMessage, error) {
	t.lastEndpoint = endpoint
	t.lastOpts = opts
	return t.raw, t.err
}

func TestBooksListAcceptsBothShapes(t *testing.T) {
	payloads := []string{
		`[{"id":1,"title":"Dune"}]`,
		`{"data":[{"id":1,"title":"Dune"}]}`,
	}
	for _, payload := range payloads {
		transport := &stubTransport{raw: json.RawMessage(payload)}
		books := NewBooks(gateway.NewWithTransport(transport, nil, nil))

		got, err := books.List(context.Background(), nil)
		if err != nil {
			t.Fatalf("list with payload %s: %v", payload, err)
		}
		if len(got) != 1 || got[0].Title != "Dune" {
			t.Fatalf("unexpected books for payload %s: %+v", payload, got)
		}
	}
}

func TestBooksListEncodesFilters(t *testing.T) {
	transport := &stubTransport{raw: json.RawMessage(`[]`)}
	books := NewBooks(gateway.NewWithTransport(transport, nil, nil))

	params := url.Values{}
	params.Set("search", "dune")
	params.Set("category", "Science Fiction")
	if _, err := books.List(context.Background(), params); err != nil {
		t.Fatalf("list: %v", err)
	}
	if transport.lastEndpoint != "/api/books?category=Science+Fiction&search=dune" {
		t.Fatalf("unexpected endpoint: %q", transport.lastEndpoint)
	}
}

func TestLoansReturnPosts(t *testing.T) {
	transport := &stubTransport{raw: json.RawMessage(`{"id":7,"bookTitle":"Dune","status":"Returned"}`)}
	loans := NewLoans(gateway.NewWithTransport(transport, nil, nil))

	loan, err := loans.Return(context.Background(), 7)
	if err != nil {
		t.Fatalf("return: %v", err)
	}
	if transport.lastEndpoint != "/api/loans/7/return" {
		t.Fatalf("unexpected endpoint: %q", transport.lastEndpoint)
	}
	if transport.lastOpts.Method != "POST" {
		t.Fatalf("expected POST, got %q", transport.lastOpts.Method)
	}
	if loan.Status != types.LoanStatusReturned {
		t.Fatalf("unexpected loan: %+v", loan)
	}
}

func TestLoansForCurrentUser(t *testing.T) {
	transport := &stubTransport{raw: json.RawMessage(`{"data":[{"id":3,"bookTitle":"Dune"}]}`)}
	loans := NewLoans(gateway.NewWithTransport(transport, nil, nil))

	got, err := loans.ForCurrentUser(context.Background())
	if err != nil {
		t.Fatalf("for current user: %v", err)
	}
	if transport.lastEndpoint != "/api/user/loans" {
		t.Fatalf("unexpected endpoint: %q", transport.lastEndpoint)
	}
	if len(got) != 1 || got[0].ID != 3 {
		t.Fatalf("unexpected loans: %+v", got)
	}
}
