package gateway

import (
	"context"
	"encoding/json"
	"strings"
	"time"
)

// DefaultMockDelay is the simulated network latency. Nonzero so that
// loading states stay observable.
const DefaultMockDelay = 300 * time.Millisecond

// MockTransport answers from the static in-memory catalog after a
// simulated delay. It never fails except on context cancellation.
//
// Dispatch is an exact match on the endpoint path with the query
// string stripped. This is deliberately not a router: no path
// parameters, no prefixes. Unrecognized endpoints get a generic
// success acknowledgment.
type MockTransport struct {
	delay time.Duration
}

// NewMockTransport builds a mock transport with the given simulated
// latency. A non-positive delay falls back to the default.
func NewMockTransport(delay time.Duration) *MockTransport {
	if delay <= 0 {
		delay = DefaultMockDelay
	}
	return &MockTransport{delay: delay}
}

func (t *MockTransport) RoundTrip(ctx context.Context, endpoint string, _ RequestOptions) (json.RawMessage, error) {
	select {
	case <-time.After(t.delay):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	path := endpoint
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}

	switch path {
	case "/api/books":
		return listPayload(MockBooks), nil
	case "/api/categories":
		return listPayload(MockCategories), nil
	case "/api/loans", "/api/user/loans":
		return listPayload(MockLoans), nil
	case "/api/admin/stats":
		return mustJSON(MockAdminStats), nil
	case "/api/user/stats":
		return mustJSON(MockUserStats), nil
	default:
		return json.RawMessage(`{"success":true}`), nil
	}
}

// listPayload wraps a catalog slice in the {"data":[...]} envelope
// the list endpoints use.
func listPayload(items any) json.RawMessage {
	return mustJSON(map[string]any{"data": items})
}

func mustJSON(value any) json.RawMessage {
	payload, err := json.Marshal(value)
	if err != nil {
		// Catalog values are plain records; this cannot fail.
		panic(err)
	}
	return payload
}
