package gateway

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/openshelf/openshelf/config"
	"go.uber.org/zap"
)

// RequestOptions shape a single API request. The zero value is a GET
// with no body and the default JSON headers.
type RequestOptions struct {
	// Method is the HTTP method, GET when empty.
	Method string

	// Body is JSON-encoded into the request body when non-nil.
	Body any

	// Headers are merged over the default JSON headers; caller
	// values win.
	Headers map[string]string
}

// Transport performs a single API exchange and returns the raw JSON
// payload. Implementations: RemoteTransport and MockTransport,
// selected once at startup.
type Transport interface {
	RoundTrip(ctx context.Context, endpoint string, opts RequestOptions) (json.RawMessage, error)
}

// Navigator receives client-side redirects (to the login page on 401,
// to the role landing page after login). Implementations decide what
// "navigating" means for their surface.
type Navigator interface {
	Push(path string)
}

// NopNavigator discards navigation requests.
type NopNavigator struct{}

func (NopNavigator) Push(string) {}

// Gateway is the single entry point for outbound API calls. It owns
// the transport chosen at startup and, in development, a mock
// transport used as a fallback when the network is unreachable.
type Gateway struct {
	transport Transport
	fallback  *MockTransport
	nav       Navigator
	logger    *zap.Logger
}

// New selects the transport from config and returns a ready Gateway.
// Mock mode pins the mock transport; otherwise a remote transport is
// used, with a development-only mock fallback for network failures.
func New(cfg config.Config, nav Navigator, logger *zap.Logger) *Gateway {
	if nav == nil {
		nav = NopNavigator{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	g := &Gateway{nav: nav, logger: logger}
	if cfg.MockAPI {
		g.transport = NewMockTransport(DefaultMockDelay)
		return g
	}

	g.transport = NewRemoteTransport(cfg.APIURL)
	if cfg.IsDevelopment() {
		g.fallback = NewMockTransport(DefaultMockDelay)
	}
	return g
}

// NewWithTransport builds a Gateway around an explicit transport.
// Used by tests and by callers that manage transport selection
// themselves.
func NewWithTransport(t Transport, nav Navigator, logger *zap.Logger) *Gateway {
	if nav == nil {
		nav = NopNavigator{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gateway{transport: t, nav: nav, logger: logger}
}

// Request performs one API call. A 401 navigates to /login and fails
// with ErrUnauthenticated; other HTTP-level rejections fail with an
// *APIError. Network-level failures retry once against the mock
// fallback in development and propagate otherwise.
func (g *Gateway) Request(ctx context.Context, endpoint string, opts RequestOptions) (json.RawMessage, error) {
	raw, err := g.transport.RoundTrip(ctx, endpoint, opts)
	if err == nil {
		return raw, nil
	}

	if errors.Is(err, ErrUnauthenticated) {
		g.nav.Push("/login")
		return nil, err
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return nil, err
	}

	if g.fallback != nil {
		g.logger.Warn("api request failed, falling back to mock data",
			zap.String("endpoint", endpoint),
			zap.Error(err))
		return g.fallback.RoundTrip(ctx, endpoint, opts)
	}
	return nil, err
}

// Exchange performs one call on the selected transport without the
// 401 redirect or the development mock fallback. The session store
// uses it for the auth endpoints, where it absorbs failures itself
// and a login-page redirect would be wrong.
func (g *Gateway) Exchange(ctx context.Context, endpoint string, opts RequestOptions) (json.RawMessage, error) {
	return g.transport.RoundTrip(ctx, endpoint, opts)
}

// Get issues a GET request.
func (g *Gateway) Get(ctx context.Context, endpoint string) (json.RawMessage, error) {
	return g.Request(ctx, endpoint, RequestOptions{})
}

// Post issues a POST request with an optional JSON body.
func (g *Gateway) Post(ctx context.Context, endpoint string, body any) (json.RawMessage, error) {
	return g.Request(ctx, endpoint, RequestOptions{Method: "POST", Body: body})
}

// Put issues a PUT request with a JSON body.
func (g *Gateway) Put(ctx context.Context, endpoint string, body any) (json.RawMessage, error) {
	return g.Request(ctx, endpoint, RequestOptions{Method: "PUT", Body: body})
}

// Delete issues a DELETE request.
func (g *Gateway) Delete(ctx context.Context, endpoint string) (json.RawMessage, error) {
	return g.Request(ctx, endpoint, RequestOptions{Method: "DELETE"})
}
