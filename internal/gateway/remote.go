package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
)

const xsrfCookieName = "XSRF-TOKEN"

// RemoteTransport issues credentialed HTTP requests against the real
// API. A cookie jar carries the session and XSRF cookies across
// calls, which is what "credentials included" means for this client.
type RemoteTransport struct {
	baseURL string
	client  *http.Client
}

// NewRemoteTransport builds a transport for the given API base URL.
func NewRemoteTransport(baseURL string) *RemoteTransport {
	jar, _ := cookiejar.New(nil)
	return &RemoteTransport{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Jar: jar},
	}
}

// Client exposes the underlying HTTP client, mainly so tests can
// inspect the jar.
func (t *RemoteTransport) Client() *http.Client {
	return t.client
}

func (t *RemoteTransport) RoundTrip(ctx context.Context, endpoint string, opts RequestOptions) (json.RawMessage, error) {
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	if opts.Body != nil {
		encoded, err := json.Marshal(opts.Body)
		if err != nil {
			return nil, &transportError{err: err}
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, t.baseURL+endpoint, body)
	if err != nil {
		return nil, &transportError{err: err}
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	for key, value := range opts.Headers {
		req.Header.Set(key, value)
	}
	if method != http.MethodGet {
		if token := t.xsrfToken(); token != "" {
			req.Header.Set("X-XSRF-TOKEN", token)
		}
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, &transportError{err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, ErrUnauthenticated
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &transportError{err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    serverMessage(payload),
		}
	}

	if len(bytes.TrimSpace(payload)) == 0 {
		return json.RawMessage(`{"success":true}`), nil
	}
	if !json.Valid(payload) {
		return nil, &transportError{err: errInvalidJSON}
	}
	return json.RawMessage(payload), nil
}

var errInvalidJSON = errors.New("invalid JSON in API response")

// xsrfToken reads the XSRF cookie the server primed via
// /sanctum/csrf-cookie, to be echoed on state-changing requests.
func (t *RemoteTransport) xsrfToken() string {
	u, err := url.Parse(t.baseURL)
	if err != nil {
		return ""
	}
	for _, c := range t.client.Jar.Cookies(u) {
		if c.Name == xsrfCookieName {
			return c.Value
		}
	}
	return ""
}

// serverMessage extracts the error text from an API rejection body,
// accepting both {"message": ...} and {"error": ...} conventions.
func serverMessage(payload []byte) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(payload, &body); err != nil {
		return "API request failed"
	}
	if body.Message != "" {
		return body.Message
	}
	if body.Error != "" {
		return body.Error
	}
	return "API request failed"
}
