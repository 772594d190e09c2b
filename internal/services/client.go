package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/mvribeiro/talpha/internal/session"
	"github.com/mvribeiro/talpha/internal/shared"
	"golang.org/x/oauth2"
)

// Client issues requests against a fixed base origin, attaching
// "Authorization: Bearer <token>" whenever the session store holds a token.
type Client struct {
	baseURL    string
	httpClient *http.Client
	session    session.Store
}

// NewClient creates a new API client. The session store is read on every
// request so a login performed mid-session takes effect without rebuilding
// the client.
func NewClient(baseURL string, client *http.Client, store session.Store) *Client {
	if baseURL == "" {
		baseURL = "https://interview.t-alpha.com.br"
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: client,
		session:    store,
	}
}

// httpClientFor wraps the base client with an oauth2 bearer transport when a
// token is present. The oauth2 transport reuses the base client's transport
// for the actual round trip.
func (c *Client) httpClientFor(ctx context.Context) *http.Client {
	if c.session == nil {
		return c.httpClient
	}

	token, ok := c.session.Token()
	if !ok {
		return c.httpClient
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"})
	return oauth2.NewClient(ctx, src)
}

// do performs a request and decodes the response envelope into result.
//
// result may be nil for operations whose data payload is irrelevant. A
// success=false envelope becomes an [*APIError]; a transport failure or a
// body that is not an envelope becomes a [shared.ErrNetwork] wrap.
func (c *Client) do(ctx context.Context, method, path string, payload any, result any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", shared.GenerateID())

	resp, err := c.httpClientFor(ctx).Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrNetwork, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: failed to read response: %v", shared.ErrNetwork, err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("%w: unexpected response (status %d)", shared.ErrNetwork, resp.StatusCode)
	}

	if !env.Success {
		return &APIError{Status: resp.StatusCode, Message: env.Message}
	}

	if result != nil {
		if err := json.Unmarshal(env.Data, result); err != nil {
			return fmt.Errorf("%w: failed to decode response data: %v", shared.ErrNetwork, err)
		}
	}

	return nil
}
