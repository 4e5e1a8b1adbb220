package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// Session is an authenticated GoTrue session.
type Session struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	TokenType    string      `json:"token_type"`
	ExpiresIn    int         `json:"expires_in"`
	User         SessionUser `json:"user"`
}

// SessionUser is the account attached to a session.
type SessionUser struct {
	ID       string         `json:"id"`
	Email    string         `json:"email"`
	Metadata map[string]any `json:"user_metadata"`
}

// Name returns the display name from the signup metadata, falling back to
// the email's local part.
func (u SessionUser) Name() string {
	if n, ok := u.Metadata["name"].(string); ok && n != "" {
		return n
	}
	if i := strings.Index(u.Email, "@"); i > 0 {
		return u.Email[:i]
	}
	return u.Email
}

// Client talks to a Supabase project: GoTrue for auth and PostgREST for
// table access. All table calls carry the current session's access token.
type Client struct {
	baseURL string
	anonKey string
	httpc   *http.Client

	mu      sync.RWMutex
	session *Session
}

// New creates a client for the given project URL and anon key.
func New(baseURL, anonKey string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		anonKey: anonKey,
		httpc:   &http.Client{Timeout: 30 * time.Second},
	}
}

// Session returns the current session, or nil when signed out.
func (c *Client) Session() *Session {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session
}

func (c *Client) setSession(s *Session) {
	c.mu.Lock()
	c.session = s
	c.mu.Unlock()
}

// SignIn exchanges email/password credentials for a session.
func (c *Client) SignIn(ctx context.Context, email, password string) (*Session, error) {
	body := map[string]string{"email": email, "password": password}
	var s Session
	if err := c.authRequest(ctx, "/auth/v1/token?grant_type=password", body, &s); err != nil {
		return nil, err
	}
	c.setSession(&s)
	return &s, nil
}

// SignUp registers a new account. The name lands in the user metadata so
// it can be greeted with later.
func (c *Client) SignUp(ctx context.Context, name, email, password string) (*Session, error) {
	body := map[string]any{
		"email":    email,
		"password": password,
		"data":     map[string]string{"name": name},
	}
	var s Session
	if err := c.authRequest(ctx, "/auth/v1/signup", body, &s); err != nil {
		return nil, err
	}
	if s.AccessToken != "" {
		c.setSession(&s)
	}
	return &s, nil
}

// RefreshSession restores a session from a stored refresh token.
func (c *Client) RefreshSession(ctx context.Context, refreshToken string) (*Session, error) {
	body := map[string]string{"refresh_token": refreshToken}
	var s Session
	if err := c.authRequest(ctx, "/auth/v1/token?grant_type=refresh_token", body, &s); err != nil {
		return nil, err
	}
	c.setSession(&s)
	return &s, nil
}

// SignOut revokes the current session server-side and clears it locally.
func (c *Client) SignOut(ctx context.Context) error {
	s := c.Session()
	c.setSession(nil)
	if s == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/v1/logout", nil)
	if err != nil {
		return err
	}
	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("Authorization", "Bearer "+s.AccessToken)

	resp, err := c.httpc.Do(req)
	if err != nil {
		// The local session is already gone; a revocation failure is
		// not actionable for the caller.
		return nil
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	return nil
}

func (c *Client) authRequest(ctx context.Context, path string, body, dest any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{Err: err}
	}

	if resp.StatusCode >= 400 {
		return &AuthError{Status: resp.StatusCode, Message: authMessage(data)}
	}

	return json.Unmarshal(data, dest)
}

// authMessage digs the human-readable message out of a GoTrue error body,
// which uses different keys depending on the endpoint.
func authMessage(data []byte) string {
	var body struct {
		Message          string `json:"message"`
		Msg              string `json:"msg"`
		ErrorDescription string `json:"error_description"`
	}
	if err := json.Unmarshal(data, &body); err == nil {
		for _, m := range []string{body.ErrorDescription, body.Msg, body.Message} {
			if m != "" {
				return m
			}
		}
	}
	return "authentication failed"
}

// Select fetches rows from a table. The query is a raw PostgREST filter
// string such as "user_id=eq.X&order=created_at.desc".
func (c *Client) Select(ctx context.Context, table, query string, dest any) error {
	return c.restRequest(ctx, http.MethodGet, table, query, nil, dest)
}

// Insert creates rows and decodes the returned representation into dest
// when dest is non-nil.
func (c *Client) Insert(ctx context.Context, table string, body, dest any) error {
	return c.restRequest(ctx, http.MethodPost, table, "", body, dest)
}

// Update patches the rows matched by the query.
func (c *Client) Update(ctx context.Context, table, query string, body, dest any) error {
	return c.restRequest(ctx, http.MethodPatch, table, query, body, dest)
}

// Delete removes the rows matched by the query.
func (c *Client) Delete(ctx context.Context, table, query string) error {
	return c.restRequest(ctx, http.MethodDelete, table, query, nil, nil)
}

func (c *Client) restRequest(ctx context.Context, method, table, query string, body, dest any) error {
	u := c.baseURL + "/rest/v1/" + url.PathEscape(table)
	if query != "" {
		u += "?" + query
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return err
	}
	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("Content-Type", "application/json")
	if dest != nil && method != http.MethodGet {
		req.Header.Set("Prefer", "return=representation")
	}

	token := c.anonKey
	if s := c.Session(); s != nil {
		token = s.AccessToken
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{Err: err}
	}

	if resp.StatusCode >= 400 {
		return storeError(resp.StatusCode, data)
	}

	if dest == nil {
		return nil
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("decode %s response: %w", table, err)
	}
	return nil
}

// storeError decodes a PostgREST error body into a StoreError.
func storeError(status int, data []byte) error {
	var body struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Details string `json:"details"`
	}
	if err := json.Unmarshal(data, &body); err != nil || body.Message == "" {
		return &StoreError{Status: status, Message: http.StatusText(status)}
	}
	return &StoreError{Status: status, Code: body.Code, Message: body.Message}
}

// ErrNoSession is returned by callers that require an authenticated session.
var ErrNoSession = errors.New("not signed in")
