// Package api is the typed HTTP client for the Creationity content API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"creationity/internal/models"
)

// TokenSource supplies the bearer token attached to authenticated requests.
// An empty token means the caller is not logged in.
type TokenSource interface {
	Token() string
}

// Client talks to the content API. The zero value is not usable; construct
// with NewClient.
type Client struct {
	baseURL       string
	httpClient    *http.Client
	tokens        TokenSource
	onAuthFailure func()
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTokenSource sets where bearer tokens come from.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

// WithAuthFailureHandler registers a callback invoked whenever the server
// rejects the current token. Session stores use it to invalidate themselves.
func WithAuthFailureHandler(fn func()) Option {
	return func(c *Client) { c.onAuthFailure = fn }
}

// NewClient creates a client rooted at baseURL (e.g. "https://api.creationity.app").
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SignupRequest is the registration payload.
type SignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the credential payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse carries the issued token and the account it belongs to.
type AuthResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// ContentInput is the payload for creating or editing a content item.
type ContentInput struct {
	Type     string   `json:"type,omitempty"`
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Category string   `json:"category,omitempty"`
	Tags     []string `json:"tags,omitempty"`
}

// ProfileInput is the payload for profile updates. Empty fields are left
// unchanged by the server.
type ProfileInput struct {
	Username string `json:"username,omitempty"`
	Bio      string `json:"bio,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
}

// ListOptions narrows content listings. Zero values are omitted from the
// query string entirely.
type ListOptions struct {
	Type     string
	Category string
	Page     int
	Limit    int
}

func (o ListOptions) query() url.Values {
	q := url.Values{}
	if o.Type != "" {
		q.Set("type", o.Type)
	}
	if o.Category != "" {
		q.Set("category", o.Category)
	}
	if o.Page > 0 {
		q.Set("page", strconv.Itoa(o.Page))
	}
	if o.Limit > 0 {
		q.Set("limit", strconv.Itoa(o.Limit))
	}
	return q
}

// ListPage is one page of content results.
type ListPage struct {
	Content    []models.ContentItem `json:"content"`
	Page       int                  `json:"page"`
	TotalPages int                  `json:"totalPages"`
	Total      int64                `json:"total"`
}

// PublicProfile is another user's public view.
type PublicProfile struct {
	ID       uint   `json:"_id"`
	Username string `json:"username"`
	Bio      string `json:"bio"`
	Avatar   string `json:"avatar"`
}

// StatsResponse wraps the dashboard counters.
type StatsResponse struct {
	Stats models.UserStats `json:"stats"`
}

// Signup registers a new account.
func (c *Client) Signup(ctx context.Context, req SignupRequest) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/signup", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login exchanges credentials for a token.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListByTypeAndCategory fetches a page of one type's items within a category.
func (c *Client) ListByTypeAndCategory(ctx context.Context, contentType, category string, opts ListOptions) (*ListPage, error) {
	opts.Type = ""
	opts.Category = ""
	path := fmt.Sprintf("/api/content/%s/%s", url.PathEscape(contentType), url.PathEscape(category))
	var out ListPage
	if err := c.do(ctx, http.MethodGet, path, opts.query(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListContent fetches a page of content, optionally filtered by type and category.
func (c *Client) ListContent(ctx context.Context, opts ListOptions) (*ListPage, error) {
	var out ListPage
	if err := c.do(ctx, http.MethodGet, "/api/content", opts.query(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Trending fetches the most-liked items, across all types when contentType is empty.
func (c *Client) Trending(ctx context.Context, contentType string, limit int) ([]models.ContentItem, error) {
	path := "/api/content/trending"
	if contentType != "" {
		path += "/" + url.PathEscape(contentType)
	}
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	var out struct {
		Content []models.ContentItem `json:"content"`
	}
	if err := c.do(ctx, http.MethodGet, path, q, nil, &out); err != nil {
		return nil, err
	}
	return out.Content, nil
}

// GetContent fetches a single item by id. The server counts this as a view.
func (c *Client) GetContent(ctx context.Context, id uint) (*models.ContentItem, error) {
	var out models.ContentItem
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/content/item/%d", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateContent posts a new item as the authenticated user.
func (c *Client) CreateContent(ctx context.Context, in ContentInput) (*models.ContentItem, error) {
	var out models.ContentItem
	if err := c.do(ctx, http.MethodPost, "/api/content", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateContent edits an item the authenticated user authored.
func (c *Client) UpdateContent(ctx context.Context, id uint, in ContentInput) (*models.ContentItem, error) {
	var out models.ContentItem
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/content/%d", id), nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteContent removes an item the authenticated user authored.
func (c *Client) DeleteContent(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/content/%d", id), nil, nil, nil)
}

// ToggleLike flips the authenticated user's like and returns the refreshed item.
func (c *Client) ToggleLike(ctx context.Context, id uint) (*models.ContentItem, error) {
	var out models.ContentItem
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/content/%d/like", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Me fetches the authenticated user's own account.
func (c *Client) Me(ctx context.Context) (*models.User, error) {
	var out models.User
	if err := c.do(ctx, http.MethodGet, "/api/user/me", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProfile edits the authenticated user's profile.
func (c *Client) UpdateProfile(ctx context.Context, in ProfileInput) (*models.User, error) {
	var out models.User
	if err := c.do(ctx, http.MethodPut, "/api/user/me", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MyStats fetches the authenticated user's dashboard counters.
func (c *Client) MyStats(ctx context.Context) (*models.UserStats, error) {
	var out StatsResponse
	if err := c.do(ctx, http.MethodGet, "/api/user/stats", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out.Stats, nil
}

// MyContent fetches a page of the authenticated user's own items.
func (c *Client) MyContent(ctx context.Context, opts ListOptions) (*ListPage, error) {
	var out ListPage
	if err := c.do(ctx, http.MethodGet, "/api/content/user/me", opts.query(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MyLiked fetches a page of items the authenticated user has liked.
func (c *Client) MyLiked(ctx context.Context, opts ListOptions) (*ListPage, error) {
	var out ListPage
	if err := c.do(ctx, http.MethodGet, "/api/user/liked", opts.query(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UserProfile fetches another user's public profile by username.
func (c *Client) UserProfile(ctx context.Context, username string) (*PublicProfile, error) {
	var out PublicProfile
	path := "/api/user/profile/" + url.PathEscape(username)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &NetworkError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return c.errorFromResponse(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &ServerError{StatusCode: resp.StatusCode, Message: "malformed response body"}
	}
	return nil
}

// errorFromResponse maps an HTTP error status to the client error taxonomy.
// A 401 additionally fires the auth-failure hook: the stored token is no
// longer trusted once the server has rejected it.
func (c *Client) errorFromResponse(resp *http.Response) error {
	message := extractMessage(resp.Body)

	switch resp.StatusCode {
	case http.StatusBadRequest, http.StatusConflict:
		if message == "" {
			message = "Invalid request"
		}
		return &ValidationError{Message: message}
	case http.StatusUnauthorized:
		if c.onAuthFailure != nil {
			c.onAuthFailure()
		}
		if message == "" {
			message = "Authentication required"
		}
		return &AuthError{Message: message}
	case http.StatusForbidden:
		if message == "" {
			message = "Not allowed"
		}
		return &AuthError{Message: message}
	case http.StatusNotFound:
		if message == "" {
			message = "Not found"
		}
		return &NotFoundError{Message: message}
	default:
		return &ServerError{StatusCode: resp.StatusCode, Message: message}
	}
}

// extractMessage pulls the error string out of the server's JSON error body.
func extractMessage(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, 64*1024))
	if err != nil {
		return ""
	}
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return ""
	}
	if payload.Error != "" {
		return payload.Error
	}
	return payload.Message
}
