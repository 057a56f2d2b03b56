package eventsapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"eventeditor/internal/domain"
)

const (
	eventsPath = "/api/events"

	// tokenExpiry bounds the bearer tokens minted per request.
	tokenExpiry = 5 * time.Minute
)

// Config holds configuration for the events API client.
type Config struct {
	BaseURL string
	// Subject identifies this client in issued bearer tokens.
	Subject string
	// Issuer, if set, signs a bearer token for every request.
	Issuer domain.TokenIssuer
}

type client struct {
	http    *http.Client
	baseURL string
	subject string
	issuer  domain.TokenIssuer
}

// NewClient returns an EventsAPI that talks to the /api/events resource at cfg.BaseURL.
// Failures are never retried.
func NewClient(httpClient *http.Client, cfg Config) domain.EventsAPI {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	subject := cfg.Subject
	if subject == "" {
		subject = "eventeditor"
	}
	return &client{
		http:    httpClient,
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		subject: subject,
		issuer:  cfg.Issuer,
	}
}

func (c *client) FetchAll(ctx context.Context) ([]domain.Event, error) {
	const op = "fetch events"
	resp, err := c.do(ctx, op, http.MethodGet, eventsPath, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var events []domain.Event
	if err := json.NewDecoder(resp.Body).Decode(&events); err != nil {
		return nil, decodeError(op, resp.StatusCode, err)
	}
	if events == nil {
		events = []domain.Event{}
	}
	return events, nil
}

func (c *client) Create(ctx context.Context, draft domain.Draft) (domain.Event, error) {
	const op = "create event"
	body, err := json.Marshal(draft)
	if err != nil {
		return domain.Event{}, fmt.Errorf("failed to encode draft: %w", err)
	}
	resp, err := c.do(ctx, op, http.MethodPost, eventsPath, body)
	if err != nil {
		return domain.Event{}, err
	}
	defer resp.Body.Close()

	var saved domain.Event
	if err := json.NewDecoder(resp.Body).Decode(&saved); err != nil {
		return domain.Event{}, decodeError(op, resp.StatusCode, err)
	}
	if saved.ID == 0 {
		return domain.Event{}, &domain.NetworkError{Op: op, StatusCode: resp.StatusCode, Message: "missing id in response"}
	}
	return saved, nil
}

func (c *client) Remove(ctx context.Context, id int64) error {
	const op = "delete event"
	resp, err := c.do(ctx, op, http.MethodDelete, fmt.Sprintf("%s/%d", eventsPath, id), nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// do sends the request and turns transport failures and non-2xx statuses
// into *domain.NetworkError. On success the caller owns resp.Body.
func (c *client) do(ctx context.Context, op, method, path string, body []byte) (*http.Response, error) {
	var rdr io.Reader
	if body != nil {
		rdr = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.issuer != nil {
		token, err := c.issuer.Issue(c.subject, tokenExpiry)
		if err != nil {
			return nil, fmt.Errorf("failed to issue api token: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &domain.NetworkError{Op: op, Message: "request failed", Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		return nil, &domain.NetworkError{Op: op, StatusCode: resp.StatusCode, Message: statusText(resp)}
	}
	return resp, nil
}

// statusText mirrors the Fetch API's statusText: the reason phrase only.
func statusText(resp *http.Response) string {
	if text := http.StatusText(resp.StatusCode); text != "" {
		return text
	}
	return strings.TrimSpace(strings.TrimPrefix(resp.Status, fmt.Sprint(resp.StatusCode)))
}

func decodeError(op string, status int, err error) error {
	return &domain.NetworkError{Op: op, StatusCode: status, Message: "invalid response body", Err: err}
}
