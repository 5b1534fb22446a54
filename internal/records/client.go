// Package records talks to the hosted record store that keeps user accounts
// and booked tickets.
package records

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
	"time"
)

const (
	usersCollection   = "MyRailUsers"
	ticketsCollection = "tickets"
)

var ErrUnexpectedStatus = errors.New("unexpected status code")

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: %d", ErrUnexpectedStatus, e.Code)
}

func (e *StatusError) Unwrap() error { return ErrUnexpectedStatus }

// Client is a record service API client.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a client for the collections API rooted at baseURL.
// Requests that outlive timeout fail like any other transport error.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// FindUsersByEmail lists the user records whose email equals email.
func (c *Client) FindUsersByEmail(ctx context.Context, email string) ([]UserRecord, error) {
	q := url.Values{"filter": {fmt.Sprintf("(email='%s')", escapeFilter(email))}}
	endpoint := fmt.Sprintf("%s/%s/records?%s", c.baseURL, usersCollection, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	var result listResponse[UserRecord]
	if err := c.do(req, &result); err != nil {
		return nil, err
	}
	return result.Items, nil
}

// CreateUser stores a signup form.
func (c *Client) CreateUser(ctx context.Context, rec SignupRecord) error {
	_, err := c.create(ctx, usersCollection, rec)
	return err
}

// CreateTicket stores a ticket and returns the id the service assigned to it.
func (c *Client) CreateTicket(ctx context.Context, rec TicketRecord) (string, error) {
	return c.create(ctx, ticketsCollection, rec)
}

func (c *Client) create(ctx context.Context, collection string, payload any) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encoding request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/%s/records", c.baseURL, collection)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var created createdRecord
	if err := c.do(req, &created); err != nil {
		return "", err
	}
	return created.ID, nil
}

func (c *Client) do(req *http.Request, out any) error {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "my-rail/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &StatusError{Code: resp.StatusCode, Body: string(snippet)}
	}

	if out == nil {
		return nil
	}
	// A 204 or an empty body is still a success.
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func escapeFilter(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `'`, `\'`)
}
