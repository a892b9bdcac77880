package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/yeremiapane/koko-king/models"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// APIError is a non-2xx answer from the order API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("order api status %d: %s", e.StatusCode, e.Message)
}

type envelope struct {
	Status  bool                `json:"status"`
	Message string              `json:"message"`
	Data    jsoniter.RawMessage `json:"data"`
}

// Client talks to the order API on behalf of one role terminal. It
// satisfies convergence.Source so a terminal can poll it.
type Client struct {
	httpClient *http.Client
	base       *url.URL
	token      string
	role       models.Role
}

func NewClient(baseURL string) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid api base url: %w", err)
	}
	return &Client{
		base: base,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout:   5 * time.Second,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 2,
			},
		},
	}, nil
}

// Role is the role of the current session, empty before login.
func (c *Client) Role() models.Role { return c.role }

type session struct {
	Token string      `json:"token"`
	Role  models.Role `json:"role"`
}

// Login opens a staff session for role.
func (c *Client) Login(ctx context.Context, role models.Role, identifier, password string) error {
	var s session
	body := map[string]string{"email": identifier, "username": identifier, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/"+string(role)+"/login", nil, body, &s); err != nil {
		return err
	}
	c.token, c.role = s.Token, s.Role
	return nil
}

// DriverLogin opens a driver session with the shared passkey.
func (c *Client) DriverLogin(ctx context.Context, phone, passkey string) error {
	var s session
	body := map[string]string{"phone": phone, "passkey": passkey}
	if err := c.do(ctx, http.MethodPost, "/drivers/login", nil, body, &s); err != nil {
		return err
	}
	c.token, c.role = s.Token, s.Role
	return nil
}

// List fetches the orders visible to the session role. Drivers read their
// delivery board; everyone else reads the staff listing.
func (c *Client) List(ctx context.Context, filter models.OrderFilter) ([]models.Order, error) {
	q := url.Values{}
	if filter.BranchID != "" {
		q.Set("branch", filter.BranchID)
	}
	path := "/driver/deliveries"
	if c.role != models.RoleDriver {
		path = "/staff/orders"
		for key, val := range map[string]string{
			"date":     filter.Date,
			"category": filter.Category,
			"status":   string(filter.Status),
			"type":     string(filter.OrderType),
			"method":   string(filter.DeliveryMethod),
		} {
			if val != "" {
				q.Set(key, val)
			}
		}
	}
	var orders []models.Order
	if err := c.do(ctx, http.MethodGet, path, q, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// Transition asks the server to move order id to status.
func (c *Client) Transition(ctx context.Context, id string, status models.OrderStatus, note string) (models.Order, error) {
	var order models.Order
	body := map[string]string{"status": string(status), "note": note}
	err := c.do(ctx, http.MethodPost, "/staff/orders/"+url.PathEscape(id)+"/transition", nil, body, &order)
	return order, err
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	u := *c.base
	u.Path = c.base.Path + path
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("call order api: %w", err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return &APIError{StatusCode: resp.StatusCode, Message: "undecodable response: " + err.Error()}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{StatusCode: resp.StatusCode, Message: env.Message}
	}
	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode response data: %w", err)
	}
	return nil
}
