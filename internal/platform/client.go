// Package platform is the typed HTTP client for the trading platform API.
// It preserves the observed endpoint contracts: which fields mark success,
// which failures carry a user-facing message and which are silent.
package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

var (
	// ErrInvalidCredentials marks a login response without a user id.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrMissingFields marks a 400 on registration.
	ErrMissingFields = errors.New("missing fields")
	// ErrUnavailable marks a transport-level failure: the platform could
	// not be reached at all.
	ErrUnavailable = errors.New("platform unreachable")
)

// ConflictError carries the exact server message for a 409 on registration,
// so the duplicate-email text reaches the user unchanged.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// APIError carries a server-provided error string from a non-2xx response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string { return e.Message }

// Client calls the platform API.
type Client struct {
	baseURL string
	http    *http.Client
}

// New builds a platform client for the given base URL.
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// LoginResult is the identity returned by a successful login.
type LoginResult struct {
	UserID string
	Role   string
}

// Login exchanges credentials for a user id and role. A 2xx response
// without a user id is treated as invalid credentials, matching the
// platform's contract.
func (c *Client) Login(ctx context.Context, email, password string) (LoginResult, error) {
	var res struct {
		UserID json.Number `json:"user_id"`
		Role   string      `json:"role"`
		Error  string      `json:"error"`
	}
	status, err := c.postJSON(ctx, "/api/login", map[string]string{
		"email":    email,
		"password": password,
	}, &res)
	if err != nil {
		return LoginResult{}, err
	}
	if status < 200 || status >= 300 || res.UserID.String() == "" {
		return LoginResult{}, ErrInvalidCredentials
	}
	return LoginResult{UserID: res.UserID.String(), Role: strings.ToLower(res.Role)}, nil
}

// Register creates an account. 409 returns a ConflictError with the exact
// server message, 400 maps to ErrMissingFields, anything else non-2xx to a
// generic APIError carrying the server message when present.
func (c *Client) Register(ctx context.Context, username, email, password string) error {
	var res struct {
		Error string `json:"error"`
	}
	status, err := c.postJSON(ctx, "/api/register", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	}, &res)
	if err != nil {
		return err
	}
	switch {
	case status >= 200 && status < 300:
		return nil
	case status == http.StatusConflict:
		msg := res.Error
		if msg == "" {
			msg = "email déjà utilisé"
		}
		return &ConflictError{Message: msg}
	case status == http.StatusBadRequest:
		return ErrMissingFields
	default:
		msg := res.Error
		if msg == "" {
			msg = fmt.Sprintf("inscription impossible (code %d)", status)
		}
		return &APIError{Status: status, Message: msg}
	}
}

// User is one row of the platform user directory.
type User struct {
	ID     json.Number `json:"id"`
	Name   string      `json:"name"`
	Email  string      `json:"email"`
	Role   string      `json:"role"`
	Status string      `json:"status"`
}

// ListUsers fetches the user directory. The platform has served both a bare
// array and a {"users": [...]} wrapper; both shapes are accepted.
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	raw, status, err := c.get(ctx, "/api/users")
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		return nil, &APIError{Status: status, Message: "user list unavailable"}
	}

	var users []User
	if err := json.Unmarshal(raw, &users); err == nil {
		return users, nil
	}
	var wrapped struct {
		Users []User `json:"users"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, fmt.Errorf("decode user list: %w", err)
	}
	return wrapped.Users, nil
}

// Settings reads the platform-wide PayPal address.
func (c *Client) Settings(ctx context.Context) (string, error) {
	raw, status, err := c.get(ctx, "/api/platform-settings")
	if err != nil {
		return "", err
	}
	if status < 200 || status >= 300 {
		return "", &APIError{Status: status, Message: "settings unavailable"}
	}
	var res struct {
		PaypalEmail string `json:"paypal_email"`
	}
	if err := json.Unmarshal(raw, &res); err != nil {
		return "", fmt.Errorf("decode settings: %w", err)
	}
	return res.PaypalEmail, nil
}

// SaveSettings writes the platform-wide PayPal address.
func (c *Client) SaveSettings(ctx context.Context, paypalEmail string) (string, error) {
	var res struct {
		PaypalEmail string `json:"paypal_email"`
		Error       string `json:"error"`
	}
	status, err := c.postJSON(ctx, "/api/platform-settings", map[string]string{
		"paypal_email": paypalEmail,
	}, &res)
	if err != nil {
		return "", err
	}
	if status < 200 || status >= 300 {
		return "", &APIError{Status: status, Message: res.Error}
	}
	return res.PaypalEmail, nil
}

// BuyChallenge purchases a challenge for the user and returns its id.
func (c *Client) BuyChallenge(ctx context.Context, userID, planType string) (int, error) {
	var res struct {
		ChallengeID int    `json:"challenge_id"`
		Error       string `json:"error"`
	}
	status, err := c.postJSON(ctx, "/api/buy-challenge", map[string]any{
		"user_id":   jsonNumberOrString(userID),
		"plan_type": planType,
	}, &res)
	if err != nil {
		return 0, err
	}
	if status < 200 || status >= 300 || res.ChallengeID == 0 {
		return 0, &APIError{Status: status, Message: res.Error}
	}
	return res.ChallengeID, nil
}

// TradeRequest is the order submitted to the platform.
type TradeRequest struct {
	ChallengeID int     `json:"challenge_id"`
	Symbol      string  `json:"symbol"`
	Type        string  `json:"type"`
	Quantity    int     `json:"quantity"`
	OpenPrice   float64 `json:"open_price"`
	ClosePrice  float64 `json:"close_price"`
}

// TradeResult carries the updated challenge equity after execution.
type TradeResult struct {
	CurrentEquity float64
	Status        string
}

// SubmitTrade executes a trade. Non-2xx surfaces the server-provided error
// string; a transport failure surfaces ErrUnavailable.
func (c *Client) SubmitTrade(ctx context.Context, req TradeRequest) (TradeResult, error) {
	var res struct {
		Challenge struct {
			CurrentEquity float64 `json:"current_equity"`
			Status        string  `json:"status"`
		} `json:"challenge"`
		Error string `json:"error"`
	}
	status, err := c.postJSON(ctx, "/api/trade", req, &res)
	if err != nil {
		return TradeResult{}, err
	}
	if status < 200 || status >= 300 {
		msg := res.Error
		if msg == "" {
			msg = "erreur trade"
		}
		return TradeResult{}, &APIError{Status: status, Message: msg}
	}
	return TradeResult{CurrentEquity: res.Challenge.CurrentEquity, Status: res.Challenge.Status}, nil
}

// Quote returns the latest price for a symbol.
func (c *Client) Quote(ctx context.Context, symbol string) (float64, error) {
	raw, status, err := c.get(ctx, "/api/price/"+url.PathEscape(symbol))
	if err != nil {
		return 0, err
	}
	if status < 200 || status >= 300 {
		return 0, &APIError{Status: status, Message: "quote unavailable"}
	}
	var res struct {
		Price float64 `json:"price"`
	}
	if err := json.Unmarshal(raw, &res); err != nil {
		return 0, fmt.Errorf("decode quote: %w", err)
	}
	if res.Price == 0 {
		return 0, &APIError{Status: status, Message: "no price in response"}
	}
	return res.Price, nil
}

// LeaderboardRow is one entry of the public leaderboard.
type LeaderboardRow struct {
	Username  string  `json:"username"`
	ProfitPct float64 `json:"profit_pct"`
	TotalPnL  float64 `json:"total_pnl"`
}

// Leaderboard fetches the top traders.
func (c *Client) Leaderboard(ctx context.Context) ([]LeaderboardRow, error) {
	raw, status, err := c.get(ctx, "/api/leaderboard")
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		return nil, &APIError{Status: status, Message: "leaderboard unavailable"}
	}
	var res struct {
		Leaderboard []LeaderboardRow `json:"leaderboard"`
	}
	if err := json.Unmarshal(raw, &res); err != nil {
		return nil, fmt.Errorf("decode leaderboard: %w", err)
	}
	return res.Leaderboard, nil
}

// Chat forwards a message to the platform advisor.
func (c *Client) Chat(ctx context.Context, message string) (string, error) {
	var res struct {
		Reply string `json:"reply"`
		Error string `json:"error"`
	}
	status, err := c.postJSON(ctx, "/api/chat", map[string]string{"message": message}, &res)
	if err != nil {
		return "", err
	}
	if status < 200 || status >= 300 {
		return "", &APIError{Status: status, Message: res.Error}
	}
	return res.Reply, nil
}

func (c *Client) get(ctx context.Context, path string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, 0, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return buf.Bytes(), resp.StatusCode, nil
}

func (c *Client) postJSON(ctx context.Context, path string, body any, out any) (int, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return 0, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if out != nil {
		// Error bodies share shape with success bodies; decode failures on
		// non-JSON responses are ignored so status mapping still applies.
		_ = json.NewDecoder(resp.Body).Decode(out)
	}
	return resp.StatusCode, nil
}

// jsonNumberOrString sends numeric user ids as numbers, keeping the wire
// shape the platform expects while tolerating opaque ids.
func jsonNumberOrString(id string) any {
	var n json.Number = json.Number(id)
	if _, err := n.Int64(); err == nil {
		return n
	}
	return id
}
