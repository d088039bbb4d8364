package gateway_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradesense/tradesense/internal/gateway"
	"github.com/tradesense/tradesense/internal/locale"
	"github.com/tradesense/tradesense/internal/logging"
	"github.com/tradesense/tradesense/internal/platform"
	"github.com/tradesense/tradesense/internal/prices"
	"github.com/tradesense/tradesense/internal/session"
	"github.com/tradesense/tradesense/internal/visitor"
)

type stubPlatform struct {
	loginResult  platform.LoginResult
	loginErr     error
	registerErr  error
	users        []platform.User
	usersErr     error
	tradeReq     platform.TradeRequest
	tradeResult  platform.TradeResult
	challengeID  int
	challengeErr error
	paypal       string
}

func (s *stubPlatform) Login(ctx context.Context, email, password string) (platform.LoginResult, error) {
	return s.loginResult, s.loginErr
}

func (s *stubPlatform) Register(ctx context.Context, username, email, password string) error {
	return s.registerErr
}

func (s *stubPlatform) ListUsers(ctx context.Context) ([]platform.User, error) {
	return s.users, s.usersErr
}

func (s *stubPlatform) Settings(ctx context.Context) (string, error) { return s.paypal, nil }

func (s *stubPlatform) SaveSettings(ctx context.Context, paypalEmail string) (string, error) {
	s.paypal = paypalEmail
	return paypalEmail, nil
}

func (s *stubPlatform) BuyChallenge(ctx context.Context, userID, planType string) (int, error) {
	return s.challengeID, s.challengeErr
}

func (s *stubPlatform) SubmitTrade(ctx context.Context, req platform.TradeRequest) (platform.TradeResult, error) {
	s.tradeReq = req
	return s.tradeResult, nil
}

func (s *stubPlatform) Leaderboard(ctx context.Context) ([]platform.LeaderboardRow, error) {
	return nil, nil
}

func (s *stubPlatform) Chat(ctx context.Context, message string) (string, error) {
	return "réponse", nil
}

type stubPrices struct {
	prices map[string]float64
}

func (s *stubPrices) Current() prices.Snapshot {
	return prices.Snapshot{Prices: s.prices, UpdatedAt: time.Now()}
}

func (s *stubPrices) Price(symbol string) (float64, bool) {
	p, ok := s.prices[symbol]
	return p, ok
}

func newTestApp(t *testing.T, api gateway.PlatformAPI) *fiber.App {
	t.Helper()

	cookies, err := session.NewCookies("test-secret", time.Hour)
	require.NoError(t, err)

	repo := visitor.NewMemoryRepository()
	app := fiber.New()
	gateway.Setup(app, gateway.Deps{
		Logger:   logging.Discard(),
		Cookies:  cookies,
		Sessions: session.NewStore(repo, logging.Discard()),
		Locales:  locale.NewStore(repo),
		Platform: api,
		Prices:   &stubPrices{prices: map[string]float64{"BTC-USD": 64000, "IAM": 11.5}},
	})
	return app
}

func do(t *testing.T, app *fiber.App, method, path string, body any, cookie string) (*http.Response, string) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != "" {
		req.Header.Set("Cookie", session.CookieName+"="+cookie)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	for _, c := range resp.Cookies() {
		if c.Name == session.CookieName {
			return resp, c.Value
		}
	}
	return resp, cookie
}

func decode(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestLoginOpensSessionAndGuardsFollow(t *testing.T) {
	api := &stubPlatform{loginResult: platform.LoginResult{UserID: "7", Role: "user"}}
	app := newTestApp(t, api)

	resp, cookie := do(t, app, fiber.MethodGet, "/", nil, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.NotEmpty(t, cookie)

	resp, _ = do(t, app, fiber.MethodGet, "/dashboard", nil, cookie)
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))

	resp, cookie = do(t, app, fiber.MethodPost, "/login", map[string]string{
		"email": "u@tradesense.io", "password": "pw",
	}, cookie)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decode(t, resp)
	assert.Equal(t, "/dashboard", body["redirect"])

	resp, _ = do(t, app, fiber.MethodGet, "/dashboard", nil, cookie)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	dash := decode(t, resp)
	assert.Equal(t, float64(1), dash["challenge_id"])
	assert.Equal(t, 50000.0, dash["equity"])
}

func TestLoginInvalidCredentials(t *testing.T) {
	api := &stubPlatform{loginErr: platform.ErrInvalidCredentials}
	app := newTestApp(t, api)

	resp, _ := do(t, app, fiber.MethodPost, "/login", map[string]string{
		"email": "u@tradesense.io", "password": "wrong",
	}, "")
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Email ou mot de passe incorrect", decode(t, resp)["error"])
}

func TestRegisterSurfacesConflictMessageVerbatim(t *testing.T) {
	api := &stubPlatform{registerErr: &platform.ConflictError{Message: "email taken"}}
	app := newTestApp(t, api)

	resp, _ := do(t, app, fiber.MethodPost, "/register", map[string]string{
		"username": "dup", "email": "dup@tradesense.io", "password": "pw",
	}, "")
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "email taken", decode(t, resp)["error"])
}

func TestAdminUsersRequiresRole(t *testing.T) {
	api := &stubPlatform{loginResult: platform.LoginResult{UserID: "7", Role: "user"}}
	app := newTestApp(t, api)

	_, cookie := do(t, app, fiber.MethodPost, "/login", map[string]string{"email": "u@x", "password": "p"}, "")
	resp, _ := do(t, app, fiber.MethodGet, "/admin/users", nil, cookie)
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))
}

func TestAdminUsersUnavailableIsExplicit(t *testing.T) {
	api := &stubPlatform{
		loginResult: platform.LoginResult{UserID: "1", Role: "admin"},
		usersErr:    errors.New("connection refused"),
	}
	app := newTestApp(t, api)

	_, cookie := do(t, app, fiber.MethodPost, "/login", map[string]string{"email": "a@x", "password": "p"}, "")
	resp, _ := do(t, app, fiber.MethodGet, "/admin/users", nil, cookie)
	require.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)

	body := decode(t, resp)
	assert.Equal(t, false, body["available"])
	assert.Empty(t, body["users"])
}

func TestSuperAdminSettingsGate(t *testing.T) {
	api := &stubPlatform{
		loginResult: platform.LoginResult{UserID: "2", Role: "admin"},
		paypal:      "pay@tradesense.io",
	}
	app := newTestApp(t, api)

	_, cookie := do(t, app, fiber.MethodPost, "/login", map[string]string{"email": "a@x", "password": "p"}, "")
	resp, _ := do(t, app, fiber.MethodGet, "/superadmin/settings", nil, cookie)
	require.Equal(t, fiber.StatusFound, resp.StatusCode)

	api2 := &stubPlatform{
		loginResult: platform.LoginResult{UserID: "3", Role: "superadmin"},
		paypal:      "pay@tradesense.io",
	}
	app2 := newTestApp(t, api2)
	_, cookie2 := do(t, app2, fiber.MethodPost, "/login", map[string]string{"email": "s@x", "password": "p"}, "")
	resp, _ = do(t, app2, fiber.MethodGet, "/superadmin/settings", nil, cookie2)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "pay@tradesense.io", decode(t, resp)["paypal_email"])
}

func TestTradeUsesPolledPriceWithSlippage(t *testing.T) {
	api := &stubPlatform{
		loginResult: platform.LoginResult{UserID: "7", Role: "user"},
		tradeResult: platform.TradeResult{CurrentEquity: 50100, Status: "active"},
	}
	app := newTestApp(t, api)

	_, cookie := do(t, app, fiber.MethodPost, "/login", map[string]string{"email": "u@x", "password": "p"}, "")
	resp, _ := do(t, app, fiber.MethodPost, "/dashboard/trade", map[string]any{
		"symbol": "BTC-USD", "type": "buy", "quantity": 2,
	}, cookie)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decode(t, resp)
	assert.Equal(t, 64000.0, body["open_price"])
	closePrice := body["close_price"].(float64)
	assert.InDelta(t, 64000.0, closePrice, 64000*0.001+1e-9)
	assert.NotEqual(t, 64000.0, closePrice)
	assert.Equal(t, 50100.0, body["current_equity"])

	assert.Equal(t, 64000.0, api.tradeReq.OpenPrice)
	assert.Equal(t, 2, api.tradeReq.Quantity)
}

func TestTradeRejectsBadQuantity(t *testing.T) {
	api := &stubPlatform{loginResult: platform.LoginResult{UserID: "7", Role: "user"}}
	app := newTestApp(t, api)

	_, cookie := do(t, app, fiber.MethodPost, "/login", map[string]string{"email": "u@x", "password": "p"}, "")
	resp, _ := do(t, app, fiber.MethodPost, "/dashboard/trade", map[string]any{
		"symbol": "BTC-USD", "type": "buy", "quantity": 0,
	}, cookie)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Quantité invalide", decode(t, resp)["error"])
}

func TestBuyChallengeFailureKeepsStoredID(t *testing.T) {
	api := &stubPlatform{
		loginResult:  platform.LoginResult{UserID: "7", Role: "user"},
		challengeErr: &platform.APIError{Status: 500, Message: "down"},
	}
	app := newTestApp(t, api)

	_, cookie := do(t, app, fiber.MethodPost, "/login", map[string]string{"email": "u@x", "password": "p"}, "")
	resp, _ := do(t, app, fiber.MethodPost, "/challenge/buy", map[string]string{"plan_type": "pro"}, cookie)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decode(t, resp)
	assert.Equal(t, false, body["purchased"])
	assert.Equal(t, float64(1), body["challenge_id"])
}

func TestLogoutKeepsLanguage(t *testing.T) {
	api := &stubPlatform{loginResult: platform.LoginResult{UserID: "7", Role: "user"}}
	app := newTestApp(t, api)

	_, cookie := do(t, app, fiber.MethodPost, "/login", map[string]string{"email": "u@x", "password": "p"}, "")
	resp, _ := do(t, app, fiber.MethodPost, "/lang", map[string]string{"lang": "ar"}, cookie)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "rtl", decode(t, resp)["dir"])

	resp, _ = do(t, app, fiber.MethodPost, "/logout", nil, cookie)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, _ = do(t, app, fiber.MethodGet, "/session", nil, cookie)
	body := decode(t, resp)
	assert.Equal(t, false, body["logged_in"])
	assert.Equal(t, "ar", body["lang"])
}
