package challenge_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradesense/tradesense/internal/account"
	"github.com/tradesense/tradesense/internal/challenge"
	"github.com/tradesense/tradesense/internal/logging"
)

func buyApp(t *testing.T) (*fiber.App, *account.User) {
	t.Helper()

	accounts := account.NewMemoryRepository()
	user := &account.User{Username: "alice", Email: "a@tradesense.io", Role: account.RoleUser}
	require.NoError(t, accounts.Create(context.Background(), user))

	svc := challenge.NewService(challenge.NewMemoryRepository(), nil, logging.Discard())
	h := challenge.NewHandler(svc, accounts, logging.Discard())

	app := fiber.New()
	app.Post("/api/buy-challenge", h.Buy)
	return app, user
}

func postBuy(t *testing.T, app *fiber.App, body map[string]any) (*http.Response, map[string]any) {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(fiber.MethodPost, "/api/buy-challenge", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp, out
}

func TestBuyCreatesChallenge(t *testing.T) {
	app, user := buyApp(t)

	resp, body := postBuy(t, app, map[string]any{"user_id": user.ID, "plan_type": "pro"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, "pro", body["plan_type"])
	assert.Equal(t, 25000.0, body["start_balance"])
	assert.NotZero(t, body["challenge_id"])
}

func TestBuyUnknownUserReturns404(t *testing.T) {
	app, _ := buyApp(t)

	resp, body := postBuy(t, app, map[string]any{"user_id": 999, "plan_type": "starter"})
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Utilisateur introuvable", body["error"])
}

func TestBuyMissingUserIDReturns400(t *testing.T) {
	app, _ := buyApp(t)

	resp, body := postBuy(t, app, map[string]any{"plan_type": "starter"})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Champs manquants", body["error"])
}
