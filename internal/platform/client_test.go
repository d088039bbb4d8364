package platform_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradesense/tradesense/internal/platform"
)

func TestLogin(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if body["email"] == "admin@tradesense.io" {
			json.NewEncoder(w).Encode(map[string]any{"user_id": 7, "role": "Admin"})
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"error": "identifiants invalides"})
	}))
	defer srv.Close()

	c := platform.New(srv.URL)

	res, err := c.Login(context.Background(), "admin@tradesense.io", "pw")
	require.NoError(t, err)
	assert.Equal(t, "7", res.UserID)
	assert.Equal(t, "admin", res.Role)

	_, err = c.Login(context.Background(), "nobody@tradesense.io", "pw")
	assert.ErrorIs(t, err, platform.ErrInvalidCredentials)
}

func TestLoginWithoutUserIDIsRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"message": "ok"})
	}))
	defer srv.Close()

	_, err := platform.New(srv.URL).Login(context.Background(), "a@b.c", "pw")
	assert.ErrorIs(t, err, platform.ErrInvalidCredentials)
}

func TestRegisterErrorMapping(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		switch body["email"] {
		case "taken@tradesense.io":
			w.WriteHeader(http.StatusConflict)
			json.NewEncoder(w).Encode(map[string]string{"error": "Email déjà utilisé"})
		case "":
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"error": "Champs manquants"})
		default:
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(map[string]string{"message": "ok"})
		}
	}))
	defer srv.Close()

	c := platform.New(srv.URL)

	require.NoError(t, c.Register(context.Background(), "new", "new@tradesense.io", "pw"))

	err := c.Register(context.Background(), "dup", "taken@tradesense.io", "pw")
	var conflict *platform.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "Email déjà utilisé", conflict.Message)

	err = c.Register(context.Background(), "bad", "", "pw")
	assert.ErrorIs(t, err, platform.ErrMissingFields)
}

func TestListUsersAcceptsBothShapes(t *testing.T) {
	bare := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]any{
			{"id": 1, "name": "alice", "email": "a@tradesense.io", "role": "user", "status": "active"},
		})
	}))
	defer bare.Close()

	users, err := platform.New(bare.URL).ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "alice", users[0].Name)

	wrapped := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"users": []map[string]any{
			{"id": 2, "name": "bob", "email": "b@tradesense.io", "role": "admin", "status": "failed"},
		}})
	}))
	defer wrapped.Close()

	users, err = platform.New(wrapped.URL).ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "bob", users[0].Name)
}

func TestListUsersUnreachable(t *testing.T) {
	c := platform.New("http://127.0.0.1:1")
	_, err := c.ListUsers(context.Background())
	assert.ErrorIs(t, err, platform.ErrUnavailable)
}

func TestBuyChallenge(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "standard", body["plan_type"])
		json.NewEncoder(w).Encode(map[string]any{"challenge_id": 42})
	}))
	defer srv.Close()

	id, err := platform.New(srv.URL).BuyChallenge(context.Background(), "7", "standard")
	require.NoError(t, err)
	assert.Equal(t, 42, id)
}

func TestSubmitTradeSurfacesServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "Quantité invalide"})
	}))
	defer srv.Close()

	_, err := platform.New(srv.URL).SubmitTrade(context.Background(), platform.TradeRequest{
		ChallengeID: 1, Symbol: "BTC-USD", Type: "buy", Quantity: 0,
	})
	var apiErr *platform.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Quantité invalide", apiErr.Message)
}

func TestSubmitTradeReturnsEquity(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"challenge": map[string]any{"current_equity": 50123.5, "status": "active"},
		})
	}))
	defer srv.Close()

	res, err := platform.New(srv.URL).SubmitTrade(context.Background(), platform.TradeRequest{
		ChallengeID: 1, Symbol: "BTC-USD", Type: "buy", Quantity: 1,
		OpenPrice: 50000, ClosePrice: 50123.5,
	})
	require.NoError(t, err)
	assert.Equal(t, 50123.5, res.CurrentEquity)
	assert.Equal(t, "active", res.Status)
}

func TestQuote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/price/BTC-USD", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]float64{"price": 65000})
	}))
	defer srv.Close()

	price, err := platform.New(srv.URL).Quote(context.Background(), "BTC-USD")
	require.NoError(t, err)
	assert.Equal(t, 65000.0, price)
}

func TestQuoteFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := platform.New(srv.URL).Quote(context.Background(), "BTC-USD")
	var apiErr *platform.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.False(t, errors.Is(err, platform.ErrUnavailable))
}
