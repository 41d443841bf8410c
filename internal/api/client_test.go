package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/greenbasket/storefront/internal/domain"
)

func respond(t *testing.T, w http.ResponseWriter, status int, message string, data any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(map[string]any{"message": message, "data": data})
	require.NoError(t, err)
}

func TestFetchCart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/cart", r.URL.Path)
		assert.Equal(t, "Bearer token-123", r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		respond(t, w, http.StatusOK, "OK", map[string]any{
			"items": []map[string]any{
				{"id": 11, "productId": 3, "productName": "Heirloom Tomatoes", "price": "4.25", "quantity": 2},
			},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, zap.NewNop())
	client.SetToken("token-123")

	snap, err := client.FetchCart(context.Background())
	require.NoError(t, err)
	require.Len(t, snap.Lines, 1)
	assert.Equal(t, int64(11), snap.Lines[0].LineID)
	assert.Equal(t, int64(3), snap.Lines[0].ProductID)
	assert.True(t, snap.Total().Equal(decimal.RequireFromString("8.50")))
}

func TestErrorCarriesBackendMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respond(t, w, http.StatusBadRequest, "Cart is empty", nil)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, zap.NewNop())
	_, err := client.CreateOrder(context.Background(), domain.ShippingDetails{})

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "Cart is empty", apiErr.Message)
}

func TestErrorOnUnreachableBackend(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	client := NewClient(srv.URL, zap.NewNop())
	err := client.AddItem(context.Background(), 1, 1)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 0, apiErr.StatusCode)
}

func TestCartMutationRequests(t *testing.T) {
	type seen struct {
		method, path, body string
	}
	var got seen
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		got = seen{method: r.Method, path: r.URL.Path, body: string(body)}
		respond(t, w, http.StatusOK, "OK", nil)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, zap.NewNop())
	ctx := context.Background()

	require.NoError(t, client.AddItem(ctx, 5, 2))
	assert.Equal(t, http.MethodPost, got.method)
	assert.Equal(t, "/cart/items", got.path)
	assert.JSONEq(t, `{"productId":5,"quantity":2}`, got.body)

	require.NoError(t, client.SetQuantity(ctx, 9, 3))
	assert.Equal(t, http.MethodPut, got.method)
	assert.Equal(t, "/cart/items/9", got.path)
	assert.JSONEq(t, `{"quantity":3}`, got.body)

	require.NoError(t, client.RemoveItem(ctx, 9))
	assert.Equal(t, http.MethodDelete, got.method)
	assert.Equal(t, "/cart/items/9", got.path)

	require.NoError(t, client.ClearCart(ctx))
	assert.Equal(t, http.MethodDelete, got.method)
	assert.Equal(t, "/cart/clear", got.path)
}

func TestCreateIntentDecodesKind(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respond(t, w, http.StatusOK, "Payment Intent created", map[string]string{
			"clientSecret": "pi_mock_secret_42",
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, zap.NewNop())
	intent, err := client.CreateIntent(context.Background(), 42)
	require.NoError(t, err)
	assert.True(t, intent.IsMock())
	assert.Equal(t, "pi_mock_secret_42", intent.ClientSecret)
}

func TestLoginInstallsToken(t *testing.T) {
	var sawAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/auth/login" {
			respond(t, w, http.StatusOK, "OK", map[string]any{
				"token": "opaque-token", "id": 12, "email": "jane@example.com", "role": "USER",
			})
			return
		}
		sawAuth = r.Header.Get("Authorization")
		respond(t, w, http.StatusOK, "OK", map[string]any{"items": []any{}})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, zap.NewNop())
	session, err := client.Login(context.Background(), "jane@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "12", session.UserRef)
	assert.Equal(t, "USER", session.Role)

	_, err = client.FetchCart(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer opaque-token", sawAuth)

	client.Logout()
	_, err = client.FetchCart(context.Background())
	require.NoError(t, err)
	assert.Empty(t, sawAuth)
}
