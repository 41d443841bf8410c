// Package devserver is an in-memory stand-in for the storefront backend. It
// implements the same HTTP contract the client consumes, good enough for
// local development and contract tests; it owns no durable state.
package devserver

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/greenbasket/storefront/internal/domain"
)

type Server struct {
	logger *zap.Logger

	mu        sync.Mutex
	products  []domain.Product
	users     map[string]int64             // email -> id
	carts     map[string][]domain.CartLine // keyed by bearer token
	orders    map[int64]*orderRecord
	nextUser  int64
	nextLine  int64
	nextOrder int64
}

type orderRecord struct {
	Order     domain.Order
	Shipping  domain.ShippingDetails
	PaymentID string
}

func New(logger *zap.Logger) *Server {
	// the browser client expects plain JSON numbers for prices
	decimal.MarshalJSONWithoutQuotes = true

	return &Server{
		logger:    logger,
		products:  seedProducts(),
		users:     make(map[string]int64),
		carts:     make(map[string][]domain.CartLine),
		orders:    make(map[int64]*orderRecord),
		nextUser:  1,
		nextLine:  1,
		nextOrder: 1,
	}
}

func (s *Server) Router() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Compress(5))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		s.respondJSON(w, http.StatusOK, "ok", nil)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/products", s.handleListProducts)
		r.Get("/products/{id}", s.handleGetProduct)
		r.Post("/auth/login", s.handleLogin)

		r.Group(func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Route("/cart", func(r chi.Router) {
				r.Get("/", s.handleGetCart)
				r.Post("/items", s.handleAddItem)
				r.Put("/items/{id}", s.handleUpdateQuantity)
				r.Delete("/items/{id}", s.handleRemoveItem)
				r.Delete("/clear", s.handleClearCart)
			})
			r.Post("/orders", s.handleCreateOrder)
			r.Get("/orders", s.handleListOrders)
			r.Post("/payments/create-intent", s.handleCreateIntent)
			r.Post("/payments/confirm", s.handleConfirmPayment)
		})
	})

	return r
}

type ctxKey int

const tokenKey ctxKey = iota

// requireAuth accepts any non-empty bearer token and scopes the cart to it.
// Real token validation is the production backend's job.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			s.respondError(w, http.StatusUnauthorized, "Authentication required")
			return
		}
		next.ServeHTTP(w, r.WithContext(withToken(r.Context(), token)))
	})
}

func withToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey, token)
}

func tokenFrom(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey).(string)
	return token
}

func bearerToken(r *http.Request) string {
	const prefix = "Bearer "
	auth := r.Header.Get("Authorization")
	if len(auth) > len(prefix) && auth[:len(prefix)] == prefix {
		return auth[len(prefix):]
	}
	return ""
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	body := map[string]any{"message": message, "data": data}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Warn("failed to encode response", zap.Error(err))
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, message, nil)
}
