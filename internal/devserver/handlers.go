package devserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/greenbasket/storefront/internal/domain"
)

// cartItemDTO adds the derived subtotal the browser client expects on every
// cart item.
type cartItemDTO struct {
	domain.CartLine
	Subtotal decimal.Decimal `json:"subtotal"`
}

func cartItems(lines []domain.CartLine) []cartItemDTO {
	items := make([]cartItemDTO, 0, len(lines))
	for _, l := range lines {
		items = append(items, cartItemDTO{CartLine: l, Subtotal: l.Subtotal()})
	}
	return items
}

type loginRequestDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type addItemRequestDTO struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

type updateQuantityRequestDTO struct {
	Quantity int `json:"quantity"`
}

type createIntentRequestDTO struct {
	OrderID int64 `json:"orderId"`
}

type confirmPaymentRequestDTO struct {
	PaymentIntentID string `json:"paymentIntentId"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Email == "" || req.Password == "" {
		s.respondError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	s.mu.Lock()
	id, ok := s.users[req.Email]
	if !ok {
		id = s.nextUser
		s.nextUser++
		s.users[req.Email] = id
	}
	s.mu.Unlock()

	// an opaque demo token; any bearer token is accepted afterwards
	token := "dev-" + uuid.NewString()
	s.respondJSON(w, http.StatusOK, "Login successful", map[string]any{
		"token": token,
		"id":    id,
		"email": req.Email,
		"role":  "USER",
	})
}

func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	products := append([]domain.Product(nil), s.products...)
	s.mu.Unlock()
	s.respondJSON(w, http.StatusOK, "OK", products)
}

func (s *Server) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		s.respondError(w, http.StatusBadRequest, "product id must be a positive integer")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.products {
		if p.ID == id {
			s.respondJSON(w, http.StatusOK, "OK", p)
			return
		}
	}
	s.respondError(w, http.StatusNotFound, fmt.Sprintf("Product not found with ID: %d", id))
}

func (s *Server) handleGetCart(w http.ResponseWriter, r *http.Request) {
	token := tokenFrom(r.Context())

	s.mu.Lock()
	lines := append([]domain.CartLine(nil), s.carts[token]...)
	s.mu.Unlock()

	s.respondJSON(w, http.StatusOK, "OK", map[string]any{"items": cartItems(lines)})
}

func (s *Server) handleAddItem(w http.ResponseWriter, r *http.Request) {
	token := tokenFrom(r.Context())

	var req addItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.ProductID <= 0 {
		s.respondError(w, http.StatusBadRequest, "productId must be positive")
		return
	}
	if req.Quantity <= 0 || req.Quantity > 99 {
		s.respondError(w, http.StatusBadRequest, "quantity must be between 1 and 99")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var product *domain.Product
	for i := range s.products {
		if s.products[i].ID == req.ProductID {
			product = &s.products[i]
			break
		}
	}
	if product == nil {
		s.respondError(w, http.StatusNotFound, fmt.Sprintf("Product not found with ID: %d", req.ProductID))
		return
	}

	lines := s.carts[token]
	for i := range lines {
		if lines[i].ProductID == req.ProductID {
			lines[i].Quantity += req.Quantity
			s.respondJSON(w, http.StatusCreated, "Item added", map[string]any{"items": cartItems(lines)})
			return
		}
	}
	lines = append(lines, domain.CartLine{
		LineID:    s.nextLine,
		ProductID: product.ID,
		Name:      product.Name,
		UnitPrice: product.Price,
		Quantity:  req.Quantity,
		ImageRef:  product.ImageURL,
	})
	s.nextLine++
	s.carts[token] = lines
	s.respondJSON(w, http.StatusCreated, "Item added", map[string]any{"items": cartItems(lines)})
}

func (s *Server) handleUpdateQuantity(w http.ResponseWriter, r *http.Request) {
	token := tokenFrom(r.Context())

	lineID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || lineID <= 0 {
		s.respondError(w, http.StatusBadRequest, "cart item id must be a positive integer")
		return
	}

	var req updateQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Quantity <= 0 || req.Quantity > 99 {
		s.respondError(w, http.StatusBadRequest, "quantity must be between 1 and 99")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	lines := s.carts[token]
	for i := range lines {
		if lines[i].LineID == lineID {
			lines[i].Quantity = req.Quantity
			s.respondJSON(w, http.StatusOK, "Quantity updated", map[string]any{"items": cartItems(lines)})
			return
		}
	}
	s.respondError(w, http.StatusNotFound, fmt.Sprintf("Cart item not found with ID: %d", lineID))
}

func (s *Server) handleRemoveItem(w http.ResponseWriter, r *http.Request) {
	token := tokenFrom(r.Context())

	lineID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || lineID <= 0 {
		s.respondError(w, http.StatusBadRequest, "cart item id must be a positive integer")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	lines := s.carts[token]
	for i := range lines {
		if lines[i].LineID == lineID {
			s.carts[token] = append(lines[:i], lines[i+1:]...)
			s.respondJSON(w, http.StatusOK, "Item removed", map[string]any{"items": cartItems(s.carts[token])})
			return
		}
	}
	s.respondError(w, http.StatusNotFound, fmt.Sprintf("Cart item not found with ID: %d", lineID))
}

func (s *Server) handleClearCart(w http.ResponseWriter, r *http.Request) {
	token := tokenFrom(r.Context())

	s.mu.Lock()
	delete(s.carts, token)
	s.mu.Unlock()

	s.respondJSON(w, http.StatusOK, "Cart cleared", nil)
}

func (s *Server) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	token := tokenFrom(r.Context())

	var details domain.ShippingDetails
	if err := json.NewDecoder(r.Body).Decode(&details); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := details.Validate(); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.carts[token]
	if len(lines) == 0 {
		s.respondError(w, http.StatusBadRequest, "Cart is empty")
		return
	}

	snap := domain.CartSnapshot{Lines: append([]domain.CartLine(nil), lines...)}
	order := domain.Order{
		ID:        s.nextOrder,
		Status:    domain.OrderStatusCreated,
		Total:     snap.Total(),
		Items:     snap.Lines,
		CreatedAt: time.Now().UTC(),
	}
	s.nextOrder++
	s.orders[order.ID] = &orderRecord{Order: order, Shipping: details}

	s.logger.Info("order created",
		zap.Int64("order_id", order.ID),
		zap.Int("items", len(order.Items)))
	s.respondJSON(w, http.StatusCreated, "Order placed", map[string]any{"id": order.ID})
}

func (s *Server) handleListOrders(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	orders := make([]domain.Order, 0, len(s.orders))
	for _, rec := range s.orders {
		orders = append(orders, rec.Order)
	}
	s.mu.Unlock()

	s.respondJSON(w, http.StatusOK, "OK", orders)
}

func (s *Server) handleCreateIntent(w http.ResponseWriter, r *http.Request) {
	var req createIntentRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.orders[req.OrderID]
	if !ok {
		s.respondError(w, http.StatusNotFound, fmt.Sprintf("Order not found with ID: %d", req.OrderID))
		return
	}
	rec.Order.Status = domain.OrderStatusAwaitingPayment

	// mock intent: the secret shape is the mock/live discriminator
	secret := fmt.Sprintf("%s_secret_%d", domain.MockSecretPrefix, req.OrderID)
	s.respondJSON(w, http.StatusOK, "Payment Intent created", map[string]string{"clientSecret": secret})
}

func (s *Server) handleConfirmPayment(w http.ResponseWriter, r *http.Request) {
	var req confirmPaymentRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	// expecting pi_mock_<orderId>_<timestamp>
	parts := strings.Split(req.PaymentIntentID, "_")
	if len(parts) < 3 || parts[0] != "pi" || parts[1] != "mock" {
		s.respondError(w, http.StatusBadRequest, "Invalid mock intent ID")
		return
	}
	orderID, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid mock intent ID")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.orders[orderID]
	if !ok {
		s.respondError(w, http.StatusBadRequest, fmt.Sprintf("Order not found with ID: %d", orderID))
		return
	}
	rec.Order.Status = domain.OrderStatusPaid
	rec.PaymentID = req.PaymentIntentID

	s.logger.Info("payment confirmed",
		zap.Int64("order_id", orderID),
		zap.String("payment_id", req.PaymentIntentID))
	s.respondJSON(w, http.StatusOK, "Payment confirmed and Order updated", "Success")
}
