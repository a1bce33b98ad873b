// Package projection holds the client-side read model of the storefront
// API. It mirrors the server's cart, catalog and receipt state for
// presentation: a cache with explicit invalidation on every mutation
// response, never a source of truth of its own.
package projection

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/fjod/go_storefront/internal/domain"
	"github.com/sony/gobreaker/v2"
)

// ErrBusy is returned when a mutation is requested while another one is
// still in flight. The projection refuses to pipeline mutations so a
// stale response can never overwrite a newer one.
var ErrBusy = errors.New("another operation is in flight")

// State is a point-in-time copy of the projection for rendering.
type State struct {
	Products []domain.Product
	Cart     []domain.CartItem
	Total    float64
	Receipt  *domain.Receipt
	Loading  bool
	Err      string
}

type apiResponse struct {
	status int
	body   []byte
}

type cartPayload struct {
	Items []domain.CartItem `json:"items"`
	Total float64           `json:"total"`
}

type checkoutPayload struct {
	Success bool            `json:"success"`
	Receipt *domain.Receipt `json:"receipt"`
}

type errorPayload struct {
	Error string `json:"error"`
}

type Store struct {
	baseURL string
	client  *http.Client
	breaker *gobreaker.CircuitBreaker[apiResponse]

	mu       sync.Mutex
	products []domain.Product
	cart     []domain.CartItem
	total    float64
	receipt  *domain.Receipt
	loading  bool
	lastErr  string
}

func NewStore(baseURL string) *Store {
	settings := gobreaker.Settings{
		Name:    "storefront-api",
		Timeout: 10 * time.Second,
	}
	return &Store{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
		breaker: gobreaker.NewCircuitBreaker[apiResponse](settings),
	}
}

// Snapshot returns a copy of the current state. The returned slices are
// detached from the store and safe to hold across later mutations.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return State{
		Products: append([]domain.Product(nil), s.products...),
		Cart:     append([]domain.CartItem(nil), s.cart...),
		Total:    s.total,
		Receipt:  s.receipt,
		Loading:  s.loading,
		Err:      s.lastErr,
	}
}

func (s *Store) FetchProducts(ctx context.Context) error {
	resp, err := s.do(ctx, http.MethodGet, "/api/products", nil)
	if err != nil {
		s.setError("Failed to load products")
		return err
	}

	var products []domain.Product
	if err := json.Unmarshal(resp.body, &products); err != nil {
		s.setError("Failed to load products")
		return fmt.Errorf("decode products: %w", err)
	}

	s.mu.Lock()
	s.products = products
	s.lastErr = ""
	s.mu.Unlock()
	return nil
}

func (s *Store) FetchCart(ctx context.Context) error {
	resp, err := s.do(ctx, http.MethodGet, "/api/cart", nil)
	if err != nil {
		s.setError("Failed to load cart")
		return err
	}
	return s.applyCart(resp.body, "Failed to load cart")
}

// AddToCart posts an additive delta for productID. While the request is
// in flight all other mutations are rejected with ErrBusy.
func (s *Store) AddToCart(ctx context.Context, productID string, quantity int) error {
	if err := s.begin(); err != nil {
		return err
	}
	defer s.end()

	body := map[string]interface{}{"productId": productID, "quantity": quantity}
	resp, err := s.do(ctx, http.MethodPost, "/api/cart", body)
	if err != nil {
		s.setError("Failed to add item to cart")
		return err
	}
	return s.applyCart(resp.body, "Failed to add item to cart")
}

// UpdateQuantity sets an absolute quantity for productID. Sending the
// target instead of a client-computed delta keeps a stale projection from
// corrupting the server cart.
func (s *Store) UpdateQuantity(ctx context.Context, productID string, quantity int) error {
	if err := s.begin(); err != nil {
		return err
	}
	defer s.end()

	body := map[string]interface{}{"quantity": quantity}
	resp, err := s.do(ctx, http.MethodPut, "/api/cart/"+productID, body)
	if err != nil {
		s.setError("Failed to update quantity")
		return err
	}
	return s.applyCart(resp.body, "Failed to update quantity")
}

func (s *Store) RemoveFromCart(ctx context.Context, productID string) error {
	if err := s.begin(); err != nil {
		return err
	}
	defer s.end()

	resp, err := s.do(ctx, http.MethodDelete, "/api/cart/"+productID, nil)
	if err != nil {
		s.setError("Failed to remove item from cart")
		return err
	}
	return s.applyCart(resp.body, "Failed to remove item from cart")
}

// Checkout submits the projection's current cart snapshot together with
// the customer identity, then replaces local cart state with the emptied
// server cart.
func (s *Store) Checkout(ctx context.Context, customerName, customerEmail string) error {
	if err := s.begin(); err != nil {
		return err
	}
	defer s.end()

	s.mu.Lock()
	items := append([]domain.CartItem(nil), s.cart...)
	s.mu.Unlock()

	body := map[string]interface{}{
		"cartItems":     items,
		"customerName":  customerName,
		"customerEmail": customerEmail,
	}
	resp, err := s.do(ctx, http.MethodPost, "/api/checkout", body)
	if err != nil {
		s.setError("Checkout failed")
		return err
	}

	var payload checkoutPayload
	if err := json.Unmarshal(resp.body, &payload); err != nil {
		s.setError("Checkout failed")
		return fmt.Errorf("decode receipt: %w", err)
	}

	s.mu.Lock()
	s.receipt = payload.Receipt
	s.cart = nil
	s.total = 0
	s.lastErr = ""
	s.mu.Unlock()
	return nil
}

func (s *Store) ClearReceipt() {
	s.mu.Lock()
	s.receipt = nil
	s.mu.Unlock()
}

func (s *Store) begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loading {
		return ErrBusy
	}
	s.loading = true
	s.lastErr = ""
	return nil
}

func (s *Store) end() {
	s.mu.Lock()
	s.loading = false
	s.mu.Unlock()
}

func (s *Store) setError(msg string) {
	s.mu.Lock()
	s.lastErr = msg
	s.mu.Unlock()
}

func (s *Store) applyCart(body []byte, errMsg string) error {
	var payload cartPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		s.setError(errMsg)
		return fmt.Errorf("decode cart: %w", err)
	}

	s.mu.Lock()
	s.cart = payload.Items
	s.total = payload.Total
	s.lastErr = ""
	s.mu.Unlock()
	return nil
}

// do runs one API request through the circuit breaker. Transport errors
// and 5xx responses count as breaker failures; 4xx responses are the
// caller's problem and pass through without tripping it.
func (s *Store) do(ctx context.Context, method, path string, body interface{}) (apiResponse, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return apiResponse{}, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	resp, err := s.breaker.Execute(func() (apiResponse, error) {
		req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, reader)
		if err != nil {
			return apiResponse{}, err
		}
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		httpResp, err := s.client.Do(req)
		if err != nil {
			return apiResponse{}, err
		}
		defer httpResp.Body.Close()

		data, err := io.ReadAll(httpResp.Body)
		if err != nil {
			return apiResponse{}, err
		}

		if httpResp.StatusCode >= http.StatusInternalServerError {
			return apiResponse{}, fmt.Errorf("server error: %s", serverMessage(data))
		}

		return apiResponse{status: httpResp.StatusCode, body: data}, nil
	})
	if err != nil {
		return apiResponse{}, err
	}

	if resp.status >= http.StatusBadRequest {
		return apiResponse{}, fmt.Errorf("request failed (%d): %s", resp.status, serverMessage(resp.body))
	}

	return resp, nil
}

func serverMessage(body []byte) string {
	var payload errorPayload
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
		return payload.Error
	}
	return "unexpected response"
}
