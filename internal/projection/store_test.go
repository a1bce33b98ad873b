package projection

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/fjod/go_storefront/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAPI is a minimal in-memory storefront backend.
type fakeAPI struct {
	mu    sync.Mutex
	items []domain.CartItem

	delay    time.Duration
	failWith int // when non-zero, every request returns this status
}

func (f *fakeAPI) handler() http.Handler {
	mux := http.NewServeMux()

	respond := func(w http.ResponseWriter, v interface{}) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(v)
	}

	cartBody := func() map[string]interface{} {
		f.mu.Lock()
		defer f.mu.Unlock()
		return map[string]interface{}{
			"items": f.items,
			"total": domain.Total(f.items),
		}
	}

	guard := func(w http.ResponseWriter) bool {
		if f.delay > 0 {
			time.Sleep(f.delay)
		}
		if f.failWith != 0 {
			w.WriteHeader(f.failWith)
			respond(w, map[string]string{"error": "boom"})
			return false
		}
		return true
	}

	mux.HandleFunc("GET /api/products", func(w http.ResponseWriter, r *http.Request) {
		if !guard(w) {
			return
		}
		respond(w, []domain.Product{{ID: "1", Name: "Wireless Headphones", Price: 79.99}})
	})

	mux.HandleFunc("GET /api/cart", func(w http.ResponseWriter, r *http.Request) {
		if !guard(w) {
			return
		}
		respond(w, cartBody())
	})

	mux.HandleFunc("POST /api/cart", func(w http.ResponseWriter, r *http.Request) {
		if !guard(w) {
			return
		}
		var req struct {
			ProductID string `json:"productId"`
			Quantity  int    `json:"quantity"`
		}
		json.NewDecoder(r.Body).Decode(&req)

		f.mu.Lock()
		merged := false
		for i := range f.items {
			if f.items[i].ProductID == req.ProductID {
				f.items[i].Quantity += req.Quantity
				merged = true
				break
			}
		}
		if !merged {
			f.items = append(f.items, domain.CartItem{ProductID: req.ProductID, Price: 79.99, Quantity: req.Quantity})
		}
		f.mu.Unlock()

		respond(w, cartBody())
	})

	mux.HandleFunc("DELETE /api/cart/{id}", func(w http.ResponseWriter, r *http.Request) {
		if !guard(w) {
			return
		}
		id := r.PathValue("id")
		f.mu.Lock()
		kept := f.items[:0]
		for _, item := range f.items {
			if item.ProductID != id {
				kept = append(kept, item)
			}
		}
		f.items = kept
		f.mu.Unlock()
		respond(w, cartBody())
	})

	mux.HandleFunc("PUT /api/cart/{id}", func(w http.ResponseWriter, r *http.Request) {
		if !guard(w) {
			return
		}
		var req struct {
			Quantity int `json:"quantity"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		id := r.PathValue("id")

		f.mu.Lock()
		for i := range f.items {
			if f.items[i].ProductID == id {
				f.items[i].Quantity = req.Quantity
			}
		}
		f.mu.Unlock()
		respond(w, cartBody())
	})

	mux.HandleFunc("POST /api/checkout", func(w http.ResponseWriter, r *http.Request) {
		if !guard(w) {
			return
		}
		var req struct {
			CartItems []domain.CartItem `json:"cartItems"`
		}
		json.NewDecoder(r.Body).Decode(&req)

		f.mu.Lock()
		f.items = nil
		f.mu.Unlock()

		respond(w, map[string]interface{}{
			"success": true,
			"receipt": domain.Receipt{
				ID:    "r-1",
				Items: req.CartItems,
				Total: domain.Total(req.CartItems),
			},
		})
	})

	return mux
}

func newTestStore(t *testing.T, api *fakeAPI) *Store {
	server := httptest.NewServer(api.handler())
	t.Cleanup(server.Close)
	return NewStore(server.URL)
}

func TestFetchProducts(t *testing.T) {
	store := newTestStore(t, &fakeAPI{})

	require.NoError(t, store.FetchProducts(context.Background()))

	state := store.Snapshot()
	require.Len(t, state.Products, 1)
	assert.Equal(t, "Wireless Headphones", state.Products[0].Name)
	assert.Empty(t, state.Err)
}

func TestAddToCart_UpdatesProjection(t *testing.T) {
	store := newTestStore(t, &fakeAPI{})
	ctx := context.Background()

	require.NoError(t, store.AddToCart(ctx, "1", 2))

	state := store.Snapshot()
	require.Len(t, state.Cart, 1)
	assert.Equal(t, 2, state.Cart[0].Quantity)
	assert.InDelta(t, 159.98, state.Total, 1e-9)
	assert.False(t, state.Loading)
}

func TestMutations_ReplaceStateWholesale(t *testing.T) {
	store := newTestStore(t, &fakeAPI{})
	ctx := context.Background()

	require.NoError(t, store.AddToCart(ctx, "1", 2))
	require.NoError(t, store.UpdateQuantity(ctx, "1", 5))

	state := store.Snapshot()
	assert.Equal(t, 5, state.Cart[0].Quantity)

	require.NoError(t, store.RemoveFromCart(ctx, "1"))
	state = store.Snapshot()
	assert.Empty(t, state.Cart)
	assert.InDelta(t, 0.0, state.Total, 1e-9)
}

func TestInFlightMutationIsExclusive(t *testing.T) {
	api := &fakeAPI{delay: 150 * time.Millisecond}
	store := newTestStore(t, api)

	started := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		close(started)
		done <- store.AddToCart(context.Background(), "1", 1)
	}()

	<-started
	time.Sleep(30 * time.Millisecond) // let the first request take the latch

	err := store.AddToCart(context.Background(), "1", 1)
	assert.ErrorIs(t, err, ErrBusy)

	require.NoError(t, <-done)
}

func TestCheckout_ClearsCartAndKeepsReceipt(t *testing.T) {
	store := newTestStore(t, &fakeAPI{})
	ctx := context.Background()

	require.NoError(t, store.AddToCart(ctx, "1", 2))
	require.NoError(t, store.Checkout(ctx, "Ann", "ann@example.com"))

	state := store.Snapshot()
	assert.Empty(t, state.Cart)
	require.NotNil(t, state.Receipt)
	assert.Equal(t, "r-1", state.Receipt.ID)
	assert.InDelta(t, 159.98, state.Receipt.Total, 1e-9)

	store.ClearReceipt()
	assert.Nil(t, store.Snapshot().Receipt)
}

func TestServerFailureSetsShortMessage(t *testing.T) {
	api := &fakeAPI{failWith: http.StatusInternalServerError}
	store := newTestStore(t, api)

	err := store.AddToCart(context.Background(), "1", 1)
	require.Error(t, err)

	state := store.Snapshot()
	assert.Equal(t, "Failed to add item to cart", state.Err)
	assert.False(t, state.Loading)
}

func TestValidationFailureDoesNotMutateState(t *testing.T) {
	api := &fakeAPI{failWith: http.StatusBadRequest}
	store := newTestStore(t, api)

	err := store.AddToCart(context.Background(), "1", 1)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrBusy)
	assert.Empty(t, store.Snapshot().Cart)
}
