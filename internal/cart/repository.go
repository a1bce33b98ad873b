package cart

import (
	"context"

	"github.com/fjod/go_storefront/internal/domain"
)

// CartRepository defines the interface for cart data operations.
// Consumers define this interface, not the MongoDB implementation.
type CartRepository interface {
	GetCart(ctx context.Context, ownerID string) (*domain.Cart, error)
	// EnsureCart creates an empty cart document for the owner if none
	// exists. It never overwrites an existing cart, so it is safe to
	// call on a stale "not found" read.
	EnsureCart(ctx context.Context, ownerID string) error
	// AddItem merges by incrementing the quantity of an existing row for
	// the same product, preserving its snapshot fields; otherwise it
	// appends the row, creating the cart document if needed.
	AddItem(ctx context.Context, ownerID string, item domain.CartItem) error
	// IncrementQuantity adds delta (possibly negative) to an existing
	// row's quantity. Returns ErrItemNotFound if the row is absent.
	IncrementQuantity(ctx context.Context, ownerID, productID string, delta int) error
	RemoveItem(ctx context.Context, ownerID, productID string) error
	ClearCart(ctx context.Context, ownerID string) error
	CreateIndexes(ctx context.Context) error
}
