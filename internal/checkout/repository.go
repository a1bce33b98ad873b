package checkout

import (
	"context"
	"errors"

	"github.com/fjod/go_storefront/internal/domain"
)

var ErrReceiptNotFound = errors.New("receipt not found")

// ReceiptRepository is append-only: receipts are written once and never
// updated or deleted.
type ReceiptRepository interface {
	InsertReceipt(ctx context.Context, receipt *domain.Receipt) error
	GetReceipt(ctx context.Context, id string) (*domain.Receipt, error)
}
