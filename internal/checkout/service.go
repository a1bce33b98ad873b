package checkout

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/fjod/go_storefront/internal/domain"
	"github.com/google/uuid"
)

// CartClearer empties an owner's cart after a successful checkout.
type CartClearer interface {
	Clear(ctx context.Context, ownerID string) error
}

// EventPublisher announces completed checkouts to interested consumers.
type EventPublisher interface {
	PublishCheckoutCompleted(ctx context.Context, receipt *domain.Receipt) error
}

type Service struct {
	repo   ReceiptRepository
	carts  CartClearer
	events EventPublisher // nil when no brokers are configured
}

func NewService(repo ReceiptRepository, carts CartClearer, events EventPublisher) *Service {
	return &Service{
		repo:   repo,
		carts:  carts,
		events: events,
	}
}

// Checkout converts the supplied line items into an immutable receipt and
// empties the owner's cart. The items are the caller's snapshot, not a
// re-read of the live cart; a diverged client checks out what it sees.
//
// Once the receipt is written it is final. Cart clearing and event
// publication run best-effort afterwards; their failure leaves a stale
// cart behind but never rolls back the receipt. Both are safe to retry.
func (s *Service) Checkout(ctx context.Context, ownerID string, items []domain.CartItem, customerName, customerEmail string) (*domain.Receipt, error) {
	if len(items) == 0 {
		return nil, domain.Invalid("cart is empty")
	}
	if strings.TrimSpace(customerName) == "" {
		return nil, domain.Invalid("customer name is required")
	}
	email := strings.TrimSpace(customerEmail)
	if email == "" {
		return nil, domain.Invalid("customer email is required")
	}
	if !strings.Contains(email, "@") {
		return nil, domain.Invalid("customer email is invalid")
	}
	for _, item := range items {
		if item.ProductID == "" || item.Quantity < 1 {
			return nil, domain.Invalid("cart contains an invalid item")
		}
	}

	receipt := &domain.Receipt{
		ID:            uuid.NewString(),
		OwnerID:       ownerID,
		Items:         items,
		Total:         domain.Total(items),
		CustomerName:  customerName,
		CustomerEmail: email,
		Timestamp:     time.Now(),
	}

	if err := s.repo.InsertReceipt(ctx, receipt); err != nil {
		return nil, err
	}

	if err := s.carts.Clear(ctx, ownerID); err != nil {
		log.Printf("failed to clear cart after checkout %s: %v \n", receipt.ID, err)
	}

	if s.events != nil {
		if err := s.events.PublishCheckoutCompleted(ctx, receipt); err != nil {
			log.Printf("failed to publish checkout event %s: %v \n", receipt.ID, err)
		}
	}

	return receipt, nil
}

func (s *Service) GetReceipt(ctx context.Context, id string) (*domain.Receipt, error) {
	if id == "" {
		return nil, ErrReceiptNotFound
	}
	return s.repo.GetReceipt(ctx, id)
}
