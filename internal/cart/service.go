package cart

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/fjod/go_storefront/internal/cart/cache"
	"github.com/fjod/go_storefront/internal/domain"
	"golang.org/x/sync/singleflight"
)

// ProductGetter resolves a product so a new cart row can snapshot its
// name, price and image at add time.
type ProductGetter interface {
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
}

type Service struct {
	repo    CartRepository
	cache   cache.CartCache
	catalog ProductGetter
	sfg     singleflight.Group // Prevents cache stampede

	mu     sync.Mutex
	owners map[string]*sync.Mutex
}

func NewService(repo CartRepository, cache cache.CartCache, catalog ProductGetter) *Service {
	return &Service{
		repo:    repo,
		cache:   cache,
		catalog: catalog,
		owners:  make(map[string]*sync.Mutex),
	}
}

// ownerLock serializes read-modify-write cycles per owner. Two concurrent
// mutations for the same owner must not both read quantity N and write N+1.
func (s *Service) ownerLock(ownerID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.owners[ownerID]
	if !ok {
		l = &sync.Mutex{}
		s.owners[ownerID] = l
	}
	return l
}

// GetCart returns the owner's cart, creating and persisting an empty one
// on first access. It never fails for a valid owner unless the store is
// unreachable.
func (s *Service) GetCart(ctx context.Context, ownerID string) (*domain.Cart, error) {
	// Use singleflight to prevent multiple concurrent cache misses for same key
	v, err, _ := s.sfg.Do(ownerID, func() (interface{}, error) {

		cart, err := s.cache.Get(ctx, ownerID)
		if err == nil {
			return cart, nil // cart is in cache
		}

		if !errors.Is(err, cache.ErrCacheMiss) {
			log.Printf("cache get error: %v \n", err) // log cache error but continue
		}

		cart, errGet := s.repo.GetCart(ctx, ownerID)
		if errGet != nil && errors.Is(errGet, ErrCartNotFound) {
			// Lazy creation is a mutation: it runs under the owner lock,
			// and EnsureCart never overwrites a cart that a concurrent
			// mutation created after our stale "not found" read. Re-read
			// afterwards so any such rows are returned, not dropped.
			l := s.ownerLock(ownerID)
			l.Lock()
			errEnsure := s.repo.EnsureCart(ctx, ownerID)
			l.Unlock()
			if errEnsure != nil {
				return nil, errEnsure
			}
			return s.repo.GetCart(ctx, ownerID)
		}
		if errGet != nil {
			return nil, errGet
		}

		// set cache
		go func() {
			errSet := s.cache.Set(context.Background(), ownerID, cart)
			if errSet != nil {
				log.Printf("cache set error: %v \n", errSet)
			}
		}()

		return cart, nil
	})

	if err != nil {
		return nil, err
	}

	return v.(*domain.Cart), nil
}

// AddItem merges quantity onto an existing row for the product, or appends
// a new row snapshotting the product's current name, price and image.
// Repeated adds grow quantity; they never refresh the snapshot.
func (s *Service) AddItem(ctx context.Context, ownerID, productID string, quantity int) (*domain.Cart, error) {
	if productID == "" {
		return nil, domain.Invalid("product id is required")
	}
	if quantity < 1 {
		return nil, domain.Invalid("quantity must be at least 1")
	}

	product, err := s.catalog.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	item := domain.CartItem{
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price,
		Quantity:  quantity,
		Image:     product.Image,
	}

	l := s.ownerLock(ownerID)
	l.Lock()
	defer l.Unlock()

	if err := s.repo.AddItem(ctx, ownerID, item); err != nil {
		log.Printf("repo add item error: %v \n", err)
		return nil, err
	}

	return s.afterMutation(ctx, ownerID)
}

// SetQuantity moves an existing row to an absolute quantity. The change is
// applied as a delta against the current value through the same increment
// path AddItem merging uses. A target below 1 removes the row; a product
// not already in the cart is ErrItemNotFound, never an implicit add.
func (s *Service) SetQuantity(ctx context.Context, ownerID, productID string, target int) (*domain.Cart, error) {
	if productID == "" {
		return nil, domain.Invalid("product id is required")
	}

	if target < 1 {
		return s.RemoveItem(ctx, ownerID, productID)
	}

	l := s.ownerLock(ownerID)
	l.Lock()
	defer l.Unlock()

	current, err := s.repo.GetCart(ctx, ownerID)
	if err != nil {
		if errors.Is(err, ErrCartNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}

	item := current.Item(productID)
	if item == nil {
		return nil, ErrItemNotFound
	}

	if delta := target - item.Quantity; delta != 0 {
		if err := s.repo.IncrementQuantity(ctx, ownerID, productID, delta); err != nil {
			log.Printf("repo update item quantity error: %v \n", err)
			return nil, err
		}
	}

	return s.afterMutation(ctx, ownerID)
}

// RemoveItem deletes the row for productID. Removing an absent item is a
// no-op, not an error.
func (s *Service) RemoveItem(ctx context.Context, ownerID, productID string) (*domain.Cart, error) {
	if productID == "" {
		return nil, domain.Invalid("product id is required")
	}

	l := s.ownerLock(ownerID)
	l.Lock()
	defer l.Unlock()

	if err := s.repo.RemoveItem(ctx, ownerID, productID); err != nil {
		log.Printf("repo remove item error: %v \n", err)
		return nil, err
	}

	return s.afterMutation(ctx, ownerID)
}

// Clear empties the cart's items. The cart document itself survives.
func (s *Service) Clear(ctx context.Context, ownerID string) error {
	l := s.ownerLock(ownerID)
	l.Lock()
	defer l.Unlock()

	if err := s.repo.ClearCart(ctx, ownerID); err != nil {
		log.Printf("repo clear cart error: %v \n", err)
		return err
	}

	s.invalidateCache(ownerID)
	return nil
}

// afterMutation invalidates the cache and re-reads the authoritative cart
// so callers always see the state they just produced.
func (s *Service) afterMutation(ctx context.Context, ownerID string) (*domain.Cart, error) {
	s.invalidateCache(ownerID)

	cart, err := s.repo.GetCart(ctx, ownerID)
	if err != nil {
		if errors.Is(err, ErrCartNotFound) {
			return &domain.Cart{OwnerID: ownerID, Items: []domain.CartItem{}}, nil
		}
		return nil, err
	}
	return cart, nil
}

func (s *Service) invalidateCache(ownerID string) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.cache.Delete(ctx, ownerID); err != nil {
		log.Printf("cache invalidate error: %v \n", err)
	}
}
