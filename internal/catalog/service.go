package catalog

import (
	"context"
	"fmt"
	"log"

	"github.com/fjod/go_storefront/internal/domain"
)

// Service exposes read access to the catalog. Products are immutable
// after seeding; no mutation operations are offered to callers.
type Service struct {
	repo ProductRepository
}

func NewService(repo ProductRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.repo.ListProducts(ctx)
}

func (s *Service) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	if id == "" {
		return nil, ErrProductNotFound
	}
	return s.repo.GetProduct(ctx, id)
}

// Seed inserts the reference catalog if and only if the store is empty.
// Running it again after any products exist is a no-op, so restarts never
// duplicate catalog rows.
func (s *Service) Seed(ctx context.Context) error {
	count, err := s.repo.CountProducts(ctx)
	if err != nil {
		return fmt.Errorf("failed to check catalog: %w", err)
	}

	if count > 0 {
		return nil
	}

	products := ReferenceCatalog()
	if err := s.repo.InsertProducts(ctx, products); err != nil {
		return fmt.Errorf("failed to seed catalog: %w", err)
	}

	log.Printf("seeded catalog with %d products", len(products))
	return nil
}
