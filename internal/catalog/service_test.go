package catalog

import (
	"context"
	"sync"
	"testing"

	"github.com/fjod/go_storefront/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockRepository struct {
	m        sync.RWMutex
	products []domain.Product
	err      error
}

func (m *mockRepository) ListProducts(context.Context) ([]domain.Product, error) {
	m.m.RLock()
	defer m.m.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	return m.products, nil
}

func (m *mockRepository) GetProduct(_ context.Context, id string) (*domain.Product, error) {
	m.m.RLock()
	defer m.m.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.products {
		if m.products[i].ID == id {
			return &m.products[i], nil
		}
	}
	return nil, ErrProductNotFound
}

func (m *mockRepository) CountProducts(context.Context) (int64, error) {
	m.m.RLock()
	defer m.m.RUnlock()
	if m.err != nil {
		return 0, m.err
	}
	return int64(len(m.products)), nil
}

func (m *mockRepository) InsertProducts(_ context.Context, products []domain.Product) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	m.products = append(m.products, products...)
	return nil
}

func (m *mockRepository) CreateIndexes(context.Context) error {
	return nil
}

func TestSeed_EmptyStore(t *testing.T) {
	repo := &mockRepository{}
	service := NewService(repo)

	err := service.Seed(context.Background())
	require.NoError(t, err)

	products, err := service.ListProducts(context.Background())
	require.NoError(t, err)
	assert.Len(t, products, 8)
}

func TestSeed_Idempotent(t *testing.T) {
	repo := &mockRepository{}
	service := NewService(repo)

	require.NoError(t, service.Seed(context.Background()))
	require.NoError(t, service.Seed(context.Background()))

	products, err := service.ListProducts(context.Background())
	require.NoError(t, err)
	assert.Len(t, products, 8)
}

func TestSeed_NonEmptyStoreIsNoOp(t *testing.T) {
	repo := &mockRepository{
		products: []domain.Product{{ID: "x", Name: "Existing"}},
	}
	service := NewService(repo)

	require.NoError(t, service.Seed(context.Background()))

	products, err := service.ListProducts(context.Background())
	require.NoError(t, err)
	assert.Len(t, products, 1)
}

func TestGetProduct(t *testing.T) {
	repo := &mockRepository{}
	service := NewService(repo)
	require.NoError(t, service.Seed(context.Background()))

	product, err := service.GetProduct(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, "Wireless Headphones", product.Name)
	assert.InDelta(t, 79.99, product.Price, 1e-9)

	_, err = service.GetProduct(context.Background(), "999")
	assert.ErrorIs(t, err, ErrProductNotFound)

	_, err = service.GetProduct(context.Background(), "")
	assert.ErrorIs(t, err, ErrProductNotFound)
}
