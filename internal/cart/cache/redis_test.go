package cache

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/fjod/go_storefront/internal/domain"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestRedis creates a miniredis server and returns a RedisCache instance
func setupTestRedis(t *testing.T) (*RedisCache, *miniredis.Miniredis, func()) {
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	c := NewRedisCache(client)

	cleanup := func() {
		client.Close()
		mr.Close()
	}

	return c, mr, cleanup
}

func TestGet_Success(t *testing.T) {
	c, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	ctx := context.Background()
	ownerID := "shopper-1"

	cart := &domain.Cart{
		OwnerID: ownerID,
		Items: []domain.CartItem{
			{ProductID: "1", Name: "Wireless Headphones", Price: 79.99, Quantity: 2},
			{ProductID: "3", Name: "Portable Speaker", Price: 49.99, Quantity: 1},
		},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	cartJSON, _ := json.Marshal(cart)
	mr.Set(cacheKey(ownerID), string(cartJSON))

	result, err := c.Get(ctx, ownerID)
	require.NoError(t, err)
	assert.Equal(t, ownerID, result.OwnerID)
	assert.Len(t, result.Items, 2)
	assert.Equal(t, "1", result.Items[0].ProductID)
	assert.InDelta(t, 79.99, result.Items[0].Price, 1e-9)
}

func TestGet_CacheMiss(t *testing.T) {
	c, _, cleanup := setupTestRedis(t)
	defer cleanup()

	result, err := c.Get(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, ErrCacheMiss)
	assert.Nil(t, result)
}

func TestGet_InvalidJSON(t *testing.T) {
	c, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	ownerID := "shopper-1"
	require.NoError(t, mr.Set(cacheKey(ownerID), `{"owner`))

	_, err := c.Get(context.Background(), ownerID)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrCacheMiss)
}

func TestSet_ThenGet(t *testing.T) {
	c, _, cleanup := setupTestRedis(t)
	defer cleanup()

	ctx := context.Background()
	ownerID := "shopper-1"
	cart := &domain.Cart{
		OwnerID: ownerID,
		Items:   []domain.CartItem{{ProductID: "2", Price: 199.99, Quantity: 1}},
	}

	require.NoError(t, c.Set(ctx, ownerID, cart))

	result, err := c.Get(ctx, ownerID)
	require.NoError(t, err)
	assert.Len(t, result.Items, 1)
	assert.Equal(t, 1, result.Items[0].Quantity)
}

func TestSet_AppliesTTL(t *testing.T) {
	c, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	ownerID := "shopper-1"
	require.NoError(t, c.Set(context.Background(), ownerID, &domain.Cart{OwnerID: ownerID}))

	ttl := mr.TTL(cacheKey(ownerID))
	assert.GreaterOrEqual(t, ttl, 15*time.Minute)
	assert.LessOrEqual(t, ttl, 20*time.Minute)
}

func TestDelete(t *testing.T) {
	c, _, cleanup := setupTestRedis(t)
	defer cleanup()

	ctx := context.Background()
	ownerID := "shopper-1"
	require.NoError(t, c.Set(ctx, ownerID, &domain.Cart{OwnerID: ownerID}))

	require.NoError(t, c.Delete(ctx, ownerID))

	_, err := c.Get(ctx, ownerID)
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestDelete_MissingKeyIsNoError(t *testing.T) {
	c, _, cleanup := setupTestRedis(t)
	defer cleanup()

	assert.NoError(t, c.Delete(context.Background(), "never-cached"))
}
