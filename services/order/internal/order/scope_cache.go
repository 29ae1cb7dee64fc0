package order

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/appetiteclub/apt"
	"github.com/google/uuid"
)

// RestaurantScopeCache caches, per admin, the set of restaurant ids that
// admin referred. The Order service consults it before filtering orders
// so the visibility check never races the order query.
type RestaurantScopeCache struct {
	mu     sync.RWMutex
	scopes map[uuid.UUID]map[uuid.UUID]bool
	client *apt.ServiceClient
	logger apt.Logger
}

func NewRestaurantScopeCache(client *apt.ServiceClient, logger apt.Logger) *RestaurantScopeCache {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	return &RestaurantScopeCache{
		scopes: make(map[uuid.UUID]map[uuid.UUID]bool),
		client: client,
		logger: logger,
	}
}

// Warm loads the full restaurant directory and indexes it by referring
// admin. Safe to call again; it rebuilds the index in place.
func (c *RestaurantScopeCache) Warm(ctx context.Context) error {
	if c.client == nil {
		return nil
	}
	resp, err := c.client.List(ctx, "restaurants")
	if err != nil {
		return fmt.Errorf("failed to list restaurants: %w", err)
	}
	return c.ingestCollection(resp.Data)
}

// Ensure returns the permitted set for an admin, refreshing from the
// restaurant service when the admin is not cached yet. An admin with no
// referred restaurants gets an empty set, which the caller must honor as
// "sees nothing".
func (c *RestaurantScopeCache) Ensure(ctx context.Context, adminID uuid.UUID) (map[uuid.UUID]bool, error) {
	if adminID == uuid.Nil {
		return nil, fmt.Errorf("invalid admin id")
	}
	if scope, ok := c.Get(adminID); ok {
		return scope, nil
	}
	if err := c.Warm(ctx); err != nil {
		return nil, err
	}
	scope, ok := c.Get(adminID)
	if !ok {
		scope = map[uuid.UUID]bool{}
		c.Set(adminID, scope)
	}
	return scope, nil
}

func (c *RestaurantScopeCache) Get(adminID uuid.UUID) (map[uuid.UUID]bool, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	scope, ok := c.scopes[adminID]
	return scope, ok
}

func (c *RestaurantScopeCache) Set(adminID uuid.UUID, scope map[uuid.UUID]bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.scopes[adminID] = scope
}

// Add registers a single restaurant under its referring admin, used when
// a restaurant-created event arrives between warms.
func (c *RestaurantScopeCache) Add(adminID, restaurantID uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	scope, ok := c.scopes[adminID]
	if !ok {
		scope = make(map[uuid.UUID]bool)
		c.scopes[adminID] = scope
	}
	scope[restaurantID] = true
}

func (c *RestaurantScopeCache) ingestCollection(data interface{}) error {
	var records []restaurantScopeDTO
	if err := rehydrate(data, &records); err != nil {
		return err
	}
	next := make(map[uuid.UUID]map[uuid.UUID]bool)
	for _, record := range records {
		if record.ReferredBy == "" {
			continue
		}
		adminID, err := uuid.Parse(record.ReferredBy)
		if err != nil {
			c.logger.Debug("skipping invalid referring admin id", "referred_by", record.ReferredBy)
			continue
		}
		restaurantID, err := uuid.Parse(record.ID)
		if err != nil {
			c.logger.Debug("skipping invalid restaurant id", "restaurant_id", record.ID)
			continue
		}
		if next[adminID] == nil {
			next[adminID] = make(map[uuid.UUID]bool)
		}
		next[adminID][restaurantID] = true
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.scopes = next
	return nil
}

type restaurantScopeDTO struct {
	ID         string `json:"id"`
	ReferredBy string `json:"referred_by"`
}

func rehydrate(data interface{}, out interface{}) error {
	bytes, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return json.Unmarshal(bytes, out)
}
