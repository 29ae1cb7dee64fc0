package registration

import (
	"context"
	"fmt"

	"github.com/appetiteclub/apt"
	"github.com/google/uuid"
)

// Directory publishes a newly registered business into the restaurant
// directory the rest of the platform reads from. A business that never
// reaches the directory cannot be browsed, scoped, or ordered from.
type Directory interface {
	CreateListing(ctx context.Context, business *Business) error
}

// ListingPayload mirrors the restaurant service's create payload.
type ListingPayload struct {
	Name       string     `json:"name"`
	City       string     `json:"city,omitempty"`
	ReferredBy *uuid.UUID `json:"referred_by,omitempty"`
}

// APIDirectory creates directory entries via the restaurant service.
type APIDirectory struct {
	client *apt.ServiceClient
	logger apt.Logger
}

// NewAPIDirectory builds the restaurant service client. Returns an error
// if the restaurant service URL is not configured.
func NewAPIDirectory(config *apt.Config, logger apt.Logger) (*APIDirectory, error) {
	restaurantURL, _ := config.GetString("services.restaurant.url")
	if restaurantURL == "" {
		return nil, fmt.Errorf("services.restaurant.url is required")
	}

	client := apt.NewServiceClient(restaurantURL)
	if client == nil {
		return nil, fmt.Errorf("failed to create restaurant service client")
	}

	return &APIDirectory{
		client: client,
		logger: logger,
	}, nil
}

// CreateListing registers the business in the directory. The owner is
// recorded as the referring admin so their order-visibility scope covers
// their own restaurant.
func (d *APIDirectory) CreateListing(ctx context.Context, business *Business) error {
	owner := business.OwnerID
	payload := ListingPayload{
		Name:       business.Name,
		City:       business.City,
		ReferredBy: &owner,
	}

	if _, err := d.client.Create(ctx, "restaurants", payload); err != nil {
		return fmt.Errorf("failed to create directory listing: %w", err)
	}
	return nil
}
