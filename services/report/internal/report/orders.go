package report

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/appetiteclub/apt"
	"github.com/google/uuid"
)

// RatingSummary is the slice of an order rating the insights need.
type RatingSummary struct {
	Stars int `json:"stars"`
}

// RatingsSummary mirrors the order service's per-party rating objects.
type RatingsSummary struct {
	CustomerToRestaurant *RatingSummary `json:"customer_to_restaurant,omitempty"`
	CustomerToCourier    *RatingSummary `json:"customer_to_courier,omitempty"`
}

// OrderSummary mirrors the order service's order payload, trimmed to the
// fields the insight aggregations read.
type OrderSummary struct {
	ID             uuid.UUID      `json:"id"`
	CustomerID     uuid.UUID      `json:"customer_id"`
	RestaurantID   uuid.UUID      `json:"restaurant_id"`
	RestaurantName string         `json:"restaurant_name"`
	CourierID      *uuid.UUID     `json:"courier_id,omitempty"`
	CourierName    string         `json:"courier_name,omitempty"`
	Status         string         `json:"status"`
	Ratings        RatingsSummary `json:"ratings"`
	CreatedAt      time.Time      `json:"created_at"`
}

// APIOrderSource fetches orders from the order service over HTTP.
type APIOrderSource struct {
	client *apt.ServiceClient
	logger apt.Logger
}

// NewAPIOrderSource builds the order service client. Returns an error if
// the order service URL is not configured.
func NewAPIOrderSource(config *apt.Config, logger apt.Logger) (*APIOrderSource, error) {
	orderURL, _ := config.GetString("services.order.url")
	if orderURL == "" {
		return nil, fmt.Errorf("services.order.url is required")
	}

	client := apt.NewServiceClient(orderURL)
	if client == nil {
		return nil, fmt.Errorf("failed to create order service client")
	}

	return &APIOrderSource{
		client: client,
		logger: logger,
	}, nil
}

// ListOrders retrieves the full order set from the order service.
func (s *APIOrderSource) ListOrders(ctx context.Context) ([]*OrderSummary, error) {
	resp, err := s.client.List(ctx, "internal/orders")
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	// Re-marshal the untyped payload into the summary shape; the order
	// service nests ratings too deeply for field-by-field extraction.
	raw, err := json.Marshal(resp.Data)
	if err != nil {
		return nil, fmt.Errorf("invalid response format: %w", err)
	}

	var orders []*OrderSummary
	if err := json.Unmarshal(raw, &orders); err != nil {
		return nil, fmt.Errorf("failed to decode orders: %w", err)
	}

	return orders, nil
}
