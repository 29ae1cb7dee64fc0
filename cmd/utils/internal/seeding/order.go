package seeding

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	demoCustomerMiaID = uuid.MustParse("c0a80103-0000-4000-8000-000000000001")
	demoCustomerTomID = uuid.MustParse("c0a80103-0000-4000-8000-000000000002")
	demoCourierDanaID = uuid.MustParse("c0a80104-0000-4000-8000-000000000001")
)

// SeedOrders creates demo orders across the status flow, with ratings so
// the insight screens have something to aggregate. Restaurants must be
// seeded first.
func SeedOrders(ctx context.Context, db, restaurantDB *mongo.Database) error {
	collection := db.Collection("orders")
	now := time.Now()

	// Verify the referenced restaurants exist
	restaurants := restaurantDB.Collection("restaurants")
	count, err := restaurants.CountDocuments(ctx, bson.M{"_id": bson.M{"$in": []uuid.UUID{DemoTavernaID, DemoBistroID}}})
	if err != nil {
		return fmt.Errorf("cannot check demo restaurants: %w", err)
	}
	if count < 2 {
		return fmt.Errorf("demo restaurants missing (found %d of 2), seed restaurants first", count)
	}

	orders := []bson.M{
		// Delivered and rated well
		{
			"_id":             uuid.New(),
			"customer_id":     demoCustomerMiaID,
			"restaurant_id":   DemoTavernaID,
			"restaurant_name": "Taverna do Rio",
			"address":         "Rua das Flores 12, Lisbon",
			"items": []bson.M{
				{"name": "Bacalhau à Brás", "price": 14.50, "qty": 1},
				{"name": "Vinho Verde", "price": 4.00, "qty": 2},
			},
			"total":  22.50,
			"status": "delivered",
			"courier_id":   demoCourierDanaID,
			"courier_name": "Dana K.",
			"ratings": bson.M{
				"customer_to_restaurant": bson.M{"stars": 5, "comment": "perfect"},
				"customer_to_courier":    bson.M{"stars": 5},
			},
			"created_at": now.Add(-48 * time.Hour),
			"updated_at": now.Add(-47 * time.Hour),
			"created_by": "demo-seed",
			"updated_by": "demo-seed",
		},
		// Delivered with a low restaurant rating, feeds the insight screen
		{
			"_id":             uuid.New(),
			"customer_id":     demoCustomerTomID,
			"restaurant_id":   DemoTavernaID,
			"restaurant_name": "Taverna do Rio",
			"address":         "Av. da Liberdade 200, Lisbon",
			"items": []bson.M{
				{"name": "Polvo à Lagareiro", "price": 18.00, "qty": 1},
			},
			"total":  18.00,
			"status": "delivered",
			"courier_id":   demoCourierDanaID,
			"courier_name": "Dana K.",
			"ratings": bson.M{
				"customer_to_restaurant": bson.M{"stars": 2, "comment": "arrived cold"},
				"customer_to_courier":    bson.M{"stars": 4},
			},
			"created_at": now.Add(-20 * time.Hour),
			"updated_at": now.Add(-19 * time.Hour),
			"created_by": "demo-seed",
			"updated_by": "demo-seed",
		},
		// In flight
		{
			"_id":             uuid.New(),
			"customer_id":     demoCustomerMiaID,
			"restaurant_id":   DemoBistroID,
			"restaurant_name": "Bistro Mitte",
			"address":         "Torstraße 99, Berlin",
			"items": []bson.M{
				{"name": "Schnitzel", "price": 12.90, "qty": 1},
				{"name": "Apfelschorle", "price": 3.20, "qty": 1},
			},
			"total":      16.10,
			"status":     "out_for_delivery",
			"courier_id":   demoCourierDanaID,
			"courier_name": "Dana K.",
			"ratings":    bson.M{},
			"created_at": now.Add(-35 * time.Minute),
			"updated_at": now.Add(-10 * time.Minute),
			"created_by": "demo-seed",
			"updated_by": "demo-seed",
		},
		// Fresh, not yet accepted
		{
			"_id":             uuid.New(),
			"customer_id":     demoCustomerTomID,
			"restaurant_id":   DemoBistroID,
			"restaurant_name": "Bistro Mitte",
			"address":         "Kastanienallee 5, Berlin",
			"items": []bson.M{
				{"name": "Currywurst", "price": 8.50, "qty": 2},
			},
			"total":      17.00,
			"status":     "pending",
			"ratings":    bson.M{},
			"created_at": now.Add(-3 * time.Minute),
			"updated_at": now.Add(-3 * time.Minute),
			"created_by": "demo-seed",
			"updated_by": "demo-seed",
		},
	}

	for _, o := range orders {
		_, err := collection.UpdateOne(ctx,
			bson.M{"_id": o["_id"]},
			bson.M{"$setOnInsert": o},
			options.Update().SetUpsert(true),
		)
		if err != nil {
			return fmt.Errorf("cannot create demo order: %w", err)
		}
	}

	return nil
}
