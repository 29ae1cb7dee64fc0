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

// Fixed ids so order seeding and repeat runs line up with the same
// restaurants and admins.
var (
	DemoAdminAnaID  = uuid.MustParse("c0a80101-0000-4000-8000-000000000001")
	DemoAdminLeoID  = uuid.MustParse("c0a80101-0000-4000-8000-000000000002")
	DemoTavernaID   = uuid.MustParse("c0a80102-0000-4000-8000-000000000001")
	DemoBistroID    = uuid.MustParse("c0a80102-0000-4000-8000-000000000002")
	DemoNoodleBarID = uuid.MustParse("c0a80102-0000-4000-8000-000000000003")
)

// SeedRestaurants creates demo restaurants split across two referring
// admins, so the admin order screens show scoped visibility out of the
// box.
func SeedRestaurants(ctx context.Context, db *mongo.Database) error {
	collection := db.Collection("restaurants")
	now := time.Now()

	restaurants := []bson.M{
		{
			"_id":             DemoTavernaID,
			"name":            "Taverna do Rio",
			"city":            "Lisbon",
			"referred_by":     DemoAdminAnaID,
			"open_for_orders": true,
			"tier":            "premium",
			"license_status":  "approved",
			"created_at":      now.AddDate(0, -2, 0),
			"updated_at":      now.AddDate(0, -2, 0),
			"created_by":      "demo-seed",
			"updated_by":      "demo-seed",
		},
		{
			"_id":             DemoBistroID,
			"name":            "Bistro Mitte",
			"city":            "Berlin",
			"referred_by":     DemoAdminAnaID,
			"open_for_orders": true,
			"tier":            "free",
			"license_status":  "approved",
			"created_at":      now.AddDate(0, -1, 0),
			"updated_at":      now.AddDate(0, -1, 0),
			"created_by":      "demo-seed",
			"updated_by":      "demo-seed",
		},
		{
			"_id":             DemoNoodleBarID,
			"name":            "Noodle Bar 44",
			"city":            "Warsaw",
			"referred_by":     DemoAdminLeoID,
			"open_for_orders": false,
			"tier":            "free",
			"license_status":  "pending",
			"created_at":      now.AddDate(0, 0, -12),
			"updated_at":      now.AddDate(0, 0, -12),
			"created_by":      "demo-seed",
			"updated_by":      "demo-seed",
		},
	}

	for _, r := range restaurants {
		_, err := collection.UpdateOne(ctx,
			bson.M{"_id": r["_id"]},
			bson.M{"$setOnInsert": r},
			options.Update().SetUpsert(true),
		)
		if err != nil {
			return fmt.Errorf("cannot create demo restaurant %v: %w", r["name"], err)
		}
	}

	return nil
}
