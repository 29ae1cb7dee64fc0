package mongo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mealmesh/mealmesh/services/hiring/internal/hiring"
)

type HiringRequestRepo struct {
	collection *mongo.Collection
}

func NewHiringRequestRepo(db *mongo.Database) *HiringRequestRepo {
	return &HiringRequestRepo{
		collection: db.Collection("hiring_requests"),
	}
}

func (r *HiringRequestRepo) Create(ctx context.Context, hr *hiring.HiringRequest) error {
	if hr == nil {
		return fmt.Errorf("hiring request is nil")
	}

	if _, err := r.collection.InsertOne(ctx, hr); err != nil {
		return fmt.Errorf("cannot create hiring request: %w", err)
	}

	return nil
}

func (r *HiringRequestRepo) Get(ctx context.Context, id uuid.UUID) (*hiring.HiringRequest, error) {
	var hr hiring.HiringRequest
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&hr)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("cannot get hiring request: %w", err)
	}
	return &hr, nil
}

func (r *HiringRequestRepo) List(ctx context.Context) ([]*hiring.HiringRequest, error) {
	return r.find(ctx, bson.M{})
}

func (r *HiringRequestRepo) ListByCourier(ctx context.Context, courierID uuid.UUID) ([]*hiring.HiringRequest, error) {
	return r.find(ctx, bson.M{"courier_id": courierID})
}

func (r *HiringRequestRepo) ListByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]*hiring.HiringRequest, error) {
	return r.find(ctx, bson.M{"restaurant_id": restaurantID})
}

func (r *HiringRequestRepo) find(ctx context.Context, filter bson.M) ([]*hiring.HiringRequest, error) {
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("cannot list hiring requests: %w", err)
	}
	defer cursor.Close(ctx)

	var result []*hiring.HiringRequest
	if err := cursor.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("cannot decode hiring requests: %w", err)
	}

	return result, nil
}

func (r *HiringRequestRepo) Save(ctx context.Context, hr *hiring.HiringRequest) error {
	if hr == nil {
		return fmt.Errorf("hiring request is nil")
	}

	filter := bson.M{"_id": hr.ID}
	update := bson.M{"$set": hr}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("cannot update hiring request: %w", err)
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("hiring request not found")
	}

	return nil
}

func (r *HiringRequestRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("cannot delete hiring request: %w", err)
	}

	if result.DeletedCount == 0 {
		return fmt.Errorf("hiring request not found")
	}

	return nil
}
