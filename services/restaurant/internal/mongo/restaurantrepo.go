package mongo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mealmesh/mealmesh/services/restaurant/internal/restaurant"
)

type RestaurantRepo struct {
	collection *mongo.Collection
}

func NewRestaurantRepo(db *mongo.Database) *RestaurantRepo {
	return &RestaurantRepo{
		collection: db.Collection("restaurants"),
	}
}

func (r *RestaurantRepo) Create(ctx context.Context, rest *restaurant.Restaurant) error {
	if rest == nil {
		return fmt.Errorf("restaurant is nil")
	}

	if _, err := r.collection.InsertOne(ctx, rest); err != nil {
		return fmt.Errorf("cannot create restaurant: %w", err)
	}

	return nil
}

func (r *RestaurantRepo) Get(ctx context.Context, id uuid.UUID) (*restaurant.Restaurant, error) {
	var rest restaurant.Restaurant
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&rest)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("cannot get restaurant: %w", err)
	}
	return &rest, nil
}

func (r *RestaurantRepo) List(ctx context.Context) ([]*restaurant.Restaurant, error) {
	return r.find(ctx, bson.M{})
}

func (r *RestaurantRepo) ListByReferrer(ctx context.Context, adminID uuid.UUID) ([]*restaurant.Restaurant, error) {
	return r.find(ctx, bson.M{"referred_by": adminID})
}

func (r *RestaurantRepo) find(ctx context.Context, filter bson.M) ([]*restaurant.Restaurant, error) {
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("cannot list restaurants: %w", err)
	}
	defer cursor.Close(ctx)

	var result []*restaurant.Restaurant
	if err := cursor.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("cannot decode restaurants: %w", err)
	}

	return result, nil
}

func (r *RestaurantRepo) Save(ctx context.Context, rest *restaurant.Restaurant) error {
	if rest == nil {
		return fmt.Errorf("restaurant is nil")
	}

	filter := bson.M{"_id": rest.ID}
	update := bson.M{"$set": rest}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("cannot update restaurant: %w", err)
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("restaurant not found")
	}

	return nil
}
