package mongo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mealmesh/mealmesh/services/registration/internal/registration"
)

type CredentialRepo struct {
	collection *mongo.Collection
}

func NewCredentialRepo(db *mongo.Database) *CredentialRepo {
	return &CredentialRepo{
		collection: db.Collection("credentials"),
	}
}

func (r *CredentialRepo) Create(ctx context.Context, c *registration.Credential) error {
	if c == nil {
		return fmt.Errorf("credential is nil")
	}

	if _, err := r.collection.InsertOne(ctx, c); err != nil {
		return fmt.Errorf("cannot create credential: %w", err)
	}

	return nil
}

func (r *CredentialRepo) GetByEmailLookup(ctx context.Context, lookup []byte) (*registration.Credential, error) {
	var c registration.Credential
	err := r.collection.FindOne(ctx, bson.M{"email_lookup": lookup}).Decode(&c)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("cannot get credential: %w", err)
	}
	return &c, nil
}

func (r *CredentialRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("cannot delete credential: %w", err)
	}

	if result.DeletedCount == 0 {
		return fmt.Errorf("credential not found")
	}

	return nil
}

type ProfileRepo struct {
	collection *mongo.Collection
}

func NewProfileRepo(db *mongo.Database) *ProfileRepo {
	return &ProfileRepo{
		collection: db.Collection("users"),
	}
}

func (r *ProfileRepo) Create(ctx context.Context, p *registration.UserProfile) error {
	if p == nil {
		return fmt.Errorf("profile is nil")
	}

	if _, err := r.collection.InsertOne(ctx, p); err != nil {
		return fmt.Errorf("cannot create profile: %w", err)
	}

	return nil
}

type BusinessRepo struct {
	collection *mongo.Collection
}

func NewBusinessRepo(db *mongo.Database) *BusinessRepo {
	return &BusinessRepo{
		collection: db.Collection("businesses"),
	}
}

func (r *BusinessRepo) Create(ctx context.Context, b *registration.Business) error {
	if b == nil {
		return fmt.Errorf("business is nil")
	}

	if _, err := r.collection.InsertOne(ctx, b); err != nil {
		return fmt.Errorf("cannot create business: %w", err)
	}

	return nil
}
