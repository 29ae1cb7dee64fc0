package mongo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mealmesh/mealmesh/services/notification/internal/notification"
)

type NotificationRepo struct {
	collection *mongo.Collection
}

func NewNotificationRepo(db *mongo.Database) *NotificationRepo {
	return &NotificationRepo{
		collection: db.Collection("notifications"),
	}
}

func (r *NotificationRepo) Create(ctx context.Context, n *notification.Notification) error {
	if n == nil {
		return fmt.Errorf("notification is nil")
	}

	if _, err := r.collection.InsertOne(ctx, n); err != nil {
		return fmt.Errorf("cannot create notification: %w", err)
	}

	return nil
}

func (r *NotificationRepo) Get(ctx context.Context, id uuid.UUID) (*notification.Notification, error) {
	var n notification.Notification
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&n)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("cannot get notification: %w", err)
	}
	return &n, nil
}

func (r *NotificationRepo) ListByRecipient(ctx context.Context, recipientID uuid.UUID) ([]*notification.Notification, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	return r.find(ctx, bson.M{"recipient_id": recipientID}, opts)
}

func (r *NotificationRepo) ListUnreadByRecipient(ctx context.Context, recipientID uuid.UUID) ([]*notification.Notification, error) {
	return r.find(ctx, bson.M{"recipient_id": recipientID, "read": false}, nil)
}

func (r *NotificationRepo) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*notification.Notification, error) {
	var cursor *mongo.Cursor
	var err error
	if opts != nil {
		cursor, err = r.collection.Find(ctx, filter, opts)
	} else {
		cursor, err = r.collection.Find(ctx, filter)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot list notifications: %w", err)
	}
	defer cursor.Close(ctx)

	var result []*notification.Notification
	if err := cursor.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("cannot decode notifications: %w", err)
	}

	return result, nil
}

func (r *NotificationRepo) Save(ctx context.Context, n *notification.Notification) error {
	if n == nil {
		return fmt.Errorf("notification is nil")
	}

	filter := bson.M{"_id": n.ID}
	update := bson.M{"$set": n}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("cannot update notification: %w", err)
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("notification not found")
	}

	return nil
}

func (r *NotificationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("cannot delete notification: %w", err)
	}

	if result.DeletedCount == 0 {
		return fmt.Errorf("notification not found")
	}

	return nil
}
