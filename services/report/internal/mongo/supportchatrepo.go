package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mealmesh/mealmesh/services/report/internal/report"
)

// SupportChatRepo reads the support_chats collection owned by the
// support tooling. This service never writes to it.
type SupportChatRepo struct {
	collection *mongo.Collection
}

func NewSupportChatRepo(db *mongo.Database) *SupportChatRepo {
	return &SupportChatRepo{
		collection: db.Collection("support_chats"),
	}
}

func (r *SupportChatRepo) List(ctx context.Context) ([]*report.SupportChat, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("cannot list support chats: %w", err)
	}
	defer cursor.Close(ctx)

	var result []*report.SupportChat
	if err := cursor.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("cannot decode support chats: %w", err)
	}

	return result, nil
}
