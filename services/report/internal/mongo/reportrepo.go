package mongo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mealmesh/mealmesh/services/report/internal/report"
)

type ProblemReportRepo struct {
	collection *mongo.Collection
}

func NewProblemReportRepo(db *mongo.Database) *ProblemReportRepo {
	return &ProblemReportRepo{
		collection: db.Collection("problem_reports"),
	}
}

func (r *ProblemReportRepo) Create(ctx context.Context, p *report.ProblemReport) error {
	if p == nil {
		return fmt.Errorf("report is nil")
	}

	if _, err := r.collection.InsertOne(ctx, p); err != nil {
		return fmt.Errorf("cannot create report: %w", err)
	}

	return nil
}

func (r *ProblemReportRepo) Get(ctx context.Context, id uuid.UUID) (*report.ProblemReport, error) {
	var p report.ProblemReport
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("cannot get report: %w", err)
	}
	return &p, nil
}

// List returns all reports, newest first, matching the triage board's
// default ordering.
func (r *ProblemReportRepo) List(ctx context.Context) ([]*report.ProblemReport, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("cannot list reports: %w", err)
	}
	defer cursor.Close(ctx)

	var result []*report.ProblemReport
	if err := cursor.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("cannot decode reports: %w", err)
	}

	return result, nil
}

func (r *ProblemReportRepo) Save(ctx context.Context, p *report.ProblemReport) error {
	if p == nil {
		return fmt.Errorf("report is nil")
	}

	filter := bson.M{"_id": p.ID}
	update := bson.M{"$set": p}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("cannot update report: %w", err)
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("report not found")
	}

	return nil
}
