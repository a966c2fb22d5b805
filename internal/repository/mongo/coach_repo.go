package mongo

import (
	"alcyxob/coaching-marketplace/internal/domain"
	"alcyxob/coaching-marketplace/internal/repository"
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const coachCollectionName = "coaches"

type mongoCoachRepository struct {
	collection *mongo.Collection
}

// NewMongoCoachRepository creates a new Coach repository backed by MongoDB.
func NewMongoCoachRepository(db *mongo.Database) repository.CoachRepository {
	return &mongoCoachRepository{
		collection: db.Collection(coachCollectionName),
	}
}

// GetByIDs loads the coach profiles in one round trip.
func (r *mongoCoachRepository) GetByIDs(ctx context.Context, ids []string) (map[string]domain.Coach, error) {
	out := make(map[string]domain.Coach, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var coaches []domain.Coach
	if err = cursor.All(ctx, &coaches); err != nil {
		return nil, err
	}
	for _, c := range coaches {
		out[c.ID] = c
	}
	return out, nil
}
