package mongo

import (
	"alcyxob/coaching-marketplace/internal/domain"
	"alcyxob/coaching-marketplace/internal/repository"
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const surveyCollectionName = "activity_surveys"

type mongoReviewRepository struct {
	collection *mongo.Collection
}

// NewMongoReviewRepository creates a review summary repository over the survey collection.
func NewMongoReviewRepository(db *mongo.Database) repository.ReviewRepository {
	return &mongoReviewRepository{
		collection: db.Collection(surveyCollectionName),
	}
}

// SummarizeByActivityIDs averages the survey ratings of each activity.
// Surveys without a numeric rating are ignored.
func (r *mongoReviewRepository) SummarizeByActivityIDs(ctx context.Context, ids []int64) (map[int64]domain.RatingSummary, error) {
	out := make(map[int64]domain.RatingSummary, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"actividad_id": bson.M{"$in": ids},
			"rating":       bson.M{"$type": "number"},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":     "$actividad_id",
			"average": bson.M{"$avg": "$rating"},
			"total":   bson.M{"$sum": 1},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var summaries []domain.RatingSummary
	if err = cursor.All(ctx, &summaries); err != nil {
		return nil, err
	}
	for _, s := range summaries {
		out[s.ActivityID] = s
	}
	return out, nil
}
