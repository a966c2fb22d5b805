package mongo

import (
	"alcyxob/coaching-marketplace/internal/domain"
	"alcyxob/coaching-marketplace/internal/repository"
	"context"
	"errors"
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const activityCollectionName = "activities"

// mongoActivityRepository implements repository.ActivityRepository
type mongoActivityRepository struct {
	collection *mongo.Collection
}

// NewMongoActivityRepository creates a new Activity repository backed by MongoDB.
func NewMongoActivityRepository(db *mongo.Database) repository.ActivityRepository {
	return &mongoActivityRepository{
		collection: db.Collection(activityCollectionName),
	}
}

// GetByID retrieves an activity by its numeric ID.
func (r *mongoActivityRepository) GetByID(ctx context.Context, id int64) (*domain.Activity, error) {
	var activity domain.Activity
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&activity)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	activity.Objectives = plainValue(activity.Objectives)
	return &activity, nil
}

// Search lists activities matching the filter, newest first.
func (r *mongoActivityRepository) Search(ctx context.Context, f repository.ActivityFilter) ([]domain.Activity, error) {
	if f.Type == domain.TypeConsultation && !f.IncludeConsultations {
		return []domain.Activity{}, nil
	}

	filter := bson.M{}
	if term := strings.TrimSpace(f.Term); term != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(term), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"title": pattern},
			bson.M{"description": pattern},
		}
	}
	switch {
	case f.Type != "":
		filter["type"] = f.Type
	case !f.IncludeConsultations:
		filter["type"] = bson.M{"$ne": domain.TypeConsultation}
	}
	if f.Difficulty != "" {
		filter["difficulty"] = f.Difficulty
	}
	if f.CoachID != "" {
		filter["coach_id"] = f.CoachID
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	activities := []domain.Activity{}
	if err = cursor.All(ctx, &activities); err != nil {
		return nil, err
	}
	for i := range activities {
		activities[i].Objectives = plainValue(activities[i].Objectives)
	}
	return activities, nil
}

func activityIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{Keys: bson.D{{Key: "coach_id", Value: 1}}},
		{Keys: bson.D{{Key: "type", Value: 1}, {Key: "created_at", Value: -1}}},
	}
}

// activityRefIndexes index the activity reference shared by the satellite collections.
func activityRefIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{Keys: bson.D{{Key: "actividad_id", Value: 1}}},
	}
}
