package mongo

import (
	"alcyxob/coaching-marketplace/internal/domain"
	"alcyxob/coaching-marketplace/internal/repository"
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const topicCollectionName = "workshop_topics"

type mongoWorkshopRepository struct {
	collection *mongo.Collection
}

// NewMongoWorkshopRepository creates a workshop topic repository backed by MongoDB.
func NewMongoWorkshopRepository(db *mongo.Database) repository.WorkshopRepository {
	return &mongoWorkshopRepository{
		collection: db.Collection(topicCollectionName),
	}
}

// GetTopics returns every topic of the workshop with the schedule payload in generic form.
func (r *mongoWorkshopRepository) GetTopics(ctx context.Context, activityID int64) ([]domain.WorkshopTopic, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"actividad_id": activityID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	topics := []domain.WorkshopTopic{}
	if err = cursor.All(ctx, &topics); err != nil {
		return nil, err
	}
	for i := range topics {
		topics[i].Schedule = plainValue(topics[i].Schedule)
	}
	return topics, nil
}
