package mongo

import (
	"alcyxob/coaching-marketplace/internal/domain"
	"alcyxob/coaching-marketplace/internal/repository"
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const mediaCollectionName = "activity_media"

type mongoMediaRepository struct {
	collection *mongo.Collection
}

// NewMongoMediaRepository creates a new activity media repository backed by MongoDB.
func NewMongoMediaRepository(db *mongo.Database) repository.MediaRepository {
	return &mongoMediaRepository{
		collection: db.Collection(mediaCollectionName),
	}
}

// GetByActivityIDs returns the cover media per activity. When an activity has several
// media records the first one returned wins.
func (r *mongoMediaRepository) GetByActivityIDs(ctx context.Context, ids []int64) (map[int64]domain.ActivityMedia, error) {
	out := make(map[int64]domain.ActivityMedia, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	cursor, err := r.collection.Find(ctx, bson.M{"actividad_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var media []domain.ActivityMedia
	if err = cursor.All(ctx, &media); err != nil {
		return nil, err
	}
	for _, m := range media {
		if _, seen := out[m.ActivityID]; !seen {
			out[m.ActivityID] = m
		}
	}
	return out, nil
}
