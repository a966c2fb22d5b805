package mongo

import (
	"alcyxob/coaching-marketplace/internal/domain"
	"alcyxob/coaching-marketplace/internal/repository"
	"context"
	"strconv"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	exerciseDetailCollectionName = "exercise_details"
	plateCollectionName          = "nutrition_plates"
)

// mongoCatalogEntityRepository serves both exercise details and nutrition plates;
// the two collections share one record shape.
type mongoCatalogEntityRepository struct {
	collection *mongo.Collection
}

// NewMongoExerciseRepository reads exercise records.
func NewMongoExerciseRepository(db *mongo.Database) repository.CatalogEntityRepository {
	return &mongoCatalogEntityRepository{collection: db.Collection(exerciseDetailCollectionName)}
}

// NewMongoPlateRepository reads nutrition plate records.
func NewMongoPlateRepository(db *mongo.Database) repository.CatalogEntityRepository {
	return &mongoCatalogEntityRepository{collection: db.Collection(plateCollectionName)}
}

func (r *mongoCatalogEntityRepository) GetByIDs(ctx context.Context, ids []int64) ([]domain.CatalogEntity, error) {
	if len(ids) == 0 {
		return []domain.CatalogEntity{}, nil
	}
	return r.find(ctx, bson.M{"_id": bson.M{"$in": ids}})
}

func (r *mongoCatalogEntityRepository) GetLinkedByIDs(ctx context.Context, activityID int64, ids []int64) ([]domain.CatalogEntity, error) {
	if len(ids) == 0 {
		return []domain.CatalogEntity{}, nil
	}
	return r.find(ctx, bson.M{
		"_id": bson.M{"$in": ids},
		"$or": linkedTo(activityID),
	})
}

func (r *mongoCatalogEntityRepository) ListLinked(ctx context.Context, activityID int64) ([]domain.CatalogEntity, error) {
	return r.find(ctx, bson.M{"$or": linkedTo(activityID)})
}

// linkedTo matches records whose activity map has the activity as a key, plus every
// record whose map was stored as a string; those are checked after decoding.
func linkedTo(activityID int64) bson.A {
	return bson.A{
		bson.M{"activity_id." + strconv.FormatInt(activityID, 10): bson.M{"$exists": true}},
		bson.M{"activity_id": bson.M{"$type": "string"}},
	}
}

func (r *mongoCatalogEntityRepository) find(ctx context.Context, filter bson.M) ([]domain.CatalogEntity, error) {
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	entities := []domain.CatalogEntity{}
	if err = cursor.All(ctx, &entities); err != nil {
		return nil, err
	}
	for i := range entities {
		entities[i].ActivityMap = plainValue(entities[i].ActivityMap)
	}
	return entities, nil
}
