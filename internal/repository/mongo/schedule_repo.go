package mongo

import (
	"alcyxob/coaching-marketplace/internal/domain"
	"alcyxob/coaching-marketplace/internal/repository"
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	exercisePlanCollectionName  = "exercise_schedules"
	nutritionPlanCollectionName = "nutrition_schedules"
	periodsCollectionName       = "periods"
)

type mongoScheduleRepository struct {
	plans   map[domain.PlanKind]*mongo.Collection
	periods *mongo.Collection
}

// NewMongoScheduleRepository creates a weekly plan repository backed by MongoDB.
func NewMongoScheduleRepository(db *mongo.Database) repository.ScheduleRepository {
	return &mongoScheduleRepository{
		plans: map[domain.PlanKind]*mongo.Collection{
			domain.PlanExercises: db.Collection(exercisePlanCollectionName),
			domain.PlanPlates:    db.Collection(nutritionPlanCollectionName),
		},
		periods: db.Collection(periodsCollectionName),
	}
}

// GetWeeklyPlans returns the stored weeks of an activity with every day cell
// converted to generic values.
func (r *mongoScheduleRepository) GetWeeklyPlans(ctx context.Context, kind domain.PlanKind, activityID int64) ([]domain.WeeklyPlan, error) {
	collection, ok := r.plans[kind]
	if !ok {
		return nil, fmt.Errorf("unknown plan kind %q", kind)
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "numero_semana", Value: 1}})
	cursor, err := collection.Find(ctx, bson.M{"actividad_id": activityID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	plans := []domain.WeeklyPlan{}
	if err = cursor.All(ctx, &plans); err != nil {
		return nil, err
	}
	for i := range plans {
		var cells [domain.DaysPerWeek]interface{}
		for d, raw := range plans[i].Cells() {
			cells[d] = plainValue(raw)
		}
		plans[i].SetCells(cells)
	}
	return plans, nil
}

// GetPeriods returns repository.ErrNotFound when no periods record exists.
func (r *mongoScheduleRepository) GetPeriods(ctx context.Context, activityID int64) (*domain.PeriodsRecord, error) {
	var rec domain.PeriodsRecord
	err := r.periods.FindOne(ctx, bson.M{"actividad_id": activityID}).Decode(&rec)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

func weeklyPlanIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{Keys: bson.D{{Key: "actividad_id", Value: 1}, {Key: "numero_semana", Value: 1}}},
	}
}
