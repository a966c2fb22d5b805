package service

import (
	"alcyxob/coaching-marketplace/internal/domain"
	"alcyxob/coaching-marketplace/internal/observability"
	"alcyxob/coaching-marketplace/internal/repository"
	"alcyxob/coaching-marketplace/internal/schedule"
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// --- Error Definitions ---
var (
	ErrInvalidActivityID = errors.New("invalid activity id")
	ErrActivityNotFound  = errors.New("activity not found")
	ErrStoreUnavailable  = errors.New("record store unavailable")
)

// --- Service Interface ---
type PlanningService interface {
	// GetPlanning assembles the weekly schedule of one activity.
	GetPlanning(ctx context.Context, activityID int64) (*schedule.Plan, error)
}

// --- Service Implementation ---

type planningService struct {
	activityRepo repository.ActivityRepository
	scheduleRepo repository.ScheduleRepository
	exerciseRepo repository.CatalogEntityRepository
	plateRepo    repository.CatalogEntityRepository
}

// NewPlanningService creates a new instance of planningService.
func NewPlanningService(
	activityRepo repository.ActivityRepository,
	scheduleRepo repository.ScheduleRepository,
	exerciseRepo repository.CatalogEntityRepository,
	plateRepo repository.CatalogEntityRepository,
) PlanningService {
	return &planningService{
		activityRepo: activityRepo,
		scheduleRepo: scheduleRepo,
		exerciseRepo: exerciseRepo,
		plateRepo:    plateRepo,
	}
}

func (s *planningService) GetPlanning(ctx context.Context, activityID int64) (*schedule.Plan, error) {
	if activityID <= 0 {
		return nil, ErrInvalidActivityID
	}

	activity, err := s.activityRepo.GetByID(ctx, activityID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrActivityNotFound
		}
		return nil, storeError(err)
	}

	periods, err := s.periods(ctx, activityID)
	if err != nil {
		return nil, storeError(err)
	}

	// Workshops are planned by topic, not by week.
	if activity.IsWorkshop() {
		return schedule.EmptyPlan(periods), nil
	}

	kind, lookup := domain.PlanExercises, s.exerciseRepo
	if activity.IsNutrition() {
		kind, lookup = domain.PlanPlates, s.plateRepo
	}

	plans, err := s.scheduleRepo.GetWeeklyPlans(ctx, kind, activityID)
	if err != nil {
		return nil, storeError(err)
	}
	if len(plans) == 0 {
		return schedule.EmptyPlan(periods), nil
	}

	weeks := schedule.ParseWeeks(plans, func(v schedule.Variant) {
		observability.ScheduleCells.WithLabelValues(string(v)).Inc()
	})

	resolution, err := schedule.NewResolver(lookup).Resolve(ctx, activityID, schedule.CollectIDs(weeks))
	if err != nil {
		return nil, storeError(err)
	}
	for _, id := range resolution.Missing {
		slog.WarnContext(ctx, "schedule entry not found in record store, using inline data",
			slog.Int64("activity_id", activityID),
			slog.Int64("entity_id", id),
			slog.String("plan", string(kind)),
		)
	}
	observability.UnresolvedEntities.Add(float64(len(resolution.Missing)))

	return schedule.Assemble(weeks, resolution.Entities, periods), nil
}

func (s *planningService) periods(ctx context.Context, activityID int64) (int, error) {
	rec, err := s.scheduleRepo.GetPeriods(ctx, activityID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 1, nil
		}
		return 0, err
	}
	if rec.Count < 1 {
		return 1, nil
	}
	return rec.Count, nil
}

func storeError(err error) error {
	return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
}
