package stats

import (
	"alcyxob/coaching-marketplace/internal/domain"
	"alcyxob/coaching-marketplace/internal/repository"
	"alcyxob/coaching-marketplace/internal/schedule"
	"context"
	"errors"
	"fmt"
)

// Category is the statistics rule set an activity falls under.
type Category string

const (
	CategoryFitness   Category = "fitness"
	CategoryNutrition Category = "nutrition"
	CategoryWorkshop  Category = "workshop"
)

// CategoryOf picks the rule set: workshops first, then nutrition, fitness otherwise.
func CategoryOf(a *domain.Activity) Category {
	switch {
	case a.IsWorkshop():
		return CategoryWorkshop
	case a.IsNutrition():
		return CategoryNutrition
	}
	return CategoryFitness
}

// WorkshopStats is only present for workshops.
type WorkshopStats struct {
	Topics int `json:"cantidadTemas"`
	Days   int `json:"cantidadDias"`
}

// Statistics are the aggregate usage numbers shown on a listing card.
type Statistics struct {
	ExercisesCount int            `json:"exercisesCount"`
	TotalSessions  int            `json:"totalSessions"`
	Periods        int            `json:"periods"`
	Workshop       *WorkshopStats `json:"-"`
}

// Zero is the value reported for an activity whose statistics could not be computed.
func Zero() Statistics {
	return Statistics{Periods: 1}
}

// Calculator computes per-activity statistics from the record store.
type Calculator struct {
	schedules repository.ScheduleRepository
	exercises repository.CatalogEntityRepository
	workshops repository.WorkshopRepository
}

// NewCalculator wires the calculator to its repositories.
func NewCalculator(
	schedules repository.ScheduleRepository,
	exercises repository.CatalogEntityRepository,
	workshops repository.WorkshopRepository,
) *Calculator {
	return &Calculator{schedules: schedules, exercises: exercises, workshops: workshops}
}

// Compute returns the statistics of one activity. The reads are not isolated from
// concurrent writes; numbers may mix two storage states.
func (c *Calculator) Compute(ctx context.Context, a *domain.Activity) (Statistics, error) {
	switch CategoryOf(a) {
	case CategoryWorkshop:
		return c.workshop(ctx, a.ID)
	case CategoryNutrition:
		return c.nutrition(ctx, a.ID)
	}
	return c.fitness(ctx, a.ID)
}

func (c *Calculator) workshop(ctx context.Context, activityID int64) (Statistics, error) {
	topics, err := c.workshops.GetTopics(ctx, activityID)
	if err != nil {
		return Zero(), fmt.Errorf("workshop topics: %w", err)
	}
	topicCount, days := WorkshopSpan(topics)
	return Statistics{
		ExercisesCount: topicCount,
		TotalSessions:  days,
		Periods:        1,
		Workshop:       &WorkshopStats{Topics: topicCount, Days: days},
	}, nil
}

// nutrition counts distinct plates and distinct weekdays with content.
// Days are keyed by weekday only, so the same Monday in two weeks counts once.
func (c *Calculator) nutrition(ctx context.Context, activityID int64) (Statistics, error) {
	plans, err := c.schedules.GetWeeklyPlans(ctx, domain.PlanPlates, activityID)
	if err != nil {
		return Zero(), fmt.Errorf("nutrition plans: %w", err)
	}
	periods, err := c.periods(ctx, activityID)
	if err != nil {
		return Zero(), err
	}

	plates := map[int]struct{}{}
	days := map[int]struct{}{}
	for i := range plans {
		for d, raw := range plans[i].Cells() {
			hasContent := false
			for _, e := range schedule.ParseCell(raw).Entries {
				if e.ID > 0 {
					plates[e.ID] = struct{}{}
					hasContent = true
				}
			}
			if hasContent {
				days[d] = struct{}{}
			}
		}
	}

	return Statistics{
		ExercisesCount: len(plates),
		TotalSessions:  len(days) * periods,
		Periods:        periods,
	}, nil
}

type slot struct{ week, day int }

// fitness counts exercise records linked to the activity and the distinct
// (week, day) slots with at least one active entry, times the periods. When the
// weekly plans yield nothing, legacy exercise rows carrying week/day are counted instead.
func (c *Calculator) fitness(ctx context.Context, activityID int64) (Statistics, error) {
	candidates, err := c.exercises.ListLinked(ctx, activityID)
	if err != nil {
		return Zero(), fmt.Errorf("exercise details: %w", err)
	}
	var linked []domain.CatalogEntity
	for _, e := range candidates {
		if schedule.DecodeOverrideMap(e.ActivityMap).Contains(activityID) {
			linked = append(linked, e)
		}
	}

	plans, err := c.schedules.GetWeeklyPlans(ctx, domain.PlanExercises, activityID)
	if err != nil {
		return Zero(), fmt.Errorf("exercise plans: %w", err)
	}
	periods, err := c.periods(ctx, activityID)
	if err != nil {
		return Zero(), err
	}

	slots := map[slot]struct{}{}
	for i := range plans {
		for d, raw := range plans[i].Cells() {
			cell := schedule.DecodeCell(raw)
			parsed := cell.Normalize()
			if parsed.IsEmpty() {
				continue
			}
			if cell.Variant() == schedule.VariantWrapped && !anyActive(parsed.Entries) {
				continue
			}
			slots[slot{week: plans[i].WeekNumber, day: d + 1}] = struct{}{}
		}
	}

	total := len(slots) * periods
	if total == 0 {
		total = legacySessions(linked)
	}
	return Statistics{ExercisesCount: len(linked), TotalSessions: total, Periods: periods}, nil
}

// anyActive is true when at least one entry is not explicitly switched off.
func anyActive(entries []schedule.Entry) bool {
	for _, e := range entries {
		if e.Active == nil || *e.Active {
			return true
		}
	}
	return false
}

// legacySessions counts distinct (day, week) pairs on exercise rows, multiplied by
// the number of distinct periods seen on those rows when there are any.
func legacySessions(rows []domain.CatalogEntity) int {
	pairs := map[slot]struct{}{}
	periods := map[int]struct{}{}
	for _, r := range rows {
		if r.Week == nil || r.Day == nil {
			continue
		}
		pairs[slot{week: *r.Week, day: *r.Day}] = struct{}{}
		if r.Period != nil {
			periods[*r.Period] = struct{}{}
		}
	}
	if len(periods) == 0 {
		return len(pairs)
	}
	return len(pairs) * len(periods)
}

// periods reads the activity's period multiplier, 1 when absent or non-positive.
func (c *Calculator) periods(ctx context.Context, activityID int64) (int, error) {
	rec, err := c.schedules.GetPeriods(ctx, activityID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 1, nil
		}
		return 0, fmt.Errorf("periods: %w", err)
	}
	if rec.Count < 1 {
		return 1, nil
	}
	return rec.Count, nil
}
