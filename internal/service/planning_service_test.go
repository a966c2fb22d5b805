package service

import (
	"alcyxob/coaching-marketplace/internal/domain"
	"alcyxob/coaching-marketplace/internal/observability"
	"alcyxob/coaching-marketplace/internal/repository/memory"
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool { return &b }

func newPlanningService(s *memory.Store) PlanningService {
	return NewPlanningService(s.Activities(), s.Schedules(), s.Exercises(), s.Plates())
}

func seedSquatProgram(s *memory.Store) {
	s.AddActivity(domain.Activity{ID: 42, CoachID: "c1", Title: "Strength", Type: domain.TypeProgram, Categoria: "fitness"})
	s.AddExercise(domain.CatalogEntity{ID: 5, Name: "Squat", IsActive: boolPtr(true), ActivityMap: map[string]interface{}{"42": true}})
	s.AddWeeklyPlan(domain.PlanExercises, domain.WeeklyPlan{ActivityID: 42, WeekNumber: 1, Lunes: `[{"id":5,"block":2}]`})
}

func TestGetPlanningResolvesSchedule(t *testing.T) {
	store := memory.NewStore()
	seedSquatProgram(store)

	plan, err := newPlanningService(store).GetPlanning(context.Background(), 42)
	require.NoError(t, err)

	require.Equal(t, 1, plan.Semanas)
	require.Equal(t, 1, plan.Periods)
	require.Equal(t, 1, plan.TotalSessions)
	require.Equal(t, []string{"Squat"}, plan.UniqueExercises)

	day := plan.WeeklySchedule["1"]["1"]
	require.Equal(t, 2, day.BlockCount)
	require.Len(t, day.Exercises, 1)
	ex := day.Exercises[0]
	require.Equal(t, int64(5), ex.ID)
	require.Equal(t, "Squat", ex.Name)
	require.Equal(t, 2, ex.Block)
	require.Equal(t, 1, ex.Order)
	require.True(t, ex.Active)
	require.True(t, ex.Resolved)
}

func TestGetPlanningValidation(t *testing.T) {
	svc := newPlanningService(memory.NewStore())

	_, err := svc.GetPlanning(context.Background(), 0)
	require.ErrorIs(t, err, ErrInvalidActivityID)

	_, err = svc.GetPlanning(context.Background(), 404)
	require.ErrorIs(t, err, ErrActivityNotFound)
}

func TestGetPlanningStoreFailure(t *testing.T) {
	store := memory.NewStore()
	seedSquatProgram(store)
	boom := errors.New("no reachable servers")
	store.FailWith(boom)

	_, err := newPlanningService(store).GetPlanning(context.Background(), 42)
	require.ErrorIs(t, err, ErrStoreUnavailable)
	require.ErrorIs(t, err, boom)
}

func TestGetPlanningWorkshopIsEmpty(t *testing.T) {
	store := memory.NewStore()
	store.AddActivity(domain.Activity{ID: 7, Type: domain.TypeWorkshop})
	store.AddWeeklyPlan(domain.PlanExercises, domain.WeeklyPlan{ActivityID: 7, WeekNumber: 1, Lunes: "1"})
	store.SetPeriods(7, 3)

	plan, err := newPlanningService(store).GetPlanning(context.Background(), 7)
	require.NoError(t, err)
	require.Empty(t, plan.WeeklySchedule)
	require.Equal(t, 3, plan.Periods)
	require.Equal(t, []string{}, plan.UniqueExercises)
}

func TestGetPlanningNutritionUsesPlates(t *testing.T) {
	store := memory.NewStore()
	store.AddActivity(domain.Activity{ID: 9, Type: domain.TypeProgram, Categoria: "nutricion"})
	store.AddPlate(domain.CatalogEntity{ID: 7, Name: "Oatmeal", ActivityMap: `{"9":{"activo":false}}`})
	store.AddExercise(domain.CatalogEntity{ID: 7, Name: "Press", ActivityMap: map[string]interface{}{"9": true}})
	store.AddWeeklyPlan(domain.PlanPlates, domain.WeeklyPlan{ActivityID: 9, WeekNumber: 2, Miercoles: "7"})
	store.SetPeriods(9, 4)

	plan, err := newPlanningService(store).GetPlanning(context.Background(), 9)
	require.NoError(t, err)

	require.Equal(t, 4, plan.Periods)
	require.Equal(t, []string{"Oatmeal"}, plan.UniqueExercises)
	ex := plan.WeeklySchedule["2"]["3"].Exercises[0]
	require.False(t, ex.Active, "per-activity override switches the plate off")
}

func TestGetPlanningFallsBackForUnknownIDs(t *testing.T) {
	store := memory.NewStore()
	store.AddActivity(domain.Activity{ID: 42, Type: domain.TypeProgram})
	// linked to another activity; found by the second pass
	store.AddExercise(domain.CatalogEntity{ID: 8, Name: "Lunge", ActivityMap: map[string]interface{}{"1": false}})
	store.AddWeeklyPlan(domain.PlanExercises, domain.WeeklyPlan{
		ActivityID: 42, WeekNumber: 1,
		Martes: `[{"id":8},{"id":99,"nombre":"Stretch"},{"id":100}]`,
	})

	before := testutil.ToFloat64(observability.UnresolvedEntities)
	plan, err := newPlanningService(store).GetPlanning(context.Background(), 42)
	require.NoError(t, err)
	require.Equal(t, before+2, testutil.ToFloat64(observability.UnresolvedEntities))

	exercises := plan.WeeklySchedule["1"]["2"].Exercises
	require.Len(t, exercises, 3)
	require.Equal(t, "Lunge", exercises[0].Name)
	require.True(t, exercises[0].Active, "no override for this activity, entity default applies")
	require.True(t, exercises[0].Resolved)
	require.Equal(t, "Stretch", exercises[1].Name)
	require.False(t, exercises[1].Resolved)
	require.Equal(t, "Ejercicio 3", exercises[2].Name)
}

func TestGetPlanningCountsCellVariants(t *testing.T) {
	store := memory.NewStore()
	seedSquatProgram(store)
	cells := observability.ScheduleCells.WithLabelValues("entry_array")
	before := testutil.ToFloat64(cells)

	_, err := newPlanningService(store).GetPlanning(context.Background(), 42)
	require.NoError(t, err)
	require.Equal(t, before+1, testutil.ToFloat64(cells))
}
