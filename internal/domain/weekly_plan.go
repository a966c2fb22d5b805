// internal/domain/weekly_plan.go
package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

// PlanKind selects which weekly-plan collection an activity reads from.
type PlanKind string

const (
	PlanExercises PlanKind = "exercises" // fitness programs
	PlanPlates    PlanKind = "plates"    // nutrition programs
)

// DaysPerWeek is the number of day cells on every weekly plan record.
const DaysPerWeek = 7

// WeeklyPlan is one stored week of an activity's schedule.
// Every day field is a raw cell: nil, a string, an array or a document,
// depending on when the record was written.
type WeeklyPlan struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	ActivityID int64              `bson:"actividad_id" json:"actividad_id"`
	WeekNumber int                `bson:"numero_semana" json:"numero_semana"`
	Lunes      interface{}        `bson:"lunes,omitempty" json:"lunes,omitempty"`
	Martes     interface{}        `bson:"martes,omitempty" json:"martes,omitempty"`
	Miercoles  interface{}        `bson:"miercoles,omitempty" json:"miercoles,omitempty"`
	Jueves     interface{}        `bson:"jueves,omitempty" json:"jueves,omitempty"`
	Viernes    interface{}        `bson:"viernes,omitempty" json:"viernes,omitempty"`
	Sabado     interface{}        `bson:"sabado,omitempty" json:"sabado,omitempty"`
	Domingo    interface{}        `bson:"domingo,omitempty" json:"domingo,omitempty"`
}

// Cells returns the day cells Monday first.
func (w *WeeklyPlan) Cells() [DaysPerWeek]interface{} {
	return [DaysPerWeek]interface{}{w.Lunes, w.Martes, w.Miercoles, w.Jueves, w.Viernes, w.Sabado, w.Domingo}
}

// SetCells replaces every day cell, Monday first.
func (w *WeeklyPlan) SetCells(cells [DaysPerWeek]interface{}) {
	w.Lunes, w.Martes, w.Miercoles, w.Jueves = cells[0], cells[1], cells[2], cells[3]
	w.Viernes, w.Sabado, w.Domingo = cells[4], cells[5], cells[6]
}

// PeriodsRecord stores how many times the base weekly plan repeats.
type PeriodsRecord struct {
	ActivityID int64 `bson:"actividad_id" json:"actividad_id"`
	Count      int   `bson:"cantidad_periodos" json:"cantidad_periodos"`
}
