package schedule

import (
	"alcyxob/coaching-marketplace/internal/domain"
	"encoding/json"
	"sort"
	"strconv"
)

// ParsedWeek holds the normalized cells of one stored week, Monday first.
type ParsedWeek struct {
	Week int
	Days [domain.DaysPerWeek]Day
}

// ParseWeeks normalizes every cell of the given plan records. The optional observe
// callback sees the variant of each decoded cell.
func ParseWeeks(plans []domain.WeeklyPlan, observe func(Variant)) []ParsedWeek {
	weeks := make([]ParsedWeek, 0, len(plans))
	for i := range plans {
		pw := ParsedWeek{Week: plans[i].WeekNumber}
		for d, raw := range plans[i].Cells() {
			cell := DecodeCell(raw)
			if observe != nil {
				observe(cell.Variant())
			}
			pw.Days[d] = cell.Normalize()
		}
		weeks = append(weeks, pw)
	}
	return weeks
}

// ScheduledExercise is a resolved entry as returned to clients.
type ScheduledExercise struct {
	ID          int64
	Name        string
	Type        string
	Description string
	VideoURL    string
	Block       int
	Order       int
	Active      bool
	Resolved    bool

	extra    map[string]interface{}
	position int
}

// MarshalJSON merges the cell's passthrough fields with the canonical ones,
// canonical keys winning.
func (s ScheduledExercise) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(s.extra)+10)
	for k, v := range s.extra {
		out[k] = v
	}
	out["id"] = s.ID
	out["name"] = s.Name
	out["block"] = s.Block
	out["bloque"] = s.Block
	out["orden"] = s.Order
	out["activo"] = s.Active
	if s.Type != "" {
		out["tipo"] = s.Type
	}
	if s.Description != "" {
		out["descripcion"] = s.Description
	}
	if s.VideoURL != "" {
		out["video_url"] = s.VideoURL
	}
	return json.Marshal(out)
}

// DaySchedule is one populated day of the final schedule.
type DaySchedule struct {
	Exercises  []ScheduledExercise `json:"ejercicios"`
	BlockNames map[string]string   `json:"blockNames"`
	BlockCount int                 `json:"blockCount"`
}

// WeeklySchedule maps week number -> day number (1-7) -> day. Keys are decimal strings.
type WeeklySchedule map[string]map[string]DaySchedule

// Plan is the planning payload for one activity.
type Plan struct {
	WeeklySchedule  WeeklySchedule `json:"weeklySchedule"`
	Periods         int            `json:"periods"`
	TotalSessions   int            `json:"totalSessions"`
	UniqueExercises []string       `json:"uniqueExercises"`
	Semanas         int            `json:"semanas"`
}

// EmptyPlan is the payload for an activity with nothing scheduled.
func EmptyPlan(periods int) *Plan {
	if periods < 1 {
		periods = 1
	}
	return &Plan{WeeklySchedule: WeeklySchedule{}, Periods: periods, UniqueExercises: []string{}}
}

// Assemble builds the weekly schedule. Entries are matched against the resolved
// entities; anything unresolved gets an inline fallback. Weeks are walked in
// ascending order so uniqueExercises keeps first-seen order.
func Assemble(weeks []ParsedWeek, resolved map[int64]ResolvedEntity, periods int) *Plan {
	plan := EmptyPlan(periods)

	ordered := make([]ParsedWeek, len(weeks))
	copy(ordered, weeks)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Week < ordered[j].Week })

	seenNames := map[string]struct{}{}
	for _, w := range ordered {
		weekKey := strconv.Itoa(w.Week)
		for d, day := range w.Days {
			if day.IsEmpty() {
				continue
			}
			dayKey := strconv.Itoa(d + 1)

			week, ok := plan.WeeklySchedule[weekKey]
			if !ok {
				week = map[string]DaySchedule{}
				plan.WeeklySchedule[weekKey] = week
			}
			slot, existed := week[dayKey]
			if !existed {
				slot = DaySchedule{BlockNames: map[string]string{}, BlockCount: 1}
				plan.TotalSessions++
			}

			for _, entry := range day.Entries {
				item := scheduledFrom(entry, resolved, len(slot.Exercises))
				slot.Exercises = append(slot.Exercises, item)
				if _, dup := seenNames[item.Name]; !dup {
					seenNames[item.Name] = struct{}{}
					plan.UniqueExercises = append(plan.UniqueExercises, item.Name)
				}
			}
			for k, v := range day.BlockNames {
				slot.BlockNames[k] = v
			}
			if day.BlockCount > slot.BlockCount {
				slot.BlockCount = day.BlockCount
			}
			sort.SliceStable(slot.Exercises, func(i, j int) bool {
				a, b := slot.Exercises[i], slot.Exercises[j]
				if a.Order != b.Order {
					return a.Order < b.Order
				}
				return a.position < b.position
			})
			week[dayKey] = slot
		}
	}

	plan.Semanas = len(plan.WeeklySchedule)
	return plan
}

func scheduledFrom(entry Entry, resolved map[int64]ResolvedEntity, position int) ScheduledExercise {
	entity, ok := resolved[int64(entry.ID)]
	if !ok {
		entity = Fallback(entry)
	}
	name := entity.Name
	if name == "" {
		name = "Ejercicio " + strconv.Itoa(entry.Order)
	}
	return ScheduledExercise{
		ID:          int64(entry.ID),
		Name:        name,
		Type:        entity.Type,
		Description: entity.Description,
		VideoURL:    entity.VideoURL,
		Block:       entry.Block,
		Order:       entry.Order,
		Active:      EntryActive(entry, &entity),
		Resolved:    ok,
		extra:       entry.Source,
		position:    position,
	}
}
