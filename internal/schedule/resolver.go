package schedule

import (
	"alcyxob/coaching-marketplace/internal/domain"
	"context"
	"fmt"
	"log/slog"
	"sort"
)

// EntityLookup is the slice of the record store the resolver needs.
// repository.CatalogEntityRepository satisfies it.
type EntityLookup interface {
	GetLinkedByIDs(ctx context.Context, activityID int64, ids []int64) ([]domain.CatalogEntity, error)
	GetByIDs(ctx context.Context, ids []int64) ([]domain.CatalogEntity, error)
}

// ResolvedEntity is the detail attached to scheduled entries.
type ResolvedEntity struct {
	ID          int64
	Name        string
	Type        string
	Description string
	VideoURL    string
	IsActive    bool
	// Synthetic marks a fallback built from inline cell data.
	Synthetic bool
}

// Resolution is the outcome of resolving one request's ids.
type Resolution struct {
	Entities map[int64]ResolvedEntity
	// Missing lists ids neither pass could find, ascending.
	Missing []int64
}

// Resolver resolves exercise/plate ids for one activity.
type Resolver struct {
	lookup EntityLookup
}

// NewResolver creates a resolver backed by the given lookup.
func NewResolver(lookup EntityLookup) *Resolver {
	return &Resolver{lookup: lookup}
}

// Resolve runs two batched passes. The first fetches every id linked to the activity
// in one call; the second gathers whatever the first missed across the whole request
// and re-queries once without the activity restriction. A failing first pass means the
// store is unusable and is returned as an error; a failing second pass is logged and
// the ids are left for the caller's fallback.
func (r *Resolver) Resolve(ctx context.Context, activityID int64, ids []int64) (Resolution, error) {
	res := Resolution{Entities: make(map[int64]ResolvedEntity, len(ids))}
	if len(ids) == 0 {
		return res, nil
	}

	linked, err := r.lookup.GetLinkedByIDs(ctx, activityID, ids)
	if err != nil {
		return res, fmt.Errorf("resolve entities for activity %d: %w", activityID, err)
	}
	for _, e := range linked {
		overrides := DecodeOverrideMap(e.ActivityMap)
		if !overrides.Contains(activityID) {
			continue // string-encoded map that turned out not to include this activity
		}
		res.Entities[e.ID] = resolvedFrom(e, overrides, activityID)
	}

	unresolved := missingIDs(ids, res.Entities)
	if len(unresolved) > 0 {
		shared, err := r.lookup.GetByIDs(ctx, unresolved)
		if err != nil {
			slog.WarnContext(ctx, "second entity lookup failed, using inline fallbacks",
				slog.Int64("activity_id", activityID),
				slog.Int("unresolved", len(unresolved)),
				slog.String("error", err.Error()),
			)
		} else {
			for _, e := range shared {
				res.Entities[e.ID] = resolvedFrom(e, DecodeOverrideMap(e.ActivityMap), activityID)
			}
		}
	}

	res.Missing = missingIDs(ids, res.Entities)
	return res, nil
}

func resolvedFrom(e domain.CatalogEntity, overrides OverrideMap, activityID int64) ResolvedEntity {
	return ResolvedEntity{
		ID:          e.ID,
		Name:        e.Name,
		Type:        e.Type,
		Description: e.Description,
		VideoURL:    e.VideoURL,
		IsActive:    EntityActive(overrides, activityID, e.IsActive),
	}
}

func missingIDs(ids []int64, found map[int64]ResolvedEntity) []int64 {
	var out []int64
	for _, id := range ids {
		if _, ok := found[id]; !ok {
			out = append(out, id)
		}
	}
	return out
}

// Fallback builds a synthetic entity from the fields the cell carried inline.
func Fallback(entry Entry) ResolvedEntity {
	return ResolvedEntity{
		ID:          int64(entry.ID),
		Name:        entry.InlineName(),
		Type:        firstString(entry.Source, "tipo", "type"),
		Description: firstString(entry.Source, "descripcion", "description"),
		VideoURL:    firstString(entry.Source, "video_url", "videoUrl"),
		IsActive:    true,
		Synthetic:   true,
	}
}

func firstString(m map[string]interface{}, keys ...string) string {
	for _, k := range keys {
		if s := stringValue(m[k]); s != "" {
			return s
		}
	}
	return ""
}

// CollectIDs returns the distinct positive ids referenced by the weeks, ascending.
func CollectIDs(weeks []ParsedWeek) []int64 {
	seen := map[int64]struct{}{}
	for _, w := range weeks {
		for _, d := range w.Days {
			for _, e := range d.Entries {
				if e.ID > 0 {
					seen[int64(e.ID)] = struct{}{}
				}
			}
		}
	}
	ids := make([]int64, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
