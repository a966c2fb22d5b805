package schedule

import (
	"strconv"
)

// OverrideMap is the per-activity membership and active flag attached to a shared
// exercise or plate. A member without a readable flag maps to nil.
type OverrideMap map[string]*bool

// DecodeOverrideMap reads the stored map, which may be a document, a JSON string,
// or a legacy list of activity ids. Unreadable input yields an empty map.
func DecodeOverrideMap(raw interface{}) OverrideMap {
	if s, ok := raw.(string); ok {
		decoded, ok := decodeJSON(s)
		if !ok {
			return OverrideMap{}
		}
		raw = decoded
	}

	out := OverrideMap{}
	switch v := raw.(type) {
	case map[string]interface{}:
		for key, val := range v {
			out[key] = overrideFlag(val)
		}
	case []interface{}:
		for _, item := range v {
			if id, ok := intValue(item); ok {
				out[strconv.Itoa(id)] = nil
			}
		}
	}
	return out
}

// overrideFlag accepts a bare boolean or an object with an activo/active/is_active field.
func overrideFlag(v interface{}) *bool {
	if m, ok := v.(map[string]interface{}); ok {
		for _, key := range []string{"activo", "active", "is_active"} {
			if b, ok := boolValue(m[key]); ok {
				return &b
			}
		}
		return nil
	}
	if b, ok := boolValue(v); ok {
		return &b
	}
	return nil
}

// Contains reports whether the entity is linked to the activity.
func (m OverrideMap) Contains(activityID int64) bool {
	_, ok := m[strconv.FormatInt(activityID, 10)]
	return ok
}

// Flag returns the explicit active flag for the activity, if one is set.
func (m OverrideMap) Flag(activityID int64) (bool, bool) {
	v := m[strconv.FormatInt(activityID, 10)]
	if v == nil {
		return false, false
	}
	return *v, true
}

// EntityActive resolves whether an entity is active for one activity:
// an explicit per-activity override, then the entity's own default, then true.
func EntityActive(overrides OverrideMap, activityID int64, entityDefault *bool) bool {
	if v, ok := overrides.Flag(activityID); ok {
		return v
	}
	if entityDefault != nil {
		return *entityDefault
	}
	return true
}

// EntryActive resolves the active flag of a scheduled entry:
// the cell's own activo/is_active, then the resolved entity, then true.
func EntryActive(entry Entry, entity *ResolvedEntity) bool {
	if entry.Active != nil {
		return *entry.Active
	}
	if entity != nil {
		return entity.IsActive
	}
	return true
}
