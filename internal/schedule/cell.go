package schedule

import (
	"sort"
	"strconv"
	"strings"
)

// Variant names the storage shape a day cell was written in.
type Variant string

const (
	VariantEmpty      Variant = "empty"
	VariantIDList     Variant = "id_list"
	VariantEntryArray Variant = "entry_array"
	VariantBlockMap   Variant = "block_map"
	VariantWrapped    Variant = "wrapped"
)

// maxDecodeDepth bounds how many times a string cell may decode into another string.
const maxDecodeDepth = 4

// Cell is one decoded day cell. Each variant knows how to reduce itself
// to the canonical entry list.
type Cell interface {
	Variant() Variant
	Normalize() Day
}

// EmptyCell is a null, blank or unrecognised cell.
type EmptyCell struct{}

// IDListCell is a comma separated list of ids, e.g. "4,8,15".
type IDListCell struct {
	IDs []int
}

// EntryArrayCell is a plain array of entry objects (or bare ids).
type EntryArrayCell struct {
	Items []interface{}
}

// BlockGroup is the array stored under one key of a block map.
// Block is 0 when the key was not an integer.
type BlockGroup struct {
	Block int
	Items []interface{}
}

// BlockMapCell is an object keyed by block number.
type BlockMapCell struct {
	Groups     []BlockGroup
	BlockNames map[string]string
}

// WrappedCell is an object carrying the entries under "ejercicios".
type WrappedCell struct {
	Items      []interface{}
	BlockNames map[string]string
	BlockCount int
}

func (EmptyCell) Variant() Variant      { return VariantEmpty }
func (IDListCell) Variant() Variant     { return VariantIDList }
func (EntryArrayCell) Variant() Variant { return VariantEntryArray }
func (BlockMapCell) Variant() Variant   { return VariantBlockMap }
func (WrappedCell) Variant() Variant    { return VariantWrapped }

// DecodeCell classifies a raw cell. Precedence: empty, string, array, object.
// It never fails; anything unreadable ends up as the most permissive variant that
// still keeps the data.
func DecodeCell(raw interface{}) Cell {
	return decodeCell(raw, 0)
}

// ParseCell decodes and normalizes a raw day cell in one step.
func ParseCell(raw interface{}) Day {
	return DecodeCell(raw).Normalize()
}

func decodeCell(raw interface{}, depth int) Cell {
	switch v := raw.(type) {
	case nil:
		return EmptyCell{}
	case string:
		return decodeString(v, depth)
	case []interface{}:
		if len(v) == 0 {
			return EmptyCell{}
		}
		return EntryArrayCell{Items: v}
	case map[string]interface{}:
		return decodeObject(v)
	case bool:
		return EmptyCell{}
	}
	// A bare number is a single id.
	if id, ok := intValue(raw); ok {
		return IDListCell{IDs: []int{id}}
	}
	return EmptyCell{}
}

func decodeString(s string, depth int) Cell {
	s = strings.TrimSpace(s)
	if s == "" {
		return EmptyCell{}
	}
	decoded, ok := decodeJSON(s)
	if !ok {
		return parseIDList(s)
	}
	if inner, isString := decoded.(string); isString {
		if depth >= maxDecodeDepth {
			return parseIDList(inner)
		}
		return decodeCell(inner, depth+1)
	}
	return decodeCell(decoded, depth+1)
}

func parseIDList(s string) Cell {
	parts := strings.Split(s, ",")
	ids := make([]int, 0, len(parts))
	for _, part := range parts {
		if id, ok := intValue(part); ok {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return EmptyCell{}
	}
	return IDListCell{IDs: ids}
}

func decodeObject(m map[string]interface{}) Cell {
	names := stringMap(m[keyBlockNames])
	if items, ok := wrappedItems(m); ok {
		count, _ := intValue(m[keyBlockCount])
		return WrappedCell{Items: items, BlockNames: names, BlockCount: count}
	}

	keys := make([]string, 0, len(m))
	for k, v := range m {
		if _, isArray := v.([]interface{}); isArray {
			keys = append(keys, k)
		}
	}
	sortBlockKeys(keys)

	groups := make([]BlockGroup, 0, len(keys))
	for _, k := range keys {
		block, _ := intValue(k)
		groups = append(groups, BlockGroup{Block: block, Items: m[k].([]interface{})})
	}
	return BlockMapCell{Groups: groups, BlockNames: names}
}

// wrappedItems finds the entry array under one of the wrapper aliases.
// The array may itself be JSON encoded.
func wrappedItems(m map[string]interface{}) ([]interface{}, bool) {
	for _, key := range itemKeys {
		v, present := m[key]
		if !present {
			continue
		}
		if s, isString := v.(string); isString {
			decoded, ok := decodeJSON(s)
			if !ok {
				continue
			}
			v = decoded
		}
		if items, ok := v.([]interface{}); ok {
			return items, true
		}
	}
	return nil, false
}

// sortBlockKeys orders integer keys numerically, then anything else lexically.
func sortBlockKeys(keys []string) {
	sort.Slice(keys, func(i, j int) bool {
		a, errA := strconv.Atoi(keys[i])
		b, errB := strconv.Atoi(keys[j])
		switch {
		case errA == nil && errB == nil:
			return a < b
		case errA == nil:
			return true
		case errB == nil:
			return false
		}
		return keys[i] < keys[j]
	})
}

func (EmptyCell) Normalize() Day {
	return finalize(nil, nil)
}

func (c IDListCell) Normalize() Day {
	entries := make([]Entry, 0, len(c.IDs))
	for i, id := range c.IDs {
		entries = append(entries, Entry{ID: id, Block: 1, Order: i + 1, Source: map[string]interface{}{}})
	}
	return finalize(entries, nil)
}

func (c EntryArrayCell) Normalize() Day {
	return finalize(normalizeItems(c.Items, 0, 0), nil)
}

func (c BlockMapCell) Normalize() Day {
	var entries []Entry
	for _, g := range c.Groups {
		entries = append(entries, normalizeItems(g.Items, g.Block, len(entries))...)
	}
	return finalize(entries, c.BlockNames)
}

// Normalize ignores the stored BlockCount; it is recomputed from the entries.
func (c WrappedCell) Normalize() Day {
	return finalize(normalizeItems(c.Items, 0, 0), c.BlockNames)
}

func finalize(entries []Entry, names map[string]string) Day {
	if entries == nil {
		entries = []Entry{}
	}
	if names == nil {
		names = map[string]string{}
	}
	count := 1
	for _, e := range entries {
		if e.Block > count {
			count = e.Block
		}
	}
	return Day{Entries: entries, BlockNames: names, BlockCount: count}
}
