package schedule

import (
	"alcyxob/coaching-marketplace/internal/domain"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeCellVariants(t *testing.T) {
	tests := []struct {
		name string
		raw  interface{}
		want Variant
	}{
		{name: "nil", raw: nil, want: VariantEmpty},
		{name: "blank string", raw: "   ", want: VariantEmpty},
		{name: "json null string", raw: "null", want: VariantEmpty},
		{name: "empty json array", raw: "[]", want: VariantEmpty},
		{name: "comma ids", raw: "1,2,3", want: VariantIDList},
		{name: "single numeric string", raw: "7", want: VariantIDList},
		{name: "bare number", raw: float64(9), want: VariantIDList},
		{name: "json array string", raw: `[{"id":5}]`, want: VariantEntryArray},
		{name: "array", raw: []interface{}{map[string]interface{}{"id": 1}}, want: VariantEntryArray},
		{name: "wrapped", raw: map[string]interface{}{"ejercicios": []interface{}{}}, want: VariantWrapped},
		{name: "wrapped english key", raw: map[string]interface{}{"exercises": []interface{}{1}}, want: VariantWrapped},
		{name: "block map", raw: map[string]interface{}{"1": []interface{}{1}}, want: VariantBlockMap},
		{name: "json object string", raw: `{"2":[{"id":4}]}`, want: VariantBlockMap},
		{name: "double encoded", raw: `"4,5"`, want: VariantIDList},
		{name: "boolean", raw: true, want: VariantEmpty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, DecodeCell(tt.raw).Variant())
		})
	}
}

func TestParseCellCommaSeparatedIDs(t *testing.T) {
	for _, raw := range []string{"1,2,3", " 10 , 20 ,30", "4,8,15"} {
		day := ParseCell(raw)
		require.Len(t, day.Entries, 3, raw)
		for i, e := range day.Entries {
			require.Equal(t, i+1, e.Order)
			require.Equal(t, 1, e.Block)
			require.Nil(t, e.Active)
		}
		require.Equal(t, 1, day.BlockCount)
	}

	day := ParseCell("4,8,15")
	require.Equal(t, []int{4, 8, 15}, ids(day))
}

func TestParseCellCommaListSkipsGarbage(t *testing.T) {
	day := ParseCell("3,abc,,9")
	require.Equal(t, []int{3, 9}, ids(day))
	require.Equal(t, 2, day.Entries[1].Order)
}

func TestParseCellBlockMap(t *testing.T) {
	raw := map[string]interface{}{
		"1": []interface{}{
			map[string]interface{}{"id": float64(10)},
			map[string]interface{}{"id": float64(11), "bloque": float64(7)},
		},
		"2":          []interface{}{map[string]interface{}{"id": float64(12)}},
		"blockNames": map[string]interface{}{"1": "Warm-up", "2": "Main"},
	}

	day := ParseCell(raw)
	require.Equal(t, []int{10, 11, 12}, ids(day))
	require.Equal(t, 1, day.Entries[0].Block)
	require.Equal(t, 1, day.Entries[1].Block, "the key decides the block")
	require.Equal(t, 2, day.Entries[2].Block)
	require.Equal(t, 2, day.BlockCount)
	require.Equal(t, map[string]string{"1": "Warm-up", "2": "Main"}, day.BlockNames)
	require.Equal(t, []int{1, 2, 3}, orders(day))
}

func TestParseCellBlockMapOrdersKeysNumerically(t *testing.T) {
	day := ParseCell(`{"10":[{"id":3}],"2":[{"id":2}],"1":[{"id":1}]}`)
	require.Equal(t, []int{1, 2, 3}, ids(day))
	require.Equal(t, 10, day.BlockCount)
}

func TestParseCellEntryAliases(t *testing.T) {
	raw := []interface{}{
		map[string]interface{}{"ejercicioId": "21", "bloque": float64(3)},
		map[string]interface{}{"exercise_id": int32(22), "block": int64(2), "orden": float64(9)},
		map[string]interface{}{"exerciseId": float64(23), "is_active": false},
		map[string]interface{}{"ejercicio_id": float64(24), "activo": true, "is_active": false},
		float64(25),
	}

	day := ParseCell(raw)
	require.Equal(t, []int{21, 22, 23, 24, 25}, ids(day))
	require.Equal(t, 3, day.Entries[0].Block)
	require.Equal(t, 1, day.Entries[0].Order)
	require.Equal(t, 9, day.Entries[1].Order)
	require.False(t, *day.Entries[2].Active)
	require.True(t, *day.Entries[3].Active, "activo wins over is_active")
	require.Equal(t, 5, day.Entries[4].Order)
	require.Equal(t, 3, day.BlockCount)

	raw0 := day.Entries[0].Raw()
	require.Equal(t, 3, raw0["block"])
	require.Equal(t, 3, raw0["bloque"])
}

func TestParseCellSkipsZeroIDAliases(t *testing.T) {
	day := ParseCell(`[{"id":0,"ejercicioId":5},{"id":null,"exerciseId":6},{"id":"0"}]`)
	require.Equal(t, []int{5, 6, 0}, ids(day))
	require.Equal(t, []int64{5, 6}, CollectIDs([]ParsedWeek{{Week: 1, Days: [domain.DaysPerWeek]Day{day}}}))
}

func TestParseCellWrappedRecomputesBlockCount(t *testing.T) {
	raw := `{"ejercicios":[{"id":1,"block":1},{"id":2,"block":2}],"blockCount":5,"blockNames":{"2":"Finisher"}}`
	day := ParseCell(raw)
	require.Equal(t, []int{1, 2}, ids(day))
	require.Equal(t, 2, day.BlockCount)
	require.Equal(t, "Finisher", day.BlockNames["2"])
}

func TestParseCellWrappedEmptyKeepsBlockCountOne(t *testing.T) {
	day := ParseCell(map[string]interface{}{"ejercicios": []interface{}{}, "blockCount": float64(4)})
	require.True(t, day.IsEmpty())
	require.Equal(t, 1, day.BlockCount)
}

func TestParseCellKeepsSourceFields(t *testing.T) {
	day := ParseCell(`[{"id":5,"series":4,"reps":"8-10"}]`)
	require.Equal(t, float64(4), day.Entries[0].Source["series"])
	require.Equal(t, "8-10", day.Entries[0].Source["reps"])
}

func TestParseCellIsIdempotent(t *testing.T) {
	inputs := []interface{}{
		`[{"id":5,"block":2},{"id":6,"orden":4,"activo":false},{"exerciseId":7,"is_active":true}]`,
		map[string]interface{}{
			"1": []interface{}{map[string]interface{}{"id": float64(1)}},
			"3": []interface{}{map[string]interface{}{"id": float64(2)}, float64(3)},
		},
		`{"ejercicios":[{"id":8,"bloque":2}]}`,
	}

	for _, in := range inputs {
		first := ParseCell(in)
		rewrapped := make([]interface{}, 0, len(first.Entries))
		for _, e := range first.Entries {
			rewrapped = append(rewrapped, e.Raw())
		}
		second := ParseCell(map[string]interface{}{"ejercicios": rewrapped})

		require.Equal(t, canonical(first), canonical(second))
		require.Equal(t, first.BlockCount, second.BlockCount)
	}
}

func TestParseCellNeverPanics(t *testing.T) {
	inputs := []interface{}{
		"{", "[1,", `{"ejercicios":"not json"}`, `{"ejercicios":5}`, `"""`,
		map[string]interface{}{"1": "x"}, []interface{}{nil, true, "abc"}, struct{}{},
	}
	for _, in := range inputs {
		require.NotPanics(t, func() { ParseCell(in) })
	}
}

func TestParseCellMalformedJSONFallsBackToIDs(t *testing.T) {
	day := ParseCell("[12, 13")
	require.Equal(t, []int{13}, ids(day), "best effort: only clean integers survive")
}

type canonicalEntry struct {
	ID, Block, Order int
	Active           *bool
}

func canonical(d Day) []canonicalEntry {
	out := make([]canonicalEntry, 0, len(d.Entries))
	for _, e := range d.Entries {
		out = append(out, canonicalEntry{ID: e.ID, Block: e.Block, Order: e.Order, Active: e.Active})
	}
	return out
}

func ids(d Day) []int {
	out := make([]int, 0, len(d.Entries))
	for _, e := range d.Entries {
		out = append(out, e.ID)
	}
	return out
}

func orders(d Day) []int {
	out := make([]int, 0, len(d.Entries))
	for _, e := range d.Entries {
		out = append(out, e.Order)
	}
	return out
}
