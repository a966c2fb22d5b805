package schedule

// Field aliases seen across the history of the schedule documents.
// The first alias present wins; for ids only a positive value counts as present.
var (
	idKeys     = []string{"id", "ejercicioId", "exerciseId", "ejercicio_id", "exercise_id"}
	blockKeys  = []string{"block", "bloque"}
	orderKeys  = []string{"orden", "order"}
	activeKeys = []string{"activo", "is_active"}
	itemKeys   = []string{"ejercicios", "exercises"}
)

const (
	keyBlockNames = "blockNames"
	keyBlockCount = "blockCount"
)

// Entry is one normalized exercise (or plate) reference inside a day.
type Entry struct {
	ID    int
	Block int // >= 1
	Order int // 1-based within the day
	// Active is nil when the cell did not say; resolution falls back to the entity.
	Active *bool
	// Source keeps every field the cell carried so nothing is lost downstream.
	Source map[string]interface{}
}

// Day is the normalized content of one day cell.
type Day struct {
	Entries    []Entry           `json:"ejercicios"`
	BlockNames map[string]string `json:"blockNames"`
	BlockCount int               `json:"blockCount"`
}

// IsEmpty reports whether the day holds no entries.
func (d Day) IsEmpty() bool {
	return len(d.Entries) == 0
}

// Raw renders the entry back into the canonical stored shape.
func (e Entry) Raw() map[string]interface{} {
	out := make(map[string]interface{}, len(e.Source)+5)
	for k, v := range e.Source {
		out[k] = v
	}
	out["id"] = e.ID
	out["block"] = e.Block
	out["bloque"] = e.Block
	out["orden"] = e.Order
	if e.Active != nil {
		out["activo"] = *e.Active
	}
	return out
}

// InlineName is the display name the cell carried for this entry, if any.
func (e Entry) InlineName() string {
	for _, key := range []string{"name", "nombre", "nombre_ejercicio", "nombre_plato"} {
		if s := stringValue(e.Source[key]); s != "" {
			return s
		}
	}
	return ""
}

// normalizeItems turns array items into entries. A positive block overrides whatever
// block the items declare (block-map keys win). offset shifts the default order when
// several arrays are concatenated into one day.
func normalizeItems(items []interface{}, block, offset int) []Entry {
	entries := make([]Entry, 0, len(items))
	for i, item := range items {
		position := offset + i
		var e Entry
		if m, ok := item.(map[string]interface{}); ok {
			e = entryFromObject(m, position)
		} else {
			id, _ := intValue(item)
			e = Entry{ID: id, Block: 1, Order: position + 1, Source: map[string]interface{}{}}
		}
		if block > 0 {
			e.Block = block
		}
		entries = append(entries, e)
	}
	return entries
}

func entryFromObject(m map[string]interface{}, position int) Entry {
	source := make(map[string]interface{}, len(m))
	for k, v := range m {
		source[k] = v
	}

	e := Entry{Block: 1, Order: position + 1, Source: source}
	e.ID = firstPositiveInt(m, idKeys)
	if v, ok := firstInt(m, blockKeys); ok && v >= 1 {
		e.Block = v
	}
	if v, ok := firstInt(m, orderKeys); ok && v >= 1 {
		e.Order = v
	}
	if v, ok := firstBool(m, activeKeys); ok {
		e.Active = &v
	}
	return e
}

func firstInt(m map[string]interface{}, keys []string) (int, bool) {
	for _, k := range keys {
		if v, ok := intValue(m[k]); ok {
			return v, true
		}
	}
	return 0, false
}

// firstPositiveInt returns the first alias holding an id above zero, or 0.
func firstPositiveInt(m map[string]interface{}, keys []string) int {
	for _, k := range keys {
		if v, ok := intValue(m[k]); ok && v > 0 {
			return v
		}
	}
	return 0
}

func firstBool(m map[string]interface{}, keys []string) (bool, bool) {
	for _, k := range keys {
		if v, ok := boolValue(m[k]); ok {
			return v, true
		}
	}
	return false, false
}
