// Package renewal implements the normalization and derivation engine for
// renewal records: the bidirectional wire-shape reconciler, date-driven
// status derivation, and collection filtering/sorting/statistics.
package renewal

import (
	"math"
	"strconv"

	"renewal-tracking-be/internal/entity"
	"renewal-tracking-be/pkg/dateutil"
)

// Shape selects one of the two wire field-naming conventions.
type Shape string

const (
	// ShapeLegacy uses item_name/category/vendor/reminder_days_before.
	ShapeLegacy Shape = "legacy"
	// ShapeCurrent uses service_name/service_type/provider/reminder_type.
	ShapeCurrent Shape = "current"
)

// wireField is one row of the mapping table between wire keys and the
// canonical record. A field missing from a shape has an empty key there.
// Supporting a third shape is a matter of adding a key column, not code.
type wireField struct {
	legacyKey  string
	currentKey string
	assign     func(rec *entity.Renewal, v any)
	value      func(rec *entity.Renewal) (any, bool)
}

var wireFields = []wireField{
	{
		legacyKey: "id", currentKey: "id",
		assign: func(rec *entity.Renewal, v any) { rec.Id = asString(v) },
		value:  func(rec *entity.Renewal) (any, bool) { return rec.Id, rec.Id != "" },
	},
	{
		legacyKey: "user_id", currentKey: "user_id",
		assign: func(rec *entity.Renewal, v any) { rec.OwnerId = asString(v) },
		value:  func(rec *entity.Renewal) (any, bool) { return rec.OwnerId, rec.OwnerId != "" },
	},
	{
		legacyKey: "item_name", currentKey: "service_name",
		assign: func(rec *entity.Renewal, v any) { rec.Name = asString(v) },
		value:  func(rec *entity.Renewal) (any, bool) { return rec.Name, rec.Name != "" },
	},
	{
		legacyKey: "category", currentKey: "service_type",
		assign: func(rec *entity.Renewal, v any) { rec.Kind = entity.RenewalKind(asString(v)) },
		value:  func(rec *entity.Renewal) (any, bool) { return string(rec.Kind), rec.Kind != "" },
	},
	{
		legacyKey: "vendor", currentKey: "provider",
		assign: func(rec *entity.Renewal, v any) { rec.Provider = asString(v) },
		value:  func(rec *entity.Renewal) (any, bool) { return rec.Provider, rec.Provider != "" },
	},
	{
		legacyKey: "start_date", currentKey: "start_date",
		assign: func(rec *entity.Renewal, v any) { rec.StartDate = dateutil.FormatForWire(asString(v)) },
		value: func(rec *entity.Renewal) (any, bool) {
			return dateutil.FormatForWire(rec.StartDate), rec.StartDate != ""
		},
	},
	{
		legacyKey: "end_date", currentKey: "end_date",
		assign: func(rec *entity.Renewal, v any) { rec.EndDate = dateutil.FormatForWire(asString(v)) },
		value:  func(rec *entity.Renewal) (any, bool) { return dateutil.FormatForWire(rec.EndDate), rec.EndDate != "" },
	},
	{
		legacyKey: "cost", currentKey: "cost",
		assign: func(rec *entity.Renewal, v any) { rec.Cost = asFloat(v) },
		value:  func(rec *entity.Renewal) (any, bool) { return rec.Cost, true },
	},
	{
		legacyKey: "status", currentKey: "status",
		assign: func(rec *entity.Renewal, v any) { rec.Status = entity.RenewalStatus(asString(v)) },
		value:  func(rec *entity.Renewal) (any, bool) { return string(rec.Status), rec.Status != "" },
	},
	{
		legacyKey: "notes", currentKey: "notes",
		assign: func(rec *entity.Renewal, v any) { rec.Notes = asString(v) },
		value:  func(rec *entity.Renewal) (any, bool) { return rec.Notes, rec.Notes != "" },
	},
	{
		// Legacy-only numeric lead time. Not converted to/from reminder_type;
		// the two representations are independent canonical fields.
		legacyKey: "reminder_days_before",
		assign: func(rec *entity.Renewal, v any) {
			if n, ok := asIntValue(v); ok {
				rec.ReminderDaysBefore = &n
			}
		},
		value: func(rec *entity.Renewal) (any, bool) {
			if rec.ReminderDaysBefore == nil {
				return nil, false
			}
			return *rec.ReminderDaysBefore, true
		},
	},
	{
		// Current-only categorical channel.
		currentKey: "reminder_type",
		assign: func(rec *entity.Renewal, v any) {
			if s := asString(v); s != "" {
				ch := entity.ReminderChannel(s)
				rec.ReminderChannel = &ch
			}
		},
		value: func(rec *entity.Renewal) (any, bool) {
			if rec.ReminderChannel == nil {
				return nil, false
			}
			return string(*rec.ReminderChannel), true
		},
	},
}

// knownWireKeys is the union of both shapes' key sets.
var knownWireKeys = func() map[string]struct{} {
	keys := make(map[string]struct{})
	for _, f := range wireFields {
		if f.legacyKey != "" {
			keys[f.legacyKey] = struct{}{}
		}
		if f.currentKey != "" {
			keys[f.currentKey] = struct{}{}
		}
	}
	return keys
}()

// ToCanonical reconciles a raw wire object into the canonical record. For
// each semantic field the current-convention key wins when present, with the
// legacy key as fallback. Dates normalize to YYYY-MM-DD ("" when invalid),
// string costs are parsed (0 on failure), and keys this service does not
// model are preserved opaquely in Extra. Structurally odd input never fails;
// it degrades field by field.
func ToCanonical(raw map[string]any) *entity.Renewal {
	rec := &entity.Renewal{}
	if raw == nil {
		return rec
	}
	for _, f := range wireFields {
		if f.currentKey != "" {
			if v, ok := raw[f.currentKey]; ok && v != nil {
				f.assign(rec, v)
				continue
			}
		}
		if f.legacyKey != "" {
			if v, ok := raw[f.legacyKey]; ok && v != nil {
				f.assign(rec, v)
			}
		}
	}
	for k, v := range raw {
		if _, known := knownWireKeys[k]; known {
			continue
		}
		if rec.Extra == nil {
			rec.Extra = make(map[string]any)
		}
		rec.Extra[k] = v
	}
	return rec
}

// ToWire emits the record using the requested shape's key set only, plus any
// preserved extra fields. Unset optional fields are omitted rather than
// defaulted, so ToCanonical(ToWire(ToCanonical(x), shape)) loses nothing.
func ToWire(rec *entity.Renewal, shape Shape) map[string]any {
	out := make(map[string]any)
	if rec == nil {
		return out
	}
	for _, f := range wireFields {
		key := f.currentKey
		if shape == ShapeLegacy {
			key = f.legacyKey
		}
		if key == "" {
			continue
		}
		if v, ok := f.value(rec); ok {
			out[key] = v
		}
	}
	for k, v := range rec.Extra {
		if _, taken := out[k]; !taken {
			out[k] = v
		}
	}
	return out
}

// NormalizeKeys re-keys a raw wire object to the target shape without
// transforming values. Used to merge partial patches expressed in either
// shape over an existing record: the patch's value wins for its semantic
// field regardless of which convention named it.
func NormalizeKeys(raw map[string]any, shape Shape) map[string]any {
	out := make(map[string]any, len(raw))
	for _, f := range wireFields {
		target := f.currentKey
		if shape == ShapeLegacy {
			target = f.legacyKey
		}
		if target == "" {
			// Field absent from the target shape; carry the source key as-is
			// so the value survives a round-trip.
			if f.legacyKey != "" {
				if v, ok := raw[f.legacyKey]; ok {
					out[f.legacyKey] = v
				}
			}
			if f.currentKey != "" {
				if v, ok := raw[f.currentKey]; ok {
					out[f.currentKey] = v
				}
			}
			continue
		}
		if v, ok := raw[f.currentKey]; ok && f.currentKey != "" {
			out[target] = v
			continue
		}
		if v, ok := raw[f.legacyKey]; ok && f.legacyKey != "" {
			out[target] = v
		}
	}
	for k, v := range raw {
		if _, known := knownWireKeys[k]; !known {
			out[k] = v
		}
	}
	return out
}

func asString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		// JSON numbers decode as float64; ids arrive numeric from some
		// backends.
		if s == math.Trunc(s) && !math.IsInf(s, 0) {
			return strconv.FormatInt(int64(s), 10)
		}
		return strconv.FormatFloat(s, 'f', -1, 64)
	case int:
		return strconv.Itoa(s)
	case int64:
		return strconv.FormatInt(s, 10)
	case bool:
		return strconv.FormatBool(s)
	default:
		return ""
	}
}

func asFloat(v any) float64 {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case string:
		parsed, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0
		}
		f = parsed
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func asIntValue(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		return int(n), true
	case int:
		return n, true
	case int64:
		return int(n), true
	case string:
		parsed, err := strconv.Atoi(n)
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}
