package schemas

import (
	"encoding/json"
	"fmt"
)

// Scouting types accepted on a submission. Anything that is not exactly
// ScoutingTypePit is handled as match scouting.
const (
	ScoutingTypeMatch = "MATCH"
	ScoutingTypePit   = "PIT"
)

// Record is one decoded submission: a flat bag of scalar fields keyed by the
// form field names the scouting apps send. No schema is enforced here; the
// per-kind field specs impose shape at mapping time.
type Record map[string]any

// ParseRecord decodes a JSON object into a Record. Anything other than a
// single top-level object is a decode failure.
func ParseRecord(raw []byte) (Record, error) {
	var rec Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, fmt.Errorf("payload is not a JSON object")
	}
	return rec, nil
}

// Str returns the field rendered as a string, or "" when absent.
func (r Record) Str(key string) string {
	v, ok := r[key]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case float64:
		// JSON numbers arrive as float64; print integers without a decimal.
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%v", t)
	default:
		return fmt.Sprintf("%v", t)
	}
}

// Truthy mirrors the loose truthiness the scouting forms rely on: absent,
// nil, false, 0 and "" are falsy, everything else is truthy.
func Truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case float64:
		return t != 0
	case int:
		return t != 0
	default:
		return true
	}
}

// OrDefault returns the raw field value when truthy, otherwise def.
func (r Record) OrDefault(key string, def any) any {
	if v, ok := r[key]; ok && Truthy(v) {
		return v
	}
	return def
}
