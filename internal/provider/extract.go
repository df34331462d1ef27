package provider

import (
	"encoding/json"
	"strconv"
)

// ExtractValue normalizes a single cell of a provider rowSet.
//
// stats.nba.com returns numbers as JSON numbers, but older seasons carry
// nulls and a few proxies re-encode numbers as strings. This handles all of
// them. Returns ok=false for null or non-numeric cells.
func ExtractValue(val interface{}) (float64, bool) {
	if val == nil {
		return 0, false
	}

	switch v := val.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		if f, err := v.Float64(); err == nil {
			return f, true
		}
		return 0, false
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f, true
		}
		return 0, false
	default:
		return 0, false
	}
}

// ExtractOptional is ExtractValue for nullable columns.
func ExtractOptional(val interface{}) *float64 {
	f, ok := ExtractValue(val)
	if !ok {
		return nil
	}
	return &f
}

// ExtractString returns the string form of a label cell (season id, team).
func ExtractString(val interface{}) string {
	switch v := val.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case nil:
		return ""
	default:
		b, _ := json.Marshal(v)
		return string(b)
	}
}
