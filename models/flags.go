package models

import (
	"reflect"
)

// NormalizedFlagColumns is the full set of boolean-like columns whose values
// pass through NormalizeFlag before they reach storage. Declared explicitly
// so the startup schema check can assert the columns exist; no other columns
// are normalized.
var NormalizedFlagColumns = []string{
	"user_config.translate_private",
	"user_config.fact_check_private",
	"guild_config.auto_role_active",
	"guild_config.welcome_active",
}

// NormalizeFlag coerces a loosely typed flag value to a strict boolean:
// nil and zero map to false, one maps to true, everything else to its
// truthiness. Database drivers may hand booleans back as 0/1 integers or
// byte slices; this keeps the stored value strict regardless of how it
// arrived.
func NormalizeFlag(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case int:
		return x != 0
	case int8:
		return x != 0
	case int16:
		return x != 0
	case int32:
		return x != 0
	case int64:
		return x != 0
	case uint:
		return x != 0
	case uint8:
		return x != 0
	case uint16:
		return x != 0
	case uint32:
		return x != 0
	case uint64:
		return x != 0
	case float32:
		return x != 0
	case float64:
		return x != 0
	case string:
		return x != ""
	case []byte:
		return len(x) != 0
	default:
		rv := reflect.ValueOf(v)
		if rv.Kind() == reflect.Ptr && rv.IsNil() {
			return false
		}
		return !rv.IsZero()
	}
}
