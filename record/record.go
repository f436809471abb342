// Package record defines the narrow view of a parsed key/value document that
// catalog loading needs, and a map-backed implementation.
package record

import (
	"math"
)

// Value is a generic field value.
type Value interface {
	// AsString returns the value as a string.
	AsString() (string, bool)
	// AsArray returns the value as a list of values.
	AsArray() ([]Value, bool)
}

// Record is a parsed key/value record, one catalog entry.
type Record interface {
	// GetString returns the field as a string. It reports false when the
	// field is missing or not a string.
	GetString(key string) (string, bool)
	// GetValue returns the field as a generic value.
	GetValue(key string) (Value, bool)
}

// Hash is a Record over decoded YAML or JSON.
type Hash map[string]any

var _ Record = Hash(nil)

// GetString implements Record.
func (h Hash) GetString(key string) (string, bool) {
	s, ok := h[key].(string)
	return s, ok
}

// GetValue implements Record.
func (h Hash) GetValue(key string) (Value, bool) {
	v, ok := h[key]
	if !ok || v == nil {
		return nil, false
	}
	return anyValue{v: v}, true
}

// GetNumber returns a numeric field as float64.
func (h Hash) GetNumber(key string) (float64, bool) {
	switch n := h[key].(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

// GetUint32 returns an integral field that fits in 32 bits.
func (h Hash) GetUint32(key string) (uint32, bool) {
	f, ok := h.GetNumber(key)
	if !ok || f < 0 || f > math.MaxUint32 || f != math.Trunc(f) {
		return 0, false
	}
	return uint32(f), true
}

// Has reports whether key is present.
func (h Hash) Has(key string) bool {
	_, ok := h[key]
	return ok
}

type anyValue struct {
	v any
}

func (a anyValue) AsString() (string, bool) {
	s, ok := a.v.(string)
	return s, ok
}

func (a anyValue) AsArray() ([]Value, bool) {
	switch arr := a.v.(type) {
	case []any:
		out := make([]Value, len(arr))
		for i, v := range arr {
			out[i] = anyValue{v: v}
		}
		return out, true
	case []string:
		out := make([]Value, len(arr))
		for i, s := range arr {
			out[i] = anyValue{v: s}
		}
		return out, true
	default:
		return nil, false
	}
}
