package task

import (
	"encoding/json"
	"fmt"
	"maps"
	"math"
)

// Arguments is the free-form key/value bundle a task is constructed from.
type Arguments map[string]any

// Clone returns a shallow copy of the bundle. A nil bundle clones to an empty
// one so serialized tasks always carry a task_arguments object.
func (a Arguments) Clone() Arguments {
	out := make(Arguments, len(a))
	maps.Copy(out, a)
	return out
}

// Has reports whether key is present.
func (a Arguments) Has(key string) bool {
	_, ok := a[key]
	return ok
}

// Float returns the numeric value stored under key.
func (a Arguments) Float(key string) (float64, bool) {
	v, ok := a[key]
	if !ok {
		return 0, false
	}
	return toFloat(v)
}

// RequireFloat returns the numeric value stored under key, or a *ConfigError
// naming the task when the key is absent or not a number.
func (a Arguments) RequireFloat(taskName, key string) (float64, error) {
	v, ok := a[key]
	if !ok {
		return 0, &ConfigError{Task: taskName, Key: key, Reason: "required argument is missing"}
	}
	f, ok := toFloat(v)
	if !ok {
		return 0, &ConfigError{Task: taskName, Key: key, Reason: fmt.Sprintf("expected a number, got %T", v)}
	}
	return f, nil
}

// RequireString returns the string stored under key, or a *ConfigError.
func (a Arguments) RequireString(taskName, key string) (string, error) {
	v, ok := a[key]
	if !ok {
		return "", &ConfigError{Task: taskName, Key: key, Reason: "required argument is missing"}
	}
	s, ok := v.(string)
	if !ok {
		return "", &ConfigError{Task: taskName, Key: key, Reason: fmt.Sprintf("expected a string, got %T", v)}
	}
	return s, nil
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

// Clamp bounds p to the closed unit interval. NaN maps to zero.
func Clamp(p float64) float64 {
	switch {
	case math.IsNaN(p), p < 0:
		return 0
	case p > 1:
		return 1
	default:
		return p
	}
}
