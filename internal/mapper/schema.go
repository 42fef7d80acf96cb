package mapper

import (
	"encoding/json"
	"fmt"
	"math"
	"time"
)

// field is one allow-listed entry of a schema. keys are tried in order and
// the first one present in the raw object is used.
type field[T any] struct {
	keys []string
	set  func(dst *T, value any) error
}

// schema is the full allow-list for a model. Keys not named by any field are
// never read.
type schema[T any] []field[T]

// copy builds a new T from raw. Scalars of the wrong type are skipped and
// leave the field at its zero value; lists and nested objects of the wrong
// shape are an error.
func (s schema[T]) copy(raw any) (*T, error) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, ErrNotAnObject
	}

	var dst T
	for _, f := range s {
		value, ok := lookup(obj, f.keys)
		if !ok || value == nil {
			continue
		}

		if err := f.set(&dst, value); err != nil {
			return nil, err
		}
	}

	return &dst, nil
}

func lookup(obj map[string]any, keys []string) (any, bool) {
	for _, key := range keys {
		if value, ok := obj[key]; ok {
			return value, true
		}
	}
	return nil, false
}

func intField[T any](get func(*T) *int64, keys ...string) field[T] {
	return field[T]{
		keys: keys,
		set: func(dst *T, value any) error {
			if n, ok := toInt64(value); ok {
				*get(dst) = n
			}
			return nil
		},
	}
}

func stringField[T any, S ~string](get func(*T) *S, keys ...string) field[T] {
	return field[T]{
		keys: keys,
		set: func(dst *T, value any) error {
			if str, ok := value.(string); ok {
				*get(dst) = S(str)
			}
			return nil
		},
	}
}

// naiveTimeLayout is what the server emits for timestamps without a zone
const naiveTimeLayout = "2006-01-02T15:04:05.999999999"

func timeField[T any](get func(*T) *time.Time, keys ...string) field[T] {
	return field[T]{
		keys: keys,
		set: func(dst *T, value any) error {
			switch v := value.(type) {
			case time.Time:
				*get(dst) = v
			case string:
				if t, err := time.Parse(time.RFC3339Nano, v); err == nil {
					*get(dst) = t
				} else if t, err := time.ParseInLocation(naiveTimeLayout, v, time.UTC); err == nil {
					*get(dst) = t
				}
			}
			return nil
		},
	}
}

func objectField[T, U any](s schema[U], get func(*T) **U, key string, aliases ...string) field[T] {
	return field[T]{
		keys: append([]string{key}, aliases...),
		set: func(dst *T, value any) error {
			obj, err := s.copy(value)
			if err != nil {
				return fmt.Errorf("%w %q: %w", ErrMalformedField, key, err)
			}
			*get(dst) = obj
			return nil
		},
	}
}

func listField[T, U any](s schema[U], get func(*T) *[]*U, key string, aliases ...string) field[T] {
	return field[T]{
		keys: append([]string{key}, aliases...),
		set: func(dst *T, value any) error {
			items, ok := toList(value)
			if !ok {
				return fmt.Errorf("%w %q: expected a list, got %T", ErrMalformedField, key, value)
			}

			out := make([]*U, 0, len(items))
			for i, item := range items {
				obj, err := s.copy(item)
				if err != nil {
					return fmt.Errorf("%w %q[%d]: %w", ErrMalformedField, key, i, err)
				}
				out = append(out, obj)
			}

			*get(dst) = out
			return nil
		},
	}
}

func pairField[T any](get func(*T) *[2]int64, key string) field[T] {
	return field[T]{
		keys: []string{key},
		set: func(dst *T, value any) error {
			items, ok := toList(value)
			if !ok || len(items) != 2 {
				return fmt.Errorf("%w %q: expected a pair", ErrMalformedField, key)
			}

			var pair [2]int64
			for i, item := range items {
				pair[i], _ = toInt64(item)
			}

			*get(dst) = pair
			return nil
		},
	}
}

func toList(value any) ([]any, bool) {
	switch v := value.(type) {
	case []any:
		return v, true
	case []map[string]any:
		out := make([]any, len(v))
		for i := range v {
			out[i] = v[i]
		}
		return out, true
	}
	return nil, false
}

func toInt64(value any) (int64, bool) {
	switch v := value.(type) {
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return n, true
		}
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}
		return floatToInt64(f)
	case float64:
		return floatToInt64(v)
	case float32:
		return floatToInt64(float64(v))
	case int:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint32:
		return int64(v), true
	case uint64:
		if v > math.MaxInt64 {
			return 0, false
		}
		return int64(v), true
	}
	return 0, false
}

func floatToInt64(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}
