package domain

import "time"

// Record is one normalized input row: canonical field name to typed value.
// Values are string, int64, float64 or time.Time; an absent field simply has
// no key. Records are built once by the normalizer and never mutated.
type Record map[string]any

// String returns the field as a string if present and non-empty.
func (r Record) String(field string) (string, bool) {
	v, ok := r[field]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// Float returns the field as a float64, converting stored integers.
func (r Record) Float(field string) (float64, bool) {
	switch v := r[field].(type) {
	case float64:
		return v, true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

// Int returns the field as an int64.
func (r Record) Int(field string) (int64, bool) {
	v, ok := r[field].(int64)
	return v, ok
}

// Time returns the field as a time.Time.
func (r Record) Time(field string) (time.Time, bool) {
	v, ok := r[field].(time.Time)
	return v, ok
}
