package store

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// Document is a stored record. Data holds JSON-shaped values only: string,
// float64, bool, nil, []any and map[string]any.
type Document struct {
	ID   string         `json:"id"`
	Data map[string]any `json:"data"`
}

func (d Document) Get(field string) (any, bool) {
	if d.Data == nil {
		return nil, false
	}
	v, ok := d.Data[field]
	return v, ok
}

// String returns field as text. Numbers and booleans are formatted; anything
// else yields "".
func (d Document) String(field string) string {
	v, _ := d.Get(field)
	switch vv := v.(type) {
	case string:
		return vv
	case float64:
		return strconv.FormatFloat(vv, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(vv)
	default:
		return ""
	}
}

// Time decodes field with ParseTime.
func (d Document) Time(field string) (time.Time, bool) {
	v, _ := d.Get(field)
	return ParseTime(v)
}

// FormatTime is the wire form of timestamps inside documents.
func FormatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// ParseTime accepts an RFC 3339 string, epoch seconds, or a
// {"seconds": n, "nanoseconds": m} object.
func ParseTime(v any) (time.Time, bool) {
	switch vv := v.(type) {
	case time.Time:
		return vv.UTC(), !vv.IsZero()
	case string:
		s := strings.TrimSpace(vv)
		if s == "" {
			return time.Time{}, false
		}
		t, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return time.Time{}, false
		}
		return t.UTC(), true
	case float64:
		return fromEpoch(vv, 0)
	case map[string]any:
		sec, ok := vv["seconds"].(float64)
		if !ok {
			return time.Time{}, false
		}
		nsec, _ := vv["nanoseconds"].(float64)
		return fromEpoch(sec, nsec)
	default:
		return time.Time{}, false
	}
}

func fromEpoch(sec, nsec float64) (time.Time, bool) {
	if math.IsNaN(sec) || math.IsInf(sec, 0) {
		return time.Time{}, false
	}
	whole, frac := math.Modf(sec)
	return time.Unix(int64(whole), int64(frac*1e9)+int64(nsec)).UTC(), true
}

// Canonical converts arbitrary Go values into the JSON-shaped form Document
// carries, so every backend compares the same representation.
func Canonical(data map[string]any) (map[string]any, error) {
	if data == nil {
		return map[string]any{}, nil
	}
	b, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	out := map[string]any{}
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CanonicalValue converts a single query operand the way Canonical converts
// document fields. time.Time is kept as is.
func CanonicalValue(v any) (any, error) {
	if t, ok := v.(time.Time); ok {
		return t.UTC(), nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}
