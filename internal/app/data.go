package app

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Data is one decoded object from the Clash of Clans API: a mapping from JSON key to value.
// Numbers arrive as float64 from encoding/json; the accessors below hide that so the
// domain layer never type-switches on raw interface{} values.
type Data map[string]interface{}

// DecodeData unmarshals a JSON object into Data
func DecodeData(body []byte) (Data, error) {
	var data Data
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return data, nil
}

// Has reports whether key is present with a non-nil value
func (d Data) Has(key string) bool {
	v, ok := d[key]
	return ok && v != nil
}

// String returns the value at key as a string, or "" if absent
func (d Data) String(key string) string {
	switch v := d[key].(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}

// Int returns the value at key as an int, or 0 if absent or not numeric
func (d Data) Int(key string) int {
	switch v := d[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return int(i)
		}
	case string:
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return 0
}

// Float returns the value at key as a float64, or 0 if absent or not numeric
func (d Data) Float(key string) float64 {
	switch v := d[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case json.Number:
		if f, err := v.Float64(); err == nil {
			return f
		}
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return 0
}

// Object returns the nested object at key, or nil if absent
func (d Data) Object(key string) Data {
	switch v := d[key].(type) {
	case Data:
		return v
	case map[string]interface{}:
		return Data(v)
	}
	return nil
}

// Objects returns the list of nested objects at key. Non-object entries are skipped.
func (d Data) Objects(key string) []Data {
	raw, ok := d[key].([]interface{})
	if !ok {
		if typed, ok := d[key].([]Data); ok {
			return typed
		}
		return nil
	}

	objects := make([]Data, 0, len(raw))
	for _, item := range raw {
		switch v := item.(type) {
		case Data:
			objects = append(objects, v)
		case map[string]interface{}:
			objects = append(objects, Data(v))
		}
	}
	return objects
}

// Strings returns the list of strings at key, or nil if absent
func (d Data) Strings(key string) []string {
	switch v := d[key].(type) {
	case []string:
		return v
	case []interface{}:
		values := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				values = append(values, s)
			} else {
				values = append(values, fmt.Sprintf("%v", item))
			}
		}
		return values
	}
	return nil
}
