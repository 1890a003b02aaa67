// Package devutil holds small helpers for CLI output.
package devutil

import (
	"encoding/json"
	"strings"
)

// pick round-trips v through JSON and keeps only keys. Numbers come back as
// float64.
func pick(v any, keys ...string) map[string]any {
	b, err := json.Marshal(v)
	if err != nil {
		return map[string]any{}
	}

	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return map[string]any{}
	}

	out := make(map[string]any, len(keys))
	for _, k := range keys {
		if val, ok := m[k]; ok {
			out[k] = val
		}
	}
	return out
}

func Pick(v any, keys ...string) map[string]any {
	return pick(v, keys...)
}

// PickEach projects every element of items onto keys.
func PickEach[T any](items []T, keys ...string) []map[string]any {
	out := make([]map[string]any, 0, len(items))
	for _, it := range items {
		out = append(out, pick(it, keys...))
	}
	return out
}

// ParseFields splits a comma separated -fields flag, dropping blanks.
func ParseFields(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
