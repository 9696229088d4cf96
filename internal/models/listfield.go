package models

import (
	"encoding/json"
	"strings"
)

// ParseStringList decodes a text column that historically held either a
// JSON array or a comma-separated string. It never fails: unparseable
// input falls back to comma splitting, empty input yields nil.
func ParseStringList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	if strings.HasPrefix(raw, "[") {
		var items []string
		if err := json.Unmarshal([]byte(raw), &items); err == nil {
			out := make([]string, 0, len(items))
			for _, it := range items {
				if it = strings.TrimSpace(it); it != "" {
					out = append(out, it)
				}
			}
			if len(out) == 0 {
				return nil
			}
			return out
		}
	}

	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// EncodeStringList stores a list as a JSON array string.
func EncodeStringList(items []string) string {
	if len(items) == 0 {
		return ""
	}
	data, err := json.Marshal(items)
	if err != nil {
		return strings.Join(items, ", ")
	}
	return string(data)
}
