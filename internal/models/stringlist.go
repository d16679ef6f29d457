package models

import (
	"encoding/json"
	"strings"
)

// EncodeStringList serializes an ordered list of strings to the JSON text form
// stored in the recipes table. A nil slice encodes as an empty list.
func EncodeStringList(items []string) string {
	if items == nil {
		items = []string{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		// []string cannot fail to marshal; keep the stored form well-defined anyway.
		return "[]"
	}
	return string(b)
}

// DecodeStringList parses stored ingredient/step text back into an ordered
// list. Empty or malformed text decodes to an empty list, never an error, so a
// corrupt row can still be read.
func DecodeStringList(text string) []string {
	if strings.TrimSpace(text) == "" {
		return []string{}
	}
	var items []string
	if err := json.Unmarshal([]byte(text), &items); err != nil {
		return []string{}
	}
	if items == nil {
		return []string{}
	}
	return items
}
