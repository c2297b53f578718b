package helpers

import (
	"encoding/json"
	"strings"
)

// ParseListField turns the values of a repeated form field into a list. A
// single value holding a JSON array is decoded; any other single value is
// split on sep.
func ParseListField(values []string, sep string) []string {
	if len(values) != 1 {
		return values
	}
	v := strings.TrimSpace(values[0])
	if strings.HasPrefix(v, "[") {
		var items []string
		if err := json.Unmarshal([]byte(v), &items); err == nil {
			return items
		}
	}
	return strings.Split(v, sep)
}
