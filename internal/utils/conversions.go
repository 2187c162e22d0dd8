package utils

import (
	"strconv"
	"strings"
)

// ToStringSlice keeps the string members of a decoded JSON array.
func ToStringSlice(slice []any) []string {
	stringSlice := make([]string, 0)
	for _, v := range slice {
		if s, ok := v.(string); ok {
			stringSlice = append(stringSlice, s)
		}
	}
	return stringSlice
}

// ToString renders a decoded JSON scalar. Non-scalars render as "".
func ToString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case []any:
		return strings.Join(ToStringSlice(t), ", ")
	default:
		return ""
	}
}
