package utils

import (
	"strings"
)

// SearchTerm normalizes the ?search= query parameter.
func SearchTerm(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}
