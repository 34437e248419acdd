package utils

import (
	"regexp"
	"strconv"
)

var slugPattern = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

// ParseInt converts string to int with default value
func ParseInt(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}

	result, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	if result < 1 {
		return defaultValue
	}

	return result
}

// ParseOptionalInt returns nil for an empty or malformed value.
func ParseOptionalInt(value string) *int {
	if value == "" {
		return nil
	}
	result, err := strconv.Atoi(value)
	if err != nil {
		return nil
	}
	return &result
}
