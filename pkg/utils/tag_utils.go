package utils

import (
	"fmt"
	"strings"
)

// HasTagWithValue checks if a resource has a tag with the given key and value
func HasTagWithValue(tags map[string]string, key, value string) bool {
	v, ok := tags[key]
	return ok && v == value
}

// MatchesTags reports whether tags contains every required key/value pair.
// Keys are compared case-insensitively since config files lose key case; values
// must match exactly. An empty requirement matches everything.
func MatchesTags(tags, required map[string]string) bool {
	for k, v := range required {
		if !hasTagFold(tags, k, v) {
			return false
		}
	}
	return true
}

func hasTagFold(tags map[string]string, key, value string) bool {
	if HasTagWithValue(tags, key, value) {
		return true
	}
	for k, v := range tags {
		if strings.EqualFold(k, key) && v == value {
			return true
		}
	}
	return false
}

// MatchesPrefix reports whether name starts with any of the prefixes.
// An empty prefix list matches everything.
func MatchesPrefix(name string, prefixes []string) bool {
	if len(prefixes) == 0 {
		return true
	}
	for _, p := range prefixes {
		if strings.HasPrefix(name, p) {
			return true
		}
	}
	return false
}

// ParseTagPairs parses "key=value" pairs into a map.
func ParseTagPairs(pairs []string) (map[string]string, error) {
	result := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		key, value, ok := strings.Cut(pair, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("invalid tag pair %q, expected key=value", pair)
		}
		result[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return result, nil
}
