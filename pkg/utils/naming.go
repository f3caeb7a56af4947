package utils

import (
	"strings"
)

const (
	scheduleNamePrefix   = "delete-"
	maxShortNameLength   = 40
	scheduleSuffixLength = 8
)

// ScheduleName derives a schedule name from the last segment of a log group name and a
// random suffix. Only the first 8 characters of the suffix are used.
//
// Names are not guaranteed unique; two log groups with the same short name and suffix
// prefix would collide.
func ScheduleName(logGroupName, suffix string) string {
	short := logGroupName
	if idx := strings.LastIndex(strings.TrimRight(logGroupName, "/"), "/"); idx >= 0 {
		short = logGroupName[idx+1:]
	}
	short = strings.Trim(sanitizeScheduleName(short), "-")
	if short == "" {
		short = "log-group"
	}
	if len(short) > maxShortNameLength {
		short = short[:maxShortNameLength]
	}

	suffix = sanitizeScheduleName(suffix)
	if len(suffix) > scheduleSuffixLength {
		suffix = suffix[:scheduleSuffixLength]
	}
	return scheduleNamePrefix + short + "-" + suffix
}

// sanitizeScheduleName replaces characters EventBridge Scheduler rejects in names.
func sanitizeScheduleName(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-', r == '_', r == '.':
			return r
		default:
			return '-'
		}
	}, s)
}
