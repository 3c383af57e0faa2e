package utils

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// NormalizeName trims surrounding whitespace and collapses inner runs of
// spaces, keeping the original casing for display.
func NormalizeName(name string) string {
	name = strings.TrimSpace(name)
	return regexp.MustCompile(`\s+`).ReplaceAllString(name, " ")
}

// EqualNames compares two passenger names ignoring case and surrounding space.
func EqualNames(a, b string) bool {
	return strings.EqualFold(NormalizeName(a), NormalizeName(b))
}

// MapsURL produces a maps deep link for an excursion meeting point.
func MapsURL(meetingPoint string) string {
	return fmt.Sprintf("https://www.google.com/maps/search/?api=1&query=%s",
		url.QueryEscape(meetingPoint))
}

// CleanFileName removes invalid characters from filename
func CleanFileName(filename string) string {
	reg := regexp.MustCompile(`[<>:"/\\|?*]`)
	cleaned := reg.ReplaceAllString(filename, "_")

	cleaned = strings.TrimSpace(cleaned)
	cleaned = regexp.MustCompile(`\s+`).ReplaceAllString(cleaned, "_")

	return cleaned
}
