package utils

import (
	"regexp"
	"strconv"
)

var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9]`)

// SanitizeID turns a display path into a stable element id: "file-" followed by the path
// with every non-alphanumeric character replaced by '-'
func SanitizeID(displayPath string) string {
	return "file-" + nonAlphanumeric.ReplaceAllString(displayPath, "-")
}

// UniqueIDs sanitizes every path and suffixes collisions with -2, -3, ... in input order.
// A suffixed id never equals any id issued before it, natural or suffixed.
func UniqueIDs(displayPaths []string) []string {
	ids := make([]string, len(displayPaths))
	issued := make(map[string]bool, len(displayPaths))

	for i, p := range displayPaths {
		base := SanitizeID(p)
		id := base
		for n := 2; issued[id]; n++ {
			id = base + "-" + strconv.Itoa(n)
		}
		issued[id] = true
		ids[i] = id
	}

	return ids
}
