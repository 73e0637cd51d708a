package app

import (
	"regexp"
	"strings"
)

const maxSlugLen = 60

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases s, collapses every run of characters outside [a-z0-9]
// into one underscore, trims underscores at both ends and caps the result at
// 60 characters.
func Slugify(s string) string {
	out := nonAlnum.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), "_")
	out = strings.Trim(out, "_")
	if len(out) > maxSlugLen {
		out = out[:maxSlugLen]
	}
	return out
}
