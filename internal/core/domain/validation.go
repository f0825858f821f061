package domain

import (
	"regexp"
	"strconv"
	"strings"
)

// Validation Helpers

var (
	hexColorRegex = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)
	prefixRegex   = regexp.MustCompile(`^\S{1,10}$`)
)

// IsValidHexColor checks for a #rrggbb color as produced by color inputs.
func IsValidHexColor(c string) bool {
	return hexColorRegex.MatchString(c)
}

// IsValidPrefix checks a bot command prefix (1-10 non-space characters).
func IsValidPrefix(p string) bool {
	return prefixRegex.MatchString(p)
}

// ParseIDList splits a comma separated list of numeric ids, dropping blanks
// and non-numeric entries.
func ParseIDList(s string) []int64 {
	ids := []int64{}
	for _, part := range strings.Split(s, ",") {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		id, err := strconv.ParseInt(trimmed, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

// ParseStringList splits a comma separated list, dropping blanks.
func ParseStringList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
