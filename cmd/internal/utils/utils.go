package utils

import (
	"path/filepath"
	"slices"
	"strconv"
	"strings"
)

// CheckFileExt returns the lowercased extension of fileName (with the dot)
// and whether it is in valid.
func CheckFileExt(fileName string, valid []string) (string, bool) {
	ext := strings.ToLower(filepath.Ext(fileName))
	if ext == "" {
		return "", false
	}
	return ext, slices.Contains(valid, ext[1:])
}

// ParseBool accepts "true" in any casing, everything else is false.
func ParseBool(s string) bool {
	return strings.EqualFold(s, "true")
}

// ParseIntOr returns def when s is empty or not an integer.
func ParseIntOr(s string, def int) int {
	if s == "" {
		return def
	}

	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return n
}

// SplitList splits a comma separated value, dropping blanks.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
