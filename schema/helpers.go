package schema

import (
	"path"
	"strings"
	"time"
	"unicode"
)

// DayKey formats an epoch-seconds timestamp as its UTC calendar day.
// Bucketing is always UTC so the same history loads identically everywhere.
func DayKey(ts int64) string {
	return time.Unix(ts, 0).UTC().Format("2006-01-02")
}

// ExtensionOf returns the histogram bucket for a file path: the lowercased
// suffix after the last dot of the base name, or NoExtension when the name
// has no dot, starts with its only dot, or ends with one.
func ExtensionOf(p string) string {
	base := path.Base(p)
	idx := strings.LastIndex(base, ".")
	if idx <= 0 || idx == len(base)-1 {
		return NoExtension
	}
	return strings.ToLower(base[idx+1:])
}

// NormalizeDirPath trims a trailing slash so exporter conventions and tree
// index keys agree. The root stays "".
func NormalizeDirPath(p string) string {
	if p == "/" {
		return ""
	}
	return strings.TrimSuffix(p, "/")
}

// ParentDir returns the directory portion of a file path, "" for top-level files.
func ParentDir(p string) string {
	idx := strings.LastIndex(p, "/")
	if idx < 0 {
		return ""
	}
	return p[:idx]
}

// BaseName returns the final segment of a path, the path itself when it has none.
func BaseName(p string) string {
	idx := strings.LastIndex(p, "/")
	if idx < 0 {
		return p
	}
	return p[idx+1:]
}

// cleanParts cleans a slice of name parts by trimming non-alphanumeric punctuation from ends,
// and additionally trims trailing periods for looser handling.
func cleanParts(parts []string) []string {
	var cleaned []string
	for _, p := range parts {
		cp := strings.TrimFunc(p, func(r rune) bool {
			if unicode.IsLetter(r) || unicode.IsNumber(r) || r == '-' || r == '\'' || r == '.' {
				return false
			}
			return true
		})
		cp = strings.TrimSuffix(cp, ".")
		if cp != "" {
			cleaned = append(cleaned, cp)
		}
	}
	return cleaned
}

// getInitial extracts the initial from the last name part, using the first rune for Unicode safety.
func getInitial(last string) string {
	rr := []rune(last)
	if len(rr) > 0 {
		return string(rr[0])
	}
	return ""
}

// AbbreviateName formats "Samuel Huang" to "Samuel H".
// It handles names with parentheses, quotes, backticks, hyphens, and apostrophes appropriately.
// It also handles single-word names by returning them unchanged, and bot accounts without abbreviation.
func AbbreviateName(name string) string {
	// Trim leading/trailing whitespace.
	trimmedName := strings.TrimSpace(name)

	// Special case: bot accounts (e.g., dependabot[bot]) are not abbreviated.
	if strings.Contains(name, "[bot]") {
		parts := strings.Fields(trimmedName)
		if len(parts) > 0 {
			return strings.Join(parts, " ")
		}
		return trimmedName
	}

	// Remove outer punctuation.
	trimmedName = strings.Trim(trimmedName, "()\"'`")

	// Split into parts.
	parts := strings.Fields(trimmedName)
	cleaned := cleanParts(parts)

	// Handle based on number of cleaned parts.
	if len(cleaned) >= 2 {
		first := cleaned[0]
		last := cleaned[len(cleaned)-1]
		initial := getInitial(last)
		if initial != "" {
			return first + " " + initial
		}
		return first
	}

	if len(cleaned) == 1 {
		return cleaned[0]
	}

	// Fallback.
	return trimmedName
}

// FormatAuthors formats a top-author list as "Samuel H, Jane D" for table cells.
func FormatAuthors(authors []string) string {
	var abbreviated []string
	for _, author := range authors {
		abbreviated = append(abbreviated, AbbreviateName(author))
	}
	return strings.Join(abbreviated, ", ")
}
