// Package text prepares backend strings for table cells.
package text

import (
	"html"
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	tagsRe  = regexp.MustCompile(`<[^>]*>`)
	linksRe = regexp.MustCompile(`https?://[^\s]+`)
	spaceRe = regexp.MustCompile(`\s+`)
)

func RemoveTags(input string) string {
	return tagsRe.ReplaceAllString(html.UnescapeString(input), "")
}

func RemoveLinks(input string) string {
	return linksRe.ReplaceAllString(input, "")
}

// ReduceToLength keeps whole words up to length runes.
func ReduceToLength(input string, length int) string {
	var builder strings.Builder
	total := 0
	for i, word := range strings.Fields(input) {
		n := utf8.RuneCountInString(word)
		if i > 0 {
			n++
		}
		if total+n > length {
			break
		}
		if i > 0 {
			builder.WriteString(" ")
		}
		builder.WriteString(word)
		total += n
	}
	return builder.String()
}

// Preview flattens a description to one line of at most length runes and
// marks truncation with an ellipsis.
func Preview(input string, length int) string {
	cleaned := strings.TrimSpace(spaceRe.ReplaceAllString(RemoveLinks(RemoveTags(input)), " "))
	if utf8.RuneCountInString(cleaned) <= length {
		return cleaned
	}
	reduced := ReduceToLength(cleaned, length-1)
	if reduced == "" {
		// a single word longer than length
		reduced = string([]rune(cleaned)[:length-1])
	}
	return reduced + "…"
}
