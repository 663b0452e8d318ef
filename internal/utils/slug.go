package utils

import (
	"regexp"
	"strings"
)

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

var accentFold = strings.NewReplacer(
	"à", "a", "â", "a", "ä", "a", "á", "a", "ã", "a",
	"è", "e", "é", "e", "ê", "e", "ë", "e",
	"ì", "i", "í", "i", "î", "i", "ï", "i",
	"ò", "o", "ó", "o", "ô", "o", "ö", "o", "õ", "o",
	"ù", "u", "ú", "u", "û", "u", "ü", "u",
	"ç", "c", "ñ", "n", "ý", "y",
	"œ", "oe", "æ", "ae",
)

// Slugify derives the public lookup key for a title: lowercase, accents
// folded, apostrophes dropped, every other non-alphanumeric run collapsed to
// a single hyphen. The connective "and" (and the "&" that folds into a plain
// separator) is dropped so both spellings of a title land on the same slug.
func Slugify(input string) string {
	s := strings.ToLower(strings.TrimSpace(input))
	s = accentFold.Replace(s)
	s = strings.ReplaceAll(s, "'", "")
	s = nonSlugChars.ReplaceAllString(s, "-")

	parts := strings.Split(s, "-")
	kept := parts[:0]
	for _, p := range parts {
		if p == "" || p == "and" {
			continue
		}
		kept = append(kept, p)
	}
	return strings.Join(kept, "-")
}
