package services

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var separatorReplacer = strings.NewReplacer("-", " ", "_", " ")

// DeriveTitle turns an image filename into a display title:
// "sunset-beach.jpg" becomes "Sunset Beach".
func DeriveTitle(filename string) string {
	name, _ := splitExt(filename)
	return titleFromName(name)
}

// titleFromName title-cases a bare name without touching dots.
func titleFromName(name string) string {
	words := strings.Fields(separatorReplacer.Replace(name))
	lower := cases.Lower(language.Und)
	for i, word := range words {
		words[i] = upperFirstLetter(lower.String(word))
	}
	return strings.Join(words, " ")
}

// upperFirstLetter title-cases the first letter of word; digits and
// punctuation before it are left alone, so "2023trip" becomes "2023Trip".
func upperFirstLetter(word string) string {
	for i, r := range word {
		if unicode.IsLetter(r) {
			return word[:i] + string(unicode.ToTitle(r)) + word[i+utf8.RuneLen(r):]
		}
	}
	return word
}

// splitExt splits name into root and extension at the last dot. Leading dots
// do not start an extension: ".hidden" has none.
func splitExt(name string) (string, string) {
	dot := strings.LastIndex(name, ".")
	if dot <= 0 || strings.TrimLeft(name[:dot], ".") == "" {
		return name, ""
	}
	return name[:dot], name[dot:]
}
