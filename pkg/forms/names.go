package forms

import (
	"regexp"
	"strings"

	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/unicode/norm"
)

var (
	nonWord    = regexp.MustCompile(`[^\w\s-]`)
	separators = regexp.MustCompile(`[\s-]+`)
)

// CleanName derives the submission key of a field from its label.
// "Spammer Jammer" becomes "spammer_jammer"; non-Latin labels are
// transliterated to ASCII first, so "Straße" becomes "strasse".
func CleanName(label string) string {
	name := unidecode.Unidecode(norm.NFKC.String(label))
	name = strings.ToLower(strings.TrimSpace(name))
	name = nonWord.ReplaceAllString(name, "")
	name = separators.ReplaceAllString(strings.TrimSpace(name), "_")
	return strings.Trim(name, "_")
}
