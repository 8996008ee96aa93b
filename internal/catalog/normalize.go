package catalog

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var foldCaser = cases.Fold()

// NormalizeName produces the canonical comparison form of a product name:
// trimmed, case-folded and with internal whitespace collapsed. Two names are
// "the same" for uniqueness purposes when their normal forms are equal.
func NormalizeName(s string) string {
	s = foldCaser.String(strings.TrimSpace(s))
	return strings.Join(strings.Fields(s), " ")
}

// cyrillicTranslit maps Cyrillic letters to Latin for slug generation.
// Lowercase only; input is folded before transliteration.
var cyrillicTranslit = strings.NewReplacer(
	"а", "a", "б", "b", "в", "v", "г", "g", "д", "d",
	"е", "e", "ё", "e", "ж", "zh", "з", "z", "и", "i",
	"й", "j", "к", "k", "л", "l", "м", "m", "н", "n",
	"о", "o", "п", "p", "р", "r", "с", "s", "т", "t",
	"у", "u", "ф", "f", "х", "h", "ц", "c", "ч", "ch",
	"ш", "sh", "щ", "sch", "ъ", "", "ы", "y", "ь", "",
	"э", "e", "ю", "yu", "я", "ya",
)

// removeDiacritics strips combining marks after NFD decomposition.
func removeDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, s)
	return result
}

// Slugify converts a product name into a URL slug: folded, transliterated,
// diacritics stripped, non-alphanumerics collapsed to single hyphens.
func Slugify(name string) string {
	s := foldCaser.String(strings.TrimSpace(name))
	s = cyrillicTranslit.Replace(s)
	s = removeDiacritics(s)

	var b strings.Builder
	prevHyphen := true // suppress a leading hyphen
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prevHyphen = false
		default:
			if !prevHyphen {
				b.WriteByte('-')
				prevHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
