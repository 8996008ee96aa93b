package catalog

import "strings"

// Legacy records encode "price on request" only in prose. The resolver must
// honor these phrases without a schema migration; the sentinel sweeper
// surfaces such records as migration candidates.
var legacySentinelPhrases = []string{
	"цена по запросу",
	"под заказ",
}

// HasLegacySentinelText reports whether a free-text description carries one
// of the fixed "price on request" / "made to order" phrases.
func HasLegacySentinelText(description string) bool {
	if description == "" {
		return false
	}
	d := foldCaser.String(description)
	for _, phrase := range legacySentinelPhrases {
		if strings.Contains(d, phrase) {
			return true
		}
	}
	return false
}

// LegacySentinelPhrases returns the fixed phrase list, for SQL filters and
// diagnostics.
func LegacySentinelPhrases() []string {
	out := make([]string, len(legacySentinelPhrases))
	copy(out, legacySentinelPhrases)
	return out
}
