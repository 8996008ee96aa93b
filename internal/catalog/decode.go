package catalog

import (
	"encoding/json"
	"strings"

	"github.com/rs/zerolog/log"
)

// DecodeVariants decodes a variants payload that may arrive either as a JSON
// array or as a JSON-encoded string containing an array (legacy records store
// the column as text). A decode failure is never surfaced to the caller: the
// condition is logged and an empty list is returned.
func DecodeVariants(raw json.RawMessage) []Variant {
	if len(raw) == 0 {
		return []Variant{}
	}

	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return []Variant{}
	}

	// Legacy shape: the array itself is wrapped in a JSON string.
	if strings.HasPrefix(trimmed, `"`) {
		var inner string
		if err := json.Unmarshal([]byte(trimmed), &inner); err != nil {
			log.Warn().Err(err).Msg("Malformed variants string, substituting empty list")
			return []Variant{}
		}
		trimmed = strings.TrimSpace(inner)
		if trimmed == "" || trimmed == "null" {
			return []Variant{}
		}
	}

	var variants []Variant
	if err := json.Unmarshal([]byte(trimmed), &variants); err != nil {
		log.Warn().Err(err).Msg("Malformed variants array, substituting empty list")
		return []Variant{}
	}
	if variants == nil {
		return []Variant{}
	}
	return variants
}

// DecodeVariantsString is DecodeVariants for callers that already hold the
// raw column text.
func DecodeVariantsString(s string) []Variant {
	return DecodeVariants(json.RawMessage(s))
}
