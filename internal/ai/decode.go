package ai

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// ExtractJSON strips markdown fences and surrounding prose, returning the
// outermost JSON object or array found in raw.
func ExtractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.TrimSpace(strings.Trim(raw, "`"))

	if raw == "" || json.Valid([]byte(raw)) {
		return raw
	}

	for _, pair := range [][2]string{{"{", "}"}, {"[", "]"}} {
		start := strings.Index(raw, pair[0])
		end := strings.LastIndex(raw, pair[1])
		if start != -1 && end > start {
			candidate := raw[start : end+1]
			if json.Valid([]byte(candidate)) {
				return candidate
			}
		}
	}
	return raw
}

// DecodeJSON parses raw model output into out. Values are decoded weakly so
// "85" fills a number field and a lone string fills a []string field. Fields
// absent from the payload keep whatever out already held, so callers preset
// their defaults before decoding.
func DecodeJSON(raw string, out any) error {
	cleaned := ExtractJSON(raw)
	if cleaned == "" {
		return ErrEmptyResponse
	}

	var generic any
	if err := json.Unmarshal([]byte(cleaned), &generic); err != nil {
		return fmt.Errorf("parse ai response: %w", err)
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		TagName:          "json",
		Result:           out,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(generic); err != nil {
		return fmt.Errorf("decode ai response: %w", err)
	}
	return nil
}
