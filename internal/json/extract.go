// Package json extracts JSON payloads from model responses.
//
// Models often wrap JSON in prose or markdown fences. This package
// recovers the object and decodes it.
package json

import (
	"encoding/json"
	"fmt"
	"strings"
)

// extract finds the JSON object portion of a response string. It handles:
// 1. A pure JSON response
// 2. JSON wrapped in markdown fences (```json ... ```)
// 3. A JSON object embedded in surrounding prose
//
// Only objects are handled, not top-level arrays.
func extract(response string) (string, error) {
	response = stripFences(response)

	// The whole response might already be valid.
	if json.Valid([]byte(response)) {
		return response, nil
	}

	// Decode from the first '{'; the decoder stops at the end of the
	// object, so trailing prose doesn't matter.
	start := strings.Index(response, "{")
	if start >= 0 {
		dec := json.NewDecoder(strings.NewReader(response[start:]))
		var raw json.RawMessage
		if err := dec.Decode(&raw); err == nil {
			return string(raw), nil
		}
	}

	preview := response
	if len(preview) > 100 {
		preview = preview[:100] + "..."
	}
	return "", fmt.Errorf("no valid JSON object in response: %q", preview)
}

// stripFences removes markdown code fence markers.
// Handles ```json\n...\n``` and ```\n...\n```.
func stripFences(response string) string {
	trimmed := strings.TrimSpace(response)

	if strings.HasPrefix(trimmed, "```json") {
		trimmed = strings.TrimSpace(strings.TrimPrefix(trimmed, "```json"))
	} else if strings.HasPrefix(trimmed, "```") {
		trimmed = strings.TrimSpace(strings.TrimPrefix(trimmed, "```"))
	}

	if strings.HasSuffix(trimmed, "```") {
		trimmed = strings.TrimSpace(strings.TrimSuffix(trimmed, "```"))
	}

	return trimmed
}

// Decode extracts the first JSON object from a response and unmarshals
// it into T.
func Decode[T any](response string) (T, error) {
	var result T
	jsonStr, err := extract(response)
	if err != nil {
		return result, err
	}
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		return result, fmt.Errorf("failed to unmarshal JSON: %w", err)
	}
	return result, nil
}

// Extract returns the raw JSON object portion of a response string.
func Extract(response string) (string, error) {
	return extract(response)
}
