package templates

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// Encode returns the storage form of markup: base64 of its UTF-8 bytes.
func Encode(markup string) string {
	return base64.StdEncoding.EncodeToString([]byte(markup))
}

// Decode reverses Encode. Surrounding whitespace is ignored.
func Decode(encoded string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(encoded))
	if err != nil {
		return "", fmt.Errorf("decoding template: %w", err)
	}
	return string(raw), nil
}
