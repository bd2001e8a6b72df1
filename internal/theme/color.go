package theme

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// BlackRGB is the fallback triple for colors that cannot be parsed.
const BlackRGB = "0, 0, 0"

var (
	reHex6 = regexp.MustCompile(`^#?([0-9a-fA-F]{2})([0-9a-fA-F]{2})([0-9a-fA-F]{2})$`)
	reRGB  = regexp.MustCompile(`^\s*(\d{1,3})\s*,\s*(\d{1,3})\s*,\s*(\d{1,3})\s*$`)
)

// HexToRGB converts "#RRGGBB" (leading '#' optional, any case) into a decimal
// "R, G, B" triple. Malformed input yields BlackRGB.
func HexToRGB(hex string) string {
	m := reHex6.FindStringSubmatch(strings.TrimSpace(hex))
	if m == nil {
		return BlackRGB
	}
	var rgb [3]uint64
	for i := range rgb {
		// cannot fail: the regexp admits exactly two hex digits
		rgb[i], _ = strconv.ParseUint(m[i+1], 16, 8)
	}
	return fmt.Sprintf("%d, %d, %d", rgb[0], rgb[1], rgb[2])
}

// RGBToHex formats an "R, G, B" triple as lower-case "#rrggbb".
func RGBToHex(triple string) (string, error) {
	m := reRGB.FindStringSubmatch(triple)
	if m == nil {
		return "", fmt.Errorf("invalid rgb triple %q", triple)
	}
	var b strings.Builder
	b.WriteByte('#')
	for _, part := range m[1:] {
		n, err := strconv.Atoi(part)
		if err != nil || n > 255 {
			return "", fmt.Errorf("invalid rgb component %q in %q", part, triple)
		}
		fmt.Fprintf(&b, "%02x", n)
	}
	return b.String(), nil
}
