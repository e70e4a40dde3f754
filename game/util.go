package game

import "strings"

// PixelRatio clamps a device pixel ratio to (0, limit]. Non-positive inputs
// are treated as 1.
func PixelRatio(device, limit float32) float32 {
	if device <= 0 {
		device = 1
	}
	if limit > 0 && device > limit {
		return limit
	}
	return device
}

func normalizeSymbol(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
