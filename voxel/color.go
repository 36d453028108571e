package voxel

import (
	"fmt"
	"strconv"
)

// DefaultPalette maps mono occupancy/palette indices to display colors for
// downstream exporters. Index 0 is the empty cell and is never looked up.
var DefaultPalette = []string{
	"#000000",
	"#51a8dd", // the engine's base color, matching the color-mode root
	"#e0e0e0",
	"#f2c057",
	"#d13b40",
	"#6abe83",
	"#8f6ad1",
	"#d16aa8",
}

// ParseHexColor converts "#rrggbb" or "#rrggbbaa" into normalized RGBA.
// Every channel is validated; alpha defaults to 1 when omitted.
func ParseHexColor(hex string) ([4]float32, error) {
	if len(hex) == 0 || hex[0] != '#' {
		return [4]float32{}, fmt.Errorf("invalid hex color: %q", hex)
	}
	h := hex[1:]
	if len(h) != 6 && len(h) != 8 {
		return [4]float32{}, fmt.Errorf("invalid hex color length: %q", hex)
	}
	rgba := [4]float32{0, 0, 0, 1}
	for i := 0; i*2 < len(h); i++ {
		v, err := strconv.ParseUint(h[i*2:i*2+2], 16, 8)
		if err != nil {
			return [4]float32{}, fmt.Errorf("invalid hex color %q: %w", hex, err)
		}
		rgba[i] = float32(v) / 255
	}
	return rgba, nil
}
