package css

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Color is an RGBA color with components in [0, 1].
type Color struct {
	R, G, B, A float64
}

// White is the default canvas background.
var White = Color{R: 1, G: 1, B: 1, A: 1}

// Hex formats the color as #rrggbb. Each component is scaled to 0-255 and
// floored; alpha is discarded.
func (c Color) Hex() string {
	return "#" + component(c.R) + component(c.G) + component(c.B)
}

func component(v float64) string {
	// epsilon keeps values parsed from hex stable across a round trip
	n := int(math.Floor(clamp(v)*255 + 1e-9))
	return fmt.Sprintf("%02x", n)
}

func clamp(v float64) float64 {
	switch {
	case math.IsNaN(v) || v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

// ParseHex parses #rgb or #rrggbb (the leading # is optional).
func ParseHex(s string) (Color, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return Color{}, fmt.Errorf("invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex color %q", s)
	}
	return Color{
		R: float64(v>>16&0xff) / 255,
		G: float64(v>>8&0xff) / 255,
		B: float64(v&0xff) / 255,
		A: 1,
	}, nil
}

type colorJSON struct {
	R float64  `json:"r"`
	G float64  `json:"g"`
	B float64  `json:"b"`
	A *float64 `json:"a,omitempty"`
}

// UnmarshalJSON accepts a hex string or an {"r","g","b","a"} object.
func (c *Color) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		parsed, err := ParseHex(s)
		if err != nil {
			return err
		}
		*c = parsed
		return nil
	}

	var raw colorJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("color: %w", err)
	}
	*c = Color{R: raw.R, G: raw.G, B: raw.B, A: 1}
	if raw.A != nil {
		c.A = *raw.A
	}
	return nil
}

// MarshalJSON encodes the color as a hex string.
func (c Color) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Hex())
}
