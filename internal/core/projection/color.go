package projection

import (
	"encoding/json"
	"fmt"
	"image/color"
)

// RGB is an opaque wall colour. It encodes to JSON as [r, g, b].
type RGB struct {
	R, G, B uint8
}

// White is the default wall colour
var White = RGB{255, 255, 255}

// NRGBA converts the colour for drawing
func (c RGB) NRGBA() color.NRGBA {
	return color.NRGBA{c.R, c.G, c.B, 255}
}

// MarshalJSON implements json.Marshaler.
func (c RGB) MarshalJSON() ([]byte, error) {
	return json.Marshal([3]uint8{c.R, c.G, c.B})
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *RGB) UnmarshalJSON(data []byte) error {
	var channels []int
	if err := json.Unmarshal(data, &channels); err != nil {
		return fmt.Errorf("colour must be an [r, g, b] array: %w", err)
	}
	if len(channels) != 3 {
		return fmt.Errorf("colour must have 3 channels, got %d", len(channels))
	}
	for i, v := range channels {
		if v < 0 || v > 255 {
			return fmt.Errorf("colour channel %d out of range: %d", i, v)
		}
	}
	*c = RGB{uint8(channels[0]), uint8(channels[1]), uint8(channels[2])}
	return nil
}
