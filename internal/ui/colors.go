package ui

import "fmt"

// rgb is a parsed #RRGGBB color.
type rgb struct {
	r, g, b int
}

func parseHexColor(s string) (rgb, bool) {
	var c rgb
	if len(s) != 7 || s[0] != '#' {
		return c, false
	}
	if _, err := fmt.Sscanf(s[1:], "%02x%02x%02x", &c.r, &c.g, &c.b); err != nil {
		return c, false
	}
	return c, true
}

func (c rgb) hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.r, c.g, c.b)
}

// darken reduces each channel by amount, clamped to [0,255].
func (c rgb) darken(amount int) rgb {
	return rgb{
		r: clampChannel(c.r - amount),
		g: clampChannel(c.g - amount),
		b: clampChannel(c.b - amount),
	}
}

// lerp interpolates toward other by t in [0,1].
func (c rgb) lerp(other rgb, t float64) rgb {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return rgb{
		r: clampChannel(c.r + int(t*float64(other.r-c.r))),
		g: clampChannel(c.g + int(t*float64(other.g-c.g))),
		b: clampChannel(c.b + int(t*float64(other.b-c.b))),
	}
}

func clampChannel(v int) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}
