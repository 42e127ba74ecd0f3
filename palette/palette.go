// Package palette assigns every way of a collection its own hue.
//
// Hues are spread evenly around the wheel starting at red, so they shift
// whenever the number of ways changes.
package palette

import (
	"fmt"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Hue returns the hue in degrees [0, 360) of way index out of total.
func Hue(index, total int) float64 {
	if total <= 0 {
		return 0
	}
	h := math.Mod(360*float64(index)/float64(total), 360)
	if h < 0 {
		h += 360
	}
	return h
}

// Color is the fully saturated, half lightness color for the hue.
func Color(index, total int) colorful.Color {
	return colorful.Hsl(Hue(index, total), 1, 0.5)
}

// CSS formats the color as an hsl() value for list entries.
func CSS(index, total int) string {
	return fmt.Sprintf("hsl(%g, 100%%, 50%%)", Hue(index, total))
}

func Hex(index, total int) string {
	return Color(index, total).Clamped().Hex()
}
