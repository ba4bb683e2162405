package render

import (
	"fmt"
	"math"
	"strconv"

	"github.com/matzehuels/rpgmap/pkg/catalog"
)

// SystemColor is the fill color of system nodes.
const SystemColor = "#f2545b"

// Tableau10 is the categorical color scheme assigned to categories.
var Tableau10 = []string{
	"#4e79a7", "#f28e2c", "#e15759", "#76b7b2", "#59a14f",
	"#edc948", "#b07aa1", "#ff9da7", "#9c755f", "#bab0ab",
}

// tagBrightness is the exponent used to lighten tag fills.
const tagBrightness = 0.6

// CategoryColor returns the palette color of c. Unknown categories get a
// neutral grey.
func CategoryColor(c catalog.Category) string {
	i := c.Index()
	if i < 0 {
		return "#999999"
	}
	return Tableau10[i%len(Tableau10)]
}

// TagFill returns the fill color of tag nodes in category c.
func TagFill(c catalog.Category) string {
	return Brighter(CategoryColor(c), tagBrightness)
}

// Palette returns the color of every category keyed by category name.
func Palette() map[catalog.Category]string {
	out := make(map[catalog.Category]string, len(Tableau10))
	for _, c := range catalog.Categories() {
		out[c] = CategoryColor(c)
	}
	return out
}

// Brighter scales each channel of a #rrggbb color by (1/0.7)^k, clamping at
// white. Invalid input is returned unchanged.
func Brighter(hex string, k float64) string {
	r, g, b, ok := parseHex(hex)
	if !ok {
		return hex
	}
	f := math.Pow(1/0.7, k)
	return fmt.Sprintf("#%02x%02x%02x", scale(r, f), scale(g, f), scale(b, f))
}

// WithAlpha appends an alpha channel to a #rrggbb color.
func WithAlpha(hex string, alpha float64) string {
	if _, _, _, ok := parseHex(hex); !ok {
		return hex
	}
	a := int(math.Round(math.Max(0, math.Min(1, alpha)) * 255))
	return fmt.Sprintf("%s%02x", hex, a)
}

func parseHex(hex string) (r, g, b uint8, ok bool) {
	if len(hex) != 7 || hex[0] != '#' {
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(hex[1:], 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return uint8(v >> 16), uint8(v >> 8), uint8(v), true
}

func scale(c uint8, f float64) int {
	v := math.Round(float64(c) * f)
	if v > 255 {
		return 255
	}
	return int(v)
}
