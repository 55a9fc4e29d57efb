// Package placeholder generates the placeholder product images used as object-store seed data:
// a solid color rectangle per product image, labeled with a title derived from its filename.
package placeholder

import (
	"fmt"
	"image/color"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"
)

// Spec describes one placeholder image.
type Spec struct {
	Filename string
	Color    color.RGBA
}

var catalog = []struct {
	filename string
	color    string
}{
	// Electronics: blue tones
	{"headphones-1.jpg", "#4A90E2"},
	{"headphones-2.jpg", "#357ABD"},
	{"fitness-watch-1.jpg", "#5B9BD5"},
	{"fitness-watch-2.jpg", "#2E75B6"},
	{"fitness-watch-3.jpg", "#1F4E78"},
	{"webcam-1.jpg", "#4472C4"},
	{"webcam-2.jpg", "#2F5496"},

	// Home & Kitchen: red and orange tones
	{"coffee-maker-1.jpg", "#E74C3C"},
	{"coffee-maker-2.jpg", "#C0392B"},
	{"cookware-1.jpg", "#E67E22"},
	{"cookware-2.jpg", "#D35400"},
	{"cookware-3.jpg", "#CA6F1E"},
	{"robot-vacuum-1.jpg", "#F39C12"},
	{"robot-vacuum-2.jpg", "#E67E22"},

	// Sports & Outdoors: green tones
	{"yoga-mat-1.jpg", "#27AE60"},
	{"yoga-mat-2.jpg", "#229954"},
	{"yoga-mat-3.jpg", "#1E8449"},
	{"dumbbells-1.jpg", "#52BE80"},
	{"dumbbells-2.jpg", "#45B39D"},
	{"tent-1.jpg", "#16A085"},
	{"tent-2.jpg", "#138D75"},
	{"tent-3.jpg", "#117A65"},

	// Books & Media: purple tones
	{"book-programming-1.jpg", "#8E44AD"},
	{"book-programming-2.jpg", "#7D3C98"},

	// Fashion: mixed tones
	{"backpack-1.jpg", "#34495E"},
	{"backpack-2.jpg", "#2C3E50"},
	{"backpack-3.jpg", "#1C2833"},
	{"running-shoes-1.jpg", "#E74C3C"},
	{"running-shoes-2.jpg", "#EC7063"},
	{"running-shoes-3.jpg", "#F1948A"},
}

// Catalog returns the fixed list of placeholder images, in generation order.
func Catalog() []Spec {
	specs := make([]Spec, 0, len(catalog))
	for _, entry := range catalog {
		c, err := ParseHexColor(entry.color)
		if err != nil {
			panic(err)
		}
		specs = append(specs, Spec{Filename: entry.filename, Color: c})
	}
	return specs
}

// ParseHexColor parses an opaque "#RRGGBB" color. The leading "#" is optional.
func ParseHexColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid color %q: expected 6 hex digits", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

// Title derives the label drawn on an image from its filename: the extension is dropped,
// dashes become spaces, and every word is capitalized ("fitness-watch-1.jpg" becomes
// "Fitness Watch 1").
func Title(filename string) string {
	name := strings.TrimSuffix(filename, filepath.Ext(filename))
	name = strings.ReplaceAll(name, "-", " ")

	var b strings.Builder
	startOfWord := true
	for _, r := range name {
		if unicode.IsLetter(r) {
			if startOfWord {
				b.WriteRune(unicode.ToUpper(r))
			} else {
				b.WriteRune(unicode.ToLower(r))
			}
			startOfWord = false
		} else {
			b.WriteRune(r)
			startOfWord = true
		}
	}
	return b.String()
}
