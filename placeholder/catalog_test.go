package placeholder

import (
	"image/color"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog(t *testing.T) {
	specs := Catalog()
	require.Len(t, specs, 30)
	assert.Equal(t, "headphones-1.jpg", specs[0].Filename)
	assert.Equal(t, color.RGBA{R: 0x4A, G: 0x90, B: 0xE2, A: 0xff}, specs[0].Color)
	assert.Equal(t, "running-shoes-3.jpg", specs[29].Filename)

	seen := make(map[string]bool)
	for _, spec := range specs {
		assert.False(t, seen[spec.Filename], "duplicate filename %s", spec.Filename)
		seen[spec.Filename] = true
		assert.True(t, strings.HasSuffix(spec.Filename, ".jpg"))
		assert.Equal(t, uint8(0xff), spec.Color.A)
	}
	assert.NoError(t, checkUniqueFilenames(specs))
}

func TestParseHexColor(t *testing.T) {
	c, err := ParseHexColor("#E74C3C")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 0xE7, G: 0x4C, B: 0x3C, A: 0xff}, c)

	c, err = ParseHexColor("1c2833")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 0x1C, G: 0x28, B: 0x33, A: 0xff}, c)

	for _, bad := range []string{"", "#123", "#GGGGGG", "#1234567"} {
		_, err := ParseHexColor(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestTitle(t *testing.T) {
	for filename, expected := range map[string]string{
		"headphones-1.jpg":         "Headphones 1",
		"fitness-watch-2.jpg":      "Fitness Watch 2",
		"book-programming-1.jpg":   "Book Programming 1",
		"robot-vacuum-2.jpg":       "Robot Vacuum 2",
		"noextension":              "Noextension",
		"MIXED-case.jpg":           "Mixed Case",
		"3d-printer.jpg":           "3D Printer",
		"multi.part-name.test.jpg": "Multi.Part Name.Test",
	} {
		assert.Equal(t, expected, Title(filename), "filename %q", filename)
	}
}
