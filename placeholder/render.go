package placeholder

import (
	"image"
	"image/color"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	DefaultWidth  = 800
	DefaultHeight = 600

	// Caption is drawn near the bottom edge of every image.
	Caption = "Placeholder Image"

	titleSize       = 48
	captionSize     = 24
	titleRaise      = 20
	captionFromEdge = 60
)

// Labels and their shadows are drawn opaque.
var (
	shadowColor = color.RGBA{A: 255}
	textColor   = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// Renderer draws placeholder images. It is not safe for concurrent use, because font faces
// keep glyph caches.
type Renderer struct {
	Width       int
	Height      int
	fontName    string
	titleFace   font.Face
	captionFace font.Face
}

// NewRenderer creates a Renderer using the font from fonts. If fonts is nil or cannot provide
// a font, the built-in bitmap font is used instead; this never fails.
func NewRenderer(fonts FontSource) *Renderer {
	r := &Renderer{
		Width:       DefaultWidth,
		Height:      DefaultHeight,
		fontName:    "built-in",
		titleFace:   basicfont.Face7x13,
		captionFace: basicfont.Face7x13,
	}
	if fonts == nil {
		return r
	}
	f, name, err := fonts.LoadFont()
	if err != nil {
		return r
	}
	r.fontName = name
	r.titleFace = truetype.NewFace(f, &truetype.Options{Size: titleSize, DPI: 72, Hinting: font.HintingFull})
	r.captionFace = truetype.NewFace(f, &truetype.Options{Size: captionSize, DPI: 72, Hinting: font.HintingFull})
	return r
}

// FontName is the file the labels are drawn with, or "built-in" for the fallback font.
func (r *Renderer) FontName() string {
	return r.fontName
}

// Render draws the image for spec: a solid fill, the title centered slightly above the middle,
// and the caption centered near the bottom. Each text is drawn over a black offset copy of
// itself as a drop shadow.
func (r *Renderer) Render(spec Spec) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, r.Width, r.Height))
	draw.Draw(img, img.Bounds(), image.NewUniform(spec.Color), image.Point{}, draw.Src)

	title := Title(spec.Filename)
	w, h := textSize(r.titleFace, title)
	x := (r.Width - w) / 2
	y := (r.Height-h)/2 - titleRaise
	drawText(img, r.titleFace, title, x+2, y+2, shadowColor)
	drawText(img, r.titleFace, title, x, y, textColor)

	w, _ = textSize(r.captionFace, Caption)
	x = (r.Width - w) / 2
	y = r.Height - captionFromEdge
	drawText(img, r.captionFace, Caption, x+1, y+1, shadowColor)
	drawText(img, r.captionFace, Caption, x, y, textColor)

	return img
}

// textSize returns the width and height of the ink of s.
func textSize(face font.Face, s string) (int, int) {
	bounds, _ := font.BoundString(face, s)
	return (bounds.Max.X - bounds.Min.X).Ceil(), (bounds.Max.Y - bounds.Min.Y).Ceil()
}

// drawText draws s with the top of the face's ascent at y, so that (x, y) is the top left
// corner of the line.
func drawText(dst *image.RGBA, face font.Face, s string, x, y int, c color.Color) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y) + face.Metrics().Ascent},
	}
	d.DrawString(s)
}
