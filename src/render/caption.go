package render

import (
	"image"
	"image/color"
	"image/draw"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// captionHeight is the bottom padding reserved for a caption, in pixels.
const captionHeight = 18

var (
	captionBand = color.RGBA{R: 40, G: 40, B: 48, A: 255}
	captionInk  = color.RGBA{R: 235, G: 235, B: 235, A: 255}
)

// Caption returns a copy of img with text written on a footer band across the bottom
// captionHeight pixels. Text wider than the image is cut and ends in "...".
// Blank text returns img unchanged.
func Caption(img image.Image, text string) image.Image {
	text = strings.TrimSpace(text)
	if img == nil || text == "" {
		return img
	}
	b := img.Bounds()
	out := image.NewRGBA(b)
	draw.Draw(out, b, img, b.Min, draw.Src)

	band := image.Rect(b.Min.X, b.Max.Y-captionHeight, b.Max.X, b.Max.Y).Intersect(b)
	draw.Draw(out, band, image.NewUniform(captionBand), image.Point{}, draw.Src)

	face := basicfont.Face7x13
	d := &font.Drawer{Dst: out, Src: image.NewUniform(captionInk), Face: face}
	const margin = 6
	text = fitText(d, text, b.Dx()-2*margin)
	m := face.Metrics()
	baseline := band.Min.Y + (band.Dy()+m.Ascent.Ceil()-m.Descent.Ceil())/2
	d.Dot = fixed.P(b.Min.X+margin, baseline)
	d.DrawString(text)
	return out
}

// fitText shortens s until it fits in maxWidth pixels.
func fitText(d *font.Drawer, s string, maxWidth int) string {
	if d.MeasureString(s).Ceil() <= maxWidth {
		return s
	}
	r := []rune(s)
	for len(r) > 0 {
		r = r[:len(r)-1]
		if cut := string(r) + "..."; d.MeasureString(cut).Ceil() <= maxWidth {
			return cut
		}
	}
	return ""
}
