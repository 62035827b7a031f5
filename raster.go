package qrlive

import (
	"image"
	"image/color"
)

// Rasterize samples the symbol into a pixel buffer of px×px pixels,
// quiet zone included, using nearest-neighbor sampling so module
// edges stay crisp for scanners.  Dark and light modules map to fg
// and bg; nil selects black and white.  A border below QuietZone is
// widened to QuietZone.
func (s *Symbol) Rasterize(px int, fg, bg color.Color, border int) *image.RGBA {
	if border < QuietZone {
		border = QuietZone
	}
	if fg == nil {
		fg = color.Black
	}
	if bg == nil {
		bg = color.White
	}
	n := s.size + 2*border
	if px < n {
		px = n
	}
	img := image.NewRGBA(image.Rect(0, 0, px, px))
	fgc := color.RGBAModel.Convert(fg).(color.RGBA)
	bgc := color.RGBAModel.Convert(bg).(color.RGBA)
	for j := 0; j < px; j++ {
		y := j*n/px - border
		for i := 0; i < px; i++ {
			x := i*n/px - border
			c := bgc
			if s.Dark(x, y) {
				c = fgc
			}
			img.SetRGBA(i, j, c)
		}
	}
	return img
}
