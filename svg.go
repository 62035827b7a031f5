package qrlive

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// QuietZone is the minimum quiet zone width in modules required by
// the standard.
const QuietZone = 4

// EncodeSVG writes a scalable vector rendition of the symbol to w:
// one rectangle per dark module on a unit grid, with a light
// background covering the quiet zone.  A border below QuietZone is
// widened to QuietZone.  The intrinsic scale is one unit per module;
// consumers size the image purely by scaling.
func (s *Symbol) EncodeSVG(w io.Writer, border int) error {
	if border < QuietZone {
		border = QuietZone
	}
	b := bufio.NewWriter(w)
	n := s.size + 2*border
	fmt.Fprintf(b, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" shape-rendering="crispEdges">
`, n, n)
	fmt.Fprintf(b, "<rect width=\"%d\" height=\"%d\" fill=\"#ffffff\"/>\n", n, n)
	for y := 0; y < s.size; y++ {
		for x := 0; x < s.size; x++ {
			if s.Dark(x, y) {
				fmt.Fprintf(b, "<rect x=\"%d\" y=\"%d\" width=\"1\" height=\"1\" fill=\"#000000\"/>\n",
					x+border, y+border)
			}
		}
	}
	b.WriteString("</svg>\n")
	return b.Flush()
}

// SVG returns the vector rendition as a string, suitable for
// clipboard export.
func (s *Symbol) SVG(border int) string {
	var b strings.Builder
	s.EncodeSVG(&b, border)
	return b.String()
}
