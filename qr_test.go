package qrlive_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qrforge/qrlive"
)

func TestParseLevel(t *testing.T) {
	for _, tt := range []struct {
		in   string
		want qrlive.Level
	}{
		{"l", qrlive.L}, {"L", qrlive.L},
		{"m", qrlive.M}, {"M", qrlive.M},
		{"q", qrlive.Q}, {"Q", qrlive.Q},
		{"h", qrlive.H}, {"H", qrlive.H},
	} {
		t.Run(tt.in, func(t *testing.T) {
			got, err := qrlive.ParseLevel(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
	for _, in := range []string{"", "x", "medium", "LL"} {
		_, err := qrlive.ParseLevel(in)
		assert.ErrorIs(t, err, qrlive.ErrLevel, "input %q", in)
	}
}

func TestEncode(t *testing.T) {
	sym, err := qrlive.Encode("hello", qrlive.M)
	require.NoError(t, err)
	assert.Equal(t, 1, sym.Version)
	assert.Equal(t, qrlive.M, sym.Level)
	assert.Equal(t, 21, sym.Size())

	// Finder core is dark, quiet positions outside are light.
	assert.True(t, sym.Dark(3, 3))
	assert.False(t, sym.Dark(-1, 0))
	assert.False(t, sym.Dark(0, 21))
}

func TestEncodeDeterministic(t *testing.T) {
	a, err := qrlive.Encode("same input", qrlive.Q)
	require.NoError(t, err)
	b, err := qrlive.Encode("same input", qrlive.Q)
	require.NoError(t, err)
	require.Equal(t, a.Size(), b.Size())
	assert.Equal(t, a.Mask, b.Mask)
	for y := 0; y < a.Size(); y++ {
		for x := 0; x < a.Size(); x++ {
			require.Equal(t, a.Dark(x, y), b.Dark(x, y),
				"module (%d, %d)", x, y)
		}
	}
}

func TestEncodeVersionGrowth(t *testing.T) {
	small, err := qrlive.Encode(strings.Repeat("a", 14), qrlive.M)
	require.NoError(t, err)
	big, err := qrlive.Encode(strings.Repeat("a", 15), qrlive.M)
	require.NoError(t, err)
	assert.Equal(t, 1, small.Version)
	assert.Equal(t, 2, big.Version)
	assert.Equal(t, small.Size()+4, big.Size())
}

func TestEncodeTooLarge(t *testing.T) {
	_, err := qrlive.Encode(strings.Repeat("a", 3000), qrlive.H)
	assert.ErrorIs(t, err, qrlive.ErrPayloadTooLarge)
}

func TestEncodeEmpty(t *testing.T) {
	sym, err := qrlive.Encode("", qrlive.L)
	require.NoError(t, err)
	assert.Equal(t, 1, sym.Version)
}

func TestWithLatin1(t *testing.T) {
	// Latin-1 halves the payload of non-ASCII western text.
	text := strings.Repeat("é", 14)
	utf8Sym, err := qrlive.Encode(text, qrlive.M)
	require.NoError(t, err)
	latinSym, err := qrlive.Encode(text, qrlive.M, qrlive.WithLatin1())
	require.NoError(t, err)
	assert.Equal(t, 3, utf8Sym.Version)
	assert.Equal(t, 1, latinSym.Version)

	// Text outside Latin-1 falls back to UTF-8.
	fallback, err := qrlive.Encode("日本語", qrlive.M, qrlive.WithLatin1())
	require.NoError(t, err)
	plain, err := qrlive.Encode("日本語", qrlive.M)
	require.NoError(t, err)
	assert.Equal(t, plain.Version, fallback.Version)
}

func TestSVG(t *testing.T) {
	sym, err := qrlive.Encode("svg test", qrlive.M)
	require.NoError(t, err)
	svg := sym.SVG(4)

	assert.Contains(t, svg, "<?xml")
	assert.Contains(t, svg, "viewBox=\"0 0 29 29\"")
	assert.True(t, strings.HasSuffix(svg, "</svg>\n"))

	dark := 0
	for y := 0; y < sym.Size(); y++ {
		for x := 0; x < sym.Size(); x++ {
			if sym.Dark(x, y) {
				dark++
			}
		}
	}
	// One rect per dark module plus the background.
	assert.Equal(t, dark+1, strings.Count(svg, "<rect"))
}

func TestSVGBorderClamp(t *testing.T) {
	sym, err := qrlive.Encode("border", qrlive.M)
	require.NoError(t, err)
	// A quiet zone below four modules is widened to four.
	assert.Equal(t, sym.SVG(4), sym.SVG(0))
	assert.NotEqual(t, sym.SVG(4), sym.SVG(5))
}

func TestRasterizeAgreesWithSymbol(t *testing.T) {
	sym, err := qrlive.Encode("raster test", qrlive.M)
	require.NoError(t, err)
	border := 4
	n := sym.Size() + 2*border
	px := n * 10
	img := sym.Rasterize(px, nil, nil, border)
	require.Equal(t, px, img.Bounds().Dx())
	require.Equal(t, px, img.Bounds().Dy())

	sample := func(mx, my int) bool {
		r, _, _, _ := img.At((mx+border)*10+5, (my+border)*10+5).RGBA()
		return r == 0
	}
	// Quiet zone is light.
	assert.False(t, sample(-1, -1))
	assert.False(t, sample(sym.Size(), sym.Size()))
	for y := 0; y < sym.Size(); y++ {
		for x := 0; x < sym.Size(); x++ {
			require.Equal(t, sym.Dark(x, y), sample(x, y),
				"module (%d, %d)", x, y)
		}
	}
}

func TestRasterizeMinimumSize(t *testing.T) {
	sym, err := qrlive.Encode("tiny", qrlive.M)
	require.NoError(t, err)
	// A pixel size below one pixel per module is widened.
	img := sym.Rasterize(1, nil, nil, 4)
	assert.GreaterOrEqual(t, img.Bounds().Dx(), sym.Size()+8)
}
