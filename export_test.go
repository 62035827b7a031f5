package qrlive_test

import (
	"bytes"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qrforge/qrlive"
)

func TestParseFormat(t *testing.T) {
	for _, tt := range []struct {
		in   string
		want qrlive.Format
	}{
		{"vector", qrlive.Vector},
		{"raster-lossless", qrlive.RasterLossless},
		{"raster-lossy", qrlive.RasterLossy},
		{"document", qrlive.Document},
	} {
		got, err := qrlive.ParseFormat(tt.in)
		require.NoError(t, err, "token %q", tt.in)
		assert.Equal(t, tt.want, got)
	}
	for _, in := range []string{"", "svg", "png", "raster", "VECTOR"} {
		_, err := qrlive.ParseFormat(in)
		assert.ErrorIs(t, err, qrlive.ErrUnsupportedFormat, "token %q", in)
	}
}

func TestFormatMapping(t *testing.T) {
	for _, tt := range []struct {
		f    qrlive.Format
		ext  string
		mime string
	}{
		{qrlive.Vector, ".svg", "image/svg+xml"},
		{qrlive.RasterLossless, ".png", "image/png"},
		{qrlive.RasterLossy, ".jpg", "image/jpeg"},
		{qrlive.Document, ".pdf", "application/pdf"},
	} {
		assert.Equal(t, tt.ext, tt.f.Extension())
		assert.Equal(t, tt.mime, tt.f.MIME())
	}
}

func TestExportVector(t *testing.T) {
	sym, err := qrlive.Encode("export me", qrlive.M)
	require.NoError(t, err)
	art, err := qrlive.Export(sym, qrlive.Vector, "code")
	require.NoError(t, err)
	assert.Equal(t, "code.svg", art.Filename)
	assert.Equal(t, "image/svg+xml", art.MIME)
	assert.True(t, strings.HasPrefix(string(art.Data), "<?xml"))
}

func TestExportRasterLossless(t *testing.T) {
	sym, err := qrlive.Encode("export me", qrlive.M)
	require.NoError(t, err)
	art, err := qrlive.Export(sym, qrlive.RasterLossless, "code")
	require.NoError(t, err)
	assert.Equal(t, "code.png", art.Filename)
	img, err := png.Decode(bytes.NewReader(art.Data))
	require.NoError(t, err)
	assert.Equal(t, 1024, img.Bounds().Dx())

	// Decoded corner pixel sits in the quiet zone.
	r, g, b, _ := img.At(0, 0).RGBA()
	assert.Equal(t, uint32(0xffff), r)
	assert.Equal(t, uint32(0xffff), g)
	assert.Equal(t, uint32(0xffff), b)

	// Re-sampling module centers recovers the symbol exactly.
	n := sym.Size() + 8
	for y := 0; y < sym.Size(); y++ {
		for x := 0; x < sym.Size(); x++ {
			px := (x+4)*1024/n + 1024/(2*n)
			py := (y+4)*1024/n + 1024/(2*n)
			r, _, _, _ := img.At(px, py).RGBA()
			require.Equal(t, sym.Dark(x, y), r == 0,
				"module (%d, %d)", x, y)
		}
	}
}

func TestExportRasterLossy(t *testing.T) {
	sym, err := qrlive.Encode("export me", qrlive.M)
	require.NoError(t, err)
	art, err := qrlive.Export(sym, qrlive.RasterLossy, "code")
	require.NoError(t, err)
	assert.Equal(t, "code.jpg", art.Filename)
	img, err := jpeg.Decode(bytes.NewReader(art.Data))
	require.NoError(t, err)
	assert.Equal(t, 1024, img.Bounds().Dx())

	// Lossy pixels still classify correctly at module centers.
	n := sym.Size() + 8
	for y := 0; y < sym.Size(); y++ {
		for x := 0; x < sym.Size(); x++ {
			px := (x+4)*1024/n + 1024/(2*n)
			py := (y+4)*1024/n + 1024/(2*n)
			r, _, _, _ := img.At(px, py).RGBA()
			require.Equal(t, sym.Dark(x, y), r < 0x8000,
				"module (%d, %d)", x, y)
		}
	}
}

func TestExportDocument(t *testing.T) {
	sym, err := qrlive.Encode("export me", qrlive.M)
	require.NoError(t, err)
	art, err := qrlive.Export(sym, qrlive.Document, "code")
	require.NoError(t, err)
	assert.Equal(t, "code.pdf", art.Filename)
	assert.Equal(t, "application/pdf", art.MIME)
	assert.True(t, bytes.HasPrefix(art.Data, []byte("%PDF")))
}

func TestExportDefaultBase(t *testing.T) {
	sym, err := qrlive.Encode("x", qrlive.M)
	require.NoError(t, err)
	art, err := qrlive.Export(sym, qrlive.Vector, "")
	require.NoError(t, err)
	assert.Equal(t, "qr.svg", art.Filename)
}

func TestExportSized(t *testing.T) {
	sym, err := qrlive.Encode("sized", qrlive.M)
	require.NoError(t, err)
	art, err := qrlive.ExportSized(sym, qrlive.RasterLossless, "qr", 512, 4)
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(art.Data))
	require.NoError(t, err)
	assert.Equal(t, 512, img.Bounds().Dx())
}

// Export must not mutate the symbol; repeated exports are identical.
func TestExportPure(t *testing.T) {
	sym, err := qrlive.Encode("pure", qrlive.Q)
	require.NoError(t, err)
	a, err := qrlive.Export(sym, qrlive.RasterLossless, "qr")
	require.NoError(t, err)
	b, err := qrlive.Export(sym, qrlive.RasterLossless, "qr")
	require.NoError(t, err)
	assert.Equal(t, a.Data, b.Data)
}
