package qrlive

import (
	"bytes"
	"errors"
	"fmt"
	"image/jpeg"
	"image/png"

	"github.com/go-pdf/fpdf"
)

// ErrUnsupportedFormat reports an unknown export format token.
// Unknown formats are rejected, never silently downgraded.
var ErrUnsupportedFormat = errors.New("qr: unsupported export format")

// A Format selects an export file type.
type Format int

const (
	Vector         Format = iota // scalable vector markup (SVG)
	RasterLossless               // losslessly encoded bitmap (PNG)
	RasterLossy                  // lossy bitmap at fixed quality (JPEG)
	Document                     // single-page A4 document (PDF)
)

var formatTokens = [...]string{
	Vector:         "vector",
	RasterLossless: "raster-lossless",
	RasterLossy:    "raster-lossy",
	Document:       "document",
}

func (f Format) String() string {
	if f >= 0 && int(f) < len(formatTokens) {
		return formatTokens[f]
	}
	return fmt.Sprintf("format(%d)", int(f))
}

// ParseFormat maps a format token to its Format.  Unknown tokens are
// rejected at the boundary, before any export work starts.
func ParseFormat(token string) (Format, error) {
	for f, t := range formatTokens {
		if token == t {
			return Format(f), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, token)
}

// Extension returns the filename extension for the format, with dot.
func (f Format) Extension() string {
	switch f {
	case Vector:
		return ".svg"
	case RasterLossless:
		return ".png"
	case RasterLossy:
		return ".jpg"
	case Document:
		return ".pdf"
	}
	return ""
}

// MIME returns the media type of the format's artifact.
func (f Format) MIME() string {
	switch f {
	case Vector:
		return "image/svg+xml"
	case RasterLossless:
		return "image/png"
	case RasterLossy:
		return "image/jpeg"
	case Document:
		return "application/pdf"
	}
	return "application/octet-stream"
}

// Export geometry and codec settings.  Raster exports default to a
// fixed square resolution; the lossy codec uses one fixed quality.
const (
	defaultRasterPx = 1024
	jpegQuality     = 90

	pageWidthMM  = 210 // A4 portrait
	pageHeightMM = 297
	imageSizeMM  = 150
)

// An Artifact is one exported file: its bytes, a suggested filename
// following the base-name-plus-extension convention, and a MIME type
// for the download sink.
type Artifact struct {
	Data     []byte
	Filename string
	MIME     string
}

// Export serialises the symbol in the requested format with the
// default raster size and quiet zone.  The base name gives the
// suggested filename stem.  Export is a pure transform of the symbol;
// it has no side effects.
func Export(s *Symbol, f Format, base string) (*Artifact, error) {
	return ExportSized(s, f, base, defaultRasterPx, QuietZone)
}

// ExportSized is Export with explicit raster pixels per side and
// quiet zone width.  px applies to raster and document formats only.
func ExportSized(s *Symbol, f Format, base string, px, border int) (*Artifact, error) {
	if base == "" {
		base = "qr"
	}
	var buf bytes.Buffer
	switch f {
	case Vector:
		if err := s.EncodeSVG(&buf, border); err != nil {
			return nil, err
		}
	case RasterLossless:
		img := s.Rasterize(px, nil, nil, border)
		if err := png.Encode(&buf, img); err != nil {
			return nil, err
		}
	case RasterLossy:
		img := s.Rasterize(px, nil, nil, border)
		opt := &jpeg.Options{Quality: jpegQuality}
		if err := jpeg.Encode(&buf, img, opt); err != nil {
			return nil, err
		}
	case Document:
		if err := s.encodePDF(&buf, px, border); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, f)
	}
	return &Artifact{
		Data:     buf.Bytes(),
		Filename: base + f.Extension(),
		MIME:     f.MIME(),
	}, nil
}

// encodePDF embeds the lossless raster centered on a single A4 page.
func (s *Symbol) encodePDF(buf *bytes.Buffer, px, border int) error {
	var img bytes.Buffer
	if err := png.Encode(&img, s.Rasterize(px, nil, nil, border)); err != nil {
		return err
	}
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("QR Code", true)
	pdf.AddPage()
	opt := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", opt, &img)
	x := (pageWidthMM - imageSizeMM) / 2.0
	y := (pageHeightMM - imageSizeMM) / 2.0
	pdf.ImageOptions("qr", x, y, imageSizeMM, imageSizeMM, false, opt, 0, "")
	return pdf.Output(buf)
}
