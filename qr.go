// Package qrlive encodes text as QR symbols (versions 1-40, byte
// mode) and renders them as vector markup, raster images and export
// artifacts.
package qrlive

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding/charmap"

	"github.com/qrforge/qrlive/coding"
)

// A Level denotes a QR error correction level.
// From least to most tolerant of errors, they are L, M, Q, H.
type Level int

const (
	L Level = iota // ~7% recoverable
	M              // ~15% recoverable
	Q              // ~25% recoverable
	H              // ~30% recoverable
)

// DefaultLevel is used when the caller does not specify a level.
const DefaultLevel = M

func (l Level) String() string { return coding.Level(l).String() }

// ParseLevel parses a one-letter level name, case-insensitively.
func ParseLevel(s string) (Level, error) {
	if len(s) == 1 {
		if i := strings.IndexByte("lmqh", s[0]|0x20); i >= 0 {
			return Level(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", coding.ErrLevel, s)
}

// Errors surfaced by Encode, re-exported for boundary checks.
var (
	ErrPayloadTooLarge = coding.ErrPayloadTooLarge
	ErrLevel           = coding.ErrLevel
)

// A Symbol is one finished QR code.  It is immutable: re-encoding for
// new input produces a new Symbol, never an in-place edit.
type Symbol struct {
	Version int   // symbol version, 1-40
	Level   Level // error correction level
	Mask    int   // selected mask pattern, 0-7

	size int
	dark []bool
}

// Size returns the number of modules on a side, excluding quiet zone.
func (s *Symbol) Size() int { return s.size }

// Dark reports whether the module at column x, row y is dark.
// Positions outside the symbol are light.
func (s *Symbol) Dark(x, y int) bool {
	return x >= 0 && x < s.size && y >= 0 && y < s.size &&
		s.dark[y*s.size+x]
}

type options struct {
	latin1 bool
}

// An Option adjusts encoding behaviour.
type Option func(*options)

// WithLatin1 re-encodes the payload as ISO 8859-1 when every rune is
// representable, saving one codeword per non-ASCII Latin rune.  The
// symbol still uses byte mode; readers that assume UTF-8 payloads may
// display non-ASCII text differently, so this is off by default.
func WithLatin1() Option {
	return func(o *options) { o.latin1 = true }
}

// Encode returns the QR symbol for text at the given error correction
// level.  The smallest version that fits the payload is selected; if
// none does, Encode returns ErrPayloadTooLarge.
func Encode(text string, level Level, opts ...Option) (*Symbol, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	payload := text
	if o.latin1 {
		if t, err := charmap.ISO8859_1.NewEncoder().String(text); err == nil {
			payload = t
		}
	}
	m, v, mask, err := coding.Encode([]byte(payload), coding.Level(level))
	if err != nil {
		return nil, err
	}
	s := &Symbol{
		Version: int(v),
		Level:   level,
		Mask:    mask,
		size:    m.Size,
		dark:    make([]bool, m.Size*m.Size),
	}
	for y := 0; y < m.Size; y++ {
		for x := 0; x < m.Size; x++ {
			s.dark[y*m.Size+x] = m.Dark(x, y)
		}
	}
	return s, nil
}
