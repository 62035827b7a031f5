// Package coding implements low-level QR symbol coding: byte-mode
// codeword packing, Reed-Solomon error correction, module matrix
// assembly and mask selection for QR versions 1 to 40.
package coding

import (
	"errors"
	"strconv"

	"github.com/qrforge/qrlive/gf256"
)

var (
	// ErrLevel reports an error correction level outside L..H.
	ErrLevel = errors.New("qr: invalid level")
	// ErrVersion reports a version outside 1..40.
	ErrVersion = errors.New("qr: invalid version")
	// ErrPayloadTooLarge reports input that no version at the
	// requested level can hold in byte mode.
	ErrPayloadTooLarge = errors.New("qr: payload too large for any version")
	// ErrAssemblyOverflow reports a codeword sequence that does not
	// match the matrix data capacity.  It indicates an internal
	// inconsistency between packer, coder and assembler.
	ErrAssemblyOverflow = errors.New("qr: codeword count does not match matrix capacity")
)

// Field is the GF(2⁸) field for QR error correction.
var Field = gf256.NewField(0x11d, 2)

// A Version represents a QR symbol version.  A symbol with version v
// has 4v+17 modules on a side; the larger the version, the more data
// the symbol stores.
type Version int

const (
	MinVersion Version = 1
	MaxVersion Version = 40
)

func (v Version) String() string { return strconv.Itoa(int(v)) }

// Size returns the number of modules on a side of a symbol with
// version v.
func (v Version) Size() int { return int(v)*4 + 17 }

// valid reports whether v is a usable QR version.
func (v Version) valid() bool { return v >= MinVersion && v <= MaxVersion }

// countLength returns the character count field width in bits for
// byte mode at version v.
func (v Version) countLength() int {
	if v <= 9 {
		return 8
	}
	return 16
}

// DataBytes returns the number of data codewords a symbol with the
// given version and level stores.
func (v Version) DataBytes(l Level) int {
	vt := &vtab[v]
	lev := vt.level[l]
	return vt.words - lev.nblock*lev.check
}

// DataBits returns the number of data bits a symbol with the given
// version and level stores.
func (v Version) DataBits(l Level) int { return v.DataBytes(l) * 8 }

// A Level represents a QR error correction level.
// From least to most tolerant of errors, they are L, M, Q, H.
type Level int

const (
	L Level = iota
	M
	Q
	H
)

func (l Level) String() string {
	if L <= l && l <= H {
		return "LMQH"[l : l+1]
	}
	return strconv.Itoa(int(l))
}

// valid reports whether l is a usable error correction level.
func (l Level) valid() bool { return l >= L && l <= H }
