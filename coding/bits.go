package coding

// Bits is an append-only bit stream.  Bits are packed most significant
// first, the order codewords are laid into the symbol.
type Bits struct {
	b    []byte
	nbit int
}

// NewBits returns a Bits with capacity for a symbol of the given
// version and level.
func NewBits(v Version, l Level) *Bits {
	return &Bits{b: make([]byte, 0, v.DataBytes(l))}
}

func (b *Bits) Reset() {
	b.b = b.b[:0]
	b.nbit = 0
}

// Bits returns the current length in bits.
func (b *Bits) Bits() int { return b.nbit }

// Bytes returns the underlying buffer.  It panics if the stream does
// not end on a byte boundary.
func (b *Bits) Bytes() []byte {
	if b.nbit%8 != 0 {
		panic("qr: fractional byte")
	}
	return b.b
}

// Write appends the low nbit bits of v, most significant first.
func (b *Bits) Write(v uint32, nbit int) {
	for nbit > 0 {
		n := b.nbit & 7
		if n == 0 {
			b.b = append(b.b, 0)
		}
		take := min(8-n, nbit)
		chunk := v >> (nbit - take) & (1<<take - 1)
		b.b[len(b.b)-1] |= byte(chunk << (8 - n - take))
		b.nbit += take
		nbit -= take
	}
}

// PadTo appends up to t zero terminator bits, pads to a byte boundary,
// then fills with the alternating pad codewords 0xEC, 0x11 until the
// stream is n bits long.
func (b *Bits) PadTo(t, n int) {
	if r := n - b.nbit; r < t {
		t = r
	}
	b.Write(0, t)
	if r := b.nbit & 7; r != 0 {
		b.Write(0, 8-r)
	}
	for pad := byte(0xec); b.nbit < n; pad ^= 0xec ^ 0x11 {
		b.Write(uint32(pad), 8)
	}
}
