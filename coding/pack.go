package coding

// Byte mode is the only encoding mode: a 4-bit indicator, a character
// count sized by the version range, then one codeword per input byte.
const byteModeIndicator = 4

// headerBits returns the byte-mode header length in bits at version v.
func headerBits(v Version) int { return 4 + v.countLength() }

// MinVersionFor returns the smallest version whose data capacity at
// level l holds n payload bytes in byte mode, or ErrPayloadTooLarge.
func MinVersionFor(n int, l Level) (Version, error) {
	if !l.valid() {
		return 0, ErrLevel
	}
	for v := MinVersion; v <= MaxVersion; v++ {
		if headerBits(v)+8*n <= v.DataBits(l) {
			return v, nil
		}
	}
	return 0, ErrPayloadTooLarge
}

// Pack encodes data in byte mode at the smallest version that fits it
// at level l and returns the padded bit stream, exactly filling the
// data codeword capacity of the chosen version.
func Pack(data []byte, l Level) (*Bits, Version, error) {
	v, err := MinVersionFor(len(data), l)
	if err != nil {
		return nil, 0, err
	}
	b := NewBits(v, l)
	b.Write(byteModeIndicator, 4)
	b.Write(uint32(len(data)), v.countLength())
	for _, c := range data {
		b.Write(uint32(c), 8)
	}
	b.PadTo(4, v.DataBits(l))
	return b, v, nil
}
