package coding

// Encode runs the full coding pipeline on raw payload bytes: byte-mode
// packing at the smallest fitting version, per-block Reed-Solomon
// parity, interleaving, matrix assembly and mask selection.  The
// returned matrix is fully populated and final.
func Encode(data []byte, l Level) (*Matrix, Version, int, error) {
	if !l.valid() {
		return nil, 0, 0, ErrLevel
	}
	bits, v, err := Pack(data, l)
	if err != nil {
		return nil, 0, 0, err
	}
	seq := Interleave(SplitBlocks(bits.Bytes(), v, l))
	m, reserved, err := Assemble(seq, v)
	if err != nil {
		return nil, 0, 0, err
	}
	masked, mask, _ := ChooseMask(m, reserved, l)
	return masked, v, mask, nil
}
