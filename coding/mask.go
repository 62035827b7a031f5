package coding

// maskBit reports whether the mask pattern inverts the module at
// row y, column x.  The eight formulas are fixed by the standard.
func maskBit(mask, x, y int) bool {
	switch mask {
	case 0:
		return (x+y)%2 == 0
	case 1:
		return y%2 == 0
	case 2:
		return x%3 == 0
	case 3:
		return (x+y)%3 == 0
	case 4:
		return (y/2+x/3)%2 == 0
	case 5:
		return x*y%2+x*y%3 == 0
	case 6:
		return (x*y%2+x*y%3)%2 == 0
	case 7:
		return ((x+y)%2+x*y%3)%2 == 0
	}
	panic("qr: invalid mask")
}

// applyMask XORs the mask pattern into every non-reserved cell of m.
func applyMask(m *Matrix, reserved []bool, mask int) {
	size := m.Size
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if reserved[y*size+x] || !maskBit(mask, x, y) {
				continue
			}
			if m.At(x, y) == Dark {
				m.Set(x, y, Light)
			} else {
				m.Set(x, y, Dark)
			}
		}
	}
}

// writeFormat writes both copies of the 15 format information bits for
// the given level and mask into their reserved positions.
func writeFormat(m *Matrix, l Level, mask int) {
	fb := formatBits(l, mask)
	size := m.Size
	mod := func(i int) Module {
		if fb>>i&1 != 0 {
			return Dark
		}
		return Light
	}
	// First copy, around the top-left finder: bit 0 at (8, 0), down
	// the column, around the corner and leftward along row 8.
	for i := 0; i <= 5; i++ {
		m.Set(8, i, mod(i))
	}
	m.Set(8, 7, mod(6))
	m.Set(8, 8, mod(7))
	m.Set(7, 8, mod(8))
	for i := 9; i <= 14; i++ {
		m.Set(14-i, 8, mod(i))
	}
	// Second copy, split between the top-right and bottom-left edges:
	// bit 0 at (size-1, 8), bit 14 at (8, size-1).
	for i := 0; i <= 7; i++ {
		m.Set(size-1-i, 8, mod(i))
	}
	for i := 8; i <= 14; i++ {
		m.Set(8, size-15+i, mod(i))
	}
}

// Penalty terms, per the standard's four evaluation rules.
const (
	penRun    = 3  // run of 5 same-colour modules; +1 per extra module
	penBox    = 3  // 2×2 same-colour block
	penFinder = 40 // 1:1:3:1:1 finder-like run with light flank
	penBal    = 10 // per 5% deviation from 50% dark
)

// finder-like sequences: dark 1:1:3:1:1 with four light modules on
// one side, scanned over an 11-module window.
var (
	finderSeqA = [11]bool{true, false, true, true, true, false, true,
		false, false, false, false}
	finderSeqB = [11]bool{false, false, false, false, true, false,
		true, true, true, false, true}
)

// Penalty returns the total penalty score of a fully populated matrix.
// Lower is better; mask selection keeps the minimum.
func Penalty(m *Matrix) int {
	size := m.Size
	p := 0
	dark := 0

	at := func(x, y, vertical int) bool {
		if vertical != 0 {
			return m.Dark(y, x)
		}
		return m.Dark(x, y)
	}

	// Rules 1 and 3 over rows, then columns.
	for vert := 0; vert < 2; vert++ {
		for y := 0; y < size; y++ {
			run := 1
			prev := at(0, y, vert)
			for x := 1; x < size; x++ {
				cur := at(x, y, vert)
				if cur == prev {
					run++
					continue
				}
				if run >= 5 {
					p += penRun + run - 5
				}
				prev, run = cur, 1
			}
			if run >= 5 {
				p += penRun + run - 5
			}
			for x := 0; x+11 <= size; x++ {
				a, b := true, true
				for i := 0; i < 11; i++ {
					v := at(x+i, y, vert)
					a = a && v == finderSeqA[i]
					b = b && v == finderSeqB[i]
				}
				if a {
					p += penFinder
				}
				if b {
					p += penFinder
				}
			}
		}
	}

	// Rule 2: 2×2 blocks of one colour, overlapping.
	for y := 0; y < size-1; y++ {
		for x := 0; x < size-1; x++ {
			v := m.Dark(x, y)
			if m.Dark(x+1, y) == v && m.Dark(x, y+1) == v &&
				m.Dark(x+1, y+1) == v {
				p += penBox
			}
		}
	}

	// Rule 4: dark module balance, 10 points per 5% step from 50%.
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if m.Dark(x, y) {
				dark++
			}
		}
	}
	total := size * size
	dev := dark*20 - total*10
	if dev < 0 {
		dev = -dev
	}
	k := (dev+total-1)/total - 1 // 5% deviation steps, rounded up
	p += k * penBal
	return p
}

// ChooseMask evaluates all eight mask patterns on the assembled matrix
// and returns the masked matrix with minimum penalty, its mask index,
// and the penalty score.  Format bits are written per candidate before
// scoring.  Ties keep the lowest mask index, so selection is stable.
func ChooseMask(m *Matrix, reserved []bool, l Level) (*Matrix, int, int) {
	var best *Matrix
	bestMask, bestPen := -1, int(^uint(0)>>1)
	for mask := 0; mask < 8; mask++ {
		c := m.Clone()
		applyMask(c, reserved, mask)
		writeFormat(c, l, mask)
		if p := Penalty(c); p < bestPen {
			best, bestMask, bestPen = c, mask, p
		}
	}
	return best, bestMask, bestPen
}
