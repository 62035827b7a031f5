package coding

import "sync"

// A Module is one cell of the symbol grid.  Cells start Unset and must
// all be Light or Dark before mask scoring.
type Module uint8

const (
	Unset Module = iota
	Light
	Dark
)

// A Matrix is a square module grid.  Cells are addressed by column x
// and row y, origin top left.
type Matrix struct {
	Size  int
	cells []Module
}

// NewMatrix returns an all-Unset matrix with the given side length.
func NewMatrix(size int) *Matrix {
	return &Matrix{Size: size, cells: make([]Module, size*size)}
}

// At returns the module at column x, row y.
func (m *Matrix) At(x, y int) Module { return m.cells[y*m.Size+x] }

// Set sets the module at column x, row y.
func (m *Matrix) Set(x, y int, v Module) { m.cells[y*m.Size+x] = v }

// Dark reports whether the module at column x, row y is dark.
func (m *Matrix) Dark(x, y int) bool { return m.At(x, y) == Dark }

// Clone returns a deep copy of m.
func (m *Matrix) Clone() *Matrix {
	c := &Matrix{Size: m.Size, cells: make([]Module, len(m.cells))}
	copy(c.cells, m.cells)
	return c
}

// Complete reports whether every cell is Light or Dark.
func (m *Matrix) Complete() bool {
	for _, c := range m.cells {
		if c == Unset {
			return false
		}
	}
	return true
}

// A base is the version-determined half of a symbol: every function
// module placed, format areas reserved, and a bitmap marking which
// cells are function-reserved.  It is computed once per version and
// cloned per encode, so the assembler and the mask selector consult
// the same reservation map.
type base struct {
	m        *Matrix
	reserved []bool
}

func (b *base) isReserved(x, y int) bool { return b.reserved[y*b.m.Size+x] }

// mark sets a module and reserves its position.
func (b *base) mark(x, y int, v Module) {
	b.m.Set(x, y, v)
	b.reserved[y*b.m.Size+x] = true
}

var (
	bases    [MaxVersion + 1]*base
	baseOnce [MaxVersion + 1]sync.Once
)

// baseFor returns the cached function-pattern base for a version.
// Callers must not modify it; Assemble works on a clone.
func baseFor(v Version) *base {
	baseOnce[v].Do(func() {
		bases[v] = buildBase(v)
	})
	return bases[v]
}

// buildBase places every module whose value is fixed by the version
// alone: finders, separators, timing, alignment, the dark module,
// version information, and the reserved format information areas.
func buildBase(v Version) *base {
	size := v.Size()
	b := &base{m: NewMatrix(size), reserved: make([]bool, size*size)}

	b.finder(0, 0)
	b.finder(size-7, 0)
	b.finder(0, size-7)

	// Timing patterns along row and column 6, dark on even indices.
	for i := 8; i < size-8; i++ {
		v := Light
		if i%2 == 0 {
			v = Dark
		}
		b.mark(i, 6, v)
		b.mark(6, i, v)
	}

	// Alignment patterns, skipping the three centers that would
	// overlap finders.  Centers on the timing line stay: alignment
	// modules there agree with the timing pattern, as centers are
	// always even.
	if cs := alignCenters(v); len(cs) > 0 {
		last := cs[len(cs)-1]
		for _, cx := range cs {
			for _, cy := range cs {
				if cx == 6 && cy == 6 || cx == 6 && cy == last ||
					cx == last && cy == 6 {
					continue
				}
				b.alignment(cx, cy)
			}
		}
	}

	// Format information areas are reserved now and written by the
	// mask selector; the placeholder value is Light.
	for i := 0; i < 8; i++ {
		if i != 6 {
			b.mark(i, 8, Light) // top left, horizontal run
			b.mark(8, i, Light) // top left, vertical run
		}
		b.mark(size-1-i, 8, Light) // top right
		b.mark(8, size-1-i, Light) // bottom left
	}
	b.mark(8, 8, Light)

	// The one always-dark module above the bottom-left finder.
	b.mark(8, size-8, Dark)

	if v >= 7 {
		b.versionInfo(v)
	}
	return b
}

// finder draws a 7×7 finder pattern with top-left corner (x, y) and
// the light separator strip around it.
func (b *base) finder(x, y int) {
	for dy := -1; dy <= 7; dy++ {
		for dx := -1; dx <= 7; dx++ {
			xx, yy := x+dx, y+dy
			if xx < 0 || yy < 0 || xx >= b.m.Size || yy >= b.m.Size {
				continue
			}
			v := Light
			if dx >= 0 && dx <= 6 && dy >= 0 && dy <= 6 {
				onRing := dx == 0 || dx == 6 || dy == 0 || dy == 6
				inCore := dx >= 2 && dx <= 4 && dy >= 2 && dy <= 4
				if onRing || inCore {
					v = Dark
				}
			}
			b.mark(xx, yy, v)
		}
	}
}

// alignment draws a 5×5 alignment pattern centered at (cx, cy).
func (b *base) alignment(cx, cy int) {
	for dy := -2; dy <= 2; dy++ {
		for dx := -2; dx <= 2; dx++ {
			v := Light
			if dx == 0 && dy == 0 || dx == -2 || dx == 2 || dy == -2 || dy == 2 {
				v = Dark
			}
			b.mark(cx+dx, cy+dy, v)
		}
	}
}

// versionInfo writes the 18 version information bits in the two
// version blocks, least significant bit first.
func (b *base) versionInfo(v Version) {
	bits := versionBits(v)
	size := b.m.Size
	for k := 0; k < 18; k++ {
		val := Light
		if bits>>k&1 != 0 {
			val = Dark
		}
		b.mark(k/3, size-11+k%3, val) // bottom left, 6×3
		b.mark(size-11+k%3, k/3, val) // top right, 3×6
	}
}

// Assemble lays the interleaved codeword sequence into a fresh matrix
// for the given version.  All function patterns are placed and every
// data cell filled; the mask is not yet applied and the format area
// holds placeholders.  Assemble returns ErrAssemblyOverflow if the
// codeword count does not match the version's capacity.
func Assemble(codewords []byte, v Version) (*Matrix, []bool, error) {
	if !v.valid() {
		return nil, nil, ErrVersion
	}
	info := &vtab[v]
	if len(codewords) != info.words {
		return nil, nil, ErrAssemblyOverflow
	}
	cached := baseFor(v)
	m := cached.m.Clone()
	reserved := cached.reserved

	// Zig-zag: column pairs right to left, alternating upward and
	// downward, skipping the vertical timing column.  Bits are taken
	// most significant first; leftover cells beyond the codeword
	// bits are the version's remainder modules, always light.
	bit := 0
	nbits := len(codewords) * 8
	size := m.Size
	up := true
	for x := size - 1; x > 0; x -= 2 {
		if x == 6 {
			x--
		}
		for i := 0; i < size; i++ {
			y := i
			if up {
				y = size - 1 - i
			}
			for dx := 0; dx < 2; dx++ {
				xx := x - dx
				if reserved[y*size+xx] {
					continue
				}
				val := Light
				if bit < nbits && codewords[bit>>3]>>(7-bit&7)&1 != 0 {
					val = Dark
				}
				m.Set(xx, y, val)
				bit++
			}
		}
		up = !up
	}
	if bit != nbits+info.rem {
		return nil, nil, ErrAssemblyOverflow
	}
	return m, reserved, nil
}
