package coding

import (
	"errors"
	"testing"
)

func TestAssembleOverflow(t *testing.T) {
	if _, _, err := Assemble(make([]byte, 25), 1); !errors.Is(err, ErrAssemblyOverflow) {
		t.Errorf("short codewords: err = %v", err)
	}
	if _, _, err := Assemble(make([]byte, 27), 1); !errors.Is(err, ErrAssemblyOverflow) {
		t.Errorf("long codewords: err = %v", err)
	}
}

func TestAssembleFunctionPatterns(t *testing.T) {
	m, reserved, err := Assemble(make([]byte, vtab[1].words), 1)
	if err != nil {
		t.Fatal(err)
	}
	size := m.Size
	if size != 21 {
		t.Fatalf("size = %d, want 21", size)
	}
	if !m.Complete() {
		t.Error("matrix has unset cells")
	}

	// Finder ring corners and cores.
	for _, p := range [][2]int{
		{0, 0}, {6, 6}, {3, 3}, {20, 0}, {14, 6}, {0, 20}, {3, 17},
	} {
		if !m.Dark(p[0], p[1]) {
			t.Errorf("module (%d, %d) light, want dark", p[0], p[1])
		}
	}
	// Separators.
	for _, p := range [][2]int{{7, 7}, {13, 7}, {7, 13}} {
		if m.Dark(p[0], p[1]) {
			t.Errorf("module (%d, %d) dark, want light", p[0], p[1])
		}
	}
	// Timing alternation along row and column 6.
	for i := 8; i < size-8; i++ {
		want := i%2 == 0
		if m.Dark(i, 6) != want || m.Dark(6, i) != want {
			t.Errorf("timing module %d wrong", i)
		}
	}
	// The always-dark module.
	if !m.Dark(8, size-8) {
		t.Error("dark module light")
	}
	if !reserved[(size-8)*size+8] {
		t.Error("dark module not reserved")
	}
}

// Every version's data capacity must match its codeword count exactly.
func TestAssembleAllVersions(t *testing.T) {
	for v := MinVersion; v <= MaxVersion; v++ {
		m, _, err := Assemble(make([]byte, vtab[v].words), v)
		if err != nil {
			t.Fatalf("version %v: %v", v, err)
		}
		if !m.Complete() {
			t.Fatalf("version %v: unset cells", v)
		}
	}
}

// Alignment patterns centered on the timing line must be drawn; only
// the three finder-corner centers are skipped.
func TestAlignmentOnTimingLine(t *testing.T) {
	m, reserved, err := Assemble(make([]byte, vtab[7].words), 7)
	if err != nil {
		t.Fatal(err)
	}
	size := m.Size
	for _, c := range [][2]int{{22, 6}, {6, 22}, {22, 22}, {38, 22}, {22, 38}, {38, 38}} {
		cx, cy := c[0], c[1]
		if !m.Dark(cx, cy) || !m.Dark(cx-2, cy-2) || !m.Dark(cx+2, cy+2) {
			t.Errorf("alignment ring missing at (%d, %d)", cx, cy)
		}
		if m.Dark(cx-1, cy) || m.Dark(cx, cy+1) {
			t.Errorf("alignment interior dark at (%d, %d)", cx, cy)
		}
		if !reserved[cy*size+cx] {
			t.Errorf("alignment center (%d, %d) not reserved", cx, cy)
		}
	}
	// Finder-corner centers hold finder modules, not alignment rings:
	// a ring at (6, 6) would darken the light finder interior (4, 5).
	if m.Dark(4, 5) {
		t.Error("finder interior overwritten near (6, 6)")
	}
}

// The reserved bitmap must not depend on the codewords, only on the
// version.
func TestReservedStable(t *testing.T) {
	a := make([]byte, vtab[2].words)
	b := make([]byte, vtab[2].words)
	for i := range b {
		b[i] = 0xff
	}
	_, ra, err := Assemble(a, 2)
	if err != nil {
		t.Fatal(err)
	}
	mb, rb, err := Assemble(b, 2)
	if err != nil {
		t.Fatal(err)
	}
	for i := range ra {
		if ra[i] != rb[i] {
			t.Fatalf("reserved bitmap differs at %d", i)
		}
	}
	// Reserved cells hold the same modules regardless of payload.
	ma, _, _ := Assemble(a, 2)
	size := ma.Size
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if ra[y*size+x] && ma.At(x, y) != mb.At(x, y) {
				t.Fatalf("function module (%d, %d) depends on payload",
					x, y)
			}
		}
	}
}

// Version information appears only from version 7 and its bottom-left
// block sits above the lower finder.
func TestVersionInfoPlacement(t *testing.T) {
	m, reserved, err := Assemble(make([]byte, vtab[7].words), 7)
	if err != nil {
		t.Fatal(err)
	}
	size := m.Size
	bits := versionBits(7)
	for k := 0; k < 18; k++ {
		want := bits>>k&1 != 0
		if m.Dark(k/3, size-11+k%3) != want {
			t.Errorf("version bit %d wrong in bottom-left block", k)
		}
		if m.Dark(size-11+k%3, k/3) != want {
			t.Errorf("version bit %d wrong in top-right block", k)
		}
		if !reserved[(size-11+k%3)*size+k/3] {
			t.Errorf("version bit %d not reserved", k)
		}
	}
}
