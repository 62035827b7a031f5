package gf256

import "testing"

var f = NewField(0x11d, 2)

func TestFieldTables(t *testing.T) {
	if f.Exp(0) != 1 {
		t.Errorf("Exp(0) = %d, want 1", f.Exp(0))
	}
	if f.Exp(255) != 1 {
		t.Errorf("Exp(255) = %d, want 1", f.Exp(255))
	}
	for i := 1; i < 256; i++ {
		x := byte(i)
		if got := f.Exp(f.Log(x)); got != x {
			t.Errorf("Exp(Log(%d)) = %d", x, got)
		}
	}
}

func TestMul(t *testing.T) {
	for i := 0; i < 256; i++ {
		for j := 0; j < 256; j++ {
			x, y := byte(i), byte(j)
			want := byte(mul(i, j, 0x11d))
			if got := f.Mul(x, y); got != want {
				t.Fatalf("Mul(%d, %d) = %d, want %d",
					x, y, got, want)
			}
		}
	}
}

// Generator polynomial for 7 check bytes, from ISO/IEC 18004 annex A:
// x^7 + α^87·x^6 + α^229·x^5 + α^146·x^4 + α^149·x^3 + α^238·x^2 +
// α^102·x + α^21.
func TestGenPoly(t *testing.T) {
	want := []int{87, 229, 146, 149, 238, 102, 21}
	got := NewRSEncoder(f, 7).Gen()
	if len(got) != len(want) {
		t.Fatalf("Gen() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Gen() = %v, want %v", got, want)
		}
	}
}

// A codeword with valid check bytes evaluates to zero at every root
// of the generator polynomial.
func TestECCSyndromes(t *testing.T) {
	data := []byte{0x10, 0x20, 0x0c, 0x56, 0x61, 0x80, 0xec, 0x11,
		0xec, 0x11, 0xec, 0x11, 0xec, 0x11, 0xec, 0x11}
	for _, c := range []int{7, 10, 13, 17, 30} {
		check := make([]byte, c)
		NewRSEncoder(f, c).ECC(data, check)
		word := append(append([]byte{}, data...), check...)
		for j := 0; j < c; j++ {
			var s byte
			x := f.Exp(j)
			for _, b := range word {
				s = f.Mul(s, x) ^ b
			}
			if s != 0 {
				t.Errorf("c=%d: syndrome %d = %d, want 0",
					c, j, s)
			}
		}
	}
}
