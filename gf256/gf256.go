// Package gf256 implements arithmetic over GF(2⁸) and the
// Reed-Solomon parity computation used by QR error correction.
package gf256

// A Field represents GF(2⁸) defined by a given irreducible polynomial
// and generator element.
type Field struct {
	log [256]byte // log[0] is unused
	exp [510]byte
}

// NewField returns the field defined by the polynomial poly and the
// generator α.  For QR codes, poly is x⁸+x⁴+x³+x²+1 (0x11d) and α is 2.
// NewField panics if poly is not a suitable degree-8 polynomial or α
// does not generate the multiplicative group.
func NewField(poly, α int) *Field {
	if poly < 0x100 || poly >= 0x200 || reducible(poly) {
		panic("gf256: invalid polynomial")
	}
	var f Field
	x := 1
	for i := 0; i < 255; i++ {
		if x == 1 && i != 0 {
			panic("gf256: generator does not generate the field")
		}
		f.exp[i] = byte(x)
		f.exp[i+255] = byte(x)
		f.log[x] = byte(i)
		x = mul(x, α, poly)
	}
	f.log[0] = 255
	return &f
}

// reducible reports whether p has a nontrivial factor.
func reducible(p int) bool {
	for q := 2; q*q <= p; q++ {
		if polyDiv(p, q) == 0 {
			return true
		}
	}
	return false
}

// polyDiv returns the remainder of p divided by q, both treated as
// polynomials over GF(2).
func polyDiv(p, q int) int {
	for shift := nbits(p) - nbits(q); shift >= 0; shift-- {
		if p&(1<<(shift+nbits(q)-1)) != 0 {
			p ^= q << shift
		}
	}
	return p
}

func nbits(p int) int {
	n := 0
	for ; p != 0; p >>= 1 {
		n++
	}
	return n
}

// mul returns the product x*y mod poly, slowly.
func mul(x, y, poly int) int {
	z := 0
	for x > 0 {
		if x&1 != 0 {
			z ^= y
		}
		x >>= 1
		y <<= 1
		if y&0x100 != 0 {
			y ^= poly
		}
	}
	return z
}

// Exp returns αⁿ.
func (f *Field) Exp(n int) byte { return f.exp[n%255] }

// Log returns log base α of x.  Log(0) panics.
func (f *Field) Log(x byte) int {
	if x == 0 {
		panic("gf256: log(0)")
	}
	return int(f.log[x])
}

// Mul returns the product x*y.
func (f *Field) Mul(x, y byte) byte {
	if x == 0 || y == 0 {
		return 0
	}
	return f.exp[int(f.log[x])+int(f.log[y])]
}

// An RSEncoder computes Reed-Solomon parity over a Field for a fixed
// number of check bytes.
type RSEncoder struct {
	f    *Field
	c    int
	lgen []int // log of generator polynomial coefficients, -1 for zero
}

// NewRSEncoder returns an RSEncoder producing c check bytes.
// The generator polynomial is ∏ᵢ(x-αⁱ) for i in [0,c).
func NewRSEncoder(f *Field, c int) *RSEncoder {
	if c <= 0 || c > 254 {
		panic("gf256: invalid check byte count")
	}
	// gen starts as 1 and is multiplied by (x - αⁱ) per round.
	gen := make([]byte, c+1)
	gen[0] = 1
	for i := 0; i < c; i++ {
		ai := f.Exp(i)
		for j := i + 1; j > 0; j-- {
			gen[j] = f.Mul(gen[j], ai) ^ gen[j-1]
		}
		gen[0] = f.Mul(gen[0], ai)
	}
	// Highest coefficient is 1; store logs of the rest, highest first.
	lgen := make([]int, c)
	for i := 0; i < c; i++ {
		if v := gen[c-1-i]; v != 0 {
			lgen[i] = int(f.log[v])
		} else {
			lgen[i] = -1
		}
	}
	return &RSEncoder{f: f, c: c, lgen: lgen}
}

// Gen returns the coefficients of the generator polynomial as α
// exponents, from the x^(c-1) coefficient down to the constant term.
// A zero coefficient is reported as -1.
func (rs *RSEncoder) Gen() []int {
	g := make([]int, len(rs.lgen))
	copy(g, rs.lgen)
	return g
}

// ECC writes the c parity bytes for data into check,
// which must have length exactly c.
func (rs *RSEncoder) ECC(data, check []byte) {
	if len(check) != rs.c {
		panic("gf256: invalid check byte length")
	}
	f := rs.f
	// Polynomial long division of data·x^c by the generator;
	// the remainder is the parity.
	rem := make([]byte, rs.c)
	for _, b := range data {
		k := b ^ rem[0]
		copy(rem, rem[1:])
		rem[rs.c-1] = 0
		if k == 0 {
			continue
		}
		lk := int(f.log[k])
		for i, lg := range rs.lgen {
			if lg >= 0 {
				rem[i] ^= f.exp[lk+lg]
			}
		}
	}
	copy(check, rem)
}
