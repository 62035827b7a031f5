package coding

// Per-version symbol geometry and codeword structure, per the QR
// standard.  words is the total codeword capacity, rem the number of
// leftover data modules that carry no codeword bits, apos/anext the
// first two alignment centers after 6 (0 when absent).
type versionInfo struct {
	words int
	rem   int
	apos  int
	anext int
	level [4]blockInfo
}

// blockInfo gives the error-correction block structure for one
// version/level combination: the number of blocks and the check
// codewords per block.
type blockInfo struct {
	nblock int
	check  int
}

var vtab = [MaxVersion + 1]versionInfo{
	1: {26, 0, 0, 0, [4]blockInfo{{1, 7}, {1, 10}, {1, 13}, {1, 17}}},
	2: {44, 7, 18, 0, [4]blockInfo{{1, 10}, {1, 16}, {1, 22}, {1, 28}}},
	3: {70, 7, 22, 0, [4]blockInfo{{1, 15}, {1, 26}, {2, 18}, {2, 22}}},
	4: {100, 7, 26, 0, [4]blockInfo{{1, 20}, {2, 18}, {2, 26}, {4, 16}}},
	5: {134, 7, 30, 0, [4]blockInfo{{1, 26}, {2, 24}, {4, 18}, {4, 22}}}, // 5
	6: {172, 7, 34, 0, [4]blockInfo{{2, 18}, {4, 16}, {4, 24}, {4, 28}}},
	7: {196, 0, 22, 38, [4]blockInfo{{2, 20}, {4, 18}, {6, 18}, {5, 26}}},
	8: {242, 0, 24, 42, [4]blockInfo{{2, 24}, {4, 22}, {6, 22}, {6, 26}}},
	9: {292, 0, 26, 46, [4]blockInfo{{2, 30}, {5, 22}, {8, 20}, {8, 24}}},
	10: {346, 0, 28, 50, [4]blockInfo{{4, 18}, {5, 26}, {8, 24}, {8, 28}}}, // 10
	11: {404, 0, 30, 54, [4]blockInfo{{4, 20}, {5, 30}, {8, 28}, {11, 24}}},
	12: {466, 0, 32, 58, [4]blockInfo{{4, 24}, {8, 22}, {10, 26}, {11, 28}}},
	13: {532, 0, 34, 62, [4]blockInfo{{4, 26}, {9, 22}, {12, 24}, {16, 22}}},
	14: {581, 3, 26, 46, [4]blockInfo{{4, 30}, {9, 24}, {16, 20}, {16, 24}}},
	15: {655, 3, 26, 48, [4]blockInfo{{6, 22}, {10, 24}, {12, 30}, {18, 24}}}, // 15
	16: {733, 3, 26, 50, [4]blockInfo{{6, 24}, {10, 28}, {17, 24}, {16, 30}}},
	17: {815, 3, 30, 54, [4]blockInfo{{6, 28}, {11, 28}, {16, 28}, {19, 28}}},
	18: {901, 3, 30, 56, [4]blockInfo{{6, 30}, {13, 26}, {18, 28}, {21, 28}}},
	19: {991, 3, 30, 58, [4]blockInfo{{7, 28}, {14, 26}, {21, 26}, {25, 26}}},
	20: {1085, 3, 34, 62, [4]blockInfo{{8, 28}, {16, 26}, {20, 30}, {25, 28}}}, // 20
	21: {1156, 4, 28, 50, [4]blockInfo{{8, 28}, {17, 26}, {23, 28}, {25, 30}}},
	22: {1258, 4, 26, 50, [4]blockInfo{{9, 28}, {17, 28}, {23, 30}, {34, 24}}},
	23: {1364, 4, 30, 54, [4]blockInfo{{9, 30}, {18, 28}, {25, 30}, {30, 30}}},
	24: {1474, 4, 28, 54, [4]blockInfo{{10, 30}, {20, 28}, {27, 30}, {32, 30}}},
	25: {1588, 4, 32, 58, [4]blockInfo{{12, 26}, {21, 28}, {29, 30}, {35, 30}}}, // 25
	26: {1706, 4, 30, 58, [4]blockInfo{{12, 28}, {23, 28}, {34, 28}, {37, 30}}},
	27: {1828, 4, 34, 62, [4]blockInfo{{12, 30}, {25, 28}, {34, 30}, {40, 30}}},
	28: {1921, 3, 26, 50, [4]blockInfo{{13, 30}, {26, 28}, {35, 30}, {42, 30}}},
	29: {2051, 3, 30, 54, [4]blockInfo{{14, 30}, {28, 28}, {38, 30}, {45, 30}}},
	30: {2185, 3, 26, 52, [4]blockInfo{{15, 30}, {29, 28}, {40, 30}, {48, 30}}}, // 30
	31: {2323, 3, 30, 56, [4]blockInfo{{16, 30}, {31, 28}, {43, 30}, {51, 30}}},
	32: {2465, 3, 34, 60, [4]blockInfo{{17, 30}, {33, 28}, {45, 30}, {54, 30}}},
	33: {2611, 3, 30, 58, [4]blockInfo{{18, 30}, {35, 28}, {48, 30}, {57, 30}}},
	34: {2761, 3, 34, 62, [4]blockInfo{{19, 30}, {37, 28}, {51, 30}, {60, 30}}},
	35: {2876, 0, 30, 54, [4]blockInfo{{19, 30}, {38, 28}, {53, 30}, {63, 30}}}, // 35
	36: {3034, 0, 24, 50, [4]blockInfo{{20, 30}, {40, 28}, {56, 30}, {66, 30}}},
	37: {3196, 0, 28, 54, [4]blockInfo{{21, 30}, {43, 28}, {59, 30}, {70, 30}}},
	38: {3362, 0, 32, 58, [4]blockInfo{{22, 30}, {45, 28}, {62, 30}, {74, 30}}},
	39: {3532, 0, 26, 54, [4]blockInfo{{24, 30}, {47, 28}, {65, 30}, {77, 30}}},
	40: {3706, 0, 30, 58, [4]blockInfo{{25, 30}, {49, 28}, {68, 30}, {81, 30}}}, // 40
}

// Format information BCH code, per the standard.
const (
	formatPoly = 0x537  // x¹⁰+x⁸+x⁵+x⁴+x²+x+1
	formatXOR  = 0x5412 // fixed mask applied to the 15 format bits
	// Level bit patterns in format info: L=01 M=00 Q=11 H=10.

	versionPoly = 0x1f25 // x¹²+x¹¹+x¹⁰+x⁹+x⁸+x⁵+x²+1, for version info
)

// bchRemainder returns the remainder of v·x^deg(poly) divided by poly
// over GF(2), where v already occupies the high-order positions.
func bchRemainder(v, poly, deg int) int {
	for i := topBit(v) - deg; i >= 0; i-- {
		if v&(1<<(i+deg)) != 0 {
			v ^= poly << i
		}
	}
	return v
}

func topBit(v int) int {
	n := 0
	for ; v != 0; v >>= 1 {
		n++
	}
	return n
}

// formatBits returns the 15 masked format information bits for a
// level and mask pattern.
func formatBits(l Level, mask int) int {
	// L=01, M=00, Q=11, H=10: the level number with bit 0 flipped.
	fb := (int(l)^1)<<13 | mask<<10
	return (fb | bchRemainder(fb, formatPoly, 10)) ^ formatXOR
}

// versionBits returns the 18 version information bits for versions ≥7.
func versionBits(v Version) int {
	vb := int(v) << 12
	return vb | bchRemainder(vb, versionPoly, 12)
}

// alignCenters returns the alignment pattern center coordinates for a
// version, including the finder-adjacent 6.
func alignCenters(v Version) []int {
	info := &vtab[v]
	if info.apos == 0 {
		return nil
	}
	cs := []int{6}
	if info.anext == 0 {
		return append(cs, info.apos)
	}
	for p := info.apos; p <= v.Size()-7; p += info.anext - info.apos {
		cs = append(cs, p)
	}
	return cs
}
