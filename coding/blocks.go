package coding

import (
	"sync"

	"github.com/qrforge/qrlive/gf256"
)

// A Block is one error-correction block: its data codewords and the
// Reed-Solomon parity computed over them.
type Block struct {
	Data []byte
	ECC  []byte
}

// rsCache holds one RSEncoder per check codeword count (at most 30
// for QR blocks).  Encoders are stateless after construction, so
// sharing them is safe.
var (
	rsCache [31]*gf256.RSEncoder
	rsOnce  [31]sync.Once
)

func rsEncoder(c int) *gf256.RSEncoder {
	if c >= len(rsCache) {
		return gf256.NewRSEncoder(Field, c)
	}
	rsOnce[c].Do(func() {
		rsCache[c] = gf256.NewRSEncoder(Field, c)
	})
	return rsCache[c]
}

// SplitBlocks partitions the packed data codewords for the given
// version and level into the fixed block structure and computes the
// parity codewords for each block.  Shorter blocks come first, per the
// standard rule for mixed-length block groups.
func SplitBlocks(data []byte, v Version, l Level) []Block {
	lev := &vtab[v].level[l]
	nd := v.DataBytes(l)
	if len(data) != nd {
		panic("qr: wrong data codeword count")
	}
	rs := rsEncoder(lev.check)
	blocks := make([]Block, lev.nblock)
	short := nd / lev.nblock
	nshort := (short+1)*lev.nblock - nd
	for i := range blocks {
		n := short
		if i >= nshort {
			n++
		}
		blocks[i].Data, data = data[:n], data[n:]
		blocks[i].ECC = make([]byte, lev.check)
		rs.ECC(blocks[i].Data, blocks[i].ECC)
	}
	return blocks
}

// Interleave serialises blocks into the final codeword sequence: data
// codewords round-robin across blocks, then parity codewords
// round-robin across blocks.
func Interleave(blocks []Block) []byte {
	total := 0
	for i := range blocks {
		total += len(blocks[i].Data) + len(blocks[i].ECC)
	}
	out := make([]byte, 0, total)
	for i := 0; ; i++ {
		more := false
		for j := range blocks {
			if i < len(blocks[j].Data) {
				out = append(out, blocks[j].Data[i])
				more = true
			}
		}
		if !more {
			break
		}
	}
	for i := 0; ; i++ {
		more := false
		for j := range blocks {
			if i < len(blocks[j].ECC) {
				out = append(out, blocks[j].ECC[i])
				more = true
			}
		}
		if !more {
			break
		}
	}
	return out
}
