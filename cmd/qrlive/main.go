// Command qrlive encodes text as a QR symbol and writes it in one of
// the supported export formats, or as a terminal preview when standard
// output is a TTY.
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/pborman/getopt/v2"

	"github.com/qrforge/qrlive"
)

var g = struct {
	px     int          // raster pixels per side
	border int          // quiet zone modules
	fn     string       // output filename
	lev    qrlive.Level // error correction level
	format string       // export format token
	latin1 bool         // Latin-1 byte payload
	term   bool         // terminal preview
}{}

func printUsage(w io.Writer) {
	cl := getopt.CommandLine
	fmt.Fprint(w, "QR code generator\nUsage: ", cl.Program(), " ",
		cl.UsageLine(), ` [string ...]
If no string is given, data is read from standard input and the final
newline is stripped.

`)
	cl.PrintOptions(w)
}

type opt func()

func (opt) String() string                    { return "" }
func (o opt) Set(string, getopt.Option) error { o(); return nil }

func usage() {
	printUsage(os.Stderr)
	os.Exit(2)
}

func help() {
	printUsage(os.Stdout)
	os.Exit(0)
}

func version() {
	fmt.Println("qrlive version 1.0.0")
	os.Exit(0)
}

func parseFlags() {
	getopt.SetUsage(usage)
	getopt.Flag(opt(help), 'h', "show this help").SetFlag()
	getopt.Flag(opt(version), 'V', "print version").SetFlag()
	getopt.Flag(&g.latin1, '1', "encode the payload as Latin-1 "+
		"when it fits, shrinking non-ASCII text")
	getopt.Flag(&g.fn, 'o', `output file, or "-" for standard output`,
		"file")
	lev := getopt.Enum('l',
		[]string{"l", "m", "q", "h", "L", "M", "Q", "H"}, "m",
		"error correction level, lowest to highest", "l|m|q|h")
	px := getopt.Unsigned('s', 1024, &getopt.UnsignedLimit{Base: 0, Bits: 28, Min: 21, Max: 1 << 16},
		"raster image pixels per side; ignored for other formats",
		"pixels")
	border := getopt.Unsigned('m', 4, &getopt.UnsignedLimit{Base: 0, Bits: 16, Min: 4, Max: 256},
		"quiet zone modules", "margin")
	ff := getopt.Enum('t', []string{
		"vector", "raster-lossless", "raster-lossy", "document",
	}, "", "export format; if no -o is given and standard output "+
		"is a TTY, default is a terminal preview, otherwise vector",
		"format")

	getopt.Parse()
	g.lev, _ = qrlive.ParseLevel(*lev)
	g.px = int(*px)
	g.border = int(*border)
	g.format = *ff
	if g.fn == "-" {
		g.fn = ""
	}
	if g.format == "" {
		if g.fn == "" && isatty.IsTerminal(uintptr(syscall.Stdout)) {
			g.term = true
		} else {
			g.format = "vector"
		}
	}
}

func main() {
	log.SetFlags(0)
	parseFlags()

	var s string
	if args := getopt.Args(); len(args) != 0 {
		s = strings.Join(args, " ")
	} else {
		var b strings.Builder
		if _, err := io.Copy(&b, os.Stdin); err != nil {
			log.Fatalln(err)
		}
		s, _ = strings.CutSuffix(
			strings.ReplaceAll(b.String(), "\r\n", "\n"), "\n")
	}

	var opts []qrlive.Option
	if g.latin1 {
		opts = append(opts, qrlive.WithLatin1())
	}
	sym, err := qrlive.Encode(s, g.lev, opts...)
	if err != nil {
		log.Fatalln(err)
	}

	if g.term {
		os.Stdout.WriteString(terminal(sym, g.border))
		return
	}
	write(sym)
}

func write(sym *qrlive.Symbol) {
	format, err := qrlive.ParseFormat(g.format)
	if err != nil {
		log.Fatalln(err)
	}
	w := os.Stdout
	if g.fn != "" {
		if w, err = os.OpenFile(g.fn,
			os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0666); err != nil {
			log.Fatalln(err)
		}
	}
	switch format {
	case qrlive.Vector:
		err = sym.EncodeSVG(w, g.border)
	default:
		var art *qrlive.Artifact
		if art, err = qrlive.ExportSized(sym, format, "qr",
			g.px, g.border); err == nil {
			_, err = w.Write(art.Data)
		}
	}
	if g.fn != "" && err == nil {
		err = w.Close()
	}
	if err != nil {
		log.Fatalln(err)
	}
}

// terminal renders two module rows per text line using half blocks,
// which keeps the symbol roughly square in a character cell.
func terminal(sym *qrlive.Symbol, border int) string {
	blocks := [4]rune{'█', '▀', '▄', ' '}
	siz := sym.Size()
	var b strings.Builder
	for y := -border; y < siz+border; y += 2 {
		for x := -border; x < siz+border; x++ {
			var i int
			if sym.Dark(x, y) {
				i |= 2
			}
			if sym.Dark(x, y+1) {
				i |= 1
			}
			b.WriteRune(blocks[i])
		}
		b.WriteByte('\n')
	}
	return b.String()
}
