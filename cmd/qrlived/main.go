// Command qrlived serves the encoder over HTTP: one-shot encode and
// export endpoints and a websocket live-preview endpoint.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/pborman/getopt/v2"
	"github.com/rs/zerolog"

	"github.com/qrforge/qrlive"
	"github.com/qrforge/qrlive/internal/httpapi"
	"github.com/qrforge/qrlive/live"
)

type opt func()

func (opt) String() string                    { return "" }
func (o opt) Set(string, getopt.Option) error { o(); return nil }

func usage() {
	getopt.CommandLine.PrintUsage(os.Stderr)
	os.Exit(2)
}

func help() {
	fmt.Println("QR code encoding server")
	getopt.PrintUsage(os.Stdout)
	os.Exit(0)
}

func version() {
	fmt.Println("qrlived version 1.0.0")
	os.Exit(0)
}

func main() {
	getopt.SetUsage(usage)
	getopt.Flag(opt(help), 'h', "show this help").SetFlag()
	getopt.Flag(opt(version), 'V', "print version").SetFlag()
	addr := getopt.String('a', ":8080", "listen address", "addr")
	debounce := getopt.Duration('d', live.DefaultDebounce,
		"live preview debounce interval", "dur")
	lev := getopt.Enum('l',
		[]string{"l", "m", "q", "h", "L", "M", "Q", "H"}, "m",
		"default error correction level", "l|m|q|h")
	quiet := getopt.Enum('q',
		[]string{"debug", "info", "warn", "error"}, "info",
		"log level", "level")
	getopt.Parse()

	log := newLogger(*quiet)
	level, _ := qrlive.ParseLevel(*lev)

	srv := &http.Server{
		Addr:         *addr,
		Handler:      httpapi.New(log, level, *debounce).Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 0, // websocket connections stay open
		IdleTimeout:  120 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.Info().Str("addr", *addr).Msg("listening")
		errc <- srv.ListenAndServe()
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errc:
		log.Fatal().Err(err).Msg("server failed")
	case s := <-sig:
		log.Info().Str("signal", s.String()).Msg("shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("shutdown incomplete")
	}
}

// newLogger writes console output on a TTY and JSON otherwise.
func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	var w = zerolog.New(os.Stderr)
	if isatty.IsTerminal(uintptr(syscall.Stderr)) {
		w = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr,
			TimeFormat: time.Kitchen})
	}
	return w.Level(lvl).With().Timestamp().Logger()
}
