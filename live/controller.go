// Package live drives the encode pipeline from keystroke-level input:
// it debounces text changes, runs encodes, and guarantees that only
// the most recently started encode may update the published state.
package live

import (
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/qrforge/qrlive"
)

// A State is one phase of the controller's lifecycle.
type State int

const (
	Empty      State = iota // no input
	Pending                 // debounce timer running
	Generating              // encode in flight
	Ready                   // symbol available
	Failed                  // encode error
)

var stateNames = [...]string{"empty", "pending", "generating", "ready", "failed"}

func (s State) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return strconv.Itoa(int(s))
}

// A Snapshot is one published controller state.  Symbol is set only
// in Ready, Err only in Failed.
type Snapshot struct {
	State  State
	Seq    uint64
	Text   string
	Symbol *qrlive.Symbol
	Err    error
}

// DefaultDebounce is the delay between the last keystroke and the
// encode it triggers.
const DefaultDebounce = 300 * time.Millisecond

// Config configures a Controller.
type Config struct {
	Level    qrlive.Level  // error correction level for encodes
	Debounce time.Duration // 0 selects DefaultDebounce
	Logger   zerolog.Logger
}

// A Controller owns one input stream.  Every keystroke cancels the
// running debounce timer and supersedes any in-flight encode; each
// encode attempt carries a monotonically increasing sequence number
// and completions that are no longer the newest are discarded, which
// gives cancellation semantics without preemption.
type Controller struct {
	mu      sync.Mutex
	cfg     Config
	seq     uint64
	state   State
	text    string
	symbol  *qrlive.Symbol
	err     error
	timer   *time.Timer
	updates chan Snapshot
	closed  bool

	// encode is swappable in tests.
	encode func(string, qrlive.Level) (*qrlive.Symbol, error)
}

// New returns a Controller in the Empty state.
func New(cfg Config) *Controller {
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	return &Controller{
		cfg:     cfg,
		updates: make(chan Snapshot, 16),
		encode: func(text string, l qrlive.Level) (*qrlive.Symbol, error) {
			return qrlive.Encode(text, l)
		},
	}
}

// Updates returns the snapshot stream.  When a consumer lags, the
// oldest pending snapshot is dropped; the latest state always gets
// through.
func (c *Controller) Updates() <-chan Snapshot { return c.updates }

// Snapshot returns the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) snapshotLocked() Snapshot {
	return Snapshot{
		State:  c.state,
		Seq:    c.seq,
		Text:   c.text,
		Symbol: c.symbol,
		Err:    c.err,
	}
}

// publishLocked sends the current state without blocking, dropping
// the oldest queued snapshot if the consumer lags.
func (c *Controller) publishLocked() {
	if c.closed {
		return
	}
	snap := c.snapshotLocked()
	select {
	case c.updates <- snap:
		return
	default:
	}
	select {
	case <-c.updates:
	default:
	}
	select {
	case c.updates <- snap:
	default:
	}
}

// Input feeds the current text after a change.  Empty text clears the
// controller to Empty immediately; anything else restarts the
// debounce timer.  Any in-flight encode is superseded either way.
func (c *Controller) Input(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.seq++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.text = text
	c.symbol = nil
	c.err = nil
	if text == "" {
		c.state = Empty
		c.publishLocked()
		return
	}
	c.state = Pending
	c.publishLocked()
	seq := c.seq
	c.timer = time.AfterFunc(c.cfg.Debounce, func() { c.fire(seq) })
}

// fire runs when the debounce timer for the given sequence expires.
func (c *Controller) fire(seq uint64) {
	c.mu.Lock()
	if c.closed || seq != c.seq || c.state != Pending {
		c.mu.Unlock()
		return
	}
	c.state = Generating
	c.publishLocked()
	text := c.text
	level := c.cfg.Level
	c.mu.Unlock()

	sym, err := c.encode(text, level)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || seq != c.seq {
		c.cfg.Logger.Debug().
			Uint64("seq", seq).
			Uint64("latest", c.seq).
			Msg("discarding stale encode result")
		return
	}
	if err != nil {
		c.state = Failed
		c.err = err
		c.cfg.Logger.Warn().Err(err).Uint64("seq", seq).Msg("encode failed")
	} else {
		c.state = Ready
		c.symbol = sym
		c.cfg.Logger.Debug().
			Uint64("seq", seq).
			Int("version", sym.Version).
			Int("mask", sym.Mask).
			Msg("encode ready")
	}
	c.publishLocked()
}

// Close stops the controller.  Pending and in-flight work is
// discarded and the update stream is closed.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.seq++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	close(c.updates)
}
