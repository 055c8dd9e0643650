// Package pinstest provides a recording pins.Controller for host-side tests.
package pinstest

import (
	"fmt"
	"time"

	"github.com/callebjorkell/lcd1602/internal/pins"
)

type OpKind byte

const (
	OpOutput OpKind = iota
	OpAnalog
	OpSet
	OpClear
	OpDelay
)

func (k OpKind) String() string {
	switch k {
	case OpOutput:
		return "output"
	case OpAnalog:
		return "analog"
	case OpSet:
		return "set"
	case OpClear:
		return "clear"
	case OpDelay:
		return "delay"
	}
	return "N/A"
}

// Op is one recorded call. Pin is unused for delays.
type Op struct {
	Kind  OpKind
	Pin   pins.Pin
	Delay time.Duration
}

func (o Op) String() string {
	if o.Kind == OpDelay {
		return fmt.Sprintf("delay %v", o.Delay)
	}
	return fmt.Sprintf("%v %v", o.Pin, o.Kind)
}

// Transfer is one nibble latched by the controller on a falling edge of the
// enable line.
type Transfer struct {
	Data   bool
	Nibble byte
}

// Write is a full byte folded from two consecutive transfers.
type Write struct {
	Data  bool
	Value byte
}

func (w Write) String() string {
	if w.Data {
		return fmt.Sprintf("data 0x%02x", w.Value)
	}
	return fmt.Sprintf("instruction 0x%02x", w.Value)
}

// Recorder keeps the level of every line and a log of all calls.
//
// Setting FailPin and Err makes Set and Clear on that pin return Err without
// recording anything.
type Recorder struct {
	Ops     []Op
	FailPin pins.Pin
	Err     error

	levels    map[pins.Pin]bool
	transfers []Transfer
	// starts maps each transfer to the index of the op that latched it.
	starts []int
}

func NewRecorder() *Recorder {
	return &Recorder{levels: make(map[pins.Pin]bool)}
}

// Reset forgets the op log and latched transfers but keeps the line levels.
func (r *Recorder) Reset() {
	r.Ops = nil
	r.transfers = nil
	r.starts = nil
}

func (r *Recorder) ConfigureOutput(p pins.Pin) error {
	r.record(Op{Kind: OpOutput, Pin: p})
	return nil
}

func (r *Recorder) ConfigureAnalog(p pins.Pin) error {
	r.record(Op{Kind: OpAnalog, Pin: p})
	return nil
}

func (r *Recorder) Set(p pins.Pin) error {
	if r.Err != nil && p == r.FailPin {
		return r.Err
	}
	r.record(Op{Kind: OpSet, Pin: p})
	r.levels[p] = true
	return nil
}

func (r *Recorder) Clear(p pins.Pin) error {
	if r.Err != nil && p == r.FailPin {
		return r.Err
	}
	if p == pins.Enable && r.levels[pins.Enable] {
		r.latch()
	}
	r.record(Op{Kind: OpClear, Pin: p})
	r.levels[p] = false
	return nil
}

func (r *Recorder) Delay(d time.Duration) {
	r.record(Op{Kind: OpDelay, Delay: d})
}

// Level reports whether the pin is currently driven high.
func (r *Recorder) Level(p pins.Pin) bool {
	return r.levels[p]
}

// Transfers lists every latched nibble in order.
func (r *Recorder) Transfers() []Transfer {
	return append([]Transfer(nil), r.transfers...)
}

// Writes pairs up latched nibbles, high nibble first. A trailing unpaired
// nibble is dropped.
func (r *Recorder) Writes() []Write {
	var w []Write
	for i := 0; i+1 < len(r.transfers); i += 2 {
		hi, lo := r.transfers[i], r.transfers[i+1]
		w = append(w, Write{Data: hi.Data, Value: hi.Nibble<<4 | lo.Nibble})
	}
	return w
}

// Delays lists every delay in order.
func (r *Recorder) Delays() []time.Duration {
	var d []time.Duration
	for _, op := range r.Ops {
		if op.Kind == OpDelay {
			d = append(d, op.Delay)
		}
	}
	return d
}

// DelaysAfter lists the run of delays that directly follows the n-th latched
// nibble, i.e. the settle time the controller was given before the next pin
// changed.
func (r *Recorder) DelaysAfter(n int) []time.Duration {
	if n < 0 || n >= len(r.starts) {
		return nil
	}
	var d []time.Duration
	for _, op := range r.Ops[r.starts[n]+1:] {
		if op.Kind != OpDelay {
			break
		}
		d = append(d, op.Delay)
	}
	return d
}

func (r *Recorder) record(op Op) {
	r.Ops = append(r.Ops, op)
}

func (r *Recorder) latch() {
	var n byte
	for i, p := range pins.Data {
		if r.levels[p] {
			n |= 1 << i
		}
	}
	r.transfers = append(r.transfers, Transfer{Data: r.levels[pins.RegisterSelect], Nibble: n})
	r.starts = append(r.starts, len(r.Ops))
}

var _ pins.Controller = &Recorder{}
