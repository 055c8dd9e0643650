package pins

import (
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

// spinLimit is the longest delay that is busy-waited. The scheduler cannot be
// trusted with microsecond sleeps, but anything longer can yield.
const spinLimit = time.Millisecond

// GPIO drives the display through periph.io GPIO lines.
type GPIO struct {
	lines map[Pin]gpio.PinIO
}

// NewGPIO initializes the periph host drivers and resolves every line by its
// GPIO name, e.g. "GPIO17".
func NewGPIO(names map[Pin]string) (*GPIO, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("unable to initialize periph: %w", err)
	}

	lines := make(map[Pin]gpio.PinIO, len(All))
	for _, p := range All {
		name, ok := names[p]
		if !ok {
			return nil, fmt.Errorf("no GPIO configured for %v", p)
		}
		l := gpioreg.ByName(name)
		if l == nil {
			return nil, fmt.Errorf("unknown GPIO %q for %v", name, p)
		}
		log.Debugf("Using %v for %v", l, p)
		lines[p] = l
	}
	return FromLines(lines)
}

// FromLines wraps already resolved lines. All pins must be present.
func FromLines(lines map[Pin]gpio.PinIO) (*GPIO, error) {
	for _, p := range All {
		if lines[p] == nil {
			return nil, fmt.Errorf("missing line for %v", p)
		}
	}
	return &GPIO{lines: lines}, nil
}

func (g *GPIO) ConfigureOutput(p Pin) error {
	return g.out(p, gpio.Low)
}

// ConfigureAnalog leaves the line floating, which is as close to an analog
// (high impedance) input as a Linux GPIO gets.
func (g *GPIO) ConfigureAnalog(p Pin) error {
	if err := g.lines[p].In(gpio.Float, gpio.NoEdge); err != nil {
		return fmt.Errorf("%v: %w", p, err)
	}
	return nil
}

func (g *GPIO) Set(p Pin) error {
	return g.out(p, gpio.High)
}

func (g *GPIO) Clear(p Pin) error {
	return g.out(p, gpio.Low)
}

func (g *GPIO) Delay(d time.Duration) {
	if d >= spinLimit {
		time.Sleep(d)
		return
	}
	deadline := time.Now().Add(d)
	for time.Now().Before(deadline) {
	}
}

func (g *GPIO) out(p Pin, l gpio.Level) error {
	if err := g.lines[p].Out(l); err != nil {
		return fmt.Errorf("%v: %w", p, err)
	}
	return nil
}
