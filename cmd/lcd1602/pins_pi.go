//go:build pi

package main

import (
	"github.com/callebjorkell/lcd1602/internal/pins"
)

func newPins(c *Config) (pins.Controller, error) {
	g, err := pins.NewGPIO(c.PinNames())
	if err != nil {
		return nil, err
	}
	return g, nil
}
