package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/callebjorkell/lcd1602/internal/pins"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	defaultPowerPin          = "GPIO27"
	defaultRegisterSelectPin = "GPIO4"
	defaultEnablePin         = "GPIO17"
	defaultData4Pin          = "GPIO25"
	defaultData5Pin          = "GPIO22"
	defaultData6Pin          = "GPIO23"
	defaultData7Pin          = "GPIO24"
)

type Glyph struct {
	Slot uint8   `yaml:"slot"`
	Rows []uint8 `yaml:"rows"`
}

func (g Glyph) Pattern() [8]byte {
	var p [8]byte
	copy(p[:], g.Rows)
	return p
}

type Config struct {
	Pins struct {
		Power          string `yaml:"power"`
		RegisterSelect string `yaml:"registerSelect"`
		Enable         string `yaml:"enable"`
		DB4            string `yaml:"db4"`
		DB5            string `yaml:"db5"`
		DB6            string `yaml:"db6"`
		DB7            string `yaml:"db7"`
	} `yaml:"pins"`
	Glyphs []Glyph `yaml:"glyphs"`
}

// PinNames maps every display line to its GPIO name.
func (c Config) PinNames() map[pins.Pin]string {
	return map[pins.Pin]string{
		pins.Power:          c.Pins.Power,
		pins.RegisterSelect: c.Pins.RegisterSelect,
		pins.Enable:         c.Pins.Enable,
		pins.DB4:            c.Pins.DB4,
		pins.DB5:            c.Pins.DB5,
		pins.DB6:            c.Pins.DB6,
		pins.DB7:            c.Pins.DB7,
	}
}

func readConfig(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Debugf("No config at %v, using default pins", path)
		content = nil
	} else if err != nil {
		return nil, err
	}
	return parseConfig(content)
}

func parseConfig(content []byte) (*Config, error) {
	c := &Config{}
	err := yaml.Unmarshal(content, c)
	if err != nil {
		return nil, err
	}

	defaultPin(&c.Pins.Power, defaultPowerPin)
	defaultPin(&c.Pins.RegisterSelect, defaultRegisterSelectPin)
	defaultPin(&c.Pins.Enable, defaultEnablePin)
	defaultPin(&c.Pins.DB4, defaultData4Pin)
	defaultPin(&c.Pins.DB5, defaultData5Pin)
	defaultPin(&c.Pins.DB6, defaultData6Pin)
	defaultPin(&c.Pins.DB7, defaultData7Pin)

	used := make(map[string]pins.Pin)
	for _, p := range pins.All {
		name := c.PinNames()[p]
		if other, ok := used[name]; ok {
			return nil, fmt.Errorf("%v is used for both %v and %v", name, other, p)
		}
		used[name] = p
	}

	for i, g := range c.Glyphs {
		if g.Slot >= 8 {
			return nil, fmt.Errorf("slot of glyph %d must be 0-7, got %d", i, g.Slot)
		}
		if len(g.Rows) != 8 {
			return nil, fmt.Errorf("glyph %d must have 8 rows, got %d", i, len(g.Rows))
		}
	}

	return c, nil
}

func defaultPin(name *string, def string) {
	if *name == "" {
		*name = def
	}
}
