package pins

import (
	"time"
)

// Pin names one of the lines wired between the host and the display module.
type Pin byte

const (
	Power Pin = iota
	RegisterSelect
	Enable
	DB4
	DB5
	DB6
	DB7
)

// All lists every line in the order they are brought up.
var All = []Pin{Power, RegisterSelect, Enable, DB4, DB5, DB6, DB7}

// Data holds the 4 bus lines, lowest bit first.
var Data = [4]Pin{DB4, DB5, DB6, DB7}

func (p Pin) String() string {
	switch p {
	case Power:
		return "PW"
	case RegisterSelect:
		return "RS"
	case Enable:
		return "EN"
	case DB4:
		return "DB4"
	case DB5:
		return "DB5"
	case DB6:
		return "DB6"
	case DB7:
		return "DB7"
	}
	return "N/A"
}

// Controller is everything the display driver needs from the platform: a
// fixed set of digital lines and a blocking delay.
type Controller interface {
	ConfigureOutput(p Pin) error
	ConfigureAnalog(p Pin) error
	Set(p Pin) error
	Clear(p Pin) error
	Delay(d time.Duration)
}
