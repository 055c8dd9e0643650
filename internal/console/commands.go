package console

import (
	"fmt"
)

func commandTable() map[string]command {
	return map[string]command{
		"lcd-init": {
			usage: "lcd-init",
			help:  "Initialize LCD",
			run:   simple((Display).Init, "Initialize LCD"),
		},
		"lcd-enable": {
			usage: "lcd-enable",
			help:  "Enable LCD",
			run:   simple((Display).Enable, "Enable LCD"),
		},
		"lcd-disable": {
			usage: "lcd-disable",
			help:  "Disable LCD",
			run:   simple((Display).Disable, "Disable LCD"),
		},
		"lcd-clear": {
			usage: "lcd-clear",
			help:  "Clear display",
			run:   simple((Display).Clear, "LCD clear display"),
		},
		"lcd-home": {
			usage: "lcd-home",
			help:  "Move cursor to home position",
			run:   simple((Display).Home, "LCD move cursor home"),
		},
		"lcd-ltr": {
			usage: "lcd-ltr <0|1>",
			help:  "Cursor moves left to right after each write",
			nargs: 1,
			run:   toggle((Display).LeftToRight, "Left to right mode"),
		},
		"lcd-autoscroll": {
			usage: "lcd-autoscroll <0|1>",
			help:  "Shift the display on each write",
			nargs: 1,
			run:   toggle((Display).AutoScroll, "Auto scroll"),
		},
		"lcd-display": {
			usage: "lcd-display <0|1>",
			help:  "Turn the display on or off",
			nargs: 1,
			run:   toggle((Display).Display, "Display"),
		},
		"lcd-cursor": {
			usage: "lcd-cursor <0|1>",
			help:  "Show or hide the cursor",
			nargs: 1,
			run:   toggle((Display).Cursor, "Cursor"),
		},
		"lcd-blink": {
			usage: "lcd-blink <0|1>",
			help:  "Blink the cursor",
			nargs: 1,
			run:   toggle((Display).Blink, "Blink"),
		},
		"lcd-cur": {
			usage: "lcd-cur <mode>",
			help:  "Cursor mode 0~3, bit 0 shows the cursor and bit 1 blinks it",
			nargs: 1,
			run:   cursorMode,
		},
		"lcd-mv": {
			usage: "lcd-mv <mode>",
			help:  "Move 0~3: cursor left, cursor right, scroll left, scroll right",
			nargs: 1,
			run:   move,
		},
		"lcd-loc": {
			usage: "lcd-loc <x> <y>",
			help:  "Move cursor to column x (0~63) of row y (0~1)",
			nargs: 2,
			run:   location,
		},
		"lcd-put": {
			usage: "lcd-put <num>",
			help:  "Put char of ascii <num>",
			nargs: 1,
			run:   put,
		},
		"lcd-glyph": {
			usage: "lcd-glyph <slot> <row0> ... <row7>",
			help:  "Load a 5x8 custom character into CGRAM slot 0~7",
			nargs: 9,
			run:   glyph,
		},
		"lcd-print": {
			usage: "lcd-print <message>",
			help:  "Print message",
			nargs: 1,
			run:   printMessage,
		},
	}
}

func simple(op func(Display) error, done string) handler {
	return func(d Display, _ []string, _ string) (string, error) {
		if err := op(d); err != nil {
			return "", err
		}
		return done, nil
	}
}

func toggle(op func(Display, bool) error, name string) handler {
	return func(d Display, args []string, _ string) (string, error) {
		on, err := parseSwitch(args[0])
		if err != nil {
			return "", err
		}
		if err := op(d, on); err != nil {
			return "", err
		}
		return fmt.Sprintf("%s: %s", name, onOff(on)), nil
	}
}

func cursorMode(d Display, args []string, _ string) (string, error) {
	mode, err := parseRange(args[0], 3)
	if err != nil {
		return "", err
	}
	if err := d.Cursor(mode&0x01 != 0); err != nil {
		return "", err
	}
	if err := d.Blink(mode&0x02 != 0); err != nil {
		return "", err
	}
	return fmt.Sprintf("Cursor set to mode: %d", mode), nil
}

func move(d Display, args []string, _ string) (string, error) {
	mode, err := parseRange(args[0], 3)
	if err != nil {
		return "", err
	}
	moves := []struct {
		name string
		op   func(Display) error
	}{
		{"cursor left", (Display).CursorLeft},
		{"cursor right", (Display).CursorRight},
		{"scroll left", (Display).ScrollLeft},
		{"scroll right", (Display).ScrollRight},
	}
	m := moves[mode]
	if err := m.op(d); err != nil {
		return "", err
	}
	return "Move: " + m.name, nil
}

func location(d Display, args []string, _ string) (string, error) {
	x, err := parseRange(args[0], 63)
	if err != nil {
		return "", err
	}
	y, err := parseRange(args[1], 1)
	if err != nil {
		return "", err
	}
	if err := d.SetLocation(uint8(x), uint8(y)); err != nil {
		return "", err
	}
	return fmt.Sprintf("Location set to %d,%d", x, y), nil
}

func put(d Display, args []string, _ string) (string, error) {
	b, err := parseByte(args[0])
	if err != nil {
		return "", err
	}
	if err := d.Put(b); err != nil {
		return "", err
	}
	return fmt.Sprintf("Put 0x%02x", b), nil
}

func glyph(d Display, args []string, _ string) (string, error) {
	slot, err := parseByte(args[0])
	if err != nil {
		return "", err
	}
	var pattern [8]byte
	for i := range pattern {
		pattern[i], err = parseByte(args[i+1])
		if err != nil {
			return "", err
		}
	}
	if err := d.CreateGlyph(slot, pattern); err != nil {
		return "", err
	}
	return fmt.Sprintf("Glyph %d loaded", slot), nil
}

// printMessage sends the rest of the line as-is, so inner spaces survive.
func printMessage(d Display, _ []string, rest string) (string, error) {
	if err := d.Print(rest); err != nil {
		return "", err
	}
	return fmt.Sprintf("Printed %d chars", len(rest)), nil
}
