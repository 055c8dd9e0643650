package lcd

import (
	"strings"
	"time"
)

// HD44780 instructions. The low bits of each opcode carry its arguments.
const (
	cmdClear          byte = 0x01
	cmdHome           byte = 0x02
	cmdEntryMode      byte = 0x04
	cmdDisplayControl byte = 0x08
	cmdShift          byte = 0x10
	cmdFunctionSet    byte = 0x20
	cmdSetCGRAM       byte = 0x40
	cmdSetDDRAM       byte = 0x80
)

// 4-bit bus and 5x7 font are the zero bits of function set.
const functionTwoLine byte = 0x08

const (
	// handshake nibbles sent before the controller knows the bus width
	nibbleCalibrate byte = 0x03
	nibble4Bit      byte = 0x02

	rowOffset   = 0x40
	columnMask  = 0x3f
	glyphSlots  = 8
	glyphRows   = 8
	glyphPixels = 0x1f
)

const (
	nibbleDelay          = 5 * time.Microsecond
	instructionDelay     = 40 * time.Microsecond
	longInstructionDelay = 1600 * time.Microsecond
	powerOnDelay         = 40 * time.Millisecond
)

// EntryMode holds the flags of the entry mode instruction.
type EntryMode byte

const (
	EntryShiftDisplay EntryMode = 0x01
	EntryIncrement    EntryMode = 0x02
)

func (e EntryMode) Has(flag EntryMode) bool {
	return e&flag == flag
}

func (e EntryMode) with(flag EntryMode, on bool) EntryMode {
	if on {
		return e | flag
	}
	return e &^ flag
}

func (e EntryMode) String() string {
	var parts []string
	if e.Has(EntryIncrement) {
		parts = append(parts, "increment")
	} else {
		parts = append(parts, "decrement")
	}
	if e.Has(EntryShiftDisplay) {
		parts = append(parts, "shift")
	}
	return strings.Join(parts, "|")
}

// DisplayControl holds the flags of the display on/off control instruction.
type DisplayControl byte

const (
	CursorBlink DisplayControl = 0x01
	CursorOn    DisplayControl = 0x02
	DisplayOn   DisplayControl = 0x04
)

func (c DisplayControl) Has(flag DisplayControl) bool {
	return c&flag == flag
}

func (c DisplayControl) with(flag DisplayControl, on bool) DisplayControl {
	if on {
		return c | flag
	}
	return c &^ flag
}

func (c DisplayControl) String() string {
	var parts []string
	if c.Has(DisplayOn) {
		parts = append(parts, "on")
	} else {
		parts = append(parts, "off")
	}
	if c.Has(CursorOn) {
		parts = append(parts, "cursor")
	}
	if c.Has(CursorBlink) {
		parts = append(parts, "blink")
	}
	return strings.Join(parts, "|")
}

// Shift selects what a cursor/display shift instruction moves, and where.
type Shift byte

const (
	ShiftCursorLeft   Shift = 0x00
	ShiftRight        Shift = 0x04
	ShiftDisplay      Shift = 0x08
	ShiftCursorRight        = ShiftRight
	ShiftDisplayLeft        = ShiftDisplay
	ShiftDisplayRight       = ShiftDisplay | ShiftRight
)

func (s Shift) String() string {
	switch s {
	case ShiftCursorLeft:
		return "cursor left"
	case ShiftCursorRight:
		return "cursor right"
	case ShiftDisplayLeft:
		return "display left"
	case ShiftDisplayRight:
		return "display right"
	}
	return "N/A"
}

// State is where the driver is in the power lifecycle.
type State byte

const (
	Unpowered State = iota
	PoweringUp
	Ready
	Disabled
)

func (s State) String() string {
	switch s {
	case Unpowered:
		return "unpowered"
	case PoweringUp:
		return "powering up"
	case Ready:
		return "ready"
	case Disabled:
		return "disabled"
	}
	return "N/A"
}
