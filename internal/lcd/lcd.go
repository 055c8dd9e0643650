// Package lcd drives an HD44780 compatible 16x2 character display over a
// write-only 4-bit bus.
//
// All operations block until the controller has been given its worst case
// execution time. The busy flag is never read.
package lcd

import (
	"errors"
	"fmt"

	"github.com/callebjorkell/lcd1602/internal/pins"
	log "github.com/sirupsen/logrus"
)

// ErrInvalidSlot is returned for custom glyph slots outside 0-7.
var ErrInvalidSlot = errors.New("glyph slot out of range")

// Driver owns the display lines and mirrors the controller's mode registers.
// It is not safe for concurrent use, see Shared.
type Driver struct {
	pins    pins.Controller
	entry   EntryMode
	control DisplayControl
	state   State
}

// New returns a driver for an unpowered display. Nothing is written to the
// pins until Init or Enable is called.
func New(p pins.Controller) *Driver {
	return &Driver{
		pins:  p,
		entry: EntryIncrement,
		state: Unpowered,
	}
}

func (d *Driver) State() State {
	return d.state
}

func (d *Driver) EntryMode() EntryMode {
	return d.entry
}

func (d *Driver) DisplayControl() DisplayControl {
	return d.control
}

// Init brings up the display from scratch.
func (d *Driver) Init() error {
	log.Infoln("Initializing LCD")
	return d.Enable()
}

// Enable configures all lines, powers the module and runs the 4-bit power on
// sequence. It always runs the full sequence, whatever state the display is
// in.
func (d *Driver) Enable() error {
	d.state = PoweringUp
	log.Debug("LCD powering up")
	for _, p := range pins.All {
		if err := d.pins.ConfigureOutput(p); err != nil {
			return fmt.Errorf("configure output: %w", err)
		}
	}
	for _, p := range pins.All {
		if err := d.pins.Clear(p); err != nil {
			return fmt.Errorf("idle lines: %w", err)
		}
	}

	if err := d.pins.Set(pins.Power); err != nil {
		return fmt.Errorf("power on: %w", err)
	}
	d.pins.Delay(powerOnDelay)

	if err := d.powerOn(); err != nil {
		return err
	}
	d.state = Ready
	log.Debug("LCD ready")
	return nil
}

func (d *Driver) powerOn() error {
	d.entry = 0
	d.control = 0

	for _, n := range []byte{nibbleCalibrate, nibbleCalibrate, nibbleCalibrate, nibble4Bit} {
		if err := d.writeNibble(n); err != nil {
			return fmt.Errorf("4-bit handshake: %w", err)
		}
		d.pins.Delay(instructionDelay)
	}

	if err := d.instruction(cmdFunctionSet | functionTwoLine); err != nil {
		return fmt.Errorf("function set: %w", err)
	}
	if err := d.Display(false); err != nil {
		return err
	}
	if err := d.Clear(); err != nil {
		return err
	}
	if err := d.LeftToRight(true); err != nil {
		return err
	}
	return d.Display(true)
}

// Disable cuts power to the module and floats every line. The cached mode
// registers are meaningless until the next Enable.
func (d *Driver) Disable() error {
	log.Debug("LCD powering down")
	if err := d.pins.Clear(pins.Power); err != nil {
		return fmt.Errorf("power off: %w", err)
	}
	for _, p := range pins.All {
		if err := d.pins.ConfigureAnalog(p); err != nil {
			return fmt.Errorf("configure analog: %w", err)
		}
	}
	d.state = Disabled
	return nil
}

// Clear blanks the display and returns the cursor to the home position.
func (d *Driver) Clear() error {
	return d.longInstruction(cmdClear)
}

// Home returns the cursor to the home position and undoes any display shift.
// DDRAM content is unchanged.
func (d *Driver) Home() error {
	return d.longInstruction(cmdHome)
}

// LeftToRight sets whether the cursor moves right (on) or left (off) after
// each write.
func (d *Driver) LeftToRight(on bool) error {
	return d.setEntryMode(d.entry.with(EntryIncrement, on))
}

// AutoScroll sets whether the whole display shifts on each write.
func (d *Driver) AutoScroll(on bool) error {
	return d.setEntryMode(d.entry.with(EntryShiftDisplay, on))
}

func (d *Driver) Display(on bool) error {
	return d.setDisplayControl(d.control.with(DisplayOn, on))
}

func (d *Driver) Cursor(on bool) error {
	return d.setDisplayControl(d.control.with(CursorOn, on))
}

func (d *Driver) Blink(on bool) error {
	return d.setDisplayControl(d.control.with(CursorBlink, on))
}

func (d *Driver) ScrollLeft() error {
	return d.Shift(ShiftDisplayLeft)
}

func (d *Driver) ScrollRight() error {
	return d.Shift(ShiftDisplayRight)
}

func (d *Driver) CursorLeft() error {
	return d.Shift(ShiftCursorLeft)
}

func (d *Driver) CursorRight() error {
	return d.Shift(ShiftCursorRight)
}

// Shift moves the cursor or the whole display one position.
func (d *Driver) Shift(s Shift) error {
	return d.instruction(cmdShift | byte(s&ShiftDisplayRight))
}

// SetLocation moves the cursor to column x of row y. Only the low bit of y is
// used.
func (d *Driver) SetLocation(x, y uint8) error {
	return d.instruction(cmdSetDDRAM | (y&1)*rowOffset | x&columnMask)
}

// Put writes one byte to the current DDRAM or CGRAM address.
func (d *Driver) Put(b byte) error {
	return d.data(b)
}

// CreateGlyph stores a 5x8 custom character in one of the 8 CGRAM slots. Only
// the low 5 bits of each row are used. The address counter is left pointing
// into CGRAM, so move the cursor with SetLocation before printing again.
func (d *Driver) CreateGlyph(slot uint8, pattern [8]byte) error {
	if slot >= glyphSlots {
		log.Warnf("Ignoring glyph for slot %d", slot)
		return fmt.Errorf("slot %d: %w", slot, ErrInvalidSlot)
	}
	if err := d.instruction(cmdSetCGRAM | slot<<3); err != nil {
		return err
	}
	for i := 0; i < glyphRows; i++ {
		if err := d.data(pattern[i] & glyphPixels); err != nil {
			return err
		}
	}
	return nil
}

// Print writes every byte of msg at the cursor.
func (d *Driver) Print(msg string) error {
	for i := 0; i < len(msg); i++ {
		if err := d.data(msg[i]); err != nil {
			return err
		}
	}
	return nil
}

func (d *Driver) setEntryMode(e EntryMode) error {
	d.entry = e
	return d.instruction(cmdEntryMode | byte(e))
}

func (d *Driver) setDisplayControl(c DisplayControl) error {
	d.control = c
	return d.instruction(cmdDisplayControl | byte(c))
}

func (d *Driver) longInstruction(cmd byte) error {
	if err := d.instruction(cmd); err != nil {
		return err
	}
	d.pins.Delay(longInstructionDelay)
	return nil
}

func (d *Driver) instruction(cmd byte) error {
	err := d.pins.Clear(pins.RegisterSelect)
	if err == nil {
		err = d.sendByte(cmd)
	}
	if err != nil {
		return fmt.Errorf("instruction 0x%02x: %w", cmd, err)
	}
	return nil
}

func (d *Driver) data(b byte) error {
	err := d.pins.Set(pins.RegisterSelect)
	if err == nil {
		err = d.sendByte(b)
	}
	if err != nil {
		return fmt.Errorf("data 0x%02x: %w", b, err)
	}
	return nil
}

func (d *Driver) sendByte(b byte) error {
	if err := d.writeNibble(b >> 4); err != nil {
		return err
	}
	if err := d.writeNibble(b & 0x0f); err != nil {
		return err
	}
	d.pins.Delay(instructionDelay)
	return nil
}

// writeNibble puts the low 4 bits of n on the bus and strobes enable. The
// controller latches on the falling edge.
func (d *Driver) writeNibble(n byte) error {
	for i, p := range pins.Data {
		var err error
		if n&(1<<uint(i)) != 0 {
			err = d.pins.Set(p)
		} else {
			err = d.pins.Clear(p)
		}
		if err != nil {
			return err
		}
	}
	if err := d.pins.Set(pins.Enable); err != nil {
		return err
	}
	d.pins.Delay(nibbleDelay)
	return d.pins.Clear(pins.Enable)
}
