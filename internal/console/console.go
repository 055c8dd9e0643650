// Package console maps text commands onto LCD driver operations, so the
// display can be poked at by hand from a shell or over HTTP.
package console

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	log "github.com/sirupsen/logrus"
)

// Display is the set of LCD operations the console can run. Both lcd.Driver
// and lcd.Shared implement it.
type Display interface {
	Init() error
	Enable() error
	Disable() error
	Clear() error
	Home() error
	LeftToRight(on bool) error
	AutoScroll(on bool) error
	Display(on bool) error
	Cursor(on bool) error
	Blink(on bool) error
	ScrollLeft() error
	ScrollRight() error
	CursorLeft() error
	CursorRight() error
	SetLocation(x, y uint8) error
	Put(b byte) error
	CreateGlyph(slot uint8, pattern [8]byte) error
	Print(msg string) error
}

// ErrUnknownCommand is returned for a command name that is not registered.
var ErrUnknownCommand = errors.New("unknown command")

// UsageError is returned when a command is called with missing or malformed
// arguments. The display is not touched.
type UsageError struct {
	Command string
	Usage   string
	Err     error
}

func (e *UsageError) Error() string {
	return fmt.Sprintf("%s: %v\nusage: %s", e.Command, e.Err, e.Usage)
}

func (e *UsageError) Unwrap() error {
	return e.Err
}

type handler func(d Display, args []string, rest string) (string, error)

type command struct {
	usage string
	help  string
	nargs int
	run   handler
}

// Console runs one command line at a time against a display.
type Console struct {
	display  Display
	commands map[string]command
}

func New(d Display) *Console {
	return &Console{
		display:  d,
		commands: commandTable(),
	}
}

// Execute runs a single command line and returns a short confirmation.
// Blank lines are ignored.
func (c *Console) Execute(line string) (string, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return "", nil
	}

	fields := strings.Fields(line)
	name := fields[0]
	if name == "help" {
		return c.Help(), nil
	}

	cmd, ok := c.commands[name]
	if !ok {
		return "", fmt.Errorf("%s: %w", name, ErrUnknownCommand)
	}
	args := fields[1:]
	if len(args) < cmd.nargs {
		return "", &UsageError{Command: name, Usage: cmd.usage, Err: fmt.Errorf("expected %d arguments, got %d", cmd.nargs, len(args))}
	}
	rest := strings.TrimSpace(strings.TrimPrefix(line, name))

	log.Debugf("console: %s %v", name, args)
	out, err := cmd.run(c.display, args, rest)
	if err != nil {
		var argErr *argumentError
		if errors.As(err, &argErr) {
			return "", &UsageError{Command: name, Usage: cmd.usage, Err: err}
		}
		return "", fmt.Errorf("%s: %w", name, err)
	}
	return out, nil
}

// Help lists every command with its usage.
func (c *Console) Help() string {
	names := make([]string, 0, len(c.commands))
	for name := range c.commands {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		cmd := c.commands[name]
		fmt.Fprintf(&b, "%s:\n    %s\n", cmd.usage, cmd.help)
	}
	return b.String()
}
