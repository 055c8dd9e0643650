package lcd

import (
	"errors"
	"sync"

	log "github.com/sirupsen/logrus"
)

// Unlocker hands the display back to the queue.
type Unlocker func()

// Queue serializes access to the display between concurrent callers. A call
// that takes its turn with Queue owns the bus until it runs the Unlocker, so
// nibble pairs and multi-byte sequences are never interleaved.
type Queue struct {
	waiting       int
	runLock       sync.Mutex
	interruptLock sync.Mutex
}

// Queue waits for the turn on the display.
func (q *Queue) Queue() Unlocker {
	q.enqueue()
	q.runLock.Lock()

	q.running()
	return func() {
		q.done()
	}
}

// Waiting reports how many callers are queued behind the current owner.
func (q *Queue) Waiting() int {
	q.interruptLock.Lock()
	defer q.interruptLock.Unlock()

	return q.waiting
}

func (q *Queue) enqueue() {
	q.interruptLock.Lock()
	defer q.interruptLock.Unlock()

	q.waiting++
	log.Trace("Added to LCD queue: ", q.waiting)
}

func (q *Queue) running() {
	q.interruptLock.Lock()
	defer q.interruptLock.Unlock()

	q.waiting--
}

func (q *Queue) done() {
	defer q.runLock.Unlock()

	if q.Waiting() < 0 {
		log.Warn(errors.New("number waiting in LCD queue less than zero"))
	}
}

// Shared wraps a Driver so it can be used from several goroutines. Every
// operation, including multi-byte ones like Print, runs as one turn.
type Shared struct {
	q Queue
	d *Driver
}

func NewShared(d *Driver) *Shared {
	return &Shared{d: d}
}

// Do runs f with exclusive access to the driver, for sequences that must not
// be split, e.g. moving the cursor and then printing.
func (s *Shared) Do(f func(d *Driver) error) error {
	defer s.q.Queue()()
	return f(s.d)
}

func (s *Shared) State() State {
	defer s.q.Queue()()
	return s.d.State()
}

func (s *Shared) Init() error {
	return s.Do((*Driver).Init)
}

func (s *Shared) Enable() error {
	return s.Do((*Driver).Enable)
}

func (s *Shared) Disable() error {
	return s.Do((*Driver).Disable)
}

func (s *Shared) Clear() error {
	return s.Do((*Driver).Clear)
}

func (s *Shared) Home() error {
	return s.Do((*Driver).Home)
}

func (s *Shared) LeftToRight(on bool) error {
	return s.Do(func(d *Driver) error { return d.LeftToRight(on) })
}

func (s *Shared) AutoScroll(on bool) error {
	return s.Do(func(d *Driver) error { return d.AutoScroll(on) })
}

func (s *Shared) Display(on bool) error {
	return s.Do(func(d *Driver) error { return d.Display(on) })
}

func (s *Shared) Cursor(on bool) error {
	return s.Do(func(d *Driver) error { return d.Cursor(on) })
}

func (s *Shared) Blink(on bool) error {
	return s.Do(func(d *Driver) error { return d.Blink(on) })
}

func (s *Shared) ScrollLeft() error {
	return s.Do((*Driver).ScrollLeft)
}

func (s *Shared) ScrollRight() error {
	return s.Do((*Driver).ScrollRight)
}

func (s *Shared) CursorLeft() error {
	return s.Do((*Driver).CursorLeft)
}

func (s *Shared) CursorRight() error {
	return s.Do((*Driver).CursorRight)
}

func (s *Shared) SetLocation(x, y uint8) error {
	return s.Do(func(d *Driver) error { return d.SetLocation(x, y) })
}

func (s *Shared) Put(b byte) error {
	return s.Do(func(d *Driver) error { return d.Put(b) })
}

func (s *Shared) CreateGlyph(slot uint8, pattern [8]byte) error {
	return s.Do(func(d *Driver) error { return d.CreateGlyph(slot, pattern) })
}

func (s *Shared) Print(msg string) error {
	return s.Do(func(d *Driver) error { return d.Print(msg) })
}
