package pins

import (
	"time"

	log "github.com/sirupsen/logrus"
)

// Logger is a stand-in for real hardware. Every operation is logged and
// delays return immediately.
type Logger struct{}

func NewLogger() *Logger {
	log.Infoln("Using logging pin controller, no hardware will be touched")
	return &Logger{}
}

func (Logger) ConfigureOutput(p Pin) error {
	log.Debugf("pins: %v output", p)
	return nil
}

func (Logger) ConfigureAnalog(p Pin) error {
	log.Debugf("pins: %v analog", p)
	return nil
}

func (Logger) Set(p Pin) error {
	log.Debugf("pins: %v high", p)
	return nil
}

func (Logger) Clear(p Pin) error {
	log.Debugf("pins: %v low", p)
	return nil
}

func (Logger) Delay(d time.Duration) {
	log.Tracef("pins: delay %v", d)
}
