package console

import (
	"fmt"
	"strconv"
	"strings"
)

type argumentError struct {
	arg string
	err error
}

func (e *argumentError) Error() string {
	return fmt.Sprintf("invalid argument %q: %v", e.arg, e.err)
}

// parseNumber accepts decimal or 0x prefixed hexadecimal and checks the value
// fits in bits.
func parseNumber(s string, bits int) (uint64, error) {
	base := 10
	digits := s
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		base = 16
		digits = s[2:]
	}
	v, err := strconv.ParseUint(digits, base, bits)
	if err != nil {
		if numErr, ok := err.(*strconv.NumError); ok {
			err = numErr.Err
		}
		return 0, &argumentError{arg: s, err: err}
	}
	return v, nil
}

func parseByte(s string) (byte, error) {
	v, err := parseNumber(s, 8)
	return byte(v), err
}

func parseSwitch(s string) (bool, error) {
	v, err := parseNumber(s, 8)
	if err != nil {
		return false, err
	}
	if v > 1 {
		return false, &argumentError{arg: s, err: fmt.Errorf("must be 0 or 1")}
	}
	return v == 1, nil
}

func parseRange(s string, max uint64) (uint64, error) {
	v, err := parseNumber(s, 64)
	if err != nil {
		return 0, err
	}
	if v > max {
		return 0, &argumentError{arg: s, err: fmt.Errorf("must be 0-%d", max)}
	}
	return v, nil
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}
