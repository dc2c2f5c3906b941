package emulator

import (
	"github.com/bobbbay/emu/translate"
)

var f = translate.From

// ErrRuntime locates a runtime fault in the program image.
type ErrRuntime struct {
	Pc     uint16
	LineNo int
	Err    error
}

func (err *ErrRuntime) Error() string {
	if err.LineNo > 0 {
		return f("line %d pc 0x%04x %v", err.LineNo, err.Pc, err.Err)
	}

	return f("pc 0x%04x %v", err.Pc, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
