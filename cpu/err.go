package cpu

import (
	"errors"

	"github.com/bobbbay/emu/translate"
)

var f = translate.From

var (
	// Terminal outcomes
	ErrHalted    = errors.New(f("halted"))
	ErrCancelled = errors.New(f("cancelled by adapter"))

	// Load and decode errors
	ErrProgramTooLarge = errors.New(f("program too large"))
	ErrRegisterInvalid = errors.New(f("register invalid"))
	ErrAddressInvalid  = errors.New(f("address invalid"))

	// Assembler errors
	ErrEquateSyntax     = errors.New(f(".equ syntax"))
	ErrEquateDuplicate  = errors.New(f(".equ duplicated"))
	ErrLabelDuplicate   = errors.New(f("label duplicated"))
	ErrOpcodeInvalid    = errors.New(f("opcode invalid"))
	ErrOpcodeExtraArgs  = errors.New(f("excessive arguments"))
	ErrOperandMissing   = errors.New(f("operand missing"))
	ErrRegisterExpected = errors.New(f("register expected"))
	ErrValueInvalid     = errors.New(f("value out of range"))
	ErrTargetInvalid    = errors.New(f("target invalid"))
)

// ErrOpcode reports an opcode with no handler, and where it was fetched.
type ErrOpcode struct {
	Opcode Opcode
	Addr   uint16
}

func (eo ErrOpcode) Error() string {
	return f("bad opcode 0x%02x at 0x%04x", uint8(eo.Opcode), eo.Addr)
}

func (eo ErrOpcode) Is(err error) (ok bool) {
	_, ok = err.(ErrOpcode)
	return
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}
