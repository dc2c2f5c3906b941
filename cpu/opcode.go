package cpu

import (
	"fmt"
)

// Opcode selects the execution handler for one instruction.
type Opcode uint8

const (
	OP_HALT = Opcode(0x00) // Stop the machine; terminal success.
	OP_NOP  = Opcode(0xFF) // No effect.
	OP_SET  = Opcode(0x10) // register <- immediate
	OP_MOV  = Opcode(0x11) // register <- register
	OP_LDM  = Opcode(0x12) // register <- memory
	OP_STM  = Opcode(0x20) // memory <- register
	OP_EQ   = Opcode(0x30) // dest <- a == b
	OP_EQI  = Opcode(0x31) // dest <- a == immediate
	OP_GT   = Opcode(0x32) // dest <- a > b
	OP_LT   = Opcode(0x33) // dest <- a < b (register form; there is no immediate form)
	OP_JIF  = Opcode(0x40) // pc <- target when the condition register is 1
	OP_INC  = Opcode(0x50) // register += 1
	OP_DEC  = Opcode(0x51) // register -= 1
	OP_ADD  = Opcode(0x52) // dest <- a + b
	OP_SUB  = Opcode(0x53) // dest <- a - b
	OP_ADDI = Opcode(0x54) // dest <- a + immediate
	OP_SUBI = Opcode(0x55) // dest <- a - immediate
)

// OpcodeInfo describes the assembly-level shape of an opcode. Operand
// kinds: 'r' register index (1 byte), 'v' immediate (1 byte), 'a'
// big-endian address (2 bytes).
type OpcodeInfo struct {
	Name     string
	Operands string
}

var opcodeTable = map[Opcode]OpcodeInfo{
	OP_HALT: {"halt", ""},
	OP_NOP:  {"nop", ""},
	OP_SET:  {"set", "rv"},
	OP_MOV:  {"mov", "rr"},
	OP_LDM:  {"ldm", "ra"},
	OP_STM:  {"stm", "ar"},
	OP_EQ:   {"eq", "rrr"},
	OP_EQI:  {"eqi", "rvr"},
	OP_GT:   {"gt", "rrr"},
	OP_LT:   {"lt", "rrr"},
	OP_JIF:  {"jif", "ra"},
	OP_INC:  {"inc", "r"},
	OP_DEC:  {"dec", "r"},
	OP_ADD:  {"add", "rrr"},
	OP_SUB:  {"sub", "rrr"},
	OP_ADDI: {"addi", "rvr"},
	OP_SUBI: {"subi", "rvr"},
}

// Info returns the assembly shape of the opcode, if it has a handler.
func (op Opcode) Info() (info OpcodeInfo, ok bool) {
	info, ok = opcodeTable[op]
	return
}

// Width returns the operand byte count of the shape.
func (info OpcodeInfo) Width() (width int) {
	for _, kind := range info.Operands {
		if kind == 'a' {
			width += 2
		} else {
			width += 1
		}
	}
	return
}

// String returns the mnemonic, or the raw byte for an unknown opcode.
func (op Opcode) String() string {
	info, ok := op.Info()
	if !ok {
		return fmt.Sprintf("0x%02x", uint8(op))
	}
	return info.Name
}
