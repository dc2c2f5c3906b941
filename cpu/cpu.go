package cpu

import (
	"fmt"
	"iter"
	"log"
	"maps"

	"github.com/bobbbay/emu/io"
)

// Adapter is the presentation and input collaborator interface.
type Adapter io.Adapter

var _cpu_defines = map[string]string{
	"MEMORY_SIZE":    fmt.Sprintf("%#v", MEMORY_SIZE),
	"PROGRAM_BASE":   fmt.Sprintf("%#v", PROGRAM_BASE),
	"INPUT_STATUS":   fmt.Sprintf("%#v", INPUT_STATUS),
	"DISPLAY_BASE":   fmt.Sprintf("%#v", DISPLAY_BASE),
	"DISPLAY_WIDTH":  fmt.Sprintf("%#v", DISPLAY_WIDTH),
	"DISPLAY_HEIGHT": fmt.Sprintf("%#v", DISPLAY_HEIGHT),
	"DISPLAY_SIZE":   fmt.Sprintf("%#v", DISPLAY_SIZE),
	"REGISTER_COUNT": fmt.Sprintf("%#v", REGISTER_COUNT),
}

// Cpu is the virtual machine: memory, register file, program counter,
// and the injected presentation adapter. Memory and registers are
// exclusively owned by the machine and mutated on the calling
// goroutine only.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Memory   Memory    // Byte-addressable store.
	Register Registers // Register bank.
	Pc       uint16    // Address of the next byte to fetch.

	Adapter Adapter // Presentation and input collaborator.

	Ticks int // Instructions retired since the last reset.
}

// NewCpu creates a CPU attached to an adapter. A nil adapter runs the
// machine headless.
func NewCpu(adapter Adapter) (cpu *Cpu) {
	if adapter == nil {
		adapter = &io.Headless{}
	}
	cpu = &Cpu{
		Adapter: adapter,
	}

	return
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	text = fmt.Sprintf("   pc: %04X\n", cpu.Pc)
	for n, val := range cpu.Register {
		text += fmt.Sprintf("   r%d: %02X\n", n, val)
	}

	return
}

// Reset clears memory, the register file, the program counter, and the
// tick counter.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	clear(cpu.Memory[:])
	clear(cpu.Register[:])
	cpu.Pc = 0
	cpu.Ticks = 0
}

// Load copies a program image verbatim into memory at PROGRAM_BASE and
// points the program counter at its first byte. No other state is
// touched.
func (cpu *Cpu) Load(program []byte) (err error) {
	if len(program) > MEMORY_SIZE-PROGRAM_BASE {
		err = ErrProgramTooLarge
		return
	}

	copy(cpu.Memory[PROGRAM_BASE:], program)
	cpu.Pc = PROGRAM_BASE

	if cpu.Verbose {
		log.Printf("cpu: loaded %v bytes at 0x%04x", len(program), PROGRAM_BASE)
	}

	return
}

// fetch reads the byte at the program counter and advances it.
func (cpu *Cpu) fetch() (value uint8, err error) {
	value, err = cpu.Memory.Read(cpu.Pc)
	if err != nil {
		return
	}
	cpu.Pc += 1

	return
}

// fetchRegister reads the next operand byte as a register index,
// validated before any register access it selects.
func (cpu *Cpu) fetchRegister() (index uint8, err error) {
	index, err = cpu.fetch()
	if err != nil {
		return
	}
	if index >= REGISTER_COUNT {
		err = ErrRegisterInvalid
	}

	return
}

// fetchWord reads the next two operand bytes as a big-endian address.
func (cpu *Cpu) fetchWord() (value uint16, err error) {
	value, err = cpu.Memory.ReadWord(cpu.Pc)
	if err != nil {
		return
	}
	cpu.Pc += 2

	return
}

// Tick runs a single loop iteration: adapter render, input poll,
// cancellation check, then one fetch-decode-execute step. A HALT
// yields ErrHalted; a host close request yields ErrCancelled.
func (cpu *Cpu) Tick() (err error) {
	cpu.Adapter.Render(cpu.Memory[:])

	status, ok := cpu.Adapter.PollInput()
	if !ok {
		status = 0
	}
	err = cpu.Memory.Write(INPUT_STATUS, status)
	if err != nil {
		return
	}

	if cpu.Adapter.Cancelled() {
		err = ErrCancelled
		return
	}

	return cpu.Step()
}

// Step fetches, decodes, and executes exactly one instruction, without
// involving the adapter. Operand register indices are validated before
// any register or memory write of the instruction is committed.
func (cpu *Cpu) Step() (err error) {
	at := cpu.Pc

	opbyte, err := cpu.fetch()
	if err != nil {
		return
	}
	op := Opcode(opbyte)

	if cpu.Verbose {
		log.Printf("cpu: %04x: %v", at, op)
	}

	switch op {
	case OP_HALT:
		err = ErrHalted

	case OP_NOP:
		// pass

	case OP_SET:
		var dest, value uint8
		dest, err = cpu.fetchRegister()
		if err != nil {
			return
		}
		value, err = cpu.fetch()
		if err != nil {
			return
		}
		err = cpu.Register.Set(dest, value)

	case OP_MOV:
		var dest, src, value uint8
		dest, err = cpu.fetchRegister()
		if err != nil {
			return
		}
		src, err = cpu.fetchRegister()
		if err != nil {
			return
		}
		value, err = cpu.Register.Get(src)
		if err != nil {
			return
		}
		err = cpu.Register.Set(dest, value)

	case OP_LDM:
		var dest, value uint8
		var addr uint16
		dest, err = cpu.fetchRegister()
		if err != nil {
			return
		}
		addr, err = cpu.fetchWord()
		if err != nil {
			return
		}
		value, err = cpu.Memory.Read(addr)
		if err != nil {
			return
		}
		err = cpu.Register.Set(dest, value)

	case OP_STM:
		var src, value uint8
		var addr uint16
		addr, err = cpu.fetchWord()
		if err != nil {
			return
		}
		src, err = cpu.fetchRegister()
		if err != nil {
			return
		}
		value, err = cpu.Register.Get(src)
		if err != nil {
			return
		}
		err = cpu.Memory.Write(addr, value)

	case OP_EQ, OP_GT, OP_LT:
		var a, b uint8
		a, b, err = cpu.fetchPair()
		if err != nil {
			return
		}
		var result bool
		switch op {
		case OP_EQ:
			result = a == b
		case OP_GT:
			result = a > b
		case OP_LT:
			result = a < b
		}
		err = cpu.setFetchedRegister(u8from(result))

	case OP_EQI:
		var a, value uint8
		a, err = cpu.getFetchedRegister()
		if err != nil {
			return
		}
		value, err = cpu.fetch()
		if err != nil {
			return
		}
		err = cpu.setFetchedRegister(u8from(a == value))

	case OP_JIF:
		var cond uint8
		var target uint16
		cond, err = cpu.getFetchedRegister()
		if err != nil {
			return
		}
		// The target is read without advancing: a taken jump discards
		// the post-operand advance, a skipped one advances exactly 2.
		target, err = cpu.Memory.ReadWord(cpu.Pc)
		if err != nil {
			return
		}
		if cond == 1 {
			cpu.Pc = target
		} else {
			cpu.Pc += 2
		}

	case OP_INC, OP_DEC:
		var r, value uint8
		r, err = cpu.fetchRegister()
		if err != nil {
			return
		}
		value, err = cpu.Register.Get(r)
		if err != nil {
			return
		}
		if op == OP_INC {
			value += 1
		} else {
			value -= 1
		}
		err = cpu.Register.Set(r, value)

	case OP_ADD, OP_SUB:
		var a, b uint8
		a, b, err = cpu.fetchPair()
		if err != nil {
			return
		}
		if op == OP_SUB {
			b = -b
		}
		err = cpu.setFetchedRegister(a + b)

	case OP_ADDI, OP_SUBI:
		var a, value uint8
		a, err = cpu.getFetchedRegister()
		if err != nil {
			return
		}
		value, err = cpu.fetch()
		if err != nil {
			return
		}
		if op == OP_SUBI {
			value = -value
		}
		err = cpu.setFetchedRegister(a + value)

	default:
		err = ErrOpcode{Opcode: op, Addr: at}
	}

	if err != nil {
		return
	}

	cpu.Ticks += 1

	return
}

// Run drives the loop to a terminal state. A HALT returns nil; every
// other terminal condition is returned as the error that stopped the
// machine.
func (cpu *Cpu) Run() (err error) {
	for {
		err = cpu.Tick()
		if err == ErrHalted {
			err = nil
			return
		}
		if err != nil {
			return
		}
	}
}

// getFetchedRegister fetches a register index operand and returns the
// register's value.
func (cpu *Cpu) getFetchedRegister() (value uint8, err error) {
	index, err := cpu.fetchRegister()
	if err != nil {
		return
	}

	return cpu.Register.Get(index)
}

// fetchPair fetches two register index operands and returns both
// register values.
func (cpu *Cpu) fetchPair() (a, b uint8, err error) {
	a, err = cpu.getFetchedRegister()
	if err != nil {
		return
	}
	b, err = cpu.getFetchedRegister()

	return
}

// setFetchedRegister fetches a destination register index operand and
// stores value into it.
func (cpu *Cpu) setFetchedRegister(value uint8) (err error) {
	index, err := cpu.fetchRegister()
	if err != nil {
		return
	}

	return cpu.Register.Set(index, value)
}

// u8from converts a comparison result to the 0/1 byte stored by the
// comparison opcodes.
func u8from(ok bool) uint8 {
	if ok {
		return 1
	}
	return 0
}
