// Package emulator wires the CPU core to a presentation adapter and a
// program image.
package emulator

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"maps"

	"github.com/bobbbay/emu/cpu"
	"github.com/bobbbay/emu/internal"
)

var _emulator_defines = map[string]string{
	"PROGRAM_LIMIT": fmt.Sprintf("%#v", cpu.MEMORY_SIZE-cpu.PROGRAM_BASE),
}

// Emulator state. CPU + adapter + program listing.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Currently attached program listing, if any.
}

// NewEmulator creates a new emulator attached to an adapter. A nil
// adapter runs headless.
func NewEmulator(adapter cpu.Adapter) (emu *Emulator) {
	emu = &Emulator{
		Cpu: cpu.NewCpu(adapter),
	}

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_emulator_defines),
		emu.Cpu.Defines(),
	)
}

// Assemble compiles a source stream into the attached program listing,
// feeding the machine defines to the assembler.
func (emu *Emulator) Assemble(input io.Reader) (err error) {
	asm := &cpu.Assembler{Verbose: emu.Verbose}
	for key, value := range emu.Defines() {
		asm.Predefine(key, value)
	}

	prog, err := asm.Parse(input)
	if err != nil {
		return
	}
	emu.Program = prog

	return
}

// Reset clears the machine and reloads the attached program listing.
func (emu *Emulator) Reset() (err error) {
	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Reset()

	if emu.Program != nil {
		err = emu.Cpu.Load(emu.Program.Binary())
	}

	return
}

// Load clears the machine and loads a raw program image, detaching any
// listing.
func (emu *Emulator) Load(image []byte) (err error) {
	emu.Program = nil
	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Reset()
	err = emu.Cpu.Load(image)

	return
}

// LineNo returns the source line for the current program counter, or 0
// when no listing is attached.
func (emu *Emulator) LineNo() int {
	if emu.Program == nil {
		return 0
	}

	return emu.Program.LineNo(emu.Cpu.Pc)
}

// Tick performs a single tick of the emulator. A normal halt reports
// done; every failure is located in the listing when one is attached.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	pc := emu.Cpu.Pc
	lineno := emu.LineNo()

	err = emu.Cpu.Tick()
	if errors.Is(err, cpu.ErrHalted) {
		err = nil
		done = true
		return
	}
	if err != nil {
		err = &ErrRuntime{Pc: pc, LineNo: lineno, Err: err}
	}

	return
}

// Run drives the machine to a terminal state. Halt returns nil;
// cancellation and faults return their error.
func (emu *Emulator) Run() (err error) {
	var done bool
	for !done {
		done, err = emu.Tick()
		if err != nil {
			return
		}
	}

	return
}
