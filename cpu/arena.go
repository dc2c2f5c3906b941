package cpu

// Memory map of the machine.
const (
	MEMORY_SIZE    = 0xFFFF // Cells in the byte-addressable memory.
	PROGRAM_BASE   = 0x8000 // Load address of the program image.
	INPUT_STATUS   = 0x0100 // Cell receiving the polled input status.
	DISPLAY_BASE   = 0x0200 // First cell of the display region.
	DISPLAY_WIDTH  = 32     // Display width, one cell per pixel.
	DISPLAY_HEIGHT = 32     // Display height, one cell per pixel.
	DISPLAY_SIZE   = DISPLAY_WIDTH * DISPLAY_HEIGHT
	REGISTER_COUNT = 4 // General-purpose registers.
)

// Memory is the byte-addressable store of the machine. The zero value
// is ready to use. All access goes through the validating accessors;
// an out-of-range address is an error, never a panic.
type Memory [MEMORY_SIZE]uint8

// Read returns the cell at addr.
func (mem *Memory) Read(addr uint16) (value uint8, err error) {
	if int(addr) >= MEMORY_SIZE {
		err = ErrAddressInvalid
		return
	}
	value = mem[addr]
	return
}

// ReadWord returns the 16-bit big-endian word starting at addr.
func (mem *Memory) ReadWord(addr uint16) (value uint16, err error) {
	hi, err := mem.Read(addr)
	if err != nil {
		return
	}
	lo, err := mem.Read(addr + 1)
	if err != nil {
		return
	}
	value = (uint16(hi) << 8) | uint16(lo)
	return
}

// Write sets the cell at addr.
func (mem *Memory) Write(addr uint16, value uint8) (err error) {
	if int(addr) >= MEMORY_SIZE {
		err = ErrAddressInvalid
		return
	}
	mem[addr] = value
	return
}

// Registers is the general-purpose register file.
type Registers [REGISTER_COUNT]uint8

// Get returns the register at index. The valid range is exactly the
// register count; anything else is ErrRegisterInvalid.
func (reg *Registers) Get(index uint8) (value uint8, err error) {
	if index >= REGISTER_COUNT {
		err = ErrRegisterInvalid
		return
	}
	value = reg[index]
	return
}

// Set stores value into the register at index.
func (reg *Registers) Set(index uint8, value uint8) (err error) {
	if index >= REGISTER_COUNT {
		err = ErrRegisterInvalid
		return
	}
	reg[index] = value
	return
}
