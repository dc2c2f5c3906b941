package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemoryBounds(t *testing.T) {
	assert := assert.New(t)

	mem := &Memory{}

	assert.NoError(mem.Write(0, 0x11))
	assert.NoError(mem.Write(MEMORY_SIZE-1, 0x22))

	value, err := mem.Read(0)
	assert.NoError(err)
	assert.Equal(uint8(0x11), value)

	value, err = mem.Read(MEMORY_SIZE - 1)
	assert.NoError(err)
	assert.Equal(uint8(0x22), value)

	// MEMORY_SIZE is one past the last cell.
	_, err = mem.Read(MEMORY_SIZE)
	assert.ErrorIs(err, ErrAddressInvalid)
	assert.ErrorIs(mem.Write(MEMORY_SIZE, 0), ErrAddressInvalid)
}

func TestMemoryReadWord(t *testing.T) {
	assert := assert.New(t)

	mem := &Memory{}
	assert.NoError(mem.Write(0x0100, 0x12))
	assert.NoError(mem.Write(0x0101, 0x34))

	// Words are big-endian.
	value, err := mem.ReadWord(0x0100)
	assert.NoError(err)
	assert.Equal(uint16(0x1234), value)

	// The second byte of a word at the last cell is out of range.
	_, err = mem.ReadWord(MEMORY_SIZE - 1)
	assert.ErrorIs(err, ErrAddressInvalid)
}

func TestRegisterBounds(t *testing.T) {
	assert := assert.New(t)

	reg := &Registers{}

	for index := range uint8(REGISTER_COUNT) {
		assert.NoError(reg.Set(index, index+1))
		value, err := reg.Get(index)
		assert.NoError(err)
		assert.Equal(index+1, value)
	}

	// The bound is exactly the register count: index 4 is invalid for
	// a 4-slot file.
	_, err := reg.Get(REGISTER_COUNT)
	assert.ErrorIs(err, ErrRegisterInvalid)
	assert.ErrorIs(reg.Set(REGISTER_COUNT, 0), ErrRegisterInvalid)
}
