package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOpcodeInfo(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		op    Opcode
		name  string
		width int
	}){
		{OP_HALT, "halt", 0},
		{OP_NOP, "nop", 0},
		{OP_SET, "set", 2},
		{OP_MOV, "mov", 2},
		{OP_LDM, "ldm", 3},
		{OP_STM, "stm", 3},
		{OP_EQ, "eq", 3},
		{OP_EQI, "eqi", 3},
		{OP_GT, "gt", 3},
		{OP_LT, "lt", 3},
		{OP_JIF, "jif", 3},
		{OP_INC, "inc", 1},
		{OP_DEC, "dec", 1},
		{OP_ADD, "add", 3},
		{OP_SUB, "sub", 3},
		{OP_ADDI, "addi", 3},
		{OP_SUBI, "subi", 3},
	}

	for _, entry := range table {
		info, ok := entry.op.Info()
		assert.True(ok, entry.name)
		assert.Equal(entry.name, info.Name)
		assert.Equal(entry.name, entry.op.String())
		assert.Equal(entry.width, info.Width(), entry.name)
	}
}

func TestOpcodeUnknown(t *testing.T) {
	assert := assert.New(t)

	op := Opcode(0x77)
	_, ok := op.Info()
	assert.False(ok)
	assert.Equal("0x77", op.String())
}
