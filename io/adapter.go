// Package io provides the presentation and input adapter contract for
// the virtual machine, plus headless and scripted implementations for
// embedding and testing.
package io

// Adapter is the presentation and input collaborator injected into the
// CPU. The execution loop invokes the three methods once per
// iteration, in order, before fetching the next instruction. Calls are
// synchronous on the machine goroutine and expected to return quickly.
type Adapter interface {
	// Render presents the current memory image. The slice is the live
	// memory of the machine and must be treated as read-only.
	Render(memory []byte)
	// PollInput samples the input state. When ok is true, status is
	// written to the input status cell; otherwise the cell is cleared.
	PollInput() (status uint8, ok bool)
	// Cancelled reports whether the host requests termination. The
	// loop then stops cooperatively, before executing any further
	// instruction.
	Cancelled() bool
}
