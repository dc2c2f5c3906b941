package io

// Headless is a no-op Adapter for running the machine without any
// presentation surface.
type Headless struct{}

var _ Adapter = (*Headless)(nil)

func (hl *Headless) Render(memory []byte) {}

func (hl *Headless) PollInput() (status uint8, ok bool) {
	return
}

func (hl *Headless) Cancelled() bool {
	return false
}
