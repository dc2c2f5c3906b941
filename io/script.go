package io

// Script is a deterministic Adapter for tests. Each Render captures a
// copy of the configured memory window, each PollInput pops the next
// queued event, and Cancelled fires once the configured number of
// frames has been rendered.
type Script struct {
	Inputs      []uint8 // Queued input status events, one per poll.
	CancelAfter int     // Cancel after this many renders (0 = never).
	Base        int     // First cell of the capture window.
	Size        int     // Cells captured per render (0 = none).

	Frames  [][]byte // Captured windows, one per render.
	Renders int      // Render invocations so far.
	Polls   int      // PollInput invocations so far.
}

var _ Adapter = (*Script)(nil)

func (sc *Script) Render(memory []byte) {
	sc.Renders += 1

	if sc.Size == 0 {
		return
	}
	window := make([]byte, sc.Size)
	copy(window, memory[sc.Base:sc.Base+sc.Size])
	sc.Frames = append(sc.Frames, window)
}

func (sc *Script) PollInput() (status uint8, ok bool) {
	sc.Polls += 1

	if len(sc.Inputs) == 0 {
		return
	}
	status, ok = sc.Inputs[0], true
	sc.Inputs = sc.Inputs[1:]

	return
}

func (sc *Script) Cancelled() bool {
	return sc.CancelAfter > 0 && sc.Renders >= sc.CancelAfter
}
