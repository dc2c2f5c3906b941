// Package gfx presents the machine's display region in a desktop
// window and samples the keyboard for input.
package gfx

import (
	"sync"
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/bobbbay/emu/cpu"
	"github.com/bobbbay/emu/io"
)

const WINDOW_SCALE = 16 // On-screen pixels per display cell.

// Input status codes written by the keyboard sampler.
const (
	KEY_NONE  = uint8(0)
	KEY_UP    = uint8(1) // W
	KEY_LEFT  = uint8(2) // A
	KEY_DOWN  = uint8(3) // S
	KEY_RIGHT = uint8(4) // D
)

// keyMap maps sampled keys to input status codes.
var keyMap = map[ebiten.Key]uint8{
	ebiten.KeyW: KEY_UP,
	ebiten.KeyA: KEY_LEFT,
	ebiten.KeyS: KEY_DOWN,
	ebiten.KeyD: KEY_RIGHT,
}

// Display is the windowed presentation and input adapter. The machine
// side (Render, PollInput, Cancelled) runs on the machine goroutine;
// the ebiten side (Update, Draw, Layout) runs on the render thread.
type Display struct {
	mu      sync.Mutex
	region  [cpu.DISPLAY_SIZE]uint8 // Last rendered display region.
	status  uint8                   // Pending input status event.
	pending bool

	cancelled atomic.Bool // Host close request (escape / window close).
	stopped   atomic.Bool // Machine finished; exit the render loop.
}

var _ io.Adapter = (*Display)(nil)
var _ ebiten.Game = (*Display)(nil)

// Render snapshots the display region of memory.
func (dp *Display) Render(memory []byte) {
	dp.mu.Lock()
	defer dp.mu.Unlock()

	copy(dp.region[:], memory[cpu.DISPLAY_BASE:cpu.DISPLAY_BASE+cpu.DISPLAY_SIZE])
}

// PollInput pops the pending key event, if any.
func (dp *Display) PollInput() (status uint8, ok bool) {
	dp.mu.Lock()
	defer dp.mu.Unlock()

	status, ok = dp.status, dp.pending
	dp.pending = false

	return
}

// Frame returns a copy of the last rendered display region.
func (dp *Display) Frame() (frame []uint8) {
	dp.mu.Lock()
	defer dp.mu.Unlock()

	frame = append(frame, dp.region[:]...)

	return
}

// Cancelled reports a close request from the window.
func (dp *Display) Cancelled() bool {
	return dp.cancelled.Load()
}

// Stop requests the render loop to exit on the next update, without
// flagging a cancellation to the machine.
func (dp *Display) Stop() {
	dp.stopped.Store(true)
}

// Update samples the keyboard. Part of ebiten.Game.
func (dp *Display) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		dp.cancelled.Store(true)
	}
	if dp.stopped.Load() || dp.cancelled.Load() {
		return ebiten.Termination
	}

	for key, status := range keyMap {
		if inpututil.IsKeyJustPressed(key) {
			dp.mu.Lock()
			dp.status = status
			dp.pending = true
			dp.mu.Unlock()
		}
	}

	return nil
}

// Draw paints the framebuffer. Part of ebiten.Game.
func (dp *Display) Draw(screen *ebiten.Image) {
	var pix [cpu.DISPLAY_SIZE * 4]uint8

	dp.mu.Lock()
	for n, value := range dp.region {
		rgb := Intensity(value)
		pix[n*4+0] = uint8(rgb >> 16)
		pix[n*4+1] = uint8(rgb >> 8)
		pix[n*4+2] = uint8(rgb >> 0)
		pix[n*4+3] = 0xff
	}
	dp.mu.Unlock()

	screen.WritePixels(pix[:])
}

// Layout reports the logical screen size. Part of ebiten.Game.
func (dp *Display) Layout(outsideWidth, outsideHeight int) (int, int) {
	return cpu.DISPLAY_WIDTH, cpu.DISPLAY_HEIGHT
}

// Intensity maps one display cell to its packed 0x00RRGGBB pixel: the
// cell value raised to the 4th power as an unsigned 32-bit integer.
func Intensity(value uint8) uint32 {
	v := uint32(value)

	return v * v * v * v
}

// Run opens the window and drives the render loop until the machine
// stops or the host closes the window. Must be called on the main
// goroutine.
func (dp *Display) Run(title string) (err error) {
	ebiten.SetWindowSize(cpu.DISPLAY_WIDTH*WINDOW_SCALE, cpu.DISPLAY_HEIGHT*WINDOW_SCALE)
	ebiten.SetWindowTitle(title)

	err = ebiten.RunGame(dp)

	// A window closed by the host cancels the machine.
	dp.cancelled.Store(true)

	return
}
