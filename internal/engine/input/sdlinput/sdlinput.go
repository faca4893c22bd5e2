// Package sdlinput translates go-sdl2 events into input events.
package sdlinput

import (
	"time"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/terrain-playground/internal/engine/input"
)

// TranslateKey maps an SDL keycode to a playground key.
func TranslateKey(sym sdl.Keycode) input.Key {
	switch sym {
	case sdl.K_1, sdl.K_KP_1:
		return input.Key1
	case sdl.K_2, sdl.K_KP_2:
		return input.Key2
	case sdl.K_F11:
		return input.KeyF11
	case sdl.K_F12:
		return input.KeyF12
	case sdl.K_ESCAPE:
		return input.KeyEscape
	case sdl.K_LEFT:
		return input.KeyLeft
	case sdl.K_RIGHT:
		return input.KeyRight
	case sdl.K_UP:
		return input.KeyUp
	case sdl.K_DOWN:
		return input.KeyDown
	case sdl.K_PAGEUP:
		return input.KeyPageUp
	case sdl.K_PAGEDOWN:
		return input.KeyPageDown
	case sdl.K_PLUS, sdl.K_EQUALS, sdl.K_KP_PLUS:
		return input.KeyPlus
	case sdl.K_MINUS, sdl.K_KP_MINUS:
		return input.KeyMinus
	case sdl.K_w:
		return input.KeyW
	}
	return input.KeyUnknown
}

// Translate converts one SDL event. Events the playground ignores come back
// as EventNone.
func Translate(event sdl.Event) input.Event {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		return input.Event{Type: input.EventQuit}
	case *sdl.WindowEvent:
		if e.Event == sdl.WINDOWEVENT_RESIZED || e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
			return input.Resize(int(e.Data1), int(e.Data2))
		}
	case *sdl.KeyboardEvent:
		ev := input.Event{Key: TranslateKey(e.Keysym.Sym), Repeat: e.Repeat != 0}
		switch e.Type {
		case sdl.KEYDOWN:
			ev.Type = input.EventKeyDown
		case sdl.KEYUP:
			ev.Type = input.EventKeyUp
		}
		return ev
	}
	return input.Event{}
}

// Pump blocks for the next SDL event, then drains whatever else is queued,
// so a burst of events costs one redraw.
type Pump struct {
	batch *input.Batch
}

// NewPump creates a pump with an empty batch.
func NewPump() *Pump {
	return &Pump{batch: input.NewBatch()}
}

// Wait blocks until at least one event arrives and returns the batch.
func (p *Pump) Wait() *input.Batch {
	p.batch.Reset()
	if ev := sdl.WaitEvent(); ev != nil {
		p.batch.Add(Translate(ev))
	}
	p.Drain()
	return p.batch
}

// WaitTimeout is Wait bounded by d. An empty batch means the timeout
// passed with nothing queued.
func (p *Pump) WaitTimeout(d time.Duration) *input.Batch {
	p.batch.Reset()
	if ev := sdl.WaitEventTimeout(timeoutMillis(d)); ev != nil {
		p.batch.Add(Translate(ev))
	}
	p.Drain()
	return p.batch
}

// timeoutMillis rounds d down to SDL's millisecond timeout, never below 1
// since zero would not wait at all.
func timeoutMillis(d time.Duration) int {
	ms := int(d / time.Millisecond)
	if ms < 1 {
		return 1
	}
	return ms
}

// Poll returns a fresh batch of whatever is queued, without blocking.
func (p *Pump) Poll() *input.Batch {
	p.batch.Reset()
	p.Drain()
	return p.batch
}

// Drain adds every queued event to the batch without blocking.
func (p *Pump) Drain() {
	for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
		p.batch.Add(Translate(ev))
	}
}

// Batch returns the current batch.
func (p *Pump) Batch() *input.Batch { return p.batch }
