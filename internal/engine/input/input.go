// Package input defines the frontend-neutral events the playground reacts
// to. Frontends translate their native events into these.
package input

// EventType tags an Event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
)

// Key is a frontend-neutral key code. Only keys the playground binds are
// named; everything else arrives as KeyUnknown.
type Key int

const (
	KeyUnknown Key = iota
	Key1
	Key2
	KeyF11
	KeyF12
	KeyEscape
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyPageUp
	KeyPageDown
	KeyPlus
	KeyMinus
	KeyW
)

var keyNames = map[Key]string{
	Key1:        "1",
	Key2:        "2",
	KeyF11:      "F11",
	KeyF12:      "F12",
	KeyEscape:   "Escape",
	KeyLeft:     "Left",
	KeyRight:    "Right",
	KeyUp:       "Up",
	KeyDown:     "Down",
	KeyPageUp:   "PageUp",
	KeyPageDown: "PageDown",
	KeyPlus:     "+",
	KeyMinus:    "-",
	KeyW:        "W",
}

func (k Key) String() string {
	if n, ok := keyNames[k]; ok {
		return n
	}
	return "Unknown"
}

// Event is one translated input event.
type Event struct {
	Type   EventType
	Key    Key
	Repeat bool
	Width  int
	Height int
}

// KeyPress returns a key press event.
func KeyPress(k Key) Event { return Event{Type: EventKeyDown, Key: k} }

// Resize returns a window resize event.
func Resize(w, h int) Event { return Event{Type: EventWindowResize, Width: w, Height: h} }

// Batch collects the events of one redraw.
type Batch struct {
	events []Event
}

// NewBatch returns an empty batch.
func NewBatch() *Batch {
	return &Batch{events: make([]Event, 0, 16)}
}

// Add appends an event. EventNone is dropped.
func (b *Batch) Add(e Event) {
	if e.Type == EventNone {
		return
	}
	b.events = append(b.events, e)
}

// Reset clears the batch for reuse.
func (b *Batch) Reset() { b.events = b.events[:0] }

// Events returns the collected events in arrival order.
func (b *Batch) Events() []Event { return b.events }

// Quit reports whether the batch contains a quit request.
func (b *Batch) Quit() bool {
	for _, e := range b.events {
		if e.Type == EventQuit {
			return true
		}
	}
	return false
}

// IsKeyPressed checks if a key went down in this batch.
func (b *Batch) IsKeyPressed(k Key) bool {
	for _, e := range b.events {
		if e.Type == EventKeyDown && e.Key == k {
			return true
		}
	}
	return false
}

// LastResize returns the final size of the resize events in the batch.
func (b *Batch) LastResize() (w, h int, ok bool) {
	for _, e := range b.events {
		if e.Type == EventWindowResize {
			w, h, ok = e.Width, e.Height, true
		}
	}
	return w, h, ok
}
