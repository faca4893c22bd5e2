package sdlinput

import (
	"testing"
	"time"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/terrain-playground/internal/engine/input"
)

func TestTranslateKey(t *testing.T) {
	tests := []struct {
		sym  sdl.Keycode
		want input.Key
	}{
		{sdl.K_1, input.Key1},
		{sdl.K_KP_2, input.Key2},
		{sdl.K_F11, input.KeyF11},
		{sdl.K_EQUALS, input.KeyPlus},
		{sdl.K_KP_MINUS, input.KeyMinus},
		{sdl.K_PAGEDOWN, input.KeyPageDown},
		{sdl.K_w, input.KeyW},
		{sdl.K_q, input.KeyUnknown},
	}
	for _, tt := range tests {
		if got := TranslateKey(tt.sym); got != tt.want {
			t.Errorf("TranslateKey(%d) = %v, want %v", tt.sym, got, tt.want)
		}
	}
}

func TestTranslate(t *testing.T) {
	tests := []struct {
		name string
		ev   sdl.Event
		want input.Event
	}{
		{"quit", &sdl.QuitEvent{Type: sdl.QUIT}, input.Event{Type: input.EventQuit}},
		{"resize", &sdl.WindowEvent{Type: sdl.WINDOWEVENT, Event: sdl.WINDOWEVENT_RESIZED, Data1: 640, Data2: 480},
			input.Resize(640, 480)},
		{"shown", &sdl.WindowEvent{Type: sdl.WINDOWEVENT, Event: sdl.WINDOWEVENT_SHOWN}, input.Event{}},
		{"key down", &sdl.KeyboardEvent{Type: sdl.KEYDOWN, Keysym: sdl.Keysym{Sym: sdl.K_F12}},
			input.KeyPress(input.KeyF12)},
		{"key repeat", &sdl.KeyboardEvent{Type: sdl.KEYDOWN, Repeat: 1, Keysym: sdl.Keysym{Sym: sdl.K_LEFT}},
			input.Event{Type: input.EventKeyDown, Key: input.KeyLeft, Repeat: true}},
		{"key up", &sdl.KeyboardEvent{Type: sdl.KEYUP, Keysym: sdl.Keysym{Sym: sdl.K_ESCAPE}},
			input.Event{Type: input.EventKeyUp, Key: input.KeyEscape}},
		{"mouse", &sdl.MouseMotionEvent{Type: sdl.MOUSEMOTION}, input.Event{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Translate(tt.ev); got != tt.want {
				t.Errorf("Translate() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestTimeoutMillis(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want int
	}{
		{16 * time.Millisecond, 16},
		{16600 * time.Microsecond, 16},
		{500 * time.Microsecond, 1},
		{0, 1},
		{-time.Second, 1},
	}
	for _, tt := range tests {
		if got := timeoutMillis(tt.d); got != tt.want {
			t.Errorf("timeoutMillis(%v) = %d, want %d", tt.d, got, tt.want)
		}
	}
}
