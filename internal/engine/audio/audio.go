// Package audio plays short sound cues.
package audio

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
)

// DefaultSampleRate is the speaker sample rate.
const DefaultSampleRate = beep.SampleRate(44100)

// Manager decodes cues once and mixes any number of overlapping plays.
type Manager struct {
	mu sync.RWMutex

	initialized bool
	sampleRate  beep.SampleRate
	volume      float64

	cues  map[string]*beep.Buffer
	mixer *beep.Mixer
}

// New creates a manager at full volume. Cues can be loaded before Init.
func New() *Manager {
	return &Manager{
		sampleRate: DefaultSampleRate,
		volume:     1.0,
		cues:       make(map[string]*beep.Buffer),
		mixer:      &beep.Mixer{},
	}
}

// Init opens the audio device.
func (m *Manager) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}
	if err := speaker.Init(m.sampleRate, m.sampleRate.N(time.Second/30)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(m.mixer)
	m.initialized = true
	return nil
}

// Close stops playback and releases the device.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	m.initialized = false
}

// IsInitialized returns whether the audio device is open.
func (m *Manager) IsInitialized() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.initialized
}

// SetVolume sets the cue volume (0.0 to 1.0).
func (m *Manager) SetVolume(vol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.volume = clamp(vol, 0, 1)
}

// Volume returns the cue volume.
func (m *Manager) Volume() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.volume
}

// Load decodes WAV data into a named cue, resampled to the speaker rate.
func (m *Manager) Load(name string, data []byte) error {
	streamer, format, err := wav.Decode(io.NopCloser(bytes.NewReader(data)))
	if err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	defer streamer.Close()

	var src beep.Streamer = streamer
	if format.SampleRate != m.sampleRate {
		src = beep.Resample(4, format.SampleRate, m.sampleRate, streamer)
	}
	format.SampleRate = m.sampleRate
	buf := beep.NewBuffer(format)
	buf.Append(src)

	m.mu.Lock()
	m.cues[name] = buf
	m.mu.Unlock()
	return nil
}

// Has reports whether a cue is loaded.
func (m *Manager) Has(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.cues[name]
	return ok
}

// Play starts a cue. It is a no-op before Init or when muted.
func (m *Manager) Play(name string) error {
	m.mu.RLock()
	buf, ok := m.cues[name]
	ready := m.initialized
	vol := m.volume
	m.mu.RUnlock()

	if !ok {
		return fmt.Errorf("unknown cue %q", name)
	}
	if !ready || vol <= 0 {
		return nil
	}

	s := &effects.Volume{
		Streamer: buf.Streamer(0, buf.Len()),
		Base:     10,
		Volume:   volumeToDb(vol) / 20, // 10^(dB/20) is the linear gain
	}
	speaker.Lock()
	m.mixer.Add(s)
	speaker.Unlock()
	return nil
}

// volumeToDb converts a linear 0-1 volume to decibels: 1 is 0 dB, 0.5 is
// about -6 dB.
func volumeToDb(vol float64) float64 {
	if vol <= 0 {
		return -100
	}
	return 20 * math.Log10(vol)
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
