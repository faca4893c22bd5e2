package debug

// FrameTimer tracks frame time and a frames-per-second figure refreshed
// every half second.
type FrameTimer struct {
	frames    int
	fps       float64
	frameTime float64 // ms
	window    float64 // seconds since last FPS update
	accum     int
}

// Update records one frame that took deltaMs milliseconds.
func (f *FrameTimer) Update(deltaMs float64) {
	f.frames++
	f.frameTime = deltaMs
	f.accum++
	f.window += deltaMs / 1000.0

	if f.window >= 0.5 {
		f.fps = float64(f.accum) / f.window
		f.accum = 0
		f.window = 0
	}
}

// FPS returns the last computed frame rate.
func (f *FrameTimer) FPS() float64 { return f.fps }

// FrameTime returns the last frame's duration in milliseconds.
func (f *FrameTimer) FrameTime() float64 { return f.frameTime }

// Frames returns the number of frames recorded.
func (f *FrameTimer) Frames() int { return f.frames }
