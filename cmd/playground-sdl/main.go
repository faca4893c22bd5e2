// Package main is the keyboard-only playground on a plain SDL window.
//
//	1 / 2        object / terrain scene
//	arrows       rotate about X (up/down) and Z (left/right)
//	PgUp / PgDn  rotate about Y
//	+ / -        zoom
//	W            wireframe
//	F11 / F12    screenshot / status in the title bar
//	Esc          quit
package main

import (
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/terrain-playground/internal/engine/gpu/glgpu"
	"github.com/Faultbox/terrain-playground/internal/engine/input"
	"github.com/Faultbox/terrain-playground/internal/engine/input/sdlinput"
	"github.com/Faultbox/terrain-playground/internal/engine/window"
	"github.com/Faultbox/terrain-playground/internal/logger"
	"github.com/Faultbox/terrain-playground/internal/playground"
	"github.com/Faultbox/terrain-playground/internal/playground/app"
)

// frameInterval bounds the wait while a skipped frame is pending.
const frameInterval = 16 * time.Millisecond

func main() {
	cfg := app.Start("Terrain Playground (SDL)")
	defer logger.Sync()

	win, err := window.New(window.Config{
		Title:      app.Title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	}, logger.Named("window"))
	if err != nil {
		logger.Fatal("failed to create window", zap.Error(err))
	}
	defer win.Close()

	dev, err := app.NewDevice(cfg)
	if err != nil {
		logger.Fatal("failed to create GPU device", zap.Error(err))
	}

	surface := glgpu.NewSurface()
	surface.BlitToWindow = true
	surface.OnPresent = win.SwapBuffers
	defer surface.Release()

	cues := app.Cues(cfg)
	if cues != nil {
		defer cues.Close()
	}

	cfg.Graphics.Width, cfg.Graphics.Height = win.DrawableSize()
	r, err := playground.New(cfg, app.Deps(dev, surface, cues, true))
	if err != nil {
		logger.Fatal("failed to start playground", zap.Error(err))
	}
	defer r.Close()

	pump := sdlinput.NewPump()
	last := time.Now()
	for !r.ShouldQuit() {
		if err := frame(r, win, &last); err != nil {
			logger.Fatal("frame error", zap.Error(err))
		}

		// A skipped frame redraws after at most one frame interval;
		// otherwise sleep until input.
		var batch *input.Batch
		if r.NeedsRedraw() {
			batch = pump.WaitTimeout(frameInterval)
		} else {
			batch = pump.Wait()
		}
		if err := r.HandleBatch(batch); err != nil {
			logger.Fatal("scene error", zap.Error(err))
		}
		// Pixel size can differ from the event's point size on HiDPI.
		if _, _, ok := batch.LastResize(); ok {
			r.Resize(win.DrawableSize())
		}
	}

	logger.Info("playground closed normally")
}

func frame(r *playground.Runner, win *window.Window, last *time.Time) error {
	now := time.Now()
	dt := now.Sub(*last)
	*last = now

	if err := r.Frame(float64(dt.Microseconds()) / 1000); err != nil {
		return err
	}
	win.SetTitle(r.Status().Title(app.Title))
	return nil
}
