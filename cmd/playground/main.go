// Package main is the playground with an imgui controls panel.
package main

import (
	"runtime"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/terrain-playground/internal/engine/gpu/glgpu"
	"github.com/Faultbox/terrain-playground/internal/engine/input"
	"github.com/Faultbox/terrain-playground/internal/engine/ui"
	"github.com/Faultbox/terrain-playground/internal/logger"
	"github.com/Faultbox/terrain-playground/internal/playground"
	"github.com/Faultbox/terrain-playground/internal/playground/app"
	pgui "github.com/Faultbox/terrain-playground/internal/playground/ui"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	cfg := app.Start("Terrain Playground")
	defer logger.Sync()

	backend, err := ui.NewBackend(app.Title, cfg.Graphics.Width, cfg.Graphics.Height, logger.Named("ui"))
	if err != nil {
		logger.Fatal("failed to create window", zap.Error(err))
	}

	dev, err := app.NewDevice(cfg)
	if err != nil {
		logger.Fatal("failed to create GPU device", zap.Error(err))
	}

	// The imgui frontend shows the surface as a texture; nothing is blitted.
	surface := glgpu.NewSurface()
	defer surface.Release()

	cues := app.Cues(cfg)
	if cues != nil {
		defer cues.Close()
	}

	// The framebuffer has no size until the first frame; start from the
	// configured size and let the frame loop's Resize correct it.
	r, err := playground.New(cfg, app.Deps(dev, surface, cues, false))
	if err != nil {
		logger.Fatal("failed to start playground", zap.Error(err))
	}
	defer r.Close()

	panel := pgui.NewPanel(logger.Named("ui"))
	panel.OnModel = r.RequestModel

	last := time.Now()
	backend.Run(func() {
		now := time.Now()
		dt := now.Sub(last)
		last = now

		pgui.DrawScene(surface.TextureID())
		r.Apply(panel.Render(r.Controls(), r.Status().Scene.WireframeAvailable)...)

		w, h := ui.FramebufferSize()
		r.Resize(w, h)
		for _, k := range ui.PressedKeys() {
			if err := r.HandleEvent(input.KeyPress(k)); err != nil {
				logger.Fatal("scene error", zap.Error(err))
			}
		}

		// The backend redraws every frame, so a skipped frame needs no
		// explicit redraw request.
		if err := r.Frame(float64(dt.Microseconds()) / 1000); err != nil {
			logger.Fatal("frame error", zap.Error(err))
		}
		r.NeedsRedraw()

		if r.OverlayVisible() {
			pgui.DrawOverlay(r.Status())
		}
	})

	logger.Info("playground closed normally")
}
