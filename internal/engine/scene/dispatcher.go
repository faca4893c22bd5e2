package scene

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/terrain-playground/internal/engine/gpu"
	"github.com/Faultbox/terrain-playground/internal/engine/scene/shaders"
)

// Kind tags the active scene.
type Kind int

const (
	KindNone Kind = iota
	KindObj
	KindTerrain
)

func (k Kind) String() string {
	switch k {
	case KindObj:
		return "obj"
	case KindTerrain:
		return "terrain"
	}
	return "none"
}

// ParseKind parses "obj" or "terrain".
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "obj":
		return KindObj, nil
	case "terrain":
		return KindTerrain, nil
	}
	return KindNone, fmt.Errorf("unknown scene %q (want obj or terrain)", s)
}

// Dispatcher holds exactly one scene and forwards the frame operations to
// it. Switching releases the old scene before building the new one.
type Dispatcher struct {
	kind    Kind
	obj     *ObjScene
	terrain *TerrainScene

	dev     gpu.Device
	cfg     gpu.SurfaceConfig
	samples int
	opts    Options
	log     *zap.Logger
}

// NewDispatcher returns an empty dispatcher. Call Switch to build a scene.
func NewDispatcher(dev gpu.Device, cfg gpu.SurfaceConfig, sampleCount int, opts Options) *Dispatcher {
	if opts.Shaders.TerrainVertex == "" {
		opts.Shaders = shaders.Embedded()
	}
	return &Dispatcher{
		dev:     dev,
		cfg:     cfg,
		samples: sampleCount,
		opts:    opts,
		log:     opts.logger(),
	}
}

// Kind returns the active scene kind, KindNone when empty.
func (d *Dispatcher) Kind() Kind { return d.kind }

// Options returns the options scenes are built with.
func (d *Dispatcher) Options() Options { return d.opts }

// SetOptions replaces the build options. They apply from the next Switch
// or Rebuild.
func (d *Dispatcher) SetOptions(opts Options) {
	if opts.Logger == nil {
		opts.Logger = d.log
	}
	d.opts = opts
}

// Switch releases the active scene and builds one of kind k. On failure
// the dispatcher is left empty.
func (d *Dispatcher) Switch(k Kind) error {
	d.Release()

	switch k {
	case KindObj:
		s, err := NewObjScene(d.dev, d.cfg, d.samples, d.opts)
		if err != nil {
			return err
		}
		d.kind, d.obj = k, s
	case KindTerrain:
		s, err := NewTerrainScene(d.dev, d.cfg, d.samples, d.opts)
		if err != nil {
			return err
		}
		d.kind, d.terrain = k, s
	default:
		panic(fmt.Sprintf("scene: switch to invalid kind %d", k))
	}
	d.log.Info("scene switched", zap.Stringer("scene", k))
	return nil
}

// Rebuild recreates the active scene with the current options. When the
// options carry custom shaders that fail to build, it retries with the
// embedded shaders and keeps those.
func (d *Dispatcher) Rebuild() error {
	k := d.kind
	if k == KindNone {
		return nil
	}
	err := d.Switch(k)
	if err == nil || d.opts.Shaders.IsEmbedded() {
		return err
	}
	d.log.Error("custom shaders failed, falling back to embedded", zap.String("dir", d.opts.Shaders.Dir), zap.Error(err))
	d.opts.Shaders = shaders.Embedded()
	return d.Switch(k)
}

// Resize records the new surface configuration and resizes the active
// scene's targets.
func (d *Dispatcher) Resize(width, height int, cfg gpu.SurfaceConfig) error {
	if width == 0 || height == 0 {
		return nil
	}
	d.cfg = cfg
	switch d.kind {
	case KindObj:
		return d.obj.Resize(width, height, d.dev, cfg)
	case KindTerrain:
		return d.terrain.Resize(width, height, d.dev, cfg)
	}
	return nil
}

// Render draws the active scene. An empty dispatcher draws nothing.
func (d *Dispatcher) Render(v View, target gpu.Texture, aspect float32, q gpu.Queue) {
	switch d.kind {
	case KindObj:
		d.obj.Render(v, target, aspect, d.dev, q)
	case KindTerrain:
		d.terrain.Render(v, target, aspect, d.dev, q)
	}
}

// Stats describes the active scene.
func (d *Dispatcher) Stats() Stats {
	switch d.kind {
	case KindObj:
		return d.obj.Stats()
	case KindTerrain:
		return d.terrain.Stats()
	}
	return Stats{}
}

// Obj returns the active Obj scene, or nil.
func (d *Dispatcher) Obj() *ObjScene { return d.obj }

// Terrain returns the active terrain scene, or nil.
func (d *Dispatcher) Terrain() *TerrainScene { return d.terrain }

// Release frees the active scene and leaves the dispatcher empty.
func (d *Dispatcher) Release() {
	switch d.kind {
	case KindObj:
		d.obj.Release()
	case KindTerrain:
		d.terrain.Release()
	}
	d.kind, d.obj, d.terrain = KindNone, nil, nil
}
