// Package app builds the solar-system scene and runs the viewer loop.
package app

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/orrery/internal/catalog"
	"github.com/Faultbox/orrery/internal/celestial"
	"github.com/Faultbox/orrery/internal/config"
	"github.com/Faultbox/orrery/internal/engine/camera"
	"github.com/Faultbox/orrery/internal/engine/lighting"
	"github.com/Faultbox/orrery/internal/engine/picking"
	"github.com/Faultbox/orrery/internal/engine/scene"
	"github.com/Faultbox/orrery/internal/logger"
)

// ErrLayoutMismatch is returned when the catalog is empty or the ring layout
// does not yield one position per catalog entry.
var ErrLayoutMismatch = errors.New("layout does not match catalog")

// AmbientColor lights every body uniformly.
const AmbientColor lighting.Color = 0x111111

// cameraLights are point lights that move with the camera, in camera space.
var cameraLights = []struct {
	color                      lighting.Color
	intensity, distance, decay float32
	position                   mgl32.Vec3
}{
	{lighting.White, 2, 70, 2, mgl32.Vec3{10, 10, -28}},
	{lighting.White, 1, 1000, 2, mgl32.Vec3{-30, 30, -150}},
}

// SceneContext holds everything the viewer renders and updates: the scene
// graph, camera, controls and bodies. One value is created at startup and
// passed to whatever needs it. It does not touch OpenGL.
type SceneContext struct {
	Scene    *scene.Scene
	Camera   *camera.PerspectiveCamera
	Controls *camera.OrbitControls

	cfg         *config.Config
	rng         celestial.Rand
	bodies      []*celestial.Body
	highlighter *picking.Highlighter

	pointer      mgl32.Vec2
	pointerValid bool

	log *zap.Logger
}

// NewSceneContext sets up the camera, controls, lights and skybox, then
// populates the scene from entries. rng may be nil to use the global source.
func NewSceneContext(cfg *config.Config, entries []catalog.Entry, rng celestial.Rand) (*SceneContext, error) {
	sc := &SceneContext{
		Scene:       scene.New(),
		cfg:         cfg,
		rng:         rng,
		highlighter: picking.NewHighlighter(lighting.Color(cfg.Scene.HighlightColor)),
		log:         logger.Named("scene"),
	}

	cc := cfg.Camera
	sc.Camera = camera.NewPerspectiveCamera(cc.FOV, float32(cfg.Graphics.Width)/float32(cfg.Graphics.Height), cc.Near, cc.Far)
	sc.Camera.Position = mgl32.Vec3{0, 0, cc.Distance}
	sc.Camera.Target = mgl32.Vec3{}
	sc.Controls = newControls(sc.Camera, cfg.Controls)
	sc.Controls.ViewportHeight = float32(cfg.Graphics.Height)

	sc.Scene.Background = scene.NewSkybox(cfg.Assets.SkyboxPrefix, cfg.Assets.SkyboxSuffix)
	sc.Scene.Ambient = lighting.AmbientLight{Color: AmbientColor, Intensity: 1}
	for _, l := range cameraLights {
		pl := lighting.NewPointLight(l.color, l.intensity, l.distance, l.decay)
		pl.Position = l.position
		pl.AttachedToCamera = true
		sc.Scene.AddLight(pl)
	}

	positions, err := layoutFor(cfg.Scene.RingRadius, len(entries))
	if err != nil {
		return nil, err
	}
	bodies, err := sc.buildBodies(entries)
	if err != nil {
		return nil, err
	}
	sc.attach(bodies, positions)

	sc.log.Info("scene populated",
		zap.Int("planets", len(bodies)),
		zap.Int("meshes", sc.Scene.Len()),
	)
	return sc, nil
}

func newControls(cam *camera.PerspectiveCamera, cc config.ControlsConfig) *camera.OrbitControls {
	oc := camera.NewOrbitControls(cam)
	oc.EnablePan = cc.EnablePan
	oc.EnableZoom = cc.EnableZoom
	oc.EnableDamping = cc.EnableDamping
	oc.DampingFactor = cc.DampingFactor
	oc.RotateSpeed = cc.RotateSpeed
	oc.ZoomSpeed = cc.ZoomSpeed
	oc.MinDistance = cc.MinDistance
	oc.MaxDistance = cc.MaxDistance
	oc.MinPolarAngle = cc.MinPolarAngle
	oc.MaxPolarAngle = cc.MaxPolarAngle
	oc.MinAzimuthAngle = cc.MinAzimuth
	oc.MaxAzimuthAngle = cc.MaxAzimuth
	// Settle onto the constrained orbit before recording the reset state
	oc.Update()
	oc.SaveState()
	return oc
}

// buildBodies creates one planet per entry with its moons. Sizes are
// rescaled; moon sizes are used as given.
func (sc *SceneContext) buildBodies(entries []catalog.Entry) ([]*celestial.Body, error) {
	scfg := sc.cfg.Scene
	opts := []celestial.Option{
		celestial.WithSegments(scfg.SphereSegments),
		celestial.WithRoughness(scfg.Roughness),
	}
	if sc.rng != nil {
		opts = append(opts, celestial.WithRand(sc.rng))
	}

	bodies := make([]*celestial.Body, 0, len(entries))
	for _, e := range entries {
		size := celestial.Rescale(e.Size, scfg.BaseSize, scfg.ScalePercentage)
		body, err := celestial.NewBody(e.Name, size, e.Texture, opts...)
		if err != nil {
			return nil, fmt.Errorf("creating %s: %w", e.Name, err)
		}
		for _, m := range e.Moons {
			if _, err := body.AddMoon(m.Name, m.Size, m.Distance, m.Texture, m.Orbit.Radius, m.Orbit.Theta, m.Orbit.Phi); err != nil {
				return nil, fmt.Errorf("creating moon %s of %s: %w", m.Name, e.Name, err)
			}
		}
		bodies = append(bodies, body)
	}
	return bodies, nil
}

// attach adds bodies to the scene; body i goes to positions[i].
func (sc *SceneContext) attach(bodies []*celestial.Body, positions []mgl32.Vec3) {
	for i, b := range bodies {
		b.AddToScene(sc.Scene, positions[i])
	}
	sc.bodies = bodies
}

// layoutFor returns the ring positions for n bodies and checks there is
// exactly one per body.
func layoutFor(radius float32, n int) ([]mgl32.Vec3, error) {
	if n == 0 {
		return nil, fmt.Errorf("%w: catalog is empty", ErrLayoutMismatch)
	}
	positions := celestial.RingLayout(radius, n)
	if len(positions) != n {
		return nil, fmt.Errorf("%w: %d positions for %d entries", ErrLayoutMismatch, len(positions), n)
	}
	return positions, nil
}

// Reload replaces all bodies with ones built from entries. On error the
// current bodies are kept.
func (sc *SceneContext) Reload(entries []catalog.Entry) error {
	positions, err := layoutFor(sc.cfg.Scene.RingRadius, len(entries))
	if err != nil {
		return err
	}
	bodies, err := sc.buildBodies(entries)
	if err != nil {
		return err
	}

	sc.highlighter.Clear()
	sc.Scene.ClearMeshes()
	sc.attach(bodies, positions)

	sc.log.Info("scene rebuilt",
		zap.Int("planets", len(bodies)),
		zap.Int("meshes", sc.Scene.Len()),
	)
	return nil
}

// Bodies returns the planets in catalog order.
func (sc *SceneContext) Bodies() []*celestial.Body {
	return sc.bodies
}

// Textures returns each texture path used by the bodies, once, in scene order.
func (sc *SceneContext) Textures() []string {
	seen := make(map[string]bool)
	var paths []string
	for _, m := range sc.Scene.Meshes() {
		p := m.Material.Map
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		paths = append(paths, p)
	}
	return paths
}

// Resize updates the camera for a new viewport size. Called on every resize.
func (sc *SceneContext) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	sc.Camera.SetAspect(width, height)
	sc.Controls.ViewportHeight = float32(height)
	sc.log.Debug("viewport resized", zap.Int("width", width), zap.Int("height", height))
}

// PointerMove records the pointer in normalized device coordinates.
func (sc *SceneContext) PointerMove(x, y, width, height float32) {
	if width <= 0 || height <= 0 {
		return
	}
	sc.pointer = picking.ScreenToNDC(x, y, width, height)
	sc.pointerValid = true
}

// PointerLeave forgets the pointer so nothing stays highlighted.
func (sc *SceneContext) PointerLeave() {
	sc.pointerValid = false
}

// Highlighted returns the mesh under the pointer as of the last Update.
func (sc *SceneContext) Highlighted() *scene.Mesh {
	return sc.highlighter.Current()
}

// PointerDown rotates the azimuth bounds of the controls when a body is
// highlighted. Returns true if it did.
func (sc *SceneContext) PointerDown() bool {
	target := sc.highlighter.Current()
	if target == nil {
		return false
	}

	step := sc.cfg.Controls.AzimuthStep
	sc.Controls.RotateAzimuthBounds(step)

	sc.log.Debug("body selected",
		zap.String("body", target.Name),
		zap.Float32("camera_distance", sc.Camera.Position.Sub(target.Position).Len()),
		zap.Float32("origin_distance", target.Position.Len()),
		zap.Float32("min_azimuth", sc.Controls.MinAzimuthAngle),
		zap.Float32("max_azimuth", sc.Controls.MaxAzimuthAngle),
	)
	return true
}

// Pan moves the controls target for a drag of (dx, dy) pixels. It has no
// effect unless controls.enable_pan is set.
func (sc *SceneContext) Pan(dx, dy float32) {
	sc.Controls.HandlePan(dx, dy)
}

// Update advances one frame: controls, then body animation, then picking.
// Everything is mutated before the caller renders.
func (sc *SceneContext) Update(dt float64) {
	sc.Controls.Update()

	if sc.cfg.Scene.Animate {
		for _, b := range sc.bodies {
			b.Animate(dt)
		}
	}

	if !sc.cfg.Scene.Picking {
		return
	}
	if !sc.pointerValid {
		sc.highlighter.Update(nil)
		return
	}
	ray := picking.FromCamera(sc.pointer, sc.Camera)
	sc.highlighter.Update(ray.IntersectMeshes(sc.Scene.Meshes()))
}
