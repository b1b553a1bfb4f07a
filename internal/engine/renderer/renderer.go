// Package renderer draws the scene graph with OpenGL.
package renderer

import (
	"fmt"
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/orrery/internal/engine/camera"
	"github.com/Faultbox/orrery/internal/engine/framebuffer"
	"github.com/Faultbox/orrery/internal/engine/geometry"
	"github.com/Faultbox/orrery/internal/engine/lighting"
	"github.com/Faultbox/orrery/internal/engine/scene"
	"github.com/Faultbox/orrery/internal/engine/shader"
	"github.com/Faultbox/orrery/internal/engine/shader/shaders"
	"github.com/Faultbox/orrery/internal/logger"
)

// Config holds renderer configuration.
type Config struct {
	Width      int
	Height     int
	ClearColor lighting.Color // Shown when the skybox is unavailable
	MSAA       bool
}

// Renderer handles all OpenGL rendering.
type Renderer struct {
	config Config

	bodyProgram   *shader.Program
	skyboxProgram *shader.Program

	meshes   map[geometry.Sphere]*gpuMesh
	textures map[string]uint32
	white    uint32

	skybox *skybox
	lights lighting.PointLightBuffer

	droppedLightsLogged bool
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config:   cfg,
		meshes:   make(map[geometry.Sphere]*gpuMesh),
		textures: make(map[string]uint32),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LEQUAL)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	if cfg.MSAA {
		gl.Enable(gl.MULTISAMPLE)
	}
	bg := cfg.ClearColor.RGB()
	gl.ClearColor(bg[0], bg[1], bg[2], 1.0)

	var err error
	r.bodyProgram, err = shader.NewProgram(shaders.BodyVertexShader, shaders.BodyFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("body shader: %w", err)
	}
	r.skyboxProgram, err = shader.NewProgram(shaders.SkyboxVertexShader, shaders.SkyboxFragmentShader)
	if err != nil {
		r.bodyProgram.Delete()
		return nil, fmt.Errorf("skybox shader: %w", err)
	}

	r.white = uploadTexture(solidImage(0xffffffff))
	r.Resize(cfg.Width, cfg.Height)

	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer",
		zap.Int("meshes", len(r.meshes)),
		zap.Int("textures", len(r.textures)),
	)
	for _, m := range r.meshes {
		m.delete()
	}
	r.meshes = nil
	for _, tex := range r.textures {
		gl.DeleteTextures(1, &tex)
	}
	r.textures = nil
	if r.white != 0 {
		gl.DeleteTextures(1, &r.white)
		r.white = 0
	}
	if r.skybox != nil {
		r.skybox.delete()
		r.skybox = nil
	}
	r.bodyProgram.Delete()
	r.skyboxProgram.Delete()
}

// Resize handles drawable size changes.
func (r *Renderer) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Render draws one frame. Returns the number of meshes drawn.
func (r *Renderer) Render(s *scene.Scene, cam *camera.PerspectiveCamera) int {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	view := cam.ViewMatrix()
	proj := cam.ProjectionMatrix()
	viewProj := proj.Mul4(view)

	dropped := r.lights.Fill(s.Ambient, s.Lights(), view.Inv())
	if dropped > 0 && !r.droppedLightsLogged {
		logger.Warn("too many point lights, extra lights ignored",
			zap.Int("max", lighting.MaxPointLights),
			zap.Int("dropped", dropped),
		)
		r.droppedLightsLogged = true
	}

	drawn := r.drawBodies(s.Meshes(), viewProj, cam)

	if r.skybox != nil && s.Background != nil {
		r.drawSkybox(view, proj)
	}
	return drawn
}

func (r *Renderer) drawBodies(meshes []*scene.Mesh, viewProj mgl32.Mat4, cam *camera.PerspectiveCamera) int {
	p := r.bodyProgram
	p.Use()

	gl.UniformMatrix4fv(p.Uniform("uViewProj"), 1, false, &viewProj[0])
	gl.Uniform3f(p.Uniform("uCameraPos"), cam.Position.X(), cam.Position.Y(), cam.Position.Z())
	gl.Uniform3fv(p.Uniform("uAmbient"), 1, &r.lights.Ambient[0])
	gl.Uniform1i(p.Uniform("uLightCount"), int32(r.lights.Count))
	gl.Uniform3fv(p.Uniform("uLightPos"), lighting.MaxPointLights, &r.lights.Positions[0])
	gl.Uniform3fv(p.Uniform("uLightColor"), lighting.MaxPointLights, &r.lights.Colors[0])
	gl.Uniform1fv(p.Uniform("uLightRange"), lighting.MaxPointLights, &r.lights.Ranges[0])
	gl.Uniform1fv(p.Uniform("uLightDecay"), lighting.MaxPointLights, &r.lights.Decays[0])
	gl.Uniform1i(p.Uniform("uMap"), 0)
	gl.ActiveTexture(gl.TEXTURE0)

	drawn := 0
	for _, m := range meshes {
		if !m.Visible || m.Material == nil {
			continue
		}
		gm := r.meshFor(m.Geometry)

		model := m.ModelMatrix()
		gl.UniformMatrix4fv(p.Uniform("uModel"), 1, false, &model[0])

		color := m.Material.Color.RGB()
		emissive := m.Material.Emissive.RGB()
		gl.Uniform3fv(p.Uniform("uColor"), 1, &color[0])
		gl.Uniform3fv(p.Uniform("uEmissive"), 1, &emissive[0])
		gl.Uniform1f(p.Uniform("uRoughness"), m.Material.Roughness)

		gl.BindTexture(gl.TEXTURE_2D, r.textureFor(m.Material.Map))
		gm.draw()
		drawn++
	}
	gl.BindVertexArray(0)
	return drawn
}

// meshFor returns the GPU mesh for a sphere, uploading it on first use.
// Bodies of equal radius and tessellation share one buffer.
func (r *Renderer) meshFor(s geometry.Sphere) *gpuMesh {
	if gm, ok := r.meshes[s]; ok {
		return gm
	}
	gm := uploadMesh(s.Build())
	r.meshes[s] = gm
	logger.Debug("sphere uploaded",
		zap.Float32("radius", s.Radius),
		zap.Int("indices", int(gm.indexCount)),
	)
	return gm
}

// textureFor returns the texture for path, or the white fallback while the
// texture is loading or when it failed.
func (r *Renderer) textureFor(path string) uint32 {
	if tex, ok := r.textures[path]; ok && tex != 0 {
		return tex
	}
	return r.white
}

// SetTexture uploads a decoded image for path, replacing any previous one.
func (r *Renderer) SetTexture(path string, img *image.RGBA) {
	if old, ok := r.textures[path]; ok && old != 0 {
		gl.DeleteTextures(1, &old)
	}
	r.textures[path] = uploadTexture(img)
	logger.Debug("texture uploaded",
		zap.String("path", path),
		zap.Int("width", img.Rect.Dx()),
		zap.Int("height", img.Rect.Dy()),
	)
}

// SetSkyboxFaces uploads the six cube faces in +X, -X, +Y, -Y, +Z, -Z order.
func (r *Renderer) SetSkyboxFaces(faces [6]*image.RGBA) error {
	sb, err := newSkybox(faces)
	if err != nil {
		return err
	}
	if r.skybox != nil {
		r.skybox.delete()
	}
	r.skybox = sb
	logger.Info("skybox uploaded", zap.Int("face_size", faces[0].Rect.Dx()))
	return nil
}

// Capture renders a frame for a screenshot and returns it as bottom-up RGBA
// rows. A scale above 1 renders offscreen at that multiple of the drawable
// size; otherwise the current back buffer is read.
func (r *Renderer) Capture(s *scene.Scene, cam *camera.PerspectiveCamera, scale int) (pixels []byte, width, height int, err error) {
	if scale <= 1 {
		pixels, width, height = r.ReadPixels()
		return pixels, width, height, nil
	}

	var maxSide int32
	gl.GetIntegerv(gl.MAX_RENDERBUFFER_SIZE, &maxSide)
	width, height = framebuffer.ScaledSize(r.config.Width, r.config.Height, scale, int(maxSide))

	fb, err := framebuffer.New(width, height)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("offscreen capture: %w", err)
	}
	defer fb.Destroy()

	restore := fb.Bind()
	r.Render(s, cam)
	pixels = fb.ReadPixels()
	restore()

	logger.Debug("offscreen capture", zap.Int("width", width), zap.Int("height", height))
	return pixels, width, height, nil
}

// ReadPixels reads the back buffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() (pixels []byte, width, height int) {
	width, height = r.config.Width, r.config.Height
	pixels = make([]byte, width*height*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, width, height
}
