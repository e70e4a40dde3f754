package renderer

import (
	"fmt"
	"math/rand"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/bohr/atom"
	"github.com/pthm-cable/bohr/components"
	"github.com/pthm-cable/bohr/config"
)

// ringModels holds the two torus meshes drawn for one shell.
type ringModels struct {
	ring rl.Model
	halo rl.Model
}

// SceneRenderer draws the atom, its glows and the starfield in 3D.
type SceneRenderer struct {
	cfg *config.Config

	material *materialShader
	sprite   *spriteShader
	textures TextureSet

	nucleonModel  rl.Model
	electronModel rl.Model
	rings         []ringModels

	stars   *Starfield
	ambient [3]float32
	lights  []Light

	Background  rl.Color
	initialized bool
}

// NewSceneRenderer creates a scene renderer. Call Init once the window exists.
func NewSceneRenderer(cfg *config.Config) *SceneRenderer {
	lc := cfg.Lighting
	return &SceneRenderer{
		cfg:        cfg,
		ambient:    linearColor(config.MustHex(lc.AmbientColor), float32(lc.AmbientIntensity)),
		Background: rl.Color(config.MustHex(cfg.Screen.Background)),
	}
}

// Init compiles shaders, synthesizes textures and builds the shared meshes.
func (s *SceneRenderer) Init(rng *rand.Rand) error {
	if s.initialized {
		return nil
	}

	var err error
	if s.material, err = newMaterialShader(); err != nil {
		return fmt.Errorf("material shader: %w", err)
	}
	if s.sprite, err = newSpriteShader(); err != nil {
		s.material.unload()
		return fmt.Errorf("sprite shader: %w", err)
	}
	s.textures = LoadTextures(s.cfg, rng)

	nc, ec := s.cfg.Nucleus, s.cfg.Electron
	s.nucleonModel = s.litModel(rl.GenMeshSphere(1, nc.Segments, nc.Segments))
	s.electronModel = s.litModel(rl.GenMeshSphere(1, ec.Segments, ec.Segments))

	s.stars = NewStarfield(GenerateStars(s.cfg.Stars, rng), float32(s.cfg.Stars.Size))

	s.initialized = true
	return nil
}

// litModel wraps a mesh in a model using the material shader and the
// procedural maps.
func (s *SceneRenderer) litModel(mesh rl.Mesh) rl.Model {
	model := rl.LoadModelFromMesh(mesh)
	model.Materials.Shader = s.material.shader
	rl.SetMaterialTexture(model.Materials, rl.MapAlbedo, s.textures.Emissive)
	rl.SetMaterialTexture(model.Materials, rl.MapNormal, s.textures.Normal)
	rl.SetMaterialTexture(model.Materials, rl.MapHeight, s.textures.Environment)
	return model
}

// SetAtom rebuilds the per-shell ring meshes for a new atom. It does nothing
// before Init.
func (s *SceneRenderer) SetAtom(a *atom.Atom) {
	s.unloadRings()
	if a == nil || !s.initialized {
		return
	}

	segments := s.cfg.Shells.RingSegments
	s.rings = make([]ringModels, len(a.Shells))
	query := a.Rings.Query()
	for query.Next() {
		shell, ring := query.Get()
		s.rings[shell.Index] = ringModels{
			ring: s.litModel(torusMesh(shell.Radius, ring.Tube, segments)),
			halo: s.haloModel(torusMesh(shell.Radius, ring.HaloTube, segments)),
		}
	}
}

func (s *SceneRenderer) haloModel(mesh rl.Mesh) rl.Model {
	model := rl.LoadModelFromMesh(mesh)
	model.Materials.Shader = s.sprite.shader
	return model
}

// Draw renders one frame of the scene into the current render target. proj
// replaces the projection BeginMode3D derives from the target size.
func (s *SceneRenderer) Draw(cam rl.Camera3D, proj rl.Matrix, a *atom.Atom) {
	if !s.initialized {
		return
	}

	rl.ClearBackground(s.Background)
	rl.BeginMode3D(cam)
	rl.SetMatrixProjection(proj)

	s.sprite.begin(1)
	s.stars.Draw(cam, s.textures.Star)
	s.sprite.end()

	if a != nil {
		s.lights = CollectLights(s.cfg.Lighting.Lights, a, s.cfg.Lighting.MaxLights)
		s.material.setFrame(cam.Position, s.ambient, s.lights)

		s.drawNucleons(a)
		s.drawElectrons(a)
		s.drawRings(a)
		s.drawGlows(cam, a)
	}

	rl.EndMode3D()
}

func (s *SceneRenderer) drawNucleons(a *atom.Atom) {
	query := a.NucleonSpheres.Query()
	for query.Next() {
		tr, body, mat, _ := query.Get()
		s.material.setMaterial(mat, true)
		rl.DrawModel(s.nucleonModel, position(tr), body.Radius, tint(mat))
	}
}

func (s *SceneRenderer) drawElectrons(a *atom.Atom) {
	query := a.ElectronSpheres.Query()
	for query.Next() {
		tr, body, mat, _ := query.Get()
		s.material.setMaterial(mat, true)
		rl.DrawModel(s.electronModel, position(tr), body.Radius, tint(mat))
	}
}

func (s *SceneRenderer) drawRings(a *atom.Atom) {
	query := a.Rings.Query()
	for query.Next() {
		shell, ring := query.Get()
		if shell.Index >= len(s.rings) {
			continue
		}
		models := s.rings[shell.Index]
		orient := rl.MatrixMultiply(rl.MatrixRotateX(shell.TiltX), rl.MatrixRotateZ(shell.TiltZ))
		models.ring.Transform = orient
		models.halo.Transform = orient

		mat := components.Material{
			Base:              ring.Color,
			Emissive:          ring.Emissive,
			EmissiveIntensity: ring.EmissiveGain,
			Roughness:         ring.Roughness,
			Metalness:         ring.Metalness,
			EnvIntensity:      ring.EnvIntensity,
			Opacity:           ring.Opacity,
		}
		s.material.setMaterial(&mat, false)
		rl.DrawModel(models.ring, rl.Vector3{}, 1, rl.Color(ring.Color))

		// Halo is additive and must not hide what lies behind it
		rl.DisableDepthMask()
		rl.BeginBlendMode(rl.BlendAdditive)
		rl.SetShaderValue(s.sprite.shader, s.sprite.gainLoc, []float32{1}, rl.ShaderUniformFloat)
		halo := ring.Emissive
		halo.A = uint8(ring.HaloOpacity * 255)
		rl.DrawModel(models.halo, rl.Vector3{}, 1, rl.Color(halo))
		rl.EndBlendMode()
		rl.EnableDepthMask()
	}
}

// drawGlows blends sprites additively in encoded space; see encode.glsl.
func (s *SceneRenderer) drawGlows(cam rl.Camera3D, a *atom.Atom) {
	rl.DisableDepthMask()
	s.sprite.begin(1)
	rl.BeginBlendMode(rl.BlendAdditive)

	query := a.Glows.Query()
	for query.Next() {
		tr, glow := query.Get()
		tex := s.textures.ElectronGlow
		if glow.Sprite == components.SpriteNucleus {
			tex = s.textures.NucleusGlow
		}
		c := glow.Tint
		c.A = uint8(glow.Opacity * 255)
		rl.DrawBillboard(cam, tex, position(tr), glow.Scale, rl.Color(c))
	}

	rl.EndBlendMode()
	s.sprite.end()
	rl.EnableDepthMask()
}

// LightCount returns how many lights the last frame used.
func (s *SceneRenderer) LightCount() int { return len(s.lights) }

// StarCount returns the number of background stars.
func (s *SceneRenderer) StarCount() int {
	if s.stars == nil {
		return 0
	}
	return s.stars.Len()
}

func (s *SceneRenderer) unloadRings() {
	for _, r := range s.rings {
		rl.UnloadModel(r.ring)
		rl.UnloadModel(r.halo)
	}
	s.rings = nil
}

// Unload frees GPU resources.
func (s *SceneRenderer) Unload() {
	if !s.initialized {
		return
	}
	s.unloadRings()
	rl.UnloadModel(s.nucleonModel)
	rl.UnloadModel(s.electronModel)
	s.textures.Unload()
	s.material.unload()
	s.sprite.unload()
	s.initialized = false
}

func position(tr *components.Transform) rl.Vector3 {
	return rl.Vector3{X: tr.X, Y: tr.Y, Z: tr.Z}
}

func tint(mat *components.Material) rl.Color {
	c := mat.Base
	c.A = 255
	return rl.Color(c)
}
