package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/bohr/components"
)

// materialShader wraps the lit PBR shader and its uniform locations.
type materialShader struct {
	shader rl.Shader

	viewPosLoc      int32
	ambientLoc      int32
	emissiveLoc     int32
	roughnessLoc    int32
	metalnessLoc    int32
	normalScaleLoc  int32
	clearcoatLoc    int32
	clearcoatRLoc   int32
	envIntensityLoc int32
	opacityLoc      int32
	useMapsLoc      int32

	lightCountLoc   int32
	lightPosLoc     int32
	lightColorLoc   int32
	lightFalloffLoc int32
}

func newMaterialShader() (*materialShader, error) {
	shader, err := loadShader("pbr.vs", "pbr.fs")
	if err != nil {
		return nil, err
	}

	// Route the environment map through the height map slot so DrawModel binds it
	shader.UpdateLocation(rl.ShaderLocMapHeight, rl.GetShaderLocation(shader, "envMap"))

	return &materialShader{
		shader:          shader,
		viewPosLoc:      rl.GetShaderLocation(shader, "viewPos"),
		ambientLoc:      rl.GetShaderLocation(shader, "ambient"),
		emissiveLoc:     rl.GetShaderLocation(shader, "emissive"),
		roughnessLoc:    rl.GetShaderLocation(shader, "roughness"),
		metalnessLoc:    rl.GetShaderLocation(shader, "metalness"),
		normalScaleLoc:  rl.GetShaderLocation(shader, "normalScale"),
		clearcoatLoc:    rl.GetShaderLocation(shader, "clearcoat"),
		clearcoatRLoc:   rl.GetShaderLocation(shader, "clearcoatRoughness"),
		envIntensityLoc: rl.GetShaderLocation(shader, "envIntensity"),
		opacityLoc:      rl.GetShaderLocation(shader, "opacity"),
		useMapsLoc:      rl.GetShaderLocation(shader, "useMaps"),
		lightCountLoc:   rl.GetShaderLocation(shader, "lightCount"),
		lightPosLoc:     rl.GetShaderLocation(shader, "lightPos"),
		lightColorLoc:   rl.GetShaderLocation(shader, "lightColor"),
		lightFalloffLoc: rl.GetShaderLocation(shader, "lightFalloff"),
	}, nil
}

// setFrame uploads per-frame uniforms: eye position, ambient term and lights.
func (m *materialShader) setFrame(eye rl.Vector3, ambient [3]float32, lights []Light) {
	rl.SetShaderValue(m.shader, m.viewPosLoc, []float32{eye.X, eye.Y, eye.Z}, rl.ShaderUniformVec3)
	rl.SetShaderValue(m.shader, m.ambientLoc, ambient[:], rl.ShaderUniformVec3)
	rl.SetShaderValue(m.shader, m.lightCountLoc, []float32{float32(len(lights))}, rl.ShaderUniformFloat)
	if len(lights) == 0 {
		return
	}
	pos, col, falloff := flatten(lights)
	n := int32(len(lights))
	rl.SetShaderValueV(m.shader, m.lightPosLoc, pos, rl.ShaderUniformVec3, n)
	rl.SetShaderValueV(m.shader, m.lightColorLoc, col, rl.ShaderUniformVec3, n)
	rl.SetShaderValueV(m.shader, m.lightFalloffLoc, falloff, rl.ShaderUniformVec2, n)
}

// setMaterial uploads per-draw surface parameters.
func (m *materialShader) setMaterial(mat *components.Material, useMaps bool) {
	emissive := linearColor(mat.Emissive, mat.EmissiveIntensity)
	maps := float32(0)
	if useMaps {
		maps = 1
	}
	rl.SetShaderValue(m.shader, m.emissiveLoc, emissive[:], rl.ShaderUniformVec3)
	rl.SetShaderValue(m.shader, m.roughnessLoc, []float32{mat.Roughness}, rl.ShaderUniformFloat)
	rl.SetShaderValue(m.shader, m.metalnessLoc, []float32{mat.Metalness}, rl.ShaderUniformFloat)
	rl.SetShaderValue(m.shader, m.normalScaleLoc, []float32{mat.NormalScale}, rl.ShaderUniformFloat)
	rl.SetShaderValue(m.shader, m.clearcoatLoc, []float32{mat.Clearcoat}, rl.ShaderUniformFloat)
	rl.SetShaderValue(m.shader, m.clearcoatRLoc, []float32{mat.ClearcoatRoughness}, rl.ShaderUniformFloat)
	rl.SetShaderValue(m.shader, m.envIntensityLoc, []float32{mat.EnvIntensity}, rl.ShaderUniformFloat)
	rl.SetShaderValue(m.shader, m.opacityLoc, []float32{mat.Opacity}, rl.ShaderUniformFloat)
	rl.SetShaderValue(m.shader, m.useMapsLoc, []float32{maps}, rl.ShaderUniformFloat)
}

func (m *materialShader) unload() {
	rl.UnloadShader(m.shader)
}

// spriteShader wraps the unlit shader used for stars, glows and halos.
type spriteShader struct {
	shader        rl.Shader
	gainLoc       int32
	colDiffuseLoc int32
}

func newSpriteShader() (*spriteShader, error) {
	shader, err := loadShader("unlit.vs", "unlit.fs")
	if err != nil {
		return nil, err
	}
	return &spriteShader{
		shader:        shader,
		gainLoc:       rl.GetShaderLocation(shader, "gain"),
		colDiffuseLoc: rl.GetShaderLocation(shader, "colDiffuse"),
	}, nil
}

// begin enters shader mode for batched billboards. Batched draws never set
// colDiffuse, so it is reset to white here.
func (s *spriteShader) begin(gain float32) {
	rl.BeginShaderMode(s.shader)
	rl.SetShaderValue(s.shader, s.colDiffuseLoc, []float32{1, 1, 1, 1}, rl.ShaderUniformVec4)
	rl.SetShaderValue(s.shader, s.gainLoc, []float32{gain}, rl.ShaderUniformFloat)
}

func (s *spriteShader) end() {
	rl.EndShaderMode()
}

func (s *spriteShader) unload() {
	rl.UnloadShader(s.shader)
}
