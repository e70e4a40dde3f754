package renderer

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/bohr/config"
)

// blurIterations is the number of separable blur passes; each pass doubles
// the sample spacing so the glow spreads wider.
const blurIterations = 3

// Composer renders the scene into an offscreen target, extracts bright
// regions, blurs them and composites the result with tone mapping.
type Composer struct {
	scene  rl.RenderTexture2D
	bright rl.RenderTexture2D
	pingA  rl.RenderTexture2D
	pingB  rl.RenderTexture2D

	brightShader    rl.Shader
	thresholdLoc    int32
	blurShader      rl.Shader
	directionLoc    int32
	compositeShader rl.Shader
	bloomTexLoc     int32
	strengthLoc     int32
	exposureLoc     int32
	bloomOnLoc      int32

	// Tunables, read every frame
	Enabled   bool
	Threshold float32
	Strength  float32
	Radius    float32
	Exposure  float32

	width, height int32
	downscale     int32
	initialized   bool
}

// NewComposer creates a composer from configuration. Call Init once the
// window exists.
func NewComposer(bloom config.BloomConfig, tone config.ToneConfig) *Composer {
	return &Composer{
		Enabled:   bloom.Enabled,
		Threshold: float32(bloom.Threshold),
		Strength:  float32(bloom.Strength),
		Radius:    float32(bloom.Radius),
		Exposure:  float32(tone.Exposure),
		downscale: int32(max(bloom.Downscale, 1)),
	}
}

// Init compiles the post-process shaders and allocates targets of the given
// size in framebuffer pixels.
func (c *Composer) Init(width, height int32) error {
	if c.initialized {
		return nil
	}

	var err error
	if c.brightShader, err = loadShader("fullscreen.vs", "bright.fs"); err != nil {
		return fmt.Errorf("bloom bright pass: %w", err)
	}
	if c.blurShader, err = loadShader("fullscreen.vs", "blur.fs"); err != nil {
		rl.UnloadShader(c.brightShader)
		return fmt.Errorf("bloom blur: %w", err)
	}
	if c.compositeShader, err = loadShader("fullscreen.vs", "composite.fs"); err != nil {
		rl.UnloadShader(c.brightShader)
		rl.UnloadShader(c.blurShader)
		return fmt.Errorf("bloom composite: %w", err)
	}

	c.thresholdLoc = rl.GetShaderLocation(c.brightShader, "threshold")
	c.directionLoc = rl.GetShaderLocation(c.blurShader, "direction")
	c.bloomTexLoc = rl.GetShaderLocation(c.compositeShader, "bloomTex")
	c.strengthLoc = rl.GetShaderLocation(c.compositeShader, "strength")
	c.exposureLoc = rl.GetShaderLocation(c.compositeShader, "exposure")
	c.bloomOnLoc = rl.GetShaderLocation(c.compositeShader, "bloomOn")

	c.allocTargets(width, height)
	c.initialized = true
	return nil
}

// Resize reallocates the targets when the framebuffer size changes.
// Calling it again with the same size does nothing.
func (c *Composer) Resize(width, height int32) {
	if width <= 0 || height <= 0 {
		return
	}
	if width == c.width && height == c.height {
		return
	}
	if !c.initialized {
		c.width, c.height = width, height
		return
	}
	c.unloadTargets()
	c.allocTargets(width, height)
}

// Size returns the scene target size in framebuffer pixels.
func (c *Composer) Size() (width, height int32) {
	return c.width, c.height
}

// BloomSize returns the size of the bloom targets for a scene target.
func BloomSize(width, height, downscale int32) (int32, int32) {
	if downscale < 1 {
		downscale = 1
	}
	return max(width/downscale, 1), max(height/downscale, 1)
}

// BlurStep returns the texel offset used by blur pass i for a given radius.
func BlurStep(radius float32, pass int) float32 {
	return (1 + radius*2) * float32(int(1)<<pass)
}

func (c *Composer) allocTargets(width, height int32) {
	c.width, c.height = width, height
	bw, bh := BloomSize(width, height, c.downscale)

	c.scene = rl.LoadRenderTexture(width, height)
	c.bright = rl.LoadRenderTexture(bw, bh)
	c.pingA = rl.LoadRenderTexture(bw, bh)
	c.pingB = rl.LoadRenderTexture(bw, bh)
	for _, rt := range []rl.RenderTexture2D{c.scene, c.bright, c.pingA, c.pingB} {
		rl.SetTextureFilter(rt.Texture, rl.FilterBilinear)
		rl.SetTextureWrap(rt.Texture, rl.WrapClamp)
	}
}

// BeginScene redirects drawing into the scene target.
func (c *Composer) BeginScene() {
	rl.BeginTextureMode(c.scene)
}

// EndScene returns drawing to the window.
func (c *Composer) EndScene() {
	rl.EndTextureMode()
}

// Render runs the bloom passes and draws the tone-mapped result to the
// window at the given size in screen coordinates.
func (c *Composer) Render(screenW, screenH float32) {
	if !c.initialized {
		return
	}

	bw, bh := BloomSize(c.width, c.height, c.downscale)
	if c.Enabled {
		rl.SetShaderValue(c.brightShader, c.thresholdLoc, []float32{c.Threshold}, rl.ShaderUniformFloat)
		c.pass(c.brightShader, c.scene, c.bright, float32(bw), float32(bh))

		src := c.bright
		for i := range blurIterations {
			step := BlurStep(c.Radius, i)
			rl.SetShaderValue(c.blurShader, c.directionLoc, []float32{step / float32(bw), 0}, rl.ShaderUniformVec2)
			c.pass(c.blurShader, src, c.pingA, float32(bw), float32(bh))
			rl.SetShaderValue(c.blurShader, c.directionLoc, []float32{0, step / float32(bh)}, rl.ShaderUniformVec2)
			c.pass(c.blurShader, c.pingA, c.pingB, float32(bw), float32(bh))
			src = c.pingB
		}
	}

	bloomOn := float32(0)
	if c.Enabled {
		bloomOn = 1
	}
	rl.SetShaderValue(c.compositeShader, c.strengthLoc, []float32{c.Strength}, rl.ShaderUniformFloat)
	rl.SetShaderValue(c.compositeShader, c.exposureLoc, []float32{c.Exposure}, rl.ShaderUniformFloat)
	rl.SetShaderValue(c.compositeShader, c.bloomOnLoc, []float32{bloomOn}, rl.ShaderUniformFloat)

	rl.BeginShaderMode(c.compositeShader)
	rl.SetShaderValueTexture(c.compositeShader, c.bloomTexLoc, c.pingB.Texture)
	drawTarget(c.scene, screenW, screenH)
	rl.EndShaderMode()
}

// pass draws src into dst through a full-screen shader.
func (c *Composer) pass(shader rl.Shader, src, dst rl.RenderTexture2D, w, h float32) {
	rl.BeginTextureMode(dst)
	rl.ClearBackground(rl.Black)
	rl.BeginShaderMode(shader)
	drawTarget(src, w, h)
	rl.EndShaderMode()
	rl.EndTextureMode()
}

// drawTarget stretches a render texture over (0,0,w,h). Render textures are
// stored bottom-up, hence the negative source height.
func drawTarget(src rl.RenderTexture2D, w, h float32) {
	srcRect := rl.Rectangle{X: 0, Y: 0, Width: float32(src.Texture.Width), Height: -float32(src.Texture.Height)}
	dstRect := rl.Rectangle{X: 0, Y: 0, Width: w, Height: h}
	rl.DrawTexturePro(src.Texture, srcRect, dstRect, rl.Vector2{}, 0, rl.White)
}

// SceneTexture exposes the scene target, e.g. for screenshots.
func (c *Composer) SceneTexture() rl.Texture2D {
	return c.scene.Texture
}

func (c *Composer) unloadTargets() {
	rl.UnloadRenderTexture(c.scene)
	rl.UnloadRenderTexture(c.bright)
	rl.UnloadRenderTexture(c.pingA)
	rl.UnloadRenderTexture(c.pingB)
}

// Unload frees GPU resources.
func (c *Composer) Unload() {
	if !c.initialized {
		return
	}
	c.unloadTargets()
	rl.UnloadShader(c.brightShader)
	rl.UnloadShader(c.blurShader)
	rl.UnloadShader(c.compositeShader)
	c.initialized = false
}
