package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/akorn123w/FishingInTheVoid/components"
	"github.com/akorn123w/FishingInTheVoid/systems"
)

const voidShader = `#version 330
in vec2 fragTexCoord;
out vec4 finalColor;

uniform float time;
uniform vec2 resolution;
uniform vec3 baseColor;
uniform float glow;

void main() {
    vec2 uv = gl_FragCoord.xy / resolution;
    vec2 c = uv - 0.5;
    c.x *= resolution.x / resolution.y;
    float d = length(c);
    float pulse = 0.5 + 0.5 * sin(time * 0.4 + d * 6.0);
    float vignette = smoothstep(0.9, 0.1, d);
    vec3 col = baseColor * (0.4 + 0.6 * vignette);
    col += vec3(0.05, 0.08, 0.12) * glow * vignette * pulse;
    finalColor = vec4(col, 1.0);
}
`

// BackgroundRenderer draws the void behind the avatar. Glow rises with the
// background opacity curve so the scene brightens as the colony morphs.
type BackgroundRenderer struct {
	shader        rl.Shader
	timeLoc       int32
	resolutionLoc int32
	baseColorLoc  int32
	glowLoc       int32

	screenW, screenH float32
	baseColor        [3]float32
	initialized      bool
}

// NewBackgroundRenderer creates a new background renderer.
func NewBackgroundRenderer(screenW, screenH int32, baseR, baseG, baseB uint8) *BackgroundRenderer {
	return &BackgroundRenderer{
		screenW: float32(screenW),
		screenH: float32(screenH),
		baseColor: [3]float32{
			float32(baseR) / 255.0,
			float32(baseG) / 255.0,
			float32(baseB) / 255.0,
		},
	}
}

// Init compiles the shader. Call after the window is created.
func (b *BackgroundRenderer) Init() {
	if b.initialized {
		return
	}

	b.shader = rl.LoadShaderFromMemory("", voidShader)
	b.timeLoc = rl.GetShaderLocation(b.shader, "time")
	b.resolutionLoc = rl.GetShaderLocation(b.shader, "resolution")
	b.baseColorLoc = rl.GetShaderLocation(b.shader, "baseColor")
	b.glowLoc = rl.GetShaderLocation(b.shader, "glow")

	rl.SetShaderValue(b.shader, b.resolutionLoc, []float32{b.screenW, b.screenH}, rl.ShaderUniformVec2)
	rl.SetShaderValue(b.shader, b.baseColorLoc, b.baseColor[:], rl.ShaderUniformVec3)

	b.initialized = true
}

// Resize updates the resolution uniform.
func (b *BackgroundRenderer) Resize(screenW, screenH int32) {
	b.screenW, b.screenH = float32(screenW), float32(screenH)
	if b.initialized {
		rl.SetShaderValue(b.shader, b.resolutionLoc, []float32{b.screenW, b.screenH}, rl.ShaderUniformVec2)
	}
}

// Draw fills the screen. glow is in [0, 1].
func (b *BackgroundRenderer) Draw(time, glow float32) {
	if !b.initialized {
		b.Init()
	}

	rl.BeginShaderMode(b.shader)
	rl.SetShaderValue(b.shader, b.timeLoc, []float32{time}, rl.ShaderUniformFloat)
	rl.SetShaderValue(b.shader, b.glowLoc, []float32{glow}, rl.ShaderUniformFloat)
	rl.DrawRectangle(0, 0, int32(b.screenW), int32(b.screenH), rl.White)
	rl.EndShaderMode()
}

// Unload frees resources.
func (b *BackgroundRenderer) Unload() {
	if b.initialized {
		rl.UnloadShader(b.shader)
		b.initialized = false
	}
}

// backgroundCellRadius is the on-screen radius of a unit-size background cell.
const backgroundCellRadius = 30

// Background cell tints, indexed by sprite variant.
var backgroundCellColors = []rl.Color{
	{R: 90, G: 160, B: 170, A: 255},
	{R: 120, G: 110, B: 180, A: 255},
	{R: 80, G: 140, B: 110, A: 255},
	{R: 170, G: 120, B: 150, A: 255},
}

// AmbientRenderer draws drifting particles and background cells.
type AmbientRenderer struct {
	views []systems.AmbientView
}

// NewAmbientRenderer creates a new ambient renderer.
func NewAmbientRenderer() *AmbientRenderer {
	return &AmbientRenderer{}
}

// Buffer returns the reusable view slice, emptied, for the caller to fill.
func (r *AmbientRenderer) Buffer() []systems.AmbientView {
	return r.views[:0]
}

// Draw renders views and keeps the slice for reuse.
func (r *AmbientRenderer) Draw(space Space, views []systems.AmbientView) {
	r.views = views
	for i := range views {
		v := &views[i]
		pos := space.ToScreen(v.X, v.Y)

		switch v.Kind {
		case components.KindParticle:
			rl.DrawCircleV(pos, v.Size, rl.Color{R: 180, G: 200, B: 220, A: 110})
		case components.KindBackgroundCell:
			if v.Opacity <= 0 {
				continue
			}
			c := backgroundCellColors[int(v.Type-1)%len(backgroundCellColors)]
			radius := v.Size * backgroundCellRadius
			rl.DrawCircleV(pos, radius, fade(c, v.Opacity*0.35))
			rl.DrawCircleLines(int32(pos.X), int32(pos.Y), radius, fade(c, v.Opacity))
			rl.DrawCircleV(pos, radius*0.3, fade(c, v.Opacity*0.8))
		}
	}
}
