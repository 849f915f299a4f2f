// Package components defines ECS components for the ambient scene.
package components

// Kind identifies what an ambient entity is.
type Kind uint8

const (
	KindParticle       Kind = iota // Drifting speck behind the avatar
	KindBackgroundCell             // Cell that drifts in once the avatar starts morphing
)

// Position is in percent space: [0, 100) on both axes.
type Position struct {
	X, Y float32
}

// Drift is constant-heading motion, in percent per tick.
type Drift struct {
	Angle float32
	Speed float32
}

// Push is a decaying impulse added on top of drift.
type Push struct {
	VX, VY float32
}

// Body holds the rendered appearance of an ambient entity.
type Body struct {
	Kind Kind
	Size float32
	Type uint8 // Sprite variant, 1-based
}

// Fade ramps opacity toward Max by Step per tick.
type Fade struct {
	Opacity float32
	Max     float32
	Step    float32
}
