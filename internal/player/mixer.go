package player

import "github.com/ayusman/mudra/internal/pose"

// Mixer is the skeletal-animation collaborator that turns resolved
// keyframes into bone transforms. The engine never learns bone names or
// skinning; it only hands the mixer a fully resolved pose per tick.
// Implementations must not block: Apply is called inline from the render
// tick.
type Mixer interface {
	// Advance moves the mixer's own animation clock forward.
	Advance(delta float64)
	// Apply applies one resolved keyframe to the rendered model.
	Apply(frame pose.Keyframe)
}
