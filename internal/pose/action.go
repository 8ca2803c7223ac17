package pose

// Playback parameter bounds.
const (
	// MinSpeed is the slowest allowed playback speed multiplier.
	MinSpeed = 0.1
	// MaxSpeed is the fastest allowed playback speed multiplier.
	MaxSpeed = 3.0
	// DefaultSpeed is the playback speed used when none is given.
	DefaultSpeed = 1.0
	// DefaultSmoothness is the transition blend length used when none is given.
	DefaultSmoothness = 0.5
)

// SignAction is an immutable gesture definition: a named target hand pose
// plus nominal timing metadata. Actions are loaded once from the catalog
// and never modified afterwards.
type SignAction struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Category    string   `json:"category,omitempty"`
	Hand        HandPose `json:"hand"`
	// Duration is the nominal playback time in seconds at speed 1.0.
	Duration float64 `json:"duration"`
	// Keyframes is a rendering hint for how many frames the gesture was
	// authored with. It is never used for timing.
	Keyframes  int      `json:"keyframes,omitempty"`
	Difficulty int      `json:"difficulty,omitempty"`
	Tags       []string `json:"tags,omitempty"`
}

// Valid reports whether the action is structurally sound: a non-empty id,
// a positive duration, and each finger slot tagged with its own finger.
func (a *SignAction) Valid() bool {
	if a == nil || a.ID == "" || a.Duration <= 0 {
		return false
	}
	for i, fp := range a.Hand.Fingers {
		if fp.Finger != Finger(i) {
			return false
		}
	}
	return true
}

// Params tunes the playback of a single action.
type Params struct {
	// Speed is a playback speed multiplier in [MinSpeed, MaxSpeed].
	Speed float64 `json:"speed"`
	// Smoothness in [0,1] controls transition blend length.
	Smoothness float64 `json:"smoothness"`
	Loop       bool    `json:"loop,omitempty"`
	EaseIn     bool    `json:"ease_in,omitempty"`
	EaseOut    bool    `json:"ease_out,omitempty"`
}

// DefaultParams returns the standard playback parameters.
func DefaultParams() Params {
	return Params{Speed: DefaultSpeed, Smoothness: DefaultSmoothness}
}

// Valid reports whether the parameters are within range. Used by batch
// sequence validation, which reports rather than throws.
func (p Params) Valid() bool {
	if p.Speed < MinSpeed || p.Speed > MaxSpeed {
		return false
	}
	if p.Smoothness < 0 || p.Smoothness > 1 {
		return false
	}
	return true
}

// Clamped returns a copy with speed and smoothness forced into range.
// A zero speed resolves to DefaultSpeed.
func (p Params) Clamped() Params {
	if p.Speed == 0 {
		p.Speed = DefaultSpeed
	}
	p.Speed = ClampSpeed(p.Speed)
	if p.Smoothness < 0 {
		p.Smoothness = 0
	} else if p.Smoothness > 1 {
		p.Smoothness = 1
	}
	return p
}

// ClampSpeed forces a speed multiplier into [MinSpeed, MaxSpeed].
func ClampSpeed(speed float64) float64 {
	if speed < MinSpeed {
		return MinSpeed
	}
	if speed > MaxSpeed {
		return MaxSpeed
	}
	return speed
}
