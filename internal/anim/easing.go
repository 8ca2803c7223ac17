package anim

// Easing maps a normalized time in [0,1] to an eased value in [0,1].
// Every easing satisfies ease(0) == 0 and ease(1) == 1.
type Easing func(t float64) float64

// Linear is the identity easing.
func Linear(t float64) float64 {
	return t
}

// InQuad accelerates from rest.
func InQuad(t float64) float64 {
	return t * t
}

// OutQuad decelerates to rest.
func OutQuad(t float64) float64 {
	return t * (2 - t)
}

// InOutQuad accelerates through the first half and decelerates through
// the second.
func InOutQuad(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	return -1 + (4-2*t)*t
}

// EasingFor selects the easing implied by a pair of ease flags: both set
// yields InOutQuad, exactly one yields that side, neither yields Linear.
func EasingFor(easeIn, easeOut bool) Easing {
	switch {
	case easeIn && easeOut:
		return InOutQuad
	case easeIn:
		return InQuad
	case easeOut:
		return OutQuad
	default:
		return Linear
	}
}
