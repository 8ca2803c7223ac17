package catalog

import "github.com/ayusman/mudra/internal/pose"

// Builtin returns the sign definitions shipped with the engine. They seed
// an empty store on first start and back the package tests.
func Builtin() []*pose.SignAction {
	return []*pose.SignAction{
		{
			ID:          "hello",
			Name:        "Hello",
			Description: "Open palm raised in greeting",
			Category:    "greetings",
			Hand:        pose.OpenPalmHand(),
			Duration:    1.2,
			Keyframes:   24,
			Difficulty:  1,
			Tags:        []string{"greeting", "wave"},
		},
		{
			ID:          "thanks",
			Name:        "Thank You",
			Description: "Flat hand moving from the chin outward",
			Category:    "greetings",
			Hand:        pose.FlatHand(),
			Duration:    1.5,
			Keyframes:   30,
			Difficulty:  1,
			Tags:        []string{"greeting", "gratitude"},
		},
		{
			ID:          "yes",
			Name:        "Yes",
			Description: "Fist nodding like a head",
			Category:    "responses",
			Hand:        pose.FistHand(),
			Duration:    0.8,
			Keyframes:   16,
			Difficulty:  1,
			Tags:        []string{"answer", "affirm"},
		},
		{
			ID:          "no",
			Name:        "No",
			Description: "Index and middle finger tapping the thumb",
			Category:    "responses",
			Hand:        pose.VictoryHand(),
			Duration:    0.9,
			Keyframes:   18,
			Difficulty:  2,
			Tags:        []string{"answer", "negate"},
		},
		{
			ID:          "good",
			Name:        "Good",
			Description: "Thumbs up",
			Category:    "responses",
			Hand:        pose.ThumbsUpHand(),
			Duration:    1.0,
			Keyframes:   20,
			Difficulty:  1,
			Tags:        []string{"praise", "affirm"},
		},
		{
			ID:          "you",
			Name:        "You",
			Description: "Index finger pointing forward",
			Category:    "pronouns",
			Hand:        pose.PointHand(),
			Duration:    0.6,
			Keyframes:   12,
			Difficulty:  1,
			Tags:        []string{"pronoun", "point"},
		},
		{
			ID:          "more",
			Name:        "More",
			Description: "Fingertips pinched together",
			Category:    "requests",
			Hand:        pose.PinchHand(),
			Duration:    1.1,
			Keyframes:   22,
			Difficulty:  2,
			Tags:        []string{"request", "quantity"},
		},
		{
			ID:          "stop",
			Name:        "Stop",
			Description: "Flat hand chopping onto the palm",
			Category:    "requests",
			Hand:        pose.FlatHand(),
			Duration:    0.7,
			Keyframes:   14,
			Difficulty:  2,
			Tags:        []string{"request", "halt"},
		},
	}
}
