package core

// AnimKind tags what an animation window represents. Games define their own
// kinds; core only tracks timing.
type AnimKind int

// AnimNone is the zero kind, meaning no animation is active.
const AnimNone AnimKind = 0

// Anim is a tick-based animation window: a tagged phase with its own start
// tick and duration. Modeling animation progress this way (instead of ad hoc
// flags) keeps per-game state machines exhaustive.
type Anim struct {
	Kind     AnimKind
	Start    uint64 // Tick the animation began on
	Duration uint64 // Length in ticks
}

// StartAnim begins an animation window of the given kind at tick now.
func StartAnim(kind AnimKind, now, duration uint64) Anim {
	return Anim{Kind: kind, Start: now, Duration: duration}
}

// Active reports whether an animation is in progress.
func (a Anim) Active() bool {
	return a.Kind != AnimNone
}

// Progress returns the completion fraction at tick now, clamped to [0, 1].
func (a Anim) Progress(now uint64) float64 {
	if a.Kind == AnimNone || a.Duration == 0 {
		return 1.0
	}
	if now <= a.Start {
		return 0.0
	}
	elapsed := now - a.Start
	if elapsed >= a.Duration {
		return 1.0
	}
	return float64(elapsed) / float64(a.Duration)
}

// Done reports whether the window has elapsed at tick now.
func (a Anim) Done(now uint64) bool {
	return a.Kind == AnimNone || now >= a.Start+a.Duration
}
