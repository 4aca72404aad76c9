package core

// Action represents a semantic game action, abstracted from physical key
// presses. Games consume high-level intents rather than raw input.
type Action int

const (
	ActionNone     Action = iota // No intent
	ActionUp                     // W, Up arrow
	ActionDown                   // S, Down arrow
	ActionLeft                   // A, Left arrow
	ActionRight                  // D, Right arrow
	ActionJump                   // Space - primary action (jump, flap)
	ActionJumpHeld               // Jump key held across ticks (runner hold-boost)
	ActionFire                   // F, X - shoot
	ActionConfirm                // Enter - select/swap
	ActionBack                   // B, Escape - go back to menu
	ActionRestart                // R - restart after game over
	ActionQuit                   // Q, Ctrl+C - exit game/session
	ActionPause                  // P - pause/unpause game
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionJump:
		return "Jump"
	case ActionJumpHeld:
		return "JumpHeld"
	case ActionFire:
		return "Fire"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// InputFrame represents the buffered input intents for one simulation tick.
// Key events arrive asynchronously from the host loop and are flagged here;
// the next Step consumes the frame and the platform clears it. Reads and
// writes happen on the same logical thread, so no synchronization is needed.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Unset removes an action flag (used for held-key release).
func (f *InputFrame) Unset(a Action) {
	if f.Actions != nil {
		delete(f.Actions, a)
	}
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets all one-shot actions for the next frame. Held-state actions
// (ActionJumpHeld) survive until explicitly unset on key release.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		if k == ActionJumpHeld {
			continue
		}
		delete(f.Actions, k)
	}
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	return clone
}
