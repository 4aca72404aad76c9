package core

// Phase is the single authoritative game lifecycle state. Exactly one phase
// is active at a time; the simulation step executes only while PhasePlaying.
type Phase int

const (
	PhaseMenu Phase = iota // Waiting for the first start (also "ready")
	PhasePlaying
	PhasePaused
	PhaseGameOver
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseMenu:
		return "menu"
	case PhasePlaying:
		return "playing"
	case PhasePaused:
		return "paused"
	case PhaseGameOver:
		return "gameover"
	default:
		return "unknown"
	}
}

// Machine is the shared lifecycle state machine for all games.
// Transitions happen only through the named methods; each returns whether
// the transition was legal from the current phase. Illegal transitions are
// no-ops so callers never need to pre-check the phase.
type Machine struct {
	phase Phase
}

// NewMachine returns a machine in PhaseMenu.
func NewMachine() Machine {
	return Machine{phase: PhaseMenu}
}

// Phase returns the current phase.
func (m *Machine) Phase() Phase {
	return m.phase
}

// Playing reports whether the simulation step should execute.
func (m *Machine) Playing() bool {
	return m.phase == PhasePlaying
}

// Start begins a run from the menu.
func (m *Machine) Start() bool {
	if m.phase != PhaseMenu {
		return false
	}
	m.phase = PhasePlaying
	return true
}

// Pause freezes the simulation. No simulation time ships while paused, so
// resuming produces no physics jump.
func (m *Machine) Pause() bool {
	if m.phase != PhasePlaying {
		return false
	}
	m.phase = PhasePaused
	return true
}

// Resume continues a paused run.
func (m *Machine) Resume() bool {
	if m.phase != PhasePaused {
		return false
	}
	m.phase = PhasePlaying
	return true
}

// TogglePause flips between playing and paused.
func (m *Machine) TogglePause() bool {
	if m.phase == PhasePlaying {
		return m.Pause()
	}
	return m.Resume()
}

// Die ends the run on a terminal condition (collision, time up, invasion).
func (m *Machine) Die() bool {
	if m.phase != PhasePlaying {
		return false
	}
	m.phase = PhaseGameOver
	return true
}

// Restart begins a fresh run after game over. The caller re-initializes
// world state from the same settings snapshot.
func (m *Machine) Restart() bool {
	if m.phase != PhaseGameOver {
		return false
	}
	m.phase = PhasePlaying
	return true
}

// BackToMenu abandons a paused or finished run.
func (m *Machine) BackToMenu() bool {
	if m.phase != PhasePaused && m.phase != PhaseGameOver {
		return false
	}
	m.phase = PhaseMenu
	return true
}
