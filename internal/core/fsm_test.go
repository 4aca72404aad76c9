package core

import "testing"

func TestMachineHappyPath(t *testing.T) {
	m := NewMachine()

	if m.Phase() != PhaseMenu {
		t.Fatalf("new machine should be in menu, got %v", m.Phase())
	}

	if !m.Start() {
		t.Fatal("Start from menu should succeed")
	}
	if !m.Playing() {
		t.Fatal("machine should be playing after Start")
	}

	if !m.Pause() {
		t.Fatal("Pause from playing should succeed")
	}
	if m.Phase() != PhasePaused {
		t.Errorf("expected paused, got %v", m.Phase())
	}

	if !m.Resume() {
		t.Fatal("Resume from paused should succeed")
	}

	if !m.Die() {
		t.Fatal("Die from playing should succeed")
	}
	if m.Phase() != PhaseGameOver {
		t.Errorf("expected gameover, got %v", m.Phase())
	}

	if !m.Restart() {
		t.Fatal("Restart from gameover should succeed")
	}
	if !m.Playing() {
		t.Error("machine should be playing after Restart")
	}
}

func TestMachineIllegalTransitionsAreNoOps(t *testing.T) {
	m := NewMachine()

	// From menu, only Start is legal
	if m.Pause() || m.Resume() || m.Die() || m.Restart() || m.BackToMenu() {
		t.Error("no transition except Start should succeed from menu")
	}
	if m.Phase() != PhaseMenu {
		t.Errorf("phase should be unchanged, got %v", m.Phase())
	}

	m.Start()
	if m.Start() {
		t.Error("Start while playing should fail")
	}
	if m.Resume() {
		t.Error("Resume while playing should fail")
	}
	if m.Restart() {
		t.Error("Restart while playing should fail")
	}
}

func TestMachineBackToMenu(t *testing.T) {
	for _, from := range []string{"paused", "gameover"} {
		m := NewMachine()
		m.Start()
		if from == "paused" {
			m.Pause()
		} else {
			m.Die()
		}

		if !m.BackToMenu() {
			t.Errorf("BackToMenu from %s should succeed", from)
		}
		if m.Phase() != PhaseMenu {
			t.Errorf("phase after BackToMenu from %s = %v", from, m.Phase())
		}
	}
}

func TestMachineTogglePause(t *testing.T) {
	m := NewMachine()
	m.Start()

	m.TogglePause()
	if m.Phase() != PhasePaused {
		t.Errorf("first toggle should pause, got %v", m.Phase())
	}
	m.TogglePause()
	if m.Phase() != PhasePlaying {
		t.Errorf("second toggle should resume, got %v", m.Phase())
	}
}
