package flappy

import (
	"testing"

	"github.com/retrobox/retrobox/internal/core"
)

const (
	testW    = 80
	testH    = 24
	testSeed = 42
)

// newTestGame builds a game with fixed difficulty (no progression) so
// physics and pipe speed stay constant across the run.
func newTestGame(t *testing.T) *Game {
	t.Helper()

	prevPath, prevPreset := configPath, difficultyPreset
	t.Cleanup(func() {
		configPath = prevPath
		difficultyPreset = prevPreset
	})

	SetConfigPath("")
	SetDifficultyPreset("fixed")

	g := New()
	g.Reset(core.RuntimeConfig{ScreenW: testW, ScreenH: testH, TickRate: 60, Seed: testSeed})
	return g
}

// step advances one tick with the given actions pressed.
func step(g *Game, actions ...core.Action) core.StepResult {
	frame := core.NewInputFrame()
	for _, a := range actions {
		frame.Set(a)
	}
	return g.Step(frame)
}

func TestReadyStateFreezesUntilFirstFlap(t *testing.T) {
	g := newTestGame(t)
	startY := g.bird.Y

	for i := 0; i < 30; i++ {
		res := step(g)
		if res.State.Phase != core.PhaseMenu {
			t.Fatalf("tick %d: phase = %v, want menu", i, res.State.Phase)
		}
	}
	if g.bird.Y != startY {
		t.Errorf("bird moved in ready state: y = %v, want %v", g.bird.Y, startY)
	}

	res := step(g, core.ActionJump)
	if res.State.Phase != core.PhasePlaying {
		t.Fatalf("phase after first flap = %v, want playing", res.State.Phase)
	}
}

func TestFlapSetsVelocity(t *testing.T) {
	g := newTestGame(t)

	// The first flap starts the run and counts as a flap: velocity is the
	// impulse (assigned, not added) plus one tick of gravity.
	step(g, core.ActionJump)
	want := g.cfg.Physics.FlapImpulse + g.cfg.Physics.Gravity
	if g.bird.Vel != want {
		t.Errorf("vel after flap = %v, want %v", g.bird.Vel, want)
	}

	// Flapping while already moving up still assigns, never stacks.
	step(g, core.ActionJump)
	if g.bird.Vel != want {
		t.Errorf("vel after second flap = %v, want %v", g.bird.Vel, want)
	}
}

func TestGravityCapsAtMaxFallSpeed(t *testing.T) {
	g := newTestGame(t)
	step(g, core.ActionJump)

	prev := g.bird.Vel
	for i := 0; i < 40 && g.fsm.Playing(); i++ {
		step(g)
		if g.bird.Vel > g.cfg.Physics.MaxFallSpeed {
			t.Fatalf("tick %d: vel %v exceeds max fall speed %v", i, g.bird.Vel, g.cfg.Physics.MaxFallSpeed)
		}
		if g.bird.Vel < prev {
			t.Fatalf("tick %d: vel decreased without a flap (%v -> %v)", i, prev, g.bird.Vel)
		}
		prev = g.bird.Vel
	}
}

func TestGroundCollisionEndsRun(t *testing.T) {
	g := newTestGame(t)
	step(g, core.ActionJump)

	var terminal core.Terminal
	for i := 0; i < 200 && g.fsm.Playing(); i++ {
		res := step(g)
		if res.Terminal != core.TerminalNone {
			terminal = res.Terminal
		}
	}

	if g.fsm.Phase() != core.PhaseGameOver {
		t.Fatalf("phase = %v, want gameover after free fall", g.fsm.Phase())
	}
	if terminal != core.TerminalCollided {
		t.Errorf("terminal = %v, want collided", terminal)
	}
}

func TestPipeScoredExactlyOnce(t *testing.T) {
	g := newTestGame(t)
	pm := g.pipes

	// A pipe one step short of the bird's trailing edge.
	birdX := g.bird.X
	width := float64(g.cfg.Obstacles.PipeWidth)
	speed := g.cfg.Physics.BaseSpeed
	pm.pipes = append(pm.pipes, Pipe{X: birdX - width + speed/2, GapY: 8, GapHeight: 10})

	if got := pm.Update(birdX, 0, 1); got != 1 {
		t.Fatalf("first pass: Update = %d, want 1", got)
	}
	if got := pm.Update(birdX, 1, 2); got != 0 {
		t.Errorf("second pass: Update = %d, want 0 (already scored)", got)
	}
}

func TestPipeSpawnsOnInterval(t *testing.T) {
	g := newTestGame(t)
	pm := g.pipes
	obs := g.cfg.Obstacles

	for i := 0; i < obs.SpawnInterval; i++ {
		pm.Update(g.bird.X, 0, i)
	}

	pipes := pm.Pipes()
	if len(pipes) != 1 {
		t.Fatalf("pipes after one interval = %d, want 1", len(pipes))
	}
	p := pipes[0]
	if p.GapY < obs.TopMargin {
		t.Errorf("gap top %d above top margin %d", p.GapY, obs.TopMargin)
	}
	if p.GapY+p.GapHeight > testH-obs.BottomMargin {
		t.Errorf("gap bottom %d below bottom margin", p.GapY+p.GapHeight)
	}
	if p.GapHeight < obs.MinGapSize || p.GapHeight > obs.MaxGapSize {
		t.Errorf("gap height %d outside [%d,%d]", p.GapHeight, obs.MinGapSize, obs.MaxGapSize)
	}
}

func TestPipeCollisionRespectsGapAndOverhang(t *testing.T) {
	g := newTestGame(t)
	pm := g.pipes
	r := g.cfg.Player.Radius

	pipe := Pipe{X: 30, GapY: 8, GapHeight: 8}
	pm.pipes = append(pm.pipes, pipe)

	// Center of the gap is safe.
	if pm.CheckCollision(32, 12, r, g.groundY) {
		t.Error("collision reported inside the gap")
	}
	// Inside the top half is fatal.
	if !pm.CheckCollision(32, 4, r, g.groundY) {
		t.Error("no collision reported inside the top pipe")
	}
	// The cap overhang widens the rect past the pipe's left edge.
	overhang := float64(g.cfg.Obstacles.CapOverhang)
	if !pm.CheckCollision(pipe.X-overhang-r+0.1, 4, r, g.groundY) {
		t.Error("no collision reported against the cap overhang")
	}
}

func TestPauseFreezesBird(t *testing.T) {
	g := newTestGame(t)
	step(g, core.ActionJump)

	step(g, core.ActionPause)
	y, vel := g.bird.Y, g.bird.Vel
	for i := 0; i < 20; i++ {
		step(g)
	}
	if g.bird.Y != y || g.bird.Vel != vel {
		t.Errorf("bird moved while paused: y %v -> %v, vel %v -> %v", y, g.bird.Y, vel, g.bird.Vel)
	}

	step(g, core.ActionPause)
	if !g.fsm.Playing() {
		t.Fatal("pause toggle did not resume")
	}
}

func TestRestartReturnsToReadyState(t *testing.T) {
	g := newTestGame(t)
	step(g, core.ActionJump)
	for i := 0; i < 200 && g.fsm.Playing(); i++ {
		step(g)
	}
	if g.fsm.Phase() != core.PhaseGameOver {
		t.Fatal("expected game over before restart")
	}

	res := step(g, core.ActionRestart)
	if res.State.Phase != core.PhaseMenu {
		t.Errorf("phase after restart = %v, want menu (ready)", res.State.Phase)
	}
	if res.State.Score != 0 {
		t.Errorf("score after restart = %d, want 0", res.State.Score)
	}
	if len(g.pipes.Pipes()) != 0 {
		t.Errorf("pipes after restart = %d, want 0", len(g.pipes.Pipes()))
	}
}

func TestDeterminismSameSeedSameRun(t *testing.T) {
	run := func() (Bird, []Pipe, int) {
		g := newTestGame(t)
		step(g, core.ActionJump)
		for i := 1; i < 150 && g.fsm.Playing(); i++ {
			if i%25 == 0 {
				step(g, core.ActionJump)
			} else {
				step(g)
			}
		}
		pipes := append([]Pipe(nil), g.pipes.Pipes()...)
		return g.bird, pipes, g.score
	}

	b1, p1, s1 := run()
	b2, p2, s2 := run()

	if b1 != b2 {
		t.Errorf("bird diverged: %+v vs %+v", b1, b2)
	}
	if s1 != s2 {
		t.Errorf("score diverged: %d vs %d", s1, s2)
	}
	if len(p1) != len(p2) {
		t.Fatalf("pipe count diverged: %d vs %d", len(p1), len(p2))
	}
	for i := range p1 {
		if p1[i] != p2[i] {
			t.Errorf("pipe %d diverged: %+v vs %+v", i, p1[i], p2[i])
		}
	}
}
