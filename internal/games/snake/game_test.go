package snake

import (
	"testing"

	"github.com/retrobox/retrobox/internal/config"
	"github.com/retrobox/retrobox/internal/core"
)

// newTestGame builds a started game with one move per tick and the given
// settings, restoring package-level overrides when the test finishes.
func newTestGame(t *testing.T, cfg config.SnakeConfig, seed int64) *Game {
	t.Helper()
	SetDifficultyPreset("custom")
	SetCustom(cfg)
	t.Cleanup(func() {
		SetDifficultyPreset("")
		customOverride = nil
	})

	g := New()
	g.Reset(core.RuntimeConfig{
		Seed:     seed,
		ScreenW:  80,
		ScreenH:  24,
		TickRate: cfg.Speed, // moveEveryTicks == 1
	})
	g.fsm.Start()
	return g
}

func stepDir(g *Game, a core.Action) core.StepResult {
	input := core.NewInputFrame()
	if a != core.ActionNone {
		input.Set(a)
	}
	return g.Step(input)
}

func TestRightThenBufferedDown(t *testing.T) {
	// gridSize 20, snake starts mid-board length 3 moving right. Inject
	// "down" once, then run quiet ticks: the head moves right once (the
	// buffered turn commits at the next boundary), then down twice.
	g := newTestGame(t, config.SnakeConfig{Speed: 25, GridSize: 20}, 1)

	head := g.Body()[0]
	if head != (Point{X: 10, Y: 10}) {
		t.Fatalf("expected head at (10,10), got %+v", head)
	}
	if len(g.Body()) != 3 {
		t.Fatalf("expected starting length 3, got %d", len(g.Body()))
	}

	// Keep the food out of the path
	g.food = Point{X: 0, Y: 0}

	stepDir(g, core.ActionDown)
	if got := g.Body()[0]; got != (Point{X: 11, Y: 10}) {
		t.Errorf("tick 1: head = %+v, expected right move to (11,10)", got)
	}

	stepDir(g, core.ActionNone)
	if got := g.Body()[0]; got != (Point{X: 11, Y: 11}) {
		t.Errorf("tick 2: head = %+v, expected down move to (11,11)", got)
	}

	stepDir(g, core.ActionNone)
	if got := g.Body()[0]; got != (Point{X: 11, Y: 12}) {
		t.Errorf("tick 3: head = %+v, expected down move to (11,12)", got)
	}

	if g.score != 0 {
		t.Errorf("score should remain 0 until food is eaten, got %d", g.score)
	}
}

func TestWallDeathWithinOneMove(t *testing.T) {
	g := newTestGame(t, config.SnakeConfig{Speed: 25, GridSize: 10, WrapWalls: false}, 2)

	// Point the snake at the right wall and walk into it
	g.snake = []Point{{X: 9, Y: 5}, {X: 8, Y: 5}, {X: 7, Y: 5}}
	g.direction = DirRight
	g.nextDir = DirRight
	g.food = Point{X: 0, Y: 0}

	res := stepDir(g, core.ActionNone)

	if g.fsm.Phase() != core.PhaseGameOver {
		t.Errorf("expected gameover after wall hit, got %v", g.fsm.Phase())
	}
	if res.Terminal != core.TerminalCollided {
		t.Errorf("expected collided terminal, got %v", res.Terminal)
	}
}

func TestWrapKeepsCoordinatesInRange(t *testing.T) {
	g := newTestGame(t, config.SnakeConfig{Speed: 25, GridSize: 10, WrapWalls: true}, 3)

	g.snake = []Point{{X: 9, Y: 5}, {X: 8, Y: 5}, {X: 7, Y: 5}}
	g.direction = DirRight
	g.nextDir = DirRight
	g.food = Point{X: 0, Y: 9}

	stepDir(g, core.ActionNone)

	head := g.Body()[0]
	if head.X != 0 || head.Y != 5 {
		t.Errorf("expected wrapped head at (0,5), got %+v", head)
	}
	if g.fsm.Phase() != core.PhasePlaying {
		t.Errorf("wrap should not end the game, phase = %v", g.fsm.Phase())
	}

	// Many random moves never leave the grid
	for i := 0; i < 500; i++ {
		stepDir(g, core.ActionNone)
		for _, seg := range g.Body() {
			if seg.X < 0 || seg.X >= 10 || seg.Y < 0 || seg.Y >= 10 {
				t.Fatalf("segment out of range after wrap: %+v", seg)
			}
		}
		if g.fsm.Phase() != core.PhasePlaying {
			return // Died by self collision, which is fine here
		}
	}
}

func TestEatGrowsByOne(t *testing.T) {
	g := newTestGame(t, config.SnakeConfig{Speed: 25, GridSize: 20}, 4)

	head := g.Body()[0]
	g.food = Point{X: head.X + 1, Y: head.Y}
	before := len(g.Body())

	stepDir(g, core.ActionNone)

	if got := len(g.Body()); got != before+1 {
		t.Errorf("length after eating = %d, expected %d", got, before+1)
	}
	if g.score != 1 {
		t.Errorf("score after eating = %d, expected 1", g.score)
	}
	if g.food == head {
		t.Error("food should have respawned elsewhere")
	}
}

func TestScoreMonotonic(t *testing.T) {
	g := newTestGame(t, config.SnakeConfig{Speed: 25, GridSize: 12, WrapWalls: true}, 5)

	prev := 0
	for i := 0; i < 400 && g.fsm.Playing(); i++ {
		// Steer greedily toward the food to trigger some eats
		head := g.Body()[0]
		var a core.Action
		switch {
		case g.food.X > head.X && g.direction != DirLeft:
			a = core.ActionRight
		case g.food.X < head.X && g.direction != DirRight:
			a = core.ActionLeft
		case g.food.Y > head.Y && g.direction != DirUp:
			a = core.ActionDown
		default:
			a = core.ActionUp
		}
		res := stepDir(g, a)
		if res.State.Score < prev {
			t.Fatalf("score decreased: %d -> %d", prev, res.State.Score)
		}
		prev = res.State.Score
	}
}

func TestNoDuplicateSegmentsWhilePlaying(t *testing.T) {
	g := newTestGame(t, config.SnakeConfig{Speed: 25, GridSize: 15, WrapWalls: true}, 6)

	for i := 0; i < 300 && g.fsm.Playing(); i++ {
		stepDir(g, core.ActionNone)

		seen := make(map[Point]bool)
		for _, seg := range g.Body() {
			if seen[seg] {
				t.Fatalf("duplicate segment at %+v on tick %d", seg, i)
			}
			seen[seg] = true
		}
	}
}

func TestNoImmediateReversal(t *testing.T) {
	g := newTestGame(t, config.SnakeConfig{Speed: 25, GridSize: 20}, 7)

	// Moving right; a left intent must not be buffered
	stepDir(g, core.ActionLeft)
	if g.nextDir == DirLeft {
		t.Error("should not allow reversal from right to left")
	}

	stepDir(g, core.ActionDown)
	if g.nextDir != DirDown {
		t.Errorf("expected buffered down, got %v", g.nextDir)
	}
}

func TestTailCellIsSafeWhenNotEating(t *testing.T) {
	g := newTestGame(t, config.SnakeConfig{Speed: 25, GridSize: 20}, 8)

	// A 2x2 loop: head about to enter the current tail cell. The tail
	// retracts on the same move, so this is legal.
	g.snake = []Point{
		{X: 5, Y: 5},
		{X: 6, Y: 5},
		{X: 6, Y: 6},
		{X: 5, Y: 6},
	}
	g.direction = DirDown
	g.nextDir = DirDown
	g.food = Point{X: 0, Y: 0}

	stepDir(g, core.ActionNone)

	if g.fsm.Phase() != core.PhasePlaying {
		t.Errorf("moving into the retracting tail cell should be safe, phase = %v", g.fsm.Phase())
	}
}

func TestSelfCollisionDies(t *testing.T) {
	g := newTestGame(t, config.SnakeConfig{Speed: 25, GridSize: 20}, 9)

	g.snake = []Point{
		{X: 5, Y: 5}, // Head
		{X: 5, Y: 6},
		{X: 6, Y: 6},
		{X: 6, Y: 5},
		{X: 6, Y: 4},
	}
	g.direction = DirRight
	g.nextDir = DirRight
	g.food = Point{X: 0, Y: 0}

	stepDir(g, core.ActionNone)

	if g.fsm.Phase() != core.PhaseGameOver {
		t.Errorf("expected gameover after self collision, got %v", g.fsm.Phase())
	}
}

func TestFoodSpawnFallbackWhenBoardFull(t *testing.T) {
	g := newTestGame(t, config.SnakeConfig{Speed: 25, GridSize: 10}, 10)

	// Cover every cell with snake
	g.snake = g.snake[:0]
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			g.snake = append(g.snake, Point{X: x, Y: y})
		}
	}

	g.spawnFood()

	if g.food != foodFallback {
		t.Errorf("full board should use the fallback coordinate, got %+v", g.food)
	}
}

func TestPauseFreezesMovement(t *testing.T) {
	g := newTestGame(t, config.SnakeConfig{Speed: 25, GridSize: 20}, 11)
	g.food = Point{X: 0, Y: 0}

	input := core.NewInputFrame()
	input.Set(core.ActionPause)
	g.Step(input)

	head := g.Body()[0]
	for i := 0; i < 10; i++ {
		stepDir(g, core.ActionNone)
	}
	if g.Body()[0] != head {
		t.Error("snake must not move while paused")
	}

	// Resume: movement continues without a position jump
	input.Clear()
	input.Set(core.ActionPause)
	g.Step(input)
	stepDir(g, core.ActionNone)
	moved := g.Body()[0]
	if moved == head {
		t.Error("snake should move again after resume")
	}
	dx := core.Abs(moved.X-head.X) + core.Abs(moved.Y-head.Y)
	if dx > 2 {
		t.Errorf("resume produced a movement jump of %d cells", dx)
	}
}

func TestDeterminism(t *testing.T) {
	mk := func() *Game {
		return newTestGame(t, config.SnakeConfig{Speed: 25, GridSize: 20, WrapWalls: true}, 12345)
	}
	g1 := mk()
	g2 := mk()

	input := core.NewInputFrame()
	for i := 0; i < 200; i++ {
		input.Clear()
		if i == 20 {
			input.Set(core.ActionDown)
		}
		if i == 40 {
			input.Set(core.ActionLeft)
		}
		g1.Step(input)
		g2.Step(input)
	}

	if g1.Snapshot() != g2.Snapshot() {
		t.Errorf("same seed and input diverged:\n%+v\n%+v", g1.Snapshot(), g2.Snapshot())
	}
}

func TestRestartResetsWorld(t *testing.T) {
	g := newTestGame(t, config.SnakeConfig{Speed: 25, GridSize: 10, WrapWalls: false}, 13)

	// Walk into the wall
	for i := 0; i < 20 && g.fsm.Playing(); i++ {
		stepDir(g, core.ActionNone)
	}
	if g.fsm.Phase() != core.PhaseGameOver {
		t.Fatal("expected gameover after walking into the wall")
	}

	res := stepDir(g, core.ActionRestart)

	if res.State.Phase != core.PhasePlaying {
		t.Errorf("restart should re-enter playing, got %v", res.State.Phase)
	}
	if res.State.Score != 0 {
		t.Errorf("restart should reset score, got %d", res.State.Score)
	}
	if len(g.Body()) != 3 {
		t.Errorf("restart should reset length to 3, got %d", len(g.Body()))
	}
}
