package invaders

import (
	"math/rand"
	"testing"

	"github.com/retrobox/retrobox/internal/config"
	"github.com/retrobox/retrobox/internal/core"
)

const (
	testW    = 80
	testH    = 24
	testSeed = 42
)

func newTestGame(t *testing.T) *Game {
	t.Helper()

	prev := configPath
	t.Cleanup(func() { configPath = prev })
	SetConfigPath("")

	g := New()
	g.Reset(core.RuntimeConfig{ScreenW: testW, ScreenH: testH, TickRate: 60, Seed: testSeed})
	return g
}

func step(g *Game, actions ...core.Action) core.StepResult {
	frame := core.NewInputFrame()
	for _, a := range actions {
		frame.Set(a)
	}
	return g.Step(frame)
}

func TestFormationReversalDropsExactlyOnce(t *testing.T) {
	cfg := config.DefaultInvadersConfig().Formation
	f := NewFormation(cfg, cfg.EdgeMargin, formationTopY)

	startY := f.originY
	drops := 0
	for i := 0; i < 500 && drops == 0; i++ {
		prevX := f.originX
		if f.Step(testW, cfg.EdgeMargin, cfg.DropDistance) {
			drops++
			if f.originX != prevX {
				t.Error("drop step also moved sideways")
			}
			if f.originY != startY+cfg.DropDistance {
				t.Errorf("originY = %d, want %d after one drop", f.originY, startY+cfg.DropDistance)
			}
			if f.dir != -1 {
				t.Error("direction did not reverse at the right edge")
			}
		}
	}
	if drops != 1 {
		t.Fatalf("drops = %d, want exactly 1 reversal", drops)
	}

	// The step after a drop moves sideways again, away from the edge.
	prevX := f.originX
	if f.Step(testW, cfg.EdgeMargin, cfg.DropDistance) {
		t.Fatal("second consecutive drop")
	}
	if f.originX != prevX-1 {
		t.Errorf("originX = %d, want %d (one cell left)", f.originX, prevX-1)
	}
}

func TestStepIntervalShrinksWithCasualties(t *testing.T) {
	g := newTestGame(t)

	full := g.stepInterval()
	for col := 0; col < g.cfg.Formation.Cols; col++ {
		for row := 0; row < g.cfg.Formation.Rows-1; row++ {
			g.formation.Kill(row, col)
		}
	}
	depleted := g.stepInterval()

	if depleted >= full {
		t.Errorf("interval did not shrink: full %d, depleted %d", full, depleted)
	}
	if depleted < g.cfg.Formation.MinStepTicks {
		t.Errorf("interval %d below minimum %d", depleted, g.cfg.Formation.MinStepTicks)
	}
}

func TestLowestPerColumnSkipsDeadAliens(t *testing.T) {
	g := newTestGame(t)
	lastRow := g.cfg.Formation.Rows - 1

	g.formation.Kill(lastRow, 0)
	lowest := g.formation.LowestPerColumn()

	if lowest[0] != lastRow-1 {
		t.Errorf("column 0 lowest = %d, want %d", lowest[0], lastRow-1)
	}
	if lowest[1] != lastRow {
		t.Errorf("column 1 lowest = %d, want %d", lowest[1], lastRow)
	}

	for row := 0; row < g.cfg.Formation.Rows; row++ {
		g.formation.Kill(row, 2)
	}
	if got := g.formation.LowestPerColumn()[2]; got != -1 {
		t.Errorf("empty column lowest = %d, want -1", got)
	}
}

func TestShieldErosionTakesNeighbor(t *testing.T) {
	cfg := config.DefaultInvadersConfig().Shields
	shields := newShields(cfg, testW, 20)
	s := shields[0]

	before := s.Intact()
	rng := rand.New(rand.NewSource(1))
	s.Hit(s.X+2, s.Y+1, rng)

	lost := before - s.Intact()
	if lost != 2 {
		t.Errorf("hit removed %d blocks, want struck plus one neighbor", lost)
	}
	if s.BlockAt(s.X+2, s.Y+1) {
		t.Error("struck block still intact")
	}
}

func TestPlayerBulletCapAndKill(t *testing.T) {
	g := newTestGame(t)
	step(g, core.ActionConfirm) // Start without firing

	// Park under column 0, which sits in a gap between shields, and fire.
	x, _ := g.formation.Position(0, 0)
	g.playerX = x
	step(g, core.ActionFire)
	if g.playerBullet == nil {
		t.Fatal("fire did not spawn a bullet")
	}
	first := g.playerBullet
	step(g, core.ActionFire)
	if g.playerBullet != first {
		t.Fatal("second fire replaced the live bullet")
	}

	total := g.cfg.Formation.Rows * g.cfg.Formation.Cols
	for i := 0; i < 30 && g.playerBullet != nil; i++ {
		step(g)
	}

	if g.formation.AliveCount() != total-1 {
		t.Fatalf("alive = %d, want %d after one kill", g.formation.AliveCount(), total-1)
	}
	if g.score == 0 {
		t.Error("kill did not score")
	}

	// The cap frees up once the bullet resolves.
	step(g, core.ActionFire)
	if g.playerBullet == nil {
		t.Error("cannot fire again after bullet resolved")
	}
}

func TestWaveClearCarriesScoreAndLives(t *testing.T) {
	g := newTestGame(t)
	step(g, core.ActionConfirm)

	g.score = 500
	g.lives = 2
	for row := 0; row < g.cfg.Formation.Rows; row++ {
		for col := 0; col < g.cfg.Formation.Cols; col++ {
			g.formation.Kill(row, col)
		}
	}

	res := step(g)
	if res.Terminal != core.TerminalWaveCleared {
		t.Fatalf("terminal = %v, want wavecleared", res.Terminal)
	}
	if g.wave != 2 {
		t.Errorf("wave = %d, want 2", g.wave)
	}
	if g.score != 500 || g.lives != 2 {
		t.Errorf("score/lives = %d/%d, want carried 500/2", g.score, g.lives)
	}
	if g.formation.AliveCount() != g.cfg.Formation.Rows*g.cfg.Formation.Cols {
		t.Error("new wave formation not full")
	}
	if res.State.Phase != core.PhasePlaying {
		t.Errorf("phase = %v, want playing through the wave change", res.State.Phase)
	}
}

func TestWaveShortensFireInterval(t *testing.T) {
	g := newTestGame(t)
	base := g.fireInterval()
	g.wave = 3
	if got := g.fireInterval(); got >= base {
		t.Errorf("wave 3 interval %d, want shorter than %d", got, base)
	}
	g.wave = 1000
	if got := g.fireInterval(); got != g.cfg.Fire.MinIntervalTicks {
		t.Errorf("interval %d, want clamped to %d", got, g.cfg.Fire.MinIntervalTicks)
	}
}

func TestInvasionEndsRun(t *testing.T) {
	g := newTestGame(t)
	step(g, core.ActionConfirm)

	// Drop the formation so its lowest row sits on the cannon row.
	g.formation.originY = g.playerY - 1 - (g.cfg.Formation.Rows-1)*g.cfg.Formation.SpacingY

	res := step(g)
	if g.fsm.Phase() != core.PhaseGameOver {
		t.Fatalf("phase = %v, want gameover on invasion", g.fsm.Phase())
	}
	if res.Terminal != core.TerminalCollided {
		t.Errorf("terminal = %v, want collided", res.Terminal)
	}
}

// muzzle pushes the enemy fire interval out of reach so long-running
// tests stay free of random incoming bullets.
func muzzle(g *Game) {
	g.cfg.Fire.BaseIntervalTicks = 1 << 20
	g.cfg.Fire.MinIntervalTicks = 1 << 20
}

func TestInvincibilityWindowAbsorbsSecondHit(t *testing.T) {
	g := newTestGame(t)
	muzzle(g)
	step(g, core.ActionConfirm)
	startLives := g.lives

	hit := func() {
		g.enemyBullets = append(g.enemyBullets, Bullet{
			X:     g.playerX,
			Y:     float64(g.playerY) - 0.5,
			Speed: 0.5,
		})
		step(g)
	}

	hit()
	if g.lives != startLives-1 {
		t.Fatalf("lives = %d, want %d after first hit", g.lives, startLives-1)
	}
	if g.invincible.Done(g.tick) {
		t.Fatal("no invincibility window after a hit")
	}

	hit()
	if g.lives != startLives-1 {
		t.Errorf("lives = %d, hit landed inside the invincibility window", g.lives)
	}

	// After the window expires, hits land again.
	for i := 0; i < g.cfg.Player.InvincibleTicks; i++ {
		step(g)
	}
	hit()
	if g.lives != startLives-2 {
		t.Errorf("lives = %d, want %d after the window expired", g.lives, startLives-2)
	}
}

func TestZeroLivesEndsRun(t *testing.T) {
	g := newTestGame(t)
	muzzle(g)
	step(g, core.ActionConfirm)
	g.lives = 1

	g.enemyBullets = append(g.enemyBullets, Bullet{
		X:     g.playerX,
		Y:     float64(g.playerY) - 0.5,
		Speed: 0.5,
	})
	res := step(g)

	if g.fsm.Phase() != core.PhaseGameOver {
		t.Fatalf("phase = %v, want gameover at zero lives", g.fsm.Phase())
	}
	if res.Terminal != core.TerminalCollided {
		t.Errorf("terminal = %v, want collided", res.Terminal)
	}
}

func TestEnemyFireComesFromLowestAlien(t *testing.T) {
	g := newTestGame(t)
	step(g, core.ActionConfirm)

	for i := 0; i < g.fireInterval(); i++ {
		step(g)
	}
	if len(g.enemyBullets) == 0 {
		t.Fatal("no enemy bullet after the fire interval")
	}

	b := g.enemyBullets[0]
	lowest := g.formation.LowestPerColumn()
	matched := false
	for col, row := range lowest {
		if row < 0 {
			continue
		}
		x, _ := g.formation.Position(row, col)
		if b.X == x {
			matched = true
			break
		}
	}
	if !matched {
		t.Errorf("bullet x=%d does not align with any lowest alive alien", b.X)
	}
}
