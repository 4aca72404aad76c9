// Package flappy implements the one-button flying game. The bird falls
// under gravity; a flap sets the vertical velocity upward. Pipes scroll
// left at a constant speed and score one point each when passed.
package flappy

import (
	"fmt"
	"math/rand"

	"github.com/retrobox/retrobox/internal/config"
	"github.com/retrobox/retrobox/internal/core"
	"github.com/retrobox/retrobox/internal/registry"
)

// Bird is the player avatar. Position and velocity are floats; rendering
// rounds to the nearest cell.
type Bird struct {
	X   float64
	Y   float64
	Vel float64 // Vertical velocity, positive = down
}

// Game implements the Flappy game.
type Game struct {
	cfg        config.FlappyConfig
	runtime    core.RuntimeConfig
	rng        *rand.Rand
	fsm        core.Machine
	difficulty *config.DifficultyManager
	tick       uint64

	bird     Bird
	pipes    *PipeManager
	score    int
	groundY  int
	terminal core.Terminal
}

// Package-level settings injected by the CLI/menu before creation.
var (
	configPath       string
	difficultyPreset config.DifficultyPreset
)

// SetConfigPath sets the config file path for the next run.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset for the next run.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.DifficultyPreset(preset)
}

// New creates a new Flappy game.
func New() *Game {
	return &Game{}
}

func init() {
	registry.Register("flappy", func() registry.Game {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return "flappy"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Flappy"
}

// Reset resolves settings and initializes the world. The bird starts at
// mid-height in the ready state; the first flap starts the run.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.rng = rand.New(rand.NewSource(runtime.Seed))
	g.cfg = resolveSettings()
	g.difficulty = config.NewDifficultyManager(g.cfg.Difficulty)

	g.fsm = core.NewMachine()
	g.tick = 0
	g.score = 0
	g.terminal = core.TerminalNone
	g.groundY = runtime.ScreenH - 1

	g.bird = Bird{
		X:   float64(g.cfg.Player.X),
		Y:   float64(runtime.ScreenH) / 2,
		Vel: 0,
	}

	if g.pipes == nil {
		g.pipes = NewPipeManager(runtime.Seed, runtime.ScreenW, runtime.ScreenH, &g.cfg, g.difficulty)
	} else {
		g.pipes.UpdateConfig(&g.cfg, g.difficulty)
		g.pipes.UpdateScreenSize(runtime.ScreenW, runtime.ScreenH)
		g.pipes.Reset(runtime.Seed)
	}
}

// resolveSettings maps the difficulty tag to a concrete parameter set.
func resolveSettings() config.FlappyConfig {
	cfg, err := config.LoadFlappy(configPath)
	if err != nil {
		cfg = config.DefaultFlappyConfig()
	}
	config.ApplyFlappyPreset(&cfg, difficultyPreset)
	return cfg
}

// Step advances the game by one tick.
func (g *Game) Step(input core.InputFrame) core.StepResult {
	g.tick++
	g.terminal = core.TerminalNone

	if input.Has(core.ActionRestart) && g.fsm.Phase() == core.PhaseGameOver {
		seed := g.rng.Int63()
		g.Reset(core.RuntimeConfig{
			Seed:     seed,
			ScreenW:  g.runtime.ScreenW,
			ScreenH:  g.runtime.ScreenH,
			TickRate: g.runtime.TickRate,
		})
		return core.StepResult{State: g.State()}
	}

	if input.Has(core.ActionPause) {
		g.fsm.TogglePause()
	}

	flap := input.Has(core.ActionJump) || input.Has(core.ActionUp)

	// Ready state: the first flap both starts the run and counts as a flap.
	if g.fsm.Phase() == core.PhaseMenu && flap {
		g.fsm.Start()
	}

	if !g.fsm.Playing() {
		return core.StepResult{State: g.State()}
	}

	if flap {
		g.bird.Vel = g.cfg.Physics.FlapImpulse
	}

	g.bird.Vel += g.cfg.Physics.Gravity
	if g.bird.Vel > g.cfg.Physics.MaxFallSpeed {
		g.bird.Vel = g.cfg.Physics.MaxFallSpeed
	}
	g.bird.Y += g.bird.Vel

	g.score += g.pipes.Update(g.bird.X, g.score, int(g.tick))

	g.checkCollisions()

	return core.StepResult{State: g.State(), Terminal: g.terminal}
}

// checkCollisions tests the bird against ground, ceiling and pipes.
func (g *Game) checkCollisions() {
	r := g.cfg.Player.Radius

	if g.bird.Y+r >= float64(g.groundY) || g.bird.Y-r <= 0 {
		g.die()
		return
	}

	if g.pipes.CheckCollision(g.bird.X, g.bird.Y, r, g.groundY) {
		g.die()
	}
}

// die ends the run with a collision terminal.
func (g *Game) die() {
	g.fsm.Die()
	g.terminal = core.TerminalCollided
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score: g.score,
		Phase: g.fsm.Phase(),
	}
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	hud := fmt.Sprintf(" Flappy | Score: %d", g.score)
	dst.DrawText(0, 0, hud)
	dst.DrawHLine(0, 1, dst.Width(), '─')

	for _, p := range g.pipes.Pipes() {
		g.drawPipe(dst, p)
	}

	dst.DrawHLine(0, g.groundY, dst.Width(), '▀')

	bx := int(g.bird.X + 0.5)
	by := int(g.bird.Y + 0.5)
	glyph := '>'
	if g.bird.Vel < 0 {
		glyph = '^'
	}
	dst.SetColored(bx, by, glyph, core.ColorBrightYellow)

	switch g.fsm.Phase() {
	case core.PhaseMenu:
		drawOverlay(dst, "FLAPPY", "Press SPACE to flap and start")
	case core.PhasePaused:
		drawOverlay(dst, "PAUSED", "Press P to resume")
	case core.PhaseGameOver:
		drawOverlay(dst, "GAME OVER", fmt.Sprintf("Score: %d  |  Press R to restart", g.score))
	}
}

// drawPipe renders both halves of a pipe column with caps at the gap.
func (g *Game) drawPipe(dst *core.Screen, p Pipe) {
	x := int(p.X + 0.5)
	width := g.cfg.Obstacles.PipeWidth

	for col := 0; col < width; col++ {
		cx := x + col
		if cx < 0 || cx >= dst.Width() {
			continue
		}
		for y := 2; y < p.GapY; y++ {
			dst.SetColored(cx, y, '█', core.ColorGreen)
		}
		for y := p.GapY + p.GapHeight; y < g.groundY; y++ {
			dst.SetColored(cx, y, '█', core.ColorGreen)
		}
		if p.GapY > 2 {
			dst.SetColored(cx, p.GapY-1, '▄', core.ColorBrightGreen)
		}
		if p.GapY+p.GapHeight < g.groundY {
			dst.SetColored(cx, p.GapY+p.GapHeight, '▀', core.ColorBrightGreen)
		}
	}
}

// drawOverlay draws a centered message box.
func drawOverlay(dst *core.Screen, title, subtitle string) {
	boxW := core.Max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	dst.DrawText(boxX+(boxW-len(title))/2, boxY+1, title)
	dst.DrawText(boxX+(boxW-len(subtitle))/2, boxY+3, subtitle)
}
