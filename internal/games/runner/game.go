// Package runner implements the side-scrolling endless runner. The world
// accelerates leftward under the player, who jumps (and double-jumps)
// across procedurally generated platforms, dodging spikes and collecting
// coins.
package runner

import (
	"fmt"
	"math/rand"

	"github.com/retrobox/retrobox/internal/config"
	"github.com/retrobox/retrobox/internal/core"
	"github.com/retrobox/retrobox/internal/registry"
)

// playerScreenX is the fixed column the player is drawn at; the world
// scrolls underneath.
const playerScreenX = 12

// Game implements the Runner game.
type Game struct {
	cfg        config.RunnerConfig
	runtime    core.RuntimeConfig
	rng        *rand.Rand
	fsm        core.Machine
	difficulty *config.DifficultyManager
	tick       uint64

	terrain *Terrain
	dist    float64 // World x of the left screen edge

	playerY   float64 // Feet position
	vel       float64
	grounded  bool
	jumpsUsed int
	boostLeft int // Hold-boost ticks remaining for the current jump

	coins    int
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

// New creates a new Runner game.
func New() *Game {
	return &Game{}
}

func init() {
	registry.Register("runner", func() registry.Game {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return "runner"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Pixel Runner"
}

// Reset resolves settings and rebuilds the world with the player standing
// on the starting platform.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.rng = rand.New(rand.NewSource(runtime.Seed))

	cfg, err := config.LoadRunner(configPath)
	if err != nil {
		cfg = config.DefaultRunnerConfig()
	}
	config.ApplyRunnerPreset(&cfg, difficultyPreset)
	g.cfg = cfg
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)

	g.fsm = core.NewMachine()
	g.tick = 0
	g.dist = 0
	g.coins = 0
	g.terminal = core.TerminalNone
	g.vel = 0
	g.grounded = true
	g.jumpsUsed = 0
	g.boostLeft = cfg.Physics.HoldBoostMax

	g.terrain = NewTerrain(runtime.Seed, cfg.Generation, g.difficulty, runtime.ScreenW, runtime.ScreenH)
	g.playerY = float64(runtime.ScreenH - 4) // Starting platform top
	g.ensureTerrain()
}

// speed is the current world scroll rate, ramping with elapsed time up
// to the cap.
func (g *Game) speed() float64 {
	s := g.cfg.Physics.BaseSpeed + g.cfg.Physics.Acceleration*float64(g.tick)
	if s > g.cfg.Physics.MaxSpeed {
		s = g.cfg.Physics.MaxSpeed
	}
	return s
}

// playerWorldX is the player's position in world coordinates.
func (g *Game) playerWorldX() float64 {
	return g.dist + playerScreenX
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
		g.fsm.Start()
		return core.StepResult{State: g.State()}
	}

	if input.Has(core.ActionPause) {
		g.fsm.TogglePause()
	}

	// The first jump starts the run and counts as a jump.
	if g.fsm.Phase() == core.PhaseMenu && input.Has(core.ActionJump) {
		g.fsm.Start()
	}

	if !g.fsm.Playing() {
		return core.StepResult{State: g.State()}
	}

	g.dist += g.speed()

	g.applyJump(input)
	prevFeet := g.playerY
	g.applyPhysics()
	g.resolveLanding(prevFeet)
	g.collectCoins()
	g.checkDeath()

	g.ensureTerrain()
	g.terrain.Prune(int(g.dist) - 4)

	return core.StepResult{State: g.State(), Terminal: g.terminal}
}

// applyJump handles the impulse on press and the capped boost while held.
// The boost budget refills only on landing, so a double jump shares it.
func (g *Game) applyJump(input core.InputFrame) {
	if input.Has(core.ActionJump) && g.jumpsUsed < g.cfg.Physics.MaxJumps {
		g.vel = g.cfg.Physics.JumpImpulse
		g.jumpsUsed++
		g.grounded = false
	}

	if input.Has(core.ActionJumpHeld) && g.boostLeft > 0 && g.vel < 0 {
		g.vel -= g.cfg.Physics.HoldBoost
		g.boostLeft--
	}
}

func (g *Game) applyPhysics() {
	if g.grounded {
		return
	}
	g.vel += g.cfg.Physics.Gravity
	if g.vel > g.cfg.Physics.MaxFallSpeed {
		g.vel = g.cfg.Physics.MaxFallSpeed
	}
	g.playerY += g.vel
}

// resolveLanding snaps a downward-moving player onto a platform top when
// the feet cross it, and drops the player off an edge they ran past.
// The comparison uses the pre-physics feet position so a fast fall cannot
// tunnel through the top in a single tick; the landing band adds tolerance
// for feet already marginally below the top when the platform scrolls in.
func (g *Game) resolveLanding(prevFeet float64) {
	worldX := g.playerWorldX()
	p, under := g.terrain.PlatformAt(worldX)

	if g.grounded {
		if !under || float64(p.Y) != g.playerY {
			g.grounded = false // Ran off the edge or onto a lower ledge
		}
		return
	}

	if g.vel <= 0 || !under {
		return
	}
	top := float64(p.Y)
	if prevFeet <= top+g.cfg.Physics.LandingBand && g.playerY >= top {
		g.playerY = top
		g.vel = 0
		g.grounded = true
		g.jumpsUsed = 0
		g.boostLeft = g.cfg.Physics.HoldBoostMax
	}
}

// collectCoins picks up every untaken coin within the proximity radius.
func (g *Game) collectCoins() {
	worldX := g.playerWorldX()
	for i := range g.terrain.coins {
		c := &g.terrain.coins[i]
		if c.Taken {
			continue
		}
		if core.Dist(worldX, g.playerY-1, float64(c.X), float64(c.Y)) <= g.cfg.Physics.CoinRadius {
			c.Taken = true
			g.coins++
		}
	}
}

// checkDeath tests obstacle overlap (with the forgiveness shrink) and the
// bottom of the viewport.
func (g *Game) checkDeath() {
	if g.playerY > float64(g.runtime.ScreenH) {
		g.die()
		return
	}

	// The player occupies a 1x2 box: head above the feet row.
	player := core.FRect{X: g.playerWorldX() - 0.5, Y: g.playerY - 2, W: 1, H: 2}
	for _, o := range g.terrain.obstacles {
		hitbox := core.FRect{X: float64(o.X), Y: float64(o.Y), W: 1, H: 1}.Shrink(g.cfg.Physics.Forgiveness)
		if player.Intersects(hitbox) {
			g.die()
			return
		}
	}
}

func (g *Game) die() {
	g.fsm.Die()
	g.terminal = core.TerminalCollided
}

// ensureTerrain keeps the generated edge past the right of the screen by
// the configured lookahead.
func (g *Game) ensureTerrain() {
	until := int(g.dist) + g.runtime.ScreenW + g.cfg.Generation.SpawnAhead
	g.terrain.EnsureUntil(until, g.State().Score, int(g.tick))
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score: int(g.dist)/g.cfg.Scoring.DistanceDivisor + g.coins*g.cfg.Scoring.CoinBonus,
		Phase: g.fsm.Phase(),
	}
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	hud := fmt.Sprintf(" Pixel Runner | Score: %d  Coins: %d", g.State().Score, g.coins)
	dst.DrawText(0, 0, hud)
	dst.DrawHLine(0, 1, dst.Width(), '─')

	offset := int(g.dist)

	for _, p := range g.terrain.platforms {
		for x := p.X; x < p.X+p.W; x++ {
			sx := x - offset
			if sx < 0 || sx >= dst.Width() || p.Y >= dst.Height() {
				continue
			}
			dst.SetColored(sx, p.Y, '▔', core.ColorWhite)
			for y := p.Y + 1; y < core.Min(p.Y+3, dst.Height()); y++ {
				dst.SetColored(sx, y, '░', core.ColorGray)
			}
		}
	}

	for _, o := range g.terrain.obstacles {
		sx := o.X - offset
		if sx >= 0 && sx < dst.Width() && o.Y >= 0 && o.Y < dst.Height() {
			dst.SetColored(sx, o.Y, '▲', core.ColorBrightRed)
		}
	}

	for _, c := range g.terrain.coins {
		if c.Taken {
			continue
		}
		sx := c.X - offset
		if sx >= 0 && sx < dst.Width() && c.Y >= 0 && c.Y < dst.Height() {
			dst.SetColored(sx, c.Y, '¤', core.ColorBrightYellow)
		}
	}

	py := int(g.playerY + 0.5)
	if py >= 1 && py < dst.Height() {
		dst.SetColored(playerScreenX, py-1, '◉', core.ColorBrightCyan)
		dst.SetColored(playerScreenX, py, '╨', core.ColorBrightCyan)
	}

	switch g.fsm.Phase() {
	case core.PhaseMenu:
		drawOverlay(dst, "PIXEL RUNNER", "Press SPACE to jump and start")
	case core.PhasePaused:
		drawOverlay(dst, "PAUSED", "Press P to resume")
	case core.PhaseGameOver:
		drawOverlay(dst, "GAME OVER", fmt.Sprintf("Score: %d  |  Press R to restart", g.State().Score))
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
