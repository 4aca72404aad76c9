// Package invaders implements the fixed-screen shooter. A formation of
// aliens marches and drops toward the player cannon behind destructible
// shields; clearing a wave brings a faster one.
package invaders

import (
	"fmt"
	"math/rand"

	"github.com/retrobox/retrobox/internal/config"
	"github.com/retrobox/retrobox/internal/core"
	"github.com/retrobox/retrobox/internal/registry"
)

const animHitFlash core.AnimKind = 1

// formationTopY is the row where the top alien row spawns each wave.
const formationTopY = 3

// Bullet travels vertically. Speed is signed: negative is up.
type Bullet struct {
	X     int
	Y     float64
	Speed float64
}

// Cell returns the screen cell the bullet currently occupies.
func (b Bullet) Cell() (int, int) {
	return b.X, int(b.Y + 0.5)
}

// UFO is the bonus saucer crossing the top of the screen.
type UFO struct {
	X      float64
	Active bool
}

// Game implements the Invaders game.
type Game struct {
	cfg     config.InvadersConfig
	runtime core.RuntimeConfig
	rng     *rand.Rand
	fsm     core.Machine
	tick    uint64

	formation *Formation
	shields   []*Shield

	playerX      int
	playerY      int
	lives        int
	invincible   core.Anim
	playerBullet *Bullet
	enemyBullets []Bullet

	ufo      UFO
	ufoTimer int // Ticks until the next saucer

	stepTicker int
	fireTicker int

	wave     int
	score    int
	terminal core.Terminal
}

// Package-level settings injected by the CLI/menu before creation.
var configPath string

// SetConfigPath sets the config file path for the next run.
func SetConfigPath(path string) {
	configPath = path
}

// New creates a new Invaders game.
func New() *Game {
	return &Game{}
}

func init() {
	registry.Register("invaders", func() registry.Game {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return "invaders"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Invaders"
}

// Reset resolves settings and initializes the first wave.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.rng = rand.New(rand.NewSource(runtime.Seed))

	cfg, err := config.LoadInvaders(configPath)
	if err != nil {
		cfg = config.DefaultInvadersConfig()
	}
	g.cfg = cfg

	g.fsm = core.NewMachine()
	g.tick = 0
	g.score = 0
	g.wave = 1
	g.lives = cfg.Player.Lives
	g.terminal = core.TerminalNone
	g.invincible = core.Anim{}

	g.playerY = runtime.ScreenH - 2
	g.playerX = runtime.ScreenW / 2

	g.newWave()
}

// newWave rebuilds the formation, shields and bullets. Score and lives
// carry over between waves.
func (g *Game) newWave() {
	g.formation = NewFormation(g.cfg.Formation, g.cfg.Formation.EdgeMargin, formationTopY)
	g.shields = newShields(g.cfg.Shields, g.runtime.ScreenW, g.playerY-1)
	g.playerBullet = nil
	g.enemyBullets = g.enemyBullets[:0]
	g.ufo = UFO{}
	g.ufoTimer = g.ufoDelay()
	g.stepTicker = 0
	g.fireTicker = 0
}

// ufoDelay picks a random time to the next saucer spawn.
func (g *Game) ufoDelay() int {
	span := g.cfg.UFO.MaxSpawnTicks - g.cfg.UFO.MinSpawnTicks
	if span <= 0 {
		return g.cfg.UFO.MinSpawnTicks
	}
	return g.cfg.UFO.MinSpawnTicks + g.rng.Intn(span)
}

// stepInterval shrinks as aliens die and waves pass: the fewer remain,
// the faster the block marches.
func (g *Game) stepInterval() int {
	base := float64(g.cfg.Formation.BaseStepTicks) * g.formation.AliveFraction()
	interval := int(base) - (g.wave-1)*g.cfg.Formation.WaveSpeedup
	return core.Max(g.cfg.Formation.MinStepTicks, interval)
}

// fireInterval shrinks per wave.
func (g *Game) fireInterval() int {
	interval := g.cfg.Fire.BaseIntervalTicks - (g.wave-1)*g.cfg.Fire.WaveReduction
	return core.Max(g.cfg.Fire.MinIntervalTicks, interval)
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

	if g.fsm.Phase() == core.PhaseMenu && hasIntent(input) {
		g.fsm.Start()
	}

	if !g.fsm.Playing() {
		return core.StepResult{State: g.State()}
	}

	g.movePlayer(input)
	if input.Has(core.ActionFire) && g.playerBullet == nil {
		g.playerBullet = &Bullet{X: g.playerX, Y: float64(g.playerY - 1), Speed: -g.cfg.Player.BulletSpeed}
	}

	g.advanceFormation()
	g.enemyFire()
	g.updateUFO()
	g.moveBullets()
	g.checkPlayerHits()
	g.checkInvasion()

	if g.fsm.Playing() && g.formation.AliveCount() == 0 {
		g.terminal = core.TerminalWaveCleared
		g.wave++
		g.newWave()
	}

	return core.StepResult{State: g.State(), Terminal: g.terminal}
}

// hasIntent reports whether the frame carries any gameplay intent.
func hasIntent(input core.InputFrame) bool {
	return input.Has(core.ActionLeft) || input.Has(core.ActionRight) ||
		input.Has(core.ActionFire) || input.Has(core.ActionConfirm)
}

func (g *Game) movePlayer(input core.InputFrame) {
	if input.Has(core.ActionLeft) {
		g.playerX -= g.cfg.Player.Speed
	}
	if input.Has(core.ActionRight) {
		g.playerX += g.cfg.Player.Speed
	}
	g.playerX = core.Clamp(g.playerX, 1, g.runtime.ScreenW-2)
}

func (g *Game) advanceFormation() {
	g.stepTicker++
	if g.stepTicker < g.stepInterval() {
		return
	}
	g.stepTicker = 0
	g.formation.Step(g.runtime.ScreenW, g.cfg.Formation.EdgeMargin, g.cfg.Formation.DropDistance)
}

// enemyFire picks a shooter uniformly among the lowest live alien of each
// occupied column.
func (g *Game) enemyFire() {
	g.fireTicker++
	if g.fireTicker < g.fireInterval() {
		return
	}
	g.fireTicker = 0

	lowest := g.formation.LowestPerColumn()
	var shooters []int
	for col, row := range lowest {
		if row >= 0 {
			shooters = append(shooters, col)
		}
	}
	if len(shooters) == 0 {
		return
	}

	col := shooters[g.rng.Intn(len(shooters))]
	x, y := g.formation.Position(lowest[col], col)
	g.enemyBullets = append(g.enemyBullets, Bullet{
		X:     x,
		Y:     float64(y + 1),
		Speed: g.cfg.Fire.BulletSpeed,
	})
}

func (g *Game) updateUFO() {
	if g.ufo.Active {
		g.ufo.X += g.cfg.UFO.Speed
		if int(g.ufo.X) > g.runtime.ScreenW {
			g.ufo = UFO{}
			g.ufoTimer = g.ufoDelay()
		}
		return
	}

	g.ufoTimer--
	if g.ufoTimer <= 0 {
		g.ufo = UFO{X: -2, Active: true}
	}
}

// moveBullets advances all bullets and resolves what they strike.
func (g *Game) moveBullets() {
	if b := g.playerBullet; b != nil {
		b.Y += b.Speed
		x, y := b.Cell()
		switch {
		case y < 2:
			g.playerBullet = nil
		case g.hitShield(x, y):
			g.playerBullet = nil
		case g.hitUFO(x, y):
			g.playerBullet = nil
		default:
			if row, col, ok := g.formation.AlienAt(x, y); ok {
				g.score += g.formation.Kill(row, col)
				g.playerBullet = nil
			}
		}
	}

	alive := g.enemyBullets[:0]
	for _, b := range g.enemyBullets {
		b.Y += b.Speed
		x, y := b.Cell()
		if y > g.runtime.ScreenH-1 {
			continue
		}
		if g.hitShield(x, y) {
			continue
		}
		alive = append(alive, b)
	}
	g.enemyBullets = alive
}

// hitShield erodes a shield block when the cell holds one.
func (g *Game) hitShield(x, y int) bool {
	for _, s := range g.shields {
		if s.BlockAt(x, y) {
			s.Hit(x, y, g.rng)
			return true
		}
	}
	return false
}

// hitUFO awards the saucer bonus when the cell strikes it.
func (g *Game) hitUFO(x, y int) bool {
	if !g.ufo.Active || y != 2 {
		return false
	}
	if core.Abs(x-int(g.ufo.X+0.5)) > 1 {
		return false
	}
	g.score += g.cfg.UFO.Points
	g.ufo = UFO{}
	g.ufoTimer = g.ufoDelay()
	return true
}

// checkPlayerHits resolves enemy bullets against the cannon. A hit inside
// the invincibility window is ignored; otherwise it costs a life and opens
// a fresh window.
func (g *Game) checkPlayerHits() {
	alive := g.enemyBullets[:0]
	for _, b := range g.enemyBullets {
		x, y := b.Cell()
		if y == g.playerY && core.Abs(x-g.playerX) <= 1 {
			if g.invincible.Done(g.tick) {
				g.loseLife()
			}
			continue
		}
		alive = append(alive, b)
	}
	g.enemyBullets = alive
}

func (g *Game) loseLife() {
	g.lives--
	if g.lives <= 0 {
		g.fsm.Die()
		g.terminal = core.TerminalCollided
		return
	}
	g.invincible = core.StartAnim(animHitFlash, g.tick, uint64(g.cfg.Player.InvincibleTicks))
}

// checkInvasion ends the run when the formation reaches the cannon row.
func (g *Game) checkInvasion() {
	if !g.fsm.Playing() {
		return
	}
	if g.formation.LowestY() >= g.playerY-1 {
		g.fsm.Die()
		g.terminal = core.TerminalCollided
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score: g.score,
		Lives: g.lives,
		Wave:  g.wave,
		Phase: g.fsm.Phase(),
	}
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	hud := fmt.Sprintf(" Invaders | Score: %d  Lives: %d  Wave: %d", g.score, g.lives, g.wave)
	dst.DrawText(0, 0, hud)
	dst.DrawHLine(0, 1, dst.Width(), '─')

	if g.ufo.Active {
		ux := int(g.ufo.X + 0.5)
		dst.DrawTextColored(ux-1, 2, "<o>", core.ColorBrightMagenta)
	}

	for row := 0; row < g.cfg.Formation.Rows; row++ {
		for col := 0; col < g.cfg.Formation.Cols; col++ {
			if !g.formation.IsAlive(row, col) {
				continue
			}
			x, y := g.formation.Position(row, col)
			if y >= dst.Height() {
				continue
			}
			dst.SetColored(x, y, alienGlyph(row), core.ColorBrightGreen)
		}
	}

	for _, s := range g.shields {
		for r, rowBlocks := range s.blocks {
			for c, intact := range rowBlocks {
				if intact {
					dst.SetColored(s.X+c, s.Y+r, '▒', core.ColorGreen)
				}
			}
		}
	}

	if b := g.playerBullet; b != nil {
		x, y := b.Cell()
		dst.SetColored(x, y, '|', core.ColorBrightWhite)
	}
	for _, b := range g.enemyBullets {
		x, y := b.Cell()
		dst.SetColored(x, y, '¡', core.ColorBrightRed)
	}

	// Cannon flashes while invincible.
	if g.invincible.Done(g.tick) || (g.tick/4)%2 == 0 {
		dst.DrawTextColored(g.playerX-1, g.playerY, "▄█▄", core.ColorBrightCyan)
	}

	switch g.fsm.Phase() {
	case core.PhaseMenu:
		drawOverlay(dst, "INVADERS", "Press F to fire and start")
	case core.PhasePaused:
		drawOverlay(dst, "PAUSED", "Press P to resume")
	case core.PhaseGameOver:
		drawOverlay(dst, "GAME OVER", fmt.Sprintf("Score: %d  |  Press R to restart", g.score))
	}
}

// alienGlyph picks the sprite rune for a formation row.
func alienGlyph(row int) rune {
	switch {
	case row == 0:
		return 'W'
	case row <= 2:
		return 'Y'
	default:
		return 'V'
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
