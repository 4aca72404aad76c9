// Package snake implements the classic grid Snake game.
// Movement runs on a fixed interval derived from the configured speed, so
// cadence is independent of the render tick rate.
package snake

import (
	"fmt"
	"math/rand"

	"github.com/retrobox/retrobox/internal/config"
	"github.com/retrobox/retrobox/internal/core"
	"github.com/retrobox/retrobox/internal/registry"
)

// Direction represents the snake's movement direction.
type Direction int

const (
	DirRight Direction = iota
	DirDown
	DirLeft
	DirUp
)

// String returns a human-readable direction name.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// Point represents a 2D grid coordinate.
type Point struct {
	X, Y int
}

// foodFallback is where food lands when the board has no free cell left.
// Off-board, so it can never be eaten; degradation instead of failure.
var foodFallback = Point{X: -1, Y: -1}

// Game implements the Snake game.
type Game struct {
	cfg     config.SnakeConfig // Settings snapshot, frozen at Reset
	runtime core.RuntimeConfig
	rng     *rand.Rand
	fsm     core.Machine
	tick    uint64

	moveEveryTicks int
	moveTicker     int

	// World state, owned exclusively by Step
	snake     []Point // Head at index 0
	direction Direction
	nextDir   Direction // Buffered direction, committed at move boundary
	growing   bool      // If true, don't remove tail on next move
	food      Point
	score     int

	terminal core.Terminal
}

// Package-level settings injected by the CLI/menu before creation.
var (
	configPath       string
	difficultyPreset config.DifficultyPreset
	customOverride   *config.SnakeConfig
)

// SetConfigPath sets the config file path for the next run.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset for the next run.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.DifficultyPreset(preset)
}

// SetCustom installs caller-edited settings for the custom difficulty.
// Values are clamped to the documented bounds when the run starts.
func SetCustom(cfg config.SnakeConfig) {
	c := cfg
	customOverride = &c
}

// New creates a new Snake game.
func New() *Game {
	return &Game{}
}

func init() {
	registry.Register("snake", func() registry.Game {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return "snake"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Snake"
}

// Reset resolves the settings snapshot and initializes the world.
// The snapshot stays frozen until the next Reset; later edits in the menu
// do not affect an in-progress run.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.rng = rand.New(rand.NewSource(runtime.Seed))
	g.cfg = resolveSettings()

	tickRate := runtime.TickRate
	if tickRate <= 0 {
		tickRate = 60
	}
	g.moveEveryTicks = core.Max(1, tickRate/g.cfg.Speed)

	g.fsm = core.NewMachine()
	g.tick = 0
	g.moveTicker = 0
	g.score = 0
	g.growing = false
	g.terminal = core.TerminalNone

	g.initSnake()
	g.spawnFood()
}

// resolveSettings maps the difficulty tag (or custom overrides) to a
// concrete, clamped parameter set.
func resolveSettings() config.SnakeConfig {
	switch difficultyPreset {
	case config.DifficultyCustom:
		if customOverride != nil {
			return customOverride.Clamped()
		}
		return config.SnakePreset(config.DifficultyNormal)
	case config.DifficultyEasy, config.DifficultyNormal, config.DifficultyHard:
		return config.SnakePreset(difficultyPreset)
	}
	cfg, err := config.LoadSnake(configPath)
	if err != nil {
		return config.DefaultSnakeConfig().Clamped()
	}
	return cfg
}

// initSnake places a length-3 snake mid-board heading right.
func (g *Game) initSnake() {
	cx := g.cfg.GridSize / 2
	cy := g.cfg.GridSize / 2
	g.snake = []Point{
		{X: cx, Y: cy}, // Head
		{X: cx - 1, Y: cy},
		{X: cx - 2, Y: cy},
	}
	g.direction = DirRight
	g.nextDir = DirRight
}

// spawnFood places food at a uniformly random free cell. With zero free
// cells it degrades to the fixed fallback coordinate rather than failing.
func (g *Game) spawnFood() {
	var free []Point
	for y := 0; y < g.cfg.GridSize; y++ {
		for x := 0; x < g.cfg.GridSize; x++ {
			p := Point{X: x, Y: y}
			if !g.isSnakeAt(p) {
				free = append(free, p)
			}
		}
	}

	if len(free) == 0 {
		g.food = foodFallback
		return
	}

	g.food = free[g.rng.Intn(len(free))]
}

// isSnakeAt checks if the snake occupies the given point.
func (g *Game) isSnakeAt(p Point) bool {
	for _, seg := range g.snake {
		if seg == p {
			return true
		}
	}
	return false
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

	// First direction input starts the run
	if g.fsm.Phase() == core.PhaseMenu && hasDirection(input) {
		g.fsm.Start()
	}

	if !g.fsm.Playing() {
		return core.StepResult{State: g.State()}
	}

	// Move first, buffer after: direction intents arriving this tick commit
	// at the next move boundary, never mid-boundary.
	g.moveTicker++
	if g.moveTicker >= g.moveEveryTicks {
		g.moveTicker = 0
		g.move()
	}

	g.bufferDirection(input)

	return core.StepResult{State: g.State(), Terminal: g.terminal}
}

// hasDirection reports whether the frame carries any direction intent.
func hasDirection(input core.InputFrame) bool {
	return input.Has(core.ActionUp) || input.Has(core.ActionDown) ||
		input.Has(core.ActionLeft) || input.Has(core.ActionRight)
}

// bufferDirection stores a direction change for the next move boundary.
// Buffering prevents reversing through the body: the committed direction
// only changes once per grid move.
func (g *Game) bufferDirection(input core.InputFrame) {
	newDir := g.nextDir

	switch {
	case input.Has(core.ActionUp):
		newDir = DirUp
	case input.Has(core.ActionDown):
		newDir = DirDown
	case input.Has(core.ActionLeft):
		newDir = DirLeft
	case input.Has(core.ActionRight):
		newDir = DirRight
	}

	if !isOpposite(newDir, g.direction) {
		g.nextDir = newDir
	}
}

// isOpposite checks if two directions are opposite.
func isOpposite(d1, d2 Direction) bool {
	return (d1 == DirUp && d2 == DirDown) ||
		(d1 == DirDown && d2 == DirUp) ||
		(d1 == DirLeft && d2 == DirRight) ||
		(d1 == DirRight && d2 == DirLeft)
}

// move advances the snake one cell in the committed direction.
func (g *Game) move() {
	if len(g.snake) == 0 {
		return
	}

	g.direction = g.nextDir

	head := g.snake[0]
	newHead := head
	switch g.direction {
	case DirUp:
		newHead.Y--
	case DirDown:
		newHead.Y++
	case DirLeft:
		newHead.X--
	case DirRight:
		newHead.X++
	}

	size := g.cfg.GridSize
	outOfBounds := newHead.X < 0 || newHead.X >= size || newHead.Y < 0 || newHead.Y >= size
	if outOfBounds {
		if g.cfg.WrapWalls {
			newHead.X = (newHead.X + size) % size
			newHead.Y = (newHead.Y + size) % size
		} else {
			g.die()
			return
		}
	}

	eating := newHead == g.food

	// Self-collision excludes the tail cell unless this move also eats:
	// the tail does not retract on an eating tick.
	checkLen := len(g.snake)
	if !eating && checkLen > 0 {
		checkLen--
	}
	for i := 0; i < checkLen; i++ {
		if g.snake[i] == newHead {
			g.die()
			return
		}
	}

	g.snake = append([]Point{newHead}, g.snake...)

	if eating {
		g.score++
		g.growing = true
		g.spawnFood()
	}

	if g.growing {
		g.growing = false
	} else if len(g.snake) > 1 {
		g.snake = g.snake[:len(g.snake)-1]
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

	size := g.cfg.GridSize
	// Each grid cell is two characters wide so the board looks square.
	boardW := size*2 + 2
	boardH := size + 2
	offX := (dst.Width() - boardW) / 2
	offY := core.Max(2, (dst.Height()-boardH)/2)

	hud := fmt.Sprintf(" Snake | Score: %d  Speed: %d  Grid: %dx%d", g.score, g.cfg.Speed, size, size)
	dst.DrawText(0, 0, hud)
	dst.DrawHLine(0, 1, dst.Width(), '─')

	if dst.Width() < boardW || dst.Height() < boardH+2 {
		dst.DrawTextCentered(dst.Height()/2, "Window too small - resize to continue")
		return
	}

	dst.DrawBox(core.NewRect(offX, offY, boardW, boardH))

	cell := func(p Point) (int, int) {
		return offX + 1 + p.X*2, offY + 1 + p.Y
	}

	if g.food.X >= 0 && g.food.Y >= 0 {
		fx, fy := cell(g.food)
		dst.SetColored(fx, fy, '●', core.ColorBrightRed)
	}

	for i, seg := range g.snake {
		sx, sy := cell(seg)
		if i == 0 {
			dst.SetColored(sx, sy, '█', core.ColorBrightGreen)
		} else {
			dst.SetColored(sx, sy, '▓', core.ColorGreen)
		}
	}

	switch g.fsm.Phase() {
	case core.PhaseMenu:
		drawOverlay(dst, "SNAKE", "Press an arrow key to start")
	case core.PhasePaused:
		drawOverlay(dst, "PAUSED", "Press P to resume")
	case core.PhaseGameOver:
		drawOverlay(dst, "GAME OVER", fmt.Sprintf("Score: %d  |  Press R to restart", g.score))
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
