// Package match3 implements the timed match-three puzzle. Adjacent gems
// swap under a cursor; runs of three or more clear, gravity compacts the
// columns, and chain reactions multiply the score.
package match3

import (
	"fmt"
	"math/rand"

	"github.com/retrobox/retrobox/internal/config"
	"github.com/retrobox/retrobox/internal/core"
	"github.com/retrobox/retrobox/internal/registry"
)

// Animation kinds for the engine state machine. The board mode is exactly
// the active animation: no animation means idle, accepting input.
const (
	animSwap core.AnimKind = iota + 1
	animSwapBack
	animClear
	animFall
)

// Game implements the Match-Three game.
type Game struct {
	cfg     config.Match3Config
	runtime core.RuntimeConfig
	rng     *rand.Rand
	fsm     core.Machine
	tick    uint64

	board *Board
	anim  core.Anim

	cursor   Cell
	selected *Cell // First cell of a pending swap, nil when none

	swapA, swapB Cell          // Cells of the in-flight swap
	matched      map[Cell]bool // Cells clearing under the current animation
	cascade      int           // Chain index: 1 for the swap's match, +1 per chain

	hint        *Move
	lastInputAt uint64
	timeLeft    int // Countdown in ticks
	score       int
	terminal    core.Terminal
}

// Package-level settings injected by the CLI/menu before creation.
var configPath string

// SetConfigPath sets the config file path for the next run.
func SetConfigPath(path string) {
	configPath = path
}

// New creates a new Match-Three game.
func New() *Game {
	return &Game{}
}

func init() {
	registry.Register("match3", func() registry.Game {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return "match3"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Match Three"
}

// Reset resolves settings and builds a fresh board with no immediate
// matches and at least one valid move.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.rng = rand.New(rand.NewSource(runtime.Seed))

	cfg, err := config.LoadMatch3(configPath)
	if err != nil {
		cfg = config.DefaultMatch3Config()
	}
	g.cfg = cfg

	g.fsm = core.NewMachine()
	g.tick = 0
	g.score = 0
	g.cascade = 0
	g.terminal = core.TerminalNone
	g.timeLeft = cfg.Timing.RunTicks
	g.anim = core.Anim{}
	g.selected = nil
	g.hint = nil
	g.matched = nil
	g.lastInputAt = 0
	g.cursor = Cell{X: cfg.Board.Cols / 2, Y: cfg.Board.Rows / 2}

	g.board = NewBoard(cfg.Board.Cols, cfg.Board.Rows)
	g.board.Fill(g.rng, cfg.Board.GemTypes)
	if !g.board.HasValidMove() {
		g.board.Reshuffle(g.rng, cfg.Board.GemTypes, cfg.Board.ReshuffleAttempts)
	}
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

	if g.fsm.Phase() == core.PhaseMenu && hasInteraction(input) {
		g.fsm.Start()
		g.lastInputAt = g.tick
	}

	if !g.fsm.Playing() {
		return core.StepResult{State: g.State()}
	}

	// The countdown only runs while playing; pausing freezes it.
	g.timeLeft--
	if g.timeLeft <= 0 {
		g.timeLeft = 0
		g.fsm.Die()
		g.terminal = core.TerminalTimeUp
		return core.StepResult{State: g.State(), Terminal: g.terminal}
	}

	if g.anim.Active() {
		g.advanceAnimation()
	} else {
		g.handleInput(input)
		g.updateHint()
	}

	return core.StepResult{State: g.State(), Terminal: g.terminal}
}

// hasInteraction reports whether the frame carries any gameplay intent.
func hasInteraction(input core.InputFrame) bool {
	return input.Has(core.ActionUp) || input.Has(core.ActionDown) ||
		input.Has(core.ActionLeft) || input.Has(core.ActionRight) ||
		input.Has(core.ActionConfirm)
}

// handleInput moves the cursor and drives cell selection while idle.
func (g *Game) handleInput(input core.InputFrame) {
	if hasInteraction(input) {
		g.lastInputAt = g.tick
		g.hint = nil
	}

	switch {
	case input.Has(core.ActionUp):
		g.cursor.Y = core.Max(0, g.cursor.Y-1)
	case input.Has(core.ActionDown):
		g.cursor.Y = core.Min(g.board.Rows()-1, g.cursor.Y+1)
	case input.Has(core.ActionLeft):
		g.cursor.X = core.Max(0, g.cursor.X-1)
	case input.Has(core.ActionRight):
		g.cursor.X = core.Min(g.board.Cols()-1, g.cursor.X+1)
	}

	if input.Has(core.ActionBack) {
		g.selected = nil
		return
	}

	if !input.Has(core.ActionConfirm) {
		return
	}

	if g.selected == nil {
		sel := g.cursor
		g.selected = &sel
		return
	}

	if *g.selected == g.cursor {
		g.selected = nil
		return
	}

	if !adjacent(*g.selected, g.cursor) {
		// Non-adjacent second pick re-anchors the selection.
		sel := g.cursor
		g.selected = &sel
		return
	}

	g.beginSwap(*g.selected, g.cursor)
	g.selected = nil
}

// adjacent reports whether two cells share an edge.
func adjacent(a, b Cell) bool {
	dx, dy := core.Abs(a.X-b.X), core.Abs(a.Y-b.Y)
	return dx+dy == 1
}

// beginSwap applies the swap to the grid and starts the swap animation.
// Whether it sticks is decided when the animation completes.
func (g *Game) beginSwap(a, b Cell) {
	g.swapA, g.swapB = a, b
	g.board.Swap(a, b)
	g.anim = core.StartAnim(animSwap, g.tick, uint64(g.cfg.Timing.SwapTicks))
	g.cascade = 0
}

// advanceAnimation transitions the engine state machine when the active
// animation window elapses.
func (g *Game) advanceAnimation() {
	if !g.anim.Done(g.tick) {
		return
	}

	switch g.anim.Kind {
	case animSwap:
		matches := g.board.FindMatches()
		if len(matches) == 0 {
			// Failed swap: revert and animate the way back.
			g.board.Swap(g.swapA, g.swapB)
			g.anim = core.StartAnim(animSwapBack, g.tick, uint64(g.cfg.Timing.SwapTicks))
			return
		}
		g.startClearing(matches)

	case animSwapBack:
		g.anim = core.Anim{}

	case animClear:
		g.board.ClearCells(g.matched)
		fall := g.board.CollapseColumns(g.rng, g.cfg.Board.GemTypes)
		g.matched = nil
		if fall < 1 {
			fall = 1
		}
		g.anim = core.StartAnim(animFall, g.tick, uint64(fall*g.cfg.Timing.FallTicksPerCell))

	case animFall:
		matches := g.board.FindMatches()
		if len(matches) > 0 {
			g.startClearing(matches)
			return
		}
		g.cascade = 0
		g.anim = core.Anim{}
		if !g.board.HasValidMove() {
			g.board.Reshuffle(g.rng, g.cfg.Board.GemTypes, g.cfg.Board.ReshuffleAttempts)
		}
		g.lastInputAt = g.tick
	}
}

// startClearing scores a matched set and begins the clear animation.
// The cascade index multiplies the score: 1 for the swap's own match,
// incrementing for every chain the refill produces.
func (g *Game) startClearing(matches map[Cell]bool) {
	g.cascade++
	g.matched = matches

	n := len(matches)
	points := g.cfg.Scoring.BaseMatch
	if n > 3 {
		points += (n - 3) * g.cfg.Scoring.PerExtraGem
	}
	g.score += points * g.cascade

	bonus := n * g.cfg.Scoring.TimeBonusTick
	g.timeLeft = core.Min(g.timeLeft+bonus, g.cfg.Timing.RunTicks)

	g.anim = core.StartAnim(animClear, g.tick, uint64(g.cfg.Timing.ClearTicks))
}

// updateHint highlights the first valid move after an idle stretch.
func (g *Game) updateHint() {
	if g.hint != nil {
		return
	}
	if g.tick-g.lastInputAt < uint64(g.cfg.Timing.HintDelayTicks) {
		return
	}
	if move, ok := g.board.FindValidMove(); ok {
		g.hint = &move
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	tickRate := g.runtime.TickRate
	if tickRate <= 0 {
		tickRate = 60
	}
	return core.GameState{
		Score:    g.score,
		TimeLeft: (g.timeLeft + tickRate - 1) / tickRate, // Seconds, rounded up
		Phase:    g.fsm.Phase(),
	}
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	secs := g.State().TimeLeft
	hud := fmt.Sprintf(" Match Three | Score: %d  Time: %d:%02d", g.score, secs/60, secs%60)
	if g.cascade > 1 {
		hud += fmt.Sprintf("  Chain x%d", g.cascade)
	}
	dst.DrawText(0, 0, hud)
	dst.DrawHLine(0, 1, dst.Width(), '─')

	cols, rows := g.board.Cols(), g.board.Rows()
	boardW := cols*2 + 2
	boardH := rows + 2
	offX := (dst.Width() - boardW) / 2
	offY := core.Max(2, (dst.Height()-boardH)/2)

	if dst.Width() < boardW || dst.Height() < boardH+2 {
		dst.DrawTextCentered(dst.Height()/2, "Window too small - resize to continue")
		return
	}

	dst.DrawBox(core.NewRect(offX, offY, boardW, boardH))

	blink := (g.tick/8)%2 == 0

	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			gem := g.board.At(x, y)
			if gem == emptyGem {
				continue
			}
			cell := Cell{X: x, Y: y}
			if g.matched != nil && g.matched[cell] && blink {
				continue // Clearing gems blink out
			}
			glyph := gemGlyphs[gem%len(gemGlyphs)]
			color := core.GemColors[gem%len(core.GemColors)]
			if g.hint != nil && (cell == g.hint.A || cell == g.hint.B) && blink {
				color = core.ColorBrightWhite
			}
			dst.SetColored(offX+1+x*2, offY+1+y, glyph, color)
		}
	}

	// Cursor brackets, with the selected cell marked separately.
	cx, cy := offX+g.cursor.X*2, offY+1+g.cursor.Y
	dst.SetColored(cx, cy, '[', core.ColorBrightWhite)
	dst.SetColored(cx+2, cy, ']', core.ColorBrightWhite)
	if g.selected != nil {
		sx, sy := offX+g.selected.X*2, offY+1+g.selected.Y
		dst.SetColored(sx, sy, '(', core.ColorBrightYellow)
		dst.SetColored(sx+2, sy, ')', core.ColorBrightYellow)
	}

	switch g.fsm.Phase() {
	case core.PhaseMenu:
		drawOverlay(dst, "MATCH THREE", "Move the cursor to start")
	case core.PhasePaused:
		drawOverlay(dst, "PAUSED", "Press P to resume")
	case core.PhaseGameOver:
		drawOverlay(dst, "TIME UP", fmt.Sprintf("Score: %d  |  Press R to restart", g.score))
	}
}

// gemGlyphs indexes display runes by gem type.
var gemGlyphs = []rune{'●', '◆', '▲', '■', '★', '♥', '◉'}

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
