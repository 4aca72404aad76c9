package flappy

import (
	"math/rand"

	"github.com/retrobox/retrobox/internal/config"
	"github.com/retrobox/retrobox/internal/core"
)

// Pipe is a vertical obstacle pair with a gap for the bird to pass through.
type Pipe struct {
	X         float64 // Horizontal position (left edge)
	GapY      int     // Y position where the gap starts (top of gap)
	GapHeight int     // Height of the passable gap
	Scored    bool    // Set exactly once when the bird passes the trailing edge
}

// rects returns the collision rectangles for both pipe halves, widened by
// the cap overhang on each side.
func (p Pipe) rects(cfg *config.FlappyConfig, groundY int) (top, bottom core.FRect) {
	overhang := float64(cfg.Obstacles.CapOverhang)
	x := p.X - overhang
	w := float64(cfg.Obstacles.PipeWidth) + 2*overhang

	top = core.FRect{X: x, Y: 0, W: w, H: float64(p.GapY)}
	bottomY := float64(p.GapY + p.GapHeight)
	bottom = core.FRect{X: x, Y: bottomY, W: w, H: float64(groundY) - bottomY}
	return top, bottom
}

// PipeManager handles spawning, movement, scoring and removal of pipes.
type PipeManager struct {
	pipes      []Pipe
	rng        *rand.Rand
	screenW    int
	screenH    int
	spawnTick  int // Ticks until the next spawn
	cfg        *config.FlappyConfig
	difficulty *config.DifficultyManager
}

// NewPipeManager creates a pipe manager with the given RNG seed.
func NewPipeManager(seed int64, screenW, screenH int, cfg *config.FlappyConfig, diff *config.DifficultyManager) *PipeManager {
	pm := &PipeManager{
		pipes:      make([]Pipe, 0, 8),
		screenW:    screenW,
		screenH:    screenH,
		cfg:        cfg,
		difficulty: diff,
	}
	pm.Reset(seed)
	return pm
}

// UpdateConfig swaps in a new settings snapshot and difficulty manager.
func (pm *PipeManager) UpdateConfig(cfg *config.FlappyConfig, diff *config.DifficultyManager) {
	pm.cfg = cfg
	pm.difficulty = diff
}

// UpdateScreenSize updates the screen dimensions.
func (pm *PipeManager) UpdateScreenSize(screenW, screenH int) {
	pm.screenW = screenW
	pm.screenH = screenH
}

// Reset clears all pipes and resets the RNG.
func (pm *PipeManager) Reset(seed int64) {
	pm.pipes = pm.pipes[:0]
	pm.rng = rand.New(rand.NewSource(seed))
	pm.spawnTick = pm.cfg.Obstacles.SpawnInterval
}

// Update moves pipes left, spawns on the fixed interval, removes off-screen
// pipes and returns the number of pipes passed this tick (for scoring).
// A pipe scores the instant the bird's x passes its trailing edge; the
// Scored flag prevents double counting.
func (pm *PipeManager) Update(birdX float64, score, ticks int) int {
	speed := pm.difficulty.Speed(pm.cfg.Physics.BaseSpeed, score, ticks)

	for i := range pm.pipes {
		pm.pipes[i].X -= speed
	}

	pipeWidth := float64(pm.cfg.Obstacles.PipeWidth)

	passed := 0
	for i := range pm.pipes {
		if !pm.pipes[i].Scored && pm.pipes[i].X+pipeWidth < birdX {
			pm.pipes[i].Scored = true
			passed++
		}
	}

	// Remove pipes fully off the left edge
	alive := pm.pipes[:0]
	for _, p := range pm.pipes {
		if p.X+pipeWidth > 0 {
			alive = append(alive, p)
		}
	}
	pm.pipes = alive

	pm.spawnTick--
	if pm.spawnTick <= 0 {
		pm.spawn(score, ticks)
		pm.spawnTick = pm.cfg.Obstacles.SpawnInterval
	}

	return passed
}

// spawn creates a pipe at the right edge with a uniformly random gap center
// within the safe margins.
func (pm *PipeManager) spawn(score, ticks int) {
	obs := pm.cfg.Obstacles

	gap := pm.difficulty.GapSize(obs.MaxGapSize, score, ticks)
	if gap < obs.MinGapSize {
		gap = obs.MinGapSize
	}
	gapRange := gap - obs.MinGapSize
	gapHeight := obs.MinGapSize
	if gapRange > 0 {
		gapHeight = obs.MinGapSize + pm.rng.Intn(gapRange+1)
	}

	minGapY := obs.TopMargin
	maxGapY := pm.screenH - obs.BottomMargin - gapHeight
	if maxGapY < minGapY {
		maxGapY = minGapY // Very small screens
	}

	gapY := minGapY
	if maxGapY > minGapY {
		gapY = minGapY + pm.rng.Intn(maxGapY-minGapY+1)
	}

	pm.pipes = append(pm.pipes, Pipe{
		X:         float64(pm.screenW),
		GapY:      gapY,
		GapHeight: gapHeight,
	})
}

// Pipes returns the current list of pipes. Read-only for rendering.
func (pm *PipeManager) Pipes() []Pipe {
	return pm.pipes
}

// CheckCollision tests the bird circle against every pipe's two rectangles.
func (pm *PipeManager) CheckCollision(cx, cy, radius float64, groundY int) bool {
	for _, p := range pm.pipes {
		top, bottom := p.rects(pm.cfg, groundY)
		if core.CircleIntersectsFRect(cx, cy, radius, top) ||
			core.CircleIntersectsFRect(cx, cy, radius, bottom) {
			return true
		}
	}
	return false
}
