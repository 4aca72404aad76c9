package runner

import (
	"math/rand"

	"github.com/retrobox/retrobox/internal/config"
)

// Platform is a run of solid ground in world coordinates. Y is the top
// row; the player stands with their feet on it.
type Platform struct {
	X, W, Y int
}

// Obstacle is a one-cell spike sitting on a platform top.
type Obstacle struct {
	X, Y int
}

// Coin is a pickup hovering above a platform.
type Coin struct {
	X, Y  int
	Taken bool
}

// Terrain owns the procedurally generated world: platforms, obstacles and
// coins, all in world coordinates that never scroll.
type Terrain struct {
	platforms []Platform
	obstacles []Obstacle
	coins     []Coin

	lastX int // Rightmost generated world x
	lastY int // Top row of the most recent platform

	minY, maxY int
	rng        *rand.Rand
	cfg        config.RunnerGeneration
	difficulty *config.DifficultyManager
}

// NewTerrain seeds the world with one long starting platform so the run
// begins on solid ground.
func NewTerrain(seed int64, cfg config.RunnerGeneration, diff *config.DifficultyManager, screenW, screenH int) *Terrain {
	t := &Terrain{
		rng:        rand.New(rand.NewSource(seed)),
		cfg:        cfg,
		difficulty: diff,
		minY:       screenH / 3,
		maxY:       screenH - 3,
	}
	start := Platform{X: 0, W: screenW, Y: screenH - 4}
	t.platforms = append(t.platforms, start)
	t.lastX = start.X + start.W
	t.lastY = start.Y
	return t
}

// EnsureUntil generates terrain so the rightmost edge stays at or past
// the given world x.
func (t *Terrain) EnsureUntil(until, score, ticks int) {
	for t.lastX < until {
		t.generateNext(score, ticks)
	}
}

// generateNext appends one gap + platform pair, with optional obstacle
// and coin row. Platforms shorten as difficulty ramps.
func (t *Terrain) generateNext(score, ticks int) {
	gap := t.cfg.MinGapW + t.rng.Intn(t.cfg.MaxGapW-t.cfg.MinGapW+1)

	maxW := t.difficulty.Spacing(t.cfg.MaxPlatformW, score, ticks)
	if maxW < t.cfg.MinPlatformW {
		maxW = t.cfg.MinPlatformW
	}
	w := t.cfg.MinPlatformW
	if maxW > t.cfg.MinPlatformW {
		w += t.rng.Intn(maxW - t.cfg.MinPlatformW + 1)
	}

	dy := t.rng.Intn(2*t.cfg.MaxStepUp+1) - t.cfg.MaxStepUp
	y := t.lastY + dy
	if y < t.minY {
		y = t.minY
	}
	if y > t.maxY {
		y = t.maxY
	}

	p := Platform{X: t.lastX + gap, W: w, Y: y}
	t.platforms = append(t.platforms, p)
	t.lastX = p.X + p.W
	t.lastY = p.Y

	if t.rng.Intn(100) < t.cfg.ObstacleChance && w >= 6 {
		// Keep a landing zone clear at the leading edge.
		ox := p.X + 3 + t.rng.Intn(w-5)
		t.obstacles = append(t.obstacles, Obstacle{X: ox, Y: p.Y - 1})
	}

	if t.rng.Intn(100) < t.cfg.CoinChance {
		cx := p.X
		if w > 3 {
			cx += t.rng.Intn(w - 3)
		}
		for i := 0; i < 3 && cx+i < p.X+w; i++ {
			t.coins = append(t.coins, Coin{X: cx + i, Y: p.Y - 3})
		}
	}
}

// Prune drops entities fully left of the given world x.
func (t *Terrain) Prune(before int) {
	platforms := t.platforms[:0]
	for _, p := range t.platforms {
		if p.X+p.W >= before {
			platforms = append(platforms, p)
		}
	}
	t.platforms = platforms

	obstacles := t.obstacles[:0]
	for _, o := range t.obstacles {
		if o.X >= before {
			obstacles = append(obstacles, o)
		}
	}
	t.obstacles = obstacles

	coins := t.coins[:0]
	for _, c := range t.coins {
		if c.X >= before {
			coins = append(coins, c)
		}
	}
	t.coins = coins
}

// PlatformAt returns the platform whose span covers the world x, if any.
func (t *Terrain) PlatformAt(worldX float64) (Platform, bool) {
	for _, p := range t.platforms {
		if worldX >= float64(p.X) && worldX < float64(p.X+p.W) {
			return p, true
		}
	}
	return Platform{}, false
}
