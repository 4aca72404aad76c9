package snake

import "github.com/retrobox/retrobox/internal/core"

// Snapshot captures the observable game state for determinism testing.
type Snapshot struct {
	Tick           uint64
	Score          int
	SnakeLen       int
	HeadX          int
	HeadY          int
	Dir            Direction
	FoodX          int
	FoodY          int
	MoveEveryTicks int
	Phase          core.Phase
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	headX, headY := 0, 0
	if len(g.snake) > 0 {
		headX = g.snake[0].X
		headY = g.snake[0].Y
	}

	return Snapshot{
		Tick:           g.tick,
		Score:          g.score,
		SnakeLen:       len(g.snake),
		HeadX:          headX,
		HeadY:          headY,
		Dir:            g.direction,
		FoodX:          g.food.X,
		FoodY:          g.food.Y,
		MoveEveryTicks: g.moveEveryTicks,
		Phase:          g.fsm.Phase(),
	}
}

// Body returns a copy of the snake's segments, head first. Read-only view
// for tests and debugging.
func (g *Game) Body() []Point {
	out := make([]Point, len(g.snake))
	copy(out, g.snake)
	return out
}
