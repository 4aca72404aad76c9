package invaders

import "github.com/retrobox/retrobox/internal/config"

// alienPoints indexes score values by formation row: the top row is worth
// the most, matching the original cabinet's tiers.
var alienPoints = []int{30, 20, 20, 10, 10}

// Formation is the marching block of aliens. Positions are derived from a
// single origin: alien (row, col) sits at
// (originX + col*spacingX, originY + row*spacingY).
type Formation struct {
	rows, cols int
	spacingX   int
	spacingY   int
	alive      []bool // Row-major
	aliveCount int

	originX, originY int
	dir              int // +1 marching right, -1 left
}

// NewFormation creates a full formation at the given origin, marching right.
func NewFormation(cfg config.InvadersFormation, originX, originY int) *Formation {
	f := &Formation{
		rows:     cfg.Rows,
		cols:     cfg.Cols,
		spacingX: cfg.SpacingX,
		spacingY: cfg.SpacingY,
		alive:    make([]bool, cfg.Rows*cfg.Cols),
		originX:  originX,
		originY:  originY,
		dir:      1,
	}
	for i := range f.alive {
		f.alive[i] = true
	}
	f.aliveCount = len(f.alive)
	return f
}

// AliveCount returns the number of aliens still alive.
func (f *Formation) AliveCount() int {
	return f.aliveCount
}

// AliveFraction returns alive/total, 0 when the formation is empty.
func (f *Formation) AliveFraction() float64 {
	return float64(f.aliveCount) / float64(f.rows*f.cols)
}

// IsAlive reports whether the alien at (row, col) is alive.
func (f *Formation) IsAlive(row, col int) bool {
	return f.alive[row*f.cols+col]
}

// Position returns the screen cell of the alien at (row, col).
func (f *Formation) Position(row, col int) (x, y int) {
	return f.originX + col*f.spacingX, f.originY + row*f.spacingY
}

// Kill marks the alien dead and returns its point value.
func (f *Formation) Kill(row, col int) int {
	i := row*f.cols + col
	if !f.alive[i] {
		return 0
	}
	f.alive[i] = false
	f.aliveCount--
	if row < len(alienPoints) {
		return alienPoints[row]
	}
	return alienPoints[len(alienPoints)-1]
}

// aliveColumnRange returns the leftmost and rightmost columns that still
// hold a live alien. ok is false for an empty formation.
func (f *Formation) aliveColumnRange() (lo, hi int, ok bool) {
	lo, hi = f.cols, -1
	for col := 0; col < f.cols; col++ {
		for row := 0; row < f.rows; row++ {
			if f.IsAlive(row, col) {
				if col < lo {
					lo = col
				}
				if col > hi {
					hi = col
				}
				break
			}
		}
	}
	return lo, hi, hi >= 0
}

// LowestY returns the largest y of any live alien, or -1 when empty.
func (f *Formation) LowestY() int {
	lowest := -1
	for row := f.rows - 1; row >= 0; row-- {
		for col := 0; col < f.cols; col++ {
			if f.IsAlive(row, col) {
				_, y := f.Position(row, col)
				if y > lowest {
					lowest = y
				}
			}
		}
	}
	return lowest
}

// Step advances the formation one step. A step that would push any live
// alien past the horizontal margins instead reverses direction and drops
// the whole block down: exactly one drop per reversal, never a sideways
// move on the same step. Returns true when the step was a drop.
func (f *Formation) Step(screenW, edgeMargin, dropDistance int) bool {
	lo, hi, ok := f.aliveColumnRange()
	if !ok {
		return false
	}

	leftX := f.originX + lo*f.spacingX
	rightX := f.originX + hi*f.spacingX

	if f.dir > 0 && rightX+1 > screenW-1-edgeMargin {
		f.dir = -1
		f.originY += dropDistance
		return true
	}
	if f.dir < 0 && leftX-1 < edgeMargin {
		f.dir = 1
		f.originY += dropDistance
		return true
	}

	f.originX += f.dir
	return false
}

// LowestPerColumn returns, for each column that still has a live alien,
// the row of its lowest live alien. Used to pick shooters.
func (f *Formation) LowestPerColumn() []int {
	rows := make([]int, f.cols)
	for col := range rows {
		rows[col] = -1
		for row := f.rows - 1; row >= 0; row-- {
			if f.IsAlive(row, col) {
				rows[col] = row
				break
			}
		}
	}
	return rows
}

// AlienAt returns the (row, col) of a live alien occupying the screen
// cell, treating each alien as a single cell. ok is false on a miss.
func (f *Formation) AlienAt(x, y int) (row, col int, ok bool) {
	dx := x - f.originX
	dy := y - f.originY
	if dx < 0 || dy < 0 || dx%f.spacingX != 0 || dy%f.spacingY != 0 {
		return 0, 0, false
	}
	col = dx / f.spacingX
	row = dy / f.spacingY
	if col >= f.cols || row >= f.rows || !f.IsAlive(row, col) {
		return 0, 0, false
	}
	return row, col, true
}
