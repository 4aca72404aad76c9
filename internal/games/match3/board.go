package match3

import "math/rand"

// Cell coordinates on the gem grid.
type Cell struct {
	X, Y int
}

// Move is a pair of adjacent cells whose swap produces a match.
type Move struct {
	A, B Cell
}

// emptyGem marks a cleared cell awaiting refill.
const emptyGem = -1

// Board is a cols×rows grid of gem type indices.
type Board struct {
	cols, rows int
	cells      []int // Row-major
}

// NewBoard creates an empty board.
func NewBoard(cols, rows int) *Board {
	return &Board{
		cols:  cols,
		rows:  rows,
		cells: make([]int, cols*rows),
	}
}

// Cols returns the board width in cells.
func (b *Board) Cols() int { return b.cols }

// Rows returns the board height in cells.
func (b *Board) Rows() int { return b.rows }

// At returns the gem type at (x, y).
func (b *Board) At(x, y int) int {
	return b.cells[y*b.cols+x]
}

func (b *Board) set(x, y, v int) {
	b.cells[y*b.cols+x] = v
}

// Swap exchanges the gems at two cells.
func (b *Board) Swap(a, c Cell) {
	i, j := a.Y*b.cols+a.X, c.Y*b.cols+c.X
	b.cells[i], b.cells[j] = b.cells[j], b.cells[i]
}

// Clone returns a deep copy of the board.
func (b *Board) Clone() *Board {
	c := NewBoard(b.cols, b.rows)
	copy(c.cells, b.cells)
	return c
}

// Fill populates the board with random gems, rejecting any value that
// would complete a run of three with the two cells to its left or above.
// A freshly filled board therefore never has an immediate match.
func (b *Board) Fill(rng *rand.Rand, gemTypes int) {
	for y := 0; y < b.rows; y++ {
		for x := 0; x < b.cols; x++ {
			for {
				v := rng.Intn(gemTypes)
				if x >= 2 && b.At(x-1, y) == v && b.At(x-2, y) == v {
					continue
				}
				if y >= 2 && b.At(x, y-1) == v && b.At(x, y-2) == v {
					continue
				}
				b.set(x, y, v)
				break
			}
		}
	}
}

// FindMatches scans rows and columns independently for maximal runs of
// three or more equal gems and returns the union of matched positions.
// A cell belonging to both a row run and a column run appears once.
func (b *Board) FindMatches() map[Cell]bool {
	matched := make(map[Cell]bool)

	for y := 0; y < b.rows; y++ {
		runStart := 0
		for x := 1; x <= b.cols; x++ {
			if x < b.cols && b.At(x, y) != emptyGem && b.At(x, y) == b.At(runStart, y) {
				continue
			}
			if x-runStart >= 3 && b.At(runStart, y) != emptyGem {
				for i := runStart; i < x; i++ {
					matched[Cell{X: i, Y: y}] = true
				}
			}
			runStart = x
		}
	}

	for x := 0; x < b.cols; x++ {
		runStart := 0
		for y := 1; y <= b.rows; y++ {
			if y < b.rows && b.At(x, y) != emptyGem && b.At(x, y) == b.At(x, runStart) {
				continue
			}
			if y-runStart >= 3 && b.At(x, runStart) != emptyGem {
				for i := runStart; i < y; i++ {
					matched[Cell{X: x, Y: i}] = true
				}
			}
			runStart = y
		}
	}

	return matched
}

// HasMatches reports whether any run of three or more exists.
func (b *Board) HasMatches() bool {
	return len(b.FindMatches()) > 0
}

// ClearCells empties every cell in the matched set.
func (b *Board) ClearCells(cells map[Cell]bool) {
	for c := range cells {
		b.set(c.X, c.Y, emptyGem)
	}
}

// CollapseColumns drops gems into empty cells below them and refills the
// vacated top of each column with random gems. Returns the longest fall
// distance in cells, which drives the fall animation duration.
func (b *Board) CollapseColumns(rng *rand.Rand, gemTypes int) int {
	maxFall := 0
	for x := 0; x < b.cols; x++ {
		write := b.rows - 1
		for y := b.rows - 1; y >= 0; y-- {
			if b.At(x, y) == emptyGem {
				continue
			}
			if write != y {
				b.set(x, write, b.At(x, y))
				b.set(x, y, emptyGem)
				if fall := write - y; fall > maxFall {
					maxFall = fall
				}
			}
			write--
		}
		// New gems enter from above the board.
		holes := write + 1
		if holes > maxFall {
			maxFall = holes
		}
		for y := write; y >= 0; y-- {
			b.set(x, y, rng.Intn(gemTypes))
		}
	}
	return maxFall
}

// FindValidMove probes every adjacent pair in row-major order, horizontal
// swap before vertical, and returns the first swap that yields a match.
func (b *Board) FindValidMove() (Move, bool) {
	for y := 0; y < b.rows; y++ {
		for x := 0; x < b.cols; x++ {
			a := Cell{X: x, Y: y}
			if x+1 < b.cols {
				c := Cell{X: x + 1, Y: y}
				if b.swapMakesMatch(a, c) {
					return Move{A: a, B: c}, true
				}
			}
			if y+1 < b.rows {
				c := Cell{X: x, Y: y + 1}
				if b.swapMakesMatch(a, c) {
					return Move{A: a, B: c}, true
				}
			}
		}
	}
	return Move{}, false
}

// swapMakesMatch probes a swap on the live grid: swap, scan, swap back.
func (b *Board) swapMakesMatch(a, c Cell) bool {
	b.Swap(a, c)
	ok := b.HasMatches()
	b.Swap(a, c)
	return ok
}

// HasValidMove reports whether any adjacent swap produces a match.
func (b *Board) HasValidMove() bool {
	_, ok := b.FindValidMove()
	return ok
}

// Reshuffle permutes the existing gems until the board has no immediate
// match and at least one valid move. After the bounded retries it falls
// back to a fresh random fill.
func (b *Board) Reshuffle(rng *rand.Rand, gemTypes, attempts int) {
	for i := 0; i < attempts; i++ {
		rng.Shuffle(len(b.cells), func(i, j int) {
			b.cells[i], b.cells[j] = b.cells[j], b.cells[i]
		})
		if !b.HasMatches() && b.HasValidMove() {
			return
		}
	}
	for i := 0; i < attempts; i++ {
		b.Fill(rng, gemTypes)
		if b.HasValidMove() {
			return
		}
	}
	b.Fill(rng, gemTypes)
}
