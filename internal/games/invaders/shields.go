package invaders

import (
	"math/rand"

	"github.com/retrobox/retrobox/internal/config"
)

// Shield is a destructible bunker: a small grid of blocks that erode as
// bullets strike them.
type Shield struct {
	X, Y   int
	blocks [][]bool // [row][col], true = intact
}

// newShields lays out the configured number of shields evenly across the
// screen, one row above the player.
func newShields(cfg config.InvadersShields, screenW, baseY int) []*Shield {
	shields := make([]*Shield, 0, cfg.Count)
	if cfg.Count <= 0 {
		return shields
	}

	slot := screenW / cfg.Count
	for i := 0; i < cfg.Count; i++ {
		blocks := make([][]bool, cfg.BlockH)
		for r := range blocks {
			blocks[r] = make([]bool, cfg.BlockW)
			for c := range blocks[r] {
				blocks[r][c] = true
			}
		}
		shields = append(shields, &Shield{
			X:      i*slot + (slot-cfg.BlockW)/2,
			Y:      baseY - cfg.BlockH,
			blocks: blocks,
		})
	}
	return shields
}

// BlockAt reports whether an intact block occupies the screen cell.
func (s *Shield) BlockAt(x, y int) bool {
	r, c := y-s.Y, x-s.X
	if r < 0 || r >= len(s.blocks) || c < 0 || c >= len(s.blocks[r]) {
		return false
	}
	return s.blocks[r][c]
}

// Hit erodes the struck block and one random horizontal neighbor, so
// repeated hits chew ragged holes instead of clean columns.
func (s *Shield) Hit(x, y int, rng *rand.Rand) {
	r, c := y-s.Y, x-s.X
	if r < 0 || r >= len(s.blocks) || c < 0 || c >= len(s.blocks[r]) {
		return
	}
	s.blocks[r][c] = false

	n := c + 1
	if rng.Intn(2) == 0 {
		n = c - 1
	}
	if n >= 0 && n < len(s.blocks[r]) {
		s.blocks[r][n] = false
	}
}

// Intact returns the number of blocks still standing.
func (s *Shield) Intact() int {
	count := 0
	for _, row := range s.blocks {
		for _, b := range row {
			if b {
				count++
			}
		}
	}
	return count
}
