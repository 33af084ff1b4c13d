package snake

import (
	"errors"
	"math/rand"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// ErrBoardFull is returned when there is no free cell left for food.
var ErrBoardFull = errors.New("snake: no free cell for food")

// sampleAttemptsPerCell bounds rejection sampling before falling back to a scan.
const sampleAttemptsPerCell = 4

// PlaceFood picks a uniformly random cell within bounds that is not occupied.
// Random cells are sampled until a free one turns up; on very crowded boards
// the free cells are enumerated and one of them is chosen instead.
func PlaceFood(rng *rand.Rand, occupied []core.Cell, bounds core.Bounds) (core.Cell, error) {
	area := bounds.Area()
	if area <= 0 || len(occupied) >= area && countDistinct(occupied, bounds) >= area {
		return core.Cell{}, ErrBoardFull
	}

	for range sampleAttemptsPerCell * area {
		c := core.Cell{X: rng.Intn(bounds.W), Y: rng.Intn(bounds.H)}
		if !containsCell(occupied, c) {
			return c, nil
		}
	}

	taken := make(map[core.Cell]bool, len(occupied))
	for _, c := range occupied {
		taken[c] = true
	}
	free := make([]core.Cell, 0, area-len(taken))
	for y := range bounds.H {
		for x := range bounds.W {
			c := core.Cell{X: x, Y: y}
			if !taken[c] {
				free = append(free, c)
			}
		}
	}
	if len(free) == 0 {
		return core.Cell{}, ErrBoardFull
	}
	return free[rng.Intn(len(free))], nil
}

// containsCell checks if the cell is in the list.
func containsCell(cells []core.Cell, c core.Cell) bool {
	for _, seg := range cells {
		if seg == c {
			return true
		}
	}
	return false
}

func countDistinct(cells []core.Cell, bounds core.Bounds) int {
	seen := make(map[core.Cell]bool, len(cells))
	for _, c := range cells {
		if bounds.Contains(c) {
			seen[c] = true
		}
	}
	return len(seen)
}
