package snake

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/vovakirdan/tui-snake/internal/core"
)

func TestPlaceFoodAvoidsSnake(t *testing.T) {
	rng := rand.New(rand.NewSource(999))
	bounds := core.Bounds{W: 20, H: 20}
	occupied := []core.Cell{{X: 5, Y: 5}, {X: 4, Y: 5}, {X: 3, Y: 5}, {X: 3, Y: 6}, {X: 3, Y: 7}}

	for i := 0; i < 500; i++ {
		food, err := PlaceFood(rng, occupied, bounds)
		if err != nil {
			t.Fatalf("PlaceFood() = %v", err)
		}
		if containsCell(occupied, food) {
			t.Fatalf("food placed on snake at %+v", food)
		}
		if !bounds.Contains(food) {
			t.Fatalf("food placed out of bounds at %+v", food)
		}
	}
}

func TestPlaceFoodCrowdedBoard(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	bounds := core.Bounds{W: 4, H: 3}

	// Everything but (2,1) is taken
	var occupied []core.Cell
	for y := range bounds.H {
		for x := range bounds.W {
			if x != 2 || y != 1 {
				occupied = append(occupied, core.Cell{X: x, Y: y})
			}
		}
	}

	food, err := PlaceFood(rng, occupied, bounds)
	if err != nil {
		t.Fatalf("PlaceFood() = %v", err)
	}
	if food != (core.Cell{X: 2, Y: 1}) {
		t.Errorf("food = %+v, expected the only free cell (2,1)", food)
	}
}

func TestPlaceFoodBoardFull(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	bounds := core.Bounds{W: 2, H: 2}
	occupied := []core.Cell{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}}

	if _, err := PlaceFood(rng, occupied, bounds); !errors.Is(err, ErrBoardFull) {
		t.Errorf("PlaceFood on a full board = %v, expected ErrBoardFull", err)
	}
	if _, err := PlaceFood(rng, nil, core.Bounds{}); !errors.Is(err, ErrBoardFull) {
		t.Errorf("PlaceFood on an empty board = %v, expected ErrBoardFull", err)
	}
}

func TestPlaceFoodUniform(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	bounds := core.Bounds{W: 3, H: 1}
	occupied := []core.Cell{{X: 1, Y: 0}}

	counts := map[core.Cell]int{}
	for range 2000 {
		food, err := PlaceFood(rng, occupied, bounds)
		if err != nil {
			t.Fatal(err)
		}
		counts[food]++
	}
	if len(counts) != 2 {
		t.Fatalf("expected both free cells to be used, got %v", counts)
	}
	for c, n := range counts {
		if n < 800 {
			t.Errorf("cell %+v chosen only %d/2000 times", c, n)
		}
	}
}
