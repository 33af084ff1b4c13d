package snake

import (
	"errors"
	"strings"
)

// Direction represents the snake's movement direction.
type Direction int

const (
	DirRight Direction = iota
	DirDown
	DirLeft
	DirUp
)

// ErrInvalidDirection is returned when raw input maps to no direction.
var ErrInvalidDirection = errors.New("snake: invalid direction")

// Opposite returns the direction pointing the other way.
func (d Direction) Opposite() Direction {
	switch d {
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	case DirLeft:
		return DirRight
	default:
		return DirLeft
	}
}

// Delta returns the unit cell offset for one step in this direction.
// Up decreases y.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case DirUp:
		return 0, -1
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	default:
		return 1, 0
	}
}

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

// ParseDirection maps a raw directional input to a Direction.
// It accepts plain names ("up") and browser-style key names ("ArrowUp").
func ParseDirection(raw string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "up", "arrowup":
		return DirUp, nil
	case "down", "arrowdown":
		return DirDown, nil
	case "left", "arrowleft":
		return DirLeft, nil
	case "right", "arrowright":
		return DirRight, nil
	}
	return 0, ErrInvalidDirection
}
