// Package core provides fundamental types and utilities for the snake game.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

import "math"

// Cell is a discrete board coordinate.
type Cell struct {
	X, Y int
}

// Add returns the cell shifted by (dx, dy).
func (c Cell) Add(dx, dy int) Cell {
	return Cell{X: c.X + dx, Y: c.Y + dy}
}

// Bounds is the board size measured in cells.
type Bounds struct {
	W, H int
}

// Contains reports whether the cell lies on the board.
func (b Bounds) Contains(c Cell) bool {
	return c.X >= 0 && c.X < b.W && c.Y >= 0 && c.Y < b.H
}

// Area returns the number of cells on the board.
func (b Bounds) Area() int {
	return b.W * b.H
}

// Grid maps a pixel canvas onto a board of square cells.
// The canvas is the coordinate space particles live in; the board is what
// the snake moves on.
type Grid struct {
	CanvasW  int // Canvas width in pixels
	CanvasH  int // Canvas height in pixels
	CellSize int // Side of one cell in pixels
}

// NewGrid creates a grid for the given canvas and cell size.
func NewGrid(canvasW, canvasH, cellSize int) Grid {
	return Grid{CanvasW: canvasW, CanvasH: canvasH, CellSize: cellSize}
}

// Bounds returns the board dimensions in cells.
func (g Grid) Bounds() Bounds {
	if g.CellSize <= 0 {
		return Bounds{}
	}
	return Bounds{W: g.CanvasW / g.CellSize, H: g.CanvasH / g.CellSize}
}

// CellToPixel returns the top-left pixel of a cell.
func (g Grid) CellToPixel(c Cell) (int, int) {
	return c.X * g.CellSize, c.Y * g.CellSize
}

// CellCenter returns the pixel center of a cell.
func (g Grid) CellCenter(c Cell) (float64, float64) {
	half := float64(g.CellSize) / 2
	px, py := g.CellToPixel(c)
	return float64(px) + half, float64(py) + half
}

// PixelToCell returns the cell containing the pixel (x, y).
// Pixels left of or above the canvas map to negative cells.
func (g Grid) PixelToCell(x, y float64) Cell {
	size := float64(g.CellSize)
	return Cell{X: int(math.Floor(x / size)), Y: int(math.Floor(y / size))}
}

// Rect represents an axis-aligned rectangle on the screen.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}
