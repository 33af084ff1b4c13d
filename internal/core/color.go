package core

// Color represents a semantic foreground color for a screen cell.
// The platform layer maps each value to a concrete terminal color per theme.
type Color uint8

// Predefined colors for game elements.
const (
	ColorDefault Color = iota
	ColorBorder
	ColorHUD
	ColorSnakeHead
	ColorSnakeBody
	ColorFood
	ColorFoodGlow
	ColorParticle
	ColorParticleFaint
	ColorOverlay
	ColorAlert
)
