package runner

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/vovakirdan/runner3d/internal/core"
)

// Player is the single dynamic body. Size is width (x), height (y), length (z).
type Player struct {
	Position mgl32.Vec3
	Size     mgl32.Vec3
	Bounds   core.Bounds // Derived from Position and Size; see UpdateBounds
}

// UpdateBounds re-derives Bounds from the current Position.
// Call it whenever Position has settled before reading Bounds.
func (p *Player) UpdateBounds() {
	p.Bounds = core.ComputeBounds(p.Position, p.Size)
}

// HalfHeight is the distance from the player's center to its feet.
func (p *Player) HalfHeight() float32 {
	return p.Size.Y() / 2
}
