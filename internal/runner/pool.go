package runner

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/vovakirdan/runner3d/internal/core"
)

// DefaultCapacity is the number of obstacle slots when none is configured.
const DefaultCapacity = 100

// NoSlot is returned by Spawn when the pool is full.
const NoSlot = -1

// Obstacle is a static box the player must avoid or land on.
// Obstacles have no identity beyond the pool slot they occupy.
type Obstacle struct {
	Position mgl32.Vec3
	Size     mgl32.Vec3
	Color    core.Color
	Variant  int // Visual variant (shared model index)
	Bounds   core.Bounds
}

// UpdateBounds re-derives Bounds from Position and Size.
func (o *Obstacle) UpdateBounds() {
	o.Bounds = core.ComputeBounds(o.Position, o.Size)
}

// ObstaclePool is a fixed-capacity slot arena. Live obstacles always occupy
// the prefix [0, Len()); removal swaps the last live slot into the hole, so
// order among live obstacles is not preserved across removals.
type ObstaclePool struct {
	slots  []Obstacle
	active int
}

// NewObstaclePool allocates a pool with the given number of slots.
// The slots are never reallocated.
func NewObstaclePool(capacity int) *ObstaclePool {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &ObstaclePool{slots: make([]Obstacle, capacity)}
}

// Spawn writes a new obstacle into the first free slot and returns its index.
// When the pool is full it changes nothing and returns NoSlot.
func (p *ObstaclePool) Spawn(position, size mgl32.Vec3, color core.Color, variant int) int {
	if p.active == len(p.slots) {
		return NoSlot
	}

	i := p.active
	p.slots[i] = Obstacle{
		Position: position,
		Size:     size,
		Color:    color,
		Variant:  variant,
	}
	p.slots[i].UpdateBounds()
	p.active++
	return i
}

// RemoveAt frees slot i by moving the last live obstacle into it.
// Calling it with i outside [0, Len()) is a programming error and panics.
func (p *ObstaclePool) RemoveAt(i int) {
	if i < 0 || i >= p.active {
		panic(fmt.Sprintf("runner: RemoveAt(%d) outside active range [0, %d)", i, p.active))
	}

	last := p.active - 1
	if i != last {
		p.slots[i], p.slots[last] = p.slots[last], p.slots[i]
	}
	p.active--
}

// ForEachActive calls fn for every live obstacle in slot order.
// fn may modify the obstacle but must not spawn or remove.
func (p *ObstaclePool) ForEachActive(fn func(i int, o *Obstacle)) {
	for i := 0; i < p.active; i++ {
		fn(i, &p.slots[i])
	}
}

// At returns the live obstacle in slot i.
func (p *ObstaclePool) At(i int) *Obstacle {
	if i < 0 || i >= p.active {
		panic(fmt.Sprintf("runner: At(%d) outside active range [0, %d)", i, p.active))
	}
	return &p.slots[i]
}

// Active returns the live prefix. The slice aliases the pool and is only
// valid until the next Spawn or RemoveAt; callers must treat it as read-only.
func (p *ObstaclePool) Active() []Obstacle {
	return p.slots[:p.active:p.active]
}

// Len returns the number of live obstacles.
func (p *ObstaclePool) Len() int {
	return p.active
}

// Cap returns the number of slots.
func (p *ObstaclePool) Cap() int {
	return len(p.slots)
}

// Full reports whether Spawn would fail.
func (p *ObstaclePool) Full() bool {
	return p.active == p.Cap()
}

// Clear drops all live obstacles. Slot contents are left as-is.
func (p *ObstaclePool) Clear() {
	p.active = 0
}
