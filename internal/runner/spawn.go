package runner

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/vovakirdan/runner3d/internal/core"
)

// Random supplies uniform random integers. It is injected so runs can be
// reproduced in tests.
type Random interface {
	// IntRange returns a uniform integer in [min, max]. If max <= min it returns min.
	IntRange(min, max int) int
}

// seededRandom is the default Random backed by math/rand.
type seededRandom struct {
	rng *rand.Rand
}

// NewRandom returns a Random seeded with seed.
func NewRandom(seed int64) Random {
	return &seededRandom{rng: rand.New(rand.NewSource(seed))}
}

func (r *seededRandom) IntRange(min, max int) int {
	if max <= min {
		return min
	}
	return min + r.rng.Intn(max-min+1)
}

// spawnIfDue advances the spawn timer and spawns one obstacle when the
// current interval has elapsed. A full pool leaves the timer running so a
// spawn happens as soon as a slot frees up.
func (w *World) spawnIfDue(dt float32) {
	w.spawnTimer += dt
	if w.spawnTimer < w.spawnInterval || w.obstacles.Full() {
		return
	}

	w.spawnObstacle()
	w.spawnTimer = 0
	w.spawnInterval = w.drawSpawnInterval()
}

// spawnObstacle places a random obstacle on the ground ahead of the player.
func (w *World) spawnObstacle() int {
	oc := w.cfg.Obstacles

	size := mgl32.Vec3{
		float32(w.rng.IntRange(oc.MinWidth, oc.MaxWidth)),
		float32(w.rng.IntRange(oc.MinHeight, oc.MaxHeight)),
		float32(w.rng.IntRange(oc.MinLength, oc.MaxLength)),
	}

	lane := int(w.cfg.World.LaneBoundary)
	pos := mgl32.Vec3{
		float32(w.rng.IntRange(-lane, lane)),
		w.cfg.World.GroundLevel + size.Y()/2,
		w.player.Position.Z() - w.cfg.Spawn.Distance,
	}

	color := core.ObstaclePalette[w.rng.IntRange(0, len(core.ObstaclePalette)-1)]
	variant := w.rng.IntRange(0, max(oc.Variants, 1)-1)

	return w.obstacles.Spawn(pos, size, color, variant)
}

// drawSpawnInterval picks the next spawn interval in seconds. The jitter
// range is configured for start speed and shrinks as the player speeds up.
func (w *World) drawSpawnInterval() float32 {
	ms := w.rng.IntRange(w.cfg.Spawn.MinIntervalMs, w.cfg.Spawn.MaxIntervalMs)
	base := float32(ms) / 1000
	return w.difficulty.SpawnInterval(base, w.forwardSpeed, w.cfg.Physics.StartSpeed)
}

// despawnPassed recycles every obstacle that has scrolled more than the
// trailing margin behind the player.
func (w *World) despawnPassed() {
	limit := w.player.Position.Z() + w.cfg.Obstacles.TrailingMargin
	for i := 0; i < w.obstacles.Len(); {
		if w.obstacles.At(i).Position.Z() > limit {
			// The last obstacle now sits in slot i; check it before moving on.
			w.obstacles.RemoveAt(i)
			continue
		}
		i++
	}
}
