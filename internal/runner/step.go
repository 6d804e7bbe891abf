package runner

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Step advances the world by dt seconds. It returns true only on the frame
// the round ends.
func (w *World) Step(dt float32, in Controls) (ended bool) {
	if w.phase == PhaseGameOver {
		w.gameOverTimer += dt
		if in.Restart {
			w.Reset()
		}
		return false
	}
	if dt <= 0 {
		return false
	}

	w.elapsed += dt

	w.advancePlayer(dt, in)
	w.rebaseIfNeeded()
	w.extendGround()
	w.resolveCollisions()
	w.advanceObstacles(dt)
	w.spawnIfDue(dt)
	w.despawnPassed()
	w.accrueScore(dt)

	w.player.UpdateBounds()
	return w.checkFatalCollision()
}

// advancePlayer moves the player forward and sideways and integrates the jump.
func (w *World) advancePlayer(dt float32, in Controls) {
	phys := w.cfg.Physics
	pos := &w.player.Position

	pos[2] -= w.forwardSpeed * dt
	w.distance += float64(w.forwardSpeed * dt)

	w.steering = in.Left || in.Right
	if w.steering {
		w.forwardSpeed = max(w.forwardSpeed-phys.SteerDeceleration*dt, phys.MinSpeed)
	} else {
		w.forwardSpeed = min(w.forwardSpeed+phys.Acceleration*dt, phys.MaxSpeed)
	}
	w.topSpeed = max(w.topSpeed, w.forwardSpeed)

	if in.Left {
		pos[0] -= phys.LateralSpeed * dt
	}
	if in.Right {
		pos[0] += phys.LateralSpeed * dt
	}
	bound := w.cfg.World.LaneBoundary
	pos[0] = mgl32.Clamp(pos[0], -bound, bound)

	if in.Jump && w.grounded {
		w.jumpVelocity = phys.JumpForce
		w.grounded = false
	}

	w.jumpVelocity -= phys.Gravity * dt
	pos[1] += w.jumpVelocity * dt
}

// rebaseIfNeeded shifts the origin back to the player once it has traveled
// past the threshold, keeping coordinates small enough for float32.
func (w *World) rebaseIfNeeded() {
	z := w.player.Position.Z()
	if float32(math.Abs(float64(z))) <= w.cfg.World.RebaseThreshold {
		return
	}

	w.worldOffset += z
	offset := w.worldOffset
	w.player.Position[2] = 0
	w.obstacles.ForEachActive(func(_ int, o *Obstacle) {
		o.Position[2] -= offset
		o.UpdateBounds()
	})
	w.groundStart -= offset
	w.worldOffset = 0
}

// extendGround moves the laid ground forward so the segment under the
// player always exists.
func (w *World) extendGround() {
	seg := w.cfg.World.SegmentLength
	for w.player.Position.Z() < w.groundStart-seg {
		w.groundStart -= seg
	}
}

// resolveCollisions lets the player stand on obstacles and bump its head on
// them, then falls back to the ground plane. Only the first overlapping
// obstacle in pool order is resolved.
func (w *World) resolveCollisions() {
	w.grounded = false
	w.player.UpdateBounds()
	half := w.player.HalfHeight()

	for i := 0; i < w.obstacles.Len(); i++ {
		o := w.obstacles.At(i)
		if !w.player.Bounds.Overlaps(o.Bounds) {
			continue
		}

		penetration := w.player.Bounds.Max.Y() - o.Bounds.Max.Y()
		if w.jumpVelocity <= 0 && penetration > 0 {
			w.player.Position[1] = o.Bounds.Max.Y() + half
			w.grounded = true
		} else if w.jumpVelocity > 0 {
			w.player.Position[1] = o.Bounds.Min.Y() - half
		}
		w.jumpVelocity = 0
		break
	}

	if floor := w.cfg.World.GroundLevel + half; !w.grounded && w.player.Position.Y() < floor {
		w.player.Position[1] = floor
		w.grounded = true
		w.jumpVelocity = 0
	}
}

// advanceObstacles drifts obstacles toward the player.
func (w *World) advanceObstacles(dt float32) {
	drift := w.forwardSpeed * w.cfg.Obstacles.DriftFactor * dt
	w.obstacles.ForEachActive(func(_ int, o *Obstacle) {
		o.Position[2] += drift
		o.UpdateBounds()
	})
}

// scoreTickSlack absorbs float rounding so that frame deltas summing to one
// second, such as 60 x 1/60, count as a full second.
const scoreTickSlack = 1e-5

// accrueScore adds the floored forward speed once per elapsed second.
func (w *World) accrueScore(dt float32) {
	w.scoreTimer += float64(dt)
	for w.scoreTimer >= 1-scoreTickSlack {
		w.score += int(w.forwardSpeed)
		w.scoreTimer -= 1
	}
}

// checkFatalCollision ends the round on the first obstacle the player
// intersects. Face contact within ContactEpsilon (resting on the top or
// touching the underside) is not a crash.
func (w *World) checkFatalCollision() bool {
	eps := w.cfg.Obstacles.ContactEpsilon
	pb := w.player.Bounds

	for _, o := range w.obstacles.Active() {
		if !pb.Overlaps(o.Bounds) {
			continue
		}
		if absF(pb.Min.Y()-o.Bounds.Max.Y()) <= eps || absF(pb.Max.Y()-o.Bounds.Min.Y()) <= eps {
			continue
		}
		w.phase = PhaseGameOver
		w.gameOverTimer = 0
		return true
	}
	return false
}

func absF(v float32) float32 {
	return float32(math.Abs(float64(v)))
}
