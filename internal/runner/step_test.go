package runner

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/vovakirdan/runner3d/internal/config"
	"github.com/vovakirdan/runner3d/internal/core"
)

// quietConfig returns the defaults with spawning pushed far into the future,
// so tests control every obstacle themselves.
func quietConfig() config.RunnerConfig {
	cfg := config.DefaultRunnerConfig()
	cfg.Spawn.MinIntervalMs = 1_000_000
	cfg.Spawn.MaxIntervalMs = 1_000_000
	return cfg
}

func newQuietWorld() *World {
	return NewWorld(quietConfig(), NewRandom(1))
}

func approx(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-4
}

func TestNewWorldStartState(t *testing.T) {
	w := newQuietWorld()
	p := w.Player()

	if p.Position != (mgl32.Vec3{0, 0.5, 0}) {
		t.Errorf("player starts at %v, expected (0, 0.5, 0)", p.Position)
	}
	if !w.Grounded() {
		t.Error("player should start grounded")
	}
	if w.Phase() != PhaseRunning {
		t.Errorf("Phase() = %v, expected Running", w.Phase())
	}
	if w.Speed() != w.Config().Physics.StartSpeed {
		t.Errorf("Speed() = %f, expected start speed", w.Speed())
	}
	if len(w.Obstacles()) != 0 {
		t.Error("world should start without obstacles")
	}
}

func TestRebaseShiftsEverything(t *testing.T) {
	cfg := quietConfig()
	cfg.World.RebaseThreshold = 100
	w := NewWorld(cfg, NewRandom(1))

	w.obstacles.Spawn(mgl32.Vec3{1, 0.5, -150}, mgl32.Vec3{1, 1, 1}, core.ColorRed, 0)
	w.player.Position[2] = -101
	w.groundStart = -100

	w.rebaseIfNeeded()

	if z := w.Player().Position.Z(); z != 0 {
		t.Errorf("player Z = %f after rebase, expected 0", z)
	}
	if z := w.Obstacles()[0].Position.Z(); z != -49 {
		t.Errorf("obstacle Z = %f after rebase, expected -49", z)
	}
	if z := w.Obstacles()[0].Bounds.Max.Z(); z != -48.5 {
		t.Errorf("obstacle bounds not shifted, Max.Z = %f", z)
	}
	if w.GroundStart() != 1 {
		t.Errorf("GroundStart() = %f, expected 1", w.GroundStart())
	}
	if w.worldOffset != 0 {
		t.Errorf("worldOffset = %f, expected 0 after rebase", w.worldOffset)
	}
}

func TestRebaseBelowThresholdIsNoop(t *testing.T) {
	cfg := quietConfig()
	cfg.World.RebaseThreshold = 100
	w := NewWorld(cfg, NewRandom(1))
	w.player.Position[2] = -100

	w.rebaseIfNeeded()

	if w.Player().Position.Z() != -100 || w.GroundStart() != 0 {
		t.Error("rebase should only trigger past the threshold")
	}
}

func TestStepRebasesPastThreshold(t *testing.T) {
	cfg := quietConfig()
	cfg.World.RebaseThreshold = 100
	w := NewWorld(cfg, NewRandom(1))
	w.player.Position[2] = -99.9

	w.Step(0.1, Controls{})

	if w.Player().Position.Z() != 0 {
		t.Errorf("player Z = %f, expected 0 after rebasing step", w.Player().Position.Z())
	}
	if w.Distance() <= 0 {
		t.Error("distance should keep counting across a rebase")
	}
}

func TestLandingOnObstacle(t *testing.T) {
	w := newQuietWorld()
	w.obstacles.Spawn(mgl32.Vec3{0, 0.5, 0}, mgl32.Vec3{3, 1, 3}, core.ColorRed, 0)
	w.player.Position[1] = 1.4
	w.jumpVelocity = -1
	w.grounded = false

	w.resolveCollisions()

	if y := w.Player().Position.Y(); y != 1.5 {
		t.Errorf("player Y = %f, expected 1.5 on top of obstacle", y)
	}
	if !w.Grounded() {
		t.Error("player should be grounded on obstacle")
	}
	if w.JumpVelocity() != 0 {
		t.Errorf("JumpVelocity() = %f, expected 0", w.JumpVelocity())
	}
}

func TestStandingOnObstacleIsNotFatal(t *testing.T) {
	w := newQuietWorld()
	w.obstacles.Spawn(mgl32.Vec3{0, 0.5, 0}, mgl32.Vec3{3, 1, 3}, core.ColorRed, 0)
	w.player.Position[1] = 1.5
	w.player.UpdateBounds()

	for i := 0; i < 10; i++ {
		if w.Step(1.0/60.0, Controls{}) {
			t.Fatalf("frame %d: resting on an obstacle ended the round", i)
		}
		if !w.Grounded() {
			t.Fatalf("frame %d: player should stay grounded on the obstacle", i)
		}
	}
	if y := w.Player().Position.Y(); y != 1.5 {
		t.Errorf("player Y = %f, expected 1.5", y)
	}
}

// twoLandingWorld places a falling player over two obstacles: slot 0 with
// its top at 1.0 and slot 1 with its top at 1.4.
func twoLandingWorld(withSecond bool) *World {
	w := newQuietWorld()
	w.obstacles.Spawn(mgl32.Vec3{0, 0.5, 0}, mgl32.Vec3{3, 1, 3}, core.ColorRed, 0)
	if withSecond {
		w.obstacles.Spawn(mgl32.Vec3{0, 0.7, 0}, mgl32.Vec3{3, 1.4, 3}, core.ColorBlue, 0)
	}
	w.player.Position[1] = 1.4
	w.jumpVelocity = -1
	w.grounded = false
	return w
}

func TestResolveFirstMatchWins(t *testing.T) {
	w := twoLandingWorld(true)

	w.resolveCollisions()

	if y := w.Player().Position.Y(); y != 1.5 {
		t.Errorf("player Y = %f, expected 1.5 on slot 0, not 1.9 on slot 1", y)
	}
	if !w.Grounded() {
		t.Error("player should be grounded on slot 0")
	}

	// Slot 1 is left for the fatal scan and ends the round
	w.player.UpdateBounds()
	if !w.checkFatalCollision() {
		t.Error("unresolved overlap with slot 1 should end the round")
	}

	// Without slot 1 the same landing is safe
	alone := twoLandingWorld(false)
	alone.resolveCollisions()
	alone.player.UpdateBounds()
	if alone.checkFatalCollision() {
		t.Error("landing on slot 0 alone should not end the round")
	}
}

func TestStepFirstMatchWins(t *testing.T) {
	w := twoLandingWorld(true)

	if !w.Step(1.0/60.0, Controls{}) {
		t.Fatal("overlap with slot 1 should end the round")
	}
	if y := w.Player().Position.Y(); y != 1.5 {
		t.Errorf("player Y = %f, expected 1.5 from resolving slot 0", y)
	}
}

func TestHeadBump(t *testing.T) {
	w := newQuietWorld()
	w.obstacles.Spawn(mgl32.Vec3{0, 2, 0}, mgl32.Vec3{2, 1, 2}, core.ColorRed, 0)
	w.player.Position[1] = 1.2
	w.jumpVelocity = 3
	w.grounded = false

	w.resolveCollisions()

	if y := w.Player().Position.Y(); y != 1.0 {
		t.Errorf("player Y = %f, expected 1.0 under obstacle", y)
	}
	if w.JumpVelocity() != 0 {
		t.Errorf("JumpVelocity() = %f, expected 0 after head bump", w.JumpVelocity())
	}
	if w.Grounded() {
		t.Error("head bump should not ground the player")
	}
}

func TestGroundFallback(t *testing.T) {
	w := newQuietWorld()
	w.player.Position[1] = 0.3
	w.jumpVelocity = -2
	w.grounded = false

	w.resolveCollisions()

	if y := w.Player().Position.Y(); y != 0.5 {
		t.Errorf("player Y = %f, expected 0.5 on ground", y)
	}
	if !w.Grounded() || w.JumpVelocity() != 0 {
		t.Error("ground fallback should ground the player and zero velocity")
	}
}

func TestAirborneStaysUngrounded(t *testing.T) {
	w := newQuietWorld()
	w.player.Position[1] = 3
	w.jumpVelocity = 1

	w.resolveCollisions()

	if w.Grounded() {
		t.Error("player in the air should not be grounded")
	}
	if w.JumpVelocity() != 1 {
		t.Error("velocity should be untouched without contact")
	}
}

func TestGroundExtension(t *testing.T) {
	w := newQuietWorld()
	w.player.Position[2] = -45

	w.extendGround()

	if w.GroundStart() != -40 {
		t.Errorf("GroundStart() = %f, expected -40", w.GroundStart())
	}
	if w.Player().Position.Z() < w.GroundStart()-w.Config().World.SegmentLength {
		t.Error("player should stand on laid ground")
	}
}

func TestJump(t *testing.T) {
	w := newQuietWorld()
	dt := float32(1.0 / 60.0)

	w.Step(dt, Controls{Jump: true})

	if w.Grounded() {
		t.Error("player should leave the ground after jumping")
	}
	if w.Player().Position.Y() <= 0.5 {
		t.Errorf("player Y = %f, expected above ground", w.Player().Position.Y())
	}
	v := w.JumpVelocity()

	// Holding jump in the air does not re-trigger it
	w.Step(dt, Controls{Jump: true})
	if w.JumpVelocity() >= v {
		t.Errorf("velocity %f should decrease in the air, was %f", w.JumpVelocity(), v)
	}

	for i := 0; i < 120 && !w.Grounded(); i++ {
		w.Step(dt, Controls{})
	}
	if !w.Grounded() || w.Player().Position.Y() != 0.5 {
		t.Errorf("player should land back on the ground, Y = %f", w.Player().Position.Y())
	}
}

func TestLateralClampAndSteerDeceleration(t *testing.T) {
	w := newQuietWorld()

	for i := 0; i < 20; i++ {
		w.Step(0.25, Controls{Right: true})
	}

	if x := w.Player().Position.X(); x != 4 {
		t.Errorf("player X = %f, expected clamp at 4", x)
	}
	if s := w.Speed(); s != w.Config().Physics.MinSpeed {
		t.Errorf("Speed() = %f, expected min speed while steering", s)
	}
	if !w.Steering() {
		t.Error("Steering() should report the held key")
	}

	for i := 0; i < 40; i++ {
		w.Step(0.25, Controls{Left: true})
	}
	if x := w.Player().Position.X(); x != -4 {
		t.Errorf("player X = %f, expected clamp at -4", x)
	}
}

func TestAccelerationCapsAtMaxSpeed(t *testing.T) {
	w := newQuietWorld()

	for i := 0; i < 200; i++ {
		w.Step(0.25, Controls{})
	}

	if s := w.Speed(); s != w.Config().Physics.MaxSpeed {
		t.Errorf("Speed() = %f, expected max speed", s)
	}
	if w.TopSpeed() != w.Config().Physics.MaxSpeed {
		t.Errorf("TopSpeed() = %f, expected max speed", w.TopSpeed())
	}
	if w.SpeedLevel() != 1 {
		t.Errorf("SpeedLevel() = %f, expected 1 at max speed", w.SpeedLevel())
	}
}

func TestScoreAccruesFlooredSpeedPerSecond(t *testing.T) {
	cfg := quietConfig()
	cfg.Physics.StartSpeed = 7.5
	cfg.Physics.MinSpeed = 7.5
	cfg.Physics.MaxSpeed = 7.5
	w := NewWorld(cfg, NewRandom(1))

	for i := 0; i < 3; i++ {
		w.Step(0.25, Controls{})
	}
	if w.Score() != 0 {
		t.Errorf("Score() = %d before a full second, expected 0", w.Score())
	}

	w.Step(0.25, Controls{})
	if w.Score() != 7 {
		t.Errorf("Score() = %d after 1s at speed 7.5, expected 7", w.Score())
	}

	w.Step(1.0, Controls{})
	if w.Score() != 14 {
		t.Errorf("Score() = %d after 2s, expected 14", w.Score())
	}
}

func TestScoreAtSixtyFramesPerSecond(t *testing.T) {
	cfg := quietConfig()
	cfg.Physics.StartSpeed = 7
	cfg.Physics.MinSpeed = 7
	cfg.Physics.MaxSpeed = 7
	w := NewWorld(cfg, NewRandom(1))
	dt := float32(1.0 / 60.0)

	for i := 0; i < 59; i++ {
		w.Step(dt, Controls{})
	}
	if w.Score() != 0 {
		t.Errorf("Score() = %d after 59 frames, expected 0", w.Score())
	}

	w.Step(dt, Controls{})
	if w.Score() != 7 {
		t.Errorf("Score() = %d after 60 frames at speed 7, expected 7", w.Score())
	}

	for i := 0; i < 60; i++ {
		w.Step(dt, Controls{})
	}
	if w.Score() != 14 {
		t.Errorf("Score() = %d after 120 frames, expected 14", w.Score())
	}
}

func TestSpawnPlacesObstacleAhead(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	cfg.Spawn.MinIntervalMs = 500
	cfg.Spawn.MaxIntervalMs = 500
	cfg.Difficulty.Enabled = false
	w := NewWorld(cfg, NewRandom(9))

	w.Step(0.25, Controls{})
	if len(w.Obstacles()) != 0 {
		t.Fatal("no obstacle should spawn before the interval elapses")
	}
	w.Step(0.25, Controls{})

	obs := w.Obstacles()
	if len(obs) != 1 {
		t.Fatalf("expected 1 obstacle after 0.5s, got %d", len(obs))
	}
	o := obs[0]

	if want := w.Player().Position.Z() - cfg.Spawn.Distance; !approx(o.Position.Z(), want) {
		t.Errorf("obstacle Z = %f, expected %f", o.Position.Z(), want)
	}
	if o.Bounds.Min.Y() != cfg.World.GroundLevel {
		t.Errorf("obstacle should rest on the ground, Min.Y = %f", o.Bounds.Min.Y())
	}
	x := o.Position.X()
	if x < -cfg.World.LaneBoundary || x > cfg.World.LaneBoundary || x != float32(math.Round(float64(x))) {
		t.Errorf("obstacle X = %f, expected integer within lane", x)
	}
	size := o.Size
	if size.X() < float32(cfg.Obstacles.MinWidth) || size.X() > float32(cfg.Obstacles.MaxWidth) ||
		size.Y() < float32(cfg.Obstacles.MinHeight) || size.Y() > float32(cfg.Obstacles.MaxHeight) ||
		size.Z() < float32(cfg.Obstacles.MinLength) || size.Z() > float32(cfg.Obstacles.MaxLength) {
		t.Errorf("obstacle size %v outside configured ranges", size)
	}
	if o.Variant < 0 || o.Variant >= cfg.Obstacles.Variants {
		t.Errorf("Variant = %d outside [0, %d)", o.Variant, cfg.Obstacles.Variants)
	}
}

func TestSpawnTimerRunsWhilePoolFull(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	cfg.Spawn.MinIntervalMs = 500
	cfg.Spawn.MaxIntervalMs = 500
	cfg.Difficulty.Enabled = false
	cfg.Obstacles.Capacity = 1
	w := NewWorld(cfg, NewRandom(9))

	w.spawnIfDue(0.5)
	if w.obstacles.Len() != 1 {
		t.Fatal("first spawn should succeed")
	}

	w.spawnIfDue(0.75)
	if w.obstacles.Len() != 1 {
		t.Error("full pool should not grow")
	}
	if w.spawnTimer != 0.75 {
		t.Errorf("spawnTimer = %f, expected it to keep running at 0.75", w.spawnTimer)
	}

	w.obstacles.Clear()
	w.spawnIfDue(0.01)
	if w.obstacles.Len() != 1 {
		t.Error("overdue spawn should happen as soon as a slot frees")
	}
	if w.spawnTimer != 0 {
		t.Errorf("spawnTimer = %f, expected reset after spawn", w.spawnTimer)
	}
}

func TestSpawnIntervalShrinksWithSpeed(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	cfg.Spawn.MinIntervalMs = 1000
	cfg.Spawn.MaxIntervalMs = 1000
	w := NewWorld(cfg, NewRandom(1))

	atStart := w.drawSpawnInterval()
	w.forwardSpeed = cfg.Physics.StartSpeed * 2
	faster := w.drawSpawnInterval()

	if !approx(atStart, 1) {
		t.Errorf("interval at start speed = %f, expected 1", atStart)
	}
	if !approx(faster, 0.5) {
		t.Errorf("interval at double speed = %f, expected 0.5", faster)
	}
}

func TestDespawnSweep(t *testing.T) {
	w := newQuietWorld()
	margin := w.Config().Obstacles.TrailingMargin
	for i, dz := range []float32{margin + 10, margin + 20, 5, margin + 1, margin} {
		w.obstacles.Spawn(mgl32.Vec3{0, 0.5, dz}, mgl32.Vec3{1, 1, 1}, core.ColorRed, i)
	}

	w.despawnPassed()

	obs := w.Obstacles()
	if len(obs) != 2 {
		t.Fatalf("expected 2 obstacles after sweep, got %d", len(obs))
	}
	for _, o := range obs {
		if o.Position.Z() > w.Player().Position.Z()+margin {
			t.Errorf("obstacle at Z %f should have been removed", o.Position.Z())
		}
	}
}

func TestObstaclesDriftTowardPlayer(t *testing.T) {
	w := newQuietWorld()
	w.obstacles.Spawn(mgl32.Vec3{3, 0.5, -30}, mgl32.Vec3{1, 1, 1}, core.ColorRed, 0)

	w.advanceObstacles(0.5)

	want := -30 + w.Speed()*w.Config().Obstacles.DriftFactor*0.5
	if z := w.Obstacles()[0].Position.Z(); !approx(z, want) {
		t.Errorf("obstacle Z = %f, expected %f", z, want)
	}
	if b := w.Obstacles()[0].Bounds; !approx((b.Min.Z()+b.Max.Z())/2, want) {
		t.Error("obstacle bounds should follow its position")
	}
}

func crashWorld() *World {
	w := newQuietWorld()
	w.obstacles.Spawn(mgl32.Vec3{0, 1.5, -0.2}, mgl32.Vec3{2, 3, 1}, core.ColorRed, 0)
	return w
}

func TestFatalCollisionSingleTransition(t *testing.T) {
	w := crashWorld()

	if !w.Step(1.0/60.0, Controls{}) {
		t.Fatal("running into an obstacle should end the round")
	}
	if w.Phase() != PhaseGameOver || !w.GameOver() {
		t.Fatalf("Phase() = %v, expected GameOver", w.Phase())
	}

	score := w.Score()
	pos := w.Player().Position
	for i := 0; i < 30; i++ {
		if w.Step(1.0/60.0, Controls{Left: true, Jump: true}) {
			t.Fatal("a finished round must not end again")
		}
	}
	if w.Score() != score || w.Player().Position != pos {
		t.Error("simulation should be frozen after game over")
	}
	if !approx(w.GameOverTimer(), 0.5) {
		t.Errorf("GameOverTimer() = %f, expected 0.5", w.GameOverTimer())
	}
}

func TestRestartResetsWorld(t *testing.T) {
	w := crashWorld()
	w.Step(1.0/60.0, Controls{})
	if !w.GameOver() {
		t.Fatal("setup should end the round")
	}

	w.Step(1.0/60.0, Controls{Restart: true})

	if w.Phase() != PhaseRunning {
		t.Fatalf("Phase() = %v, expected Running after restart", w.Phase())
	}
	if len(w.Obstacles()) != 0 {
		t.Error("restart should clear obstacles")
	}
	if w.Player().Position != (mgl32.Vec3{0, 0.5, 0}) {
		t.Errorf("player at %v, expected start position", w.Player().Position)
	}
}

func TestResetRestoresEveryField(t *testing.T) {
	w := NewWorld(config.DefaultRunnerConfig(), NewRandom(5))
	for i := 0; i < 600 && !w.GameOver(); i++ {
		w.Step(1.0/30.0, Controls{Right: i%50 < 10, Jump: i%40 == 0})
	}
	w.gameOverTimer = 3
	w.worldOffset = 12

	w.Reset()

	checks := []struct {
		name string
		ok   bool
	}{
		{"phase", w.phase == PhaseRunning},
		{"score", w.score == 0},
		{"scoreTimer", w.scoreTimer == 0},
		{"gameOverTimer", w.gameOverTimer == 0},
		{"forwardSpeed", w.forwardSpeed == w.cfg.Physics.StartSpeed},
		{"steering", !w.steering},
		{"jumpVelocity", w.jumpVelocity == 0},
		{"grounded", w.grounded},
		{"groundStart", w.groundStart == 0},
		{"worldOffset", w.worldOffset == 0},
		{"spawnTimer", w.spawnTimer == 0},
		{"spawnInterval", w.spawnInterval > 0},
		{"distance", w.distance == 0},
		{"topSpeed", w.topSpeed == w.cfg.Physics.StartSpeed},
		{"elapsed", w.elapsed == 0},
		{"obstacles", w.obstacles.Len() == 0},
		{"player", w.player.Position == mgl32.Vec3{0, 0.5, 0}},
		{"player bounds", w.player.Bounds == core.ComputeBounds(w.player.Position, w.player.Size)},
	}
	for _, c := range checks {
		if !c.ok {
			t.Errorf("Reset did not restore %s", c.name)
		}
	}
}

func TestWorldDeterminism(t *testing.T) {
	run := func() (int, float64, int) {
		w := NewWorld(config.DefaultRunnerConfig(), NewRandom(2024))
		for i := 0; i < 1200 && !w.GameOver(); i++ {
			w.Step(1.0/60.0, Controls{Left: i%90 < 20, Jump: i%45 == 0})
		}
		return w.Score(), w.Distance(), w.obstacles.Len()
	}

	s1, d1, n1 := run()
	s2, d2, n2 := run()
	if s1 != s2 || d1 != d2 || n1 != n2 {
		t.Errorf("runs differ: (%d, %f, %d) vs (%d, %f, %d)", s1, d1, n1, s2, d2, n2)
	}
}

func TestPhaseString(t *testing.T) {
	if PhaseRunning.String() != "Running" || PhaseGameOver.String() != "GameOver" {
		t.Error("unexpected phase names")
	}
}
