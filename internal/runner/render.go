package runner

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/vovakirdan/runner3d/internal/core"
)

// Camera placement relative to the player.
const (
	cameraHeight     float32 = 3
	cameraBack       float32 = 7
	cameraFollowRate float32 = 6 // Fraction of the gap closed per second, before clamping
)

// Projection parameters.
const (
	fovY       float32 = 60
	nearPlane  float32 = 0.1
	farPlane   float32 = 500
	cellAspect float32 = 2 // Terminal cells are about twice as tall as wide
)

// viewDir tilts the view down so the horizon sits in the upper third.
var viewDir = mgl32.Vec3{0, -0.18, -1}

// Ground is tiled in stripes along Z; an even count per segment keeps the
// stripe pattern stable when the ground extends by a whole segment.
const groundTilesPerSegment = 4

// Visual characters for rendering
const (
	GroundChar    = '░'
	PlayerChar    = '█'
	TopFaceChar   = '▀'
	GaugeFullChar = '█'
	GaugeEmptyCh  = '░'
	gaugeWidth    = 10
)

// obstacleFaces are the front-face runes per visual variant.
var obstacleFaces = []rune{'█', '▓', '▒'}

// camera follows the player: exactly along Z so rebasing never jolts the
// view, smoothly along X and Y.
type camera struct {
	pos mgl32.Vec3
}

func cameraTarget(player mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{player.X(), player.Y() + cameraHeight, player.Z() + cameraBack}
}

func (c *camera) snap(player mgl32.Vec3) {
	c.pos = cameraTarget(player)
}

func (c *camera) follow(player mgl32.Vec3, dt float32) {
	want := cameraTarget(player)
	t := core.ClampF(cameraFollowRate*dt, 0, 1)
	c.pos[0] = core.Lerp(c.pos[0], want.X(), t)
	c.pos[1] = core.Lerp(c.pos[1], want.Y(), t)
	c.pos[2] = want.Z()
}

// projector maps world points to screen cells and back.
type projector struct {
	vp   mgl32.Mat4
	inv  mgl32.Mat4
	w, h int
}

func newProjector(eye mgl32.Vec3, w, h int) projector {
	aspect := float32(w) / (float32(max(h, 1)) * cellAspect)
	proj := mgl32.Perspective(mgl32.DegToRad(fovY), aspect, nearPlane, farPlane)
	view := mgl32.LookAtV(eye, eye.Add(viewDir), mgl32.Vec3{0, 1, 0})
	vp := proj.Mul4(view)
	return projector{vp: vp, inv: vp.Inv(), w: w, h: h}
}

// project returns fractional screen coordinates of p. ok is false when p is
// behind the near plane.
func (p projector) project(pt mgl32.Vec3) (x, y float32, ok bool) {
	clip := p.vp.Mul4x1(pt.Vec4(1))
	if clip.W() < nearPlane {
		return 0, 0, false
	}
	nx := clip.X() / clip.W()
	ny := clip.Y() / clip.W()
	x = (nx + 1) / 2 * float32(p.w)
	y = (1 - ny) / 2 * float32(p.h)
	return x, y, true
}

func (p projector) unproject(nx, ny, nz float32) mgl32.Vec3 {
	v := p.inv.Mul4x1(mgl32.Vec4{nx, ny, nz, 1})
	return v.Vec3().Mul(1 / v.W())
}

// groundHit casts a ray through the center of cell (col, row) and returns
// where it meets the plane y = level.
func (p projector) groundHit(col, row int, level float32) (mgl32.Vec3, bool) {
	nx := (float32(col)+0.5)/float32(p.w)*2 - 1
	ny := 1 - (float32(row)+0.5)/float32(p.h)*2
	near := p.unproject(nx, ny, -1)
	far := p.unproject(nx, ny, 1)
	dir := far.Sub(near)
	if dir.Y() >= 0 {
		return mgl32.Vec3{}, false
	}
	t := (level - near.Y()) / dir.Y()
	if t < 0 {
		return mgl32.Vec3{}, false
	}
	return near.Add(dir.Mul(t)), true
}

// drawable is a box queued for painter's-order drawing.
type drawable struct {
	bounds core.Bounds
	face   rune
	color  core.Color
	depth  float32
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.world == nil {
		return
	}

	proj := newProjector(g.camera.pos, dst.Width(), dst.Height())

	g.drawGround(dst, proj)
	g.drawBoxes(dst, proj)
	g.drawHUD(dst)

	if g.paused {
		drawCenteredMessage(dst, "PAUSED", "Press P to resume", core.ColorBrightWhite)
	}

	if g.world.GameOver() {
		// Pulse the title twice a second
		color := core.ColorBrightRed
		if int(g.world.GameOverTimer()*2)%2 == 1 {
			color = core.ColorRed
		}
		sub := fmt.Sprintf("Score: %d  Distance: %.0fm  |  Press R to restart", g.world.Score(), g.world.Distance())
		drawCenteredMessage(dst, "GAME OVER", sub, color)
	}
}

// drawGround rasterizes the laid segments row by row, alternating tile
// colors along Z. One trailing segment behind groundStart is drawn so the
// ground under the camera does not vanish.
func (g *Game) drawGround(dst *core.Screen, proj projector) {
	wc := g.cfg.World
	tile := wc.SegmentLength / groundTilesPerSegment
	near := g.world.GroundStart() + wc.SegmentLength
	far := g.world.GroundStart() - float32(wc.SegmentCount)*wc.SegmentLength
	edge := wc.LaneBoundary + g.cfg.Player.Width/2

	for row := 0; row < dst.Height(); row++ {
		for col := 0; col < dst.Width(); col++ {
			hit, ok := proj.groundHit(col, row, wc.GroundLevel)
			if !ok || hit.Z() > near || hit.Z() < far {
				continue
			}
			if hit.X() < -edge || hit.X() > edge {
				continue
			}

			idx := int(math.Floor(float64((g.world.GroundStart() - hit.Z()) / tile)))
			color := core.ColorGray
			if idx%2 != 0 {
				color = core.ColorDarkGray
			}
			dst.SetColor(col, row, GroundChar, color)
		}
	}
}

// drawBoxes draws obstacles and the player far to near.
func (g *Game) drawBoxes(dst *core.Screen, proj projector) {
	eyeZ := g.camera.pos.Z()
	obstacles := g.world.Obstacles()

	items := make([]drawable, 0, len(obstacles)+1)
	for _, o := range obstacles {
		items = append(items, drawable{
			bounds: o.Bounds,
			face:   obstacleFaces[o.Variant%len(obstacleFaces)],
			color:  o.Color,
			depth:  eyeZ - o.Bounds.Max.Z(),
		})
	}
	p := g.world.Player()
	items = append(items, drawable{
		bounds: p.Bounds,
		face:   PlayerChar,
		color:  core.ColorBrightGreen,
		depth:  eyeZ - p.Bounds.Max.Z(),
	})

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].depth > items[j].depth
	})

	for _, it := range items {
		if it.depth <= nearPlane {
			continue
		}
		drawBox(dst, proj, it, g.camera.pos.Y())
	}
}

// drawBox fills the front face of a box and, when the camera is above it,
// the top face as a trapezoid behind it.
func drawBox(dst *core.Screen, proj projector, it drawable, eyeY float32) {
	b := it.bounds

	if eyeY > b.Max.Y() {
		blx, by, ok1 := proj.project(mgl32.Vec3{b.Min.X(), b.Max.Y(), b.Min.Z()})
		brx, _, ok2 := proj.project(mgl32.Vec3{b.Max.X(), b.Max.Y(), b.Min.Z()})
		flx, fy, ok3 := proj.project(mgl32.Vec3{b.Min.X(), b.Max.Y(), b.Max.Z()})
		frx, _, ok4 := proj.project(mgl32.Vec3{b.Max.X(), b.Max.Y(), b.Max.Z()})
		if ok1 && ok2 && ok3 && ok4 && fy > by {
			first := max(int(math.Floor(float64(by))), 0)
			last := min(int(math.Ceil(float64(fy))), dst.Height())
			for row := first; row < last; row++ {
				t := core.ClampF((float32(row)+0.5-by)/(fy-by), 0, 1)
				left := max(int(math.Floor(float64(core.Lerp(blx, flx, t)))), 0)
				right := min(int(math.Ceil(float64(core.Lerp(brx, frx, t)))), dst.Width())
				if right > left {
					dst.DrawHLine(left, row, right-left, TopFaceChar, it.color)
				}
			}
		}
	}

	x0, y0, ok1 := proj.project(mgl32.Vec3{b.Min.X(), b.Max.Y(), b.Max.Z()})
	x1, y1, ok2 := proj.project(mgl32.Vec3{b.Max.X(), b.Min.Y(), b.Max.Z()})
	if !ok1 || !ok2 {
		return
	}
	left := int(math.Floor(float64(x0)))
	top := int(math.Floor(float64(y0)))
	right := int(math.Ceil(float64(x1)))
	bottom := int(math.Ceil(float64(y1)))
	dst.FillRect(core.NewRect(left, top, max(right-left, 1), max(bottom-top, 1)), it.face, it.color)
}

// drawHUD draws score, time, distance and the speed gauge on the top row,
// and the difficulty level below the gauge while it progresses.
func (g *Game) drawHUD(dst *core.Screen) {
	score := fmt.Sprintf(" Score: %d  Time: %ds ", g.world.Score(), int(g.world.Elapsed()))
	dst.DrawTextColor(2, 0, score, core.ColorBrightWhite)

	dist := fmt.Sprintf(" %.0fm ", g.world.Distance())
	dst.DrawTextColor((dst.Width()-len(dist))/2, 0, dist, core.ColorWhite)

	gauge := speedGauge(g.world.SpeedLevel(), g.world.Speed())
	dst.DrawTextColor(dst.Width()-len([]rune(gauge))-2, 0, gauge, gaugeColor(g.world.SpeedLevel()))

	if g.world.Progressive() {
		level := fmt.Sprintf("Level %d%%", int(math.Round(g.world.DifficultyLevel()*100)))
		dst.DrawTextColor(dst.Width()-len(level)-2, 1, level, core.ColorGray)
	}
}

// speedGauge renders e.g. "Speed [████░░░░░░] 12.3".
func speedGauge(level, speed float32) string {
	filled := int(math.Round(float64(core.ClampF(level, 0, 1) * gaugeWidth)))
	bar := strings.Repeat(string(GaugeFullChar), filled) + strings.Repeat(string(GaugeEmptyCh), gaugeWidth-filled)
	return fmt.Sprintf("Speed [%s] %.1f", bar, speed)
}

func gaugeColor(level float32) core.Color {
	switch {
	case level < 0.4:
		return core.ColorGreen
	case level < 0.75:
		return core.ColorYellow
	default:
		return core.ColorBrightRed
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string, titleColor core.Color) {
	w := dst.Width()
	h := dst.Height()

	// Calculate box dimensions
	boxW := max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	// Draw box
	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	// Draw text
	dst.DrawTextColor(boxX+(boxW-len(title))/2, boxY+1, title, titleColor)
	dst.DrawText(boxX+(boxW-len(subtitle))/2, boxY+3, subtitle)
}
