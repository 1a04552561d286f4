package scene

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/Garsondee/Neural-Entity/internal/driver"
	"github.com/Garsondee/Neural-Entity/internal/entity"
	"github.com/Garsondee/Neural-Entity/internal/field"
	"github.com/Garsondee/Neural-Entity/internal/vmath"
)

// Layer orders primitives back to front.
type Layer int

const (
	LayerStars Layer = iota
	LayerNebula
	LayerWeb
	LayerPulse
	LayerShell
	LayerBurst
	layerCount
)

// Point is one projected dot.
type Point struct {
	X, Y  float32
	Depth float64
	Size  float32
	Color color.RGBA // alpha-premultiplied
	Layer Layer
}

// Line is one projected segment.
type Line struct {
	X0, Y0, X1, Y1 float32
	Color          color.RGBA // alpha-premultiplied
}

// Scene is one frame flattened to 2D.
type Scene struct {
	Background color.RGBA
	Points     []Point
	Lines      []Line
	Counts     [layerCount]int // points emitted per layer
}

// Background is the deep blue-black behind everything.
var Background = color.RGBA{R: 0x03, G: 0x03, B: 0x08, A: 0xff}

var (
	webColor   = color.RGBA{R: 0x00, G: 0xd4, B: 0xc0, A: 0xff}
	pulseColor = color.RGBA{R: 0x88, G: 0xff, B: 0xf0, A: 0xff}
	starColor  = color.RGBA{R: 0xcc, G: 0xdd, B: 0xff, A: 0xff}
	ringColor  = color.RGBA{R: 0x00, G: 0xff, B: 0xe0, A: 0xff}
)

// Builder turns a driver's state into a Scene, reusing its buffers.
type Builder struct {
	MaxShellPoints int     // per shell; vertices are strided to fit
	FOV            float64 // vertical, degrees
	Aspect         float64 // horizontal stretch, see NewView
	PointSize      float32

	scene Scene
}

// NewBuilder returns a builder with the viewer defaults.
func NewBuilder() *Builder {
	return &Builder{MaxShellPoints: 3000, FOV: 45, Aspect: 1, PointSize: 1.5}
}

// Build projects d's latest frame onto a width×height target.
func (b *Builder) Build(d *driver.Driver, width, height float64) *Scene {
	sc := &b.scene
	sc.Background = Background
	sc.Points = sc.Points[:0]
	sc.Lines = sc.Lines[:0]
	sc.Counts = [layerCount]int{}

	fr := d.Frame()
	view := NewView(fr.Camera, width, height, b.FOV, b.Aspect)

	b.addField(view, d.Field)
	b.addRings(view, fr.Entity)
	for s := entity.Shell(0); s < entity.ShellCount; s++ {
		b.addShell(view, d.Entity, fr.Entity, s)
	}
	b.addBurst(view, d.Field)
	return sc
}

func (b *Builder) point(v View, p vmath.Vec3, size float32, c color.RGBA, alpha float64, l Layer) {
	x, y, depth, ok := v.Project(p)
	if !ok || alpha <= 0 {
		return
	}
	b.scene.Points = append(b.scene.Points, Point{
		X: float32(x), Y: float32(y), Depth: depth, Size: size,
		Color: premultiply(c, alpha), Layer: l,
	})
	b.scene.Counts[l]++
}

func (b *Builder) line(v View, p0, p1 vmath.Vec3, c color.RGBA, alpha float64) {
	x0, y0, _, ok0 := v.Project(p0)
	x1, y1, _, ok1 := v.Project(p1)
	if !ok0 || !ok1 || alpha <= 0 {
		return
	}
	b.scene.Lines = append(b.scene.Lines, Line{
		X0: float32(x0), Y0: float32(y0), X1: float32(x1), Y1: float32(y1),
		Color: premultiply(c, alpha),
	})
}

func (b *Builder) addField(v View, f *field.Field) {
	rot := entity.Euler{X: f.Rotation().X, Y: f.Rotation().Y}
	for _, s := range f.Stars() {
		b.point(v, RotateEuler(s, rot), 1, starColor, 0.6, LayerStars)
	}
	for _, n := range f.Nebula() {
		c := color.RGBA{R: unit8(n.Color[0]), G: unit8(n.Color[1]), B: unit8(n.Color[2]), A: 0xff}
		b.point(v, RotateEuler(n.Pos, rot), 2, c, 0.35, LayerNebula)
	}
	nodes := f.Nodes()
	for _, e := range f.Edges() {
		b.line(v, RotateEuler(nodes[e.From], rot), RotateEuler(nodes[e.To], rot), webColor, e.Alpha*0.25)
	}
	for _, n := range nodes {
		b.point(v, RotateEuler(n, rot), 2, webColor, 0.5, LayerWeb)
	}
	for _, p := range f.Pulses() {
		if p.Active {
			b.point(v, RotateEuler(p.Position, rot), 3, pulseColor, 0.9, LayerPulse)
		}
	}
}

func (b *Builder) addBurst(v View, f *field.Field) {
	bu := f.Burst()
	if !bu.Active() {
		return
	}
	rot := entity.Euler{X: f.Rotation().X, Y: f.Rotation().Y}
	for _, p := range bu.Particles() {
		if p.Life > 0 {
			b.point(v, RotateEuler(p.Pos, rot), 2.5, bu.Color(), bu.Opacity()*p.Life, LayerBurst)
		}
	}
}

// ringSegments is the polyline resolution of an orbital ring.
const ringSegments = 64

func (b *Builder) addRings(v View, p entity.Params) {
	for _, r := range p.Rings {
		var prev vmath.Vec3
		for i := 0; i <= ringSegments; i++ {
			a := float64(i) / ringSegments * math.Pi * 2
			pt := vmath.Vec3{X: math.Cos(a) * r.Radius, Y: math.Sin(a) * r.Radius}
			pt = RotateEuler(RotateEuler(pt, r.Rotation), p.GroupRotation)
			if i > 0 {
				b.line(v, prev, pt, ringColor, r.Opacity)
			}
			prev = pt
		}
	}
}

// addShell places the shell's vertices the way the entity's vertex shader
// would: morph blend, breathing, a noise displacement driven by the shape
// params, pointer pull, then the shell and group rotations.
func (b *Builder) addShell(v View, e *entity.Entity, p entity.Params, s entity.Shell) {
	sp := p.Shells[s]
	base := e.BasePositions(s)
	var morph []float32
	if s == entity.MorphShell && sp.MorphProgress > 0 {
		morph = e.MorphTargets()
	}

	n := len(base) / 3
	stride := 1
	if b.MaxShellPoints > 0 && n > b.MaxShellPoints {
		stride = (n + b.MaxShellPoints - 1) / b.MaxShellPoints
	}

	hue := vmath.Wrap01(sp.BaseHue + sp.HueShift)
	c := ShellColor(hue, sp.Saturation, sp.Brightness)
	alpha := vmath.Clamp01(sp.Opacity * (1 + sp.PulseIntensity))
	scale := sp.BreathScale * (1 + sp.PulseIntensity*0.08)
	t := sp.Time * sp.MorphSpeed * 6

	for i := 0; i < n; i += stride {
		pos := vmath.Vec3{X: float64(base[i*3]), Y: float64(base[i*3+1]), Z: float64(base[i*3+2])}
		if morph != nil {
			target := vmath.Vec3{X: float64(morph[i*3]), Y: float64(morph[i*3+1]), Z: float64(morph[i*3+2])}
			pos = vmath.V3Lerp(pos, target, sp.MorphProgress)
		}
		nx, ny, nz := vmath.Direction(pos.X, pos.Y, pos.Z)
		dir := vmath.Vec3{X: nx, Y: ny, Z: nz}
		k := sp.NoiseFrequency * 3
		noise := math.Sin(dir.X*k+t) * math.Sin(dir.Y*k*1.3+t*0.7) * math.Cos(dir.Z*k*0.9-t*0.5)
		disp := sp.MorphIntensity*noise*(1-sp.Symmetry*0.5) + sp.Spikiness*0.15*math.Abs(noise)
		disp += sp.Agitation * 0.04 * math.Sin(sp.Time*40+float64(i))
		pos = vmath.V3Add(pos, vmath.V3Scale(dir, disp))
		pos.Y *= 1 + sp.Stretch

		pos = vmath.V3Scale(pos, scale)
		pos.X += sp.MouseX * sp.MouseInfluence * 0.1
		pos.Y += sp.MouseY * sp.MouseInfluence * 0.1
		pos = RotateEuler(RotateEuler(pos, sp.Rotation), p.GroupRotation)

		b.point(v, pos, b.PointSize, c, alpha, LayerShell)
	}
}

// ShellColor converts an HSL hue in [0,1) with the entity's saturation and
// brightness offset to RGB.
func ShellColor(hue, saturation, brightness float64) color.RGBA {
	l := vmath.Clamp(0.5+brightness*0.5, 0.1, 0.9)
	r, g, bl := colorful.Hsl(hue*360, vmath.Clamp01(saturation), l).Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: bl, A: 0xff}
}

func premultiply(c color.RGBA, alpha float64) color.RGBA {
	a := vmath.Clamp01(alpha)
	return color.RGBA{
		R: uint8(float64(c.R) * a),
		G: uint8(float64(c.G) * a),
		B: uint8(float64(c.B) * a),
		A: uint8(255 * a),
	}
}

func unit8(v float32) uint8 {
	return uint8(vmath.Clamp01(float64(v)) * 255)
}
