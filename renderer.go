package main

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"golang.org/x/image/colornames"

	"github.com/milk9111/arena/arena"
	"github.com/milk9111/arena/common"
	"github.com/milk9111/arena/ecs"
	"github.com/milk9111/arena/ecs/component"
	"github.com/milk9111/arena/projectile"
)

const (
	arenaPadding = 24.0
	shakeDecay   = 6.0
)

// transition is the last spawn or death progress reported for an entity.
type transition struct {
	dying    bool
	progress float64
	hints    map[string]any
}

// Renderer draws the arena. It is the simulation's Scene and receives its
// transition hooks.
type Renderer struct {
	visible     map[ecs.Entity]struct{}
	transitions map[ecs.Entity]transition
	shots       map[projectile.ID]struct{}

	scale   float64
	offsetX float64
	offsetY float64

	shake     float64
	shakeTime float64
}

func NewRenderer() *Renderer {
	return &Renderer{
		visible:     make(map[ecs.Entity]struct{}),
		transitions: make(map[ecs.Entity]transition),
		shots:       make(map[projectile.ID]struct{}),
		scale:       1,
	}
}

func (r *Renderer) AddToScene(handle any) {
	switch h := handle.(type) {
	case ecs.Entity:
		r.visible[h] = struct{}{}
	case *projectile.Projectile:
		h.Visual = h.ID
		r.shots[h.ID] = struct{}{}
	}
}

func (r *Renderer) RemoveFromScene(handle any) {
	switch h := handle.(type) {
	case ecs.Entity:
		delete(r.visible, h)
		delete(r.transitions, h)
	case projectile.ID:
		delete(r.shots, h)
	}
}

func (r *Renderer) OnSpawnUpdate(e ecs.Entity, p float64, hints map[string]any) {
	r.track(e, false, p, hints)
}

func (r *Renderer) OnDeathUpdate(e ecs.Entity, p float64, hints map[string]any) {
	r.track(e, true, p, hints)
}

func (r *Renderer) track(e ecs.Entity, dying bool, p float64, hints map[string]any) {
	if !dying && p >= 1 {
		delete(r.transitions, e)
		return
	}
	r.transitions[e] = transition{dying: dying, progress: p, hints: hints}
}

// Shake starts a screen shake of the given strength in pixels.
func (r *Renderer) Shake(strength float64) {
	if strength > r.shake {
		r.shake = strength
	}
}

func (r *Renderer) Update(dt float64) {
	r.shakeTime += dt
	r.shake = math.Max(0, r.shake-shakeDecay*dt*r.shake-dt)
}

// Visible is the number of entities currently in the scene.
func (r *Renderer) Visible() int { return len(r.visible) }

// Shots is the number of projectiles currently in the scene.
func (r *Renderer) Shots() int { return len(r.shots) }

func (r *Renderer) fit(bounds cp.BB, w, h float64) {
	aw, ah := bounds.R-bounds.L, bounds.T-bounds.B
	if aw <= 0 || ah <= 0 {
		return
	}
	r.scale = math.Min((w-2*arenaPadding)/aw, (h-2*arenaPadding)/ah)
	r.offsetX = (w-aw*r.scale)/2 - bounds.L*r.scale
	r.offsetY = (h-ah*r.scale)/2 + bounds.T*r.scale
	if r.shake > 0 {
		r.offsetX += math.Sin(r.shakeTime*53) * r.shake
		r.offsetY += math.Cos(r.shakeTime*41) * r.shake
	}
}

// toScreen maps arena units to pixels; the arena's +Y points up the screen.
func (r *Renderer) toScreen(p cp.Vector) (float32, float32) {
	return float32(r.offsetX + p.X*r.scale), float32(r.offsetY - p.Y*r.scale)
}

func (r *Renderer) toWorld(x, y int) cp.Vector {
	return cp.Vector{X: (float64(x) - r.offsetX) / r.scale, Y: (r.offsetY - float64(y)) / r.scale}
}

func (r *Renderer) Draw(screen *ebiten.Image, sim *arena.Simulation) {
	b := screen.Bounds()
	bounds := sim.Bounds()
	r.fit(bounds, float64(b.Dx()), float64(b.Dy()))

	screen.Fill(color.RGBA{R: 0x0b, G: 0x0d, B: 0x17, A: 0xff})
	x0, y0 := r.toScreen(cp.Vector{X: bounds.L, Y: bounds.T})
	x1, y1 := r.toScreen(cp.Vector{X: bounds.R, Y: bounds.B})
	vector.StrokeRect(screen, x0, y0, x1-x0, y1-y0, 2, colornames.Slategray, false)

	w := sim.World()
	ecs.ForEach(w, component.PickupComponent.Kind(), func(e ecs.Entity, p *component.Pickup) {
		r.drawPickup(screen, w, e, p)
	})

	for e := range r.visible {
		r.drawEntity(screen, w, e)
	}

	for _, beam := range sim.Beams() {
		r.drawBeam(screen, beam)
	}

	for _, p := range sim.Projectiles() {
		if p.Dead {
			continue
		}
		x, y := r.toScreen(p.Position)
		c := colornames.Lightskyblue
		if p.Owner == projectile.OwnerEnemy {
			c = colornames.Orangered
		}
		vector.DrawFilledCircle(screen, x, y, float32(math.Max(2, p.Radius*r.scale)), c, true)
	}
}

func (r *Renderer) drawEntity(screen *ebiten.Image, w *ecs.World, e ecs.Entity) {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return
	}
	stats, ok := ecs.Get(w, e, component.StatsComponent.Kind())
	if !ok {
		return
	}
	look, ok := ecs.Get(w, e, component.AppearanceComponent.Kind())
	if !ok {
		return
	}

	radius := stats.Radius * r.scale
	alpha := 1.0
	rotation := t.Rotation

	if h, ok := ecs.Get(w, e, component.HealthComponent.Kind()); ok && h.IFrames > 0 {
		if int(h.IFrames*20)%2 == 0 {
			alpha = 0.35
		}
	}

	if tr, ok := r.transitions[e]; ok {
		effect, _ := tr.hints["effect"].(string)
		switch {
		case tr.dying:
			alpha *= 1 - tr.progress
			switch effect {
			case "shatter", "burst":
				r.drawShards(screen, t.Position, stats.Radius, tr.progress, hintInt(tr.hints, "shards", hintInt(tr.hints, "particles", 8)), look.Color)
			case "collapse":
				r.drawRings(screen, t.Position, stats.Radius*(1-tr.progress), hintInt(tr.hints, "rings", 2), look.Color)
				radius *= 1 - 0.5*tr.progress
			}
		default:
			switch effect {
			case "grow":
				radius *= tr.progress
			case "glitch":
				if int(tr.progress*30)%3 == 0 {
					alpha = 0
				}
			case "materialize":
				rotation += (1 - tr.progress) * math.Pi * 2
				alpha *= tr.progress
			default:
				alpha *= tr.progress
			}
		}
	}
	if alpha <= 0 || radius <= 0 {
		return
	}

	c := fade(look.Color, alpha)
	x, y := r.toScreen(t.Position)
	if look.Sides < 3 {
		vector.StrokeCircle(screen, x, y, float32(radius), 2, c, true)
		return
	}
	drawPolygon(screen, x, y, radius, look.Sides, rotation, c)
}

func (r *Renderer) drawPickup(screen *ebiten.Image, w *ecs.World, e ecs.Entity, p *component.Pickup) {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return
	}
	look, ok := ecs.Get(w, e, component.AppearanceComponent.Kind())
	if !ok {
		return
	}
	// blink out over the last second
	if p.Remaining < 1 && int(p.Remaining*10)%2 == 0 {
		return
	}
	x, y := r.toScreen(t.Position)
	radius := p.Radius * r.scale
	if look.Sides < 3 {
		vector.DrawFilledCircle(screen, x, y, float32(radius), look.Color, true)
		return
	}
	drawPolygon(screen, x, y, radius, look.Sides, r.shakeTime*2, look.Color)
}

func (r *Renderer) drawBeam(screen *ebiten.Image, beam arena.BeamView) {
	if beam.Length <= 0 || beam.Opacity <= 0 {
		return
	}
	end := beam.Origin.Add(beam.Direction.Mult(beam.Length))
	x0, y0 := r.toScreen(beam.Origin)
	x1, y1 := r.toScreen(end)
	width := math.Max(1, 2*beam.HalfWidth*r.scale)

	glow := fade(colornames.Magenta, beam.Opacity*0.35)
	vector.StrokeLine(screen, x0, y0, x1, y1, float32(width*(1.5+beam.Intensity)), glow, true)
	vector.StrokeLine(screen, x0, y0, x1, y1, float32(width), fade(colornames.White, beam.Opacity), true)
}

func (r *Renderer) drawShards(screen *ebiten.Image, pos cp.Vector, radius, p float64, n int, c color.Color) {
	if n <= 0 {
		return
	}
	dist := radius * (1 + 3*p)
	for i := range n {
		a := 2 * math.Pi * float64(i) / float64(n)
		x, y := r.toScreen(pos.Add(common.Heading(a, dist)))
		vector.DrawFilledCircle(screen, x, y, float32(math.Max(1, radius*r.scale*0.25*(1-p))), fade(c, 1-p), true)
	}
}

func (r *Renderer) drawRings(screen *ebiten.Image, pos cp.Vector, radius float64, n int, c color.Color) {
	x, y := r.toScreen(pos)
	for i := 1; i <= n; i++ {
		rr := radius * r.scale * float64(i) / float64(n)
		if rr <= 0 {
			continue
		}
		vector.StrokeCircle(screen, x, y, float32(rr), 1, c, true)
	}
}

func drawPolygon(screen *ebiten.Image, x, y float32, radius float64, sides int, rotation float64, c color.Color) {
	vertex := func(i int) (float32, float32) {
		a := rotation + 2*math.Pi*float64(i)/float64(sides)
		return x + float32(math.Cos(a)*radius), y - float32(math.Sin(a)*radius)
	}
	px, py := vertex(0)
	for i := 1; i <= sides; i++ {
		nx, ny := vertex(i)
		vector.StrokeLine(screen, px, py, nx, ny, 2, c, true)
		px, py = nx, ny
	}
}

func fade(c color.Color, alpha float64) color.Color {
	if c == nil {
		c = colornames.White
	}
	r, g, b, a := c.RGBA()
	k := common.Clamp01(alpha)
	return color.RGBA64{
		R: uint16(float64(r) * k),
		G: uint16(float64(g) * k),
		B: uint16(float64(b) * k),
		A: uint16(float64(a) * k),
	}
}

func hintInt(hints map[string]any, key string, def int) int {
	switch v := hints[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	default:
		return def
	}
}
