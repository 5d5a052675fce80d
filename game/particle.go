package game

import (
	"math"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/exp/rand"
)

// Burst selects the particle burst style
type Burst int

const (
	BurstFood   Burst = iota // consumption: 8 particles, short lived
	BurstExpire              // expiry: 12 particles, faster and longer
)

type burstSpec struct {
	count     int
	baseSpeed float64
	baseLife  float64 // ms
}

var burstSpecs = [...]burstSpec{
	BurstFood:   {count: 8, baseSpeed: 2, baseLife: 500},
	BurstExpire: {count: 12, baseSpeed: 3, baseLife: 800},
}

const (
	speedJitter  = 1.0
	lifeJitterMs = 300.0
	sizeDecay    = 0.99
	defaultSize  = 3.0
)

// Particle is a presentation-only token. Positions are in board units.
type Particle struct {
	X       float64 `json:"x" msgpack:"x"`
	Y       float64 `json:"y" msgpack:"y"`
	VX      float64 `json:"-" msgpack:"-"`
	VY      float64 `json:"-" msgpack:"-"`
	Color   string  `json:"color" msgpack:"color"`
	Size    float64 `json:"size" msgpack:"size"`
	Alpha   float64 `json:"alpha" msgpack:"alpha"`
	Life    float64 `json:"-" msgpack:"-"` // ms
	MaxLife float64 `json:"-" msgpack:"-"` // ms
}

// Pool holds live particles. It is never read by gameplay logic.
type Pool struct {
	particles []Particle
	rng       *rand.Rand
}

// NewPool creates an empty pool drawing jitter from rng
func NewPool(rng *rand.Rand) *Pool {
	return &Pool{particles: make([]Particle, 0, 64), rng: rng}
}

// Emit adds one radial burst centred on (x, y)
func (p *Pool) Emit(x, y float64, color string, b Burst) {
	spec := burstSpecs[BurstFood]
	if b == BurstExpire {
		spec = burstSpecs[BurstExpire]
	}
	for i := 0; i < spec.count; i++ {
		angle := 2 * math.Pi * float64(i) / float64(spec.count)
		speed := spec.baseSpeed + p.rng.Float64()*speedJitter
		life := spec.baseLife + p.rng.Float64()*lifeJitterMs
		p.EmitParticle(x, y, math.Cos(angle)*speed, math.Sin(angle)*speed, color, defaultSize, life)
	}
}

// EmitParticle adds a single particle with an explicit velocity
func (p *Pool) EmitParticle(x, y, vx, vy float64, color string, size, lifeMs float64) {
	p.particles = append(p.particles, Particle{
		X: x, Y: y, VX: vx, VY: vy,
		Color:   color,
		Size:    size,
		Alpha:   1,
		Life:    lifeMs,
		MaxLife: lifeMs,
	})
}

// Fireworks scatters count firework bursts at random points inside a
// w×h unit area, each with a random hue.
func (p *Pool) Fireworks(w, h float64, count int) {
	const sparks = 20
	for i := 0; i < count; i++ {
		x := p.rng.Float64() * w
		y := p.rng.Float64() * h
		color := colorful.Hsv(p.rng.Float64()*360, 1, 1).Hex()
		angle := p.rng.Float64() * 2 * math.Pi
		speed := 5 + p.rng.Float64()*5
		life := burstSpecs[BurstExpire].baseLife + p.rng.Float64()*lifeJitterMs

		p.EmitParticle(x, y, 0, 0, color, 4, life)
		for j := 0; j < sparks; j++ {
			a := angle + 2*math.Pi/sparks*float64(j) + (p.rng.Float64()-0.5)*0.5
			vx := math.Cos(a) * speed * (0.8 + p.rng.Float64()*0.4)
			vy := math.Sin(a) * speed * (0.8 + p.rng.Float64()*0.4)
			p.EmitParticle(x, y, vx, vy, color, 2, life)
		}
	}
}

// Advance integrates every particle once and drops the dead ones.
func (p *Pool) Advance(dt time.Duration) {
	ms := float64(dt) / float64(time.Millisecond)
	live := p.particles[:0]
	for _, pt := range p.particles {
		pt.X += pt.VX
		pt.Y += pt.VY
		pt.Life -= ms
		pt.Alpha = pt.Life / pt.MaxLife
		pt.Size *= sizeDecay
		if pt.Life > 0 {
			live = append(live, pt)
		}
	}
	p.particles = live
}

// Len is the number of live particles
func (p *Pool) Len() int { return len(p.particles) }

// Particles returns a copy of the live particles
func (p *Pool) Particles() []Particle {
	out := make([]Particle, len(p.particles))
	copy(out, p.particles)
	return out
}

// Clear drops every particle
func (p *Pool) Clear() {
	p.particles = p.particles[:0]
}
