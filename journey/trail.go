package journey

import (
	"math/rand/v2"

	"github.com/emirpasic/gods/queues/circularbuffer"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/npillmayer/globetrip"
)

// Trail defaults.
const (
	TrailCapacity = 20   // maximum number of live particles
	TrailDecay    = 0.05 // life lost per tick
	TrailChance   = 0.5  // spawn probability per travelling tick
)

// Particle is one short-lived puff of the vehicle's trail.
type Particle struct {
	Position mgl64.Vec3
	Life     float64 // remaining life, 1 … 0
	Opacity  float64 // derived from Life
	Scale    float64 // shrinks multiplicatively
}

// ParticleSink owns the visual resources of particles. Every particle handed
// to Spawned is eventually handed to Released, whether it faded out or was
// evicted.
type ParticleSink interface {
	Spawned(*Particle)
	Released(*Particle)
}

// Source delivers uniform random numbers in [0,1).
type Source interface {
	Float64() float64
}

type globalSource struct{}

func (globalSource) Float64() float64 { return rand.Float64() }

// Trail is a bounded FIFO of decaying particles.
type Trail struct {
	particles *circularbuffer.Queue
	capacity  int
	decay     float64
	chance    float64
	rnd       Source
	sink      ParticleSink
}

// TrailOption configures a Trail.
type TrailOption func(*Trail)

// WithCapacity sets the maximum number of particles (at least 1).
func WithCapacity(n int) TrailOption {
	return func(t *Trail) {
		if n < 1 {
			n = 1
		}
		t.capacity = n
	}
}

// WithDecay sets the life lost per tick.
func WithDecay(d float64) TrailOption {
	return func(t *Trail) { t.decay = d }
}

// WithChance sets the spawn probability per emission.
func WithChance(p float64) TrailOption {
	return func(t *Trail) { t.chance = globetrip.Clamp01(p) }
}

// WithSource sets the random source deciding about spawns.
func WithSource(s Source) TrailOption {
	return func(t *Trail) { t.rnd = s }
}

// WithSink sets the owner of the particles' visual resources.
func WithSink(s ParticleSink) TrailOption {
	return func(t *Trail) { t.sink = s }
}

// NewTrail creates an empty trail.
func NewTrail(opts ...TrailOption) *Trail {
	t := &Trail{
		capacity: TrailCapacity,
		decay:    TrailDecay,
		chance:   TrailChance,
		rnd:      globalSource{},
	}
	for _, opt := range opts {
		opt(t)
	}
	t.particles = circularbuffer.New(t.capacity)
	return t
}

// Len returns the number of live particles.
func (t *Trail) Len() int {
	return t.particles.Size()
}

// Cap returns the maximum number of live particles.
func (t *Trail) Cap() int {
	return t.capacity
}

// Particles returns copies of the live particles, oldest first.
func (t *Trail) Particles() []Particle {
	values := t.particles.Values()
	ps := make([]Particle, len(values))
	for i, v := range values {
		ps[i] = *v.(*Particle)
	}
	return ps
}

// Emit spawns a particle at pos, with the trail's spawn probability.
// If the trail is full, the oldest particle is evicted first. Returns the
// new particle or nil.
func (t *Trail) Emit(pos mgl64.Vec3) *Particle {
	if t.rnd.Float64() >= t.chance {
		return nil
	}
	if t.particles.Full() {
		if old, ok := t.particles.Dequeue(); ok {
			t.release(old.(*Particle))
		}
	}
	p := &Particle{Position: pos, Life: 1, Opacity: 0.9, Scale: 1}
	t.particles.Enqueue(p)
	if t.sink != nil {
		t.sink.Spawned(p)
	}
	return p
}

// Decay ages every particle by one tick: life shrinks linearly, opacity
// follows life, scale shrinks by 5%. Particles without life left are
// released.
func (t *Trail) Decay() {
	it := t.particles.Iterator()
	for it.Next() {
		p := it.Value().(*Particle)
		p.Life -= t.decay
		p.Opacity = p.Life * 0.8
		p.Scale *= 0.95
	}
	// particles age in lockstep, so the expired ones are the oldest
	for !t.particles.Empty() {
		head, _ := t.particles.Peek()
		p := head.(*Particle)
		if p.Life > globetrip.Epsilon {
			break
		}
		t.particles.Dequeue()
		t.release(p)
	}
}

// Clear releases all particles.
func (t *Trail) Clear() {
	for !t.particles.Empty() {
		v, _ := t.particles.Dequeue()
		t.release(v.(*Particle))
	}
}

func (t *Trail) release(p *Particle) {
	if t.sink != nil {
		t.sink.Released(p)
	}
}
