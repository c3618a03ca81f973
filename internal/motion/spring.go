package motion

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

const (
	// DefaultStiffness matches the header spring of the mobile app
	DefaultStiffness = 50.0

	// FrameRate is the fixed simulation rate; the UI ticks at the same rate
	FrameRate = 60

	// HeaderTravel is how far the header overlay slides up when fully active
	HeaderTravel = 250.0

	settleEpsilon = 1e-3
)

// Driver is a critically damped spring pulling progress toward 0 or 1.
// It is stepped explicitly, one call per frame, and exposes only progress.
type Driver struct {
	spring harmonica.Spring

	pos    float64
	vel    float64
	target float64
}

// NewDriver builds a driver with unit mass and the given stiffness.
// A non-positive stiffness falls back to DefaultStiffness.
func NewDriver(stiffness float64) *Driver {
	if stiffness <= 0 {
		stiffness = DefaultStiffness
	}
	// omega = sqrt(k/m), damping ratio 1 is critical: no overshoot from rest
	return &Driver{
		spring: harmonica.NewSpring(harmonica.FPS(FrameRate), math.Sqrt(stiffness), 1.0),
	}
}

// SetActive retargets the spring; the current position and velocity carry over
func (d *Driver) SetActive(active bool) {
	if active {
		d.target = 1
	} else {
		d.target = 0
	}
}

// Step advances the simulation by one frame and returns the new progress
func (d *Driver) Step() float64 {
	if d.Settled() {
		return d.pos
	}

	d.pos, d.vel = d.spring.Update(d.pos, d.vel, d.target)
	if math.Abs(d.pos-d.target) < settleEpsilon && math.Abs(d.vel) < settleEpsilon {
		d.pos, d.vel = d.target, 0
	}
	d.pos = clamp(d.pos, 0, 1)
	return d.pos
}

// Settled reports whether progress rests on its target
func (d *Driver) Settled() bool {
	return d.pos == d.target && d.vel == 0
}

// Progress returns the current value in [0,1]
func (d *Driver) Progress() float64 { return d.pos }

// Target returns 1 while active, 0 otherwise
func (d *Driver) Target() float64 { return d.target }

// Opacity maps progress [0,1] onto [0,1]
func (d *Driver) Opacity() float64 {
	return Interpolate(d.pos, Range{0, 1}, Range{0, 1})
}

// TranslateY maps progress [0,1] onto [0,-HeaderTravel]
func (d *Driver) TranslateY() float64 {
	return Interpolate(d.pos, Range{0, 1}, Range{0, -HeaderTravel})
}

// Range is a closed interval used by Interpolate
type Range struct {
	From float64
	To   float64
}

// Interpolate maps x linearly from the input range onto the output range.
// x is clamped to the input range first.
func Interpolate(x float64, in, out Range) float64 {
	if in.To == in.From {
		return out.From
	}
	t := (x - in.From) / (in.To - in.From)
	t = clamp(t, 0, 1)
	return out.From + t*(out.To-out.From)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
