// Package metrics provides observers that reduce a run to scalar summaries.
package metrics

import (
	"math"

	"github.com/san-kum/freefall/internal/dynamo"
)

// MaxSpeed tracks the largest speed seen over the run. Speed is the norm of
// the velocity half of the state vector.
type MaxSpeed struct {
	name string
	max  float64
}

func NewMaxSpeed() *MaxSpeed {
	return &MaxSpeed{name: "max_speed"}
}

func (m *MaxSpeed) Name() string { return m.name }

func (m *MaxSpeed) Observe(x dynamo.State, u dynamo.Vector, t float64) {
	half := len(x) / 2
	sum := 0.0
	for i := half; i < len(x); i++ {
		sum += x[i] * x[i]
	}
	speed := math.Sqrt(sum)
	if speed > m.max {
		m.max = speed
	}
}

func (m *MaxSpeed) Value() float64 { return m.max }
func (m *MaxSpeed) Reset()         { m.max = 0 }

// PeakAltitude tracks the highest value of one state component.
type PeakAltitude struct {
	name  string
	index int
	peak  float64
	seen  bool
}

func NewPeakAltitude(index int) *PeakAltitude {
	return &PeakAltitude{name: "peak_altitude", index: index}
}

func (p *PeakAltitude) Name() string { return p.name }

func (p *PeakAltitude) Observe(x dynamo.State, u dynamo.Vector, t float64) {
	if p.index >= len(x) {
		return
	}
	if !p.seen || x[p.index] > p.peak {
		p.peak = x[p.index]
		p.seen = true
	}
}

func (p *PeakAltitude) Value() float64 { return p.peak }

func (p *PeakAltitude) Reset() {
	p.peak = 0
	p.seen = false
}

// DragLoss accumulates the work dissipated by quadratic drag, integrating
// k*|v|^3 over the observed samples.
type DragLoss struct {
	name    string
	drag    float64
	sum     float64
	prevT   float64
	samples int
}

func NewDragLoss(drag float64) *DragLoss {
	return &DragLoss{name: "drag_loss", drag: drag}
}

func (d *DragLoss) Name() string { return d.name }

func (d *DragLoss) Observe(x dynamo.State, u dynamo.Vector, t float64) {
	half := len(x) / 2
	sum := 0.0
	for i := half; i < len(x); i++ {
		sum += x[i] * x[i]
	}
	speed := math.Sqrt(sum)

	if d.samples > 0 {
		dt := t - d.prevT
		d.sum += d.drag * speed * speed * speed * dt
	}
	d.prevT = t
	d.samples++
}

func (d *DragLoss) Value() float64 { return d.sum }

func (d *DragLoss) Reset() {
	d.sum = 0
	d.prevT = 0
	d.samples = 0
}
