package physics

import (
	"math"

	"github.com/san-kum/freefall/internal/dynamo"
)

// Projectile is a point mass launched in the vertical plane. State is
// [x, y, vx, vy]. Drag acts against the velocity vector with magnitude
// k*|v|^2, so each component sees -k*|v|*v_i.
type Projectile struct {
	Drag    float64
	Mass    float64
	Gravity float64
}

func NewProjectile() *Projectile {
	return &Projectile{
		Drag:    DefaultDrag,
		Mass:    DefaultMass,
		Gravity: DefaultGravity,
	}
}

func (p *Projectile) StateDim() int { return 4 }
func (p *Projectile) ForceDim() int { return 2 }

func (p *Projectile) Derive(x dynamo.State, u dynamo.Vector, t float64) dynamo.State {
	vx, vy := x[2], x[3]
	speed := math.Hypot(vx, vy)

	ax := -p.Drag * speed * vx / p.Mass
	ay := p.Gravity - p.Drag*speed*vy/p.Mass

	if len(u) >= 2 {
		ax += u[0] / p.Mass
		ay += u[1] / p.Mass
	} else if len(u) == 1 {
		ax += u[0] / p.Mass
	}

	return dynamo.State{vx, vy, ax, ay}
}

// LaunchState builds an initial state for a launch at the given speed (m/s)
// and elevation angle (degrees above horizontal) from ground level.
func LaunchState(speed, angleDeg float64) dynamo.State {
	rad := angleDeg * math.Pi / 180
	return dynamo.State{0, 0, speed * math.Cos(rad), speed * math.Sin(rad)}
}

func (p *Projectile) TerminalSpeed() float64 {
	if p.Drag <= 0 {
		return math.Inf(1)
	}
	return math.Sqrt(p.Mass * math.Abs(p.Gravity) / p.Drag)
}

func (p *Projectile) Energy(x dynamo.State) float64 {
	y, vx, vy := x[1], x[2], x[3]
	ke := 0.5 * p.Mass * (vx*vx + vy*vy)
	pe := -p.Mass * p.Gravity * y
	return ke + pe
}

func (p *Projectile) Validate() error {
	if p.Mass <= 0 {
		return dynamo.ErrNonPositiveMass
	}
	if p.Drag < 0 {
		return dynamo.ErrNegativeDrag
	}
	return nil
}

func (p *Projectile) GetParams() map[string]float64 {
	return map[string]float64{
		"drag":    p.Drag,
		"mass":    p.Mass,
		"gravity": p.Gravity,
	}
}

func (p *Projectile) SetParam(name string, value float64) error {
	switch name {
	case "drag":
		if value < 0 {
			return dynamo.ErrNegativeDrag
		}
		p.Drag = value
	case "mass":
		if value <= 0 {
			return dynamo.ErrNonPositiveMass
		}
		p.Mass = value
	case "gravity":
		p.Gravity = value
	default:
		return dynamo.ErrParameterBounds
	}
	return nil
}
