package physics_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/freefall/internal/dynamo"
	"github.com/san-kum/freefall/internal/physics"
)

var _ = Describe("FallingMass", func() {
	var body *physics.FallingMass

	BeforeEach(func() {
		body = physics.NewFallingMass()
	})

	It("has a 2-dimensional state and a vertical force axis", func() {
		Expect(body.StateDim()).To(Equal(2))
		Expect(body.ForceDim()).To(Equal(1))
	})

	It("accelerates at gravity when drag-free", func() {
		Expect(body.Acceleration(0)).To(BeNumerically("~", physics.DefaultGravity, 1e-12))
		Expect(body.Acceleration(-30)).To(BeNumerically("~", physics.DefaultGravity, 1e-12))
	})

	It("opposes the direction of motion with drag", func() {
		body.Drag = 0.1

		// Falling: drag pushes up, magnitude of acceleration shrinks.
		Expect(body.Acceleration(-10)).To(BeNumerically(">", physics.DefaultGravity))

		// Rising: drag pulls down on top of gravity.
		Expect(body.Acceleration(10)).To(BeNumerically("<", physics.DefaultGravity))
	})

	It("balances gravity exactly at terminal speed", func() {
		body.Drag = 0.035
		vt := body.TerminalSpeed()
		Expect(vt).To(BeNumerically("~", math.Sqrt(9.81/0.035), 1e-9))
		Expect(body.Acceleration(-vt)).To(BeNumerically("~", 0, 1e-9))
	})

	It("reports infinite terminal speed without drag", func() {
		Expect(math.IsInf(body.TerminalSpeed(), 1)).To(BeTrue())
	})

	It("derives velocity and acceleration", func() {
		dx := body.Derive(dynamo.State{20, -5}, nil, 0)
		Expect(dx).To(HaveLen(2))
		Expect(dx[0]).To(Equal(-5.0))
		Expect(dx[1]).To(BeNumerically("~", physics.DefaultGravity, 1e-12))
	})

	It("computes potential plus kinetic energy", func() {
		e := body.Energy(dynamo.State{10, 0})
		Expect(e).To(BeNumerically("~", 9.81*10, 1e-9))

		e = body.Energy(dynamo.State{0, -4})
		Expect(e).To(BeNumerically("~", 0.5*16, 1e-9))
	})

	It("rejects non-positive mass and negative drag", func() {
		body.Mass = 0
		Expect(body.Validate()).To(MatchError(dynamo.ErrNonPositiveMass))

		body.Mass = 1
		body.Drag = -0.1
		Expect(body.Validate()).To(MatchError(dynamo.ErrNegativeDrag))
	})

	It("exposes its parameters for live adjustment", func() {
		params := body.GetParams()
		Expect(params).To(HaveKey("drag"))
		Expect(params).To(HaveKey("mass"))

		Expect(body.SetParam("drag", 0.2)).To(Succeed())
		Expect(body.Drag).To(Equal(0.2))
		Expect(body.SetParam("mass", -1)).To(HaveOccurred())
		Expect(body.SetParam("unknown", 1)).To(HaveOccurred())
	})
})

var _ = Describe("Projectile", func() {
	var body *physics.Projectile

	BeforeEach(func() {
		body = physics.NewProjectile()
	})

	It("has a 4-dimensional state and two force axes", func() {
		Expect(body.StateDim()).To(Equal(4))
		Expect(body.ForceDim()).To(Equal(2))
	})

	It("falls under gravity alone when drag-free", func() {
		dx := body.Derive(dynamo.State{0, 5, 3, 4}, nil, 0)
		Expect(dx[0]).To(Equal(3.0))
		Expect(dx[1]).To(Equal(4.0))
		Expect(dx[2]).To(BeNumerically("~", 0, 1e-12))
		Expect(dx[3]).To(BeNumerically("~", physics.DefaultGravity, 1e-12))
	})

	It("applies drag against the velocity vector", func() {
		body.Drag = 0.1
		dx := body.Derive(dynamo.State{0, 5, 3, 4}, nil, 0)

		// speed 5, so each axis sees -k*speed*v_i/m
		Expect(dx[2]).To(BeNumerically("~", -0.1*5*3, 1e-9))
		Expect(dx[3]).To(BeNumerically("~", physics.DefaultGravity-0.1*5*4, 1e-9))
	})

	It("builds launch states from speed and angle", func() {
		x0 := physics.LaunchState(10, 90)
		Expect(x0[2]).To(BeNumerically("~", 0, 1e-9))
		Expect(x0[3]).To(BeNumerically("~", 10, 1e-9))

		x0 = physics.LaunchState(10, 0)
		Expect(x0[2]).To(BeNumerically("~", 10, 1e-9))
		Expect(x0[3]).To(BeNumerically("~", 0, 1e-9))
	})

	It("applies wind forces", func() {
		dx := body.Derive(dynamo.State{0, 5, 0, 0}, dynamo.Vector{2, 0}, 0)
		Expect(dx[2]).To(BeNumerically("~", 2, 1e-12))
	})
})
