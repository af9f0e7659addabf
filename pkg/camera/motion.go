package camera

import (
	"math"
	"time"
)

// Update integrates one tick of motion. The velocity eases towards the held
// direction at max speed, moves the camera along its own axes for dt, then
// decays by AirResistance. The decay is per call, not per unit of time, so
// the glide distance after releasing a key depends on the tick rate.
func (c *Camera) Update(dt time.Duration) {
	micros := float32(dt) / float32(time.Microsecond)

	target := c.desiredVelocity.Mul(c.maxSpeed)
	c.velocity = c.velocity.Add(target.Sub(c.velocity).Mul(AccelFactor))

	toWorld := c.ViewMatrix().Mat3().Transpose()
	c.position = c.position.Add(toWorld.Mul3x1(c.velocity).Mul(micros))

	c.velocity = c.velocity.Mul(AirResistance)
}

// dragGround pans the camera over the ground. The pan speed grows with
// altitude and the camera never ends up lower than it was nor closer than
// GroundClearance to the ground slightly ahead of where it lands.
func (c *Camera) dragGround(xrel, yrel float32) {
	momentum := c.position.Y() / DragMomentumDivisor

	forward := c.Forward().Mul(yrel * momentum)
	right := c.Right().Mul(-xrel * momentum)
	future := c.position.Add(forward).Add(right)

	minAltitude := c.groundAltitude(future.X()+GroundLookAhead, future.Z()+GroundLookAhead)
	future[1] = max(minAltitude, c.position.Y())

	c.position = future
}

// groundAltitude is the lowest altitude allowed above (x, z). Without a
// usable ground sample it is the current altitude, which leaves the camera
// height unchanged.
func (c *Camera) groundAltitude(x, z float32) float32 {
	if c.ground == nil {
		return c.position.Y()
	}

	height := c.ground.HeightAt(x, z)
	if math.IsNaN(float64(height)) {
		return c.position.Y()
	}

	return height + GroundClearance
}
