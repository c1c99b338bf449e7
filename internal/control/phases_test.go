package control

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTakeOffHoldsWingsLevelAndCapsThrottle(t *testing.T) {
	c := NewController()
	p := testParams()

	in := Input{AirspeedCmd: 15, Airspeed: 0, Ts: 0.01}
	out := c.TakeOff(p, in)

	assert.Zero(t, out.RollCmd)
	assert.Zero(t, out.Rudder)
	assert.Zero(t, out.Aileron)

	// Pitch command is the fixed shallow take-off angle regardless of
	// altitude error.
	assert.Equal(t, takeoffPitchCmd, out.PitchCmd)

	// A large airspeed deficit hits the phase-specific cap, not the general
	// throttle maximum.
	assert.Equal(t, p.MaxTakeoffThrottle, out.Throttle)
}

func TestShapeAltitudeCmd(t *testing.T) {
	// Error beyond the window clamps toward the command.
	assert.Equal(t, 55.0, shapeAltitudeCmd(100, 50, 5))
	assert.Equal(t, 95.0, shapeAltitudeCmd(40, 100, 5))

	// Error within the window passes through unchanged.
	assert.Equal(t, 100.0, shapeAltitudeCmd(100, 97, 5))
	assert.Equal(t, 100.0, shapeAltitudeCmd(100, 96, 10))
}

func TestClimbShapesWithHalfZoneAndHoldsLevel(t *testing.T) {
	c := NewController()
	p := testParams()

	in := Input{
		AirspeedCmd: 15, Airspeed: 15,
		AltitudeCmd: 100, Altitude: 50,
		Ts: 0.01,
	}
	out := c.Climb(p, in)

	assert.Zero(t, out.RollCmd)
	assert.Zero(t, out.Rudder)

	// The altitude loop sees the shaped command (current altitude plus half
	// the hold zone), not the raw one.
	want := NewController().altitudeHold(50+p.AltHoldZone/2.0, 50, p, 0.01)
	assert.InDelta(t, want, out.PitchCmd, 1e-12)
}

func TestAltitudeHoldShapesWithFullZone(t *testing.T) {
	c := NewController()
	p := testParams()

	in := Input{
		AirspeedCmd: 15, Airspeed: 15,
		AltitudeCmd: 100, Altitude: 50,
		Ts: 0.01,
	}
	out := c.AltitudeHold(p, in)

	want := NewController().altitudeHold(50+p.AltHoldZone, 50, p, 0.01)
	assert.InDelta(t, want, out.PitchCmd, 1e-12)
}

func TestAltitudeHoldRudderGate(t *testing.T) {
	p := testParams()
	in := Input{Sideslip: 0.3, Ts: 0.01}

	out := NewController().AltitudeHold(p, in)
	assert.Zero(t, out.Rudder)

	p.CoordinatedTurnEnabled = true
	out = NewController().AltitudeHold(p, in)
	assert.Less(t, out.Rudder, 0.0)
	assert.GreaterOrEqual(t, out.Rudder, -p.MaxRudder)
}

func seedLoops(c *Controller) {
	c.course = loopState{err: 1, integrator: 2, differentiator: 3}
	c.roll = loopState{err: 4, integrator: 5, differentiator: 6}
	c.pitch = loopState{err: 7, integrator: 8, differentiator: 9}
	c.airspeedThrottle = loopState{err: 10, integrator: 11, differentiator: 12}
	c.altitude = loopState{err: 13, integrator: 14, differentiator: 15}
	c.coordinatedTurn = loopState{err: 16, integrator: 17, differentiator: 18}
}

func TestTakeOffExitLeavesStateUntouched(t *testing.T) {
	c := NewController()
	seedLoops(c)

	c.TakeOffExit()

	assert.Equal(t, loopState{err: 1, integrator: 2, differentiator: 3}, c.course)
	assert.Equal(t, loopState{err: 10, integrator: 11, differentiator: 12}, c.airspeedThrottle)
	assert.Equal(t, loopState{err: 13, integrator: 14, differentiator: 15}, c.altitude)
}

func TestClimbExitResetsAirspeedAndAltitudeOnly(t *testing.T) {
	c := NewController()
	seedLoops(c)

	c.ClimbExit()

	assert.Equal(t, loopState{}, c.airspeedThrottle)
	assert.Equal(t, loopState{}, c.altitude)

	// The asymmetry is deliberate upstream behavior: course and pitch state
	// survive the climb exit.
	assert.Equal(t, loopState{err: 1, integrator: 2, differentiator: 3}, c.course)
	assert.Equal(t, loopState{err: 4, integrator: 5, differentiator: 6}, c.roll)
	assert.Equal(t, loopState{err: 7, integrator: 8, differentiator: 9}, c.pitch)
	assert.Equal(t, loopState{err: 16, integrator: 17, differentiator: 18}, c.coordinatedTurn)
}

func TestAltitudeHoldExitResetsCourseIntegratorOnly(t *testing.T) {
	c := NewController()
	seedLoops(c)

	c.AltitudeHoldExit()

	assert.Equal(t, loopState{err: 1, integrator: 0, differentiator: 3}, c.course)
	assert.Equal(t, loopState{err: 4, integrator: 5, differentiator: 6}, c.roll)
	assert.Equal(t, loopState{err: 7, integrator: 8, differentiator: 9}, c.pitch)
	assert.Equal(t, loopState{err: 10, integrator: 11, differentiator: 12}, c.airspeedThrottle)
	assert.Equal(t, loopState{err: 13, integrator: 14, differentiator: 15}, c.altitude)
}
