package control

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectPhaseZones(t *testing.T) {
	p := testParams()

	in := Input{Altitude: 5, AltitudeCmd: 100}
	assert.Equal(t, PhaseTakeOff, selectPhase(p, in))

	in.Altitude = 20
	assert.Equal(t, PhaseClimb, selectPhase(p, in))

	in.Altitude = 95
	assert.Equal(t, PhaseAltitudeHold, selectPhase(p, in))

	// The hold zone boundary belongs to altitude hold.
	in.Altitude = 90
	assert.Equal(t, PhaseAltitudeHold, selectPhase(p, in))
}

func TestSequencerStartsInTakeOff(t *testing.T) {
	s := NewSequencer(NewController())
	assert.Equal(t, PhaseTakeOff, s.Phase())
}

func TestSequencerRunsExitHookOnTransition(t *testing.T) {
	c := NewController()
	p := testParams()
	s := NewSequencer(c)

	in := Input{AirspeedCmd: 15, Airspeed: 15, AltitudeCmd: 100, Altitude: 5, Ts: 0.01}
	s.Tick(p, in)
	assert.Equal(t, PhaseTakeOff, s.Phase())

	in.Altitude = 50
	s.Tick(p, in)
	assert.Equal(t, PhaseClimb, s.Phase())

	// Leaving climb must reset the airspeed-throttle and altitude records
	// before the altitude-hold handler first runs.
	c.airspeedThrottle.integrator = 42
	c.altitude.differentiator = 7
	in.Altitude = 95
	s.Tick(p, in)
	assert.Equal(t, PhaseAltitudeHold, s.Phase())
	assert.Zero(t, c.airspeedThrottle.integrator)

	// Leaving altitude hold resets only the course integrator.
	c.course.integrator = 9
	in.Altitude = 50
	s.Tick(p, in)
	assert.Equal(t, PhaseClimb, s.Phase())
	assert.Zero(t, c.course.integrator)
}

func TestSequencerNoExitHookWithoutTransition(t *testing.T) {
	c := NewController()
	p := testParams()
	s := NewSequencer(c)

	in := Input{AirspeedCmd: 15, Airspeed: 15, AltitudeCmd: 100, Altitude: 95, Ts: 0.01}
	s.Tick(p, in)
	assert.Equal(t, PhaseAltitudeHold, s.Phase())

	// Course Ki is zero in the test gain set, so only an exit hook could
	// clear a seeded course integrator.
	c.course.integrator = 5
	c.course.err = 0
	s.Tick(p, in)
	assert.Equal(t, PhaseAltitudeHold, s.Phase())
	assert.Equal(t, 5.0, c.course.integrator)
}
