// Package sim closes the control loop on the bench: a deterministic
// point-mass fixed-wing model that turns actuator commands into the next
// tick's sensed state. It is intentionally crude; its job is exercising the
// control laws at realistic magnitudes, not aerodynamics.
package sim

import (
	"math"

	"autopilot-ng/internal/control"
)

const (
	gravity = 9.80665

	// First-order control authority: commanded surface deflection maps
	// directly to a body rate.
	rollAuthority  = 2.5 // rad/s per rad of aileron
	pitchAuthority = 3.0 // rad/s per rad of elevator

	// Thrust and drag are scaled so the reference airspeed trims near the
	// default throttle trim.
	thrustAccel = 6.0  // m/s^2 at full throttle
	dragAccel   = 3.48 // m/s^2 at the reference airspeed
	refAirspeed = 15.0 // m/s

	// Below this speed there is no turn authority.
	minTurnAirspeed = 1.0
)

// Commands is the mission setpoint fed to the controller every tick.
type Commands struct {
	Airspeed float64
	Altitude float64
	Course   float64
}

// Aircraft is the simulated state. The zero value is a stationary aircraft
// on the runway.
type Aircraft struct {
	Altitude float64
	Airspeed float64
	Roll     float64
	Pitch    float64
	Course   float64

	RollRate  float64
	PitchRate float64
	YawRate   float64
}

// Step advances the model by dt seconds under the given actuator commands.
func (a *Aircraft) Step(out control.Output, dt float64) {
	if dt <= 0 {
		return
	}

	a.RollRate = rollAuthority * out.Aileron
	// The elevator channel is sign-flipped by the pitch loop, flip it back.
	a.PitchRate = -pitchAuthority * out.Elevator
	a.Roll += a.RollRate * dt
	a.Pitch += a.PitchRate * dt

	v := a.Airspeed
	accel := thrustAccel*out.Throttle -
		dragAccel*(v*v)/(refAirspeed*refAirspeed) -
		gravity*math.Sin(a.Pitch)
	a.Airspeed += accel * dt
	if a.Airspeed < 0 {
		a.Airspeed = 0
	}

	a.Altitude += a.Airspeed * math.Sin(a.Pitch) * dt
	if a.Altitude < 0 {
		a.Altitude = 0
	}

	// Standard coordinated banked-turn relation.
	if a.Airspeed > minTurnAirspeed {
		a.YawRate = gravity / a.Airspeed * math.Tan(a.Roll)
	} else {
		a.YawRate = 0
	}
	a.Course += a.YawRate * dt
}

// Snapshot renders the current state as one tick's controller input.
func (a *Aircraft) Snapshot(cmd Commands, ts float64) control.Input {
	return control.Input{
		Roll:  a.Roll,
		Pitch: a.Pitch,

		RollRate:  a.RollRate,
		PitchRate: a.PitchRate,
		YawRate:   a.YawRate,

		Airspeed:    a.Airspeed,
		AirspeedCmd: cmd.Airspeed,

		Altitude:    a.Altitude,
		AltitudeCmd: cmd.Altitude,

		Course:    a.Course,
		CourseCmd: cmd.Course,

		Ts: ts,
	}
}
