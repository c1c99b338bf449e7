package control

import "math"

// Phase is the flight-phase tag. Handlers and exit hooks are dispatched
// through phaseTable so transitions stay data-driven and testable.
type Phase int

const (
	PhaseTakeOff Phase = iota
	PhaseClimb
	PhaseAltitudeHold
)

func (p Phase) String() string {
	switch p {
	case PhaseTakeOff:
		return "takeoff"
	case PhaseClimb:
		return "climb"
	case PhaseAltitudeHold:
		return "altitude_hold"
	default:
		return "unknown"
	}
}

type phaseOps struct {
	handler func(*Controller, *Params, Input) Output
	exit    func(*Controller)
}

var phaseTable = map[Phase]phaseOps{
	PhaseTakeOff:      {(*Controller).TakeOff, (*Controller).TakeOffExit},
	PhaseClimb:        {(*Controller).Climb, (*Controller).ClimbExit},
	PhaseAltitudeHold: {(*Controller).AltitudeHold, (*Controller).AltitudeHoldExit},
}

// TakeOff holds wings level, caps throttle below the take-off maximum, and
// commands a fixed shallow pitch. Altitude error is intentionally ignored in
// this phase.
func (c *Controller) TakeOff(p *Params, in Input) Output {
	var out Output

	out.Rudder = 0
	out.RollCmd = 0
	out.Aileron = c.rollHold(out.RollCmd, in.Roll, in.RollRate, p, in.Ts)

	// Cap below the general throttle limit so the climb profile is not
	// overshot.
	out.Throttle = Sat(c.airspeedWithThrottleHold(in.AirspeedCmd, in.Airspeed, p, in.Ts), p.MaxTakeoffThrottle, 0)

	out.PitchCmd = takeoffPitchCmd
	out.Elevator = c.pitchHold(out.PitchCmd, in.Pitch, in.PitchRate, p, in.Ts)

	return out
}

func (c *Controller) TakeOffExit() {
	// Nothing carries over from the take-off phase.
}

// Climb commands the shaped altitude through the altitude loop while keeping
// the wings level. The altitude command is clamped to within half the hold
// zone of the current altitude so a large step cannot destabilize the loop.
func (c *Controller) Climb(p *Params, in Input) Output {
	var out Output

	adjustedHC := shapeAltitudeCmd(in.AltitudeCmd, in.Altitude, p.AltHoldZone/2.0)

	out.Throttle = c.airspeedWithThrottleHold(in.AirspeedCmd, in.Airspeed, p, in.Ts)
	out.PitchCmd = c.altitudeHold(adjustedHC, in.Altitude, p, in.Ts)
	out.Elevator = c.pitchHold(out.PitchCmd, in.Pitch, in.PitchRate, p, in.Ts)

	out.RollCmd = 0
	out.Aileron = c.rollHold(out.RollCmd, in.Roll, in.RollRate, p, in.Ts)
	out.Rudder = 0

	return out
}

func (c *Controller) ClimbExit() {
	c.airspeedThrottle.reset()
	c.altitude.reset()
}

// AltitudeHold is the cruise regime: the lateral channel becomes active
// (course loop cascaded into the roll loop) and the altitude command is
// shaped against the full hold-zone width.
func (c *Controller) AltitudeHold(p *Params, in Input) Output {
	var out Output

	adjustedHC := shapeAltitudeCmd(in.AltitudeCmd, in.Altitude, p.AltHoldZone)

	out.Throttle = c.airspeedWithThrottleHold(in.AirspeedCmd, in.Airspeed, p, in.Ts)
	out.PitchCmd = c.altitudeHold(adjustedHC, in.Altitude, p, in.Ts)

	if p.CoordinatedTurnEnabled {
		out.Rudder = c.coordinatedTurnHold(in.Sideslip, p, in.Ts)
	} else {
		out.Rudder = 0
	}
	out.RollCmd = c.courseHold(in.CourseCmd, in.Course, in.RollFeedForward, in.YawRate, p, in.Ts)
	out.Aileron = c.rollHold(out.RollCmd, in.Roll, in.RollRate, p, in.Ts)

	out.Elevator = c.pitchHold(out.PitchCmd, in.Pitch, in.PitchRate, p, in.Ts)

	return out
}

func (c *Controller) AltitudeHoldExit() {
	c.course.integrator = 0
}

// shapeAltitudeCmd clamps the commanded altitude to within window meters of
// the current altitude, signed toward the command.
func shapeAltitudeCmd(hC, h, window float64) float64 {
	if math.Abs(hC-h) > window {
		return h + math.Copysign(window, hC-h)
	}
	return hC
}
