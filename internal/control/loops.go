package control

import "math"

// The loops below share one algorithm shape: error, trapezoidal integration,
// a derivative term (measured rate where one exists, dirty derivative of the
// error otherwise), saturation, then integrator back-calculation so the next
// tick's integral contribution is consistent with the clamped output.

// courseHold turns a course error into a commanded roll angle, bounded to
// +/-15 degrees. The yaw rate is the derivative term and the feed-forward
// roll is added both before saturation and in the anti-windup recompute.
func (c *Controller) courseHold(chiC, chi, phiFF, r float64, p *Params, ts float64) float64 {
	err := chiC - chi

	c.course.integrator += (ts / 2.0) * (err + c.course.err)

	up := p.Course.KP * err
	ui := p.Course.KI * c.course.integrator
	ud := p.Course.KD * r

	phiC := Sat(up+ui+ud+phiFF, maxRollCmd, -maxRollCmd)
	if math.Abs(p.Course.KI) >= kiEpsilon {
		unsat := up + ui + ud + phiFF
		c.course.integrator += (ts / p.Course.KI) * (phiC - unsat)
	}

	c.course.err = err
	return phiC
}

// rollHold turns a roll error into an aileron deflection. The measured roll
// rate damps the loop, so its term is subtracted.
func (c *Controller) rollHold(phiC, phi, rollRate float64, p *Params, ts float64) float64 {
	err := phiC - phi

	c.roll.integrator += (ts / 2.0) * (err + c.roll.err)

	up := p.Roll.KP * err
	ui := p.Roll.KI * c.roll.integrator
	ud := p.Roll.KD * rollRate

	deltaA := Sat(up+ui-ud, p.MaxAileron, -p.MaxAileron)
	if math.Abs(p.Roll.KI) >= kiEpsilon {
		unsat := up + ui - ud
		c.roll.integrator += (ts / p.Roll.KI) * (deltaA - unsat)
	}

	c.roll.err = err
	return deltaA
}

// pitchHold turns a pitch error into an elevator deflection. The elevator
// trim arrives in PWM units and is scaled by pwm_rad_e. The result is
// negated on return per the elevator channel's sign convention (upstream
// rosplane does the same).
func (c *Controller) pitchHold(thetaC, theta, pitchRate float64, p *Params, ts float64) float64 {
	err := thetaC - theta

	c.pitch.integrator += (ts / 2.0) * (err + c.pitch.err)

	up := p.Pitch.KP * err
	ui := p.Pitch.KI * c.pitch.integrator
	ud := p.Pitch.KD * pitchRate

	trim := p.TrimElevator / p.PWMRadElevator
	deltaE := Sat(trim+up+ui-ud, p.MaxElevator, -p.MaxElevator)
	if math.Abs(p.Pitch.KI) >= kiEpsilon {
		unsat := trim + up + ui - ud
		c.pitch.integrator += (ts / p.Pitch.KI) * (deltaE - unsat)
	}

	c.pitch.err = err
	return -deltaE
}

// airspeedWithThrottleHold holds commanded airspeed with the throttle. No
// airspeed-rate measurement exists, so the derivative is a dirty derivative
// of the error. Throttle cannot be negative: the lower bound is zero.
func (c *Controller) airspeedWithThrottleHold(vaC, va float64, p *Params, ts float64) float64 {
	err := vaC - va

	c.airspeedThrottle.integrator += (ts / 2.0) * (err + c.airspeedThrottle.err)
	c.airspeedThrottle.differentiator = (2.0*p.Tau-ts)/(2.0*p.Tau+ts)*c.airspeedThrottle.differentiator +
		(2.0/(2.0*p.Tau+ts))*(err-c.airspeedThrottle.err)

	up := p.AirspeedThrottle.KP * err
	ui := p.AirspeedThrottle.KI * c.airspeedThrottle.integrator
	ud := p.AirspeedThrottle.KD * c.airspeedThrottle.differentiator

	deltaT := Sat(p.TrimThrottle+up+ui+ud, p.MaxThrottle, 0)
	if math.Abs(p.AirspeedThrottle.KI) >= kiEpsilon {
		unsat := p.TrimThrottle + up + ui + ud
		c.airspeedThrottle.integrator += (ts / p.AirspeedThrottle.KI) * (deltaT - unsat)
	}

	c.airspeedThrottle.err = err
	return deltaT
}

// altitudeHold turns an altitude error into a commanded pitch angle, bounded
// to +/-10 degrees. The integrator only accumulates while the error is
// inside the hold zone (with a small margin); outside it is reset to zero,
// not frozen.
func (c *Controller) altitudeHold(hC, h float64, p *Params, ts float64) float64 {
	err := hC - h

	if -p.AltHoldZone+altIntegratorMargin < err && err < p.AltHoldZone-altIntegratorMargin {
		c.altitude.integrator += (ts / 2.0) * (err + c.altitude.err)
	} else {
		c.altitude.integrator = 0.0
	}

	c.altitude.differentiator = (2.0*p.Tau-ts)/(2.0*p.Tau+ts)*c.altitude.differentiator +
		(2.0/(2.0*p.Tau+ts))*(err-c.altitude.err)

	up := p.Altitude.KP * err
	ui := p.Altitude.KI * c.altitude.integrator
	ud := p.Altitude.KD * c.altitude.differentiator

	thetaC := Sat(up+ui+ud, maxPitchCmd, -maxPitchCmd)
	if math.Abs(p.Altitude.KI) >= kiEpsilon {
		unsat := up + ui + ud
		c.altitude.integrator += (ts / p.Altitude.KI) * (thetaC - unsat)
	}

	// Upstream rosplane stores this loop's error into the airspeed-throttle
	// record (at_error_), not its own. Kept as-is so behavior matches
	// flight-tested upstream numbers; see DESIGN.md before "fixing".
	c.airspeedThrottle.err = err
	return thetaC
}

// coordinatedTurnHold drives sideslip to zero through the rudder. Upstream
// leaves this stubbed; here it is a real loop gated by
// Params.CoordinatedTurnEnabled in the altitude-hold handler.
func (c *Controller) coordinatedTurnHold(beta float64, p *Params, ts float64) float64 {
	err := -beta

	c.coordinatedTurn.integrator += (ts / 2.0) * (err + c.coordinatedTurn.err)
	c.coordinatedTurn.differentiator = (2.0*p.Tau-ts)/(2.0*p.Tau+ts)*c.coordinatedTurn.differentiator +
		(2.0/(2.0*p.Tau+ts))*(err-c.coordinatedTurn.err)

	up := p.CoordinatedTurn.KP * err
	ui := p.CoordinatedTurn.KI * c.coordinatedTurn.integrator
	ud := p.CoordinatedTurn.KD * c.coordinatedTurn.differentiator

	deltaR := Sat(up+ui+ud, p.MaxRudder, -p.MaxRudder)
	if math.Abs(p.CoordinatedTurn.KI) >= kiEpsilon {
		unsat := up + ui + ud
		c.coordinatedTurn.integrator += (ts / p.CoordinatedTurn.KI) * (deltaR - unsat)
	}

	c.coordinatedTurn.err = err
	return deltaR
}
