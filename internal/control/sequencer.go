package control

// Sequencer holds the current flight phase and runs exactly one phase
// handler per tick. When the altitude zones call for a different phase, the
// departing phase's exit hook runs exactly once before the arriving phase's
// handler is first invoked.
//
// Not safe for concurrent use; it shares the Controller's single-owner
// model.
type Sequencer struct {
	ctrl  *Controller
	phase Phase
}

func NewSequencer(ctrl *Controller) *Sequencer {
	return &Sequencer{ctrl: ctrl, phase: PhaseTakeOff}
}

func (s *Sequencer) Phase() Phase {
	return s.phase
}

// Tick advances one sample period: select the phase for this tick, fire the
// exit hook on a transition, then run the active handler.
func (s *Sequencer) Tick(p *Params, in Input) Output {
	next := selectPhase(p, in)
	if next != s.phase {
		phaseTable[s.phase].exit(s.ctrl)
		s.phase = next
	}
	return phaseTable[s.phase].handler(s.ctrl, p, in)
}

// selectPhase maps altitude into the zone layout: below the take-off
// ceiling, then climbing until within the hold zone of the commanded
// altitude, then holding.
func selectPhase(p *Params, in Input) Phase {
	switch {
	case in.Altitude < p.TakeoffAltitude:
		return PhaseTakeOff
	case in.Altitude < in.AltitudeCmd-p.AltHoldZone:
		return PhaseClimb
	default:
		return PhaseAltitudeHold
	}
}
