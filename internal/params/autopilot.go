package params

import "autopilot-ng/internal/control"

// Declare registers the autopilot parameter set with its defaults. The
// defaults are a flyable starting point for a small fixed-wing airframe;
// field tuning overlays them via Store.LoadFile.
func Declare(s *Store) {
	s.DeclareDouble("course_kp", 0.7329)
	s.DeclareDouble("course_ki", 0.07)
	s.DeclareDouble("course_kd", 0.0)

	s.DeclareDouble("roll_kp", 0.7)
	s.DeclareDouble("roll_ki", 0.0)
	s.DeclareDouble("roll_kd", 0.07)

	s.DeclareDouble("pitch_kp", 1.0)
	s.DeclareDouble("pitch_ki", 0.0)
	s.DeclareDouble("pitch_kd", 0.17)

	s.DeclareDouble("airspeed_throttle_kp", 0.4)
	s.DeclareDouble("airspeed_throttle_ki", 0.085)
	s.DeclareDouble("airspeed_throttle_kd", 0.0)

	s.DeclareDouble("altitude_kp", 0.045)
	s.DeclareDouble("altitude_ki", 0.01)
	s.DeclareDouble("altitude_kd", 0.0)

	s.DeclareDouble("rudder_kp", 0.0)
	s.DeclareDouble("rudder_ki", 0.0)
	s.DeclareDouble("rudder_kd", 0.0)

	s.DeclareDouble("trim_elevator", 0.02)
	s.DeclareDouble("trim_throttle", 0.58)
	s.DeclareDouble("pwm_rad_elevator", 1.0)

	s.DeclareDouble("tau", 50.0)

	s.DeclareDouble("max_aileron", 0.436)
	s.DeclareDouble("max_elevator", 0.61)
	s.DeclareDouble("max_rudder", 0.523)
	s.DeclareDouble("max_throttle", 1.0)
	s.DeclareDouble("max_takeoff_throttle", 0.55)

	s.DeclareDouble("altitude_hold_zone", 10.0)
	s.DeclareDouble("takeoff_altitude", 10.0)

	s.DeclareBool("coordinated_turn_enabled", false)
}

// Bind snapshots the store into a control.Params for one tick. Any unknown
// name or mistyped value surfaces as an error here, never inside the core.
func Bind(s *Store) (control.Params, error) {
	r := reader{s: s}

	p := control.Params{
		Course: control.Gains{
			KP: r.double("course_kp"),
			KI: r.double("course_ki"),
			KD: r.double("course_kd"),
		},
		Roll: control.Gains{
			KP: r.double("roll_kp"),
			KI: r.double("roll_ki"),
			KD: r.double("roll_kd"),
		},
		Pitch: control.Gains{
			KP: r.double("pitch_kp"),
			KI: r.double("pitch_ki"),
			KD: r.double("pitch_kd"),
		},
		AirspeedThrottle: control.Gains{
			KP: r.double("airspeed_throttle_kp"),
			KI: r.double("airspeed_throttle_ki"),
			KD: r.double("airspeed_throttle_kd"),
		},
		Altitude: control.Gains{
			KP: r.double("altitude_kp"),
			KI: r.double("altitude_ki"),
			KD: r.double("altitude_kd"),
		},
		CoordinatedTurn: control.Gains{
			KP: r.double("rudder_kp"),
			KI: r.double("rudder_ki"),
			KD: r.double("rudder_kd"),
		},

		TrimElevator:   r.double("trim_elevator"),
		TrimThrottle:   r.double("trim_throttle"),
		PWMRadElevator: r.double("pwm_rad_elevator"),

		Tau: r.double("tau"),

		MaxAileron:         r.double("max_aileron"),
		MaxElevator:        r.double("max_elevator"),
		MaxRudder:          r.double("max_rudder"),
		MaxThrottle:        r.double("max_throttle"),
		MaxTakeoffThrottle: r.double("max_takeoff_throttle"),

		AltHoldZone:     r.double("altitude_hold_zone"),
		TakeoffAltitude: r.double("takeoff_altitude"),

		CoordinatedTurnEnabled: r.boolean("coordinated_turn_enabled"),
	}

	if r.err != nil {
		return control.Params{}, r.err
	}
	return p, nil
}

// reader accumulates the first lookup error so Bind can read the whole set
// without per-field error plumbing.
type reader struct {
	s   *Store
	err error
}

func (r *reader) double(name string) float64 {
	if r.err != nil {
		return 0
	}
	v, err := r.s.Double(name)
	if err != nil {
		r.err = err
	}
	return v
}

func (r *reader) boolean(name string) bool {
	if r.err != nil {
		return false
	}
	v, err := r.s.Bool(name)
	if err != nil {
		r.err = err
	}
	return v
}
