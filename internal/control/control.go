package control

// Upstream rosplane writes its angle bounds with the literal 3.14 rather
// than pi. The shipped gain sets were tuned against those numbers, so we
// mirror the literal instead of math.Pi.
const (
	degToRad = 3.14 / 180.0

	// Commanded-angle bounds for the cascaded loops.
	maxRollCmd  = 15.0 * degToRad
	maxPitchCmd = 10.0 * degToRad

	// Fixed shallow pitch command used during take-off.
	takeoffPitchCmd = 3.0 * degToRad

	// Below this magnitude an integral gain is treated as zero and no
	// anti-windup correction is applied (there is nothing meaningful to
	// correct, and Ts/Ki would blow up).
	kiEpsilon = 1e-5

	// Margin inside the altitude hold zone within which the altitude
	// integrator is allowed to accumulate.
	altIntegratorMargin = 0.01
)

// Gains is one loop's proportional/integral/derivative triple.
type Gains struct {
	KP float64
	KI float64
	KD float64
}

// Params is the per-tick gain/limit/trim set, supplied by the external
// parameter service. The core treats every field as already validated.
type Params struct {
	Course           Gains
	Roll             Gains
	Pitch            Gains
	AirspeedThrottle Gains
	Altitude         Gains
	CoordinatedTurn  Gains

	// TrimElevator is divided by PWMRadElevator before being applied, so it
	// can be expressed in PWM units the way upstream configures it.
	TrimElevator   float64
	TrimThrottle   float64
	PWMRadElevator float64

	// Tau is the dirty-derivative low-pass time constant shared by the
	// loops that differentiate a filtered error (airspeed, altitude,
	// coordinated turn).
	Tau float64

	MaxAileron  float64
	MaxElevator float64
	MaxRudder   float64
	MaxThrottle float64

	// MaxTakeoffThrottle caps throttle during take-off, below the general
	// throttle limit, so the climb-out profile is not overshot.
	MaxTakeoffThrottle float64

	// AltHoldZone is the altitude hold-zone half-width in meters, used both
	// for command shaping and for the altitude integrator deadband.
	AltHoldZone float64

	// TakeoffAltitude is the ceiling of the take-off zone used by the
	// sequencer.
	TakeoffAltitude float64

	// CoordinatedTurnEnabled routes the rudder through the coordinated-turn
	// loop during altitude hold. Off means rudder stays centered.
	CoordinatedTurnEnabled bool
}

// Input is one tick's sensed and commanded aircraft state. Angles and rates
// are radians and radians per second; speeds m/s; altitudes meters.
type Input struct {
	Roll  float64
	Pitch float64

	RollRate  float64
	PitchRate float64
	YawRate   float64

	Airspeed    float64
	AirspeedCmd float64

	Altitude    float64
	AltitudeCmd float64

	Course    float64
	CourseCmd float64

	// RollFeedForward is added to the course loop's output to reduce
	// tracking lag on known course changes.
	RollFeedForward float64

	// Sideslip feeds the coordinated-turn loop when it is enabled.
	Sideslip float64

	// Ts is this tick's sample period in seconds. It is supplied per call
	// and not assumed constant.
	Ts float64
}

// Output is one tick's actuator command set. The intermediate commanded roll
// and pitch angles are exposed because the cascaded loops report their
// setpoints.
type Output struct {
	Aileron  float64
	Elevator float64
	Rudder   float64
	Throttle float64

	RollCmd  float64
	PitchCmd float64
}

// loopState is one PID loop's persistent record. It is read and mutated only
// inside the owning loop's invocation.
type loopState struct {
	err            float64
	integrator     float64
	differentiator float64
}

func (s *loopState) reset() {
	*s = loopState{}
}

// Controller owns the persistent state of every loop. Construct with
// NewController; state starts zeroed.
//
// Not safe for concurrent use: a single control thread must own the instance
// exclusively.
type Controller struct {
	course           loopState
	roll             loopState
	pitch            loopState
	airspeedThrottle loopState
	altitude         loopState
	coordinatedTurn  loopState
}

func NewController() *Controller {
	return &Controller{}
}

// Sat clamps value into [lower, upper]. Values already inside the range pass
// through unchanged; boundary ties return the boundary.
func Sat(value, upper, lower float64) float64 {
	if value > upper {
		return upper
	}
	if value < lower {
		return lower
	}
	return value
}
