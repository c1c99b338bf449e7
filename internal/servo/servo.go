// Package servo maps actuator deflections onto RC servo pulse widths and
// writes them to a PWM backend. Backends follow the usual platform split:
// sysfs hardware PWM on linux/arm, a stub elsewhere, plus an optional GPIO
// arming line gating the servo power rail.
package servo

import (
	"math"

	"autopilot-ng/internal/control"
)

const (
	ChannelAileron = iota
	ChannelElevator
	ChannelRudder
	ChannelThrottle

	numChannels
)

// Driver is the minimal interface the output path needs from a PWM backend.
type Driver interface {
	SetPulseUS(channel int, us int) error
	Close() error
}

// Arming is a digital output gating the servo power stage. Disarm is
// best-effort and must be safe to call repeatedly.
type Arming interface {
	Arm() error
	Disarm() error
	Close() error
}

func Open() (Driver, error) {
	return openPWM()
}

func OpenArming(pin int) (Arming, error) {
	return openArming(pin)
}

// Mapping converts a control output into per-channel pulse widths. Surface
// deflections span [-max, max] across the pulse range with zero at center;
// throttle spans [0, 1] from min to max pulse.
type Mapping struct {
	PulseMinUS int
	PulseMaxUS int

	MaxAileron  float64
	MaxElevator float64
	MaxRudder   float64
}

// Frame is one tick's pulse widths in microseconds.
type Frame struct {
	AileronUS  int
	ElevatorUS int
	RudderUS   int
	ThrottleUS int
}

func (m Mapping) Map(out control.Output) Frame {
	return Frame{
		AileronUS:  m.deflectionUS(out.Aileron, m.MaxAileron),
		ElevatorUS: m.deflectionUS(out.Elevator, m.MaxElevator),
		RudderUS:   m.deflectionUS(out.Rudder, m.MaxRudder),
		ThrottleUS: m.throttleUS(out.Throttle),
	}
}

func (m Mapping) deflectionUS(v, limit float64) int {
	center := float64(m.PulseMinUS+m.PulseMaxUS) / 2.0
	if limit <= 0 {
		// No travel configured: pin the channel to center.
		return int(math.Round(center))
	}
	half := float64(m.PulseMaxUS-m.PulseMinUS) / 2.0
	frac := clamp(v/limit, -1, 1)
	return int(math.Round(center + frac*half))
}

func (m Mapping) throttleUS(v float64) int {
	span := float64(m.PulseMaxUS - m.PulseMinUS)
	return int(math.Round(float64(m.PulseMinUS) + clamp(v, 0, 1)*span))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Write pushes one frame to the backend, one channel at a time.
func Write(d Driver, f Frame) error {
	if err := d.SetPulseUS(ChannelAileron, f.AileronUS); err != nil {
		return err
	}
	if err := d.SetPulseUS(ChannelElevator, f.ElevatorUS); err != nil {
		return err
	}
	if err := d.SetPulseUS(ChannelRudder, f.RudderUS); err != nil {
		return err
	}
	return d.SetPulseUS(ChannelThrottle, f.ThrottleUS)
}
