package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Control   ControlConfig   `yaml:"control"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Servo     ServoConfig     `yaml:"servo"`
	Mission   MissionConfig   `yaml:"mission"`
	RT        RTConfig        `yaml:"rt"`
}

type ControlConfig struct {
	// RateHz is the control loop cadence. The loops themselves take the
	// sample period per tick and tolerate jitter.
	RateHz float64 `yaml:"rate_hz"`
	// ParamsPath optionally overlays gain/limit parameters from a yaml file.
	ParamsPath string `yaml:"params_path"`
}

type TelemetryConfig struct {
	Enable bool   `yaml:"enable"`
	Dest   string `yaml:"dest"`
}

type ServoConfig struct {
	Enable     bool `yaml:"enable"`
	ArmingPin  int  `yaml:"arming_pin"`
	PulseMinUS int  `yaml:"pulse_min_us"`
	PulseMaxUS int  `yaml:"pulse_max_us"`
}

// MissionConfig is the commanded flight for the bench/sim runtime: climb to
// altitude at airspeed, then hold course.
type MissionConfig struct {
	AirspeedMps   float64 `yaml:"airspeed_mps"`
	AltitudeM     float64 `yaml:"altitude_m"`
	CourseDeg     float64 `yaml:"course_deg"`
	StartAirborne bool    `yaml:"start_airborne"`
}

type RTConfig struct {
	LockMemory bool `yaml:"lock_memory"`
	Priority   int  `yaml:"priority"`
}

func Load(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, err
	}

	if cfg.Control.RateHz == 0 {
		cfg.Control.RateHz = 100
	}
	if cfg.Control.RateHz < 0 {
		return Config{}, fmt.Errorf("control.rate_hz must be > 0")
	}

	if cfg.Telemetry.Enable && cfg.Telemetry.Dest == "" {
		return Config{}, fmt.Errorf("telemetry.dest is required when telemetry.enable is true")
	}

	if cfg.Servo.PulseMinUS == 0 {
		cfg.Servo.PulseMinUS = 1000
	}
	if cfg.Servo.PulseMaxUS == 0 {
		cfg.Servo.PulseMaxUS = 2000
	}
	if cfg.Servo.PulseMinUS >= cfg.Servo.PulseMaxUS {
		return Config{}, fmt.Errorf("servo.pulse_min_us must be below servo.pulse_max_us")
	}
	if cfg.Servo.ArmingPin < 0 {
		return Config{}, fmt.Errorf("servo.arming_pin must be >= 0")
	}

	// Mission defaults (safe even when only simulating).
	if cfg.Mission.AirspeedMps <= 0 {
		cfg.Mission.AirspeedMps = 15
	}
	if cfg.Mission.AltitudeM <= 0 {
		cfg.Mission.AltitudeM = 50
	}

	if cfg.RT.Priority < 0 || cfg.RT.Priority > 99 {
		return Config{}, fmt.Errorf("rt.priority must be within 0..99")
	}

	return cfg, nil
}
