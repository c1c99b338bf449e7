package main

import (
	"context"
	"flag"
	"log"
	"math"
	"os"
	"os/signal"
	"syscall"
	"time"

	"autopilot-ng/internal/config"
	"autopilot-ng/internal/control"
	"autopilot-ng/internal/params"
	"autopilot-ng/internal/rt"
	"autopilot-ng/internal/servo"
	"autopilot-ng/internal/sim"
	"autopilot-ng/internal/telemetry"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "./dev.yaml", "Path to YAML config")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	store := params.NewStore()
	params.Declare(store)
	if cfg.Control.ParamsPath != "" {
		if err := store.LoadFile(cfg.Control.ParamsPath); err != nil {
			log.Fatalf("params load failed: %v", err)
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Degraded mode is acceptable on the bench; keep flying without RT.
	if cfg.RT.LockMemory {
		if err := rt.LockMemory(); err != nil {
			log.Printf("memory lock unavailable: %v", err)
		}
	}
	if err := rt.SetRealtimePriority(cfg.RT.Priority); err != nil {
		log.Printf("realtime priority unavailable: %v", err)
	}

	var tx *telemetry.Broadcaster
	if cfg.Telemetry.Enable {
		tx, err = telemetry.NewBroadcaster(cfg.Telemetry.Dest)
		if err != nil {
			log.Fatalf("telemetry init failed: %v", err)
		}
		defer tx.Close()
	}

	var drv servo.Driver
	var arming servo.Arming
	if cfg.Servo.Enable {
		drv, err = servo.Open()
		if err != nil {
			log.Fatalf("servo init failed: %v", err)
		}
		defer drv.Close()

		if cfg.Servo.ArmingPin > 0 {
			arming, err = servo.OpenArming(cfg.Servo.ArmingPin)
			if err != nil {
				log.Fatalf("servo arming init failed: %v", err)
			}
			defer arming.Close()
			if err := arming.Arm(); err != nil {
				log.Fatalf("servo arming failed: %v", err)
			}
		}
	}

	ctrl := control.NewController()
	seq := control.NewSequencer(ctrl)

	plane := &sim.Aircraft{}
	if cfg.Mission.StartAirborne {
		plane.Airspeed = cfg.Mission.AirspeedMps
		plane.Altitude = cfg.Mission.AltitudeM
	}
	cmds := sim.Commands{
		Airspeed: cfg.Mission.AirspeedMps,
		Altitude: cfg.Mission.AltitudeM,
		Course:   cfg.Mission.CourseDeg * math.Pi / 180.0,
	}

	period := time.Duration(float64(time.Second) / cfg.Control.RateHz)
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	log.Printf("autopilot-ng starting")
	log.Printf("control rate=%.0fHz mission alt=%.0fm va=%.0fm/s phase=%s",
		cfg.Control.RateHz, cfg.Mission.AltitudeM, cfg.Mission.AirspeedMps, seq.Phase())

	lastPhase := seq.Phase()
	var tick uint64
	var out control.Output
	for {
		select {
		case <-ctx.Done():
			if arming != nil {
				_ = arming.Disarm()
			}
			log.Printf("autopilot-ng stopping")
			return
		case <-ticker.C:
			p, err := params.Bind(store)
			if err != nil {
				log.Fatalf("params bind failed: %v", err)
			}

			dt := period.Seconds()
			plane.Step(out, dt)
			in := plane.Snapshot(cmds, dt)
			out = seq.Tick(&p, in)

			if ph := seq.Phase(); ph != lastPhase {
				log.Printf("phase %s -> %s alt=%.1fm va=%.1fm/s", lastPhase, ph, in.Altitude, in.Airspeed)
				lastPhase = ph
			}

			if drv != nil {
				m := servo.Mapping{
					PulseMinUS:  cfg.Servo.PulseMinUS,
					PulseMaxUS:  cfg.Servo.PulseMaxUS,
					MaxAileron:  p.MaxAileron,
					MaxElevator: p.MaxElevator,
					MaxRudder:   p.MaxRudder,
				}
				if err := servo.Write(drv, m.Map(out)); err != nil {
					log.Printf("servo write failed: %v", err)
				}
			}

			if tx != nil {
				rec := telemetry.Record{
					Tick:        tick,
					Phase:       seq.Phase().String(),
					AltitudeM:   in.Altitude,
					AirspeedMps: in.Airspeed,
					CourseRad:   in.Course,
					Aileron:     out.Aileron,
					Elevator:    out.Elevator,
					Rudder:      out.Rudder,
					Throttle:    out.Throttle,
					RollCmdRad:  out.RollCmd,
					PitchCmdRad: out.PitchCmd,
				}
				if err := tx.SendRecord(rec); err != nil {
					log.Printf("telemetry send failed: %v", err)
				}
			}
			tick++
		}
	}
}
