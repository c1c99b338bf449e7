// Package telemetry publishes one JSON line per control tick over UDP.
// Fire-and-forget: a lost datagram costs one sample, never a control tick.
package telemetry

import (
	"encoding/json"
	"fmt"
	"net"
)

// udpConn is the slice of *net.UDPConn the broadcaster needs; tests swap in
// a fake.
type udpConn interface {
	Write(p []byte) (int, error)
	Close() error
}

type resolveFn func(network, address string) (*net.UDPAddr, error)
type dialFn func(network string, laddr, raddr *net.UDPAddr) (udpConn, error)

type Broadcaster struct {
	dest string
	conn udpConn
}

func NewBroadcaster(dest string) (*Broadcaster, error) {
	return newBroadcaster(dest, net.ResolveUDPAddr, func(network string, laddr, raddr *net.UDPAddr) (udpConn, error) {
		return net.DialUDP(network, laddr, raddr)
	})
}

func newBroadcaster(dest string, resolve resolveFn, dial dialFn) (*Broadcaster, error) {
	addr, err := resolve("udp", dest)
	if err != nil {
		return nil, fmt.Errorf("telemetry: resolve dest: %w", err)
	}

	// DialUDP selects a suitable local address automatically.
	conn, err := dial("udp", nil, addr)
	if err != nil {
		return nil, fmt.Errorf("telemetry: dial udp: %w", err)
	}

	return &Broadcaster{
		dest: dest,
		conn: conn,
	}, nil
}

func (b *Broadcaster) Send(payload []byte) error {
	if len(payload) == 0 {
		return nil
	}
	_, err := b.conn.Write(payload)
	return err
}

func (b *Broadcaster) Close() error {
	if b.conn == nil {
		return nil
	}
	return b.conn.Close()
}

// Record is one control tick's state for downstream plotting and log
// analysis.
type Record struct {
	Tick  uint64 `json:"tick"`
	Phase string `json:"phase"`

	AltitudeM   float64 `json:"altitude_m"`
	AirspeedMps float64 `json:"airspeed_mps"`
	CourseRad   float64 `json:"course_rad"`

	Aileron  float64 `json:"aileron"`
	Elevator float64 `json:"elevator"`
	Rudder   float64 `json:"rudder"`
	Throttle float64 `json:"throttle"`

	RollCmdRad  float64 `json:"roll_cmd_rad"`
	PitchCmdRad float64 `json:"pitch_cmd_rad"`
}

// SendRecord marshals rec as one newline-terminated JSON object.
func (b *Broadcaster) SendRecord(rec Record) error {
	buf, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("telemetry: marshal record: %w", err)
	}
	return b.Send(append(buf, '\n'))
}
