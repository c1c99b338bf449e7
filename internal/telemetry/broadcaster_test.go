package telemetry

import (
	"encoding/json"
	"errors"
	"net"
	"strings"
	"testing"
)

type fakeConn struct {
	writes    [][]byte
	writeErr  error
	closed    bool
	closeErr  error
	writeHits int
}

func (c *fakeConn) Write(p []byte) (int, error) {
	c.writeHits++
	if c.writeErr != nil {
		return 0, c.writeErr
	}
	cp := append([]byte(nil), p...)
	c.writes = append(c.writes, cp)
	return len(p), nil
}

func (c *fakeConn) Close() error {
	c.closed = true
	return c.closeErr
}

func TestNewBroadcaster_DialsResolvedAddr(t *testing.T) {
	var gotNetwork string
	var gotRaddr *net.UDPAddr
	fc := &fakeConn{}

	resolve := func(network, address string) (*net.UDPAddr, error) {
		return net.ResolveUDPAddr(network, address)
	}

	dial := func(network string, laddr, raddr *net.UDPAddr) (udpConn, error) {
		gotNetwork = network
		gotRaddr = raddr
		return fc, nil
	}

	b, err := newBroadcaster("127.0.0.1:4010", resolve, dial)
	if err != nil {
		t.Fatalf("newBroadcaster() error: %v", err)
	}
	defer b.Close()

	if gotNetwork != "udp" {
		t.Fatalf("network=%q want %q", gotNetwork, "udp")
	}
	if gotRaddr == nil || gotRaddr.Port != 4010 || !gotRaddr.IP.Equal(net.IPv4(127, 0, 0, 1)) {
		t.Fatalf("raddr=%v want 127.0.0.1:4010", gotRaddr)
	}
}

func TestNewBroadcaster_ResolveFailure(t *testing.T) {
	resolveErr := errors.New("nope")
	resolve := func(network, address string) (*net.UDPAddr, error) {
		return nil, resolveErr
	}
	dial := func(network string, laddr, raddr *net.UDPAddr) (udpConn, error) {
		return &fakeConn{}, nil
	}

	_, err := newBroadcaster("bad:addr", resolve, dial)
	if !errors.Is(err, resolveErr) {
		t.Fatalf("err=%v want %v", err, resolveErr)
	}
}

func TestBroadcaster_Send_EmptyNoWrite(t *testing.T) {
	fc := &fakeConn{}
	b := &Broadcaster{dest: "x", conn: fc}

	if err := b.Send(nil); err != nil {
		t.Fatalf("Send(nil) error: %v", err)
	}
	if fc.writeHits != 0 {
		t.Fatalf("expected no writes, got %d", fc.writeHits)
	}
}

func TestBroadcaster_Send_PropagatesError(t *testing.T) {
	wantErr := errors.New("boom")
	fc := &fakeConn{writeErr: wantErr}
	b := &Broadcaster{dest: "x", conn: fc}

	err := b.Send([]byte{0x01})
	if !errors.Is(err, wantErr) {
		t.Fatalf("err=%v want %v", err, wantErr)
	}
}

func TestBroadcaster_Close_NilConnNoPanic(t *testing.T) {
	b := &Broadcaster{}
	if err := b.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}
}

func TestBroadcaster_SendRecord_JSONLine(t *testing.T) {
	fc := &fakeConn{}
	b := &Broadcaster{dest: "x", conn: fc}

	rec := Record{
		Tick:        7,
		Phase:       "climb",
		AltitudeM:   31.5,
		AirspeedMps: 14.2,
		Throttle:    0.8,
		PitchCmdRad: 0.12,
	}
	if err := b.SendRecord(rec); err != nil {
		t.Fatalf("SendRecord() error: %v", err)
	}
	if len(fc.writes) != 1 {
		t.Fatalf("expected 1 write, got %d", len(fc.writes))
	}

	line := string(fc.writes[0])
	if !strings.HasSuffix(line, "\n") {
		t.Fatalf("payload not newline-terminated: %q", line)
	}

	var got Record
	if err := json.Unmarshal([]byte(line), &got); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if got != rec {
		t.Fatalf("got=%+v want %+v", got, rec)
	}
}
