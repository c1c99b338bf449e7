//go:build linux

// Package rt hardens the control-loop host for real-time cadence: locked
// memory so the tick never page-faults, and an optional SCHED_FIFO priority.
// Both need privileges; callers treat failures as a degraded mode, not
// fatal.
package rt

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// LockMemory pins current and future pages into RAM.
func LockMemory() error {
	if err := unix.Mlockall(unix.MCL_CURRENT | unix.MCL_FUTURE); err != nil {
		return fmt.Errorf("rt: mlockall: %w", err)
	}
	return nil
}

// SetRealtimePriority moves the process onto SCHED_FIFO at the given
// priority (1..99). Priority 0 is a no-op.
func SetRealtimePriority(priority int) error {
	if priority <= 0 {
		return nil
	}
	attr := unix.SchedAttr{
		Size:     unix.SizeofSchedAttr,
		Policy:   unix.SCHED_FIFO,
		Priority: uint32(priority),
	}
	if err := unix.SchedSetAttr(0, &attr, 0); err != nil {
		return fmt.Errorf("rt: sched_setattr: %w", err)
	}
	return nil
}
