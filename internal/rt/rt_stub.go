//go:build !linux

package rt

import "fmt"

// Stub implementation for non-Linux platforms.
func LockMemory() error {
	return fmt.Errorf("rt: memory locking unsupported on this platform")
}

func SetRealtimePriority(priority int) error {
	if priority <= 0 {
		return nil
	}
	return fmt.Errorf("rt: realtime scheduling unsupported on this platform")
}
