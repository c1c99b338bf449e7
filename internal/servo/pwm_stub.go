//go:build !linux || (!arm && !arm64)

package servo

import "fmt"

// Stub implementation for non-Linux and/or non-ARM platforms.
func openPWM() (Driver, error) {
	return nil, fmt.Errorf("servo: pwm unsupported on this platform")
}
