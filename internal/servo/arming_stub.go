//go:build !linux || (!arm && !arm64)

package servo

import "fmt"

// Stub implementation for non-Linux and/or non-ARM platforms.
func openArming(pin int) (Arming, error) {
	return nil, fmt.Errorf("servo: gpio arming unsupported on this platform")
}
