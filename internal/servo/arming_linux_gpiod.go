//go:build linux && (arm || arm64)

package servo

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/warthog618/go-gpiocdev"
)

// openArming drives the given BCM GPIO as a digital output through the Linux
// GPIO character device. The line typically switches the servo power rail
// via a MOSFET; it is requested low (disarmed) and released low.
func openArming(pin int) (Arming, error) {
	if pin <= 0 {
		return nil, fmt.Errorf("servo: invalid arming pin %d", pin)
	}

	// On Pi, line names are commonly "GPIO17", etc.
	lineName := fmt.Sprintf("GPIO%d", pin)

	chipCandidates := []string{"/dev/gpiochip0", "/dev/gpiochip4"}
	entries, _ := os.ReadDir("/dev")
	for _, e := range entries {
		name := e.Name()
		if strings.HasPrefix(name, "gpiochip") {
			chipCandidates = append(chipCandidates, filepath.Join("/dev", name))
		}
	}

	for _, chipPath := range chipCandidates {
		chip, err := gpiocdev.NewChip(chipPath)
		if err != nil {
			continue
		}
		offset, err := chip.FindLine(lineName)
		if err != nil {
			_ = chip.Close()
			continue
		}
		line, err := chip.RequestLine(offset, gpiocdev.AsOutput(0), gpiocdev.WithConsumer("autopilot-ng-arm"))
		if err != nil {
			_ = chip.Close()
			continue
		}
		return &gpiodArming{chip: chip, line: line}, nil
	}

	return nil, fmt.Errorf("servo: gpio line %q not found (or busy)", lineName)
}

type gpiodArming struct {
	chip *gpiocdev.Chip
	line *gpiocdev.Line
}

func (g *gpiodArming) Arm() error {
	return g.line.SetValue(1)
}

func (g *gpiodArming) Disarm() error {
	return g.line.SetValue(0)
}

func (g *gpiodArming) Close() error {
	// Leave the rail disarmed on the way out.
	_ = g.line.SetValue(0)
	err := g.line.Close()
	if g.chip != nil {
		_ = g.chip.Close()
	}
	return err
}
