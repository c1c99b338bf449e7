//go:build linux && (arm || arm64)

package servo

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// sysfsPWM drives RC servo channels via /sys/class/pwm.
//
// RC servos expect a 50 Hz frame with a 1000-2000 us pulse, so the period is
// fixed per channel and only the duty cycle moves. Channels are exported
// lazily on first use.
//
// On Raspberry Pi class hardware a multi-channel PWM hat (PCA9685-style
// kernel driver, or the pwm overlay) must expose at least four channels.

const servoPeriodNS = 20_000_000 // 50 Hz frame

var pwmSysfsBase = "/sys/class/pwm"

type sysfsPWM struct {
	chipPath string
	exported map[int]bool
}

func openPWM() (Driver, error) {
	chipPath, err := findPWMChip(numChannels)
	if err != nil {
		return nil, err
	}
	return &sysfsPWM{chipPath: chipPath, exported: make(map[int]bool)}, nil
}

func findPWMChip(minChannels int) (string, error) {
	entries, err := os.ReadDir(pwmSysfsBase)
	if err != nil {
		return "", fmt.Errorf("servo: read %s: %w", pwmSysfsBase, err)
	}

	for _, e := range entries {
		name := e.Name()
		if !strings.HasPrefix(name, "pwmchip") {
			continue
		}
		chip := filepath.Join(pwmSysfsBase, name)
		n, rerr := readInt(filepath.Join(chip, "npwm"))
		if rerr != nil || n < minChannels {
			continue
		}
		return chip, nil
	}

	return "", fmt.Errorf("servo: no sysfs pwmchip with %d+ channels found (is the pwm overlay enabled?)", minChannels)
}

func (d *sysfsPWM) channelPath(ch int) string {
	return filepath.Join(d.chipPath, fmt.Sprintf("pwm%d", ch))
}

func (d *sysfsPWM) ensureExported(ch int) error {
	if d.exported[ch] {
		return nil
	}
	path := d.channelPath(ch)
	if _, err := os.Stat(path); err != nil {
		if werr := writeSysfs(filepath.Join(d.chipPath, "export"), strconv.Itoa(ch)); werr != nil {
			return werr
		}
	}
	if err := writeSysfs(filepath.Join(path, "period"), strconv.FormatUint(servoPeriodNS, 10)); err != nil {
		return err
	}
	if err := writeSysfs(filepath.Join(path, "enable"), "1"); err != nil {
		return err
	}
	d.exported[ch] = true
	return nil
}

func (d *sysfsPWM) SetPulseUS(ch int, us int) error {
	if ch < 0 || ch >= numChannels {
		return fmt.Errorf("servo: channel %d out of range", ch)
	}
	dutyNS := uint64(us) * 1000
	if dutyNS >= servoPeriodNS {
		return fmt.Errorf("servo: pulse %dus exceeds the frame period", us)
	}
	if err := d.ensureExported(ch); err != nil {
		return err
	}
	return writeSysfs(filepath.Join(d.channelPath(ch), "duty_cycle"), strconv.FormatUint(dutyNS, 10))
}

func (d *sysfsPWM) Close() error {
	var firstErr error
	for ch := range d.exported {
		if err := writeSysfs(filepath.Join(d.channelPath(ch), "enable"), "0"); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func writeSysfs(path, value string) error {
	f, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("servo: open %s: %w", path, err)
	}
	defer f.Close()
	if _, err := f.WriteString(value); err != nil {
		return fmt.Errorf("servo: write %s: %w", path, err)
	}
	return nil
}

func readInt(path string) (int, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(string(b)))
	if err != nil {
		return 0, fmt.Errorf("servo: parse %s: %w", path, err)
	}
	return n, nil
}
