package ui

import "fmt"

// FormatTimeTicks renders cumulative CPU ticks as htop-style TIME+.
func FormatTimeTicks(ticks uint64, hz int) string {
	if hz <= 0 {
		hz = 100
	}
	totalCS := (ticks * 100) / uint64(hz)

	h := totalCS / 360000
	m := (totalCS % 360000) / 6000
	s := (totalCS % 6000) / 100
	cs := totalCS % 100

	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d.%02d", m, s, cs)
}

// FormatUptime renders seconds of uptime as a compact d/h/m string.
func FormatUptime(seconds float64) string {
	total := uint64(seconds)
	d := total / 86400
	h := (total % 86400) / 3600
	m := (total % 3600) / 60

	if d > 0 {
		return fmt.Sprintf("%dd %dh %dm", d, h, m)
	}
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}
