package proc

import (
	"bufio"
	"os"
	"strconv"
	"strings"
)

// ReadSystemTicks returns the cumulative system-wide CPU time in clock
// ticks from the aggregate "cpu" line of /proc/stat, or 0 if the line
// cannot be read. Zero makes the caller's delta collapse, which in
// turn pins every CPU percentage at 0 for that cycle.
func ReadSystemTicks(root string) uint64 {
	f, err := os.Open(root + "/stat")
	if err != nil {
		return 0
	}
	defer f.Close()

	reader := bufio.NewReader(f)
	line, err := reader.ReadString('\n')
	if err != nil {
		return 0
	}
	return parseSystemTicks(line)
}

// parseSystemTicks sums the first eight counters of the aggregate cpu
// line: user nice system idle iowait irq softirq steal. Later columns
// (guest, guest_nice) are already folded into user/nice by the kernel
// and must not be counted twice.
func parseSystemTicks(line string) uint64 {
	fields := strings.Fields(line)
	if len(fields) < 2 || fields[0] != "cpu" {
		return 0
	}

	counters := fields[1:]
	if len(counters) > 8 {
		counters = counters[:8]
	}

	var total uint64
	for _, tok := range counters {
		v, err := strconv.ParseUint(tok, 10, 64)
		if err != nil {
			return 0
		}
		total += v
	}
	return total
}
