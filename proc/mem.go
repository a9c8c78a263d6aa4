package proc

import (
	"bufio"
	"os"
	"strconv"
	"strings"
)

// ReadMemTotalKB returns total system memory in kilobytes from
// /proc/meminfo, or 0 on failure. Callers must guard the division.
func ReadMemTotalKB(root string) int64 {
	f, err := os.Open(root + "/meminfo")
	if err != nil {
		return 0
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "MemTotal:") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) >= 2 {
			if v, err := strconv.ParseInt(fields[1], 10, 64); err == nil && v > 0 {
				return v
			}
		}
		return 0
	}
	return 0
}
