package proc

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Status carries the fields read from /proc/<pid>/status: the real UID
// and the resident set size. One open file serves both, which is why
// ownership is resolved from status rather than a stat(2) on the
// directory.
type Status struct {
	UID     uint32
	VmRSSKB int64
}

// ReadStatus reads and parses /proc/<pid>/status under root.
func ReadStatus(root string, pid int) (Status, error) {
	f, err := os.Open(fmt.Sprintf("%s/%d/status", root, pid))
	if err != nil {
		return Status{}, err
	}
	defer f.Close()

	var st Status
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "Uid:"):
			fields := strings.Fields(line)
			if len(fields) >= 2 {
				if v, err := strconv.ParseUint(fields[1], 10, 32); err == nil {
					st.UID = uint32(v)
				}
			}
		case strings.HasPrefix(line, "VmRSS:"):
			fields := strings.Fields(line)
			if len(fields) >= 2 {
				if v, err := strconv.ParseInt(fields[1], 10, 64); err == nil && v > 0 {
					st.VmRSSKB = v
				}
			}
		}
	}
	return st, scanner.Err()
}
