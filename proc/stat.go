package proc

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Stat carries the fields read from /proc/<pid>/stat that the
// collector cares about.
type Stat struct {
	Comm  string
	State byte
	Utime uint64
	Stime uint64
}

// TotalTicks is the cumulative CPU time of the process in clock ticks.
func (s Stat) TotalTicks() uint64 {
	return s.Utime + s.Stime
}

// ReadStat reads and parses /proc/<pid>/stat under root.
func ReadStat(root string, pid int) (Stat, error) {
	data, err := os.ReadFile(fmt.Sprintf("%s/%d/stat", root, pid))
	if err != nil {
		return Stat{}, err
	}
	return parseStat(string(data))
}

// parseStat interprets one stat line. The comm field is wrapped in
// parentheses and may itself contain spaces and parentheses, so the
// numeric fields are located relative to the LAST ')' in the line.
// Field numbering follows man proc(5): state is field 3, utime 14,
// stime 15 (comm is field 2).
func parseStat(line string) (Stat, error) {
	line = strings.TrimSpace(line)

	l := strings.IndexByte(line, '(')
	r := strings.LastIndexByte(line, ')')
	if l < 0 || r < 0 || r <= l {
		return Stat{}, fmt.Errorf("malformed stat line: no comm delimiters")
	}

	var st Stat
	st.Comm = line[l+1 : r]

	fields := strings.Fields(line[r+1:])
	if len(fields) < 13 {
		return Stat{}, fmt.Errorf("malformed stat line: %d fields after comm", len(fields))
	}

	// fields[0] is field 3 of the full line.
	field := func(n int) string { return fields[n-3] }

	st.State = field(3)[0]
	st.Utime, _ = strconv.ParseUint(field(14), 10, 64)
	st.Stime, _ = strconv.ParseUint(field(15), 10, 64)

	return st, nil
}
