package model

// DefaultHZ is the detected clock tick rate (CLK_TCK), reassigned at
// startup by the CLI after probing sysconf.
var DefaultHZ = 100

const (
	// DefaultCapacity bounds how many processes a single snapshot may
	// hold. Enumeration past this point is silently truncated.
	DefaultCapacity = 2048

	// NameWidth is the fixed display width Name is truncated to.
	NameWidth = 32

	// UnknownName is substituted when a process comm cannot be read.
	UnknownName = "unknown"
)

// ProcessRecord is one process observed at one snapshot instant.
type ProcessRecord struct {
	Pid        int
	Name       string // comm, truncated to NameWidth, never empty
	Owner      string // username, or numeric UID when lookup fails
	ResidentKB int64  // VmRSS in kilobytes
	CPUPercent float64
	MemPercent float64
	State      byte   // R, S, D, Z, ...
	TotalTicks uint64 // cumulative utime+stime
}

// Snapshot is one consistent, point-in-time ordered list of process
// records. It is rebuilt from scratch every refresh; pids are unique
// within one snapshot.
type Snapshot []ProcessRecord

// TruncateName clamps a comm string to NameWidth and substitutes the
// sentinel for empty input.
func TruncateName(name string) string {
	if name == "" {
		return UnknownName
	}
	if len(name) > NameWidth {
		return name[:NameWidth]
	}
	return name
}
