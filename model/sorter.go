package model

import (
	"sort"
	"strings"
)

// SortKey selects the ordering applied to a snapshot.
type SortKey int

const (
	ByPid SortKey = iota
	ByName
	ByMemory
	ByCPU
)

// lessFuncs holds the canonical comparison for each key: pid and name
// ascending, memory and CPU descending. All comparisons go through
// ordering, never subtraction, so large values cannot overflow.
var lessFuncs = map[SortKey]func(a, b *ProcessRecord) bool{
	ByPid: func(a, b *ProcessRecord) bool {
		return a.Pid < b.Pid
	},
	ByName: func(a, b *ProcessRecord) bool {
		return strings.ToLower(a.Name) < strings.ToLower(b.Name)
	},
	ByMemory: func(a, b *ProcessRecord) bool {
		return a.ResidentKB > b.ResidentKB
	},
	ByCPU: func(a, b *ProcessRecord) bool {
		return a.CPUPercent > b.CPUPercent
	},
}

// Sort orders records in place. The sort is stable: equal keys keep
// their relative input order. reverse flips the canonical direction.
func Sort(records []ProcessRecord, key SortKey, reverse bool) {
	less, ok := lessFuncs[key]
	if !ok {
		less = lessFuncs[ByPid]
	}
	sort.SliceStable(records, func(i, j int) bool {
		if reverse {
			return less(&records[j], &records[i])
		}
		return less(&records[i], &records[j])
	})
}

// ColumnName returns the header label for a key.
func (k SortKey) ColumnName() string {
	switch k {
	case ByName:
		return "NAME"
	case ByMemory:
		return "RSS"
	case ByCPU:
		return "CPU"
	default:
		return "PID"
	}
}
