package monitor

import (
	"strings"

	"github.com/Tacitus-SL/process-browser/model"
)

// ViewState is the filter and ordering the presentation layer passes
// by value into Apply on every cycle.
type ViewState struct {
	Filter  string
	Sort    model.SortKey
	Reverse bool
}

// Apply derives the displayed sequence from a snapshot: a
// case-insensitive substring filter on Name followed by a stable sort.
// The input snapshot is never mutated; the result is a new slice. An
// empty filter is the identity.
func Apply(snap model.Snapshot, view ViewState) model.Snapshot {
	out := filter(snap, view.Filter)
	model.Sort(out, view.Sort, view.Reverse)
	return out
}

func filter(snap model.Snapshot, needle string) model.Snapshot {
	out := make(model.Snapshot, 0, len(snap))
	if needle == "" {
		return append(out, snap...)
	}

	needle = strings.ToLower(needle)
	for _, rec := range snap {
		if strings.Contains(strings.ToLower(rec.Name), needle) {
			out = append(out, rec)
		}
	}
	return out
}
