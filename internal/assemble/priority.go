package assemble

import "strings"

// Output priority codes.
const (
	priorityNormal = "normal"
	priorityHigh   = "high"
	priorityUrgent = "urgent"
)

// vcsPriorities maps raw priorities for the VCS/VMP family.
//
//nolint:gochecknoglobals // Immutable lookup table.
var vcsPriorities = map[string]string{
	"":            priorityNormal,
	"normal":      priorityNormal,
	"normal(vcs)": priorityNormal,
	"high":        priorityHigh,
	"high(vcs)":   priorityHigh,
	"urgent":      priorityUrgent,
	"urgent(vcs)": priorityUrgent,
}

// edgePriorities maps raw priorities for the Edge family.
//
//nolint:gochecknoglobals // Immutable lookup table.
var edgePriorities = map[string]string{
	"":             priorityNormal,
	"low":          priorityNormal,
	"low(edge)":    priorityNormal,
	"medium":       priorityHigh,
	"medium(edge)": priorityHigh,
	"high":         priorityUrgent,
	"high(edge)":   priorityUrgent,
}

// mapPriority converts raw priority text with the table of the device family.
// Unknown text maps to normal.
func mapPriority(raw string, f family) string {
	table := vcsPriorities
	if f == familyEdge {
		table = edgePriorities
	}

	key := strings.ToLower(strings.Join(strings.Fields(raw), ""))
	if code, ok := table[key]; ok {
		return code
	}

	return priorityNormal
}
