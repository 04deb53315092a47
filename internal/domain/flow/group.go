package flow

import "strings"

// FlowGroup is one merge equivalence class of records.
type FlowGroup struct {
	// Category is the category shared by all records.
	Category Category
	// Key is the merge key shared by all records.
	Key MergeKey
	// Records are the merged records in input order.
	Records []*InputRecord
	// AlarmNames are the distinct alarm names in first-seen order.
	AlarmNames []string
	// ConfigGroups are the distinct configuration groups in first-seen order.
	ConfigGroups []string
	// Units is the union of resolved and explicit units in first-seen order.
	Units []Unit
}

// Representative returns the first record of the group.
func (g *FlowGroup) Representative() *InputRecord {
	if len(g.Records) == 0 {
		return new(InputRecord)
	}

	return g.Records[0]
}

// Name synthesizes the flow name:
// "<prefix> | <priority> | <alarm1> / <alarm2> | <group1> / <group2> | <units>".
func (g *FlowGroup) Name(prefix string) string {
	priority := g.Key.Priority
	if priority == "" {
		priority = "Normal"
	}

	unitNames := make([]string, 0, len(g.Units))
	for _, unit := range g.Units {
		unitNames = append(unitNames, unit.Name)
	}

	var builder strings.Builder

	builder.WriteString(prefix)
	builder.WriteString(" | ")
	builder.WriteString(strings.ToUpper(priority))
	builder.WriteString(" | ")
	builder.WriteString(strings.Join(g.AlarmNames, " / "))
	builder.WriteString(" | ")
	builder.WriteString(strings.Join(g.ConfigGroups, " / "))
	builder.WriteString(" | ")
	builder.WriteString(strings.Join(unitNames, " / "))

	return builder.String()
}
