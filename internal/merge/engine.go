package merge

import (
	"slices"

	"github.com/oshokin/delivery-flow/internal/domain/flow"
)

// UnitSource returns the units mapped to a configuration group.
type UnitSource interface {
	Units(configGroup string) []flow.Unit
}

// groupKey identifies a flow group under a policy.
type groupKey struct {
	key flow.MergeKey
	// configGroup is only set under MergeByConfigGroup.
	configGroup string
	// ordinal separates records under MergeNone.
	ordinal int
}

// Merge groups the records of one category under the policy.
// Unknown policies behave like MergeNone. units may be nil.
func Merge(records []*flow.InputRecord, policy flow.MergePolicy, units UnitSource) []*flow.FlowGroup {
	var (
		groups = make([]*flow.FlowGroup, 0, len(records))
		index  = make(map[groupKey]*flow.FlowGroup, len(records))
	)

	for i, record := range records {
		key := keyFor(record, policy, i)

		group, ok := index[key]
		if !ok {
			group = &flow.FlowGroup{
				Category: record.Category,
				Key:      key.key,
			}
			index[key] = group
			groups = append(groups, group)
		}

		add(group, record, units)
	}

	return groups
}

func keyFor(record *flow.InputRecord, policy flow.MergePolicy, ordinal int) groupKey {
	key := groupKey{key: record.Key()}

	switch policy {
	case flow.MergeByConfigGroup:
		key.configGroup = record.ConfigGroup
	case flow.MergeAcrossConfigGroup:
	default:
		key.ordinal = ordinal
	}

	return key
}

// add folds the record into the group keeping first-seen order.
func add(group *flow.FlowGroup, record *flow.InputRecord, units UnitSource) {
	group.Records = append(group.Records, record)
	group.AlarmNames = appendUnique(group.AlarmNames, record.AlarmName)
	group.ConfigGroups = appendUnique(group.ConfigGroups, record.ConfigGroup)

	resolved := record.Units
	if len(resolved) == 0 && units != nil {
		resolved = units.Units(record.ConfigGroup)
	}

	for _, unit := range resolved {
		if !slices.Contains(group.Units, unit) {
			group.Units = append(group.Units, unit)
		}
	}
}

func appendUnique(values []string, value string) []string {
	if value == "" || slices.Contains(values, value) {
		return values
	}

	return append(values, value)
}
