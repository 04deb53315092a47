package flow

import (
	"errors"
	"fmt"
	"strings"
)

// MergePolicy controls how records with equal keys are combined.
type MergePolicy string

const (
	// MergeNone keeps every record as its own flow.
	MergeNone MergePolicy = "none"
	// MergeByConfigGroup merges equal keys within one configuration group.
	MergeByConfigGroup MergePolicy = "by_config_group"
	// MergeAcrossConfigGroup merges equal keys regardless of configuration group.
	MergeAcrossConfigGroup MergePolicy = "across_config_group"
)

// ErrUnknownMergePolicy is returned for unrecognized policy names.
var ErrUnknownMergePolicy = errors.New("unknown merge policy")

// ParseMergePolicy converts a policy name into a MergePolicy.
// Dashes, spaces and letter case are ignored.
func ParseMergePolicy(s string) (MergePolicy, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	normalized = strings.NewReplacer("-", "_", " ", "_").Replace(normalized)

	switch MergePolicy(normalized) {
	case MergeNone, MergeByConfigGroup, MergeAcrossConfigGroup:
		return MergePolicy(normalized), nil
	case "merge_by_config_group", "by_group":
		return MergeByConfigGroup, nil
	case "merge_across_config_group", "across_group":
		return MergeAcrossConfigGroup, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMergePolicy, s)
	}
}
