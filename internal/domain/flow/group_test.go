package flow

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestFlowGroupName checks every section of the synthesized flow name.
func TestFlowGroupName(t *testing.T) {
	t.Parallel()

	g := &FlowGroup{
		Key:          MergeKey{Priority: "High"},
		AlarmNames:   []string{"Alarm1", "Alarm2"},
		ConfigGroups: []string{"TestGroup", "OtherGroup"},
		Units:        []Unit{{Facility: "North", Name: "4W"}},
	}

	require.Equal(t, "SEND NURSECALL | HIGH | Alarm1 / Alarm2 | TestGroup / OtherGroup | 4W", g.Name("SEND NURSECALL"))

	g.Key.Priority = ""
	g.Units = nil
	require.Equal(t, "SEND CLINICAL | NORMAL | Alarm1 / Alarm2 | TestGroup / OtherGroup | ", g.Name("SEND CLINICAL"))
}

// TestParseMergePolicy verifies accepted spellings and the error path.
func TestParseMergePolicy(t *testing.T) {
	t.Parallel()

	cases := map[string]MergePolicy{
		"none":                      MergeNone,
		"by-config-group":           MergeByConfigGroup,
		"MERGE_ACROSS_CONFIG_GROUP": MergeAcrossConfigGroup,
		"across group":              MergeAcrossConfigGroup,
	}
	for s, want := range cases {
		got, err := ParseMergePolicy(s)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}

	_, err := ParseMergePolicy("sometimes")
	require.ErrorIs(t, err, ErrUnknownMergePolicy)
}

// TestParseCategory verifies category spellings from loaders and config.
func TestParseCategory(t *testing.T) {
	t.Parallel()

	c, err := ParseCategory("Nurse Call")
	require.NoError(t, err)
	require.Equal(t, NurseCalls, c)

	c, err = ParseCategory("Patient Monitoring")
	require.NoError(t, err)
	require.Equal(t, Clinicals, c)

	_, err = ParseCategory("Lab")
	require.ErrorIs(t, err, ErrUnknownCategory)
}

// TestLiteral verifies JSON literal encoding without HTML escaping.
func TestLiteral(t *testing.T) {
	t.Parallel()

	require.Equal(t, `"Accept/Decline"`, Literal("Accept/Decline"))
	require.Equal(t, `["Decline"]`, Literal([]string{"Decline"}))
	require.Equal(t, `"a<b>"`, Literal("a<b>"))
}
