package recipient

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/delivery-flow/internal/domain/flow"
)

func testKnown() Known {
	return NewKnown([]string{"CNA", "RN", "Charge Nurse"}, []string{"Code Team", "Rapid Response"})
}

// TestParse_RoleAssignmentWithBracket verifies bracket context is discarded, not matched.
func TestParse_RoleAssignmentWithBracket(t *testing.T) {
	t.Parallel()

	d := Parse("VAssign: [Room] CNA", NewKnown([]string{"CNA"}, nil))
	require.Equal(t, flow.RoleAssignment, d.Kind)
	require.Equal(t, "CNA", d.Name)
	require.True(t, d.Valid)
	require.Equal(t, "VAssign: [Room] CNA", d.Source)
}

// TestParse_Keywords covers each keyword spelling of the grammar table.
func TestParse_Keywords(t *testing.T) {
	t.Parallel()

	cases := []struct {
		directive string
		kind      flow.DestinationKind
		name      string
		valid     bool
	}{
		{"VAssign:[Room] RN", flow.RoleAssignment, "RN", true},
		{"Assign: charge nurse", flow.RoleAssignment, "charge nurse", true},
		{"Assigned: CNA", flow.RoleAssignment, "CNA", true},
		{"vassign RN", flow.RoleAssignment, "RN", true},
		{"VAssign: Room RN", flow.RoleAssignment, "RN", true},
		{"VAssign: Unknown Role", flow.RoleAssignment, "Unknown Role", false},
		{"VGroup: Code Team", flow.GroupAssignment, "Code Team", true},
		{"group: [Unit] rapid response", flow.GroupAssignment, "rapid response", true},
		{"VGroup: Night Shift", flow.GroupAssignment, "Night Shift", false},
	}

	known := testKnown()
	for _, tc := range cases {
		d := Parse(tc.directive, known)
		require.Equal(t, tc.kind, d.Kind, tc.directive)
		require.Equal(t, tc.name, d.Name, tc.directive)
		require.Equal(t, tc.valid, d.Valid, tc.directive)
	}
}

// TestParse_RawGroup verifies the group-destination marker keeps the whole token.
func TestParse_RawGroup(t *testing.T) {
	t.Parallel()

	known := testKnown()

	d := Parse("VGroup: g-ICU-Rapid", known)
	require.Equal(t, flow.RawGroup, d.Kind)
	require.Equal(t, "g-ICU-Rapid", d.Name)

	d = Parse("G-4West Room Team", known)
	require.Equal(t, flow.RawGroup, d.Kind)
	require.Equal(t, "G-4West Room Team", d.Name)

	d = Parse("VAssign: Room g-float", known)
	require.Equal(t, flow.RawGroup, d.Kind)
	require.Equal(t, "g-float", d.Name)
}

// TestParse_ContextWordWithoutKeyword verifies "Room <role>" forms without a keyword.
func TestParse_ContextWordWithoutKeyword(t *testing.T) {
	t.Parallel()

	d := Parse("Room CNA", testKnown())
	require.Equal(t, flow.RoleAssignment, d.Kind)
	require.Equal(t, "CNA", d.Name)
	require.True(t, d.Valid)
}

// TestParse_Passthrough verifies unmatched text is kept verbatim.
func TestParse_Passthrough(t *testing.T) {
	t.Parallel()

	known := testKnown()

	d := Parse(" Charge Nurse Pager ", known)
	require.Equal(t, flow.Passthrough, d.Kind)
	require.Equal(t, " Charge Nurse Pager ", d.Name)
	require.False(t, d.Valid)

	// Keyword with a too short candidate falls back to passthrough.
	d = Parse("VAssign: [Room] X", known)
	require.Equal(t, flow.Passthrough, d.Kind)
	require.Equal(t, "VAssign: [Room] X", d.Name)
}

// TestParse_AbsorbsRemainingText verifies a keyword without a delimiter absorbs the line.
func TestParse_AbsorbsRemainingText(t *testing.T) {
	t.Parallel()

	d := Parse("Mixed content VAssign: RN then notify charge nurse", testKnown())
	require.Equal(t, flow.RoleAssignment, d.Kind)
	require.Equal(t, "RN then notify charge nurse", d.Name)
	require.False(t, d.Valid)

	d = Parse("VAssign: RN, VGroup: Code Team", testKnown())
	require.Equal(t, "RN", d.Name)
}

// TestParseAll splits lines and delimiters into separate destinations.
func TestParseAll(t *testing.T) {
	t.Parallel()

	got := ParseAll("VAssign: [Room] CNA; VGroup: Code Team\n\nVAssign: RN, g-Float-Pool\r\n", testKnown())
	require.Len(t, got, 4)

	require.Equal(t, flow.RoleAssignment, got[0].Kind)
	require.Equal(t, "CNA", got[0].Name)
	require.Equal(t, flow.GroupAssignment, got[1].Kind)
	require.Equal(t, "Code Team", got[1].Name)
	require.Equal(t, flow.RoleAssignment, got[2].Kind)
	require.Equal(t, "RN", got[2].Name)
	require.Equal(t, flow.RawGroup, got[3].Kind)
	require.Equal(t, "g-Float-Pool", got[3].Name)

	require.Empty(t, ParseAll(" , ;\n", testKnown()))
}
