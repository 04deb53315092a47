package pipeline

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/oshokin/delivery-flow/internal/assemble"
	"github.com/oshokin/delivery-flow/internal/domain/flow"
	"github.com/oshokin/delivery-flow/internal/recipient"
)

func testUnits() []flow.UnitEntry {
	return []flow.UnitEntry{
		{
			Facility:         "North",
			Unit:             "4 West",
			NoCaregiverGroup: "4W NoCare",
			ConfigGroups: map[flow.Category]string{
				flow.NurseCalls: "TestGroup",
				flow.Clinicals:  "PM-4W",
			},
		},
		{
			Facility: "South",
			Unit:     "ICU",
			ConfigGroups: map[flow.Category]string{
				flow.NurseCalls: "OtherGroup",
				flow.Clinicals:  "TestGroup",
			},
		},
	}
}

func nurseCall(alarm, configGroup string) *flow.InputRecord {
	r := &flow.InputRecord{
		Category:        flow.NurseCalls,
		ConfigGroup:     configGroup,
		AlarmName:       alarm,
		Priority:        "High",
		DeviceA:         "Vocera VCS",
		Ringtone:        "Tone 1",
		ResponseOptions: "Accept",
		InScope:         true,
	}
	r.Hops[0] = flow.Hop{Delay: "0", Recipient: "VAssign: [Room] RN"}
	r.Hops[1] = flow.Hop{Delay: "sixty", Recipient: "VGroup: Code Team"}

	return r
}

func testOptions(policy flow.MergePolicy) Options {
	return Options{
		Policy:          policy,
		Origin:          flow.NurseCalls,
		Target:          flow.Clinicals,
		Known:           recipient.NewKnown([]string{"RN"}, []string{"Code Team"}),
		Assembly:        assemble.Options{Defaults: assemble.DefaultInterfaces{Edge: true}},
		DocumentVersion: "1.1.0",
	}
}

// TestCompile_MergesByConfigGroup checks the two-alarm scenario end to end.
func TestCompile_MergesByConfigGroup(t *testing.T) {
	t.Parallel()

	input := &Input{
		Records: []*flow.InputRecord{nurseCall("Alarm1", "TestGroup"), nurseCall("Alarm2", "TestGroup")},
		Units:   testUnits(),
	}

	result, err := Compile(context.Background(), input, testOptions(flow.MergeByConfigGroup))
	require.NoError(t, err)

	doc := result.Documents[flow.NurseCalls]
	require.Len(t, doc.DeliveryFlows, 1)

	got := doc.DeliveryFlows[0]
	require.Contains(t, got.Name, "Alarm1 / Alarm2")
	require.NotContains(t, got.Name, "(2 alarms)")

	want := []flow.DestinationEntry{
		{
			Order:           0,
			FunctionalRoles: []flow.Recipient{{Name: "RN", FacilityName: "North"}},
			Groups:          []flow.Recipient{},
			DestinationType: "Normal",
		},
		{
			Order:           1,
			FunctionalRoles: []flow.Recipient{},
			Groups:          []flow.Recipient{{Name: "Code Team", FacilityName: "North"}},
			DestinationType: "Normal",
		},
		{
			Order:           2,
			FunctionalRoles: []flow.Recipient{},
			Groups:          []flow.Recipient{{Name: "4W NoCare", FacilityName: "North"}},
			DestinationType: "NoDeliveries",
		},
	}
	if diff := cmp.Diff(want, got.Destinations); diff != "" {
		t.Fatalf("destinations mismatch (-want +got):\n%s", diff)
	}

	require.Equal(t, []flow.Unit{{Facility: "North", Name: "4 West"}}, got.Units)
	require.Equal(t, 1, result.Report.Flows[flow.NurseCalls])
	require.Empty(t, result.Documents[flow.Clinicals].DeliveryFlows)
	require.Empty(t, result.Documents[flow.Orders].DeliveryFlows)
}

// TestCompile_AcrossGroupsScopesFacilities verifies facilities of every group are attached.
func TestCompile_AcrossGroupsScopesFacilities(t *testing.T) {
	t.Parallel()

	input := &Input{
		Records: []*flow.InputRecord{nurseCall("Alarm1", "TestGroup"), nurseCall("Alarm2", "OtherGroup")},
		Units:   testUnits(),
	}

	result, err := Compile(context.Background(), input, testOptions(flow.MergeAcrossConfigGroup))
	require.NoError(t, err)

	flows := result.Documents[flow.NurseCalls].DeliveryFlows
	require.Len(t, flows, 1)
	require.Contains(t, flows[0].Name, "| TestGroup / OtherGroup |")
	require.Equal(t, []flow.Recipient{
		{Name: "RN", FacilityName: "North"},
		{Name: "RN", FacilityName: "South"},
	}, flows[0].Destinations[0].FunctionalRoles)
	require.Equal(t, []flow.Unit{
		{Facility: "North", Name: "4 West"},
		{Facility: "South", Name: "ICU"},
	}, flows[0].Units)
}

// TestCompile_ReclassifiesAndFilters verifies scope filtering and target-column resolution.
func TestCompile_ReclassifiesAndFilters(t *testing.T) {
	t.Parallel()

	compliant := nurseCall("Compliant", "TestGroup")
	compliant.ComplianceFlag = "Yes"

	outOfScope := nurseCall("Ignored", "TestGroup")
	outOfScope.InScope = false

	input := &Input{
		Records: []*flow.InputRecord{nurseCall("Plain", "TestGroup"), compliant, outOfScope, nil},
		Units:   testUnits(),
	}

	result, err := Compile(context.Background(), input, testOptions(flow.MergeByConfigGroup))
	require.NoError(t, err)

	require.Equal(t, 4, result.Report.Total)
	require.Equal(t, 2, result.Report.Excluded)
	require.Equal(t, 1, result.Report.Reclassified)

	nurse := result.Documents[flow.NurseCalls].DeliveryFlows
	require.Len(t, nurse, 1)
	require.Equal(t, []string{"Plain"}, nurse[0].AlarmsAlerts)

	clinical := result.Documents[flow.Clinicals].DeliveryFlows
	require.Len(t, clinical, 1)
	require.Equal(t, []string{"Compliant"}, clinical[0].AlarmsAlerts)
	require.Contains(t, clinical[0].Name, "SEND CLINICAL")

	// TestGroup resolves through the Clinicals column to South.
	require.Equal(t, []flow.Unit{{Facility: "South", Name: "ICU"}}, clinical[0].Units)
	require.Equal(t, "South", clinical[0].Destinations[0].FunctionalRoles[0].FacilityName)

	id, ok := clinical[0].Parameter("eventIdentification")
	require.True(t, ok)
	require.Equal(t, `"Clinicals:#{id}"`, id.Value)
}

// TestCompile_ParallelMatchesSequential verifies parallel mode is deterministic.
func TestCompile_ParallelMatchesSequential(t *testing.T) {
	t.Parallel()

	compliant := nurseCall("Compliant", "TestGroup")
	compliant.ComplianceFlag = "y"

	order := nurseCall("Order1", "OtherGroup")
	order.Category = flow.Orders

	input := &Input{
		Records: []*flow.InputRecord{nurseCall("A", "TestGroup"), compliant, order, nurseCall("B", "OtherGroup")},
		Units:   testUnits(),
	}

	sequential, err := Compile(context.Background(), input, testOptions(flow.MergeAcrossConfigGroup))
	require.NoError(t, err)

	opts := testOptions(flow.MergeAcrossConfigGroup)
	opts.Parallel = true

	parallel, err := Compile(context.Background(), input, opts)
	require.NoError(t, err)

	for _, category := range flow.Categories() {
		want, err := sequential.Documents[category].Marshal()
		require.NoError(t, err)

		got, err := parallel.Documents[category].Marshal()
		require.NoError(t, err)

		require.Equal(t, string(want), string(got), category)
	}
}

// TestCompile_Canceled verifies a canceled context aborts the run.
func TestCompile_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, parallel := range []bool{false, true} {
		opts := testOptions(flow.MergeNone)
		opts.Parallel = parallel

		_, err := Compile(ctx, &Input{Records: []*flow.InputRecord{nurseCall("A", "TestGroup")}}, opts)
		require.ErrorIs(t, err, context.Canceled)
	}
}

// TestCompile_EmptyInput verifies every category gets an empty document.
func TestCompile_EmptyInput(t *testing.T) {
	t.Parallel()

	result, err := Compile(context.Background(), nil, testOptions(flow.MergeNone))
	require.NoError(t, err)

	for _, category := range flow.Categories() {
		doc := result.Documents[category]
		require.Equal(t, "1.1.0", doc.Version)
		require.NotNil(t, doc.DeliveryFlows)
		require.Empty(t, doc.DeliveryFlows)
	}
}

// TestParseDelay verifies numeric delays and the zero fallback.
func TestParseDelay(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	require.Equal(t, 60, parseDelay(ctx, " 60 "))
	require.Zero(t, parseDelay(ctx, ""))
	require.Zero(t, parseDelay(ctx, "sixty"))
	require.Zero(t, parseDelay(ctx, "-5"))
}
