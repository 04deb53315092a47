package compile

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/delivery-flow/internal/config"
	"github.com/oshokin/delivery-flow/internal/domain/flow"
	"github.com/oshokin/delivery-flow/internal/pipeline"
	"github.com/oshokin/delivery-flow/internal/repository/document"
	"github.com/oshokin/delivery-flow/internal/repository/records"
)

var (
	errTestLoad = errors.New("test load error")
	errTestSave = errors.New("test save error")
)

const testInput = `units:
  - facility: North
    unit: 4 West
    no_caregiver_group: 4W NoCare
    config_groups:
      Nurse Call: TestGroup
records:
  - category: NurseCalls
    config_group: TestGroup
    alarm_name: Alarm1
    priority: High
    device_a: Vocera VCS
    response_options: Accept, Decline
    hops:
      - delay: "0"
        recipient: "VAssign: [Room] RN"
  - category: NurseCalls
    config_group: TestGroup
    alarm_name: Alarm2
    priority: High
    device_a: Vocera VCS
    response_options: Accept, Decline
    hops:
      - delay: "0"
        recipient: "VAssign: [Room] RN"
`

// memorySource is an in-memory records.Source for tests.
type memorySource struct {
	// input is returned from Load.
	input *pipeline.Input
	// err is returned from Load.
	err error
}

// Load returns the configured input and error.
func (m *memorySource) Load(context.Context) (*pipeline.Input, error) {
	return m.input, m.err
}

// memoryPublisher stores published documents in memory.
type memoryPublisher struct {
	// saved holds documents by category.
	saved map[flow.Category]*flow.Document
	// order records the publication order.
	order []flow.Category
	// err is returned from Save.
	err error
}

// Save stores the document unless an error is configured.
func (m *memoryPublisher) Save(_ context.Context, category flow.Category, doc *flow.Document) error {
	if m.err != nil {
		return m.err
	}

	if m.saved == nil {
		m.saved = make(map[flow.Category]*flow.Document)
	}

	m.saved[category] = doc
	m.order = append(m.order, category)

	return nil
}

func writeInput(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "input.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testInput), config.DefaultFilePermissions))

	return path
}

// TestRun_WritesDocuments verifies one document per category lands in the output directory.
func TestRun_WritesDocuments(t *testing.T) {
	t.Parallel()

	outputDir := filepath.Join(t.TempDir(), "out")

	err := Run(context.Background(), &Options{
		InputPath: writeInput(t),
		OutputDir: outputDir,
	})
	require.NoError(t, err)

	repo := document.NewFileRepository(outputDir)

	nurseCalls, err := repo.Load(context.Background(), flow.NurseCalls)
	require.NoError(t, err)
	require.Equal(t, config.DefaultDocumentVersion, nurseCalls.Version)
	require.Len(t, nurseCalls.DeliveryFlows, 1)
	require.Equal(t, "SEND NURSECALL | HIGH | Alarm1 / Alarm2 | TestGroup | 4 West", nurseCalls.DeliveryFlows[0].Name)

	for _, category := range []flow.Category{flow.Clinicals, flow.Orders} {
		doc, loadErr := repo.Load(context.Background(), category)
		require.NoError(t, loadErr)
		require.Empty(t, doc.DeliveryFlows)
	}
}

// TestRun_Stdout verifies documents are streamed when a writer is given.
func TestRun_Stdout(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	outputDir := filepath.Join(t.TempDir(), "out")

	err := Run(context.Background(), &Options{
		InputPath:   writeInput(t),
		OutputDir:   outputDir,
		MergePolicy: "none",
		Stdout:      &buf,
	})
	require.NoError(t, err)

	require.Equal(t, 3, strings.Count(buf.String(), `"deliveryFlows"`))
	require.Contains(t, buf.String(), "SEND NURSECALL | HIGH | Alarm1 | TestGroup | 4 West")
	require.Contains(t, buf.String(), "SEND NURSECALL | HIGH | Alarm2 | TestGroup | 4 West")

	_, err = os.Stat(outputDir)
	require.ErrorIs(t, err, os.ErrNotExist)
}

// TestRun_Errors verifies invalid options surface as wrapped errors.
func TestRun_Errors(t *testing.T) {
	t.Parallel()

	err := Run(context.Background(), &Options{InputPath: "input.csv"})
	require.ErrorIs(t, err, records.ErrUnsupportedFormat)

	err = Run(context.Background(), &Options{InputPath: writeInput(t), MergePolicy: "sideways"})
	require.ErrorIs(t, err, flow.ErrUnknownMergePolicy)

	err = Run(context.Background(), &Options{ConfigPath: filepath.Join(t.TempDir(), "missing.yaml")})
	require.ErrorIs(t, err, os.ErrNotExist)
}

// TestSettingsFor_Overrides verifies option values override configured ones.
func TestSettingsFor_Overrides(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "settings.yaml")
	cfg := config.Default()
	cfg.OutputDir = "configured"
	cfg.KnownRoles = []string{"RN"}
	require.NoError(t, config.Save(path, cfg))

	settings, err := settingsFor(&Options{ConfigPath: path})
	require.NoError(t, err)
	require.Equal(t, "configured", settings.OutputDir)
	require.Equal(t, flow.MergeByConfigGroup, settings.MergePolicy)
	require.False(t, settings.Parallel)

	settings, err = settingsFor(&Options{
		ConfigPath:  path,
		OutputDir:   "override",
		MergePolicy: "across-config-group",
		LogLevel:    "debug",
		Parallel:    true,
	})
	require.NoError(t, err)
	require.Equal(t, "override", settings.OutputDir)
	require.Equal(t, flow.MergeAcrossConfigGroup, settings.MergePolicy)
	require.Equal(t, "debug", settings.LogLevel)
	require.True(t, settings.Parallel)
	require.Equal(t, []string{"RN"}, settings.KnownRoles)
}

// TestExecute_PublishesInCategoryOrder verifies every category is published in fixed order.
func TestExecute_PublishesInCategoryOrder(t *testing.T) {
	t.Parallel()

	source := &memorySource{input: &pipeline.Input{
		Records: []*flow.InputRecord{{
			Category:    flow.Orders,
			ConfigGroup: "G",
			AlarmName:   "Order1",
			InScope:     true,
		}},
	}}
	out := new(memoryPublisher)

	require.NoError(t, execute(context.Background(), config.Default(), source, out))
	require.Equal(t, flow.Categories(), out.order)
	require.Len(t, out.saved[flow.Orders].DeliveryFlows, 1)
	require.Empty(t, out.saved[flow.NurseCalls].DeliveryFlows)
}

// TestExecute_Errors verifies source and publisher failures are wrapped.
func TestExecute_Errors(t *testing.T) {
	t.Parallel()

	err := execute(context.Background(), config.Default(), &memorySource{err: errTestLoad}, new(memoryPublisher))
	require.ErrorIs(t, err, errTestLoad)

	err = execute(context.Background(), config.Default(),
		&memorySource{input: new(pipeline.Input)}, &memoryPublisher{err: errTestSave})
	require.ErrorIs(t, err, errTestSave)
}
