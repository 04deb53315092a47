package compile

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/oshokin/delivery-flow/internal/assemble"
	"github.com/oshokin/delivery-flow/internal/config"
	"github.com/oshokin/delivery-flow/internal/domain/flow"
	"github.com/oshokin/delivery-flow/internal/logger"
	"github.com/oshokin/delivery-flow/internal/pipeline"
	"github.com/oshokin/delivery-flow/internal/recipient"
	"github.com/oshokin/delivery-flow/internal/repository/document"
	"github.com/oshokin/delivery-flow/internal/repository/records"
	"github.com/oshokin/delivery-flow/internal/version"
)

// Options controls a compilation run. Empty fields keep the configured values.
type Options struct {
	// ConfigPath specifies the path to settings YAML file.
	ConfigPath string
	// InputPath is the records file (.yaml, .yml, .xlsx or .xlsm).
	InputPath string
	// OutputDir overrides the configured output directory.
	OutputDir string
	// MergePolicy overrides the configured merge policy.
	MergePolicy string
	// LogLevel overrides the configured log level.
	LogLevel string
	// Parallel forces concurrent category compilation.
	Parallel bool
	// Stdout, when set, receives the documents instead of the output directory.
	Stdout io.Writer
}

// publisher receives compiled documents.
type publisher interface {
	Save(ctx context.Context, category flow.Category, doc *flow.Document) error
}

// Run loads settings and input, compiles and publishes the documents.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "compile")
	ctx = logger.WithKV(ctx, "run_id", uuid.NewString())

	settings, err := settingsFor(opts)
	if err != nil {
		return err
	}

	level, _ := logger.ParseLogLevel(settings.LogLevel)
	logger.SetLevel(level)
	logger.InfoKV(ctx, "Compilation started",
		append(version.Current().KV(), "input", opts.InputPath, "policy", settings.MergePolicy)...)

	source, err := records.Open(opts.InputPath)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}

	var out publisher = document.NewFileRepository(settings.OutputDir)
	if opts.Stdout != nil {
		out = newStreamPublisher(opts.Stdout)
	}

	if err = execute(ctx, settings, source, out); err != nil {
		logger.ErrorKV(ctx, "Compilation failed", "error", err)

		return err
	}

	return nil
}

// settingsFor loads the configuration and applies the option overrides.
func settingsFor(opts *Options) (*config.Config, error) {
	settings, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	if opts.MergePolicy != "" {
		settings.MergePolicy = flow.MergePolicy(opts.MergePolicy)
	}

	if opts.LogLevel != "" {
		settings.LogLevel = opts.LogLevel
	}

	if opts.OutputDir != "" {
		settings.OutputDir = opts.OutputDir
	}

	if opts.Parallel {
		settings.Parallel = true
	}

	if err = config.Validate(settings); err != nil {
		return nil, fmt.Errorf("validate settings: %w", err)
	}

	return settings, nil
}

// execute compiles the input of source and hands every document to out
// in category order.
func execute(ctx context.Context, settings *config.Config, source records.Source, out publisher) error {
	input, err := source.Load(ctx)
	if err != nil {
		return fmt.Errorf("load input: %w", err)
	}

	result, err := pipeline.Compile(ctx, input, pipelineOptions(settings))
	if err != nil {
		return fmt.Errorf("compile: %w", err)
	}

	for _, category := range flow.Categories() {
		if err = out.Save(ctx, category, result.Documents[category]); err != nil {
			return fmt.Errorf("publish %s: %w", category, err)
		}
	}

	report := result.Report
	logger.InfoKV(ctx, "Compilation finished",
		"total", report.Total,
		"excluded", report.Excluded,
		"reclassified", report.Reclassified,
		string(flow.NurseCalls), report.Flows[flow.NurseCalls],
		string(flow.Clinicals), report.Flows[flow.Clinicals],
		string(flow.Orders), report.Flows[flow.Orders])

	return nil
}

// pipelineOptions maps validated settings to pipeline options.
func pipelineOptions(settings *config.Config) pipeline.Options {
	return pipeline.Options{
		Policy: settings.MergePolicy,
		Origin: settings.Reclassification.Origin,
		Target: settings.Reclassification.Target,
		Known:  recipient.NewKnown(settings.KnownRoles, settings.KnownGroups),
		Assembly: assemble.Options{
			Defaults: assemble.DefaultInterfaces{
				Edge: settings.DefaultInterfaces.Edge,
				VMP:  settings.DefaultInterfaces.VMP,
			},
			Prefixes: settings.FlowPrefixes,
		},
		DocumentVersion: settings.DocumentVersion,
		Parallel:        settings.Parallel,
	}
}
