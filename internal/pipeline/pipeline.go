package pipeline

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/oshokin/delivery-flow/internal/assemble"
	"github.com/oshokin/delivery-flow/internal/domain/flow"
	"github.com/oshokin/delivery-flow/internal/facility"
	"github.com/oshokin/delivery-flow/internal/logger"
	"github.com/oshokin/delivery-flow/internal/merge"
	"github.com/oshokin/delivery-flow/internal/recipient"
	"github.com/oshokin/delivery-flow/internal/reclassify"
)

// Input is the fully loaded input of a compilation run.
type Input struct {
	// Records are the alarm definitions in source order.
	Records []*flow.InputRecord
	// Units are the unit rows used to resolve configuration groups.
	Units []flow.UnitEntry
}

// Options configure a compilation run.
type Options struct {
	// Policy is the merge policy.
	Policy flow.MergePolicy
	// Origin is the category compliant records are moved from.
	Origin flow.Category
	// Target is the category compliant records are moved to.
	Target flow.Category
	// Known holds the role and group vocabularies.
	Known recipient.Known
	// Assembly configures the parameter assembler.
	Assembly assemble.Options
	// DocumentVersion is the version tag of each document.
	DocumentVersion string
	// Parallel compiles categories concurrently.
	Parallel bool
}

// Report summarizes a compilation run.
type Report struct {
	// Total is the number of input records.
	Total int
	// Excluded is the number of out-of-scope records.
	Excluded int
	// Reclassified is the number of records moved by the reclassifier.
	Reclassified int
	// Flows is the number of delivery flows per category.
	Flows map[flow.Category]int
}

// Result holds the compiled documents.
type Result struct {
	// Documents holds one document per category.
	Documents map[flow.Category]*flow.Document
	// Report summarizes the run.
	Report Report
}

// Compile runs the whole pipeline.
func Compile(ctx context.Context, input *Input, opts Options) (*Result, error) {
	ctx = logger.WithName(ctx, "pipeline")

	if input == nil {
		input = new(Input)
	}

	inScope := make([]*flow.InputRecord, 0, len(input.Records))
	for _, record := range input.Records {
		if record != nil && record.InScope {
			inScope = append(inScope, record)
		}
	}

	directory := facility.NewDirectory(input.Units)
	reclassifier := reclassify.New(opts.Origin, opts.Target, directory)
	records := reclassifier.Reclassify(inScope)

	report := Report{
		Total:        len(input.Records),
		Excluded:     len(input.Records) - len(inScope),
		Reclassified: reclassifier.Count(),
		Flows:        make(map[flow.Category]int, len(flow.Categories())),
	}

	logger.InfoKV(ctx, "Records prepared",
		"total", report.Total, "excluded", report.Excluded, "reclassified", report.Reclassified)

	categories := flow.Categories()
	buckets := make([][]*flow.InputRecord, len(categories))

	for _, record := range records {
		i := slices.Index(categories, record.Category)
		if i < 0 {
			logger.WarnKV(ctx, "Skipping record of unknown category",
				"category", record.Category, "alarm", record.AlarmName)

			continue
		}

		buckets[i] = append(buckets[i], record)
	}

	documents, err := compileAll(ctx, categories, buckets, directory, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Documents: make(map[flow.Category]*flow.Document, len(categories)),
		Report:    report,
	}

	for i, category := range categories {
		result.Documents[category] = documents[i]
		result.Report.Flows[category] = len(documents[i].DeliveryFlows)
	}

	return result, nil
}

// compileAll compiles every bucket, concurrently when requested.
// documents[i] always belongs to categories[i].
func compileAll(
	ctx context.Context,
	categories []flow.Category,
	buckets [][]*flow.InputRecord,
	directory *facility.Directory,
	opts Options,
) ([]*flow.Document, error) {
	documents := make([]*flow.Document, len(categories))

	if !opts.Parallel {
		for i, category := range categories {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("compile %s: %w", category, err)
			}

			documents[i] = compileCategory(ctx, category, buckets[i], directory.For(category), opts)
		}

		return documents, nil
	}

	g, gctx := errgroup.WithContext(ctx)

	for i, category := range categories {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return fmt.Errorf("compile %s: %w", category, err)
			}

			documents[i] = compileCategory(gctx, category, buckets[i], directory.For(category), opts)

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return documents, nil
}

// compileCategory merges and assembles the records of one category.
func compileCategory(
	ctx context.Context,
	category flow.Category,
	records []*flow.InputRecord,
	resolver *facility.Resolver,
	opts Options,
) *flow.Document {
	ctx = logger.WithKV(ctx, "category", category)

	var (
		groups    = merge.Merge(records, opts.Policy, resolver)
		assembler = assemble.New(opts.Assembly)
		document  = &flow.Document{
			Version:       opts.DocumentVersion,
			DeliveryFlows: make([]flow.DeliveryFlow, 0, len(groups)),
		}
	)

	for _, group := range groups {
		hops := resolveHops(ctx, group, resolver, opts.Known)
		document.DeliveryFlows = append(document.DeliveryFlows,
			assembler.Assemble(group, hops, facilityData(group, resolver)))
	}

	logger.InfoKV(ctx, "Category compiled",
		"records", len(records), "flows", len(document.DeliveryFlows), "policy", opts.Policy)

	return document
}

// resolveHops parses the hop directives of the group and scopes them to
// every facility its configuration groups resolve to.
func resolveHops(
	ctx context.Context,
	group *flow.FlowGroup,
	resolver *facility.Resolver,
	known recipient.Known,
) []flow.HopDestinations {
	configGroups := group.ConfigGroups
	if len(configGroups) == 0 {
		configGroups = []string{""}
	}

	var hops []flow.HopDestinations

	for _, hop := range group.Representative().Hops {
		if hop.IsEmpty() {
			continue
		}

		parsed := recipient.ParseAll(hop.Recipient, known)
		for _, d := range parsed {
			if !d.Valid {
				logger.DebugKV(ctx, "Unrecognized recipient",
					"kind", d.Kind.String(), "name", d.Name, "directive", d.Source)
			}
		}

		resolved := flow.HopDestinations{Delay: parseDelay(ctx, hop.Delay)}
		for _, configGroup := range configGroups {
			resolved.Destinations = append(resolved.Destinations, resolver.Attach(parsed, configGroup)...)
		}

		hops = append(hops, resolved)
	}

	return hops
}

// facilityData picks the no-caregiver group and its facility for the group.
// The record's own no-caregiver group wins over the unit's.
func facilityData(group *flow.FlowGroup, resolver *facility.Resolver) assemble.FacilityData {
	data := assemble.FacilityData{
		NoCaregiverGroup: group.Key.NoCaregiverGroup,
		Facility:         group.Representative().Facility,
	}

	for _, configGroup := range group.ConfigGroups {
		res, ok := resolver.Resolve(configGroup)
		if !ok {
			continue
		}

		if data.Facility == "" {
			data.Facility = res.Facility
		}

		if data.NoCaregiverGroup == "" && res.NoCaregiverGroup != "" {
			data.NoCaregiverGroup = res.NoCaregiverGroup
		}
	}

	return data
}

// parseDelay reads a delay in whole seconds; anything else is 0.
func parseDelay(ctx context.Context, s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}

	delay, err := strconv.Atoi(s)
	if err != nil || delay < 0 {
		logger.DebugKV(ctx, "Unrecognized delay, using 0", "delay", s)

		return 0
	}

	return delay
}
