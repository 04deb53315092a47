package inspect

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/oshokin/delivery-flow/internal/config"
	"github.com/oshokin/delivery-flow/internal/domain/flow"
	"github.com/oshokin/delivery-flow/internal/logger"
	"github.com/oshokin/delivery-flow/internal/recipient"
)

// Options controls the directive inspection.
type Options struct {
	// ConfigPath specifies the path to settings YAML file.
	ConfigPath string
	// Directives are the recipient texts to interpret.
	Directives []string
	// Out receives the table.
	Out io.Writer
}

const (
	validLabel   = "valid"
	invalidLabel = "invalid"
)

// Run parses every directive with the configured vocabularies and prints
// one row per destination.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "inspect")

	settings, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	known := recipient.NewKnown(settings.KnownRoles, settings.KnownGroups)
	destinations := recipient.ParseAll(strings.Join(opts.Directives, "\n"), known)

	logger.DebugKV(ctx, "Directives parsed",
		"directives", len(opts.Directives), "destinations", len(destinations))

	return render(opts.Out, destinations)
}

func render(out io.Writer, destinations []flow.Destination) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	_, _ = fmt.Fprintln(w, "#\tKIND\tNAME\tVALIDITY\tSOURCE")

	for i, dest := range destinations {
		validity := invalidLabel
		if dest.Valid {
			validity = validLabel
		}

		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", i+1, dest.Kind, dest.Name, validity, strings.TrimSpace(dest.Source))
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("write table: %w", err)
	}

	return nil
}
