package records

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/oshokin/delivery-flow/internal/pipeline"
)

// Source loads a complete compilation input.
type Source interface {
	Load(ctx context.Context) (*pipeline.Input, error)
}

var (
	// ErrUnsupportedFormat is returned for unknown file extensions.
	ErrUnsupportedFormat = errors.New("unsupported input format")
	// ErrMissingHeader is returned when a required column is absent.
	ErrMissingHeader = errors.New("missing required header")
	// ErrMissingSheet is returned when the unit breakdown sheet is absent.
	ErrMissingSheet = errors.New("missing required sheet")
)

// Open picks a source by file extension.
//
//nolint:ireturn // Callers only need the Source behavior.
func Open(path string) (Source, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return NewYAMLSource(path), nil
	case ".xlsx", ".xlsm":
		return NewWorkbookSource(path), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}
