package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/oshokin/delivery-flow/internal/domain/flow"
	"github.com/oshokin/delivery-flow/internal/logger"
)

// Config holds the settings of a compilation run.
type Config struct {
	// MergePolicy selects how equal records are merged.
	MergePolicy flow.MergePolicy `yaml:"merge_policy"`
	// DefaultInterfaces are the fallback interfaces for keyword-less devices.
	DefaultInterfaces DefaultInterfaces `yaml:"default_interfaces"`
	// Reclassification moves compliant records between categories.
	Reclassification Reclassification `yaml:"reclassification"`
	// DocumentVersion is the version tag of every output document.
	DocumentVersion string `yaml:"document_version"`
	// KnownRoles are the role names recipient directives are validated against.
	KnownRoles []string `yaml:"known_roles"`
	// KnownGroups are the group names recipient directives are validated against.
	KnownGroups []string `yaml:"known_groups"`
	// FlowPrefixes override flow-name prefixes per category.
	FlowPrefixes map[flow.Category]string `yaml:"flow_prefixes"`
	// Parallel compiles categories concurrently.
	Parallel bool `yaml:"parallel"`
	// OutputDir is where documents are written.
	OutputDir string `yaml:"output_dir"`
	// LogLevel is the minimum log level.
	LogLevel string `yaml:"log_level"`
}

// DefaultInterfaces are the two independent default-interface switches.
type DefaultInterfaces struct {
	Edge bool `yaml:"edge"`
	VMP  bool `yaml:"vmp"`
}

// Reclassification names the origin and target categories.
type Reclassification struct {
	Origin flow.Category `yaml:"origin"`
	Target flow.Category `yaml:"target"`
}

const (
	// DefaultConfigFilename is the default filename for compiler settings.
	DefaultConfigFilename = "delivery-flow.yaml"

	// DefaultDocumentVersion is the default output document version tag.
	DefaultDocumentVersion = "1.1.0"

	// DefaultOutputDir is the default directory for compiled documents.
	DefaultOutputDir = "out"

	// DefaultFilePermissions is the default file permission for written files.
	DefaultFilePermissions = 0o600

	// DefaultDirPermissions is the default permission for created directories.
	DefaultDirPermissions = 0o750
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errSameCategories is returned when reclassification would not move anything.
	errSameCategories = errors.New("reclassification origin and target must differ")
	// errInvalidLogLevel is returned for unknown log levels.
	errInvalidLogLevel = errors.New("invalid log level")
)

// Default returns a validated configuration with every default applied.
func Default() *Config {
	cfg := new(Config)

	// Defaults always validate.
	_ = Validate(cfg)

	return cfg
}

// Load reads configuration from the provided path and validates it.
// A missing file at the default path yields the defaults.
func Load(path string) (*Config, error) {
	usingDefault := path == "" || path == DefaultConfigFilename
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if usingDefault && errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}

		return nil, fmt.Errorf("read settings: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes the configuration to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate checks the settings and fills in defaults.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if cfg.MergePolicy == "" {
		cfg.MergePolicy = flow.MergeByConfigGroup
	}

	policy, err := flow.ParseMergePolicy(string(cfg.MergePolicy))
	if err != nil {
		return err
	}

	cfg.MergePolicy = policy

	if err := validateReclassification(&cfg.Reclassification); err != nil {
		return err
	}

	prefixes := make(map[flow.Category]string, len(cfg.FlowPrefixes))
	for name, prefix := range cfg.FlowPrefixes {
		category, err := flow.ParseCategory(string(name))
		if err != nil {
			return fmt.Errorf("flow prefix: %w", err)
		}

		prefixes[category] = strings.TrimSpace(prefix)
	}

	cfg.FlowPrefixes = prefixes

	if cfg.DocumentVersion == "" {
		cfg.DocumentVersion = DefaultDocumentVersion
	}

	if cfg.OutputDir == "" {
		cfg.OutputDir = DefaultOutputDir
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	if _, ok := logger.ParseLogLevel(cfg.LogLevel); !ok {
		return fmt.Errorf("%w: %q", errInvalidLogLevel, cfg.LogLevel)
	}

	return nil
}

func validateReclassification(r *Reclassification) error {
	if r.Origin == "" {
		r.Origin = flow.NurseCalls
	}

	if r.Target == "" {
		r.Target = flow.Clinicals
	}

	origin, err := flow.ParseCategory(string(r.Origin))
	if err != nil {
		return fmt.Errorf("reclassification origin: %w", err)
	}

	target, err := flow.ParseCategory(string(r.Target))
	if err != nil {
		return fmt.Errorf("reclassification target: %w", err)
	}

	if origin == target {
		return errSameCategories
	}

	r.Origin, r.Target = origin, target

	return nil
}
