package records

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/oshokin/delivery-flow/internal/domain/flow"
	"github.com/oshokin/delivery-flow/internal/pipeline"
)

// YAMLSource reads records and units from a YAML document.
type YAMLSource struct {
	path string
}

// yamlDocument is the on-disk layout.
type yamlDocument struct {
	Units   []yamlUnit   `yaml:"units"`
	Records []yamlRecord `yaml:"records"`
}

type yamlUnit struct {
	Facility         string            `yaml:"facility"`
	Unit             string            `yaml:"unit"`
	NoCaregiverGroup string            `yaml:"no_caregiver_group"`
	ConfigGroups     map[string]string `yaml:"config_groups"`
}

type yamlRecord struct {
	Category         string        `yaml:"category"`
	ConfigGroup      string        `yaml:"config_group"`
	AlarmName        string        `yaml:"alarm_name"`
	SendingName      string        `yaml:"sending_name"`
	Priority         string        `yaml:"priority"`
	DeviceA          string        `yaml:"device_a"`
	DeviceB          string        `yaml:"device_b"`
	Ringtone         string        `yaml:"ringtone"`
	ResponseOptions  string        `yaml:"response_options"`
	ComplianceFlag   string        `yaml:"compliance_flag"`
	Hops             []yamlHop     `yaml:"hops"`
	InScope          *bool         `yaml:"in_scope"`
	NoCaregiverGroup string        `yaml:"no_caregiver_group"`
	Units            []yamlUnitRef `yaml:"units"`
}

type yamlHop struct {
	Delay     string `yaml:"delay"`
	Recipient string `yaml:"recipient"`
}

type yamlUnitRef struct {
	Facility string `yaml:"facility"`
	Name     string `yaml:"name"`
}

// NewYAMLSource creates a source reading the file at path.
func NewYAMLSource(path string) *YAMLSource {
	return &YAMLSource{path: filepath.Clean(path)}
}

// Load reads and converts the YAML document.
func (s *YAMLSource) Load(_ context.Context) (*pipeline.Input, error) {
	contents, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read records: %w", err)
	}

	var doc yamlDocument
	if err = yaml.Unmarshal(contents, &doc); err != nil {
		return nil, fmt.Errorf("decode records: %w", err)
	}

	input := &pipeline.Input{
		Records: make([]*flow.InputRecord, 0, len(doc.Records)),
		Units:   make([]flow.UnitEntry, 0, len(doc.Units)),
	}

	for i, u := range doc.Units {
		entry, err := u.toDomain()
		if err != nil {
			return nil, fmt.Errorf("unit %d: %w", i+1, err)
		}

		input.Units = append(input.Units, entry)
	}

	for i, r := range doc.Records {
		record, err := r.toDomain()
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i+1, err)
		}

		input.Records = append(input.Records, record)
	}

	return input, nil
}

func (u yamlUnit) toDomain() (flow.UnitEntry, error) {
	entry := flow.UnitEntry{
		Facility:         u.Facility,
		Unit:             u.Unit,
		NoCaregiverGroup: u.NoCaregiverGroup,
		ConfigGroups:     make(map[flow.Category]string, len(u.ConfigGroups)),
	}

	for name, group := range u.ConfigGroups {
		category, err := flow.ParseCategory(name)
		if err != nil {
			return flow.UnitEntry{}, err
		}

		entry.ConfigGroups[category] = group
	}

	return entry, nil
}

func (r yamlRecord) toDomain() (*flow.InputRecord, error) {
	category, err := flow.ParseCategory(r.Category)
	if err != nil {
		return nil, err
	}

	if len(r.Hops) > flow.MaxHops {
		return nil, fmt.Errorf("%d hops given, at most %d supported", len(r.Hops), flow.MaxHops)
	}

	record := &flow.InputRecord{
		Category:         category,
		ConfigGroup:      r.ConfigGroup,
		AlarmName:        r.AlarmName,
		SendingName:      r.SendingName,
		Priority:         r.Priority,
		DeviceA:          r.DeviceA,
		DeviceB:          r.DeviceB,
		Ringtone:         r.Ringtone,
		ResponseOptions:  r.ResponseOptions,
		ComplianceFlag:   r.ComplianceFlag,
		InScope:          r.InScope == nil || *r.InScope,
		NoCaregiverGroup: r.NoCaregiverGroup,
	}

	for i, hop := range r.Hops {
		record.Hops[i] = flow.Hop{Delay: hop.Delay, Recipient: hop.Recipient}
	}

	for _, u := range r.Units {
		record.Units = append(record.Units, flow.Unit{Facility: u.Facility, Name: u.Name})
	}

	return record, nil
}
