package flow

import "strings"

// MaxHops is the number of (delay, recipient) pairs a record can carry.
const MaxHops = 5

// Hop is one step of an escalation chain.
type Hop struct {
	// Delay is the raw delay text, usually seconds.
	Delay string
	// Recipient is the free-text recipient directive.
	Recipient string
}

// IsEmpty reports whether the hop carries no recipient directive.
func (h Hop) IsEmpty() bool {
	return strings.TrimSpace(h.Recipient) == ""
}

// InputRecord is one alarm definition as produced by a loader.
type InputRecord struct {
	// Category is the flow family the record belongs to.
	Category Category
	// ConfigGroup is the configuration-group key used for unit resolution.
	ConfigGroup string
	// AlarmName is the alarm or alert name.
	AlarmName string
	// SendingName is the name used by the sending system.
	SendingName string
	// Priority is the free-text priority.
	Priority string
	// DeviceA is the primary device identifier.
	DeviceA string
	// DeviceB is the secondary device identifier.
	DeviceB string
	// Ringtone is the ringtone identifier.
	Ringtone string
	// ResponseOptions is the comma-separated response option list.
	ResponseOptions string
	// ComplianceFlag is the tri-state EMDAN compliance marker (yes/no/blank).
	ComplianceFlag string
	// Hops are the escalation steps.
	Hops [MaxHops]Hop
	// InScope excludes the record from compilation when false.
	InScope bool
	// NoCaregiverGroup names the group receiving undeliverable alarms.
	NoCaregiverGroup string
	// Units are explicit unit targets; empty means "resolve from ConfigGroup".
	Units []Unit

	// Facility is annotated by the reclassifier from the unit directory.
	Facility string
	// OriginCategory is set when the record was moved by the reclassifier.
	OriginCategory Category
}

// Reclassified reports whether the record was moved to another category.
func (r *InputRecord) Reclassified() bool {
	return r.OriginCategory != "" && r.OriginCategory != r.Category
}

// Clone returns a copy of the record that shares no slices with the original.
func (r *InputRecord) Clone() *InputRecord {
	if r == nil {
		return nil
	}

	cloned := *r
	cloned.Units = append([]Unit(nil), r.Units...)

	return &cloned
}

// Key computes the merge equivalence key of the record.
func (r *InputRecord) Key() MergeKey {
	key := MergeKey{
		Priority:         strings.TrimSpace(r.Priority),
		DeviceA:          strings.TrimSpace(r.DeviceA),
		DeviceB:          strings.TrimSpace(r.DeviceB),
		Ringtone:         strings.TrimSpace(r.Ringtone),
		ResponseOptions:  NormalizeResponseOptions(r.ResponseOptions),
		ComplianceFlag:   strings.TrimSpace(r.ComplianceFlag),
		NoCaregiverGroup: strings.TrimSpace(r.NoCaregiverGroup),
	}

	for i, hop := range r.Hops {
		key.Hops[i] = Hop{
			Delay:     strings.TrimSpace(hop.Delay),
			Recipient: strings.TrimSpace(hop.Recipient),
		}
	}

	return key
}

// MergeKey is the tuple of delivery-relevant fields of a record.
// It is comparable and can be used directly as a map key.
type MergeKey struct {
	Priority         string
	DeviceA          string
	DeviceB          string
	Ringtone         string
	ResponseOptions  string
	Hops             [MaxHops]Hop
	ComplianceFlag   string
	NoCaregiverGroup string
}

// NormalizeResponseOptions trims and lower-cases every comma-separated
// token, drops empty ones and joins the rest with a single comma.
func NormalizeResponseOptions(s string) string {
	tokens := SplitResponseOptions(s)
	for i, token := range tokens {
		tokens[i] = strings.ToLower(token)
	}

	return strings.Join(tokens, ",")
}

// SplitResponseOptions splits a response option list on commas and returns
// the trimmed, non-empty tokens in order.
func SplitResponseOptions(s string) []string {
	parts := strings.Split(s, ",")
	tokens := make([]string, 0, len(parts))

	for _, part := range parts {
		if token := strings.TrimSpace(part); token != "" {
			tokens = append(tokens, token)
		}
	}

	return tokens
}

// Unit is a facility-scoped unit reference.
type Unit struct {
	// Facility is the owning facility name.
	Facility string `json:"facilityName"`
	// Name is the unit display name.
	Name string `json:"name"`
}

// UnitEntry maps configuration groups to a facility and unit.
type UnitEntry struct {
	// Facility is the facility name.
	Facility string
	// Unit is the unit display name.
	Unit string
	// NoCaregiverGroup is the optional fallback group of the unit.
	NoCaregiverGroup string
	// ConfigGroups holds the configuration-group name per category column.
	ConfigGroups map[Category]string
}
