package flow

// DestinationKind tells which grammar rule produced a Destination.
type DestinationKind int

const (
	// Passthrough keeps the directive verbatim because no rule matched.
	Passthrough DestinationKind = iota
	// RoleAssignment targets a functional role.
	RoleAssignment
	// GroupAssignment targets a named group.
	GroupAssignment
	// RawGroup targets a group-destination identifier as written.
	RawGroup
)

// String implements fmt.Stringer.
func (k DestinationKind) String() string {
	switch k {
	case RoleAssignment:
		return "role"
	case GroupAssignment:
		return "group"
	case RawGroup:
		return "raw-group"
	default:
		return "passthrough"
	}
}

// Destination is the structured form of one recipient directive.
type Destination struct {
	// Kind is the grammar variant.
	Kind DestinationKind
	// Name is the role, group or raw identifier; the original text for passthrough.
	Name string
	// Valid reports whether Name matched the known roles or groups.
	// It is advisory only.
	Valid bool
	// Source is the directive text the destination was parsed from.
	Source string
	// FacilityName is attached after resolution and may stay empty.
	FacilityName string
}

// WithFacility returns a copy of the destination scoped to the facility.
func (d Destination) WithFacility(facility string) Destination {
	d.FacilityName = facility

	return d
}

// HopDestinations groups the destinations parsed from one hop.
type HopDestinations struct {
	// Delay is the hop delay in seconds.
	Delay int
	// Destinations are the parsed and facility-scoped targets of the hop.
	Destinations []Destination
}
