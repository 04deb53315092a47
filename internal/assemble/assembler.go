package assemble

import (
	"slices"
	"strings"

	"github.com/oshokin/delivery-flow/internal/domain/flow"
)

const (
	// destinationTypeNormal marks regular escalation hops.
	destinationTypeNormal = "Normal"
	// destinationTypeNoDeliveries marks the synthesized final hop.
	destinationTypeNoDeliveries = "NoDeliveries"
)

// DefaultInterfaces are the fallback interfaces for keyword-less devices.
type DefaultInterfaces struct {
	// Edge adds the Edge (outgoing WCTP) interface.
	Edge bool
	// VMP adds the VMP interface.
	VMP bool
}

// Options configure an Assembler.
type Options struct {
	// Defaults are the fallback interfaces.
	Defaults DefaultInterfaces
	// Prefixes override the flow-name prefix per category.
	Prefixes map[flow.Category]string
}

// FacilityData is the facility context of a flow group.
type FacilityData struct {
	// NoCaregiverGroup receives the NoDeliveries destination when set.
	NoCaregiverGroup string
	// Facility scopes the NoCaregiverGroup.
	Facility string
}

// Assembler builds delivery flows.
type Assembler struct {
	opts Options
}

// New creates an Assembler.
func New(opts Options) *Assembler {
	return &Assembler{opts: opts}
}

// Assemble builds the delivery flow of the group from its parsed hops.
func (a *Assembler) Assemble(group *flow.FlowGroup, hops []flow.HopDestinations, facility FacilityData) flow.DeliveryFlow {
	var (
		record   = group.Representative()
		profile  = resolveDevices(record.DeviceA, record.DeviceB, a.opts.Defaults)
		template = templateFor(group.Category)
	)

	params := []flow.ParameterAttribute{
		parameter("eventIdentification", flow.Literal(string(group.Category)+":#{id}")),
	}
	params = append(params, template.parameters()...)
	params = append(params, soundParameters(record.Ringtone, profile.families)...)
	params = append(params, responseParameters(record.ResponseOptions)...)

	destinations := make([]flow.DestinationEntry, 0, len(hops)+1)

	for order, hop := range hops {
		entry, displayName := buildDestination(order, hop)
		destinations = append(destinations, entry)
		params = append(params, destinationParameter("destinationName", flow.Literal(displayName), order))
	}

	final := len(hops)
	destinations = append(destinations, noDeliveriesDestination(final, facility))
	params = append(params, template.noDeliveriesParameters(final)...)

	return flow.DeliveryFlow{
		Name:                group.Name(a.prefix(group.Category)),
		Priority:            mapPriority(group.Key.Priority, profile.priorityFamily()),
		AlarmsAlerts:        append([]string{}, group.AlarmNames...),
		Interfaces:          profile.interfaces,
		Destinations:        destinations,
		Units:               append([]flow.Unit{}, group.Units...),
		ParameterAttributes: params,
	}
}

func (a *Assembler) prefix(category flow.Category) string {
	if prefix, ok := a.opts.Prefixes[category]; ok && prefix != "" {
		return prefix
	}

	return category.DefaultPrefix()
}

// buildDestination converts one hop and returns its display name.
func buildDestination(order int, hop flow.HopDestinations) (flow.DestinationEntry, string) {
	entry := flow.DestinationEntry{
		Order:           order,
		DelayTime:       hop.Delay,
		FunctionalRoles: []flow.Recipient{},
		Groups:          []flow.Recipient{},
		DestinationType: destinationTypeNormal,
	}

	var names []string

	for _, d := range hop.Destinations {
		name := strings.TrimSpace(d.Name)
		recipient := flow.Recipient{Name: name, FacilityName: d.FacilityName}

		switch d.Kind {
		case flow.RoleAssignment:
			entry.FunctionalRoles = appendRecipient(entry.FunctionalRoles, recipient)
		case flow.RawGroup:
			recipient.FacilityName = ""
			entry.Groups = appendRecipient(entry.Groups, recipient)
		case flow.GroupAssignment, flow.Passthrough:
			entry.Groups = appendRecipient(entry.Groups, recipient)
		}

		if !slices.Contains(names, name) {
			names = append(names, name)
		}
	}

	return entry, strings.Join(names, " / ")
}

func noDeliveriesDestination(order int, facility FacilityData) flow.DestinationEntry {
	entry := flow.DestinationEntry{
		Order:           order,
		FunctionalRoles: []flow.Recipient{},
		Groups:          []flow.Recipient{},
		DestinationType: destinationTypeNoDeliveries,
	}

	if group := strings.TrimSpace(facility.NoCaregiverGroup); group != "" {
		entry.Groups = append(entry.Groups, flow.Recipient{Name: group, FacilityName: facility.Facility})
	}

	return entry
}

func parameter(name, value string) flow.ParameterAttribute {
	return flow.ParameterAttribute{Name: name, Value: value}
}

func destinationParameter(name, value string, order int) flow.ParameterAttribute {
	return flow.ParameterAttribute{Name: name, Value: value, DestinationOrder: &order}
}

func appendRecipient(recipients []flow.Recipient, r flow.Recipient) []flow.Recipient {
	if slices.Contains(recipients, r) {
		return recipients
	}

	return append(recipients, r)
}
