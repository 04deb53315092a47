package facility

import (
	"slices"
	"strings"

	"github.com/oshokin/delivery-flow/internal/domain/flow"
)

// Resolution is the facility context of a configuration group.
type Resolution struct {
	// Facility is the facility name.
	Facility string
	// Unit is the unit display name.
	Unit string
	// NoCaregiverGroup is the fallback group of the unit, if any.
	NoCaregiverGroup string
}

// Resolver looks up configuration groups of a single category.
type Resolver struct {
	// first holds the first matching row per configuration group.
	first map[string]Resolution
	// units holds every distinct unit per configuration group in row order.
	units map[string][]flow.Unit
}

// Directory holds one resolver per category.
type Directory struct {
	resolvers map[flow.Category]*Resolver
}

// NewDirectory builds resolvers for every category from the unit rows.
func NewDirectory(entries []flow.UnitEntry) *Directory {
	d := &Directory{
		resolvers: make(map[flow.Category]*Resolver, len(flow.Categories())),
	}

	for _, category := range flow.Categories() {
		d.resolvers[category] = newResolver(category, entries)
	}

	return d
}

func newResolver(category flow.Category, entries []flow.UnitEntry) *Resolver {
	r := &Resolver{
		first: make(map[string]Resolution),
		units: make(map[string][]flow.Unit),
	}

	for _, entry := range entries {
		group := entry.ConfigGroups[category]
		if strings.TrimSpace(group) == "" {
			continue
		}

		if _, ok := r.first[group]; !ok {
			r.first[group] = Resolution{
				Facility:         entry.Facility,
				Unit:             entry.Unit,
				NoCaregiverGroup: entry.NoCaregiverGroup,
			}
		}

		unit := flow.Unit{Facility: entry.Facility, Name: entry.Unit}
		if !slices.Contains(r.units[group], unit) {
			r.units[group] = append(r.units[group], unit)
		}
	}

	return r
}

// For returns the resolver of the category. Unknown categories get an empty resolver.
func (d *Directory) For(category flow.Category) *Resolver {
	if r, ok := d.resolvers[category]; ok {
		return r
	}

	return newResolver(category, nil)
}

// Resolve returns the first row matching the configuration group.
func (r *Resolver) Resolve(configGroup string) (Resolution, bool) {
	res, ok := r.first[configGroup]

	return res, ok
}

// Units returns every unit mapped to the configuration group.
func (r *Resolver) Units(configGroup string) []flow.Unit {
	return append([]flow.Unit(nil), r.units[configGroup]...)
}

// Attach scopes destinations to the facility of the configuration group.
// Destinations of unresolved groups keep an empty facility name.
func (r *Resolver) Attach(destinations []flow.Destination, configGroup string) []flow.Destination {
	facility := ""
	if res, ok := r.Resolve(configGroup); ok {
		facility = res.Facility
	}

	result := make([]flow.Destination, 0, len(destinations))
	for _, d := range destinations {
		result = append(result, d.WithFacility(facility))
	}

	return result
}
