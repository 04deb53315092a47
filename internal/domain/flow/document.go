package flow

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Document is the compiled output of one category.
type Document struct {
	// Version is the document format tag.
	Version string `json:"version"`
	// DeliveryFlows are the compiled flows in group order.
	DeliveryFlows []DeliveryFlow `json:"deliveryFlows"`
}

// DeliveryFlow is the compiled form of one FlowGroup.
type DeliveryFlow struct {
	Name                string               `json:"name"`
	Priority            string               `json:"priority"`
	AlarmsAlerts        []string             `json:"alarmsAlerts"`
	Interfaces          []Interface          `json:"interfaces"`
	Destinations        []DestinationEntry   `json:"destinations"`
	Units               []Unit               `json:"units"`
	ParameterAttributes []ParameterAttribute `json:"parameterAttributes"`
}

// Interface is an outbound component the flow is delivered through.
type Interface struct {
	ReferenceName string `json:"referenceName"`
	ComponentName string `json:"componentName"`
}

// Recipient is a facility-scoped functional role or group.
type Recipient struct {
	Name         string `json:"name"`
	FacilityName string `json:"facilityName"`
}

// DestinationEntry is one delivery step of a flow.
type DestinationEntry struct {
	Order           int         `json:"order"`
	DelayTime       int         `json:"delayTime"`
	FunctionalRoles []Recipient `json:"functionalRoles"`
	Groups          []Recipient `json:"groups"`
	DestinationType string      `json:"destinationType,omitempty"`
}

// ParameterAttribute is a named flow parameter.
// Value always holds a JSON literal, e.g. "\"Accept/Decline\"" or "[\"Accept\"]".
type ParameterAttribute struct {
	Name             string `json:"name"`
	Value            string `json:"value"`
	DestinationOrder *int   `json:"destinationOrder,omitempty"`
}

// Parameter returns the attribute named name and whether it exists.
// Per-destination attributes are skipped.
func (f *DeliveryFlow) Parameter(name string) (ParameterAttribute, bool) {
	for _, attr := range f.ParameterAttributes {
		if attr.Name == name && attr.DestinationOrder == nil {
			return attr, true
		}
	}

	return ParameterAttribute{}, false
}

// Literal encodes v as a JSON literal without HTML escaping.
func Literal(v any) string {
	var buf bytes.Buffer

	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)

	if err := encoder.Encode(v); err != nil {
		// Only strings and string slices are encoded here.
		return fmt.Sprintf("%q", fmt.Sprint(v))
	}

	return string(bytes.TrimRight(buf.Bytes(), "\n"))
}

// Marshal serializes the document as indented JSON.
func (d *Document) Marshal() ([]byte, error) {
	var buf bytes.Buffer

	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(d); err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}

	return buf.Bytes(), nil
}
