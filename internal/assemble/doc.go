// Package assemble turns a merged flow group into a delivery flow.
//
// Parameter attributes are emitted in a fixed order: identification,
// category message templates, alert sounds, the response-option family,
// one destinationName per hop and finally the synthesized NoDeliveries
// destination. Device keywords select interfaces and the priority table.
// Unrecognized device, priority or response tokens fall back to defaults.
package assemble
