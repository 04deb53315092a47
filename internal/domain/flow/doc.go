// Package flow contains core domain types for delivery-flow compilation.
//
// It defines the input record shape shared by every loader (InputRecord,
// UnitEntry), the intermediate merge artifacts (MergeKey, FlowGroup) and the
// output document model (Document, DeliveryFlow) with its JSON shape.
package flow
