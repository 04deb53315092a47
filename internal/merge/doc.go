// Package merge groups records with equal delivery behavior into flow groups.
//
// Grouping is stable: groups are emitted in the order their first record
// appears, and alarm names, configuration groups and units keep first-seen
// order inside a group. The same input and policy always yield the same
// output.
package merge
