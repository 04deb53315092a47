// Package recipient parses free-text recipient directives into structured
// destinations.
//
// The grammar is a small ordered table of keyword rules (role assignment,
// group assignment) plus candidate rewrites (bracket removal, context word
// extraction, raw group-destination marker). Anything the table cannot
// interpret is kept verbatim as a passthrough destination. Validation
// against known roles and groups is advisory and never rejects a directive.
package recipient
