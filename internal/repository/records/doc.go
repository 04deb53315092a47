// Package records loads input records and unit rows from files.
//
// Two sources produce the same Input shape: a YAML document and a workbook
// with one sheet per category plus a unit breakdown sheet. Loading is the
// only place where hard failures occur (unreadable file, missing required
// header); the compiler assumes validated records.
package records
