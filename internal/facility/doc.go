// Package facility resolves configuration groups to facilities and units.
//
// A Directory is built once per compilation run from the UnitEntry rows and
// holds one read-only Resolver per category column. Lookups are exact and
// case-sensitive; the first matching row wins. A miss is not an error.
package facility
