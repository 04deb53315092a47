// Package inspect prints how recipient directives are interpreted.
package inspect
