// Package compile runs a complete compilation: it loads settings and input,
// compiles every category and publishes the resulting documents.
package compile
