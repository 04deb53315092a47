// Package version exposes the build metadata of flow-compiler.
//
// Version, Commit and BuildTime are set with -ldflags "-X ..." at build time.
package version
