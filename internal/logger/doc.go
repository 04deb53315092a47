// Package logger wraps zap with a global sugared logger and context helpers.
//
// Compilation stages receive a context and log through the logger stored in
// it, so a run id or a stage name attached once with WithKV or WithName is
// carried by every message of that run. Output goes to stderr to keep stdout
// free for compiled documents.
package logger
