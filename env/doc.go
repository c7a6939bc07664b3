// Package env reads, writes, and enumerates process environment variables.
//
// Most variables hold a single value, but some (PATH, LD_LIBRARY_PATH,
// PSModulePath) pack several values joined by a platform separator:
// ';' on Windows and ':' everywhere else. This package decomposes such a
// variable into a List, lets callers edit it, and composes it back.
//
// All access to the process environment goes through an Accessor. OS
// returns the native accessor for the build target; Memory is an
// in-process stand-in for tests and previews.
//
// The process environment is global mutable state with no synchronization
// of its own. Callers that touch it from several goroutines must serialize
// those calls themselves.
package env
