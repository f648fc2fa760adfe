// Package app provides the execution context and runtime driver shared
// by every caide command.
//
// A command runs as one invocation: the driver resolves the workspace
// root, loads the static settings file, builds a Context with an empty
// configuration cache, and executes the supplied operation. Only if the
// operation succeeds are the dirty cached documents written back to
// disk; any failure leaves every file untouched, so failed invocations
// are always safe to retry.
package app
