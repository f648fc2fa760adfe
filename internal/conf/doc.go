// Package conf implements the in-memory configuration store backing a
// single caide invocation.
//
// Configuration lives in INI-style files under the workspace root. The
// store caches each file as a parsed Document the first time it is
// touched and tracks a dirty flag per entry. Mutations only ever touch
// the in-memory copy; the runtime driver writes dirty entries back to
// disk in one batch after the whole operation has succeeded, so a failed
// operation never modifies any file.
//
// Handles come in two non-interchangeable flavors: Handle refers to a
// persistent document backed by a real path and can be flushed, while
// TempHandle refers to the session-only document that is never written
// to disk. Only Handle is accepted by Flush; the type system rules out
// flushing a temporary document.
package conf
