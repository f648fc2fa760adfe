// Package feature implements optional hook callbacks that run inside
// the execution context when workspace events happen (a problem is
// created or checked out).
//
// Features are registered by name; the set that actually runs for a
// workspace is listed in the settings file under [core] features.
// Besides builtin features, a feature can be a directory holding a
// feature.toml manifest and a Lua script executed in a sandboxed
// interpreter (see the luahost subpackage).
package feature
