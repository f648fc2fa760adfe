// Package luahost embeds a sandboxed Lua interpreter for scripted
// feature hooks.
//
// Each loaded feature owns one State. Scripts get the safe subset of
// the Lua standard library (base, string, table, math); file, OS and
// module-loading primitives are removed so a hook can only touch the
// workspace through the functions the host registers for it. caide
// invocations are single-threaded, so a State is confined to the
// goroutine that created it.
package luahost
