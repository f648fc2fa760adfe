// Package transport implements the native-messaging style framing used
// by the browser companion extension.
//
// Each frame is a uint32 little-endian length prefix followed by that
// many bytes of JSON. A request names a workspace root and an action;
// the server runs the action as one complete runtime invocation and
// answers with a single response frame carrying either the action's
// data or a textual error. Requests are handled strictly one at a
// time — multiplexing, if any, lives on the extension side.
package transport
