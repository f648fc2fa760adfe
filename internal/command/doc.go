// Package command implements the caide commands as operations over the
// runtime driver.
//
// Commands stay thin: each one is a single invocation that manipulates
// configuration through the execution context and fires feature hooks.
// Build drivers, judge scraping and code generation live behind the
// builder and feature interfaces and are not part of this layer.
package command
