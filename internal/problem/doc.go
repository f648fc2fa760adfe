// Package problem defines the domain types describing a competitive
// programming problem and their textual encodings.
//
// Every value stored in a configuration file is a plain string. This
// package provides the symmetric encode/decode pairs that turn domain
// values (problem types, method descriptors, input/output sources) into
// those strings and back. Decoding is total: malformed input reports
// failure through a boolean, never a panic.
package problem
