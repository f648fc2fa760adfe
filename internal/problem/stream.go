package problem

import "strings"

// Input literals used by the stream encoding.
const (
	stdinLiteral  = "stdin"
	stdoutLiteral = "stdout"
)

// InputKind discriminates InputSource variants.
type InputKind int

// Input source variants.
const (
	// InputStdIn reads the standard input stream.
	InputStdIn InputKind = iota
	// InputFile reads a literal file path.
	InputFile
	// InputPattern picks the input file matching a regex-like filename
	// pattern; encoded wrapped in slashes ("/pattern/").
	InputPattern
)

// InputSource describes where a stream problem reads its input.
type InputSource struct {
	Kind InputKind

	// Value is the file path for InputFile or the pattern for
	// InputPattern; empty for InputStdIn.
	Value string
}

// StdIn returns the standard-input source.
func StdIn() InputSource { return InputSource{Kind: InputStdIn} }

// FileInput returns a literal-path input source.
func FileInput(path string) InputSource {
	return InputSource{Kind: InputFile, Value: path}
}

// PatternInput returns a filename-pattern input source.
func PatternInput(pattern string) InputSource {
	return InputSource{Kind: InputPattern, Value: pattern}
}

// Encode renders the input source in its compact form.
func (in InputSource) Encode() string {
	switch in.Kind {
	case InputStdIn:
		return stdinLiteral
	case InputPattern:
		return "/" + in.Value + "/"
	default:
		return in.Value
	}
}

// ParseInputSource decodes the compact input form. A token wrapped in
// slashes is a filename pattern; the literal "stdin" is the standard
// stream; anything else is a file path.
func ParseInputSource(s string) (InputSource, bool) {
	switch {
	case s == stdinLiteral:
		return StdIn(), true
	case len(s) >= 2 && strings.HasPrefix(s, "/") && strings.HasSuffix(s, "/"):
		return PatternInput(s[1 : len(s)-1]), true
	case s == "":
		return InputSource{}, false
	default:
		return FileInput(s), true
	}
}

// OutputKind discriminates OutputTarget variants.
type OutputKind int

// Output target variants.
const (
	// OutputStdOut writes the standard output stream.
	OutputStdOut OutputKind = iota
	// OutputFile writes a literal file path.
	OutputFile
)

// OutputTarget describes where a stream problem writes its output.
type OutputTarget struct {
	Kind OutputKind

	// Path is the file path for OutputFile; empty for OutputStdOut.
	Path string
}

// StdOut returns the standard-output target.
func StdOut() OutputTarget { return OutputTarget{Kind: OutputStdOut} }

// FileOutput returns a literal-path output target.
func FileOutput(path string) OutputTarget {
	return OutputTarget{Kind: OutputFile, Path: path}
}

// Encode renders the output target in its compact form.
func (out OutputTarget) Encode() string {
	if out.Kind == OutputStdOut {
		return stdoutLiteral
	}
	return out.Path
}

// ParseOutputTarget decodes the compact output form.
func ParseOutputTarget(s string) (OutputTarget, bool) {
	switch s {
	case stdoutLiteral:
		return StdOut(), true
	case "":
		return OutputTarget{}, false
	default:
		return FileOutput(s), true
	}
}
