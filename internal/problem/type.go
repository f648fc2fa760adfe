package problem

import "strings"

// Tags selecting the problem type variant in the encoded form.
const (
	topcoderTag = "topcoder"
	streamTag   = "file"
)

// Type is the tagged union of problem kinds. Exactly two variants
// exist: Topcoder and Stream. The encoded form is a comma-joined list
// dispatched on its first component; components must not themselves
// contain commas (values are not escaped).
type Type interface {
	// Encode renders the compact comma-joined form.
	Encode() string

	problemType()
}

// Topcoder is a problem solved by implementing a class method with the
// given signature.
type Topcoder struct {
	Descriptor TopcoderDescriptor
}

func (Topcoder) problemType() {}

// Encode renders "topcoder,<class>,<method>,<params...>".
func (t Topcoder) Encode() string {
	parts := make([]string, 0, 3+len(t.Descriptor.Params))
	parts = append(parts, topcoderTag, t.Descriptor.ClassName, t.Descriptor.Method.Encode())
	for _, p := range t.Descriptor.Params {
		parts = append(parts, p.Encode())
	}
	return strings.Join(parts, ",")
}

// Stream is a problem that reads an input stream and writes an output
// stream.
type Stream struct {
	Input  InputSource
	Output OutputTarget
}

func (Stream) problemType() {}

// Encode renders "file,<input>,<output>".
func (s Stream) Encode() string {
	return strings.Join([]string{streamTag, s.Input.Encode(), s.Output.Encode()}, ",")
}

// ParseType decodes a problem type string, dispatching on the leading
// tag. It reports false for unknown tags, missing components, or
// malformed component values.
func ParseType(s string) (Type, bool) {
	parts := strings.Split(s, ",")
	switch parts[0] {
	case topcoderTag:
		return parseTopcoder(parts)
	case streamTag:
		return parseStream(parts)
	default:
		return nil, false
	}
}

// parseTopcoder requires the tag, a class name, and at least the method
// value; any further components are parameters.
func parseTopcoder(parts []string) (Type, bool) {
	if len(parts) < 3 {
		return nil, false
	}
	method, ok := ParseTopcoderValue(parts[2])
	if !ok {
		return nil, false
	}
	var params []TopcoderValue
	for _, raw := range parts[3:] {
		p, ok := ParseTopcoderValue(raw)
		if !ok {
			return nil, false
		}
		params = append(params, p)
	}
	return Topcoder{Descriptor: TopcoderDescriptor{
		ClassName: parts[1],
		Method:    method,
		Params:    params,
	}}, true
}

// parseStream requires exactly the tag, an input and an output.
func parseStream(parts []string) (Type, bool) {
	if len(parts) != 3 {
		return nil, false
	}
	in, ok := ParseInputSource(parts[1])
	if !ok {
		return nil, false
	}
	out, ok := ParseOutputTarget(parts[2])
	if !ok {
		return nil, false
	}
	return Stream{Input: in, Output: out}, true
}
