package problem

import "strings"

// TopcoderType is the base type of a Topcoder method value.
type TopcoderType int

// Available base types.
const (
	TCInt TopcoderType = iota
	TCLong
	TCDouble
	TCString
)

// dimensionMarker is repeated once per nesting level in the encoded form
// of a TopcoderValue ("vvint" is a matrix of ints).
const dimensionMarker = 'v'

// String returns the canonical literal for the base type. Note that the
// string variant is spelled "String"; decoding additionally accepts the
// lowercase spelling.
func (t TopcoderType) String() string {
	switch t {
	case TCInt:
		return "int"
	case TCLong:
		return "long"
	case TCDouble:
		return "double"
	case TCString:
		return "String"
	default:
		return "unknown"
	}
}

// ParseTopcoderType decodes a base type literal. It reports false for
// unknown literals.
func ParseTopcoderType(s string) (TopcoderType, bool) {
	switch s {
	case "int":
		return TCInt, true
	case "long":
		return TCLong, true
	case "double":
		return TCDouble, true
	case "String", "string":
		return TCString, true
	default:
		return 0, false
	}
}

// TopcoderValue describes one named value in a Topcoder method
// signature: the return value or a parameter. Dimension is the
// container nesting depth (0 scalar, 1 vector, 2 matrix, ...).
type TopcoderValue struct {
	Name      string
	Type      TopcoderType
	Dimension int
}

// Encode renders the value as "name:" followed by one dimension marker
// per nesting level and the base type literal.
func (v TopcoderValue) Encode() string {
	var b strings.Builder
	b.WriteString(v.Name)
	b.WriteByte(':')
	for i := 0; i < v.Dimension; i++ {
		b.WriteByte(dimensionMarker)
	}
	b.WriteString(v.Type.String())
	return b.String()
}

// ParseTopcoderValue decodes the "name:vv<type>" form. It reports false
// when the separator is missing or the type literal is unknown.
func ParseTopcoderValue(s string) (TopcoderValue, bool) {
	name, rest, ok := strings.Cut(s, ":")
	if !ok {
		return TopcoderValue{}, false
	}
	dim := 0
	for dim < len(rest) && rest[dim] == dimensionMarker {
		dim++
	}
	typ, ok := ParseTopcoderType(rest[dim:])
	if !ok {
		return TopcoderValue{}, false
	}
	return TopcoderValue{Name: name, Type: typ, Dimension: dim}, true
}

// TopcoderDescriptor describes a Topcoder problem's class and method
// signature: the class name, the return value, and the ordered
// parameter list.
type TopcoderDescriptor struct {
	ClassName string
	Method    TopcoderValue
	Params    []TopcoderValue
}
