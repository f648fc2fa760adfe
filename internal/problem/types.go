package problem

import (
	"strings"
	"unicode"
)

// DefaultFloatTolerance is the comparison tolerance applied to
// floating-point answers when a problem does not override it.
const DefaultFloatTolerance = 1e-6

// Problem describes a single problem inside a workspace.
type Problem struct {
	// Name is the human-readable problem name (e.g., "A. Theatre Square").
	Name string

	// ID is the stable identifier used for file and folder naming.
	// It must be filesystem- and identifier-safe; see MakeID.
	ID string

	// FloatTolerance is the floating-point comparison tolerance used
	// when checking answers.
	FloatTolerance float64

	// Type describes how the problem receives input and produces output.
	Type Type
}

// New creates a Problem with the default float tolerance.
func New(name, id string, typ Type) Problem {
	return Problem{
		Name:           name,
		ID:             id,
		FloatTolerance: DefaultFloatTolerance,
		Type:           typ,
	}
}

// MakeID derives a filesystem- and identifier-safe ID from a free-form
// problem name. Unsafe runes are dropped, spaces and dashes become
// underscores, and a leading digit is prefixed with an underscore so the
// result is usable as an identifier in generated code.
func MakeID(name string) string {
	var b strings.Builder
	lastUnderscore := false
	for _, r := range name {
		switch {
		case r == ' ' || r == '-' || r == '.' || r == '_':
			if !lastUnderscore && b.Len() > 0 {
				b.WriteRune('_')
				lastUnderscore = true
			}
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastUnderscore = false
		}
	}
	id := b.String()
	if id == "" {
		return "problem"
	}
	if unicode.IsDigit(rune(id[0])) {
		id = "_" + id
	}
	return id
}

// IsValidID reports whether id is acceptable as a problem identifier.
func IsValidID(id string) bool {
	if id == "" {
		return false
	}
	for i, r := range id {
		if r == '_' || unicode.IsLetter(r) {
			continue
		}
		if unicode.IsDigit(r) && i > 0 {
			continue
		}
		return false
	}
	return true
}
