package conf

import (
	"fmt"
	"regexp"
	"strings"
)

// maxInterpolationDepth bounds recursive %(name)s expansion.
const maxInterpolationDepth = 10

// RootVariable is the name of the variable injected into every lookup,
// carrying the workspace root directory. The spelling is part of the
// on-disk file format and must not change.
const RootVariable = "caideRoot"

// interpRef matches a %(name)s reference at the start of the input.
var interpRef = regexp.MustCompile(`^%\(([^()]+)\)s`)

// Interpolate expands %(name)s references in raw. References resolve
// against, in order: the keys of the current section, the injected
// variables, and the keys of the DEFAULT section. "%%" is an escaped
// percent sign. Expansion recurses into substituted values up to
// maxInterpolationDepth levels.
func (d *Document) Interpolate(section, raw string, vars map[string]string) (string, error) {
	return d.interpolate(section, raw, vars, 0)
}

func (d *Document) interpolate(section, raw string, vars map[string]string, depth int) (string, error) {
	if depth > maxInterpolationDepth {
		return "", fmt.Errorf("%w: interpolation deeper than %d levels", ErrParse, maxInterpolationDepth)
	}
	if !strings.Contains(raw, "%") {
		return raw, nil
	}

	var b strings.Builder
	for i := 0; i < len(raw); {
		if raw[i] != '%' {
			b.WriteByte(raw[i])
			i++
			continue
		}
		if i+1 < len(raw) && raw[i+1] == '%' {
			b.WriteByte('%')
			i += 2
			continue
		}
		m := interpRef.FindStringSubmatch(raw[i:])
		if m == nil {
			return "", fmt.Errorf("%w: bad interpolation syntax in %q", ErrParse, raw)
		}
		name := m[1]
		value, ok := d.resolveVariable(section, name, vars)
		if !ok {
			return "", fmt.Errorf("%w: unknown interpolation variable %q", ErrParse, name)
		}
		expanded, err := d.interpolate(section, value, vars, depth+1)
		if err != nil {
			return "", err
		}
		b.WriteString(expanded)
		i += len(m[0])
	}
	return b.String(), nil
}

// resolveVariable looks up an interpolation name.
func (d *Document) resolveVariable(section, name string, vars map[string]string) (string, bool) {
	if sec := d.lookupSection(section); sec != nil && sec.HasKey(name) {
		return sec.Key(name).Value(), true
	}
	if value, ok := vars[name]; ok {
		return value, true
	}
	return d.rawValue("", name)
}
