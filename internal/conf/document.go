package conf

import (
	"fmt"
	"io"
	"strings"

	ini "gopkg.in/ini.v1"
)

// Document is one parsed INI configuration file.
//
// Section names are case-insensitive: lookups fold the requested name
// to lowercase and match existing sections regardless of their spelling
// in the file. Keys are case-sensitive. Lookups fall back to the
// DEFAULT section when the requested section does not carry the key.
type Document struct {
	file *ini.File
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{file: ini.Empty()}
}

// ParseDocument parses INI text into a document.
func ParseDocument(data []byte) (*Document, error) {
	f, err := ini.Load(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return &Document{file: f}, nil
}

// lookupSection finds a section by case-insensitive name, or nil.
// The empty name and "default" both address the DEFAULT section.
func (d *Document) lookupSection(name string) *ini.Section {
	folded := strings.ToLower(name)
	if folded == "" || folded == strings.ToLower(ini.DefaultSection) {
		return d.file.Section(ini.DefaultSection)
	}
	for _, existing := range d.file.SectionStrings() {
		if strings.ToLower(existing) == folded {
			return d.file.Section(existing)
		}
	}
	return nil
}

// rawValue returns the uninterpolated value for section/key, falling
// back to the DEFAULT section.
func (d *Document) rawValue(section, key string) (string, bool) {
	if sec := d.lookupSection(section); sec != nil && sec.HasKey(key) {
		return sec.Key(key).Value(), true
	}
	def := d.file.Section(ini.DefaultSection)
	if def.HasKey(key) {
		return def.Key(key).Value(), true
	}
	return "", false
}

// Get returns the raw (uninterpolated) value for section/key.
func (d *Document) Get(section, key string) (string, bool) {
	return d.rawValue(section, key)
}

// Set stores value under section/key, creating both as needed. New
// sections are created with lowercase names; an existing section is
// matched case-insensitively and reused.
func (d *Document) Set(section, key, value string) error {
	if key == "" {
		return fmt.Errorf("%w: empty key", ErrParse)
	}
	sec := d.lookupSection(section)
	if sec == nil {
		var err error
		sec, err = d.file.NewSection(strings.ToLower(section))
		if err != nil {
			return fmt.Errorf("%w: %v", ErrParse, err)
		}
	}
	if sec.HasKey(key) {
		sec.Key(key).SetValue(value)
		return nil
	}
	if _, err := sec.NewKey(key, value); err != nil {
		return fmt.Errorf("%w: %v", ErrParse, err)
	}
	return nil
}

// Sections lists the section names present in the document, excluding
// an empty DEFAULT section.
func (d *Document) Sections() []string {
	var names []string
	for _, name := range d.file.SectionStrings() {
		if name == ini.DefaultSection && len(d.file.Section(name).Keys()) == 0 {
			continue
		}
		names = append(names, name)
	}
	return names
}

// Keys lists the key names of a section, or nil if the section is
// absent.
func (d *Document) Keys(section string) []string {
	sec := d.lookupSection(section)
	if sec == nil {
		return nil
	}
	return sec.KeyStrings()
}

// WriteTo serializes the document as INI text.
func (d *Document) WriteTo(w io.Writer) error {
	if _, err := d.file.WriteTo(w); err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	return nil
}
