// aviation/aip.go
// Copyright(c) 2025 rzflight contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import (
	"strings"
)

// AIPSection is the section of an Aeronautical Information Publication an
// entry belongs to.
type AIPSection int

const (
	SectionOperational AIPSection = iota
	SectionAdministrative
	SectionHandling
	SectionPassenger
)

func (s AIPSection) String() string {
	return [...]string{"operational", "administrative", "handling", "passenger"}[s]
}

// ParseAIPSection maps a source section string to an AIPSection; unknown
// strings default to operational.
func ParseAIPSection(s string) AIPSection {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "administrative", "admin":
		return SectionAdministrative
	case "handling":
		return SectionHandling
	case "passenger":
		return SectionPassenger
	default:
		return SectionOperational
	}
}

// CatalogField is an entry in the standardized field catalog: the
// canonical identity of an AIP field across authorities.
type CatalogField struct {
	Id      int
	Name    string
	Section AIPSection
}

// AIPEntry is one per-airport AIP data item. Identity is
// (Ident, Section, Field, Source).
type AIPEntry struct {
	Ident   string // airport ICAO code
	Section AIPSection
	Field   string
	Value   string
	Source  string

	// Standardized field catalog link, if the field was reconciled.
	Catalog *CatalogField

	// Alternate-language rendering, when the authority publishes one.
	AltField string
	AltValue string
}

// FieldCatalog resolves raw AIP field names to their standardized
// catalog entries. It is an explicitly constructed value passed to the
// code that needs it rather than ambient process-wide state; Reload
// replaces the contents from the given source.
type FieldCatalog struct {
	byId   map[int]CatalogField
	byName map[string]CatalogField
}

func NewFieldCatalog(ds DataSource) (*FieldCatalog, error) {
	fc := &FieldCatalog{}
	if err := fc.Reload(ds); err != nil {
		return nil, err
	}
	return fc, nil
}

// Reload replaces the catalog contents with the fields currently in the
// data source.
func (fc *FieldCatalog) Reload(ds DataSource) error {
	fields, err := ds.CatalogFields()
	if err != nil {
		return err
	}

	fc.byId = make(map[int]CatalogField, len(fields))
	fc.byName = make(map[string]CatalogField, len(fields))
	for _, f := range fields {
		fc.byId[f.Id] = f
		fc.byName[strings.ToLower(f.Name)] = f
	}
	return nil
}

func (fc *FieldCatalog) ById(id int) (CatalogField, bool) {
	f, ok := fc.byId[id]
	return f, ok
}

func (fc *FieldCatalog) ByName(name string) (CatalogField, bool) {
	f, ok := fc.byName[strings.ToLower(name)]
	return f, ok
}

// Annotate links entries to their standardized catalog fields by field
// name, leaving entries with no catalog match untouched.
func (fc *FieldCatalog) Annotate(entries []AIPEntry) {
	for i := range entries {
		if f, ok := fc.ByName(entries[i].Field); ok {
			cf := f
			entries[i].Catalog = &cf
		}
	}
}
