package render

import (
	"strings"

	"github.com/pkg/errors"
)

// Catalog is the phrase content an Engine renders with. Structures produce the
// head sentence; every further aspect is appended as a clause built from a
// connector and one of the clause forms.
type Catalog struct {
	Name       string
	Structures []string
	Connectors []string
	Clauses    []string
	// Endings is a pool of closing remarks, one of which is appended to a
	// multi-aspect review with probability EndingChance.
	Endings      []string
	EndingChance float64
}

// Built-in catalog names. They match the built-in taxonomy names.
const (
	Descriptive = "descriptive"
	Booking     = "booking"
)

// DescriptiveCatalog returns the default catalog. Every call returns fresh
// slices, so callers may edit the result.
func DescriptiveCatalog() Catalog {
	return Catalog{
		Name:       Descriptive,
		Structures: append([]string(nil), descriptiveStructures...),
		Connectors: []string{" and ", " while ", " plus ", " also "},
		Clauses:    []string{"{connector}{aspect} with {problem}"},
	}
}

// BookingCatalog returns the catalog modelled on short booking-site reviews.
func BookingCatalog() Catalog {
	return Catalog{
		Name:       Booking,
		Structures: append([]string(nil), bookingStructures...),
		Connectors: []string{
			" ", " The ", " Also ", " Also the ", " ", " Really the only thing ",
			" To be really picky ", " ", " I thought that ", " ", " Would have liked ",
			" ", " No ", " ", " Maybe the ", " ", " Just the ", " ",
		},
		Clauses: []string{
			"{connector}{aspect} {problem}",
			"{connector}the {aspect} {problem}",
			"{connector}{aspect} was {problem}",
			"{connector}{aspect} {problem} but not a big deal",
		},
		Endings: []string{
			" Will not go back here again",
			" but not a massive deal though",
			" Not a big deal but worth mentioning",
			" Otherwise everything was fine",
			" Apart from that it was ok",
			"",
		},
		EndingChance: 0.15,
	}
}

// CatalogFor returns the built-in catalog with the given name.
func CatalogFor(name string) (Catalog, error) {
	switch name {
	case Descriptive:
		return DescriptiveCatalog(), nil
	case Booking:
		return BookingCatalog(), nil
	default:
		return Catalog{}, errors.Errorf("unknown catalog %q", name)
	}
}

// Validate checks that the catalog can render any number of aspects.
func (c Catalog) Validate() error {
	if len(c.Structures) == 0 {
		return errors.New("catalog has no sentence structures")
	}
	if len(c.Connectors) == 0 {
		return errors.New("catalog has no connectors")
	}
	if len(c.Clauses) == 0 {
		return errors.New("catalog has no clause forms")
	}
	for i, cl := range c.Clauses {
		if !strings.Contains(cl, "{connector}") {
			return errors.Errorf("clause %d (%q) has no {connector} slot", i, cl)
		}
	}
	if c.EndingChance < 0 || c.EndingChance > 1 {
		return errors.Errorf("ending chance %v outside [0,1]", c.EndingChance)
	}
	if c.EndingChance > 0 && len(c.Endings) == 0 {
		return errors.New("catalog has an ending chance but no endings")
	}
	return nil
}
