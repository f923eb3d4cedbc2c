package search

import (
	"errors"
	"fmt"

	"github.com/farebd/leasehold/api/internal/models"
)

// Purpose is the coarse lease-intent classification used by the search form.
// Listings carry free-text lease types, so purposes are matched by keyword
// rules (see matchesPurpose), not by equality.
type Purpose string

const (
	PurposeLease    Purpose = "lease"
	PurposeRental   Purpose = "rental"
	PurposeLongTerm Purpose = "long_term"
)

// Valid reports whether the purpose is one of the known codes.
func (p Purpose) Valid() bool {
	return p == PurposeLease || p == PurposeRental || p == PurposeLongTerm
}

// Criteria-level errors, checked by callers before invoking the engine.
var (
	ErrUnknownPropertyType = errors.New("unknown property type")
	ErrUnknownPurpose      = errors.New("unknown purpose")
)

// Criteria is the set of optional constraints for one search request.
// Empty fields mean "no constraint". A Criteria value holds no state beyond
// the single filter operation it is built for.
type Criteria struct {
	// Location is matched as a case-insensitive substring of the listing
	// location, not an exact or token match.
	Location string

	// PropertyType narrows to an exact listing type when set.
	PropertyType models.PropertyType

	// Purpose selects listings by lease-type keywords when set.
	Purpose Purpose
}

// Validate rejects unrecognized enum codes. The filter engine itself performs
// no validation, so callers run this before FilterAndPaginate.
func (c Criteria) Validate() error {
	if c.PropertyType != "" && !c.PropertyType.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownPropertyType, c.PropertyType)
	}
	if c.Purpose != "" && !c.Purpose.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownPurpose, c.Purpose)
	}
	return nil
}

// IsZero reports whether no constraints are set.
func (c Criteria) IsZero() bool {
	return c.Location == "" && c.PropertyType == "" && c.Purpose == ""
}
