// Package search implements the listing filter engine: pure, stateless
// predicate matching and pagination over an in-memory listing collection.
// The input is expected to be pre-sorted newest first; the engine preserves
// that order and never re-sorts.
package search

import (
	"strings"

	"github.com/farebd/leasehold/api/internal/models"
)

// DefaultPageSize is the page size the browse page uses.
const DefaultPageSize = 6

// Page is one page of filter results.
type Page struct {
	Items      []models.Listing `json:"items"`
	TotalCount int              `json:"totalCount"`
	PageCount  int              `json:"pageCount"`
}

// FilterAndPaginate returns the ordered subset of listings matching all
// supplied criteria, sliced to the requested zero-based page. A page beyond
// the last yields an empty Items slice, not an error; zero matches is a valid
// empty result. pageSize values below 1 fall back to DefaultPageSize.
func FilterAndPaginate(listings []models.Listing, criteria Criteria, page, pageSize int) Page {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if page < 0 {
		page = 0
	}

	matched := Filter(listings, criteria)

	total := len(matched)
	pageCount := (total + pageSize - 1) / pageSize

	start := page * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	return Page{
		Items:      matched[start:end],
		TotalCount: total,
		PageCount:  pageCount,
	}
}

// Filter returns all listings matching the criteria, preserving input order.
func Filter(listings []models.Listing, criteria Criteria) []models.Listing {
	matched := make([]models.Listing, 0, len(listings))
	for _, listing := range listings {
		if Matches(listing, criteria) {
			matched = append(matched, listing)
		}
	}
	return matched
}

// Matches reports whether a single listing satisfies every supplied
// constraint. Absent constraints always match.
func Matches(listing models.Listing, criteria Criteria) bool {
	if criteria.Location != "" && !matchesLocation(listing.Location, criteria.Location) {
		return false
	}
	if criteria.PropertyType != "" && listing.Type != criteria.PropertyType {
		return false
	}
	if criteria.Purpose != "" && !matchesPurpose(listing.LeaseType, criteria.Purpose) {
		return false
	}
	return true
}

// matchesLocation is a case-insensitive substring test. A listing with no
// location never matches a non-empty constraint.
func matchesLocation(location, query string) bool {
	if location == "" {
		return false
	}
	return strings.Contains(strings.ToLower(location), strings.ToLower(query))
}

// matchesPurpose classifies a free-text lease type against a purpose code
// using keyword rules. The rules overlap on purpose: "Long-term rental"
// matches long_term via "long" and "term", and lease types mentioning an
// option to buy match rental. This mirrors how lease types are entered on the
// registration form and is intentionally not a clean partition.
func matchesPurpose(leaseType string, purpose Purpose) bool {
	if leaseType == "" {
		return false
	}
	lt := strings.ToLower(leaseType)

	switch purpose {
	case PurposeLease:
		return strings.Contains(lt, "lease")
	case PurposeRental:
		return strings.Contains(lt, "rental with") || strings.Contains(lt, "option")
	case PurposeLongTerm:
		return strings.Contains(lt, "long") || strings.Contains(lt, "term")
	default:
		return false
	}
}
