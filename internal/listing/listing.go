// Package listing implements the search, filter and pagination rules shared
// by the dashboard tables.
package listing

import (
	"sort"
	"strings"

	"cargo-portal/internal/model"
)

// Query is the shipment table's filter bar.
type Query struct {
	Search     string
	Status     string
	FacilityID string
}

// Empty reports whether q constrains nothing.
func (q Query) Empty() bool {
	return strings.TrimSpace(q.Search) == "" && q.Status == "" && q.FacilityID == ""
}

// Contains is a case-insensitive substring test. An empty needle matches.
func Contains(haystack, needle string) bool {
	needle = strings.TrimSpace(needle)
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// MatchesShipment applies q to s. Search, status and facility combine with AND.
func MatchesShipment(s model.Shipment, q Query) bool {
	if q.Status != "" && !strings.EqualFold(s.Status, q.Status) {
		return false
	}
	if q.FacilityID != "" && s.FacilityID != q.FacilityID {
		return false
	}
	return AnyContains(q.Search,
		s.TrackingNumber,
		s.Sender.Name,
		s.Recipient.Name,
		s.Origin,
		s.Destination,
	)
}

// AnyContains reports whether any field contains needle.
func AnyContains(needle string, fields ...string) bool {
	if strings.TrimSpace(needle) == "" {
		return true
	}
	for _, f := range fields {
		if Contains(f, needle) {
			return true
		}
	}
	return false
}

// FilterShipments returns the shipments matching q, preserving order.
func FilterShipments(shipments []model.Shipment, q Query) []model.Shipment {
	return Filter(shipments, func(s model.Shipment) bool { return MatchesShipment(s, q) })
}

// Filter keeps the elements for which keep returns true.
func Filter[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}

// Search filters items whose key fields contain term.
func Search[T any](items []T, term string, fields func(T) []string) []T {
	if strings.TrimSpace(term) == "" {
		return items
	}
	return Filter(items, func(item T) bool { return AnyContains(term, fields(item)...) })
}

// SortStatuses orders statuses by display order, then name.
func SortStatuses(statuses []model.ShipmentStatus) {
	sort.SliceStable(statuses, func(i, j int) bool {
		if statuses[i].DisplayOrder != statuses[j].DisplayOrder {
			return statuses[i].DisplayOrder < statuses[j].DisplayOrder
		}
		return strings.ToLower(statuses[i].Name) < strings.ToLower(statuses[j].Name)
	})
}

// SortSlides orders slides by their order field, then title.
func SortSlides(slides []model.Slide) {
	sort.SliceStable(slides, func(i, j int) bool {
		if slides[i].Order != slides[j].Order {
			return slides[i].Order < slides[j].Order
		}
		return strings.ToLower(slides[i].Title) < strings.ToLower(slides[j].Title)
	})
}

// CountByStatus tallies shipments per status name.
func CountByStatus(shipments []model.Shipment) map[string]int {
	counts := make(map[string]int)
	for _, s := range shipments {
		counts[s.Status]++
	}
	return counts
}
