package core

import (
	"sort"
	"strings"
)

const (
	SortByID       SortKey = "id"
	SortByProject  SortKey = "project"
	SortByPriority SortKey = "priority"
	SortByDate     SortKey = "expense_date"
)

// SortKey selects the column the record table is ordered by.
type SortKey string

func ParseSortKey(s string) SortKey {
	switch SortKey(s) {
	case SortByProject, SortByPriority, SortByDate:
		return SortKey(s)
	}
	return SortByID
}

// SortRecords returns a new slice ordered by the given key. The sort is
// stable, so equal keys keep their incoming order. Project names compare
// case-insensitively and priority orders highest first.
func SortRecords(records []Record, key SortKey) []Record {
	out := make([]Record, len(records))
	copy(out, records)
	switch key {
	case SortByProject:
		sort.SliceStable(out, func(i, j int) bool {
			return strings.ToLower(out[i].Project) < strings.ToLower(out[j].Project)
		})
	case SortByPriority:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Priority > out[j].Priority
		})
	case SortByDate:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Date.sortValue() < out[j].Date.sortValue()
		})
	default:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].ID < out[j].ID
		})
	}
	return out
}
