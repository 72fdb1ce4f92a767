package catalog

import (
	"encoding/json"
	"sort"
)

// Sort directives accepted by SortPage.
const (
	SortByPrice = "price"
	SortByID    = "id"

	SortAscending  = "asc"
	SortDescending = "desc"
)

// SortPage orders one fetched page in place. The zero directive sorts by
// ascending id, and price ties fall back to id so the order is stable for
// a given page regardless of storage order.
func SortPage(page []Product, sortBy, sortOrder string) {
	desc := sortOrder == SortDescending
	switch sortBy {
	case SortByPrice:
		sort.Slice(page, func(i, j int) bool {
			if page[i].Price != page[j].Price {
				if desc {
					return page[i].Price > page[j].Price
				}
				return page[i].Price < page[j].Price
			}
			return page[i].ID < page[j].ID
		})
	default:
		sort.Slice(page, func(i, j int) bool {
			if desc {
				return page[i].ID > page[j].ID
			}
			return page[i].ID < page[j].ID
		})
	}
}

// Project renders a page for a request that asked to omit fields: each
// record becomes its JSON object minus the named fields, and the images
// list is cut to its first entry. Names that match nothing are ignored.
// Callers only project when at least one omit field was requested.
func Project(page []Product, omit []string) []map[string]any {
	drop := make(map[string]bool, len(omit))
	for _, f := range omit {
		drop[f] = true
	}
	out := make([]map[string]any, 0, len(page))
	for _, p := range page {
		buf, err := json.Marshal(p)
		if err != nil {
			continue
		}
		var obj map[string]any
		if err := json.Unmarshal(buf, &obj); err != nil {
			continue
		}
		for f := range drop {
			delete(obj, f)
		}
		if imgs, ok := obj["images"].([]any); ok && len(imgs) > 1 {
			obj["images"] = imgs[:1]
		}
		out = append(out, obj)
	}
	return out
}
