package services

import (
	"sort"
	"strings"

	"baleafiya/models"
)

// CategoryAll is the sentinel tab meaning "no category filter".
const CategoryAll = "الكل"

// PinnedLastVendorID is always shown at the bottom of the vendor list.
const PinnedLastVendorID = "haboob"

// compoundCategories maps a display category to the underlying labels it
// stands for. A compound matches any vendor label containing one of the
// components, or exactly equal to the compound label itself. New
// compounds are added here, not as new code paths.
var compoundCategories = map[string][]string{
	"مندي & زربيان":  {"مندي", "زربيان"},
	"بيتزا & معجنات": {"بيتزا", "معجنات"},
}

// FilterVendors returns the vendors matching the search text and the
// selected category, preserving catalog order except that the pinned
// vendor always sorts last. Pure function: same inputs give the same
// output, and the input slice is never modified.
func FilterVendors(vendors []models.Vendor, search, category string) []models.Vendor {
	out := make([]models.Vendor, 0, len(vendors))
	for _, v := range vendors {
		if matchesSearch(v, search) && matchesCategory(v, category) {
			out = append(out, v)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ID != PinnedLastVendorID && out[j].ID == PinnedLastVendorID
	})
	return out
}

func matchesSearch(v models.Vendor, search string) bool {
	if search == "" {
		return true
	}
	q := strings.ToLower(search)
	if strings.Contains(strings.ToLower(v.Name), q) {
		return true
	}
	for _, cat := range v.Categories {
		if strings.Contains(strings.ToLower(cat), q) {
			return true
		}
	}
	return false
}

func matchesCategory(v models.Vendor, category string) bool {
	if category == CategoryAll || category == "" {
		return true
	}
	components := compoundCategories[category]
	for _, cat := range v.Categories {
		if cat == category {
			return true
		}
		for _, comp := range components {
			if strings.Contains(cat, comp) {
				return true
			}
		}
	}
	return false
}
