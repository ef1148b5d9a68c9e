package services

import (
	"reflect"
	"testing"

	"baleafiya/models"
)

func testVendors() []models.Vendor {
	return []models.Vendor{
		{ID: "haboob", Name: "حلويات حبوب", Categories: []string{"حلويات", "وافل", "عصائر"}},
		{ID: "1", Name: "مطعم وشاورما المهندس", Categories: []string{"شاورما"}},
		{ID: "2", Name: "بيت المندي", Categories: []string{"مندي & زربيان"}},
		{ID: "3", Name: "الصحن التركي", Categories: []string{"مندي"}},
		{ID: "4", Name: "مطعم بوابة الطفيلة", Categories: []string{"فلافل", "شاورما"}},
		{ID: "6", Name: "فرِندز للمعجنات والبيتزا", Categories: []string{"بيتزا & معجنات"}},
	}
}

func vendorIDs(vs []models.Vendor) []string {
	ids := make([]string, len(vs))
	for i, v := range vs {
		ids[i] = v.ID
	}
	return ids
}

func TestFilterVendors_EmptyQueryPinsLast(t *testing.T) {
	got := FilterVendors(testVendors(), "", CategoryAll)
	want := []string{"1", "2", "3", "4", "6", "haboob"}
	if !reflect.DeepEqual(vendorIDs(got), want) {
		t.Errorf("ids = %v, want %v", vendorIDs(got), want)
	}
}

func TestFilterVendors_SearchText(t *testing.T) {
	tests := []struct {
		name   string
		search string
		want   []string
	}{
		{"vendor name substring", "المندي", []string{"2"}},
		{"category label substring", "شاورما", []string{"1", "4"}},
		{"no match", "سوشي", []string{}},
		{"partial category label", "واف", []string{"haboob"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := vendorIDs(FilterVendors(testVendors(), tt.search, CategoryAll))
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("FilterVendors(%q) = %v, want %v", tt.search, got, tt.want)
			}
		})
	}
}

func TestFilterVendors_Category(t *testing.T) {
	tests := []struct {
		name     string
		category string
		want     []string
	}{
		{"exact label", "شاورما", []string{"1", "4"}},
		{"compound matches component label", "مندي & زربيان", []string{"2", "3"}},
		{"compound matches exact compound label", "بيتزا & معجنات", []string{"6"}},
		{"unknown category", "برجر", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := vendorIDs(FilterVendors(testVendors(), "", tt.category))
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("category %q = %v, want %v", tt.category, got, tt.want)
			}
		})
	}
}

func TestFilterVendors_CompoundDoesNotMatchUnrelated(t *testing.T) {
	vendors := []models.Vendor{
		{ID: "x", Name: "x", Categories: []string{"مندي"}},
		{ID: "z", Name: "z", Categories: []string{"حلويات"}},
	}
	got := vendorIDs(FilterVendors(vendors, "", "مندي & زربيان"))
	if !reflect.DeepEqual(got, []string{"x"}) {
		t.Errorf("got %v, want [x]", got)
	}
}

func TestFilterVendors_Deterministic(t *testing.T) {
	first := FilterVendors(testVendors(), "م", "الكل")
	second := FilterVendors(testVendors(), "م", "الكل")
	if !reflect.DeepEqual(first, second) {
		t.Errorf("same inputs gave different outputs:\n%v\n%v", vendorIDs(first), vendorIDs(second))
	}
}

func TestFilterVendors_PinnedLastUnderAnyParams(t *testing.T) {
	params := []struct{ search, category string }{
		{"", CategoryAll},
		{"حلويات", CategoryAll},
		{"", "حلويات"},
		{"ح", CategoryAll},
	}
	for _, p := range params {
		got := FilterVendors(testVendors(), p.search, p.category)
		for i, v := range got {
			if v.ID == PinnedLastVendorID && i != len(got)-1 {
				t.Errorf("search=%q category=%q: pinned vendor at %d of %d", p.search, p.category, i, len(got))
			}
		}
	}
}

func TestFilterVendors_DoesNotMutateInput(t *testing.T) {
	vendors := testVendors()
	before := vendorIDs(vendors)
	FilterVendors(vendors, "", CategoryAll)
	if !reflect.DeepEqual(vendorIDs(vendors), before) {
		t.Errorf("input slice reordered: %v", vendorIDs(vendors))
	}
}
