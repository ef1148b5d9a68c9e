package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"baleafiya/catalog"
	"baleafiya/models"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	c, err := catalog.Load()
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	return NewServer(c)
}

func get(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rr := httptest.NewRecorder()
	s.Router.ServeHTTP(rr, req)
	return rr
}

func TestVendorsEndpoint(t *testing.T) {
	s := testServer(t)

	rr := get(t, s, "/api/vendors")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	var vendors []models.Vendor
	if err := json.Unmarshal(rr.Body.Bytes(), &vendors); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(vendors) != 8 {
		t.Errorf("vendors = %d, want 8", len(vendors))
	}
	if vendors[len(vendors)-1].ID != "haboob" {
		t.Errorf("last vendor = %s, want haboob", vendors[len(vendors)-1].ID)
	}
}

func TestVendorsEndpoint_Filtered(t *testing.T) {
	s := testServer(t)

	rr := get(t, s, "/api/vendors?category="+url.QueryEscape("مندي & زربيان"))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	var vendors []models.Vendor
	if err := json.Unmarshal(rr.Body.Bytes(), &vendors); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(vendors) != 2 {
		t.Fatalf("vendors = %d, want 2", len(vendors))
	}
	for _, v := range vendors {
		if v.ID != "2" && v.ID != "3" {
			t.Errorf("unexpected vendor %s", v.ID)
		}
	}
}

func TestVendorEndpoint(t *testing.T) {
	s := testServer(t)

	rr := get(t, s, "/api/vendors/haboob")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	var v models.Vendor
	if err := json.Unmarshal(rr.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if v.ID != "haboob" || len(v.MenuItems) == 0 {
		t.Errorf("vendor = %+v", v)
	}

	if rr := get(t, s, "/api/vendors/nope"); rr.Code != http.StatusNotFound {
		t.Errorf("unknown vendor status = %d, want 404", rr.Code)
	}
}

func TestPickupPointsAndCategories(t *testing.T) {
	s := testServer(t)

	rr := get(t, s, "/api/pickup-points")
	if rr.Code != http.StatusOK {
		t.Fatalf("pickup points status = %d", rr.Code)
	}
	var pps []models.PickupPoint
	if err := json.Unmarshal(rr.Body.Bytes(), &pps); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(pps) != 4 {
		t.Errorf("pickup points = %d, want 4", len(pps))
	}

	rr = get(t, s, "/api/categories")
	if rr.Code != http.StatusOK {
		t.Fatalf("categories status = %d", rr.Code)
	}
	var cats []string
	if err := json.Unmarshal(rr.Body.Bytes(), &cats); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(cats) != 6 {
		t.Errorf("categories = %d, want 6", len(cats))
	}
}
