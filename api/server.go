// Package api serves the catalog over a small read-only JSON API.
package api

import (
	"encoding/json"
	"net/http"

	"baleafiya/catalog"
	"baleafiya/services"

	"github.com/gorilla/mux"
)

type Server struct {
	Router  *mux.Router
	catalog *catalog.Catalog
}

func NewServer(c *catalog.Catalog) *Server {
	s := &Server{Router: mux.NewRouter(), catalog: c}
	s.Router.HandleFunc("/api/vendors", s.handleVendors).Methods(http.MethodGet)
	s.Router.HandleFunc("/api/vendors/{id}", s.handleVendor).Methods(http.MethodGet)
	s.Router.HandleFunc("/api/pickup-points", s.handlePickupPoints).Methods(http.MethodGet)
	s.Router.HandleFunc("/api/categories", s.handleCategories).Methods(http.MethodGet)
	return s
}

// handleVendors lists vendors, filtered by the q and category query
// parameters. No category parameter means the "all" tab.
func (s *Server) handleVendors(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	category := r.URL.Query().Get("category")
	if category == "" {
		category = services.CategoryAll
	}
	vendors := services.FilterVendors(s.catalog.Vendors, q, category)
	writeJSON(w, vendors)
}

func (s *Server) handleVendor(w http.ResponseWriter, r *http.Request) {
	v := s.catalog.VendorByID(mux.Vars(r)["id"])
	if v == nil {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	writeJSON(w, v)
}

func (s *Server) handlePickupPoints(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.catalog.PickupPoints)
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.catalog.Categories)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
