package controllers

import (
	"log"
	"net/http"

	"taja-backend/constants"
)

// StoreCategoriesResponse is the payload for both category endpoints
type StoreCategoriesResponse struct {
	Categories []string `json:"categories"`
}

// GetAllStoreCategories returns the distinct categories in use across seller
// records, flattened and de-duplicated with empty entries dropped.
func (uc *UserController) GetAllStoreCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := uc.Users.DistinctSellerCategories(r.Context())
	if err != nil {
		log.Printf("Failed to fetch store categories: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch store categories")
		return
	}

	seen := make(map[string]bool)
	flat := []string{}
	for _, c := range categories {
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		flat = append(flat, c)
	}
	writeJSON(w, http.StatusOK, StoreCategoriesResponse{Categories: flat})
}

// GetAllPredefinedCategories returns the fixed category list
func (uc *UserController) GetAllPredefinedCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, StoreCategoriesResponse{Categories: constants.StoreCategories})
}
