package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taja-backend/constants"
)

func TestGetAllStoreCategoriesDeduplicates(t *testing.T) {
	env := newTestEnv(t)
	env.store.categories = []string{"Fashion & Clothing", "", "Electronics", "Fashion & Clothing", "Food & Groceries"}

	req := httptest.NewRequest(http.MethodGet, "/api/users/all-categories", nil)
	w := httptest.NewRecorder()
	env.controller.GetAllStoreCategories(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp StoreCategoriesResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"Fashion & Clothing", "Electronics", "Food & Groceries"}, resp.Categories)
}

func TestGetAllStoreCategoriesEmpty(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/api/users/all-categories", nil)
	w := httptest.NewRecorder()
	env.controller.GetAllStoreCategories(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp StoreCategoriesResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Categories)
	// Always a JSON array, never null
	assert.Contains(t, w.Body.String(), `"categories":[]`)
}

func TestGetAllStoreCategoriesStoreError(t *testing.T) {
	env := newTestEnv(t)
	env.store.distinctErr = errors.New("mongo unreachable")

	req := httptest.NewRequest(http.MethodGet, "/api/users/all-categories", nil)
	w := httptest.NewRecorder()
	env.controller.GetAllStoreCategories(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Failed to fetch store categories")
}

func TestGetAllPredefinedCategories(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/api/users/predefined-categories", nil)
	w := httptest.NewRecorder()
	env.controller.GetAllPredefinedCategories(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp StoreCategoriesResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, constants.StoreCategories, resp.Categories)
	assert.Contains(t, resp.Categories, "Fashion & Clothing")
}
