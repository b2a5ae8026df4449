package handler

import (
	"net/http"

	"github.com/mukujayCS/Apartment-Hunter/internal/repository"
)

// CategoriesHandler exposes the community comment categories
type CategoriesHandler struct {
	repo repository.CommentRepo
}

// NewCategoriesHandler creates a new categories handler
func NewCategoriesHandler(repo repository.CommentRepo) *CategoriesHandler {
	return &CategoriesHandler{repo: repo}
}

// List handles GET /v1/categories
func (h *CategoriesHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.repo.Categories(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load categories")
		return
	}

	writeJSON(w, http.StatusOK, map[string][]string{"categories": categories})
}
