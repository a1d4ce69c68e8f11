package api

import (
	"net/http"

	"github.com/okian/podium/internal/domain/badges"
	"github.com/okian/podium/internal/domain/progression"
)

// CatalogHandler serves the static badge catalog and level ladder.
type CatalogHandler struct {
	badges []badges.Definition
	levels []progression.Level
}

// NewCatalogHandler creates a catalog handler over the default tables.
func NewCatalogHandler() *CatalogHandler {
	return &CatalogHandler{
		badges: badges.DefaultCatalog(),
		levels: progression.Levels(),
	}
}

// HandleBadges handles GET /badges requests.
func (h *CatalogHandler) HandleBadges(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.badges)
}

// HandleLevels handles GET /levels requests.
func (h *CatalogHandler) HandleLevels(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.levels)
}
