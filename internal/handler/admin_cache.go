package handler

import (
	"net/http"

	"github.com/osse101/DeckBuilder_Go/internal/cardsearch"
	"github.com/osse101/DeckBuilder_Go/internal/catalog"
)

// SearchCache is the search result cache as seen by admins
type SearchCache interface {
	Stats() cardsearch.CacheStats
	Purge()
}

// CacheStatsResponse groups the statistics of both caches
type CacheStatsResponse struct {
	Catalog catalog.CacheStats    `json:"catalog"`
	Search  cardsearch.CacheStats `json:"search"`
}

// AdminCacheHandler handles admin cache operations
type AdminCacheHandler struct {
	catalog catalog.Service
	search  SearchCache
}

// NewAdminCacheHandler creates a new admin cache handler
func NewAdminCacheHandler(cat catalog.Service, search SearchCache) *AdminCacheHandler {
	return &AdminCacheHandler{catalog: cat, search: search}
}

// HandleGetCacheStats returns hit/miss statistics for monitoring
// GET /api/v1/admin/cache/stats
func (h *AdminCacheHandler) HandleGetCacheStats(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, CacheStatsResponse{
		Catalog: h.catalog.Stats(),
		Search:  h.search.Stats(),
	})
}

// HandlePurgeSearchCache drops every cached search result. The catalog
// cache is never purged; its entries cannot go stale.
// POST /api/v1/admin/cache/purge
func (h *AdminCacheHandler) HandlePurgeSearchCache(w http.ResponseWriter, r *http.Request) {
	h.search.Purge()
	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgCachePurged})
}
