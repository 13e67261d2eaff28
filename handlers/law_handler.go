package handlers

import (
	"context"
	"errors"
	"net/http"

	"nyaya-backend/logger"
	"nyaya-backend/models"
	"nyaya-backend/search"
	"nyaya-backend/service"

	"github.com/gin-gonic/gin"
)

// Pinger reports whether the statute store is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// LawHandler handles HTTP requests for statute search and browsing
type LawHandler struct {
	lawService *service.LawService
	pinger     Pinger
}

// NewLawHandler creates a new law handler. pinger may be nil, in which case
// readiness always reports ready.
func NewLawHandler(lawService *service.LawService, pinger Pinger) *LawHandler {
	return &LawHandler{
		lawService: lawService,
		pinger:     pinger,
	}
}

// RegisterRoutes mounts the health and /laws routes on r
func (h *LawHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", h.Health)
	r.GET("/health/ready", h.Ready)

	laws := r.Group("/laws")
	{
		laws.GET("/search", h.Search)
		laws.GET("/semantic-search", h.SemanticSearch)
		laws.GET("/acts", h.ListActs)
		laws.GET("/act/:actName", h.GetActSections)
		laws.GET("/:id", h.GetSection)
	}
}

// SearchResponse is the body of GET /laws/search. Results holds either
// LegalSection rows or semantic hits, according to Source.
type SearchResponse struct {
	Count   int            `json:"count"`
	Results interface{}    `json:"results"`
	Source  service.Source `json:"source"`
}

// Search handles GET /laws/search
func (h *LawHandler) Search(c *gin.Context) {
	var filters search.Filters
	if err := c.ShouldBindQuery(&filters); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid search parameters"})
		return
	}

	result, err := h.lawService.Search(c.Request.Context(), filters)
	if err != nil {
		logger.C(c.Request.Context()).Error().Err(err).Str("query", filters.Query).Msg("law search failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Search failed"})
		return
	}

	resp := SearchResponse{Count: result.Count(), Source: result.Source}
	if result.Source == service.SourceSemantic {
		resp.Results = result.SemanticHits
	} else {
		resp.Results = result.Sections()
	}
	c.JSON(http.StatusOK, resp)
}

// SemanticSearchQuery represents the query string of GET /laws/semantic-search
type SemanticSearchQuery struct {
	Query    string `form:"query"`
	State    string `form:"state"`
	Language string `form:"language"`
	TopK     *int   `form:"top_k" binding:"omitempty,min=1,max=50"`
}

// SemanticSearch handles GET /laws/semantic-search
func (h *LawHandler) SemanticSearch(c *gin.Context) {
	var q SemanticSearchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": service.ErrInvalidTopK.Error()})
		return
	}

	resp, err := h.lawService.SemanticSearch(c.Request.Context(), service.SemanticSearchRequest{
		Query:    q.Query,
		State:    q.State,
		Language: q.Language,
		TopK:     q.TopK,
	})
	switch {
	case errors.Is(err, service.ErrQueryRequired), errors.Is(err, service.ErrInvalidTopK):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	case err != nil:
		logger.C(c.Request.Context()).Error().Err(err).Str("query", q.Query).Msg("semantic search failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Semantic search failed"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ListActs handles GET /laws/acts
func (h *LawHandler) ListActs(c *gin.Context) {
	acts, err := h.lawService.ListActs(c.Request.Context())
	if err != nil {
		logger.C(c.Request.Context()).Error().Err(err).Msg("list acts failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch acts"})
		return
	}
	if acts == nil {
		acts = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"acts": acts})
}

// GetActSections handles GET /laws/act/:actName
func (h *LawHandler) GetActSections(c *gin.Context) {
	act := c.Param("actName")

	sections, err := h.lawService.GetActSections(c.Request.Context(), act)
	if err != nil {
		logger.C(c.Request.Context()).Error().Err(err).Str("act", act).Msg("list act sections failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch sections for act"})
		return
	}
	if sections == nil {
		sections = []models.LegalSection{}
	}
	c.JSON(http.StatusOK, gin.H{
		"act":      act,
		"sections": sections,
	})
}

// GetSection handles GET /laws/:id
func (h *LawHandler) GetSection(c *gin.Context) {
	id := c.Param("id")

	section, err := h.lawService.GetSection(c.Request.Context(), id)
	if errors.Is(err, service.ErrSectionNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Section not found"})
		return
	}
	if err != nil {
		logger.C(c.Request.Context()).Error().Err(err).Str("id", id).Msg("get section failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch section"})
		return
	}

	c.JSON(http.StatusOK, section)
}

// Health handles GET /health
func (h *LawHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready handles GET /health/ready
func (h *LawHandler) Ready(c *gin.Context) {
	if h.pinger != nil {
		if err := h.pinger.Ping(c.Request.Context()); err != nil {
			logger.C(c.Request.Context()).Warn().Err(err).Msg("readiness check failed")
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
