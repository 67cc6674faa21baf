package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"gamevault/backend/internal/catalog"
	"gamevault/backend/internal/service"
)

// LookupService provides the distinct value lists and library statistics.
type LookupService interface {
	Genres(ctx context.Context) ([]string, error)
	Tags(ctx context.Context) ([]string, error)
	Developers(ctx context.Context) ([]string, error)
	Publishers(ctx context.Context) ([]string, error)
	Platforms(ctx context.Context) ([]string, error)
	Facets(ctx context.Context) (*service.Facets, error)
	Stats(ctx context.Context) (catalog.StatsReport, error)
}

type LookupHandler struct {
	svc    LookupService
	logger *slog.Logger
}

func NewLookupHandler(svc LookupService, logger *slog.Logger) *LookupHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &LookupHandler{svc: svc, logger: logger}
}

func (h *LookupHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/genres", h.names(h.svc.Genres))
	rg.GET("/tags", h.names(h.svc.Tags))
	rg.GET("/developers", h.names(h.svc.Developers))
	rg.GET("/publishers", h.names(h.svc.Publishers))
	rg.GET("/platforms", h.names(h.svc.Platforms))
	rg.GET("/facets", h.GetFacets)
	rg.GET("/stats", h.GetStats)
}

// names serves a sorted distinct list.
//
// @Summary      Distinct values
// @Description  Alphabetically sorted, de-duplicated genre, tag, developer, publisher or platform names.
// @Tags         lookups
// @Produce      json
// @Success      200 {array}  string
// @Failure      500 {object} ErrorResponse
// @Router       /genres [get]
// @Router       /tags [get]
// @Router       /developers [get]
// @Router       /publishers [get]
// @Router       /platforms [get]
func (h *LookupHandler) names(load func(context.Context) ([]string, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		values, err := load(c.Request.Context())
		if err != nil {
			respondError(c, h.logger, err)
			return
		}
		c.JSON(http.StatusOK, list(values))
	}
}

// GetFacets godoc
// @Summary      All distinct values
// @Description  Returns the five distinct lookups in one response.
// @Tags         lookups
// @Produce      json
// @Success      200 {object} service.Facets
// @Failure      500 {object} ErrorResponse
// @Router       /facets [get]
func (h *LookupHandler) GetFacets(c *gin.Context) {
	facets, err := h.svc.Facets(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	facets.Genres = list(facets.Genres)
	facets.Tags = list(facets.Tags)
	facets.Developers = list(facets.Developers)
	facets.Publishers = list(facets.Publishers)
	facets.Platforms = list(facets.Platforms)
	c.JSON(http.StatusOK, facets)
}

// GetStats godoc
// @Summary      Library statistics
// @Description  Totals, average score and distributions over every game.
// @Tags         lookups
// @Produce      json
// @Success      200 {object} catalog.StatsReport
// @Failure      500 {object} ErrorResponse
// @Router       /stats [get]
func (h *LookupHandler) GetStats(c *gin.Context) {
	report, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	report.TopDevelopers = list(report.TopDevelopers)
	report.TopPublishers = list(report.TopPublishers)
	c.JSON(http.StatusOK, report)
}
