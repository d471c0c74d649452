package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"charity-merch-api/internal/service"
)

type StatsController struct {
	Service *service.StatsService
}

func NewStatsController(s *service.StatsService) *StatsController {
	return &StatsController{Service: s}
}

// GET /api/statistics/summary (admin)
func (ctl *StatsController) Summary(c *gin.Context) {
	stats, err := ctl.Service.Summary(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, stats)
}

// GET /api/statistics/daily (admin)
func (ctl *StatsController) Daily(c *gin.Context) {
	stats, err := ctl.Service.Daily(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, stats)
}

// GET /api/statistics/top-products (admin)
func (ctl *StatsController) TopProducts(c *gin.Context) {
	stats, err := ctl.Service.TopProducts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, stats)
}

// GET /api/statistics/sizes (admin)
func (ctl *StatsController) Sizes(c *gin.Context) {
	stats, err := ctl.Service.SizeDistribution(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, stats)
}

// GET /api/statistics/public, unauthenticated storefront counter
func (ctl *StatsController) Public(c *gin.Context) {
	stats, err := ctl.Service.Public(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, stats)
}
