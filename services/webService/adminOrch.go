package webService

import (
	"errors"
	"net/http"
	"strconv"

	"fairwayBook/models"
	"fairwayBook/services/settleService"
	"fairwayBook/services/statService"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AdminOrch is the operator surface: manual/override settlement triggers
// and the cached stat read used by the dashboard.
type AdminOrch struct {
	orch  *settleService.SettleOrch
	cache *statService.StatCache // nil when redis is not configured
}

func NewAdminOrch(orch *settleService.SettleOrch, cache *statService.StatCache) *AdminOrch {
	return &AdminOrch{orch: orch, cache: cache}
}

func NewRouter(a *AdminOrch) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	api.POST("/tournaments/:id/settle", a.SettleTournament)
	api.GET("/tournaments/:id/stats", a.TournamentStats)

	return router
}

func (a *AdminOrch) SettleTournament(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tournament id"})
		return
	}

	method := c.DefaultQuery("method", models.MethodManual)
	if method != models.MethodManual && method != models.MethodOverride {
		c.JSON(http.StatusBadRequest, gin.H{"error": "method must be manual or override"})
		return
	}

	result, err := a.orch.SettleEvent(uint(id), method)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		var fetchErr *statService.FetchError
		if errors.As(err, &fetchErr) {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (a *AdminOrch) TournamentStats(c *gin.Context) {
	if a.cache == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "stat cache not configured"})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tournament id"})
		return
	}

	stats, err := a.cache.GetStats(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if stats == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no cached stats for tournament"})
		return
	}

	c.JSON(http.StatusOK, stats)
}
