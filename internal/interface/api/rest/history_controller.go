package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"excel-analytics-api/internal/application/ports"
	"excel-analytics-api/internal/infrastructure/jwt"
	"excel-analytics-api/internal/interface/api/rest/dto/history"
	"excel-analytics-api/internal/interface/api/rest/middleware"
)

type HistoryController struct {
	historyService ports.HistoryService
	logger         *zap.Logger
}

func NewHistoryController(
	r *gin.Engine,
	historyService ports.HistoryService,
	logger *zap.Logger,
	jwtService *jwt.Service,
) *HistoryController {
	hc := &HistoryController{
		historyService: historyService,
		logger:         logger,
	}

	g := authedGroup(r, RouteHistory, jwtService, historyService)
	g.GET("", hc.GetHistoryHandler)

	return hc
}

func (hc *HistoryController) GetHistoryHandler(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing auth token"})
		return
	}

	entries, err := hc.historyService.FindUserHistory(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get history"})
		hc.logger.Error("FindUserHistory() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, history.ResponseData{History: history.ToResponseEntries(entries)})
}
