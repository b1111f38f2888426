package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"excel-analytics-api/internal/application/ports"
	"excel-analytics-api/internal/infrastructure/jwt"
	"excel-analytics-api/internal/interface/api/rest/middleware"
)

type AnalysisController struct {
	analysisService ports.AnalysisService
	logger          *zap.Logger
}

func NewAnalysisController(
	r *gin.Engine,
	analysisService ports.AnalysisService,
	historyService ports.HistoryService,
	logger *zap.Logger,
	jwtService *jwt.Service,
) *AnalysisController {
	anc := &AnalysisController{
		analysisService: analysisService,
		logger:          logger,
	}

	g := authedGroup(r, RouteAI, jwtService, historyService)
	g.POST(RouteAnalyze, anc.AnalyzeHandler)

	return anc
}

func (anc *AnalysisController) AnalyzeHandler(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing auth token"})
		return
	}

	insights, err := anc.analysisService.Analyze(c.Request.Context(), userID)
	if err != nil {
		respondError(c, anc.logger, err, "failed to analyze the file")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "AI analysis complete",
		"insights": insights,
	})
}
