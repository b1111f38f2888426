package rest

import (
	"github.com/gin-gonic/gin"

	"excel-analytics-api/internal/application/ports"
	"excel-analytics-api/internal/infrastructure/jwt"
	"excel-analytics-api/internal/interface/api/rest/middleware"
)

const (
	// api
	RouteApi = "/api"

	// auth
	RouteAuth     = RouteApi + "/auth"
	RouteRegister = RouteAuth + "/register"
	RouteLogin    = RouteAuth + "/login"

	// files
	RouteFiles      = RouteApi + "/files"
	RouteFileUpload = "/upload"
	RouteFile       = "/:id"

	// ai
	RouteAI      = RouteApi + "/ai"
	RouteAnalyze = "/analyze"

	RouteHistory = RouteApi + "/history"

	// admin
	RouteAdmin      = RouteApi + "/admin"
	RouteAdminUsers = "/users"
	RouteAdminUser  = RouteAdminUsers + "/:id"
	RouteAdminFiles = "/files"

	// realtime
	RouteWS = RouteApi + "/ws"

	// ops
	RouteHealth  = RouteApi + "/healthz"
	RouteMetrics = RouteApi + "/metrics"
)

// authedGroup requires a valid token and records every request in the
// caller's history.
func authedGroup(
	r *gin.Engine,
	path string,
	jwtService *jwt.Service,
	historyService ports.HistoryService,
	extra ...gin.HandlerFunc,
) *gin.RouterGroup {
	handlers := []gin.HandlerFunc{middleware.AuthMiddleware(jwtService)}
	handlers = append(handlers, extra...)
	handlers = append(handlers, middleware.HistoryLogger(historyService))

	return r.Group(path, handlers...)
}
