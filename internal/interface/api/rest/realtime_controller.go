package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"excel-analytics-api/internal/application/ports"
	"excel-analytics-api/internal/infrastructure/jwt"
)

type RealtimeController struct {
	realtime   ports.Realtime
	jwtService *jwt.Service
	logger     *zap.Logger
}

func NewRealtimeController(
	r *gin.Engine,
	realtime ports.Realtime,
	logger *zap.Logger,
	jwtService *jwt.Service,
) *RealtimeController {
	rc := &RealtimeController{
		realtime:   realtime,
		jwtService: jwtService,
		logger:     logger,
	}

	r.GET(RouteWS, rc.ConnectHandler)

	return rc
}

// ConnectHandler joins the connection to the room of the token's user.
// Browsers cannot set headers on a websocket handshake, so the token
// travels as a query parameter.
func (rc *RealtimeController) ConnectHandler(c *gin.Context) {
	tokenStr := c.Query("token")
	if tokenStr == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing auth token"})
		return
	}
	claims, err := rc.jwtService.ValidateToken(tokenStr)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	// the upgrader has already answered the client on failure
	if err = rc.realtime.Serve(c.Writer, c.Request, claims.UserID); err != nil {
		rc.logger.Warn("websocket upgrade failed", zap.String("user_id", claims.UserID), zap.Error(err))
	}
}
