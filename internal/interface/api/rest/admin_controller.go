package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"excel-analytics-api/internal/application/ports"
	"excel-analytics-api/internal/infrastructure/jwt"
	"excel-analytics-api/internal/interface/api/rest/dto/user"
	"excel-analytics-api/internal/interface/api/rest/dto/user_file"
	"excel-analytics-api/internal/interface/api/rest/middleware"
	"excel-analytics-api/internal/interface/api/rest/validator"
)

type AdminController struct {
	adminService ports.AdminService
	logger       *zap.Logger
}

func NewAdminController(
	r *gin.Engine,
	adminService ports.AdminService,
	historyService ports.HistoryService,
	logger *zap.Logger,
	jwtService *jwt.Service,
) *AdminController {
	adc := &AdminController{
		adminService: adminService,
		logger:       logger,
	}

	g := authedGroup(r, RouteAdmin, jwtService, historyService, middleware.RequireAdmin())
	g.GET(RouteAdminUsers, adc.GetUsersHandler)
	g.GET(RouteAdminFiles, adc.GetFilesHandler)
	g.DELETE(RouteAdminUser, adc.DeleteUserHandler)

	return adc
}

func (adc *AdminController) GetUsersHandler(c *gin.Context) {
	us, err := adc.adminService.ListUsers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get users"})
		adc.logger.Error("ListUsers() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, user.ResponseData{Users: user.ToResponseUsers(us)})
}

func (adc *AdminController) GetFilesHandler(c *gin.Context) {
	fls, err := adc.adminService.ListFiles(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get files"})
		adc.logger.Error("ListFiles() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, user_file.ResponseData{Files: user_file.ToResponseUserFiles(fls)})
}

func (adc *AdminController) DeleteUserHandler(c *gin.Context) {
	adminID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing auth token"})
		return
	}
	ok, targetID := validator.IsUUID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be a valid UUID"})
		return
	}

	if err := adc.adminService.DeleteUser(c.Request.Context(), adminID, targetID); err != nil {
		respondError(c, adc.logger, err, "failed to delete the user")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User and their files deleted successfully"})
}
