package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"excel-analytics-api/internal/application/ports"
	"excel-analytics-api/internal/application/services"
	"excel-analytics-api/internal/interface/api/rest/dto/auth"
	dtoUser "excel-analytics-api/internal/interface/api/rest/dto/user"
	"excel-analytics-api/internal/interface/api/rest/validator"
)

const (
	actionRegister = "register"
	actionLogin    = "login"
)

type AuthController struct {
	logger         *zap.Logger
	userService    ports.UserService
	authService    ports.Auth
	historyService ports.HistoryService
}

func NewAuthController(
	r *gin.Engine,
	logger *zap.Logger,
	userService ports.UserService,
	authService ports.Auth,
	historyService ports.HistoryService,
) *AuthController {
	ac := &AuthController{
		logger:         logger,
		userService:    userService,
		authService:    authService,
		historyService: historyService,
	}

	r.POST(RouteRegister, ac.RegisterHandler)
	r.POST(RouteLogin, ac.LoginHandler)

	return ac
}

// attempt records one auth attempt; userID is nil when no account matched.
func (ac *AuthController) attempt(c *gin.Context, userID *uuid.UUID, action, email, outcome string) {
	ac.historyService.Record(c.Request.Context(), userID, action, gin.H{
		"email":   services.NormalizeEmail(email),
		"outcome": outcome,
	})
}

func (ac *AuthController) RegisterHandler(c *gin.Context) {
	var req auth.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ac.attempt(c, nil, actionRegister, "", "invalid json")
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "invalid json"},
		)
		return
	}

	if errs := validator.ValidateRegister(req); errs != nil {
		ac.attempt(c, nil, actionRegister, req.Email, "invalid request body")
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": errs,
		})
		return
	}

	u, err := ac.userService.Register(c.Request.Context(), dtoUser.ToDomainUser(req), req.Password)
	if err != nil {
		ac.attempt(c, nil, actionRegister, req.Email, err.Error())
		respondError(c, ac.logger, err, "failed to register a user")
		return
	}

	ac.attempt(c, &u.UUID, actionRegister, u.Email, "success")
	c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully"})
}

func (ac *AuthController) LoginHandler(c *gin.Context) {
	var req auth.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ac.attempt(c, nil, actionLogin, "", "invalid json")
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "invalid json"},
		)
		return
	}

	if errs := validator.ValidateLogin(req); errs != nil {
		ac.attempt(c, nil, actionLogin, req.Email, "invalid request body")
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": errs,
		})
		return
	}

	u, err := ac.userService.FindByEmail(c.Request.Context(), req.Email)
	if err != nil {
		ac.attempt(c, nil, actionLogin, req.Email, "lookup failed")
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to get a user"},
		)
		ac.logger.Error("FindByEmail() error", zap.Error(err))
		return
	}
	if u == nil {
		ac.attempt(c, nil, actionLogin, req.Email, services.ErrUserNotFound.Error())
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": services.ErrUserNotFound.Error()},
		)
		return
	}

	token, err := ac.authService.GenerateToken(u, req.Password)
	if err != nil {
		ac.attempt(c, &u.UUID, actionLogin, req.Email, err.Error())
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		ac.logger.Error("GenerateToken() error", zap.Error(err), zap.Stringer("user_uuid", u.UUID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ac.attempt(c, &u.UUID, actionLogin, req.Email, "success")
	c.JSON(http.StatusOK, auth.LoginResponse{
		Message: "Login successful",
		Token:   token,
	})
}
