package rest

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"excel-analytics-api/internal/application/ports"
	"excel-analytics-api/internal/infrastructure/jwt"
	"excel-analytics-api/internal/interface/api/rest/dto/user_file"
	"excel-analytics-api/internal/interface/api/rest/middleware"
	"excel-analytics-api/internal/interface/api/rest/validator"
)

// room for the multipart envelope around the file itself
const multipartOverhead = int64(1 << 20)

type UserFileController struct {
	userFileService ports.UserFileService
	logger          *zap.Logger
	maxUploadBytes  int64
}

func NewUserFileController(
	r *gin.Engine,
	userFileService ports.UserFileService,
	historyService ports.HistoryService,
	logger *zap.Logger,
	jwtService *jwt.Service,
	maxUploadBytes int64,
) *UserFileController {
	ufc := &UserFileController{
		userFileService: userFileService,
		logger:          logger,
		maxUploadBytes:  maxUploadBytes,
	}

	g := authedGroup(r, RouteFiles, jwtService, historyService)
	g.POST(RouteFileUpload, ufc.UploadHandler)
	g.GET("", ufc.GetUserFilesHandler)
	g.DELETE(RouteFile, ufc.DeleteUserFileHandler)

	return ufc
}

func (ufc *UserFileController) UploadHandler(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing auth token"})
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, ufc.maxUploadBytes+multipartOverhead)
	fh, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	if fh.Size <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	if fh.Size > ufc.maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
		return
	}

	f, err := fh.Open()
	if err != nil {
		ufc.logger.Error("open multipart file", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read the file"})
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		ufc.logger.Error("read multipart file", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read the file"})
		return
	}

	uf, err := ufc.userFileService.Upload(
		c.Request.Context(),
		userID,
		fh.Filename,
		fh.Header.Get("Content-Type"),
		data,
	)
	if err != nil {
		respondError(c, ufc.logger, err, "failed to upload a file")
		return
	}

	c.JSON(http.StatusOK, user_file.UploadResponse{
		Message:  "File uploaded and processed successfully",
		FileID:   uf.UUID,
		FileName: uf.FileName,
	})
}

func (ufc *UserFileController) GetUserFilesHandler(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing auth token"})
		return
	}

	files, err := ufc.userFileService.FindUserFiles(c.Request.Context(), userID)
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to get files"},
		)
		ufc.logger.Error("FindUserFiles() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, user_file.ResponseData{
		Files: user_file.ToResponseUserFiles(files),
	})
}

func (ufc *UserFileController) DeleteUserFileHandler(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing auth token"})
		return
	}
	ok, fileID := validator.IsUUID(c.Param("id"))
	if !ok {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "id must be a valid UUID"},
		)
		return
	}

	if err := ufc.userFileService.DeleteUserFile(c.Request.Context(), userID, fileID); err != nil {
		respondError(c, ufc.logger, err, "failed to delete the file")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "File deleted successfully"})
}
