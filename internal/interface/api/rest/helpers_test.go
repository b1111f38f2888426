package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	domainHistory "excel-analytics-api/internal/domain/history"
	domainUser "excel-analytics-api/internal/domain/user"
	domainFile "excel-analytics-api/internal/domain/user_file"
	"excel-analytics-api/internal/infrastructure/jwt"
	"excel-analytics-api/internal/interface/api/rest/middleware"
)

const testSecret = "test-secret"

var errNotUsed = errors.New("not used")

type FakeUserService struct {
	FindUserByIDFunc func(ctx context.Context, id domainUser.UUID) (*domainUser.User, error)
	FindByEmailFunc  func(ctx context.Context, email string) (*domainUser.User, error)
	RegisterFunc     func(ctx context.Context, u domainUser.User, password string) (*domainUser.User, error)
}

func (f *FakeUserService) FindUserByID(ctx context.Context, id domainUser.UUID) (*domainUser.User, error) {
	if f.FindUserByIDFunc == nil {
		return nil, errNotUsed
	}
	return f.FindUserByIDFunc(ctx, id)
}

func (f *FakeUserService) FindByEmail(ctx context.Context, email string) (*domainUser.User, error) {
	if f.FindByEmailFunc == nil {
		return nil, errNotUsed
	}
	return f.FindByEmailFunc(ctx, email)
}

func (f *FakeUserService) Register(ctx context.Context, u domainUser.User, password string) (*domainUser.User, error) {
	if f.RegisterFunc == nil {
		return nil, errNotUsed
	}
	return f.RegisterFunc(ctx, u, password)
}

type fakeAuthService struct {
	GenerateTokenFunc func(u *domainUser.User, password string) (string, error)
}

func (f *fakeAuthService) GenerateToken(u *domainUser.User, password string) (string, error) {
	return f.GenerateTokenFunc(u, password)
}

type FakeUserFileService struct {
	UploadFunc         func(ctx context.Context, ownerID uuid.UUID, fileName, mimeType string, data []byte) (*domainFile.UserFile, error)
	FindUserFilesFunc  func(ctx context.Context, userID uuid.UUID) (domainFile.UserFiles, error)
	DeleteUserFileFunc func(ctx context.Context, userID, fileID uuid.UUID) error
}

func (f *FakeUserFileService) Upload(ctx context.Context, ownerID uuid.UUID, fileName, mimeType string, data []byte) (*domainFile.UserFile, error) {
	if f.UploadFunc == nil {
		return nil, errNotUsed
	}
	return f.UploadFunc(ctx, ownerID, fileName, mimeType, data)
}

func (f *FakeUserFileService) FindUserFiles(ctx context.Context, userID uuid.UUID) (domainFile.UserFiles, error) {
	if f.FindUserFilesFunc == nil {
		return nil, errNotUsed
	}
	return f.FindUserFilesFunc(ctx, userID)
}

func (f *FakeUserFileService) DeleteUserFile(ctx context.Context, userID, fileID uuid.UUID) error {
	if f.DeleteUserFileFunc == nil {
		return errNotUsed
	}
	return f.DeleteUserFileFunc(ctx, userID, fileID)
}

type FakeAdminService struct {
	ListUsersFunc  func(ctx context.Context) (domainUser.Users, error)
	ListFilesFunc  func(ctx context.Context) (domainFile.UserFiles, error)
	DeleteUserFunc func(ctx context.Context, actingAdminID, targetID uuid.UUID) error
}

func (f *FakeAdminService) ListUsers(ctx context.Context) (domainUser.Users, error) {
	if f.ListUsersFunc == nil {
		return nil, errNotUsed
	}
	return f.ListUsersFunc(ctx)
}

func (f *FakeAdminService) ListFiles(ctx context.Context) (domainFile.UserFiles, error) {
	if f.ListFilesFunc == nil {
		return nil, errNotUsed
	}
	return f.ListFilesFunc(ctx)
}

func (f *FakeAdminService) DeleteUser(ctx context.Context, actingAdminID, targetID uuid.UUID) error {
	if f.DeleteUserFunc == nil {
		return errNotUsed
	}
	return f.DeleteUserFunc(ctx, actingAdminID, targetID)
}

type FakeAnalysisService struct {
	AnalyzeFunc func(ctx context.Context, userID uuid.UUID) (string, error)
}

func (f *FakeAnalysisService) Analyze(ctx context.Context, userID uuid.UUID) (string, error) {
	return f.AnalyzeFunc(ctx, userID)
}

type recordedAttempt struct {
	userID  *uuid.UUID
	action  string
	details any
}

type fakeHistoryService struct {
	mu      sync.Mutex
	records []recordedAttempt
}

func (f *fakeHistoryService) Record(_ context.Context, userID *uuid.UUID, action string, details any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records = append(f.records, recordedAttempt{userID: userID, action: action, details: details})
}

func (f *fakeHistoryService) FindUserHistory(context.Context, uuid.UUID) (domainHistory.Entries, error) {
	return nil, nil
}

func (f *fakeHistoryService) actions() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.records))
	for i, r := range f.records {
		out[i] = r.action
	}
	return out
}

func newTestEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func makeToken(t *testing.T, userID uuid.UUID, isAdmin bool, ttl time.Duration) string {
	t.Helper()
	tok, err := jwt.New(testSecret).GenerateJWT(userID.String(), isAdmin, "tester", ttl)
	require.NoError(t, err)
	return tok
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var rdr io.Reader
	switch v := body.(type) {
	case nil:
	case string:
		rdr = bytes.NewBufferString(v)
	default:
		b, err := json.Marshal(v)
		require.NoError(t, err)
		rdr = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, rdr)
	if rdr != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(middleware.HeaderAuthToken, token)
	}

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func doUpload(t *testing.T, r http.Handler, path, field, fileName, contentType string, content []byte, token string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if field != "" {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+fileName+`"`)
		h.Set("Content-Type", contentType)
		part, err := mw.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	} else {
		require.NoError(t, mw.WriteField("note", "no file here"))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if token != "" {
		req.Header.Set(middleware.HeaderAuthToken, token)
	}

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var resp map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp), rr.Body.String())
	return resp
}
