package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"excel-analytics-api/internal/application/services"
	"excel-analytics-api/internal/domain/progress"
	"excel-analytics-api/internal/infrastructure/db/memory"
	"excel-analytics-api/internal/infrastructure/jwt"
	"excel-analytics-api/internal/infrastructure/mq"
	"excel-analytics-api/internal/infrastructure/realtime"
	"excel-analytics-api/internal/infrastructure/spreadsheet"
	"excel-analytics-api/internal/infrastructure/storage"
	"excel-analytics-api/internal/interface/api/rest/dto/auth"
)

const q1CSV = "region,sales\nnorth,10\nsouth,20\n"

type stack struct {
	srv *httptest.Server
	hub *realtime.Hub
	jwt *jwt.Service
}

func newStack(t *testing.T) *stack {
	t.Helper()
	logger := zap.NewNop()
	counter := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "test_counters"}, []string{"result"})

	blobs, err := storage.NewLocal(logger, t.TempDir())
	require.NoError(t, err)

	userRepo := memory.NewUserRepository()
	fileRepo := memory.NewUserFileRepository(userRepo)
	historyRepo := memory.NewHistoryRepository()

	hub := realtime.NewHub(logger)
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	jwtService := jwt.New(testSecret)
	historyService := services.NewHistoryService(logger, historyRepo)
	userService := services.NewUserService(userRepo, mq.Nop{}, counter)
	authService := services.NewAuthService(jwtService, time.Hour)
	codec := spreadsheet.New()
	fileService := services.NewUserFileService(logger, blobs, codec, fileRepo, hub, mq.Nop{}, counter)
	adminService := services.NewAdminService(logger, userRepo, fileRepo, blobs, mq.Nop{}, counter)

	r := newTestEngine()
	NewAuthController(r, logger, userService, authService, historyService)
	NewUserFileController(r, fileService, historyService, logger, jwtService, 10<<20)
	NewHistoryController(r, historyService, logger, jwtService)
	NewAdminController(r, adminService, historyService, logger, jwtService)
	NewRealtimeController(r, hub, logger, jwtService)

	srv := httptest.NewServer(r)
	t.Cleanup(func() {
		srv.Close()
		cancel()
	})

	return &stack{srv: srv, hub: hub, jwt: jwtService}
}

func TestEndToEnd_RegisterLoginUploadList(t *testing.T) {
	s := newStack(t)
	h := s.srv.Config.Handler

	// register
	reg := auth.RegisterRequest{Name: "Ann", Email: "ann@example.com", Password: "secret"}
	rr := doJSON(t, h, http.MethodPost, RouteRegister, reg, "")
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	// duplicate registration is rejected
	rr = doJSON(t, h, http.MethodPost, RouteRegister, reg, "")
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "user already exists", decodeBody(t, rr)["error"])

	// login
	rr = doJSON(t, h, http.MethodPost, RouteLogin, auth.LoginRequest{Email: "ANN@example.com", Password: "secret"}, "")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	token, _ := decodeBody(t, rr)["token"].(string)
	require.NotEmpty(t, token)
	claims, err := s.jwt.ValidateToken(token)
	require.NoError(t, err)

	// progress channel
	wsURL := "ws" + strings.TrimPrefix(s.srv.URL, "http") + RouteWS + "?token=" + token
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()
	require.Eventually(t, func() bool { return s.hub.RoomSize(claims.UserID) == 1 }, time.Second, 10*time.Millisecond)

	// upload
	rr = doUpload(t, h, RouteFiles+RouteFileUpload, "file", "q1.csv", "text/csv", []byte(q1CSV), token)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, "q1.csv", decodeBody(t, rr)["filename"])

	var seen []int
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	for len(seen) == 0 || seen[len(seen)-1] != 100 {
		var frame struct {
			Event string         `json:"event"`
			Data  progress.Event `json:"data"`
		}
		_, msg, err := conn.ReadMessage()
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(msg, &frame))
		require.Equal(t, progress.FileProcessing, frame.Event)
		seen = append(seen, frame.Data.Progress)
	}
	assert.Equal(t, []int{5, 15, 40, 60, 80, 95, 100}, seen)

	// list
	rr = doJSON(t, h, http.MethodGet, RouteFiles, nil, token)
	require.Equal(t, http.StatusOK, rr.Code)
	files := decodeBody(t, rr)["files"].([]any)
	require.Len(t, files, 1)
	f := files[0].(map[string]any)
	assert.Equal(t, "q1.csv", f["filename"])
	assert.Equal(t, []any{
		map[string]any{"region": "north", "sales": float64(10)},
		map[string]any{"region": "south", "sales": float64(20)},
	}, f["data"])

	// history holds the auth attempts of the account and its requests
	rr = doJSON(t, h, http.MethodGet, RouteHistory, nil, token)
	require.Equal(t, http.StatusOK, rr.Code)
	var actions []string
	for _, e := range decodeBody(t, rr)["history"].([]any) {
		actions = append(actions, e.(map[string]any)["action"].(string))
	}
	assert.Contains(t, actions, actionRegister)
	assert.Contains(t, actions, actionLogin)
	assert.Contains(t, actions, "POST "+RouteFiles+RouteFileUpload)
	assert.Contains(t, actions, "GET "+RouteFiles)
}

func TestEndToEnd_AdminDeletesUserAndFiles(t *testing.T) {
	s := newStack(t)
	h := s.srv.Config.Handler

	register := func(name, email string, admin bool) string {
		rr := doJSON(t, h, http.MethodPost, RouteRegister,
			auth.RegisterRequest{Name: name, Email: email, Password: "secret", IsAdmin: admin}, "")
		require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
		rr = doJSON(t, h, http.MethodPost, RouteLogin, auth.LoginRequest{Email: email, Password: "secret"}, "")
		require.Equal(t, http.StatusOK, rr.Code)
		return decodeBody(t, rr)["token"].(string)
	}

	adminToken := register("Root", "root@example.com", true)
	userToken := register("Bob", "bob@example.com", false)
	userClaims, err := s.jwt.ValidateToken(userToken)
	require.NoError(t, err)
	adminClaims, err := s.jwt.ValidateToken(adminToken)
	require.NoError(t, err)

	for _, name := range []string{"a.csv", "b.csv"} {
		rr := doUpload(t, h, RouteFiles+RouteFileUpload, "file", name, "text/csv", []byte(q1CSV), userToken)
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	}

	rr := doJSON(t, h, http.MethodGet, RouteAdmin+RouteAdminFiles, nil, adminToken)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, decodeBody(t, rr)["files"], 2)

	rr = doJSON(t, h, http.MethodDelete, RouteAdmin+RouteAdminUsers+"/"+adminClaims.UserID, nil, adminToken)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = doJSON(t, h, http.MethodDelete, RouteAdmin+RouteAdminUsers+"/"+userClaims.UserID, nil, adminToken)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr = doJSON(t, h, http.MethodGet, RouteAdmin+RouteAdminFiles, nil, adminToken)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, decodeBody(t, rr)["files"], 0)

	rr = doJSON(t, h, http.MethodGet, RouteAdmin+RouteAdminUsers, nil, adminToken)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, decodeBody(t, rr)["users"], 1)
}

func TestRealtimeController_RejectsWithoutToken(t *testing.T) {
	r := newTestEngine()
	NewRealtimeController(r, realtime.NewHub(zap.NewNop()), zap.NewNop(), jwt.New(testSecret))

	for _, path := range []string{RouteWS, RouteWS + "?token=garbage"} {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusUnauthorized, rr.Code, path)
	}
}
