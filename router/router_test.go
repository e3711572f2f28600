package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"pandemic-deck/repository"
	"pandemic-deck/service"
	"pandemic-deck/ws"
)

func newTestRouter(token string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()
	hub := ws.NewHub(logger)
	session := service.NewSession(repository.NewMemoryStorage(), logger, service.WithNotifier(hub))

	r := gin.New()
	InitRouter(r, session, hub, Options{AuthToken: token})
	return r
}

func serve(r http.Handler, method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestMutatingRoutesRequireToken(t *testing.T) {
	r := newTestRouter("secret")

	w := serve(r, http.MethodPost, "/api/deck/discard", `{"city":"Lagos"}`, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = serve(r, http.MethodPost, "/api/deck/discard", `{"city":"Lagos"}`, "wrong")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = serve(r, http.MethodPost, "/api/deck/discard", `{"city":"Lagos"}`, "secret")
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// 查询接口不需要 token
	w = serve(r, http.MethodGet, "/api/deck", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	w = serve(r, http.MethodGet, "/api/deck/forecast?draws=1", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRoutesWithoutToken(t *testing.T) {
	r := newTestRouter("")

	steps := []struct {
		path string
		body string
	}{
		{"/api/deck/player/draw/city", `{"city":"London"}`},
		{"/api/deck/player/remove", `{"city":"London"}`},
		{"/api/deck/player/return", `{"city":"London"}`},
		{"/api/deck/discard", `{"city":"Cairo"}`},
		{"/api/deck/discard/remove", `{"city":"Cairo"}`},
		{"/api/deck/removed/return", `{"city":"Cairo","zone":"C"}`},
		{"/api/deck/cities", `{"city":"Lima","count":2,"color":"Yellow"}`},
		{"/api/deck/new-game", `{"players":3,"events":1}`},
		{"/api/deck/undo", ``},
		{"/api/deck/reset", ``},
	}
	for _, step := range steps {
		w := serve(r, http.MethodPost, step.path, step.body, "")
		require.Equal(t, http.StatusOK, w.Code, "%s: %s", step.path, w.Body.String())
	}

	w := serve(r, http.MethodPost, "/api/deck/player/draw/event", "", "")
	assert.Equal(t, http.StatusConflict, w.Code)
	w = serve(r, http.MethodPost, "/api/deck/player/draw/epidemic", "", "")
	assert.Equal(t, http.StatusConflict, w.Code)
	w = serve(r, http.MethodPost, "/api/deck/epidemic", `{"city":"Cairo"}`, "")
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	r := newTestRouter("")
	serve(r, http.MethodPost, "/api/deck/discard", `{"city":"Tripoli"}`, "")

	w := serve(r, http.MethodGet, "/metrics", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "deck_operations_total")
	assert.Contains(t, w.Body.String(), "deck_history_depth")
}
