package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bombastion/taproom-offering-engine/configs"
	"github.com/Bombastion/taproom-offering-engine/repository"
	"github.com/Bombastion/taproom-offering-engine/ws"
)

func newTestEngine(t *testing.T, cfg *configs.Config) (*gin.Engine, *ws.MenuHub) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log, _ := test.NewNullLogger()

	hub := ws.NewMenuHub(log)
	go hub.Run()
	t.Cleanup(hub.Close)

	r := gin.New()
	require.NoError(t, RegisterRoutes(r, Deps{
		Config: cfg,
		Repo:   repository.NewLocalProvider(log),
		Hub:    hub,
		Log:    log,
	}))
	return r, hub
}

func request(r http.Handler, method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestPublicRoutes(t *testing.T) {
	r, _ := newTestEngine(t, &configs.Config{MaxBodyBytes: 1 << 20})

	w := request(r, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok": true}`, w.Body.String())

	w = request(r, http.MethodGet, "/", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/menus/manage")

	for _, path := range []string{"/breweries/manage", "/containers/manage", "/items/manage", "/menus/manage"} {
		assert.Equal(t, http.StatusOK, request(r, http.MethodGet, path, "", "").Code, path)
	}

	w = request(r, http.MethodGet, "/menus", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = request(r, http.MethodGet, "/metrics", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "taproom_http_requests_total")
}

func TestWritesWithoutAuth(t *testing.T) {
	r, _ := newTestEngine(t, &configs.Config{MaxBodyBytes: 1 << 20})

	assert.Equal(t, http.StatusNotFound, request(r, http.MethodPost, "/auth/login", `{"password": "x"}`, "").Code)
	assert.Equal(t, http.StatusCreated, request(r, http.MethodPost, "/menus", `{"internalName": "main", "displayName": "Main"}`, "").Code)
}

func TestBodyLimit(t *testing.T) {
	r, _ := newTestEngine(t, &configs.Config{MaxBodyBytes: 64})

	body := `{"internalName": "main", "displayName": "` + strings.Repeat("x", 100) + `"}`
	assert.Equal(t, http.StatusRequestEntityTooLarge, request(r, http.MethodPost, "/menus", body, "").Code)
}

func TestBodyLimitOnBreweryForm(t *testing.T) {
	r, _ := newTestEngine(t, &configs.Config{MaxBodyBytes: 64})

	form := url.Values{
		"newBreweryName":     {"Hop Yard"},
		"newBreweryLocation": {strings.Repeat("x", 100)},
	}
	req := httptest.NewRequest(http.MethodPost, "/breweries", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)

	listed := request(r, http.MethodGet, "/breweries", "", "")
	require.Equal(t, http.StatusOK, listed.Code)
	assert.JSONEq(t, `[]`, listed.Body.String())
}

func TestAdminAuth(t *testing.T) {
	r, _ := newTestEngine(t, &configs.Config{
		MaxBodyBytes:  1 << 20,
		JWTSecret:     "s3cret",
		AdminPassword: "hunter2",
		JWTTTL:        time.Hour,
	})

	menu := `{"internalName": "main", "displayName": "Main"}`
	assert.Equal(t, http.StatusUnauthorized, request(r, http.MethodPost, "/menus", menu, "").Code)

	assert.Equal(t, http.StatusUnauthorized, request(r, http.MethodPost, "/auth/login", `{"password": "wrong"}`, "").Code)
	assert.Equal(t, http.StatusBadRequest, request(r, http.MethodPost, "/auth/login", `{}`, "").Code)

	w := request(r, http.MethodPost, "/auth/login", `{"password": "hunter2"}`, "")
	require.Equal(t, http.StatusOK, w.Code)
	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))
	require.NotEmpty(t, login.Token)

	assert.Equal(t, http.StatusCreated, request(r, http.MethodPost, "/menus", menu, login.Token).Code)
	// reads stay public
	assert.Equal(t, http.StatusOK, request(r, http.MethodGet, "/menus/1", "", "").Code)
}

func TestLiveMenuReceivesUpdates(t *testing.T) {
	r, hub := newTestEngine(t, &configs.Config{MaxBodyBytes: 1 << 20})
	srv := httptest.NewServer(r)
	defer srv.Close()

	require.Equal(t, http.StatusCreated, request(r, http.MethodPost, "/menus", `{"internalName": "main", "displayName": "Main"}`, "").Code)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/menus/1/live", nil)
	require.NoError(t, err)
	defer conn.Close()
	require.Eventually(t, func() bool { return hub.Subscribers(1) == 1 }, time.Second, 10*time.Millisecond)

	require.Equal(t, http.StatusCreated, request(r, http.MethodPost, "/submenus", `{"internalName": "draft", "displayName": "Draft", "menuId": 1}`, "").Code)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))
	var ev ws.Event
	require.NoError(t, conn.ReadJSON(&ev))
	assert.Equal(t, ws.Event{MenuID: 1, Event: ws.EventMenuUpdated}, ev)

	_, resp, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/menus/9/live", nil)
	assert.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
