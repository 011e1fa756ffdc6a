package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redmonkez12/friend-app/internal/activity"
	"github.com/redmonkez12/friend-app/internal/auth"
	"github.com/redmonkez12/friend-app/internal/config"
	"github.com/redmonkez12/friend-app/internal/database/databasetest"
	"github.com/redmonkez12/friend-app/internal/goal"
	"github.com/redmonkez12/friend-app/internal/logging"
	"github.com/redmonkez12/friend-app/internal/message"
	"github.com/redmonkez12/friend-app/internal/metrics"
	"github.com/redmonkez12/friend-app/internal/ratelimit"
	"github.com/redmonkez12/friend-app/internal/realtime"
	"github.com/redmonkez12/friend-app/internal/user"
)

var testSecret = []byte("router-test-secret-0123456789")

type testAPI struct {
	t      *testing.T
	router *chi.Mux
	tokens auth.TokenService
}

func newTestAPI(t *testing.T, limiter ratelimit.Limiter) *testAPI {
	t.Helper()

	db := databasetest.NewSQLite(t)
	logger := logging.Discard()

	tokens, err := auth.NewJWTService(testSecret)
	require.NoError(t, err)

	hasher := &auth.Argon2Hasher{Time: 1, Memory: 64, Threads: 1, KeyLen: 32}
	authService := auth.NewService(user.NewRepository(db), tokens, hasher, logger, 7*24*time.Hour)

	cfg := &config.Config{
		Server:   config.ServerConfig{Env: "prod"},
		Database: config.DatabaseConfig{Driver: config.DriverSQLite},
	}

	hub := realtime.NewHub(logger, nil)
	t.Cleanup(hub.Close)

	router := NewRouter(RouterDeps{
		Config:          cfg,
		Logger:          logger,
		DB:              db,
		AuthHandler:     auth.NewHandler(authService),
		AuthMiddleware:  auth.NewMiddleware(tokens),
		ActivityHandler: activity.NewHandler(activity.NewRepository(db)),
		GoalHandler:     goal.NewHandler(goal.NewRepository(db)),
		MessageHandler:  message.NewHandler(message.NewRepository(db)),
		RateLimiter:     limiter,
		Metrics:         metrics.New(),
		Hub:             hub,
	})

	return &testAPI{t: t, router: router, tokens: tokens}
}

func (a *testAPI) do(method, path, token string, body any) *httptest.ResponseRecorder {
	a.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func (a *testAPI) signup(username string) (string, int64) {
	a.t.Helper()

	rec := a.do(http.MethodPost, "/api/auth/signup", "", map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": "pw-" + username,
		"fullName": "Full " + username,
	})
	require.Equal(a.t, http.StatusOK, rec.Code, rec.Body.String())

	resp := decode[auth.AuthResponse](a.t, rec)
	require.True(a.t, resp.Success)
	require.NotEmpty(a.t, resp.Token)
	return resp.Token, resp.User.ID
}

func TestSignupThenMe(t *testing.T) {
	api := newTestAPI(t, nil)
	token, id := api.signup("alice")

	rec := api.do(http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	me := decode[map[string]any](t, rec)
	assert.Equal(t, float64(id), me["id"])
	assert.Equal(t, "alice", me["username"])
	assert.Equal(t, "alice@example.com", me["email"])
	assert.Equal(t, "Full alice", me["fullName"])
	assert.Nil(t, me["bio"])
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestSignupValidationAndDuplicates(t *testing.T) {
	api := newTestAPI(t, nil)
	api.signup("alice")

	rec := api.do(http.MethodPost, "/api/auth/signup", "", map[string]string{"username": "bob"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Missing fields", decode[map[string]string](t, rec)["error"])

	rec = api.do(http.MethodPost, "/api/auth/signup", "", map[string]string{
		"username": "alice", "email": "new@example.com", "password": "x",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Username or email already exists", decode[map[string]string](t, rec)["error"])

	rec = api.do(http.MethodPost, "/api/auth/signup", "", map[string]string{
		"username": "alice2", "email": "alice@example.com", "password": "x",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "new@example.com", "password": "x",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code, "rejected signup must not create a row")
}

func TestLogin(t *testing.T) {
	api := newTestAPI(t, nil)
	_, id := api.signup("alice")

	rec := api.do(http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "alice@example.com", "password": "pw-alice",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[auth.AuthResponse](t, rec)

	rec = api.do(http.MethodGet, "/api/auth/me", resp.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(id), decode[map[string]any](t, rec)["id"])

	rec = api.do(http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "alice@example.com", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	body := decode[map[string]any](t, rec)
	assert.Equal(t, "Invalid email or password", body["error"])
	assert.NotContains(t, body, "token")

	rec = api.do(http.MethodPost, "/api/auth/login", "", map[string]string{"email": "alice@example.com"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Missing email or password", decode[map[string]any](t, rec)["error"])
}

func TestProtectedRoutesRejectBadTokens(t *testing.T) {
	api := newTestAPI(t, nil)
	token, id := api.signup("alice")

	expired, err := api.tokens.CreateToken(id, -time.Minute)
	require.NoError(t, err)
	tampered := token[:len(token)-3] + "abc"
	if tampered == token {
		tampered = token[:len(token)-3] + "xyz"
	}

	routes := []struct{ method, path string }{
		{http.MethodGet, "/api/auth/me"},
		{http.MethodGet, "/api/activities"},
		{http.MethodPost, "/api/activities"},
		{http.MethodGet, "/api/goals"},
		{http.MethodPost, "/api/goals"},
		{http.MethodPost, "/api/messages"},
		{http.MethodGet, "/api/messages/1"},
	}

	for _, route := range routes {
		rec := api.do(route.method, route.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, route.path)
		assert.Equal(t, "No token provided", decode[map[string]string](t, rec)["error"])

		for _, bad := range []string{expired, tampered} {
			rec = api.do(route.method, route.path, bad, nil)
			assert.Equal(t, http.StatusUnauthorized, rec.Code, route.path)
			assert.Equal(t, "Invalid token", decode[map[string]string](t, rec)["error"])
		}
	}
}

func TestMeForDeletedUserIsNotFound(t *testing.T) {
	api := newTestAPI(t, nil)

	token, err := api.tokens.CreateToken(9999, time.Hour)
	require.NoError(t, err)

	rec := api.do(http.MethodGet, "/api/auth/me", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "User not found", decode[map[string]string](t, rec)["error"])
}

func TestActivities_OrderAndIsolation(t *testing.T) {
	api := newTestAPI(t, nil)
	alice, aliceID := api.signup("alice")
	bob, _ := api.signup("bob")

	for _, date := range []string{"2024-01-01", "2024-03-01", "2024-02-01"} {
		rec := api.do(http.MethodPost, "/api/activities", alice, map[string]any{
			"type": "run", "title": "Run " + date, "duration": 30, "mood": "good", "score": 7, "date": date,
		})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		created := decode[map[string]any](t, rec)
		assert.Equal(t, true, created["success"])
		assert.NotZero(t, created["id"])
	}

	rec := api.do(http.MethodGet, "/api/activities", alice, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[[]map[string]any](t, rec)
	require.Len(t, list, 3)
	assert.Equal(t, "2024-03-01", list[0]["date"])
	assert.Equal(t, "2024-02-01", list[1]["date"])
	assert.Equal(t, "2024-01-01", list[2]["date"])
	assert.Equal(t, float64(aliceID), list[0]["userId"])

	rec = api.do(http.MethodGet, "/api/activities", bob, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestCreate_NumericFieldsStoredAsGiven(t *testing.T) {
	api := newTestAPI(t, nil)
	alice, aliceID := api.signup("alice")
	bob, bobID := api.signup("bob")

	rec := api.do(http.MethodPost, "/api/activities", alice, map[string]any{"title": "fractional", "duration": 30.5, "date": "2024-02-01"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	rec = api.do(http.MethodPost, "/api/activities", alice, map[string]any{"title": "strings", "duration": "30", "score": "85", "date": "2024-01-01"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	activities := decode[[]map[string]any](t, api.do(http.MethodGet, "/api/activities", alice, nil))
	require.Len(t, activities, 2)
	assert.Equal(t, 30.5, activities[0]["duration"])
	assert.Equal(t, float64(30), activities[1]["duration"])
	assert.Equal(t, float64(85), activities[1]["score"])

	rec = api.do(http.MethodPost, "/api/goals", alice, map[string]any{"title": "Read", "target": "12"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	goals := decode[[]map[string]any](t, api.do(http.MethodGet, "/api/goals", alice, nil))
	require.Len(t, goals, 1)
	assert.Equal(t, float64(12), goals[0]["target"])

	rec = api.do(http.MethodPost, "/api/messages", alice, map[string]any{"receiverId": strconv.FormatInt(bobID, 10), "message": "hi"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	msgs := decode[[]map[string]any](t, api.do(http.MethodGet, "/api/messages/"+strconv.FormatInt(aliceID, 10), bob, nil))
	require.Len(t, msgs, 1)
	assert.Equal(t, float64(bobID), msgs[0]["receiverId"])

	rec = api.do(http.MethodPost, "/api/activities", alice, map[string]any{"duration": "long"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreate_OversizedBodyRejected(t *testing.T) {
	api := newTestAPI(t, nil)
	alice, _ := api.signup("alice")

	rec := api.do(http.MethodPost, "/api/activities", alice, map[string]any{"title": strings.Repeat("x", 2<<20)})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid request body", decode[map[string]string](t, rec)["error"])
}

func TestAuth_SchemeIsCaseInsensitive(t *testing.T) {
	api := newTestAPI(t, nil)
	token, _ := api.signup("alice")

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "bearer "+token)
	rec := httptest.NewRecorder()
	api.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestGoals_RoundTrip(t *testing.T) {
	api := newTestAPI(t, nil)
	alice, _ := api.signup("alice")
	bob, _ := api.signup("bob")

	rec := api.do(http.MethodPost, "/api/goals", alice, map[string]any{
		"title": "Read", "description": "12 books", "category": "learning", "target": 12, "deadline": "2024-12-31",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	api.do(http.MethodPost, "/api/goals", alice, map[string]any{"title": "Sooner", "deadline": "2024-06-30"})

	rec = api.do(http.MethodGet, "/api/goals", alice, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	goals := decode[[]map[string]any](t, rec)
	require.Len(t, goals, 2)
	assert.Equal(t, "Sooner", goals[0]["title"])

	g := goals[1]
	assert.Equal(t, "Read", g["title"])
	assert.Equal(t, "12 books", g["description"])
	assert.Equal(t, "learning", g["category"])
	assert.Equal(t, float64(12), g["target"])
	assert.Equal(t, "2024-12-31", g["deadline"])
	assert.Equal(t, float64(0), g["current"])

	rec = api.do(http.MethodGet, "/api/goals", bob, nil)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestMessages_VisibleToBothParticipants(t *testing.T) {
	api := newTestAPI(t, nil)
	alice, aliceID := api.signup("alice")
	bob, bobID := api.signup("bob")
	carol, _ := api.signup("carol")

	send := func(token string, to int64, body string) {
		t.Helper()
		rec := api.do(http.MethodPost, "/api/messages", token, map[string]any{"receiverId": to, "message": body})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	}
	send(alice, bobID, "first")
	send(bob, aliceID, "second")
	send(alice, bobID, "third")

	bodies := func(rec *httptest.ResponseRecorder) []string {
		var out []string
		for _, m := range decode[[]map[string]any](t, rec) {
			out = append(out, m["message"].(string))
		}
		return out
	}

	want := []string{"first", "second", "third"}
	assert.Equal(t, want, bodies(api.do(http.MethodGet, "/api/messages/"+strconv.FormatInt(bobID, 10), alice, nil)))
	assert.Equal(t, want, bodies(api.do(http.MethodGet, "/api/messages/"+strconv.FormatInt(aliceID, 10), bob, nil)))

	rec := api.do(http.MethodGet, "/api/messages/"+strconv.FormatInt(aliceID, 10), carol, nil)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = api.do(http.MethodPost, "/api/messages", alice, map[string]any{"message": "to nobody"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(http.MethodGet, "/api/messages/abc", alice, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestInfoEndpoints(t *testing.T) {
	api := newTestAPI(t, nil)

	rec := api.do(http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","database":"sqlite"}`, rec.Body.String())

	rec = api.do(http.MethodGet, "/api/v1", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	info := decode[APIInfoResponse](t, rec)
	assert.Equal(t, "Friend App API", info.Name)
	assert.Equal(t, "sqlite", info.Database)

	rec = api.do(http.MethodGet, "/status", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "online", decode[StatusResponse](t, rec).Status)

	rec = api.do(http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = api.do(http.MethodGet, "/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "endpoint not found", decode[map[string]string](t, rec)["error"])

	rec = api.do(http.MethodGet, "/api/auth/signup", "", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "method not allowed", decode[map[string]string](t, rec)["error"])

	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
}

func TestHealth_DegradedWhenStoreDown(t *testing.T) {
	db := databasetest.NewSQLite(t)
	require.NoError(t, db.Close())

	h := &infoHandler{db: db, driver: "sqlite"}
	rec := httptest.NewRecorder()
	h.Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil).WithContext(context.Background()))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "degraded", decode[HealthResponse](t, rec).Status)
}

func TestRateLimitAppliesToAPIOnly(t *testing.T) {
	api := newTestAPI(t, ratelimit.NewLocalLimiter(2, time.Hour))

	for i := 0; i < 2; i++ {
		assert.Equal(t, http.StatusOK, api.do(http.MethodGet, "/api/v1", "", nil).Code)
	}
	rec := api.do(http.MethodGet, "/api/v1", "", nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	assert.Equal(t, http.StatusOK, api.do(http.MethodGet, "/health", "", nil).Code)
}
