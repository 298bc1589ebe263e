package test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/RiseHunter/RiseHuntBot/internal"
	"github.com/RiseHunter/RiseHuntBot/internal/api"
	"github.com/RiseHunter/RiseHuntBot/internal/auth"
	"github.com/RiseHunter/RiseHuntBot/internal/chat"
	"github.com/RiseHunter/RiseHuntBot/internal/config"
	"github.com/RiseHunter/RiseHuntBot/internal/storage"
	"github.com/RiseHunter/RiseHuntBot/internal/survey"
)

const testSecret = "MOCK-SECRET"

type testApp struct {
	logger  internal.Logger
	store   storage.Store
	machine *chat.Machine
	tests   *survey.Registry
}

func (a *testApp) Logger() internal.Logger { return a.logger }
func (a *testApp) Store() storage.Store    { return a.store }
func (a *testApp) Machine() *chat.Machine  { return a.machine }
func (a *testApp) Tests() *survey.Registry { return a.tests }

func setupRouter(t *testing.T) (*gin.Engine, storage.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	logger := internal.NopLogger{}
	store, err := storage.NewFileStore(
		filepath.Join(dir, "users.json"),
		filepath.Join(dir, "journal.json"),
		filepath.Join(dir, "goals.json"),
		logger,
	)
	assert.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	tests := survey.DefaultRegistry()
	machine := chat.NewMachine(store, tests, logger)
	a := &testApp{logger: logger, store: store, machine: machine, tests: tests}

	cfg := &config.Config{Env: "development", WebhookSecret: testSecret}
	provider := auth.NewLocalProvider(cfg.WebhookSecret, logger)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(api.RequestIDMiddleware())
	r.Use(auth.Middleware(provider, cfg))
	r.POST("/events/command", api.PostCommand(a))
	r.POST("/events/message", api.PostMessage(a))
	r.GET("/users/:id/profile", api.GetProfile(a))
	r.GET("/users/:id/goals", api.GetGoals(a))
	r.GET("/users/:id/journal", api.GetJournal(a))
	return r, store
}

func doRequest(r *gin.Engine, method, path, body, secret string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if secret != "" {
		req.Header.Set("X-Webhook-Secret", secret)
	}
	r.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var envelope struct {
		Data map[string]any `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	return envelope.Data
}

func TestAuthRequired(t *testing.T) {
	r, _ := setupRouter(t)

	w := doRequest(r, "POST", "/events/command", `{"user_id":"u1","token":"start"}`, "")
	assert.Equal(t, 401, w.Code)

	w = doRequest(r, "POST", "/events/command", `{"user_id":"u1","token":"start"}`, "wrong")
	assert.Equal(t, 401, w.Code)
	var envelope struct {
		Error *internal.AppError `json:"error"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	if assert.NotNil(t, envelope.Error) {
		assert.Equal(t, 401, envelope.Error.Code)
	}

	w = doRequest(r, "POST", "/events/command", `{"user_id":"u1","token":"start"}`, testSecret)
	assert.Equal(t, 200, w.Code)
}

func TestPostCommand_ValidAndInvalid(t *testing.T) {
	r, _ := setupRouter(t)

	w := doRequest(r, "POST", "/events/command", `{"user_id":"u1","token":"start"}`, testSecret)
	assert.Equal(t, 200, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, "register_name", data["screen"])

	// Missing token fails validation.
	w = doRequest(r, "POST", "/events/command", `{"user_id":"u1"}`, testSecret)
	assert.Equal(t, 400, w.Code)

	// Malformed JSON.
	w = doRequest(r, "POST", "/events/command", `{"user_id":`, testSecret)
	assert.Equal(t, 400, w.Code)
}

func TestPostMessage_ValidAndInvalid(t *testing.T) {
	r, _ := setupRouter(t)

	// Idle free text comes back as an in-band main-menu nudge, not an error.
	w := doRequest(r, "POST", "/events/message", `{"user_id":"u1","text":"hello"}`, testSecret)
	assert.Equal(t, 200, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, "main_menu", data["screen"])
	assert.NotEmpty(t, data["notice"])

	w = doRequest(r, "POST", "/events/message", `{"user_id":"u1"}`, testSecret)
	assert.Equal(t, 400, w.Code)
}

func TestOnboardingOverHTTP(t *testing.T) {
	r, _ := setupRouter(t)

	steps := []struct {
		path   string
		body   string
		screen string
	}{
		{"/events/command", `{"user_id":"u1","token":"start"}`, "register_name"},
		{"/events/message", `{"user_id":"u1","text":"Alex"}`, "register_age"},
		{"/events/message", `{"user_id":"u1","text":"17"}`, "register_gender"},
		{"/events/command", `{"user_id":"u1","token":"gender_female"}`, "register_handle"},
		{"/events/message", `{"user_id":"u1","text":"@alex"}`, "register_goals"},
		{"/events/command", `{"user_id":"u1","token":"reg_goals_done"}`, "main_menu"},
	}
	for _, step := range steps {
		w := doRequest(r, "POST", step.path, step.body, testSecret)
		assert.Equal(t, 200, w.Code, "step %s %s", step.path, step.body)
		data := decodeData(t, w)
		assert.Equal(t, step.screen, data["screen"], "step %s %s", step.path, step.body)
	}

	w := doRequest(r, "GET", "/users/u1/profile", "", testSecret)
	assert.Equal(t, 200, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, "Alex", data["name"])
	assert.Equal(t, float64(17), data["age"])
	assert.Equal(t, "female", data["gender"])
	assert.Equal(t, true, data["onboarded"])
}

func TestScoreSubmissionOverHTTP(t *testing.T) {
	r, store := setupRouter(t)

	w := doRequest(r, "POST", "/events/command", `{"user_id":"u1","token":"survey_ei"}`, testSecret)
	assert.Equal(t, 200, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, "test_prompt", data["screen"])

	w = doRequest(r, "POST", "/events/message", `{"user_id":"u1","text":"100"}`, testSecret)
	assert.Equal(t, 200, w.Code)
	data = decodeData(t, w)
	assert.Equal(t, "score_saved", data["screen"])

	user, err := store.GetUser(context.Background(), "u1")
	assert.NoError(t, err)
	assert.Equal(t, 5.1, user.Dimensions[internal.DirectionEI])
}

func TestGetGoalsQuery(t *testing.T) {
	r, _ := setupRouter(t)

	w := doRequest(r, "GET", "/users/u1/goals", "", testSecret)
	assert.Equal(t, 200, w.Code)

	w = doRequest(r, "GET", "/users/u1/goals?period=month", "", testSecret)
	assert.Equal(t, 200, w.Code)

	w = doRequest(r, "GET", "/users/u1/goals?period=year", "", testSecret)
	assert.Equal(t, 400, w.Code)
}

func TestGetJournalQuery(t *testing.T) {
	r, _ := setupRouter(t)

	w := doRequest(r, "GET", "/users/u1/journal", "", testSecret)
	assert.Equal(t, 200, w.Code)

	w = doRequest(r, "GET", "/users/u1/journal?days=0", "", testSecret)
	assert.Equal(t, 400, w.Code)

	w = doRequest(r, "GET", "/users/u1/journal?limit=abc", "", testSecret)
	assert.Equal(t, 400, w.Code)
}
