// helpers_test.go - Shared setup for the HTTP tests: a full router over a
// throwaway sqlite file and an in-memory Redis

package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"ui-gallery-backend/config"
	"ui-gallery-backend/database"
	"ui-gallery-backend/logging"
	"ui-gallery-backend/repository"
	"ui-gallery-backend/routes"
	"ui-gallery-backend/services"
	"ui-gallery-backend/session"
)

const (
	adminEmail    = "admin@test.com"
	adminPassword = "adminpass"
)

type testServer struct {
	t      *testing.T
	router *gin.Engine
	redis  *miniredis.Miniredis
}

// setupServer builds the whole application the way main does.
func setupServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		AllowedOrigins: []string{"http://localhost:5173"},
		Database:       config.Database{Driver: "sqlite", Path: filepath.Join(t.TempDir(), "test.db")},
		JWTSecret:      "test-secret",
		TokenTTL:       30 * time.Minute,
		RateLimitRPS:   1000,
		RateLimitBurst: 1000,
		CreateAdmin:    true,
		AdminEmail:     adminEmail,
		AdminPassword:  adminPassword,
	}
	log := logging.Discard()

	db, err := database.Connect(cfg.Database, log)
	require.NoError(t, err)
	require.NoError(t, database.SeedAdmin(db, cfg))

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	revoker := session.NewRedisRevoker(redis.NewClient(&redis.Options{Addr: mr.Addr()}))

	tokens, err := services.NewTokenService(cfg.JWTSecret)
	require.NoError(t, err)

	userRepo := repository.NewUserRepository(db)
	componentRepo := repository.NewComponentRepository(db)
	ratingRepo := repository.NewRatingRepository(db)
	auth := services.NewAuthService(userRepo, services.BcryptHasher{Cost: bcrypt.MinCost}, tokens, revoker, log)
	ratings := services.NewRatingService(ratingRepo, componentRepo, log)
	moderation := services.NewModerationService(componentRepo, userRepo, ratings, nil, log)

	router := routes.Setup(routes.Dependencies{
		Config:     cfg,
		DB:         db,
		Log:        log,
		Auth:       auth,
		Moderation: moderation,
		Ratings:    ratings,
		Users:      services.NewUserService(userRepo, log),
	})
	return &testServer{t: t, router: router, redis: mr}
}

func (s *testServer) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	s.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

// login uses the OAuth2 password form, as browser clients do.
func (s *testServer) login(email, password string) *httptest.ResponseRecorder {
	s.t.Helper()
	form := url.Values{"username": {email}, "password": {password}}
	req := httptest.NewRequest(http.MethodPost, "/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) token(email, password string) string {
	s.t.Helper()
	w := s.login(email, password)
	require.Equal(s.t, http.StatusOK, w.Code, w.Body.String())
	var resp map[string]interface{}
	require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp["access_token"].(string)
}

func (s *testServer) registerUser(email string) (uint, string) {
	s.t.Helper()
	w := s.do(http.MethodPost, "/users/", "", map[string]string{
		"username": strings.Split(email, "@")[0],
		"email":    email,
		"password": "password",
	})
	require.Equal(s.t, http.StatusOK, w.Code, w.Body.String())
	var user map[string]interface{}
	require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &user))
	return uint(user["id"].(float64)), s.token(email, "password")
}

func (s *testServer) submit(token, category, html string) uint {
	s.t.Helper()
	w := s.do(http.MethodPost, "/components/", token, map[string]string{
		"category":  category,
		"html_code": html,
		"css_code":  "",
	})
	require.Equal(s.t, http.StatusOK, w.Code, w.Body.String())
	var view map[string]interface{}
	require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &view))
	return uint(view["id"].(float64))
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}
