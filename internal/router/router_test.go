package router

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aayush-paliwal/finance-sass/internal/config"
	"github.com/aayush-paliwal/finance-sass/internal/database"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestEnv builds a full router over a fresh in-memory database.
func newTestEnv(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()

	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// a second connection would get its own empty :memory: database
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.AutoMigrate(db))

	cfg := &config.Config{
		Server: config.ServerConfig{Mode: gin.TestMode},
		JWT:    config.JWTConfig{Secret: "test-secret", ExpireHours: 1},
		Security: config.SecurityConfig{
			BcryptCost: bcrypt.MinCost,
		},
	}

	return SetupRouter(cfg, db), db
}

// doReq runs one request through the router and returns the recorder.
func doReq(t *testing.T, r http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(buf)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

const testPassword = "Password1"

// signup registers a user and returns a logged-in session token.
func signup(t *testing.T, r http.Handler, username string) string {
	t.Helper()

	w := doReq(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"username":         username,
		"password":         testPassword,
		"confirm_password": testPassword,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doReq(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"username": username,
		"password": testPassword,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Data.Token)
	return resp.Data.Token
}

// decodeData unmarshals the {"data": ...} envelope into out.
func decodeData(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()

	var envelope map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	raw, ok := envelope["data"]
	require.True(t, ok, "response has no data envelope: %s", w.Body.String())
	require.NoError(t, json.Unmarshal(raw, out))
}

// createAccount provisions an account through the API and returns its id.
func createAccount(t *testing.T, r http.Handler, token, name string) string {
	t.Helper()

	w := doReq(t, r, http.MethodPost, "/api/accounts", token, gin.H{"name": name})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var account struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	decodeData(t, w, &account)
	require.NotEmpty(t, account.ID)
	return account.ID
}

// createCategory provisions a category through the API and returns its id.
func createCategory(t *testing.T, r http.Handler, token, name string) string {
	t.Helper()

	w := doReq(t, r, http.MethodPost, "/api/categories", token, gin.H{"name": name})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var category struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	decodeData(t, w, &category)
	require.NotEmpty(t, category.ID)
	return category.ID
}
