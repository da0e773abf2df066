package http_test

import (
	"bytes"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	api "github.com/tazhibayda/posts-service/internal/http"
	"github.com/tazhibayda/posts-service/internal/queue"
	"github.com/tazhibayda/posts-service/internal/repo/inmemory"
	"github.com/tazhibayda/posts-service/internal/security"
	"github.com/tazhibayda/posts-service/internal/service"
)

const testSecret = "test-secret"

type testEnv struct {
	T      *testing.T
	Router *gin.Engine
}

type testUser struct {
	ID      string
	Name    string
	Surname string
}

var (
	uAlice = testUser{ID: "64b5f1e0a1b2c3d4e5f60001", Name: "Alice", Surname: "Doe"}
	uBob   = testUser{ID: "64b5f1e0a1b2c3d4e5f60002", Name: "Bob", Surname: "Roe"}
	uCarol = testUser{ID: "64b5f1e0a1b2c3d4e5f60003", Name: "Carol", Surname: "Poe"}
)

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	posts := service.NewPostService(inmemory.New())
	h := api.NewHandler(posts, testSecret, nil, 0, queue.NewNoop(), nil)

	gin.SetMode(gin.TestMode)
	return &testEnv{T: t, Router: api.NewRouter(h)}
}

func (e *testEnv) token(u testUser) string {
	e.T.Helper()
	tok, err := security.MakeAccess(testSecret, u.ID, u.Name, u.Surname, u.Name+".png", time.Minute)
	if err != nil {
		e.T.Fatalf("make token: %v", err)
	}
	return tok
}

// do issues a request; u == nil sends it unauthenticated.
func (e *testEnv) do(method, path, body string, u *testUser) *httptest.ResponseRecorder {
	e.T.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if u != nil {
		req.Header.Set("Authorization", "Bearer "+e.token(*u))
	}
	e.Router.ServeHTTP(w, req)
	return w
}
