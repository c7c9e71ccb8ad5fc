package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	server *httptest.Server
	mu     sync.Mutex
	auth   []string
}

func newFakeAPI(t *testing.T) *fakeAPI {
	t.Helper()
	f := &fakeAPI{}
	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()
	api.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			f.mu.Lock()
			f.auth = append(f.auth, req.Method+" "+req.URL.Path+" "+req.Header.Get("Authorization"))
			f.mu.Unlock()
			w.Header().Set("Content-Type", "application/json")
			next.ServeHTTP(w, req)
		})
	})
	api.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"token":"t1","user":{"id":7,"firstName":"Ada","lastName":"Lovelace","email":"a@b.com"}},"message":"Login successful"}`))
	}).Methods(http.MethodPost)
	api.HandleFunc("/journeys/user/{id}", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer t1" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{"data":[
			{"id":1,"entryStation":{"id":3,"name":"Central","zone":1},"tapInTime":"2024-05-20T08:00:00","status":"IN_PROGRESS"},
			{"id":2,"entryStation":{"id":3,"name":"Central","zone":1},"exitStation":{"id":4,"name":"Harbour","zone":2},"tapInTime":"2024-05-19T10:00:00","tapOutTime":"2024-05-19T10:25:00","status":"COMPLETED","fare":2.5},
			{"id":3,"entryStation":{"id":4,"name":"Harbour","zone":2},"exitStation":{"id":3,"name":"Central","zone":1},"tapInTime":"2024-04-01T10:00:00","tapOutTime":"2024-04-01T10:30:00","status":"COMPLETED","fare":4}
		]}`))
	}).Methods(http.MethodGet)
	api.HandleFunc("/users/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}).Methods(http.MethodGet)
	f.server = httptest.NewServer(r)
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeAPI) requests() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.auth...)
}

type result struct {
	code   int
	stdout string
	stderr string
}

func invoke(t *testing.T, api *fakeAPI, stdin string, args ...string) result {
	t.Helper()
	var stdout, stderr bytes.Buffer
	full := append([]string{"--api-url", api.server.URL + "/api", "--no-color"}, args...)
	code := run(context.Background(), full, strings.NewReader(stdin), &stdout, &stderr)
	return result{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("TRANSIT_CONFIG", "")
	t.Setenv("TRANSIT_SESSION_KEY", "")
	t.Setenv("TRANSIT_SESSION_BACKEND", "file")
	t.Setenv("TRANSIT_SESSION_PATH", filepath.Join(t.TempDir(), "session.json"))
	t.Setenv("LOG_LEVEL", "error")
}

func TestLoginThenFilterJourneys(t *testing.T) {
	isolate(t)
	api := newFakeAPI(t)

	res := invoke(t, api, "secret123\n", "login", "--email", "a@b.com")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Welcome, Ada Lovelace.")
	assert.Contains(t, res.stderr, "Login successful!")

	res = invoke(t, api, "", "journeys", "--status", "completed", "--from", "2024-05-01", "--to", "2024-05-31")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Harbour")
	assert.Contains(t, res.stdout, "Total: 1  Completed: 1  In progress: 0  Cancelled: 0  Spent: $2.50")

	reqs := api.requests()
	require.Len(t, reqs, 2)
	assert.Equal(t, "GET /api/journeys/user/7 Bearer t1", reqs[1])
}

func TestExpiredSessionLogsOut(t *testing.T) {
	isolate(t)
	api := newFakeAPI(t)

	require.Equal(t, 0, invoke(t, api, "secret123\n", "login", "-e", "a@b.com").code)

	res := invoke(t, api, "", "profile", "show")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "session expired")

	res = invoke(t, api, "", "journeys")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "not logged in")
	assert.Len(t, api.requests(), 2, "no request may follow the forced logout")
}

func TestValidationErrorsSendNothing(t *testing.T) {
	isolate(t)
	api := newFakeAPI(t)

	res := invoke(t, api, "short\nshort\n", "register", "--email", "n@b.com")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "Password must be at least 8 characters long!")
	assert.Empty(t, api.requests())
}

func TestBadDateFlag(t *testing.T) {
	isolate(t)
	api := newFakeAPI(t)

	res := invoke(t, api, "", "journeys", "--from", "the other day")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "invalid date")
}

func TestVersion(t *testing.T) {
	var stdout bytes.Buffer
	code := run(context.Background(), []string{"version"}, strings.NewReader(""), &stdout, &bytes.Buffer{})
	assert.Equal(t, 0, code)
	assert.Equal(t, "transitctl version 0.1.0 (build: dev)\n", stdout.String())
}
