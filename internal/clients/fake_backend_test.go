package clients

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gorilla/mux"
)

// recordedRequest captures what the fake backend received.
type recordedRequest struct {
	Method        string
	Path          string
	Query         string
	Authorization string
	ContentType   string
	RequestID     string
	Body          map[string]any
}

type fakeBackend struct {
	t      *testing.T
	router *mux.Router
	server *httptest.Server

	mu       sync.Mutex
	requests []recordedRequest
}

func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()
	root := mux.NewRouter()
	fb := &fakeBackend{t: t, router: root.PathPrefix("/api").Subrouter()}
	fb.router.Use(fb.record)
	fb.server = httptest.NewServer(root)
	t.Cleanup(fb.server.Close)
	return fb
}

func (fb *fakeBackend) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := recordedRequest{
			Method:        r.Method,
			Path:          r.URL.Path,
			Query:         r.URL.RawQuery,
			Authorization: r.Header.Get("Authorization"),
			ContentType:   r.Header.Get("Content-Type"),
			RequestID:     r.Header.Get("X-Request-ID"),
		}
		if r.Body != nil {
			_ = json.NewDecoder(r.Body).Decode(&rec.Body)
		}
		fb.mu.Lock()
		fb.requests = append(fb.requests, rec)
		fb.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

// handle registers a canned JSON reply.
func (fb *fakeBackend) handle(method, path string, status int, payload any) {
	fb.router.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, status, payload)
	}).Methods(method)
}

func (fb *fakeBackend) url() string {
	return fb.server.URL + "/api"
}

func (fb *fakeBackend) recorded() []recordedRequest {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return append([]recordedRequest(nil), fb.requests...)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if raw, ok := payload.(string); ok {
		_, _ = w.Write([]byte(raw))
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func envelope(data any) map[string]any {
	return map[string]any{"data": data, "message": "ok"}
}
