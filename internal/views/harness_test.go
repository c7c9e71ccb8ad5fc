package views

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"transitpay/internal/clients"
	"transitpay/internal/models"
	"transitpay/internal/notice"
	"transitpay/internal/session"
)

type call struct {
	Method string
	Path   string
	Query  string
	Body   map[string]any
}

type backend struct {
	router *mux.Router
	server *httptest.Server

	mu    sync.Mutex
	calls []call
}

func newBackend(t *testing.T) *backend {
	t.Helper()
	root := mux.NewRouter()
	b := &backend{router: root.PathPrefix("/api").Subrouter()}
	b.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c := call{Method: r.Method, Path: r.URL.Path, Query: r.URL.RawQuery}
		_ = json.NewDecoder(r.Body).Decode(&c.Body)
		b.mu.Lock()
		b.calls = append(b.calls, c)
		b.mu.Unlock()
		root.ServeHTTP(w, r)
	}))
	t.Cleanup(b.server.Close)
	return b
}

func (b *backend) reply(method, path string, status int, payload any) {
	b.router.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(payload)
	}).Methods(method)
}

func (b *backend) ok(method, path string, data any) {
	b.reply(method, path, http.StatusOK, map[string]any{"data": data})
}

func (b *backend) fail(method, path string, status int, message string) {
	b.reply(method, path, status, map[string]any{"message": message})
}

func (b *backend) recorded() []call {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]call(nil), b.calls...)
}

type fixture struct {
	backend *backend
	store   *session.Store
	notices *notice.Slot
	out     *bytes.Buffer
	deps    Deps
}

var fixedNow = time.Date(2024, time.May, 20, 12, 0, 0, 0, time.Local)

func newFixture(t *testing.T) *fixture {
	t.Helper()
	b := newBackend(t)
	store := session.NewStore(session.NewMemoryStorage(), zap.NewNop())
	base := clients.NewBaseClient(b.server.URL+"/api", clients.NewDefaultHTTPClient(5*time.Second), store, zap.NewNop())
	slot := notice.NewSlot(time.Minute)
	t.Cleanup(slot.Close)
	out := &bytes.Buffer{}
	return &fixture{
		backend: b,
		store:   store,
		notices: slot,
		out:     out,
		deps: Deps{
			API:     clients.NewAPI(base),
			Session: store,
			Notices: slot,
			Out:     out,
			Logger:  zap.NewNop(),
			Now:     func() time.Time { return fixedNow },
		},
	}
}

func (f *fixture) login(t *testing.T) {
	t.Helper()
	require.NoError(t, f.store.Save(context.Background(), "t1", models.User{
		ID: 7, FirstName: "Ada", LastName: "Lovelace", Email: "a@b.com",
	}))
}

func (f *fixture) notice(t *testing.T) notice.Notice {
	t.Helper()
	n, ok := f.notices.Current()
	require.True(t, ok, "expected a notice")
	return n
}

func station(id int, name string) map[string]any {
	return map[string]any{"id": id, "name": name, "zone": 1}
}
