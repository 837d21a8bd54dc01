// Package moduletest provides the fixtures shared by the business-area
// package tests: an in-memory database, a recording publisher and small HTTP
// helpers.
package moduletest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/simp-lee/backoffice/internal/domain"
	"github.com/simp-lee/backoffice/internal/event"
	"github.com/simp-lee/backoffice/internal/module"
	"github.com/simp-lee/backoffice/internal/pkg"
)

// Recorder is an event.Publisher that keeps every event it receives.
type Recorder struct {
	mu     sync.Mutex
	events []event.Event
}

// Publish implements event.Publisher.
func (r *Recorder) Publish(_ context.Context, e event.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

// Actions returns the action of every recorded event in order.
func (r *Recorder) Actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	for i, e := range r.events {
		out[i] = e.Action
	}
	return out
}

// NewDeps opens a migrated in-memory sqlite database and returns module
// dependencies publishing into a Recorder.
func NewDeps(t *testing.T) (module.Deps, *Recorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	if err := pkg.RegisterValidators(); err != nil {
		t.Fatalf("register validators: %v", err)
	}

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(domain.AllModels()...); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}

	rec := &Recorder{}
	return module.Deps{DB: db, Publisher: rec}, rec
}

// Registrar is anything installing routes on the API group.
type Registrar interface {
	RegisterRoutes(api *gin.RouterGroup)
}

// NewRouter mounts mods under /api/v1 on a bare engine.
func NewRouter(mods ...Registrar) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	api := r.Group("/api/v1")
	for _, m := range mods {
		m.RegisterRoutes(api)
	}
	return r
}

// Do sends a request with an optional JSON body.
func Do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// Envelope is the success body shape.
type Envelope[T any] struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

// Data decodes the envelope of w and returns its data, failing the test if
// the status is not want.
func Data[T any](t *testing.T, w *httptest.ResponseRecorder, want int) T {
	t.Helper()
	if w.Code != want {
		t.Fatalf("status = %d; want %d: %s", w.Code, want, w.Body)
	}
	var env Envelope[T]
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("unmarshal %q: %v", w.Body.String(), err)
	}
	return env.Data
}

// Route is a method and path pair as gin reports it.
type Route struct {
	Method string
	Path   string
}

// AssertRoutes fails for every expected route r does not serve.
func AssertRoutes(t *testing.T, r *gin.Engine, expected []Route) {
	t.Helper()
	registered := make(map[string]bool)
	for _, ri := range r.Routes() {
		registered[ri.Method+":"+ri.Path] = true
	}
	for _, exp := range expected {
		if !registered[exp.Method+":"+exp.Path] {
			t.Errorf("expected route %s %s to be registered", exp.Method, exp.Path)
		}
	}
}

// CRUDRoutes lists the uniform routes of collection under /api/v1.
func CRUDRoutes(collection string) []Route {
	base := "/api/v1/" + collection
	return []Route{
		{http.MethodPost, base},
		{http.MethodGet, base},
		{http.MethodPost, base + "/filter"},
		{http.MethodGet, base + "/:id"},
		{http.MethodPut, base + "/:id"},
		{http.MethodDelete, base + "/:id"},
	}
}
