package inspect

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/dingu/di"
	"github.com/kbukum/dingu/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(t *testing.T) (*gin.Engine, *di.Registry) {
	t.Helper()
	r := di.New(di.WithLogger(logger.Nop()), di.WithName("app"))
	if err := r.RegisterValue("config", map[string]string{"dsn": "x"}); err != nil {
		t.Fatalf("RegisterValue: %v", err)
	}
	if err := r.RegisterSingleton("db", func(cfg map[string]string) string { return cfg["dsn"] }, "config"); err != nil {
		t.Fatalf("RegisterSingleton: %v", err)
	}

	router := gin.New()
	Mount(router, r)
	return router, r
}

func get(router *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	router.ServeHTTP(w, req)
	return w
}

func TestRegistrationsHandler(t *testing.T) {
	router, r := newRouter(t)
	r.Lock()

	w := get(router, "/di")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body struct {
		Data struct {
			Registry string `json:"registry"`
			ID       string `json:"id"`
			Locked   bool   `json:"locked"`
			Entries  []struct {
				Name         string   `json:"name"`
				Mode         string   `json:"mode"`
				Dependencies []string `json:"dependencies"`
				Initialized  bool     `json:"initialized"`
			} `json:"entries"`
		} `json:"data"`
		Meta Meta `json:"meta"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}

	if body.Data.Registry != "app" || body.Data.ID != r.ID() || !body.Data.Locked {
		t.Errorf("unexpected registry header %+v", body.Data)
	}
	if body.Meta.Total != 2 || len(body.Data.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %+v", body)
	}
	db := body.Data.Entries[1]
	if db.Name != "db" || db.Mode != "singleton" || db.Initialized {
		t.Errorf("unexpected db entry %+v", db)
	}
	if len(db.Dependencies) != 1 || db.Dependencies[0] != "config" {
		t.Errorf("unexpected dependencies %v", db.Dependencies)
	}
}

func TestRegistrationsHandlerDoesNotResolve(t *testing.T) {
	router, r := newRouter(t)
	get(router, "/di")
	get(router, "/di/db")

	info, _ := r.Registration("db")
	if info.Initialized || info.Calls != 0 {
		t.Errorf("introspection must not construct entries, got %+v", info)
	}
}

func TestEntryHandler(t *testing.T) {
	router, r := newRouter(t)
	if _, err := r.Get("db"); err != nil {
		t.Fatalf("Get: %v", err)
	}

	w := get(router, "/di/db")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body struct {
		Data struct {
			Name        string `json:"name"`
			Initialized bool   `json:"initialized"`
			Calls       int64  `json:"calls"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if body.Data.Name != "db" || !body.Data.Initialized || body.Data.Calls != 1 {
		t.Errorf("unexpected entry %+v", body.Data)
	}
}

func TestEntryHandlerNotFound(t *testing.T) {
	router, _ := newRouter(t)

	w := get(router, "/di/missing")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	var body struct {
		Error struct {
			Code    string         `json:"code"`
			Details map[string]any `json:"details"`
		} `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if body.Error.Code != "NOT_FOUND" || body.Error.Details["name"] != "missing" {
		t.Errorf("unexpected error body %+v", body.Error)
	}
}
