package health

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/mlvaren/tonic/internal/app"
)

func TestHealthz(t *testing.T) {
	gin.SetMode(gin.TestMode)

	module := &HealthModule{}
	if err := module.Init(app.ModuleDependencies{}); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	router := gin.New()
	module.RegisterRoutes(router.Group("/api"))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/healthz", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}
