package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMiddlewareCountsByRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Middleware())
	r.GET("/api/v1/games/:id", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	before := testutil.ToFloat64(httpRequests.WithLabelValues("/api/v1/games/:id", "GET", "404"))
	for _, path := range []string{"/api/v1/games/1", "/api/v1/games/2"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}
	after := testutil.ToFloat64(httpRequests.WithLabelValues("/api/v1/games/:id", "GET", "404"))
	if after-before != 2 {
		t.Fatalf("expected 2 requests on the route template, got %v", after-before)
	}
}

func TestObserveSync(t *testing.T) {
	ObserveSync("TEST", 2, 1, nil)
	ObserveSync("TEST", 0, 0, errors.New("boom"))

	if got := testutil.ToFloat64(syncedGames.WithLabelValues("TEST", "created")); got != 2 {
		t.Fatalf("expected 2 created, got %v", got)
	}
	if got := testutil.ToFloat64(syncFailures.WithLabelValues("TEST")); got != 1 {
		t.Fatalf("expected 1 failure, got %v", got)
	}
}

func TestHandlerExposesMetrics(t *testing.T) {
	ObserveSync("EXPOSE", 1, 0, nil)
	w := httptest.NewRecorder()
	Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if !strings.Contains(w.Body.String(), `gamevault_library_synced_games_total{outcome="created",platform="EXPOSE"} 1`) {
		t.Fatalf("metric not exposed")
	}
}
