package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"gamevault/backend/pkg/jwt"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/admin", AdminMiddleware("secret"), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(ContextSubject))
	})
	return r
}

func TestAdminMiddleware(t *testing.T) {
	admin, err := jwt.GenerateToken("secret", "ops", jwt.RoleAdmin, time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	viewer, err := jwt.GenerateToken("secret", "guest", "viewer", time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"garbage token", "Bearer nope", http.StatusUnauthorized},
		{"wrong role", "Bearer " + viewer, http.StatusForbidden},
		{"admin", "Bearer " + admin, http.StatusOK},
	}
	r := newTestRouter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/admin", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tt.want {
				t.Fatalf("expected %d, got %d (%s)", tt.want, w.Code, w.Body.String())
			}
			if tt.want == http.StatusOK && w.Body.String() != "ops" {
				t.Fatalf("expected subject in context, got %q", w.Body.String())
			}
		})
	}
}
