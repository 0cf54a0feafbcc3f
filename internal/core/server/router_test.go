package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestCORSPreflightAnswers200(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := NewRouter(zap.NewNop(), nil)
	r.POST("/api/posts", func(c *gin.Context) { c.Status(http.StatusCreated) })

	req := httptest.NewRequest(http.MethodOptions, "/api/posts", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSConfigRestrictsOrigins(t *testing.T) {
	c := CORSConfig([]string{"https://app.example.com"})
	assert.False(t, c.AllowAllOrigins)
	assert.Equal(t, []string{"https://app.example.com"}, c.AllowOrigins)
	assert.NoError(t, c.Validate())
}

func TestBuildServer(t *testing.T) {
	srv := BuildServer(Addr("127.0.0.1", 3000), http.NotFoundHandler(), time.Second, 2*time.Second, 3*time.Second)
	assert.Equal(t, "127.0.0.1:3000", srv.Addr)
	assert.Equal(t, 2*time.Second, srv.WriteTimeout)
}
