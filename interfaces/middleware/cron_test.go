package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/Priyansh6570/Sanchalan/interfaces/middleware"
)

func cronRouter(secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/api/cron/sync-videos", middleware.CronAuth(secret), func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"success": true})
	})
	return router
}

func TestCronAuth_ValidSecret(t *testing.T) {
	router := cronRouter("s3cret")
	req := httptest.NewRequest(http.MethodPost, "/api/cron/sync-videos", nil)
	req.Header.Set("Authorization", "Bearer s3cret")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCronAuth_WrongSecret(t *testing.T) {
	router := cronRouter("s3cret")
	req := httptest.NewRequest(http.MethodPost, "/api/cron/sync-videos", nil)
	req.Header.Set("Authorization", "Bearer nope")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCronAuth_MissingHeader(t *testing.T) {
	router := cronRouter("s3cret")
	req := httptest.NewRequest(http.MethodPost, "/api/cron/sync-videos", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCronAuth_UnsetSecretRejectsEverything(t *testing.T) {
	router := cronRouter("")
	req := httptest.NewRequest(http.MethodPost, "/api/cron/sync-videos", nil)
	req.Header.Set("Authorization", "Bearer anything")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
