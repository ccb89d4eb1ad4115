package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Priyansh6570/Sanchalan/domain/dto"
)

// CronAuth guards the scheduler-only endpoints with a shared bearer
// secret. An unset secret rejects everything rather than letting the
// sync run unauthenticated.
func CronAuth(secret string) gin.HandlerFunc {
	unauthorized := dto.FailureResponse{
		Success: false,
		Error:   "unauthorized",
	}

	return func(ctx *gin.Context) {
		if secret == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, unauthorized)
			return
		}
		authorization := ctx.Request.Header.Get("Authorization")
		token, found := strings.CutPrefix(authorization, "Bearer ")
		if !found {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, unauthorized)
			return
		}
		if subtle.ConstantTimeCompare([]byte(token), []byte(secret)) != 1 {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, unauthorized)
			return
		}
		ctx.Next()
	}
}
