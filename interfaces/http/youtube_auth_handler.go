package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Priyansh6570/Sanchalan/usecase"
)

type IYouTubeAuthHandler interface {
	Connect(ctx *gin.Context)
	Callback(ctx *gin.Context)
	Status(ctx *gin.Context)
	Disconnect(ctx *gin.Context)
}

type YouTubeAuthHandler struct {
	tokenUsecase usecase.ITokenUsecase
}

func NewYouTubeAuthHandler(tokenUsecase usecase.ITokenUsecase) IYouTubeAuthHandler {
	return &YouTubeAuthHandler{tokenUsecase: tokenUsecase}
}

// Connect handles GET /auth/youtube and redirects the operator to the
// Google consent screen.
func (h *YouTubeAuthHandler) Connect(ctx *gin.Context) {
	ctx.Redirect(http.StatusTemporaryRedirect, h.tokenUsecase.AuthCodeURL("sanchalan"))
}

// Callback handles GET /auth/youtube/callback
func (h *YouTubeAuthHandler) Callback(ctx *gin.Context) {
	if errParam := ctx.Query("error"); errParam != "" {
		respondBadRequest(ctx, "consent was denied: "+errParam)
		return
	}
	code := ctx.Query("code")
	if code == "" {
		respondBadRequest(ctx, "missing authorization code")
		return
	}

	if err := h.tokenUsecase.HandleCallback(ctx.Request.Context(), code); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"success": true, "message": "YouTube account connected"})
}

// Status handles GET /auth/youtube/status
func (h *YouTubeAuthHandler) Status(ctx *gin.Context) {
	status, err := h.tokenUsecase.Status(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, status)
}

// Disconnect handles POST /auth/youtube/disconnect
func (h *YouTubeAuthHandler) Disconnect(ctx *gin.Context) {
	if err := h.tokenUsecase.Disconnect(ctx.Request.Context()); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"success": true, "message": "YouTube account disconnected"})
}
