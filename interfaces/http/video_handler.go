package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Priyansh6570/Sanchalan/domain/dto"
	"github.com/Priyansh6570/Sanchalan/domain/model"
	"github.com/Priyansh6570/Sanchalan/usecase"
)

type IVideoHandler interface {
	Ingest(ctx *gin.Context)
	List(ctx *gin.Context)
	Get(ctx *gin.Context)
	Patch(ctx *gin.Context)
	Refresh(ctx *gin.Context)
}

type VideoHandler struct {
	videoUsecase usecase.IVideoUsecase
}

func NewVideoHandler(videoUsecase usecase.IVideoUsecase) IVideoHandler {
	return &VideoHandler{videoUsecase: videoUsecase}
}

// Ingest handles POST /api/videos
func (h *VideoHandler) Ingest(ctx *gin.Context) {
	var req dto.VideoIngestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, "video_url and series_id are required")
		return
	}
	if req.ContentKind != "" &&
		req.ContentKind != string(model.ContentEpisode) &&
		req.ContentKind != string(model.ContentTrailer) {
		respondBadRequest(ctx, "content_kind must be episode or trailer")
		return
	}

	video, err := h.videoUsecase.Ingest(ctx.Request.Context(), &req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.VideoIngestResponse{
		Success:     true,
		Video:       video,
		Message:     "video tracked",
		FetchSource: string(video.FetchSource),
		IsScheduled: video.Status == model.StatusScheduled,
	})
}

// List handles GET /api/videos
func (h *VideoHandler) List(ctx *gin.Context) {
	videos, err := h.videoUsecase.List(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"success": true, "videos": videos})
}

// Get handles GET /api/videos/:id
func (h *VideoHandler) Get(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	video, err := h.videoUsecase.GetByID(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"success": true, "video": video})
}

// Patch handles PATCH /api/videos/:id
func (h *VideoHandler) Patch(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	var req dto.VideoPatchRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, "invalid patch payload")
		return
	}
	if req.ContentKind != nil &&
		*req.ContentKind != string(model.ContentEpisode) &&
		*req.ContentKind != string(model.ContentTrailer) {
		respondBadRequest(ctx, "content_kind must be episode or trailer")
		return
	}

	video, err := h.videoUsecase.Patch(ctx.Request.Context(), id, &req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"success": true, "video": video})
}

// Refresh handles POST /api/videos/:id/refresh
func (h *VideoHandler) Refresh(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	video, err := h.videoUsecase.Refresh(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"success": true, "video": video})
}

func pathID(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respondBadRequest(ctx, "id must be a positive integer")
		return 0, false
	}
	return id, true
}
