package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Priyansh6570/Sanchalan/domain/dto"
	"github.com/Priyansh6570/Sanchalan/usecase"
)

type ISyncHandler interface {
	SyncVideos(ctx *gin.Context)
}

type SyncHandler struct {
	syncUsecase usecase.ISyncUsecase
}

func NewSyncHandler(syncUsecase usecase.ISyncUsecase) ISyncHandler {
	return &SyncHandler{syncUsecase: syncUsecase}
}

// SyncVideos handles POST /api/cron/sync-videos, invoked by the external
// scheduler behind the shared-secret middleware.
func (h *SyncHandler) SyncVideos(ctx *gin.Context) {
	result, err := h.syncUsecase.SyncStale(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.SyncResultResponse{
		Success:   true,
		Total:     result.Total,
		Synced:    result.Synced,
		Failed:    result.Failed,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
