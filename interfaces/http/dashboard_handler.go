package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Priyansh6570/Sanchalan/usecase"
)

type IDashboardHandler interface {
	Summary(ctx *gin.Context)
	VideoAnalytics(ctx *gin.Context)
	ChannelAnalytics(ctx *gin.Context)
}

type DashboardHandler struct {
	dashboardUsecase usecase.IDashboardUsecase
	analyticsUsecase usecase.IAnalyticsUsecase
}

func NewDashboardHandler(dashboardUsecase usecase.IDashboardUsecase, analyticsUsecase usecase.IAnalyticsUsecase) IDashboardHandler {
	return &DashboardHandler{
		dashboardUsecase: dashboardUsecase,
		analyticsUsecase: analyticsUsecase,
	}
}

// Summary handles GET /api/dashboard
func (h *DashboardHandler) Summary(ctx *gin.Context) {
	summary, err := h.dashboardUsecase.Summary(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, summary)
}

// VideoAnalytics handles GET /api/analytics/videos/:id
func (h *DashboardHandler) VideoAnalytics(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	report, err := h.analyticsUsecase.VideoAnalytics(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"success": true, "report": report})
}

// ChannelAnalytics handles GET /api/analytics/channel
func (h *DashboardHandler) ChannelAnalytics(ctx *gin.Context) {
	report, err := h.analyticsUsecase.ChannelAnalytics(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"success": true, "report": report})
}
