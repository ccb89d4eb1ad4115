package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Priyansh6570/Sanchalan/domain/dto"
	"github.com/Priyansh6570/Sanchalan/usecase"
)

type ICalendarHandler interface {
	Feed(ctx *gin.Context)
}

type CalendarHandler struct {
	calendarUsecase usecase.ICalendarUsecase
}

func NewCalendarHandler(calendarUsecase usecase.ICalendarUsecase) ICalendarHandler {
	return &CalendarHandler{calendarUsecase: calendarUsecase}
}

// Feed handles GET /api/calendar?from=...&to=... (RFC 3339; both optional,
// defaulting to the next seven days).
func (h *CalendarHandler) Feed(ctx *gin.Context) {
	from, ok := queryTime(ctx, "from")
	if !ok {
		return
	}
	to, ok := queryTime(ctx, "to")
	if !ok {
		return
	}
	if from.IsZero() {
		from = time.Now()
	}
	if to.IsZero() {
		to = from.Add(7 * 24 * time.Hour)
	}
	if to.Before(from) {
		respondBadRequest(ctx, "to must not precede from")
		return
	}

	events, err := h.calendarUsecase.Feed(ctx.Request.Context(), from, to)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.CalendarFeedResponse{
		Success: true,
		From:    from.Format(time.RFC3339),
		To:      to.Format(time.RFC3339),
		Events:  events,
	})
}

func queryTime(ctx *gin.Context, name string) (time.Time, bool) {
	raw := ctx.Query(name)
	if raw == "" {
		return time.Time{}, true
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		respondBadRequest(ctx, name+" must be an RFC 3339 timestamp")
		return time.Time{}, false
	}
	return t, true
}
