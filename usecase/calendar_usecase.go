package usecase

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/Priyansh6570/Sanchalan/domain/apperror"
	"github.com/Priyansh6570/Sanchalan/domain/model"
	"github.com/Priyansh6570/Sanchalan/domain/repository"
	"github.com/Priyansh6570/Sanchalan/infrastructure/logger"
)

// realizedLookback widens the realized-video query behind the window
// start so an upload that landed slightly early still suppresses its
// planned slot.
const realizedLookback = 24 * time.Hour

type ICalendarUsecase interface {
	// Feed returns the merged calendar for [from, to]. Zero times select
	// the default window of now through now+7d.
	Feed(ctx context.Context, from, to time.Time) ([]model.CalendarEvent, error)
}

type calendarUsecase struct {
	videoRepo  repository.IVideo
	seriesRepo repository.ISeries
	now        func() time.Time
}

func NewCalendarUsecase(videoRepo repository.IVideo, seriesRepo repository.ISeries) ICalendarUsecase {
	return &calendarUsecase{
		videoRepo:  videoRepo,
		seriesRepo: seriesRepo,
		now:        time.Now,
	}
}

func (u *calendarUsecase) Feed(ctx context.Context, from, to time.Time) ([]model.CalendarEvent, error) {
	if from.IsZero() {
		from = u.now()
	}
	if to.IsZero() {
		to = from.Add(7 * 24 * time.Hour)
	}
	if to.Before(from) {
		return nil, apperror.New(apperror.KindInvalid, "window end precedes window start")
	}

	videos, err := u.videoRepo.ListInWindow(ctx, from.Add(-realizedLookback), to)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindTransient, "list videos in window", err)
	}
	series, err := u.seriesRepo.ListActiveWithSchedules(ctx)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindTransient, "list series schedules", err)
	}

	seriesByID := make(map[int64]*model.Series, len(series))
	for i := range series {
		seriesByID[series[i].ID] = &series[i]
	}

	var occurrences []model.Occurrence
	for i := range series {
		occurrences = append(occurrences, ProjectOccurrences(&series[i], from, to)...)
	}

	return mergeEvents(videos, occurrences, seriesByID, from, to), nil
}

// ProjectOccurrences expands a series' weekly slots into concrete
// timestamps inside [from, to]. It is pure: the same series and window
// always produce the same occurrences, and nothing is persisted.
func ProjectOccurrences(s *model.Series, from, to time.Time) []model.Occurrence {
	var out []model.Occurrence
	for _, kind := range []model.ContentKind{model.ContentEpisode, model.ContentTrailer} {
		for _, slot := range s.SlotsFor(kind) {
			occ, ok := nextOccurrence(slot, from)
			if !ok {
				continue
			}
			// Walk forward a week at a time until the slot leaves the window.
			for !occ.After(to) {
				out = append(out, model.Occurrence{
					SeriesID:    s.ID,
					SeriesName:  s.Name,
					TeamName:    s.TeamName,
					ChannelName: s.ChannelName,
					Kind:        kind,
					At:          occ,
				})
				occ = occ.AddDate(0, 0, 7)
			}
		}
	}
	return out
}

// nextOccurrence finds the first time at or after the window start that
// matches the slot. Each slot is evaluated against the actual clock
// time, so a slot whose weekday is today but whose time already passed
// rolls to next week while today's later slots still land today.
func nextOccurrence(slot model.UploadSlot, from time.Time) (time.Time, bool) {
	target, ok := model.WeekdayIndex(slot.Day)
	if !ok {
		return time.Time{}, false
	}
	hour, minute, ok := parseSlotTime(slot.Time)
	if !ok {
		logger.GetLogger().WithField("time", slot.Time).Warn("skipping slot with unparseable time")
		return time.Time{}, false
	}

	daysUntil := (int(target) - int(from.Weekday()) + 7) % 7
	candidate := time.Date(from.Year(), from.Month(), from.Day(), hour, minute, 0, 0, from.Location()).
		AddDate(0, 0, daysUntil)
	if candidate.Before(from) {
		candidate = candidate.AddDate(0, 0, 7)
	}
	return candidate, true
}

func parseSlotTime(raw string) (hour, minute int, ok bool) {
	parts := strings.SplitN(raw, ":", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, false
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, false
	}
	return hour, minute, true
}

// suppressionKey identifies "this series uploads this kind of content on
// this day". A realized video claims the key for its UTC calendar day
// and the matching planned slot is dropped.
func suppressionKey(seriesID int64, kind model.ContentKind, at time.Time) string {
	return fmt.Sprintf("%d|%s|%s", seriesID, kind, at.UTC().Format("2006-01-02"))
}

func mergeEvents(videos []model.Video, occurrences []model.Occurrence, seriesByID map[int64]*model.Series, from, to time.Time) []model.CalendarEvent {
	events := make([]model.CalendarEvent, 0, len(videos)+len(occurrences))
	claimed := make(map[string]struct{})

	for i := range videos {
		v := &videos[i]
		start := v.StartTime()
		if start == nil {
			// Pending video with a hidden schedule; it has no calendar
			// position until the provider reveals one.
			continue
		}
		claimed[suppressionKey(v.SeriesID, v.ContentKind, *start)] = struct{}{}
		if start.Before(from) || start.After(to) {
			continue
		}

		var seriesName, teamName, channelName string
		if s, ok := seriesByID[v.SeriesID]; ok {
			seriesName, teamName, channelName = s.Name, s.TeamName, s.ChannelName
		}
		events = append(events, model.NewVideoEvent(v, seriesName, teamName, channelName, *start))
	}

	for _, occ := range occurrences {
		if _, taken := claimed[suppressionKey(occ.SeriesID, occ.Kind, occ.At)]; taken {
			continue
		}
		events = append(events, model.NewPlannedEvent(occ))
	}

	sort.SliceStable(events, func(i, j int) bool {
		if events[i].Start.Equal(events[j].Start) {
			return events[i].Kind == model.EventVideo && events[j].Kind == model.EventPlanned
		}
		return events[i].Start.Before(events[j].Start)
	})
	return events
}
