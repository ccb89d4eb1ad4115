package usecase

import (
	"context"
	"sort"

	"github.com/Priyansh6570/Sanchalan/domain/apperror"
	"github.com/Priyansh6570/Sanchalan/domain/dto"
	"github.com/Priyansh6570/Sanchalan/domain/repository"
)

const recentLimit = 10

type IDashboardUsecase interface {
	Summary(ctx context.Context) (*dto.DashboardResponse, error)
}

type dashboardUsecase struct {
	videoRepo repository.IVideo
	tokens    ITokenUsecase
}

func NewDashboardUsecase(videoRepo repository.IVideo, tokens ITokenUsecase) IDashboardUsecase {
	return &dashboardUsecase{videoRepo: videoRepo, tokens: tokens}
}

func (u *dashboardUsecase) Summary(ctx context.Context) (*dto.DashboardResponse, error) {
	counts, err := u.videoRepo.CountByStatus(ctx)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindTransient, "count videos", err)
	}
	var total int64
	for _, n := range counts {
		total += n
	}

	videos, err := u.videoRepo.List(ctx)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindTransient, "list videos", err)
	}
	sort.SliceStable(videos, func(i, j int) bool {
		return videos[i].CreatedAt.After(videos[j].CreatedAt)
	})
	if len(videos) > recentLimit {
		videos = videos[:recentLimit]
	}

	connected := false
	if status, statusErr := u.tokens.Status(ctx); statusErr == nil && status != nil {
		connected = status.Connected && !status.NeedsReconnect
	}

	return &dto.DashboardResponse{
		Success:      true,
		Connected:    connected,
		StatusCounts: counts,
		TotalVideos:  total,
		Recent:       videos,
	}, nil
}
