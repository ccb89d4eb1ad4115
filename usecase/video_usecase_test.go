package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Priyansh6570/Sanchalan/domain/apperror"
	"github.com/Priyansh6570/Sanchalan/domain/dto"
	"github.com/Priyansh6570/Sanchalan/domain/model"
	"github.com/Priyansh6570/Sanchalan/usecase"
)

type MockVideoRepo struct {
	mock.Mock
}

func (m *MockVideoRepo) Create(ctx context.Context, v *model.Video) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

func (m *MockVideoRepo) GetByID(ctx context.Context, id int64) (*model.Video, error) {
	args := m.Called(ctx, id)
	v, _ := args.Get(0).(*model.Video)
	return v, args.Error(1)
}

func (m *MockVideoRepo) GetByVideoID(ctx context.Context, videoID string) (*model.Video, error) {
	args := m.Called(ctx, videoID)
	v, _ := args.Get(0).(*model.Video)
	return v, args.Error(1)
}

func (m *MockVideoRepo) List(ctx context.Context) ([]model.Video, error) {
	args := m.Called(ctx)
	videos, _ := args.Get(0).([]model.Video)
	return videos, args.Error(1)
}

func (m *MockVideoRepo) ListInWindow(ctx context.Context, from, to time.Time) ([]model.Video, error) {
	args := m.Called(ctx, from, to)
	videos, _ := args.Get(0).([]model.Video)
	return videos, args.Error(1)
}

func (m *MockVideoRepo) ListStale(ctx context.Context, cutoff time.Time) ([]model.Video, error) {
	args := m.Called(ctx, cutoff)
	videos, _ := args.Get(0).([]model.Video)
	return videos, args.Error(1)
}

func (m *MockVideoRepo) Update(ctx context.Context, v *model.Video) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

func (m *MockVideoRepo) CountByStatus(ctx context.Context) (map[model.VideoStatus]int64, error) {
	args := m.Called(ctx)
	counts, _ := args.Get(0).(map[model.VideoStatus]int64)
	return counts, args.Error(1)
}

type MockSeriesRepo struct {
	mock.Mock
}

func (m *MockSeriesRepo) GetByID(ctx context.Context, id int64) (*model.Series, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(*model.Series)
	return s, args.Error(1)
}

func (m *MockSeriesRepo) ListActiveWithSchedules(ctx context.Context) ([]model.Series, error) {
	args := m.Called(ctx)
	series, _ := args.Get(0).([]model.Series)
	return series, args.Error(1)
}

type MockLookup struct {
	mock.Mock
}

func (m *MockLookup) LookupWithKey(ctx context.Context, videoID string) (*model.VideoSnapshot, error) {
	args := m.Called(ctx, videoID)
	s, _ := args.Get(0).(*model.VideoSnapshot)
	return s, args.Error(1)
}

func (m *MockLookup) LookupWithToken(ctx context.Context, videoID, accessToken string) (*model.VideoSnapshot, error) {
	args := m.Called(ctx, videoID, accessToken)
	s, _ := args.Get(0).(*model.VideoSnapshot)
	return s, args.Error(1)
}

type MockTokenUsecase struct {
	mock.Mock
}

func (m *MockTokenUsecase) GetValidAccessToken(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockTokenUsecase) AuthCodeURL(state string) string {
	args := m.Called(state)
	return args.String(0)
}

func (m *MockTokenUsecase) HandleCallback(ctx context.Context, code string) error {
	args := m.Called(ctx, code)
	return args.Error(0)
}

func (m *MockTokenUsecase) Disconnect(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTokenUsecase) Status(ctx context.Context) (*dto.AuthStatusResponse, error) {
	args := m.Called(ctx)
	status, _ := args.Get(0).(*dto.AuthStatusResponse)
	return status, args.Error(1)
}

const testVideoURL = "https://www.youtube.com/watch?v=dQw4w9WgXcQ"

func publicSnapshot() *model.VideoSnapshot {
	published := time.Now().Add(-2 * time.Hour)
	return &model.VideoSnapshot{
		VideoID:       "dQw4w9WgXcQ",
		Title:         "Episode 12",
		ChannelID:     "UC123",
		PublishedAt:   &published,
		PrivacyStatus: "public",
		ViewCount:     100,
		Source:        model.FetchAPIKey,
	}
}

func newVideoUsecase(videoRepo *MockVideoRepo, seriesRepo *MockSeriesRepo, lookup *MockLookup, tokens *MockTokenUsecase) usecase.IVideoUsecase {
	return usecase.NewVideoUsecase(videoRepo, seriesRepo, lookup, tokens)
}

func TestIngest_DuplicateRejectedBeforeAnyLookup(t *testing.T) {
	videoRepo := new(MockVideoRepo)
	seriesRepo := new(MockSeriesRepo)
	lookup := new(MockLookup)
	tokens := new(MockTokenUsecase)
	videoRepo.On("GetByVideoID", mock.Anything, "dQw4w9WgXcQ").Return(&model.Video{ID: 7}, nil)

	u := newVideoUsecase(videoRepo, seriesRepo, lookup, tokens)
	_, err := u.Ingest(context.Background(), &dto.VideoIngestRequest{VideoURL: testVideoURL, SeriesID: 1})

	assert.True(t, apperror.IsKind(err, apperror.KindConflict))
	lookup.AssertNotCalled(t, "LookupWithKey", mock.Anything, mock.Anything)
}

func TestIngest_PublicVideoViaAPIKey(t *testing.T) {
	videoRepo := new(MockVideoRepo)
	seriesRepo := new(MockSeriesRepo)
	lookup := new(MockLookup)
	tokens := new(MockTokenUsecase)
	videoRepo.On("GetByVideoID", mock.Anything, "dQw4w9WgXcQ").Return(nil, nil)
	seriesRepo.On("GetByID", mock.Anything, int64(1)).Return(&model.Series{ID: 1, Name: "Weekly Show"}, nil)
	lookup.On("LookupWithKey", mock.Anything, "dQw4w9WgXcQ").Return(publicSnapshot(), nil)
	videoRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	u := newVideoUsecase(videoRepo, seriesRepo, lookup, tokens)
	video, err := u.Ingest(context.Background(), &dto.VideoIngestRequest{VideoURL: testVideoURL, SeriesID: 1})

	require.NoError(t, err)
	assert.Equal(t, model.FetchAPIKey, video.FetchSource)
	assert.Equal(t, model.StatusUploaded, video.Status)
	tokens.AssertNotCalled(t, "GetValidAccessToken", mock.Anything)
}

func TestIngest_PrivateVideoFallsBackToOAuth(t *testing.T) {
	videoRepo := new(MockVideoRepo)
	seriesRepo := new(MockSeriesRepo)
	lookup := new(MockLookup)
	tokens := new(MockTokenUsecase)
	videoRepo.On("GetByVideoID", mock.Anything, "dQw4w9WgXcQ").Return(nil, nil)
	seriesRepo.On("GetByID", mock.Anything, int64(1)).Return(&model.Series{ID: 1}, nil)
	lookup.On("LookupWithKey", mock.Anything, "dQw4w9WgXcQ").
		Return(nil, apperror.New(apperror.KindNotFound, "not visible"))
	tokens.On("GetValidAccessToken", mock.Anything).Return("token-abc", nil)

	scheduled := time.Now().Add(48 * time.Hour)
	snapshot := &model.VideoSnapshot{
		VideoID:       "dQw4w9WgXcQ",
		Title:         "Upcoming Episode",
		ScheduledAt:   &scheduled,
		PrivacyStatus: "private",
		Source:        model.FetchOAuth,
	}
	lookup.On("LookupWithToken", mock.Anything, "dQw4w9WgXcQ", "token-abc").Return(snapshot, nil)
	videoRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	u := newVideoUsecase(videoRepo, seriesRepo, lookup, tokens)
	video, err := u.Ingest(context.Background(), &dto.VideoIngestRequest{VideoURL: testVideoURL, SeriesID: 1})

	require.NoError(t, err)
	assert.Equal(t, model.FetchOAuth, video.FetchSource)
	assert.Equal(t, model.StatusScheduled, video.Status)
}

func TestIngest_PrivateNoScheduleStillScheduled(t *testing.T) {
	videoRepo := new(MockVideoRepo)
	seriesRepo := new(MockSeriesRepo)
	lookup := new(MockLookup)
	tokens := new(MockTokenUsecase)
	videoRepo.On("GetByVideoID", mock.Anything, "dQw4w9WgXcQ").Return(nil, nil)
	seriesRepo.On("GetByID", mock.Anything, int64(1)).Return(&model.Series{ID: 1}, nil)
	lookup.On("LookupWithKey", mock.Anything, "dQw4w9WgXcQ").
		Return(nil, apperror.New(apperror.KindNotFound, "not visible"))
	tokens.On("GetValidAccessToken", mock.Anything).Return("token-abc", nil)
	lookup.On("LookupWithToken", mock.Anything, "dQw4w9WgXcQ", "token-abc").Return(&model.VideoSnapshot{
		VideoID:       "dQw4w9WgXcQ",
		PrivacyStatus: "private",
		Source:        model.FetchOAuth,
	}, nil)
	videoRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	u := newVideoUsecase(videoRepo, seriesRepo, lookup, tokens)
	video, err := u.Ingest(context.Background(), &dto.VideoIngestRequest{VideoURL: testVideoURL, SeriesID: 1})

	require.NoError(t, err)
	assert.Equal(t, model.StatusScheduled, video.Status)
	assert.Nil(t, video.ScheduledAt)
}

func TestIngest_NoCredentialBecomesAuthRequired(t *testing.T) {
	videoRepo := new(MockVideoRepo)
	seriesRepo := new(MockSeriesRepo)
	lookup := new(MockLookup)
	tokens := new(MockTokenUsecase)
	videoRepo.On("GetByVideoID", mock.Anything, "dQw4w9WgXcQ").Return(nil, nil)
	seriesRepo.On("GetByID", mock.Anything, int64(1)).Return(&model.Series{ID: 1}, nil)
	lookup.On("LookupWithKey", mock.Anything, "dQw4w9WgXcQ").
		Return(nil, apperror.New(apperror.KindNotFound, "not visible"))
	tokens.On("GetValidAccessToken", mock.Anything).
		Return("", apperror.New(apperror.KindNoCredential, "not connected"))

	u := newVideoUsecase(videoRepo, seriesRepo, lookup, tokens)
	_, err := u.Ingest(context.Background(), &dto.VideoIngestRequest{VideoURL: testVideoURL, SeriesID: 1})

	assert.True(t, apperror.IsKind(err, apperror.KindAuthRequired))
	videoRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestIngest_TransientKeyFailureDoesNotFallBack(t *testing.T) {
	videoRepo := new(MockVideoRepo)
	seriesRepo := new(MockSeriesRepo)
	lookup := new(MockLookup)
	tokens := new(MockTokenUsecase)
	videoRepo.On("GetByVideoID", mock.Anything, "dQw4w9WgXcQ").Return(nil, nil)
	seriesRepo.On("GetByID", mock.Anything, int64(1)).Return(&model.Series{ID: 1}, nil)
	lookup.On("LookupWithKey", mock.Anything, "dQw4w9WgXcQ").
		Return(nil, apperror.New(apperror.KindTransient, "upstream 500"))

	u := newVideoUsecase(videoRepo, seriesRepo, lookup, tokens)
	_, err := u.Ingest(context.Background(), &dto.VideoIngestRequest{VideoURL: testVideoURL, SeriesID: 1})

	assert.True(t, apperror.IsKind(err, apperror.KindTransient))
	tokens.AssertNotCalled(t, "GetValidAccessToken", mock.Anything)
}

func TestIngest_UnrecognizableURL(t *testing.T) {
	u := newVideoUsecase(new(MockVideoRepo), new(MockSeriesRepo), new(MockLookup), new(MockTokenUsecase))
	_, err := u.Ingest(context.Background(), &dto.VideoIngestRequest{VideoURL: "https://example.com/nope", SeriesID: 1})
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestGetByID_MissingVideoIsNotFound(t *testing.T) {
	videoRepo := new(MockVideoRepo)
	videoRepo.On("GetByID", mock.Anything, int64(99)).Return(nil, nil)

	u := newVideoUsecase(videoRepo, new(MockSeriesRepo), new(MockLookup), new(MockTokenUsecase))
	_, err := u.GetByID(context.Background(), 99)

	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestRefresh_MissingVideoIsNotFound(t *testing.T) {
	videoRepo := new(MockVideoRepo)
	lookup := new(MockLookup)
	videoRepo.On("GetByID", mock.Anything, int64(99)).Return(nil, nil)

	u := newVideoUsecase(videoRepo, new(MockSeriesRepo), lookup, new(MockTokenUsecase))
	_, err := u.Refresh(context.Background(), 99)

	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
	lookup.AssertNotCalled(t, "LookupWithKey", mock.Anything, mock.Anything)
}

func TestIngest_UnknownSeriesIsNotFound(t *testing.T) {
	videoRepo := new(MockVideoRepo)
	seriesRepo := new(MockSeriesRepo)
	lookup := new(MockLookup)
	videoRepo.On("GetByVideoID", mock.Anything, "dQw4w9WgXcQ").Return(nil, nil)
	seriesRepo.On("GetByID", mock.Anything, int64(8)).Return(nil, nil)

	u := newVideoUsecase(videoRepo, seriesRepo, lookup, new(MockTokenUsecase))
	_, err := u.Ingest(context.Background(), &dto.VideoIngestRequest{VideoURL: testVideoURL, SeriesID: 8})

	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
	lookup.AssertNotCalled(t, "LookupWithKey", mock.Anything, mock.Anything)
}

func TestPatch_ChangedExpectationReclassifies(t *testing.T) {
	videoRepo := new(MockVideoRepo)
	published := time.Now().Add(-48 * time.Hour)
	videoRepo.On("GetByID", mock.Anything, int64(3)).Return(&model.Video{
		ID:          3,
		PublishedAt: &published,
		Status:      model.StatusUploaded,
	}, nil)
	videoRepo.On("Update", mock.Anything, mock.Anything).Return(nil)

	u := newVideoUsecase(videoRepo, new(MockSeriesRepo), new(MockLookup), new(MockTokenUsecase))
	expected := published.Add(-24 * time.Hour)
	video, err := u.Patch(context.Background(), 3, &dto.VideoPatchRequest{ExpectedUploadAt: &expected})

	require.NoError(t, err)
	assert.Equal(t, model.StatusDelayed, video.Status)
}
