package service

import (
	"context"
	"log/slog"

	"github.com/tissueplus/tissue/internal/domain"
)

// VideoService loads the video library, serving the local cache first
type VideoService struct {
	repo   domain.VideoRepository
	store  domain.Store
	logger *slog.Logger
}

// NewVideoService creates a new video service. store may be nil.
func NewVideoService(repo domain.VideoRepository, store domain.Store, logger *slog.Logger) *VideoService {
	if logger == nil {
		logger = slog.Default()
	}
	return &VideoService{
		repo:   repo,
		store:  store,
		logger: logger,
	}
}

// CachedVideos returns the last list saved locally, if any
func (s *VideoService) CachedVideos() ([]domain.Video, bool) {
	if s.store == nil {
		return nil, false
	}
	return s.store.GetVideos()
}

// RefreshVideos fetches the library from the server and persists it
func (s *VideoService) RefreshVideos(ctx context.Context) ([]domain.Video, error) {
	videos, err := s.repo.GetVideos(ctx)
	if err != nil {
		s.logger.Error("failed to get videos", "error", err)
		return nil, err
	}

	if s.store != nil {
		if err := s.store.SaveVideos(videos); err != nil {
			s.logger.Warn("failed to cache videos", "error", err)
		}
	}

	s.logger.Info("loaded videos", "count", len(videos))
	return videos, nil
}

// QueueDownloads asks the server to download the given catalog numbers
func (s *VideoService) QueueDownloads(ctx context.Context, nums []string) error {
	if len(nums) == 0 {
		return nil
	}

	if err := s.repo.QueueDownloads(ctx, nums); err != nil {
		s.logger.Error("failed to queue downloads", "error", err, "count", len(nums))
		return err
	}

	s.logger.Info("queued downloads", "nums", nums)
	return nil
}
