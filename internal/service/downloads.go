package service

import (
	"context"
	"log/slog"

	"github.com/tissueplus/tissue/internal/domain"
)

// DownloadService manages torrents tracked by the server's downloader
type DownloadService struct {
	repo   domain.DownloadRepository
	store  domain.Store
	logger *slog.Logger
}

// NewDownloadService creates a new download service. store may be nil.
func NewDownloadService(repo domain.DownloadRepository, store domain.Store, logger *slog.Logger) *DownloadService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DownloadService{
		repo:   repo,
		store:  store,
		logger: logger,
	}
}

// CachedDownloads returns the last download list saved locally, if any
func (s *DownloadService) CachedDownloads() ([]domain.Download, bool) {
	if s.store == nil {
		return nil, false
	}
	return s.store.GetDownloads()
}

// RefreshDownloads fetches the download list from the server and persists it
func (s *DownloadService) RefreshDownloads(ctx context.Context) ([]domain.Download, error) {
	downloads, err := s.repo.GetDownloads(ctx)
	if err != nil {
		s.logger.Error("failed to get downloads", "error", err)
		return nil, err
	}

	if s.store != nil {
		if err := s.store.SaveDownloads(downloads); err != nil {
			s.logger.Warn("failed to cache downloads", "error", err)
		}
	}

	s.logger.Info("loaded downloads", "count", len(downloads))
	return downloads, nil
}

// CompleteDownloads marks torrents as handled and drops the cached list
func (s *DownloadService) CompleteDownloads(ctx context.Context, hashes []string) error {
	if len(hashes) == 0 {
		return nil
	}

	if err := s.repo.CompleteDownloads(ctx, hashes); err != nil {
		s.logger.Error("failed to complete downloads", "error", err, "count", len(hashes))
		return err
	}

	if s.store != nil {
		s.store.InvalidateDownloads()
	}

	s.logger.Info("completed downloads", "count", len(hashes))
	return nil
}
