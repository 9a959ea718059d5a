package service

import (
	"context"
	"log/slog"

	"github.com/tissueplus/tissue/internal/domain"
)

// VersionService reports whether the server has an update available
type VersionService struct {
	repo   domain.VersionRepository
	logger *slog.Logger
}

// NewVersionService creates a new version service
func NewVersionService(repo domain.VersionRepository, logger *slog.Logger) *VersionService {
	if logger == nil {
		logger = slog.Default()
	}
	return &VersionService{repo: repo, logger: logger}
}

// Check fetches the running and latest server versions
func (s *VersionService) Check(ctx context.Context) (domain.VersionInfo, error) {
	info, err := s.repo.GetVersion(ctx)
	if err != nil {
		s.logger.Error("failed to check version", "error", err)
		return domain.VersionInfo{}, err
	}
	s.logger.Debug("version checked", "current", info.Current, "latest", info.Latest)
	return info, nil
}
