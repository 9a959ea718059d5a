package service

import (
	"context"
	"errors"

	"github.com/tissueplus/tissue/internal/domain"
)

var errBoom = errors.New("boom")

type fakeRepo struct {
	videos    []domain.Video
	downloads []domain.Download
	version   domain.VersionInfo
	err       error

	queued    []string
	completed []string
}

func (r *fakeRepo) GetVideos(ctx context.Context) ([]domain.Video, error) {
	return r.videos, r.err
}

func (r *fakeRepo) QueueDownloads(ctx context.Context, nums []string) error {
	r.queued = append(r.queued, nums...)
	return r.err
}

func (r *fakeRepo) GetDownloads(ctx context.Context) ([]domain.Download, error) {
	return r.downloads, r.err
}

func (r *fakeRepo) CompleteDownloads(ctx context.Context, hashes []string) error {
	r.completed = append(r.completed, hashes...)
	return r.err
}

func (r *fakeRepo) GetVersion(ctx context.Context) (domain.VersionInfo, error) {
	return r.version, r.err
}

// memStore is an in-memory domain.Store
type memStore struct {
	videos    []domain.Video
	downloads []domain.Download
	hasV      bool
	hasD      bool
}

func (s *memStore) GetVideos() ([]domain.Video, bool) { return s.videos, s.hasV }
func (s *memStore) SaveVideos(v []domain.Video) error {
	s.videos, s.hasV = v, true
	return nil
}
func (s *memStore) GetDownloads() ([]domain.Download, bool) { return s.downloads, s.hasD }
func (s *memStore) SaveDownloads(d []domain.Download) error {
	s.downloads, s.hasD = d, true
	return nil
}
func (s *memStore) InvalidateVideos()    { s.videos, s.hasV = nil, false }
func (s *memStore) InvalidateDownloads() { s.downloads, s.hasD = nil, false }
func (s *memStore) InvalidateAll() {
	s.InvalidateVideos()
	s.InvalidateDownloads()
}
func (s *memStore) Close() error { return nil }
