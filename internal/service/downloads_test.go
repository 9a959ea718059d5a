package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tissueplus/tissue/internal/domain"
)

func TestRefreshDownloadsPersists(t *testing.T) {
	repo := &fakeRepo{downloads: []domain.Download{{Hash: "h1"}, {Hash: "h2"}}}
	store := &memStore{}
	svc := NewDownloadService(repo, store, nil)

	downloads, err := svc.RefreshDownloads(context.Background())
	require.NoError(t, err)
	assert.Len(t, downloads, 2)

	cached, ok := svc.CachedDownloads()
	require.True(t, ok)
	assert.Equal(t, downloads, cached)
}

func TestCompleteDownloadsInvalidatesCache(t *testing.T) {
	repo := &fakeRepo{downloads: []domain.Download{{Hash: "h1"}}}
	store := &memStore{}
	svc := NewDownloadService(repo, store, nil)

	_, err := svc.RefreshDownloads(context.Background())
	require.NoError(t, err)

	require.NoError(t, svc.CompleteDownloads(context.Background(), []string{"h1"}))
	assert.Equal(t, []string{"h1"}, repo.completed)

	_, ok := svc.CachedDownloads()
	assert.False(t, ok)
}

func TestCompleteDownloadsError(t *testing.T) {
	store := &memStore{}
	require.NoError(t, store.SaveDownloads([]domain.Download{{Hash: "h1"}}))
	svc := NewDownloadService(&fakeRepo{err: errBoom}, store, nil)

	err := svc.CompleteDownloads(context.Background(), []string{"h1"})
	assert.ErrorIs(t, err, errBoom)

	_, ok := svc.CachedDownloads()
	assert.True(t, ok, "failed completion keeps the cached list")
}

func TestCompleteDownloadsEmpty(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewDownloadService(repo, nil, nil)

	require.NoError(t, svc.CompleteDownloads(context.Background(), []string{}))
	assert.Empty(t, repo.completed)
}
