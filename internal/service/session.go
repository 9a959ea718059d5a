package service

import (
	"github.com/tissueplus/tissue/internal/config"
	"github.com/tissueplus/tissue/internal/domain"
)

// SessionService manages user session operations
type SessionService struct {
	store    domain.Store
	cacheDir string
}

// NewSessionService creates a new SessionService. store may be nil.
func NewSessionService(store domain.Store, cacheDir string) *SessionService {
	return &SessionService{store: store, cacheDir: cacheDir}
}

// Logout clears server configuration and cached data
func (s *SessionService) Logout() error {
	if s.store != nil {
		s.store.InvalidateAll()
	}

	// Clear server configuration
	if err := config.ClearServerConfig(); err != nil {
		return err
	}

	// Clear cache
	if err := config.ClearCache(s.cacheDir); err != nil {
		return err
	}

	return nil
}
