package settings

import (
	"context"
	"fmt"
	"sync"

	"github.com/casamaria/storefront-backend/internal/storage"
	"github.com/casamaria/storefront-backend/pkg/logger"
)

// SiteSettings holds the storefront imagery. Values are URLs or data URIs.
type SiteSettings struct {
	HeroImage  string `json:"hero_image"`
	AboutImage string `json:"about_image"`
}

// UpdateSettingsInput carries optional overrides; nil fields keep the
// current value.
type UpdateSettingsInput struct {
	HeroImage  *string
	AboutImage *string
}

// Service exposes site settings operations.
type Service interface {
	Get(ctx context.Context) SiteSettings
	Update(ctx context.Context, input UpdateSettingsInput) (*SiteSettings, error)
}

type persister interface {
	Read(ctx context.Context, key string, dest any) (bool, error)
	Write(ctx context.Context, key string, value any) error
}

type service struct {
	mu       sync.RWMutex
	store    persister
	logg     *logger.Logger
	settings SiteSettings
}

// DefaultSettings returns the out-of-the-box storefront imagery.
func DefaultSettings() SiteSettings {
	return SiteSettings{
		HeroImage:  "https://images.unsplash.com/photo-1550547660-d9450f859349?auto=format&fit=crop&w=1920&q=80",
		AboutImage: "https://images.unsplash.com/photo-1514933651103-005eec06c04b?auto=format&fit=crop&w=1200&q=80",
	}
}

// NewService loads settings from the store, with defaults filling any
// field the stored record does not carry.
func NewService(ctx context.Context, store persister, logg *logger.Logger) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("persistent store is required")
	}

	s := &service{
		store:    store,
		logg:     logg,
		settings: DefaultSettings(),
	}

	var stored SiteSettings
	found, err := store.Read(ctx, storage.KeySiteSettings, &stored)
	if err != nil {
		return nil, err
	}
	if found {
		if stored.HeroImage != "" {
			s.settings.HeroImage = stored.HeroImage
		}
		if stored.AboutImage != "" {
			s.settings.AboutImage = stored.AboutImage
		}
	}

	return s, nil
}

func (s *service) Get(_ context.Context) SiteSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// Update persists the merged settings. A failed write, typically the
// storage cap on an oversized image, leaves the current settings intact.
func (s *service) Update(ctx context.Context, input UpdateSettingsInput) (*SiteSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.settings
	if input.HeroImage != nil {
		next.HeroImage = *input.HeroImage
	}
	if input.AboutImage != nil {
		next.AboutImage = *input.AboutImage
	}

	if err := s.store.Write(ctx, storage.KeySiteSettings, next); err != nil {
		if s.logg != nil {
			s.logg.Warn(ctx, "site settings update rejected by storage")
		}
		return nil, err
	}
	s.settings = next

	return &next, nil
}
