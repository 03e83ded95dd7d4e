package settings

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/casamaria/storefront-backend/internal/storage"
	pkgerrors "github.com/casamaria/storefront-backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubStore struct {
	data     map[string][]byte
	writeErr error
}

func newStubStore() *stubStore {
	return &stubStore{data: map[string][]byte{}}
}

func (s *stubStore) Read(_ context.Context, key string, dest any) (bool, error) {
	raw, ok := s.data[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, nil
	}
	return true, nil
}

func (s *stubStore) Write(_ context.Context, key string, value any) error {
	if s.writeErr != nil {
		return s.writeErr
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.data[key] = raw
	return nil
}

func TestNewServiceUsesDefaults(t *testing.T) {
	svc, err := NewService(context.Background(), newStubStore(), nil)
	require.NoError(t, err)

	got := svc.Get(context.Background())
	assert.Equal(t, DefaultSettings(), got)
}

func TestNewServiceFillsMissingFieldsFromDefaults(t *testing.T) {
	store := newStubStore()
	raw, err := json.Marshal(SiteSettings{HeroImage: "https://example.com/hero.jpg"})
	require.NoError(t, err)
	store.data[storage.KeySiteSettings] = raw

	svc, err := NewService(context.Background(), store, nil)
	require.NoError(t, err)

	got := svc.Get(context.Background())
	assert.Equal(t, "https://example.com/hero.jpg", got.HeroImage)
	assert.Equal(t, DefaultSettings().AboutImage, got.AboutImage)
}

func TestUpdateMergesAndPersists(t *testing.T) {
	store := newStubStore()
	svc, err := NewService(context.Background(), store, nil)
	require.NoError(t, err)

	about := "data:image/jpeg;base64,abc"
	updated, err := svc.Update(context.Background(), UpdateSettingsInput{AboutImage: &about})
	require.NoError(t, err)

	assert.Equal(t, about, updated.AboutImage)
	assert.Equal(t, DefaultSettings().HeroImage, updated.HeroImage)

	var persisted SiteSettings
	require.NoError(t, json.Unmarshal(store.data[storage.KeySiteSettings], &persisted))
	assert.Equal(t, about, persisted.AboutImage)
}

func TestUpdateRollsBackWhenStorageRejects(t *testing.T) {
	store := newStubStore()
	svc, err := NewService(context.Background(), store, nil)
	require.NoError(t, err)

	store.writeErr = pkgerrors.New(pkgerrors.CodeStorageCapacity, "value exceeds storage capacity")

	hero := "data:image/jpeg;base64,huge"
	_, err = svc.Update(context.Background(), UpdateSettingsInput{HeroImage: &hero})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeStorageCapacity, pkgerrors.As(err).Code())

	assert.Equal(t, DefaultSettings(), svc.Get(context.Background()))
}
