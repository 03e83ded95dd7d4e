package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/casamaria/storefront-backend/pkg/db"
	pkgerrors "github.com/casamaria/storefront-backend/pkg/errors"
	"github.com/casamaria/storefront-backend/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Reserved keys in the shared persistent namespace. Each store owns one.
const (
	KeyMenuItems    = "menu_items"
	KeyReviews      = "reviews"
	KeySiteSettings = "site_settings"
	KeyAdminProfile = "admin_profile"
	KeyAdminSession = "admin_session"
)

// Entry is the persisted row shape: one whole-value JSON blob per key.
type Entry struct {
	Key       string    `gorm:"column:key;primaryKey"`
	Value     []byte    `gorm:"column:value"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

// TableName maps Entry onto the migrated kv_entries table.
func (Entry) TableName() string {
	return "kv_entries"
}

// Store is the single durability layer. Reads fall back to the caller's
// default on absence or corruption; writes replace the whole value and are
// synchronous from the caller's point of view.
type Store struct {
	client        *db.Client
	logg          *logger.Logger
	maxValueBytes int64
}

// New constructs the store over the shared storage client.
func New(client *db.Client, logg *logger.Logger, maxValueBytes int64) (*Store, error) {
	if client == nil {
		return nil, fmt.Errorf("db client is required")
	}
	if maxValueBytes <= 0 {
		return nil, fmt.Errorf("max value bytes must be positive")
	}
	return &Store{
		client:        client,
		logg:          logg,
		maxValueBytes: maxValueBytes,
	}, nil
}

// Read unmarshals the stored value for key into dest. A missing key returns
// (false, nil). A corrupted value is logged and swallowed so the caller falls
// back to its documented default; it is never a fatal error.
func (s *Store) Read(ctx context.Context, key string, dest any) (bool, error) {
	var entry Entry
	result := s.client.DB().WithContext(ctx).First(&entry, "key = ?", key)
	if result.Error != nil {
		if isNotFound(result.Error) {
			return false, nil
		}
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, result.Error, "read storage key")
	}

	if err := json.Unmarshal(entry.Value, dest); err != nil {
		if s.logg != nil {
			ctx = s.logg.WithStorageKey(ctx, key)
			s.logg.Warn(ctx, "stored value unparsable, falling back to default")
		}
		return false, nil
	}
	return true, nil
}

// Write marshals value and replaces the whole entry under key. A payload
// larger than the configured capacity fails with a storage-capacity error and
// leaves the persisted value untouched.
func (s *Store) Write(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode storage value")
	}
	if int64(len(raw)) > s.maxValueBytes {
		return pkgerrors.New(pkgerrors.CodeStorageCapacity, "value exceeds storage capacity").
			WithDetails(map[string]any{"key": key, "size": len(raw), "limit": s.maxValueBytes})
	}

	entry := Entry{Key: key, Value: raw, UpdatedAt: time.Now().UTC()}
	result := s.client.DB().WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&entry)
	if result.Error != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, result.Error, "write storage key")
	}
	return nil
}

// Delete removes the entry under key. Deleting an absent key is a no-op.
func (s *Store) Delete(ctx context.Context, key string) error {
	result := s.client.DB().WithContext(ctx).Delete(&Entry{}, "key = ?", key)
	if result.Error != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, result.Error, "delete storage key")
	}
	return nil
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
