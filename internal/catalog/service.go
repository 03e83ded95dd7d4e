package catalog

import (
	"context"
	"fmt"
	"sync"

	"github.com/casamaria/storefront-backend/internal/storage"
	"github.com/casamaria/storefront-backend/pkg/enums"
	pkgerrors "github.com/casamaria/storefront-backend/pkg/errors"
	"github.com/casamaria/storefront-backend/pkg/logger"
	"github.com/google/uuid"
)

// Service exposes menu management operations.
type Service interface {
	List(ctx context.Context) []MenuItem
	Get(ctx context.Context, id string) (*MenuItem, error)
	Create(ctx context.Context, input CreateItemInput) (*MenuItem, error)
	Update(ctx context.Context, id string, input UpdateItemInput) (*MenuItem, error)
	Delete(ctx context.Context, id string) error
	Reset(ctx context.Context) error
}

// CreateItemInput holds the validated payload to create a menu item.
type CreateItemInput struct {
	Name            string
	Description     string
	Price           int64
	Category        enums.MenuCategory
	Image           string
	Popular         bool
	DiscountPercent int
}

// UpdateItemInput holds optional mutation values for a menu item.
type UpdateItemInput struct {
	Name            *string
	Description     *string
	Price           *int64
	Category        *enums.MenuCategory
	Image           *string
	Popular         *bool
	DiscountPercent *int
}

type persister interface {
	Read(ctx context.Context, key string, dest any) (bool, error)
	Write(ctx context.Context, key string, value any) error
}

type service struct {
	mu    sync.RWMutex
	store persister
	logg  *logger.Logger
	items []MenuItem
}

// NewService loads the catalog: the seed list overlaid by whatever the
// persistent store holds. An empty or unparsable stored list keeps the seed.
func NewService(ctx context.Context, store persister, logg *logger.Logger) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("persistent store is required")
	}

	s := &service{
		store: store,
		logg:  logg,
		items: SeedItems(),
	}

	var stored []MenuItem
	found, err := store.Read(ctx, storage.KeyMenuItems, &stored)
	if err != nil {
		return nil, err
	}
	if found && len(stored) > 0 {
		s.items = stored
	}

	return s, nil
}

func (s *service) List(_ context.Context) []MenuItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]MenuItem, len(s.items))
	copy(items, s.items)
	return items
}

func (s *service) Get(_ context.Context, id string) (*MenuItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := indexOf(s.items, id)
	if idx < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "menu item not found")
	}
	item := s.items[idx]
	return &item, nil
}

func (s *service) Create(ctx context.Context, input CreateItemInput) (*MenuItem, error) {
	if err := validateCreate(input); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	item := MenuItem{
		ID:              uuid.NewString(),
		Name:            input.Name,
		Description:     input.Description,
		Price:           input.Price,
		Category:        input.Category,
		Image:           input.Image,
		Popular:         input.Popular,
		DiscountPercent: input.DiscountPercent,
	}

	next := append(s.copyItemsLocked(), item)
	if err := s.store.Write(ctx, storage.KeyMenuItems, next); err != nil {
		return nil, err
	}
	s.items = next

	return &item, nil
}

func (s *service) Update(ctx context.Context, id string, input UpdateItemInput) (*MenuItem, error) {
	if err := validateUpdate(input); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.copyItemsLocked()
	idx := indexOf(next, id)
	if idx < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "menu item not found")
	}

	item := next[idx]
	if input.Name != nil {
		item.Name = *input.Name
	}
	if input.Description != nil {
		item.Description = *input.Description
	}
	if input.Price != nil {
		item.Price = *input.Price
	}
	if input.Category != nil {
		item.Category = *input.Category
	}
	if input.Image != nil {
		item.Image = *input.Image
	}
	if input.Popular != nil {
		item.Popular = *input.Popular
	}
	if input.DiscountPercent != nil {
		item.DiscountPercent = *input.DiscountPercent
	}
	next[idx] = item

	if err := s.store.Write(ctx, storage.KeyMenuItems, next); err != nil {
		return nil, err
	}
	s.items = next

	return &item, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := indexOf(s.items, id)
	if idx < 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "menu item not found")
	}

	next := make([]MenuItem, 0, len(s.items)-1)
	next = append(next, s.items[:idx]...)
	next = append(next, s.items[idx+1:]...)

	if err := s.store.Write(ctx, storage.KeyMenuItems, next); err != nil {
		return err
	}
	s.items = next

	return nil
}

func (s *service) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := SeedItems()
	if err := s.store.Write(ctx, storage.KeyMenuItems, next); err != nil {
		return err
	}
	s.items = next

	if s.logg != nil {
		s.logg.Info(ctx, "catalog reset to seed menu")
	}
	return nil
}

func (s *service) copyItemsLocked() []MenuItem {
	items := make([]MenuItem, len(s.items))
	copy(items, s.items)
	return items
}

func indexOf(items []MenuItem, id string) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}

func validateCreate(input CreateItemInput) error {
	if input.Name == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if input.Price < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}
	if !input.Category.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid category %q", input.Category))
	}
	if input.DiscountPercent < 0 || input.DiscountPercent > 100 {
		return pkgerrors.New(pkgerrors.CodeValidation, "discount percent must be between 0 and 100")
	}
	return nil
}

func validateUpdate(input UpdateItemInput) error {
	if input.Name != nil && *input.Name == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
	}
	if input.Price != nil && *input.Price < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}
	if input.Category != nil && !input.Category.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid category %q", *input.Category))
	}
	if input.DiscountPercent != nil && (*input.DiscountPercent < 0 || *input.DiscountPercent > 100) {
		return pkgerrors.New(pkgerrors.CodeValidation, "discount percent must be between 0 and 100")
	}
	return nil
}
