package reviews

import (
	"context"
	"fmt"
	"sync"

	"github.com/casamaria/storefront-backend/internal/storage"
	pkgerrors "github.com/casamaria/storefront-backend/pkg/errors"
	"github.com/casamaria/storefront-backend/pkg/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Review is a customer review. Date is a display label, not a timestamp;
// new reviews carry "Reciente" until an admin reseeds.
type Review struct {
	ID     string `json:"id"`
	Author string `json:"author"`
	Rating int    `json:"rating"`
	Text   string `json:"text"`
	Date   string `json:"date"`
}

// Summary aggregates the review list for the storefront header.
type Summary struct {
	AverageRating float64 `json:"average_rating"`
	TotalReviews  int     `json:"total_reviews"`
}

// CreateReviewInput is the payload to publish a review.
type CreateReviewInput struct {
	Author string
	Rating int
	Text   string
}

// Service exposes review operations. Reviews are create-only.
type Service interface {
	List(ctx context.Context) []Review
	Create(ctx context.Context, input CreateReviewInput) (*Review, error)
	Summarize(ctx context.Context) Summary
}

type persister interface {
	Read(ctx context.Context, key string, dest any) (bool, error)
	Write(ctx context.Context, key string, value any) error
}

type service struct {
	mu      sync.RWMutex
	store   persister
	logg    *logger.Logger
	reviews []Review
}

func seedReviews() []Review {
	return []Review{
		{
			ID:     "1",
			Author: "Carlos Rodriguez",
			Rating: 5,
			Text:   "¡La mejor hamburguesa que he probado! 🍔 La carne estaba jugosa y el pan súper suave.",
			Date:   "Hace 2 días",
		},
		{
			ID:     "2",
			Author: "Ana María",
			Rating: 5,
			Text:   "Me encantó el ambiente y la atención. Súper recomendado el combo pareja. ⭐⭐⭐⭐⭐",
			Date:   "Hace 1 semana",
		},
		{
			ID:     "3",
			Author: "Juan Pablo",
			Rating: 4,
			Text:   "Muy ricas, aunque un poco demorado el domicilio, pero valió la pena la espera.",
			Date:   "Hace 2 semanas",
		},
	}
}

// NewService loads reviews from the store, falling back to the seed list.
func NewService(ctx context.Context, store persister, logg *logger.Logger) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("persistent store is required")
	}

	s := &service{
		store:   store,
		logg:    logg,
		reviews: seedReviews(),
	}

	var stored []Review
	found, err := store.Read(ctx, storage.KeyReviews, &stored)
	if err != nil {
		return nil, err
	}
	if found && len(stored) > 0 {
		s.reviews = stored
	}

	return s, nil
}

func (s *service) List(_ context.Context) []Review {
	s.mu.RLock()
	defer s.mu.RUnlock()

	reviews := make([]Review, len(s.reviews))
	copy(reviews, s.reviews)
	return reviews
}

// Create prepends the review so the newest shows first.
func (s *service) Create(ctx context.Context, input CreateReviewInput) (*Review, error) {
	if input.Author == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "author is required")
	}
	if input.Rating < 1 || input.Rating > 5 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rating must be between 1 and 5")
	}
	if input.Text == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "text is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	review := Review{
		ID:     uuid.NewString(),
		Author: input.Author,
		Rating: input.Rating,
		Text:   input.Text,
		Date:   "Reciente",
	}

	next := make([]Review, 0, len(s.reviews)+1)
	next = append(next, review)
	next = append(next, s.reviews...)

	if err := s.store.Write(ctx, storage.KeyReviews, next); err != nil {
		return nil, err
	}
	s.reviews = next

	return &review, nil
}

// Summarize averages ratings to one decimal place. An empty list reads
// as a perfect score so a fresh storefront does not show 0.0 stars.
func (s *service) Summarize(_ context.Context) Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := len(s.reviews)
	if total == 0 {
		return Summary{AverageRating: 5.0, TotalReviews: 0}
	}

	sum := 0
	for _, r := range s.reviews {
		sum += r.Rating
	}
	avg := decimal.NewFromInt(int64(sum)).Div(decimal.NewFromInt(int64(total))).Round(1)
	rating, _ := avg.Float64()

	return Summary{AverageRating: rating, TotalReviews: total}
}
