package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/offerhub/offers-api/internal/core/domain"
	"github.com/offerhub/offers-api/internal/core/ports"
)

type OfferService struct {
	repo   ports.OfferRepository
	cache  ports.OfferCache
	logger zerolog.Logger
	now    func() time.Time
}

// NewOfferService wires the offer use cases. cache may be nil, in which case
// every List goes to the repository.
func NewOfferService(repo ports.OfferRepository, cache ports.OfferCache, logger zerolog.Logger) *OfferService {
	return &OfferService{repo: repo, cache: cache, logger: logger, now: time.Now}
}

// List serves the offer list from the cache when one is configured. A miss
// reads the store and fills the cache under the generation seen before the
// read; if the cache could not be read at all, no fill is attempted.
func (s *OfferService) List(ctx context.Context) ([]*domain.Offer, error) {
	var (
		gen  int64
		fill bool
	)
	if s.cache != nil {
		offers, g, ok, err := s.cache.GetList(ctx)
		switch {
		case err != nil:
			s.logger.Warn().Err(err).Msg("offer cache read failed")
		case ok:
			return offers, nil
		default:
			gen, fill = g, true
		}
	}

	offers, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	if fill {
		if err := s.cache.SetList(ctx, gen, offers); err != nil {
			s.logger.Warn().Err(err).Msg("offer cache write failed")
		}
	}
	return offers, nil
}

func (s *OfferService) Get(ctx context.Context, id string) (*domain.Offer, error) {
	return s.repo.FindByID(ctx, id)
}

// Create stores a new offer with a server-derived discounted price.
func (s *OfferService) Create(ctx context.Context, input ports.CreateOfferInput) (*domain.Offer, error) {
	title := strings.TrimSpace(input.Title)
	description := strings.TrimSpace(input.Description)
	if title == "" || description == "" {
		return nil, fmt.Errorf("%w: title and description are required", domain.ErrValidation)
	}

	now := s.now().UTC()
	offer := &domain.Offer{
		Title:         title,
		Description:   description,
		OriginalPrice: input.OriginalPrice,
		Discount:      input.Discount,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := offer.Reprice(); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, offer)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create offer")
		return nil, err
	}
	s.invalidate(ctx)

	s.logger.Info().Str("offer_id", created.ID).Float64("discounted_price", created.DiscountedPrice).Msg("offer created")
	return created, nil
}

// Update applies a partial update. The discounted price is recomputed from the
// resulting price/discount pair, reading whichever half was omitted from the
// stored offer.
func (s *OfferService) Update(ctx context.Context, id string, input ports.UpdateOfferInput) (*domain.Offer, error) {
	if input.Empty() {
		return nil, fmt.Errorf("%w: no fields to update", domain.ErrValidation)
	}

	offer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		if offer.Title = strings.TrimSpace(*input.Title); offer.Title == "" {
			return nil, fmt.Errorf("%w: title cannot be empty", domain.ErrValidation)
		}
	}
	if input.Description != nil {
		if offer.Description = strings.TrimSpace(*input.Description); offer.Description == "" {
			return nil, fmt.Errorf("%w: description cannot be empty", domain.ErrValidation)
		}
	}
	if input.OriginalPrice != nil {
		offer.OriginalPrice = *input.OriginalPrice
	}
	if input.Discount != nil {
		offer.Discount = *input.Discount
	}
	if err := offer.Reprice(); err != nil {
		return nil, err
	}
	offer.UpdatedAt = s.now().UTC()

	updated, err := s.repo.Replace(ctx, offer)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)

	s.logger.Info().Str("offer_id", updated.ID).Float64("discounted_price", updated.DiscountedPrice).Msg("offer updated")
	return updated, nil
}

func (s *OfferService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)

	s.logger.Info().Str("offer_id", id).Msg("offer deleted")
	return nil
}

func (s *OfferService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("offer cache invalidation failed")
	}
}
