package service

import (
	"context"
	"rhr/internal/reviews/repository"
	"rhr/pkg/config"
	apperrors "rhr/pkg/errors"
	"rhr/pkg/model"
	"strconv"
	"time"
)

type ReviewService interface {
	Submit(ctx context.Context, review *model.Review) error
	ListFor(ctx context.Context, ref string) ([]*model.Review, error)
}

type reviewService struct {
	repo repository.ReviewRepository
	cfg  *config.Config
}

func NewReviewService(repo repository.ReviewRepository, cfg *config.Config) ReviewService {
	return &reviewService{
		repo: repo,
		cfg:  cfg,
	}
}

// Submit stores a review as a new immutable record. The creation timestamp
// is server-assigned; rating and comment are accepted as-is.
func (s *reviewService) Submit(ctx context.Context, review *model.Review) error {
	review.ID = ""
	review.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)

	if err := s.repo.Insert(ctx, review); err != nil {
		s.cfg.Log.Error("Failed to store review", "num", review.Num, "error", err)
		return apperrors.Internal("Failed to store review", err)
	}

	s.cfg.Log.Info("Review stored", "id", review.ID, "num", review.Num)
	return nil
}

// ListFor returns the reviews for a numeric room reference. The reference
// arrives as text; a non-numeric value yields an empty result, not an error,
// since existing callers probe with arbitrary strings.
func (s *reviewService) ListFor(ctx context.Context, ref string) ([]*model.Review, error) {
	num, err := strconv.Atoi(ref)
	if err != nil {
		s.cfg.Log.Warn("Non-numeric review reference, returning empty set", "ref", ref)
		return []*model.Review{}, nil
	}

	reviews, err := s.repo.FindByNum(ctx, num)
	if err != nil {
		s.cfg.Log.Error("Failed to list reviews", "num", num, "error", err)
		return nil, apperrors.Internal("Failed to retrieve reviews", err)
	}

	return reviews, nil
}
