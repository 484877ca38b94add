package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"gamelibrary/internal/domain"
)

// MinCommentLength is the shortest accepted review comment, in characters.
const MinCommentLength = 4

var (
	// ErrUnknownUser indicates that no user has the given username.
	ErrUnknownUser = errors.New("unknown user")
	// ErrInvalidReview indicates a rating outside 1..5 or a too-short comment.
	ErrInvalidReview = domain.ErrInvalidReview
)

// ReviewService records and lists reviews.
type ReviewService struct {
	repo domain.Repository
	now  func() time.Time
}

// NewReviewService creates a ReviewService backed by the given repository.
func NewReviewService(repo domain.Repository) *ReviewService {
	return &ReviewService{repo: repo, now: time.Now}
}

// AddReview records username's review of the game with the given id.
func (s *ReviewService) AddReview(ctx context.Context, gameID int, username string, rating int, comment string) (*domain.Review, error) {
	comment = strings.TrimSpace(comment)
	if utf8.RuneCountInString(comment) < MinCommentLength {
		return nil, fmt.Errorf("%w: comment must be at least %d characters", ErrInvalidReview, MinCommentLength)
	}
	if rating < domain.MinRating || rating > domain.MaxRating {
		return nil, fmt.Errorf("%w: rating must be between %d and %d", ErrInvalidReview, domain.MinRating, domain.MaxRating)
	}

	game, err := s.repo.GetGameByID(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if game == nil {
		return nil, ErrGameNotFound
	}

	user, err := s.repo.GetUser(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUnknownUser
	}

	review, err := domain.NewReview(user, game, rating, comment, s.now())
	if err != nil {
		return nil, err
	}
	if linker, ok := s.repo.(domain.ReviewLinker); ok {
		err = linker.LinkAndAddReview(ctx, review)
	} else {
		review.Link()
		err = s.repo.AddReview(ctx, review)
	}
	if err != nil {
		return nil, err
	}
	return review, nil
}

// ReviewsByUser returns username's reviews, newest first.
func (s *ReviewService) ReviewsByUser(ctx context.Context, username string) ([]*domain.Review, error) {
	user, err := s.repo.GetUser(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUnknownUser
	}
	return s.repo.GetReviews(ctx, user)
}
