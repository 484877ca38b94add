package app

import (
	"context"

	"gamelibrary/internal/domain"
)

// Profile is a user's public page: their reviews and wishlist.
type Profile struct {
	User          *domain.User
	Reviews       []*domain.Review
	Wishlist      []*domain.Game
	WishlistCount int
}

// ProfileService assembles user profiles.
type ProfileService struct {
	repo domain.Repository
}

// NewProfileService creates a ProfileService backed by the given repository.
func NewProfileService(repo domain.Repository) *ProfileService {
	return &ProfileService{repo: repo}
}

// Get returns the profile of username.
func (s *ProfileService) Get(ctx context.Context, username string) (*Profile, error) {
	user, err := s.repo.GetUser(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUnknownUser
	}

	reviews, err := s.repo.GetReviews(ctx, user)
	if err != nil {
		return nil, err
	}
	wishlist, err := s.repo.GetWishlistGames(ctx, user)
	if err != nil {
		return nil, err
	}
	count, err := s.repo.GetNumberOfWishlistGames(ctx, user)
	if err != nil {
		return nil, err
	}

	return &Profile{
		User:          user,
		Reviews:       reviews,
		Wishlist:      wishlist,
		WishlistCount: count,
	}, nil
}
