package app

import (
	"context"

	"gamelibrary/internal/domain"
)

// WishlistService manages a user's wishlist.
type WishlistService struct {
	repo domain.Repository
}

// NewWishlistService creates a WishlistService backed by the given repository.
func NewWishlistService(repo domain.Repository) *WishlistService {
	return &WishlistService{repo: repo}
}

func (s *WishlistService) lookup(ctx context.Context, username string, gameID int) (*domain.User, *domain.Game, error) {
	user, err := s.user(ctx, username)
	if err != nil {
		return nil, nil, err
	}
	game, err := s.repo.GetGameByID(ctx, gameID)
	if err != nil {
		return nil, nil, err
	}
	if game == nil {
		return nil, nil, ErrGameNotFound
	}
	return user, game, nil
}

func (s *WishlistService) user(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.repo.GetUser(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUnknownUser
	}
	return user, nil
}

// Add puts the game on username's wishlist. Adding a game twice is a no-op.
func (s *WishlistService) Add(ctx context.Context, username string, gameID int) error {
	user, game, err := s.lookup(ctx, username, gameID)
	if err != nil {
		return err
	}
	in, err := s.contains(ctx, user, game.ID)
	if err != nil || in {
		return err
	}
	return s.repo.AddWishlistGame(ctx, user, game)
}

// Contains reports whether the game is on username's wishlist.
func (s *WishlistService) Contains(ctx context.Context, username string, gameID int) (bool, error) {
	user, err := s.user(ctx, username)
	if err != nil {
		return false, err
	}
	return s.contains(ctx, user, gameID)
}

func (s *WishlistService) contains(ctx context.Context, user *domain.User, gameID int) (bool, error) {
	games, err := s.repo.GetWishlistGames(ctx, user)
	if err != nil {
		return false, err
	}
	for _, g := range games {
		if g.ID == gameID {
			return true, nil
		}
	}
	return false, nil
}

// Remove takes the game off username's wishlist.
func (s *WishlistService) Remove(ctx context.Context, username string, gameID int) error {
	user, game, err := s.lookup(ctx, username, gameID)
	if err != nil {
		return err
	}
	return s.repo.RemoveWishlistGame(ctx, user, game)
}

// List returns one page of username's wishlist.
func (s *WishlistService) List(ctx context.Context, username string, page int) (Page[*domain.Game], error) {
	user, err := s.user(ctx, username)
	if err != nil {
		return Page[*domain.Game]{}, err
	}
	games, err := s.repo.GetWishlistGames(ctx, user)
	if err != nil {
		return Page[*domain.Game]{}, err
	}
	return Paginate(games, page, WishlistPerPage), nil
}

// Count returns the size of username's wishlist.
func (s *WishlistService) Count(ctx context.Context, username string) (int, error) {
	user, err := s.user(ctx, username)
	if err != nil {
		return 0, err
	}
	return s.repo.GetNumberOfWishlistGames(ctx, user)
}
