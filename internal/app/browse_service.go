package app

import (
	"context"
	"errors"
	"strings"

	"gamelibrary/internal/domain"
)

// ErrGameNotFound indicates that no game has the requested id.
var ErrGameNotFound = errors.New("game not found")

// BrowseService lists, looks up and searches the catalog.
type BrowseService struct {
	repo domain.Repository
}

// NewBrowseService creates a BrowseService backed by the given repository.
func NewBrowseService(repo domain.Repository) *BrowseService {
	return &BrowseService{repo: repo}
}

// ListGames returns one page of the catalog ordered by title.
func (s *BrowseService) ListGames(ctx context.Context, page int) (Page[*domain.Game], error) {
	games, err := s.repo.GetGames(ctx)
	if err != nil {
		return Page[*domain.Game]{}, err
	}
	return Paginate(games, page, GamesPerPage), nil
}

// CountGames returns the number of games in the catalog.
func (s *BrowseService) CountGames(ctx context.Context) (int, error) {
	return s.repo.GetNumberOfGames(ctx)
}

// GetGame returns the game with the given id.
func (s *BrowseService) GetGame(ctx context.Context, id int) (*domain.Game, error) {
	g, err := s.repo.GetGameByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, ErrGameNotFound
	}
	return g, nil
}

// GameReviews returns the reviews of g in the order they were written.
func (s *BrowseService) GameReviews(ctx context.Context, g *domain.Game) ([]*domain.Review, error) {
	return s.repo.GetGameReviews(ctx, g)
}

// Search returns the games matching query. A blank query matches nothing.
func (s *BrowseService) Search(ctx context.Context, query string) ([]*domain.Game, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []*domain.Game{}, nil
	}
	return s.repo.SearchGames(ctx, query)
}
