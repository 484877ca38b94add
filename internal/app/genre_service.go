package app

import (
	"context"
	"sort"

	"gamelibrary/internal/domain"
)

// GenreService lists genres and the games in them.
type GenreService struct {
	repo domain.Repository
}

// NewGenreService creates a GenreService backed by the given repository.
func NewGenreService(repo domain.Repository) *GenreService {
	return &GenreService{repo: repo}
}

// ListGenres returns every known genre.
func (s *GenreService) ListGenres(ctx context.Context) ([]domain.Genre, error) {
	return s.repo.GetGenres(ctx)
}

// GamesOfType returns one page of the games in genre, ordered by title.
func (s *GenreService) GamesOfType(ctx context.Context, genre string, page int) (Page[*domain.Game], error) {
	games, err := s.repo.GetGamesOfType(ctx, genre)
	if err != nil {
		return Page[*domain.Game]{}, err
	}
	sort.SliceStable(games, func(i, j int) bool { return domain.GameLess(games[i], games[j]) })
	return Paginate(games, page, GamesPerPage), nil
}

// CountGamesOfType returns the number of games in genre.
func (s *GenreService) CountGamesOfType(ctx context.Context, genre string) (int, error) {
	return s.repo.GetNumberOfGamesOfType(ctx, genre)
}
