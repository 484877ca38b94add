package app

import (
	"context"
	"errors"

	"gamelibrary/internal/domain"
)

// mockRepo implements domain.Repository with overridable functions. Calls to
// methods without a function fail.
type mockRepo struct {
	getGamesFn          func(ctx context.Context) ([]*domain.Game, error)
	getGameByIDFn       func(ctx context.Context, id int) (*domain.Game, error)
	getGamesOfTypeFn    func(ctx context.Context, genre string) ([]*domain.Game, error)
	searchGamesFn       func(ctx context.Context, query string) ([]*domain.Game, error)
	getUserFn           func(ctx context.Context, username string) (*domain.User, error)
	addUserFn           func(ctx context.Context, u *domain.User) error
	addReviewFn         func(ctx context.Context, r *domain.Review) error
	getReviewsFn        func(ctx context.Context, u *domain.User) ([]*domain.Review, error)
	getGameReviewsFn    func(ctx context.Context, g *domain.Game) ([]*domain.Review, error)
	addWishlistGameFn   func(ctx context.Context, u *domain.User, g *domain.Game) error
	getWishlistGamesFn  func(ctx context.Context, u *domain.User) ([]*domain.Game, error)
	countWishlistGameFn func(ctx context.Context, u *domain.User) (int, error)
}

var errNotMocked = errors.New("not mocked")

func (m *mockRepo) AddGame(ctx context.Context, g *domain.Game) error { return errNotMocked }
func (m *mockRepo) AddMultipleGames(ctx context.Context, games []*domain.Game) error {
	return errNotMocked
}

func (m *mockRepo) GetGames(ctx context.Context) ([]*domain.Game, error) {
	if m.getGamesFn != nil {
		return m.getGamesFn(ctx)
	}
	return nil, errNotMocked
}

func (m *mockRepo) GetGameByID(ctx context.Context, id int) (*domain.Game, error) {
	if m.getGameByIDFn != nil {
		return m.getGameByIDFn(ctx, id)
	}
	return nil, errNotMocked
}

func (m *mockRepo) GetNumberOfGames(ctx context.Context) (int, error) { return 0, errNotMocked }

func (m *mockRepo) GetGamesOfType(ctx context.Context, genre string) ([]*domain.Game, error) {
	if m.getGamesOfTypeFn != nil {
		return m.getGamesOfTypeFn(ctx, genre)
	}
	return nil, errNotMocked
}

func (m *mockRepo) GetNumberOfGamesOfType(ctx context.Context, genre string) (int, error) {
	return 0, errNotMocked
}

func (m *mockRepo) SearchGames(ctx context.Context, query string) ([]*domain.Game, error) {
	if m.searchGamesFn != nil {
		return m.searchGamesFn(ctx, query)
	}
	return nil, errNotMocked
}

func (m *mockRepo) AddGenre(ctx context.Context, g domain.Genre) error { return errNotMocked }
func (m *mockRepo) AddMultipleGenres(ctx context.Context, genres []domain.Genre) error {
	return errNotMocked
}
func (m *mockRepo) GetGenres(ctx context.Context) ([]domain.Genre, error) { return nil, errNotMocked }
func (m *mockRepo) AddPublisher(ctx context.Context, p domain.Publisher) error {
	return errNotMocked
}
func (m *mockRepo) AddMultiplePublishers(ctx context.Context, publishers []domain.Publisher) error {
	return errNotMocked
}
func (m *mockRepo) GetPublishers(ctx context.Context) ([]domain.Publisher, error) {
	return nil, errNotMocked
}

func (m *mockRepo) AddUser(ctx context.Context, u *domain.User) error {
	if m.addUserFn != nil {
		return m.addUserFn(ctx, u)
	}
	return errNotMocked
}

func (m *mockRepo) GetUser(ctx context.Context, username string) (*domain.User, error) {
	if m.getUserFn != nil {
		return m.getUserFn(ctx, username)
	}
	return nil, errNotMocked
}

func (m *mockRepo) AddReview(ctx context.Context, r *domain.Review) error {
	if m.addReviewFn != nil {
		return m.addReviewFn(ctx, r)
	}
	return errNotMocked
}

func (m *mockRepo) AddMultipleReviews(ctx context.Context, reviews []*domain.Review) error {
	return errNotMocked
}

func (m *mockRepo) GetReviews(ctx context.Context, u *domain.User) ([]*domain.Review, error) {
	if m.getReviewsFn != nil {
		return m.getReviewsFn(ctx, u)
	}
	return nil, errNotMocked
}

func (m *mockRepo) GetGameReviews(ctx context.Context, g *domain.Game) ([]*domain.Review, error) {
	if m.getGameReviewsFn != nil {
		return m.getGameReviewsFn(ctx, g)
	}
	return nil, errNotMocked
}

func (m *mockRepo) AddWishlistGame(ctx context.Context, u *domain.User, g *domain.Game) error {
	if m.addWishlistGameFn != nil {
		return m.addWishlistGameFn(ctx, u, g)
	}
	return errNotMocked
}

func (m *mockRepo) RemoveWishlistGame(ctx context.Context, u *domain.User, g *domain.Game) error {
	return errNotMocked
}

func (m *mockRepo) GetWishlistGames(ctx context.Context, u *domain.User) ([]*domain.Game, error) {
	if m.getWishlistGamesFn != nil {
		return m.getWishlistGamesFn(ctx, u)
	}
	return nil, errNotMocked
}

func (m *mockRepo) GetNumberOfWishlistGames(ctx context.Context, u *domain.User) (int, error) {
	if m.countWishlistGameFn != nil {
		return m.countWishlistGameFn(ctx, u)
	}
	return 0, errNotMocked
}
