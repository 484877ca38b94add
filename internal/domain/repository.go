package domain

import (
	"context"
	"errors"
)

// ErrReviewNotLinked indicates a review that is missing from its user's or
// its game's review list.
var ErrReviewNotLinked = errors.New("review not linked")

// RepositoryError is returned when a write is rejected before it touches the
// store.
type RepositoryError struct {
	Op      string
	Message string
	Err     error
}

func (e *RepositoryError) Error() string {
	return "repository: " + e.Op + ": " + e.Message
}

func (e *RepositoryError) Unwrap() error { return e.Err }

// CheckReviewLinks verifies that r is reachable from both its user and its
// game. Every Repository runs it before accepting a review.
func CheckReviewLinks(r *Review) error {
	if r == nil || r.User == nil || !r.User.HasReview(r) {
		return &RepositoryError{Op: "add review", Message: "review not correctly attached to a user", Err: ErrReviewNotLinked}
	}
	if r.Game == nil || !r.Game.HasReview(r) {
		return &RepositoryError{Op: "add review", Message: "review not correctly attached to a game", Err: ErrReviewNotLinked}
	}
	return nil
}

// Repository is the storage port for the whole catalog. Single-entity lookups
// return nil, nil when nothing matches; list lookups return an empty slice.
type Repository interface {
	AddGame(ctx context.Context, g *Game) error
	AddMultipleGames(ctx context.Context, games []*Game) error
	GetGames(ctx context.Context) ([]*Game, error)
	GetGameByID(ctx context.Context, id int) (*Game, error)
	GetNumberOfGames(ctx context.Context) (int, error)
	GetGamesOfType(ctx context.Context, genre string) ([]*Game, error)
	GetNumberOfGamesOfType(ctx context.Context, genre string) (int, error)
	SearchGames(ctx context.Context, query string) ([]*Game, error)

	AddGenre(ctx context.Context, g Genre) error
	AddMultipleGenres(ctx context.Context, genres []Genre) error
	GetGenres(ctx context.Context) ([]Genre, error)

	AddPublisher(ctx context.Context, p Publisher) error
	AddMultiplePublishers(ctx context.Context, publishers []Publisher) error
	GetPublishers(ctx context.Context) ([]Publisher, error)

	AddUser(ctx context.Context, u *User) error
	GetUser(ctx context.Context, username string) (*User, error)

	AddReview(ctx context.Context, r *Review) error
	AddMultipleReviews(ctx context.Context, reviews []*Review) error
	GetReviews(ctx context.Context, u *User) ([]*Review, error)
	GetGameReviews(ctx context.Context, g *Game) ([]*Review, error)

	AddWishlistGame(ctx context.Context, u *User, g *Game) error
	RemoveWishlistGame(ctx context.Context, u *User, g *Game) error
	GetWishlistGames(ctx context.Context, u *User) ([]*Game, error)
	GetNumberOfWishlistGames(ctx context.Context, u *User) (int, error)
}

// RequestScoper is implemented by repositories that bind a storage session to
// one inbound request. The context returned by BeginRequestScope must be
// passed to repository calls made while serving the request, and
// EndRequestScope must run on every exit path.
type RequestScoper interface {
	BeginRequestScope(ctx context.Context) (context.Context, error)
	EndRequestScope(ctx context.Context) error
}

// ReviewLinker is implemented by repositories that hand the same Game and User
// values to every caller. LinkAndAddReview attaches r to its user and game and
// stores it while holding the repository's lock.
type ReviewLinker interface {
	LinkAndAddReview(ctx context.Context, r *Review) error
}
