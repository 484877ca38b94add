// Package memory implements an in-memory repository for development and testing.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"gamelibrary/internal/domain"
)

// DB implements an in-memory catalog store. Games are kept sorted by title;
// users and reviews are kept in insertion order. Lookups are linear scans,
// which is fine for catalogs of a few hundred games.
type DB struct {
	mu         sync.Mutex
	games      []*domain.Game
	users      []*domain.User
	reviews    []*domain.Review
	genres     []domain.Genre
	publishers []domain.Publisher
}

// New creates a new in-memory database.
func New() *DB {
	return &DB{}
}

// Ensure interfaces are met.
var (
	_ domain.Repository   = (*DB)(nil)
	_ domain.ReviewLinker = (*DB)(nil)
)

// --- Games ---

// AddGame inserts g keeping the game list sorted by title.
func (db *DB) AddGame(ctx context.Context, g *domain.Game) error {
	if g == nil {
		return nil
	}
	db.mu.Lock()
	defer db.mu.Unlock()
	db.insertGame(g)
	return nil
}

// AddMultipleGames inserts every game in games.
func (db *DB) AddMultipleGames(ctx context.Context, games []*domain.Game) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	for _, g := range games {
		if g != nil {
			db.insertGame(g)
		}
	}
	return nil
}

func (db *DB) insertGame(g *domain.Game) {
	i := sort.Search(len(db.games), func(i int) bool {
		return !domain.GameLess(db.games[i], g)
	})
	db.games = append(db.games, nil)
	copy(db.games[i+1:], db.games[i:])
	db.games[i] = g
}

// GetGames returns all games ordered by title.
func (db *DB) GetGames(ctx context.Context) ([]*domain.Game, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	result := make([]*domain.Game, len(db.games))
	copy(result, db.games)
	return result, nil
}

// GetGameByID returns the game with the given id, or nil.
func (db *DB) GetGameByID(ctx context.Context, id int) (*domain.Game, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, g := range db.games {
		if g.ID == id {
			return g, nil
		}
	}
	return nil, nil
}

// GetNumberOfGames returns the number of games in the catalog.
func (db *DB) GetNumberOfGames(ctx context.Context) (int, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return len(db.games), nil
}

// GetGamesOfType returns the games carrying the named genre, ordered by title.
func (db *DB) GetGamesOfType(ctx context.Context, genre string) ([]*domain.Game, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	result := make([]*domain.Game, 0)
	for _, g := range db.games {
		if g.HasGenre(genre) {
			result = append(result, g)
		}
	}
	return result, nil
}

// GetNumberOfGamesOfType counts games carrying the named genre.
func (db *DB) GetNumberOfGamesOfType(ctx context.Context, genre string) (int, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	count := 0
	for _, g := range db.games {
		if g.HasGenre(genre) {
			count++
		}
	}
	return count, nil
}

// SearchGames matches query against game titles, case-insensitively.
// An exact title match comes first, followed by titles containing the query
// and then titles within domain.FuzzyMatchThreshold edits, each group sorted
// by title.
func (db *DB) SearchGames(ctx context.Context, query string) ([]*domain.Game, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	q := strings.ToLower(query)
	var exact *domain.Game
	var substrings, fuzzy []*domain.Game

	for _, g := range db.games {
		title := strings.ToLower(g.Title)
		switch {
		case q == title:
			exact = g
		case strings.Contains(title, q):
			substrings = append(substrings, g)
		case domain.EditDistance(q, title) <= domain.FuzzyMatchThreshold:
			fuzzy = append(fuzzy, g)
		}
	}

	byTitle := func(s []*domain.Game) {
		sort.SliceStable(s, func(i, j int) bool { return s[i].Title < s[j].Title })
	}
	byTitle(substrings)
	byTitle(fuzzy)

	result := make([]*domain.Game, 0, len(substrings)+len(fuzzy)+1)
	if exact != nil {
		result = append(result, exact)
	}
	result = append(result, substrings...)
	result = append(result, fuzzy...)
	return result, nil
}

// --- Genres and publishers ---

// AddGenre records g. Duplicates are ignored.
func (db *DB) AddGenre(ctx context.Context, g domain.Genre) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.genres = insertName(db.genres, g, func(x domain.Genre) string { return x.Name })
	return nil
}

// AddMultipleGenres records every genre in genres.
func (db *DB) AddMultipleGenres(ctx context.Context, genres []domain.Genre) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	for _, g := range genres {
		db.genres = insertName(db.genres, g, func(x domain.Genre) string { return x.Name })
	}
	return nil
}

// GetGenres returns the known genres sorted by name.
func (db *DB) GetGenres(ctx context.Context) ([]domain.Genre, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	result := make([]domain.Genre, len(db.genres))
	copy(result, db.genres)
	return result, nil
}

// AddPublisher records p. Duplicates are ignored.
func (db *DB) AddPublisher(ctx context.Context, p domain.Publisher) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.publishers = insertName(db.publishers, p, func(x domain.Publisher) string { return x.Name })
	return nil
}

// AddMultiplePublishers records every publisher in publishers.
func (db *DB) AddMultiplePublishers(ctx context.Context, publishers []domain.Publisher) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	for _, p := range publishers {
		db.publishers = insertName(db.publishers, p, func(x domain.Publisher) string { return x.Name })
	}
	return nil
}

// GetPublishers returns the known publishers sorted by name.
func (db *DB) GetPublishers(ctx context.Context) ([]domain.Publisher, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	result := make([]domain.Publisher, len(db.publishers))
	copy(result, db.publishers)
	return result, nil
}

// insertName inserts v into the name-sorted slice s unless a value with the
// same name is already present.
func insertName[T any](s []T, v T, name func(T) string) []T {
	n := name(v)
	i := sort.Search(len(s), func(i int) bool { return name(s[i]) >= n })
	if i < len(s) && name(s[i]) == n {
		return s
	}
	s = append(s, v)
	copy(s[i+1:], s[i:])
	s[i] = v
	return s
}

// --- Users ---

// AddUser stores u.
func (db *DB) AddUser(ctx context.Context, u *domain.User) error {
	if u == nil {
		return nil
	}
	db.mu.Lock()
	defer db.mu.Unlock()
	db.users = append(db.users, u)
	return nil
}

// GetUser retrieves a user by username.
func (db *DB) GetUser(ctx context.Context, username string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.Username == username {
			return u, nil
		}
	}
	// Return nil if not found
	return nil, nil
}

// --- Reviews ---

// AddReview stores r after checking it is linked to its user and game.
func (db *DB) AddReview(ctx context.Context, r *domain.Review) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	if err := domain.CheckReviewLinks(r); err != nil {
		return err
	}
	db.reviews = append(db.reviews, r)
	return nil
}

// LinkAndAddReview attaches r to its user and game and stores it while
// holding the lock that guards the shared review lists.
func (db *DB) LinkAndAddReview(ctx context.Context, r *domain.Review) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	if r == nil || r.User == nil || r.Game == nil {
		return domain.CheckReviewLinks(r)
	}
	r.Link()
	db.reviews = append(db.reviews, r)
	return nil
}

// AddMultipleReviews stores every review, or none if any is not linked.
func (db *DB) AddMultipleReviews(ctx context.Context, reviews []*domain.Review) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	for _, r := range reviews {
		if err := domain.CheckReviewLinks(r); err != nil {
			return err
		}
	}
	db.reviews = append(db.reviews, reviews...)
	return nil
}

// GetReviews returns the reviews written by u, newest first.
func (db *DB) GetReviews(ctx context.Context, u *domain.User) ([]*domain.Review, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	result := make([]*domain.Review, 0)
	if u == nil {
		return result, nil
	}
	for i := len(db.reviews) - 1; i >= 0; i-- {
		if r := db.reviews[i]; r.User != nil && r.User.Username == u.Username {
			result = append(result, r)
		}
	}
	return result, nil
}

// GetGameReviews returns a copy of g's review list in the order the reviews
// were added.
func (db *DB) GetGameReviews(ctx context.Context, g *domain.Game) ([]*domain.Review, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	result := make([]*domain.Review, 0)
	if g == nil {
		return result, nil
	}
	return append(result, g.Reviews...), nil
}

// --- Wishlist ---

// AddWishlistGame puts g on u's wishlist if it is not already there.
func (db *DB) AddWishlistGame(ctx context.Context, u *domain.User, g *domain.Game) error {
	if u == nil || g == nil {
		return nil
	}
	db.mu.Lock()
	defer db.mu.Unlock()
	if !u.HasFavourite(g.ID) {
		u.AddFavouriteGame(g)
	}
	return nil
}

// RemoveWishlistGame takes g off u's wishlist if it is there.
func (db *DB) RemoveWishlistGame(ctx context.Context, u *domain.User, g *domain.Game) error {
	if u == nil || g == nil {
		return nil
	}
	db.mu.Lock()
	defer db.mu.Unlock()
	if u.HasFavourite(g.ID) {
		u.RemoveFavouriteGame(g)
	}
	return nil
}

// GetWishlistGames returns the games on u's wishlist in the order they were added.
func (db *DB) GetWishlistGames(ctx context.Context, u *domain.User) ([]*domain.Game, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	result := make([]*domain.Game, 0)
	if u == nil {
		return result, nil
	}
	return append(result, u.Favourites...), nil
}

// GetNumberOfWishlistGames returns the size of u's wishlist.
func (db *DB) GetNumberOfWishlistGames(ctx context.Context, u *domain.User) (int, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if u == nil {
		return 0, nil
	}
	return len(u.Favourites), nil
}
