package domain

import (
	"errors"
	"strings"
	"time"
)

// Rating bounds for a review.
const (
	MinRating = 1
	MaxRating = 5
)

// ErrInvalidReview indicates a review with an out-of-range rating or an empty comment.
var ErrInvalidReview = errors.New("invalid review")

// Review is a user's rating and comment on a game.
type Review struct {
	User      *User     `json:"-"`
	Game      *Game     `json:"-"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	Timestamp time.Time `json:"timestamp"`
}

// NewReview validates the rating and comment and returns an unlinked review.
// Callers attach it to both the user and the game before handing it to a
// repository.
func NewReview(user *User, game *Game, rating int, comment string, at time.Time) (*Review, error) {
	if user == nil || game == nil {
		return nil, ErrInvalidReview
	}
	if rating < MinRating || rating > MaxRating {
		return nil, ErrInvalidReview
	}
	comment = strings.TrimSpace(comment)
	if comment == "" {
		return nil, ErrInvalidReview
	}
	return &Review{User: user, Game: game, Rating: rating, Comment: comment, Timestamp: at.UTC()}, nil
}

// Link attaches the review to its user's and game's review lists.
func (r *Review) Link() {
	r.User.AddReview(r)
	r.Game.AddReview(r)
}
