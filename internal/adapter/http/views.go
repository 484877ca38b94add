package adapthttp

import (
	"time"

	"gamelibrary/internal/domain"
)

type reviewView struct {
	Username  string    `json:"username"`
	GameID    int       `json:"gameId"`
	GameTitle string    `json:"gameTitle"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	Timestamp time.Time `json:"timestamp"`
}

func newReviewView(r *domain.Review) reviewView {
	v := reviewView{Rating: r.Rating, Comment: r.Comment, Timestamp: r.Timestamp}
	if r.User != nil {
		v.Username = r.User.Username
	}
	if r.Game != nil {
		v.GameID = r.Game.ID
		v.GameTitle = r.Game.Title
	}
	return v
}

func newReviewViews(reviews []*domain.Review) []reviewView {
	out := make([]reviewView, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, newReviewView(r))
	}
	return out
}

func averageRating(reviews []*domain.Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	return float64(sum) / float64(len(reviews))
}
