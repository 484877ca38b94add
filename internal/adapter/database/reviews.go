package database

import (
	"context"

	"gorm.io/gorm"

	"gamelibrary/internal/domain"
)

// AddReview stores r after checking it is linked to its user and game.
func (d *DB) AddReview(ctx context.Context, r *domain.Review) error {
	return d.AddMultipleReviews(ctx, []*domain.Review{r})
}

// AddMultipleReviews stores every review in one transaction, or none if any
// is not linked.
func (d *DB) AddMultipleReviews(ctx context.Context, reviews []*domain.Review) error {
	rows := make([]reviewRow, 0, len(reviews))
	for _, r := range reviews {
		if err := domain.CheckReviewLinks(r); err != nil {
			return err
		}
		rows = append(rows, newReviewRow(r))
	}
	if len(rows) == 0 {
		return nil
	}
	return d.conn(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(rows, batchSize).Error
	})
}

// GetReviews returns the reviews written by u, newest first.
func (d *DB) GetReviews(ctx context.Context, u *domain.User) ([]*domain.Review, error) {
	if u == nil {
		return []*domain.Review{}, nil
	}
	reviews, err := loadReviews(d.conn(ctx), domain.NewUser(u.Username, u.PasswordHash))
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(reviews)-1; i < j; i, j = i+1, j-1 {
		reviews[i], reviews[j] = reviews[j], reviews[i]
	}
	return reviews, nil
}

// GetGameReviews returns the reviews of g in the order they were written.
// Review authors are materialized as username-only users.
func (d *DB) GetGameReviews(ctx context.Context, g *domain.Game) ([]*domain.Review, error) {
	result := make([]*domain.Review, 0)
	if g == nil {
		return result, nil
	}
	db := d.conn(ctx)
	var rows []gameRow
	if err := db.Where("id = ?", g.ID).Limit(1).Find(&rows).Error; err != nil {
		return nil, err
	}
	games, err := hydrateGames(db, rows)
	if err != nil {
		return nil, err
	}
	if len(games) == 0 {
		return result, nil
	}
	return append(result, games[0].Reviews...), nil
}

// loadReviews reads the reviews authored by u, oldest first, and links each
// to u and to an id-and-title-only game.
func loadReviews(db *gorm.DB, u *domain.User) ([]*domain.Review, error) {
	var rows []reviewRow
	if err := db.Where("username = ?", u.Username).Order("created_at, id").Find(&rows).Error; err != nil {
		return nil, err
	}
	reviews := make([]*domain.Review, 0, len(rows))
	if len(rows) == 0 {
		return reviews, nil
	}

	ids := make([]int, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.GameID)
	}
	var games []gameRow
	if err := db.Select("id", "title").Where("id IN ?", ids).Find(&games).Error; err != nil {
		return nil, err
	}
	byID := make(map[int]*domain.Game, len(games))
	for _, g := range games {
		byID[g.ID] = domain.NewGame(g.ID, g.Title)
	}

	for _, row := range rows {
		g, ok := byID[row.GameID]
		if !ok {
			g = domain.NewGame(row.GameID, "")
			byID[row.GameID] = g
		}
		r := &domain.Review{
			User:      u,
			Game:      g,
			Rating:    row.Rating,
			Comment:   row.Comment,
			Timestamp: row.Timestamp.UTC(),
		}
		r.Link()
		reviews = append(reviews, r)
	}
	return reviews, nil
}
