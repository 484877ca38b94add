package database

import (
	"time"

	"gamelibrary/internal/domain"
)

type gameRow struct {
	ID            int    `gorm:"primaryKey;autoIncrement:false"`
	Title         string `gorm:"not null;index"`
	ReleaseDate   string
	Price         float64
	Description   string
	ImageURL      string
	PublisherName *string `gorm:"index"`
}

func (gameRow) TableName() string { return "games" }

type genreRow struct {
	Name string `gorm:"primaryKey"`
}

func (genreRow) TableName() string { return "genres" }

type publisherRow struct {
	Name string `gorm:"primaryKey"`
}

func (publisherRow) TableName() string { return "publishers" }

type gameGenreRow struct {
	GameID    int    `gorm:"primaryKey;autoIncrement:false"`
	GenreName string `gorm:"primaryKey;index"`
}

func (gameGenreRow) TableName() string { return "game_genres" }

type userRow struct {
	ID           uint   `gorm:"primaryKey"`
	Username     string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
}

func (userRow) TableName() string { return "users" }

type reviewRow struct {
	ID        uint      `gorm:"primaryKey"`
	Username  string    `gorm:"index;not null"`
	GameID    int       `gorm:"index;not null"`
	Rating    int       `gorm:"not null"`
	Comment   string    `gorm:"not null"`
	Timestamp time.Time `gorm:"column:created_at;not null"`
}

func (reviewRow) TableName() string { return "reviews" }

type wishlistRow struct {
	ID       uint   `gorm:"primaryKey"`
	Username string `gorm:"not null;uniqueIndex:idx_wishlist_user_game"`
	GameID   int    `gorm:"not null;uniqueIndex:idx_wishlist_user_game"`
}

func (wishlistRow) TableName() string { return "wishlist" }

func newGameRow(g *domain.Game) gameRow {
	row := gameRow{
		ID:          g.ID,
		Title:       g.Title,
		ReleaseDate: g.ReleaseDate,
		Price:       g.Price,
		Description: g.Description,
		ImageURL:    g.ImageURL,
	}
	if g.Publisher != nil {
		name := g.Publisher.Name
		row.PublisherName = &name
	}
	return row
}

func (r gameRow) toDomain() *domain.Game {
	g := &domain.Game{
		ID:          r.ID,
		Title:       r.Title,
		ReleaseDate: r.ReleaseDate,
		Price:       r.Price,
		Description: r.Description,
		ImageURL:    r.ImageURL,
	}
	if r.PublisherName != nil {
		g.Publisher = &domain.Publisher{Name: *r.PublisherName}
	}
	return g
}

func newReviewRow(r *domain.Review) reviewRow {
	return reviewRow{
		Username:  r.User.Username,
		GameID:    r.Game.ID,
		Rating:    r.Rating,
		Comment:   r.Comment,
		Timestamp: r.Timestamp,
	}
}

func newWishlistRow(e domain.WishlistEntry) wishlistRow {
	return wishlistRow{Username: e.Username, GameID: e.GameID}
}
