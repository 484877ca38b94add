package database

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"gamelibrary/internal/domain"
)

const batchSize = 500

// AddGame stores g and its genre links. An existing game with the same id is
// overwritten.
func (d *DB) AddGame(ctx context.Context, g *domain.Game) error {
	if g == nil {
		return nil
	}
	return d.AddMultipleGames(ctx, []*domain.Game{g})
}

// AddMultipleGames upserts every game together with its genre and publisher
// rows in one transaction.
func (d *DB) AddMultipleGames(ctx context.Context, games []*domain.Game) error {
	var (
		rows       []gameRow
		links      []gameGenreRow
		genres     []genreRow
		publishers []publisherRow
	)
	// One row per key: a single upsert statement may not touch a row twice.
	pos := make(map[int]int)
	seenLink := make(map[gameGenreRow]bool)
	seenGenre := make(map[string]bool)
	seenPublisher := make(map[string]bool)
	for _, g := range games {
		if g == nil {
			continue
		}
		if i, ok := pos[g.ID]; ok {
			rows[i] = newGameRow(g)
		} else {
			pos[g.ID] = len(rows)
			rows = append(rows, newGameRow(g))
		}
		for _, genre := range g.Genres {
			link := gameGenreRow{GameID: g.ID, GenreName: genre.Name}
			if !seenLink[link] {
				seenLink[link] = true
				links = append(links, link)
			}
			if !seenGenre[genre.Name] {
				seenGenre[genre.Name] = true
				genres = append(genres, genreRow{Name: genre.Name})
			}
		}
		if g.Publisher != nil && !seenPublisher[g.Publisher.Name] {
			seenPublisher[g.Publisher.Name] = true
			publishers = append(publishers, publisherRow{Name: g.Publisher.Name})
		}
	}
	if len(rows) == 0 {
		return nil
	}

	return d.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if err := insertIgnore(tx, genres); err != nil {
			return err
		}
		if err := insertIgnore(tx, publishers); err != nil {
			return err
		}
		err := tx.Clauses(clause.OnConflict{UpdateAll: true}).CreateInBatches(rows, batchSize).Error
		if err != nil {
			return err
		}
		return insertIgnore(tx, links)
	})
}

// insertIgnore inserts rows, skipping any whose key already exists.
func insertIgnore[T any](tx *gorm.DB, rows []T) error {
	if len(rows) == 0 {
		return nil
	}
	return tx.Clauses(clause.OnConflict{DoNothing: true}).CreateInBatches(rows, batchSize).Error
}

// GetGames returns all games ordered by title.
func (d *DB) GetGames(ctx context.Context) ([]*domain.Game, error) {
	var rows []gameRow
	db := d.conn(ctx)
	if err := db.Order("title, id").Find(&rows).Error; err != nil {
		return nil, err
	}
	return hydrateGames(db, rows)
}

// GetGameByID returns the game with the given id, or nil.
func (d *DB) GetGameByID(ctx context.Context, id int) (*domain.Game, error) {
	var rows []gameRow
	db := d.conn(ctx)
	if err := db.Where("id = ?", id).Limit(1).Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	games, err := hydrateGames(db, rows)
	if err != nil {
		return nil, err
	}
	return games[0], nil
}

// GetNumberOfGames returns the number of games in the catalog.
func (d *DB) GetNumberOfGames(ctx context.Context) (int, error) {
	var n int64
	err := d.conn(ctx).Model(&gameRow{}).Count(&n).Error
	return int(n), err
}

// GetGamesOfType returns the games carrying the named genre, ordered by title.
func (d *DB) GetGamesOfType(ctx context.Context, genre string) ([]*domain.Game, error) {
	var rows []gameRow
	db := d.conn(ctx)
	err := db.
		Joins("JOIN game_genres ON game_genres.game_id = games.id").
		Where("game_genres.genre_name = ?", genre).
		Order("games.title, games.id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return hydrateGames(db, rows)
}

// GetNumberOfGamesOfType counts games carrying the named genre.
func (d *DB) GetNumberOfGamesOfType(ctx context.Context, genre string) (int, error) {
	var n int64
	err := d.conn(ctx).Model(&gameGenreRow{}).
		Where("genre_name = ?", genre).
		Distinct("game_id").
		Count(&n).Error
	return int(n), err
}

// likeEscaper makes LIKE wildcards in a query match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// SearchGames matches query case-insensitively against genre names first.
// If no genre matches, titles are matched instead.
func (d *DB) SearchGames(ctx context.Context, query string) ([]*domain.Game, error) {
	db := d.conn(ctx)
	pattern := "%" + likeEscaper.Replace(strings.ToLower(query)) + "%"

	var ids []int
	err := db.Model(&gameGenreRow{}).
		Where(`LOWER(genre_name) LIKE ? ESCAPE '\'`, pattern).
		Distinct().
		Pluck("game_id", &ids).Error
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		err := db.Model(&gameRow{}).
			Where(`LOWER(title) LIKE ? ESCAPE '\'`, pattern).
			Pluck("id", &ids).Error
		if err != nil {
			return nil, err
		}
	}
	if len(ids) == 0 {
		return []*domain.Game{}, nil
	}

	var rows []gameRow
	if err := db.Where("id IN ?", ids).Order("title, id").Find(&rows).Error; err != nil {
		return nil, err
	}
	return hydrateGames(db, rows)
}

// hydrateGames converts rows to domain games and loads their genres and
// reviews. Review authors are materialized as username-only users.
func hydrateGames(db *gorm.DB, rows []gameRow) ([]*domain.Game, error) {
	games := make([]*domain.Game, 0, len(rows))
	if len(rows) == 0 {
		return games, nil
	}
	byID := make(map[int]*domain.Game, len(rows))
	ids := make([]int, 0, len(rows))
	for _, r := range rows {
		g := r.toDomain()
		games = append(games, g)
		byID[g.ID] = g
		ids = append(ids, g.ID)
	}

	var links []gameGenreRow
	if err := db.Where("game_id IN ?", ids).Order("genre_name").Find(&links).Error; err != nil {
		return nil, err
	}
	for _, l := range links {
		byID[l.GameID].AddGenre(domain.Genre{Name: l.GenreName})
	}

	var reviews []reviewRow
	if err := db.Where("game_id IN ?", ids).Order("created_at, id").Find(&reviews).Error; err != nil {
		return nil, err
	}
	for _, rr := range reviews {
		r := &domain.Review{
			User:      domain.NewUser(rr.Username, ""),
			Game:      byID[rr.GameID],
			Rating:    rr.Rating,
			Comment:   rr.Comment,
			Timestamp: rr.Timestamp.UTC(),
		}
		r.Link()
	}
	return games, nil
}

// AddGenre records g. Duplicates are ignored.
func (d *DB) AddGenre(ctx context.Context, g domain.Genre) error {
	return d.AddMultipleGenres(ctx, []domain.Genre{g})
}

// AddMultipleGenres records every genre in genres.
func (d *DB) AddMultipleGenres(ctx context.Context, genres []domain.Genre) error {
	rows := make([]genreRow, 0, len(genres))
	for _, g := range genres {
		rows = append(rows, genreRow{Name: g.Name})
	}
	return d.conn(ctx).Transaction(func(tx *gorm.DB) error {
		return insertIgnore(tx, rows)
	})
}

// GetGenres returns the known genres sorted by name.
func (d *DB) GetGenres(ctx context.Context) ([]domain.Genre, error) {
	var rows []genreRow
	if err := d.conn(ctx).Order("name").Find(&rows).Error; err != nil {
		return nil, err
	}
	genres := make([]domain.Genre, 0, len(rows))
	for _, r := range rows {
		genres = append(genres, domain.Genre{Name: r.Name})
	}
	return genres, nil
}

// AddPublisher records p. Duplicates are ignored.
func (d *DB) AddPublisher(ctx context.Context, p domain.Publisher) error {
	return d.AddMultiplePublishers(ctx, []domain.Publisher{p})
}

// AddMultiplePublishers records every publisher in publishers.
func (d *DB) AddMultiplePublishers(ctx context.Context, publishers []domain.Publisher) error {
	rows := make([]publisherRow, 0, len(publishers))
	for _, p := range publishers {
		rows = append(rows, publisherRow{Name: p.Name})
	}
	return d.conn(ctx).Transaction(func(tx *gorm.DB) error {
		return insertIgnore(tx, rows)
	})
}

// GetPublishers returns the known publishers sorted by name.
func (d *DB) GetPublishers(ctx context.Context) ([]domain.Publisher, error) {
	var rows []publisherRow
	if err := d.conn(ctx).Order("name").Find(&rows).Error; err != nil {
		return nil, err
	}
	publishers := make([]domain.Publisher, 0, len(rows))
	for _, r := range rows {
		publishers = append(publishers, domain.Publisher{Name: r.Name})
	}
	return publishers, nil
}
