package database

import (
	"context"

	"gorm.io/gorm"

	"gamelibrary/internal/domain"
)

// AddWishlistGame puts g on u's wishlist if it is not already there.
func (d *DB) AddWishlistGame(ctx context.Context, u *domain.User, g *domain.Game) error {
	if u == nil || g == nil {
		return nil
	}
	row := newWishlistRow(domain.WishlistEntry{Username: u.Username, GameID: g.ID})
	return d.conn(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		err := tx.Model(&wishlistRow{}).
			Where("username = ? AND game_id = ?", row.Username, row.GameID).
			Count(&n).Error
		if err != nil || n > 0 {
			return err
		}
		return tx.Create(&row).Error
	})
}

// RemoveWishlistGame takes g off u's wishlist if it is there.
func (d *DB) RemoveWishlistGame(ctx context.Context, u *domain.User, g *domain.Game) error {
	if u == nil || g == nil {
		return nil
	}
	return d.conn(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Where("username = ? AND game_id = ?", u.Username, g.ID).Delete(&wishlistRow{}).Error
	})
}

// GetWishlistGames returns the games on u's wishlist in the order they were added.
func (d *DB) GetWishlistGames(ctx context.Context, u *domain.User) ([]*domain.Game, error) {
	result := make([]*domain.Game, 0)
	if u == nil {
		return result, nil
	}
	db := d.conn(ctx)

	var ids []int
	err := db.Model(&wishlistRow{}).Where("username = ?", u.Username).Order("id").Pluck("game_id", &ids).Error
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return result, nil
	}

	var rows []gameRow
	if err := db.Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	games, err := hydrateGames(db, rows)
	if err != nil {
		return nil, err
	}
	byID := make(map[int]*domain.Game, len(games))
	for _, g := range games {
		byID[g.ID] = g
	}
	for _, id := range ids {
		if g, ok := byID[id]; ok {
			result = append(result, g)
		}
	}
	return result, nil
}

// GetNumberOfWishlistGames returns the size of u's wishlist.
func (d *DB) GetNumberOfWishlistGames(ctx context.Context, u *domain.User) (int, error) {
	if u == nil {
		return 0, nil
	}
	var n int64
	err := d.conn(ctx).Model(&wishlistRow{}).Where("username = ?", u.Username).Count(&n).Error
	return int(n), err
}
