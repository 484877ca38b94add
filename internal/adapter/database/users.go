package database

import (
	"context"

	"gorm.io/gorm"

	"gamelibrary/internal/domain"
)

// AddUser stores u.
func (d *DB) AddUser(ctx context.Context, u *domain.User) error {
	if u == nil {
		return nil
	}
	row := userRow{Username: u.Username, PasswordHash: u.PasswordHash}
	return d.conn(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&row).Error
	})
}

// GetUser retrieves a user by username together with their reviews.
func (d *DB) GetUser(ctx context.Context, username string) (*domain.User, error) {
	var rows []userRow
	db := d.conn(ctx)
	if err := db.Where("username = ?", username).Limit(1).Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	u := domain.NewUser(rows[0].Username, rows[0].PasswordHash)
	if _, err := loadReviews(db, u); err != nil {
		return nil, err
	}
	return u, nil
}
