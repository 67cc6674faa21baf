package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"gamevault/backend/internal/models"
)

// paginate counts the rows matched by db and loads one page of them. The
// scopes apply to the page query only.
func paginate[T any](db *gorm.DB, page, limit int, scopes ...func(*gorm.DB) *gorm.DB) ([]T, int64, error) {
	var total int64
	if err := db.Session(&gorm.Session{}).Model(new(T)).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var results []T
	offset := (page - 1) * limit
	if err := db.Session(&gorm.Session{}).Scopes(scopes...).Offset(offset).Limit(limit).Find(&results).Error; err != nil {
		return nil, 0, err
	}
	return results, total, nil
}

// Page returns one page of games, title ascending, with the total game count.
// Pages start at 1.
func (r *GameRepository) Page(ctx context.Context, page, limit int) ([]models.Game, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}
	games, total, err := paginate[models.Game](r.db.WithContext(ctx).Order("games.title ASC"), page, limit, withFullProjection)
	if err != nil {
		return nil, 0, fmt.Errorf("page games: %w", err)
	}
	return games, total, nil
}
