package repository

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"gamevault/backend/internal/catalog"
	"gamevault/backend/internal/models"
)

var ErrGameNotFound = errors.New("game not found")

// ErrInvalidGame wraps validation failures on write.
var ErrInvalidGame = errors.New("invalid game")

// GameRepository persists games and their associations.
type GameRepository struct {
	db       *gorm.DB
	validate *validator.Validate
}

func New(db *gorm.DB) *GameRepository {
	return &GameRepository{db: db, validate: validator.New()}
}

func (r *GameRepository) AutoMigrate(ctx context.Context) error {
	if err := r.db.WithContext(ctx).AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// List returns every game, title ascending.
func (r *GameRepository) List(ctx context.Context) ([]models.Game, error) {
	var games []models.Game
	if err := withFullProjection(r.db.WithContext(ctx)).Order("games.title ASC").Find(&games).Error; err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	return games, nil
}

func (r *GameRepository) FindByID(ctx context.Context, id uint) (*models.Game, error) {
	return r.first(r.db.WithContext(ctx), "games.id = ?", id)
}

// FindByGameID looks a game up by its storefront identifier.
func (r *GameRepository) FindByGameID(ctx context.Context, gameID string) (*models.Game, error) {
	return r.first(r.db.WithContext(ctx).Order("games.id ASC"), "games.game_id = ?", gameID)
}

func (r *GameRepository) first(db *gorm.DB, query string, args ...any) (*models.Game, error) {
	var game models.Game
	err := withFullProjection(db).Where(query, args...).First(&game).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrGameNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find game: %w", err)
	}
	return &game, nil
}

// Search returns the games matching p, title ascending.
func (r *GameRepository) Search(ctx context.Context, p catalog.Predicate) ([]models.Game, error) {
	db, err := applyPredicate(withFullProjection(r.db.WithContext(ctx)), p)
	if err != nil {
		return nil, fmt.Errorf("build search: %w", err)
	}
	var games []models.Game
	if err := db.Order("games.title ASC").Find(&games).Error; err != nil {
		return nil, fmt.Errorf("search games: %w", err)
	}
	return games, nil
}

// UpdateRating sets the personal rating, marks the game as modified by the
// user and returns the reloaded record. A nil rating clears it.
func (r *GameRepository) UpdateRating(ctx context.Context, id uint, rating *float64) (*models.Game, error) {
	if rating != nil && (*rating < 0 || *rating > 10) {
		return nil, fmt.Errorf("%w: rating must be between 0 and 10", ErrInvalidGame)
	}

	var value any
	if rating != nil {
		value = *rating
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Game
		if err := tx.Select("id").Where("id = ?", id).First(&existing).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrGameNotFound
			}
			return err
		}
		return tx.Model(&existing).Updates(map[string]any{
			"my_rating":           value,
			"is_modified_by_user": 1,
		}).Error
	})
	if errors.Is(err, ErrGameNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("update rating: %w", err)
	}
	return r.FindByID(ctx, id)
}

func (r *GameRepository) DistinctGenres(ctx context.Context) ([]string, error) {
	return r.distinctNames(ctx, &models.Genre{})
}

func (r *GameRepository) DistinctTags(ctx context.Context) ([]string, error) {
	return r.distinctNames(ctx, &models.Tag{})
}

func (r *GameRepository) DistinctDevelopers(ctx context.Context) ([]string, error) {
	return r.distinctNames(ctx, &models.Developer{})
}

func (r *GameRepository) DistinctPublishers(ctx context.Context) ([]string, error) {
	return r.distinctNames(ctx, &models.Publisher{})
}

// DistinctPlatforms returns the platform values in use, excluding games without one.
func (r *GameRepository) DistinctPlatforms(ctx context.Context) ([]string, error) {
	var values []string
	err := r.db.WithContext(ctx).Model(&models.Game{}).
		Where("platform IS NOT NULL").
		Distinct("platform").
		Pluck("platform", &values).Error
	if err != nil {
		return nil, fmt.Errorf("distinct platforms: %w", err)
	}
	slices.Sort(values)
	return values, nil
}

func (r *GameRepository) distinctNames(ctx context.Context, model any) ([]string, error) {
	var values []string
	if err := r.db.WithContext(ctx).Model(model).Distinct("name").Pluck("name", &values).Error; err != nil {
		return nil, fmt.Errorf("distinct names: %w", err)
	}
	slices.Sort(values)
	return values, nil
}

// Upsert creates the game when no record shares its (GameID, Platform) key,
// otherwise loads the stored record and applies update to it. It reports
// whether a new record was created.
func (r *GameRepository) Upsert(ctx context.Context, create models.Game, update func(*models.Game)) (*models.Game, bool, error) {
	if err := r.validate.Struct(create); err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrInvalidGame, err)
	}

	var id uint
	var created bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Game
		q := tx.Where("game_id = ?", create.GameID)
		if create.Platform == nil {
			q = q.Where("platform IS NULL")
		} else {
			q = q.Where("platform = ?", *create.Platform)
		}
		err := withFullProjection(q).First(&existing).Error

		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			game := create
			if err := tx.Create(&game).Error; err != nil {
				return fmt.Errorf("create game: %w", err)
			}
			id, created = game.ID, true
			return nil
		case err != nil:
			return fmt.Errorf("load game: %w", err)
		}

		if update != nil {
			update(&existing)
		}
		if err := r.validate.Struct(existing); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidGame, err)
		}
		if err := tx.Omit(clause.Associations).Save(&existing).Error; err != nil {
			return fmt.Errorf("save game: %w", err)
		}
		if err := replaceRelations(tx, &existing); err != nil {
			return err
		}
		if existing.GameStats != nil {
			existing.GameStats.GameID = existing.ID
			if err := tx.Save(existing.GameStats).Error; err != nil {
				return fmt.Errorf("save game stats: %w", err)
			}
		}
		if existing.Score != nil {
			existing.Score.GameID = existing.ID
			if err := tx.Save(existing.Score).Error; err != nil {
				return fmt.Errorf("save score: %w", err)
			}
		}
		id = existing.ID
		return nil
	})
	if err != nil {
		return nil, false, err
	}

	game, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, false, err
	}
	return game, created, nil
}

// replaceRelations rewrites the name lists of an existing game.
func replaceRelations(tx *gorm.DB, g *models.Game) error {
	id := g.ID
	steps := []func() error{
		func() error {
			return replaceChildren(tx, id, g.Genres, func(x *models.Genre) { x.ID, x.GameID = 0, id })
		},
		func() error {
			return replaceChildren(tx, id, g.Developers, func(x *models.Developer) { x.ID, x.GameID = 0, id })
		},
		func() error {
			return replaceChildren(tx, id, g.Publishers, func(x *models.Publisher) { x.ID, x.GameID = 0, id })
		},
		func() error {
			return replaceChildren(tx, id, g.Tags, func(x *models.Tag) { x.ID, x.GameID = 0, id })
		},
		func() error {
			return replaceChildren(tx, id, g.Supported, func(x *models.SupportedPlatform) { x.ID, x.GameID = 0, id })
		},
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

func replaceChildren[T any](tx *gorm.DB, gameID uint, rows []T, reset func(*T)) error {
	var zero T
	if err := tx.Where("game_id = ?", gameID).Delete(&zero).Error; err != nil {
		return fmt.Errorf("delete %T rows: %w", zero, err)
	}
	if len(rows) == 0 {
		return nil
	}
	fresh := make([]T, len(rows))
	copy(fresh, rows)
	for i := range fresh {
		reset(&fresh[i])
	}
	if err := tx.Create(&fresh).Error; err != nil {
		return fmt.Errorf("insert %T rows: %w", zero, err)
	}
	return nil
}

// Count returns the number of stored games.
func (r *GameRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.Game{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count games: %w", err)
	}
	return n, nil
}
