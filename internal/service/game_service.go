package service

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"gamevault/backend/internal/cache"
	"gamevault/backend/internal/catalog"
	"gamevault/backend/internal/hub"
	"gamevault/backend/internal/models"
)

// Cache keys for derived read results.
const (
	keyStats      = "stats"
	keyGenres     = "lookup:genres"
	keyTags       = "lookup:tags"
	keyDevelopers = "lookup:developers"
	keyPublishers = "lookup:publishers"
	keyPlatforms  = "lookup:platforms"
)

var derivedKeys = []string{keyStats, keyGenres, keyTags, keyDevelopers, keyPublishers, keyPlatforms}

// GameStore is the persistence the service reads and writes through.
type GameStore interface {
	List(ctx context.Context) ([]models.Game, error)
	Page(ctx context.Context, page, limit int) ([]models.Game, int64, error)
	FindByID(ctx context.Context, id uint) (*models.Game, error)
	FindByGameID(ctx context.Context, gameID string) (*models.Game, error)
	Search(ctx context.Context, p catalog.Predicate) ([]models.Game, error)
	UpdateRating(ctx context.Context, id uint, rating *float64) (*models.Game, error)
	DistinctGenres(ctx context.Context) ([]string, error)
	DistinctTags(ctx context.Context) ([]string, error)
	DistinctDevelopers(ctx context.Context) ([]string, error)
	DistinctPublishers(ctx context.Context) ([]string, error)
	DistinctPlatforms(ctx context.Context) ([]string, error)
}

// Publisher receives library change events.
type Publisher interface {
	Publish(event hub.Event)
}

// Facets groups every distinct lookup.
type Facets struct {
	Genres     []string `json:"genres"`
	Tags       []string `json:"tags"`
	Developers []string `json:"developers"`
	Publishers []string `json:"publishers"`
	Platforms  []string `json:"platforms"`
}

// RatingUpdate is the payload of a rating.updated event.
type RatingUpdate struct {
	ID       uint     `json:"id"`
	GameID   string   `json:"gameId"`
	MyRating *float64 `json:"myRating"`
}

// GameService exposes the library read paths and the rating update.
type GameService struct {
	store  GameStore
	cache  *cache.Store
	events Publisher
	logger *slog.Logger
}

func NewGameService(store GameStore, cacheStore *cache.Store, events Publisher, logger *slog.Logger) *GameService {
	if logger == nil {
		logger = slog.Default()
	}
	return &GameService{store: store, cache: cacheStore, events: events, logger: logger}
}

func (s *GameService) ListGames(ctx context.Context) ([]models.Game, error) {
	return s.store.List(ctx)
}

func (s *GameService) GetGame(ctx context.Context, id uint) (*models.Game, error) {
	return s.store.FindByID(ctx, id)
}

func (s *GameService) GetGameByGameID(ctx context.Context, gameID string) (*models.Game, error) {
	return s.store.FindByGameID(ctx, gameID)
}

func (s *GameService) SearchGames(ctx context.Context, filters catalog.Filters) ([]models.Game, error) {
	return s.store.Search(ctx, catalog.BuildPredicate(filters))
}

// UpdateRating stores the personal rating, drops derived caches and notifies
// subscribers.
func (s *GameService) UpdateRating(ctx context.Context, id uint, rating *float64) (*models.Game, error) {
	game, err := s.store.UpdateRating(ctx, id, rating)
	if err != nil {
		return nil, err
	}
	s.Invalidate(ctx)
	if s.events != nil {
		s.events.Publish(hub.Event{
			Type:    hub.TopicRatingUpdated,
			Payload: RatingUpdate{ID: game.ID, GameID: game.GameID, MyRating: game.MyRating},
		})
	}
	s.logger.Info("rating_updated", "game_id", game.ID, "cleared", rating == nil)
	return game, nil
}

// Invalidate drops every cached derived result.
func (s *GameService) Invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, derivedKeys...); err != nil {
		s.logger.Warn("cache_invalidate_failed", "err", err)
	}
}

func (s *GameService) Genres(ctx context.Context) ([]string, error) {
	return cache.Load(ctx, s.cache, keyGenres, s.store.DistinctGenres)
}

func (s *GameService) Tags(ctx context.Context) ([]string, error) {
	return cache.Load(ctx, s.cache, keyTags, s.store.DistinctTags)
}

func (s *GameService) Developers(ctx context.Context) ([]string, error) {
	return cache.Load(ctx, s.cache, keyDevelopers, s.store.DistinctDevelopers)
}

func (s *GameService) Publishers(ctx context.Context) ([]string, error) {
	return cache.Load(ctx, s.cache, keyPublishers, s.store.DistinctPublishers)
}

func (s *GameService) Platforms(ctx context.Context) ([]string, error) {
	return cache.Load(ctx, s.cache, keyPlatforms, s.store.DistinctPlatforms)
}

// Facets loads the five distinct lookups concurrently.
func (s *GameService) Facets(ctx context.Context) (*Facets, error) {
	var f Facets
	g, gctx := errgroup.WithContext(ctx)
	lookups := []struct {
		dst *[]string
		fn  func(context.Context) ([]string, error)
	}{
		{&f.Genres, s.Genres},
		{&f.Tags, s.Tags},
		{&f.Developers, s.Developers},
		{&f.Publishers, s.Publishers},
		{&f.Platforms, s.Platforms},
	}
	for _, l := range lookups {
		g.Go(func() error {
			values, err := l.fn(gctx)
			if err != nil {
				return err
			}
			*l.dst = values
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load facets: %w", err)
	}
	return &f, nil
}

// Stats aggregates the whole library.
func (s *GameService) Stats(ctx context.Context) (catalog.StatsReport, error) {
	return cache.Load(ctx, s.cache, keyStats, func(ctx context.Context) (catalog.StatsReport, error) {
		games, err := s.store.List(ctx)
		if err != nil {
			return catalog.StatsReport{}, err
		}
		return catalog.Aggregate(games), nil
	})
}

// Cards returns one page of grid cards and the total number of games.
func (s *GameService) Cards(ctx context.Context, page, limit int) ([]catalog.Card, int64, error) {
	games, total, err := s.store.Page(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}
	cards := make([]catalog.Card, 0, len(games))
	for i := range games {
		cards = append(cards, catalog.NewCard(&games[i]))
	}
	return cards, total, nil
}
