package library

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"gamevault/backend/internal/hub"
	"gamevault/backend/internal/metrics"
	"gamevault/backend/internal/models"
)

// Storefront platform values.
const (
	PlatformSteam = "STEAM"
	PlatformGOG   = "GOG"
	PlatformEpic  = "EPIC"
)

// ErrThrottled is returned when a sync is requested too soon after the previous one.
var ErrThrottled = errors.New("sync throttled")

// ErrNotConfigured is returned when a storefront has no local source configured.
var ErrNotConfigured = errors.New("sync source not configured")

// Upserter stores games keyed by (GameID, Platform).
type Upserter interface {
	Upsert(ctx context.Context, create models.Game, update func(*models.Game)) (*models.Game, bool, error)
}

// Publisher receives library change events.
type Publisher interface {
	Publish(event hub.Event)
}

// Result summarizes one sync run.
type Result struct {
	Platform string        `json:"platform"`
	Created  int           `json:"created"`
	Updated  int           `json:"updated"`
	Games    []models.Game `json:"-"`
}

func (r *Result) record(game *models.Game, created bool) {
	if created {
		r.Created++
	} else {
		r.Updated++
	}
	r.Games = append(r.Games, *game)
}

// Options configures a Syncer.
type Options struct {
	SteamLibraryPath string
	EpicManifestPath string
	MinInterval      time.Duration
	// OnChange runs after every successful sync that touched the store.
	OnChange func(ctx context.Context)
}

// Syncer imports storefront libraries into the store.
type Syncer struct {
	store    Upserter
	events   Publisher
	limiters map[string]*rate.Limiter
	opts     Options
	logger   *slog.Logger
	now      func() time.Time
}

func NewSyncer(store Upserter, events Publisher, opts Options, logger *slog.Logger) *Syncer {
	if logger == nil {
		logger = slog.Default()
	}
	limit := rate.Inf
	if opts.MinInterval > 0 {
		limit = rate.Every(opts.MinInterval)
	}
	// storefronts are throttled independently
	limiters := make(map[string]*rate.Limiter, 3)
	for _, platform := range []string{PlatformSteam, PlatformGOG, PlatformEpic} {
		limiters[platform] = rate.NewLimiter(limit, 1)
	}
	return &Syncer{
		store:    store,
		events:   events,
		limiters: limiters,
		opts:     opts,
		logger:   logger,
		now:      time.Now,
	}
}

// SyncSteam upserts the reference Steam record, then imports installed games
// from the configured Steam library.
func (s *Syncer) SyncSteam(ctx context.Context) (*Result, error) {
	return s.run(ctx, PlatformSteam, func(ctx context.Context, res *Result) error {
		if err := s.upsert(ctx, res, steamReference(), func(g *models.Game) {
			g.Title = "Test Game Steam Updated"
		}); err != nil {
			return err
		}

		if s.opts.SteamLibraryPath == "" {
			return nil
		}
		apps, err := ScanSteamLibrary(s.opts.SteamLibraryPath)
		if err != nil {
			return err
		}
		for _, app := range apps {
			name := app.Name
			if err := s.upsert(ctx, res, app.Game(), func(g *models.Game) {
				g.Title = name
			}); err != nil {
				return err
			}
		}
		return nil
	})
}

// SyncGOG upserts the reference GOG record.
func (s *Syncer) SyncGOG(ctx context.Context) (*Result, error) {
	return s.run(ctx, PlatformGOG, func(ctx context.Context, res *Result) error {
		return s.upsert(ctx, res, gogReference(), func(g *models.Game) {
			g.Title = "Test Game GOG Updated"
			g.Tags = tagsFrom("RPG,Fantasy,Updated")
		})
	})
}

// SyncEpic imports the games listed in the configured Epic manifest directory.
func (s *Syncer) SyncEpic(ctx context.Context) (*Result, error) {
	if s.opts.EpicManifestPath == "" {
		return nil, fmt.Errorf("%w: EPIC_MANIFEST_PATH is empty", ErrNotConfigured)
	}
	return s.run(ctx, PlatformEpic, func(ctx context.Context, res *Result) error {
		manifests, err := ScanEpicManifests(s.opts.EpicManifestPath)
		if err != nil {
			return err
		}
		for _, m := range manifests {
			name := m.DisplayName
			if err := s.upsert(ctx, res, m.Game(), func(g *models.Game) {
				g.Title = name
			}); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Syncer) run(ctx context.Context, platform string, body func(context.Context, *Result) error) (*Result, error) {
	if !s.limiters[platform].Allow() {
		return nil, ErrThrottled
	}

	start := s.now()
	res := &Result{Platform: platform}
	err := body(ctx, res)
	if res.Created+res.Updated > 0 && s.opts.OnChange != nil {
		s.opts.OnChange(ctx)
	}
	metrics.ObserveSync(platform, res.Created, res.Updated, err)
	if err != nil {
		s.logger.Error("library_sync_failed", "platform", platform, "err", err)
		return nil, fmt.Errorf("sync %s: %w", platform, err)
	}

	s.logger.Info("library_synced",
		"platform", platform,
		"created", res.Created,
		"updated", res.Updated,
		"duration", s.now().Sub(start),
	)
	if s.events != nil {
		s.events.Publish(hub.Event{Type: hub.TopicLibrarySynced, Payload: res})
	}
	return res, nil
}

func (s *Syncer) upsert(ctx context.Context, res *Result, create models.Game, update func(*models.Game)) error {
	game, created, err := s.store.Upsert(ctx, create, update)
	if err != nil {
		return err
	}
	res.record(game, created)
	return nil
}
