package testhelper

import (
	"context"
	"testing"
	"time"

	"gorm.io/gorm"

	"gamevault/backend/internal/database"
	"gamevault/backend/internal/models"
)

// NewTestDB opens a migrated in-memory SQLite database closed at test end.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Open(database.Options{Driver: "sqlite", DSN: ":memory:"})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() {
		_ = database.Close(db)
	})
	if err := database.Migrate(context.Background(), db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func Ptr[T any](v T) *T {
	return &v
}

// SampleGames returns a small library covering every filter dimension.
func SampleGames() []models.Game {
	released := time.Date(2017, time.March, 3, 0, 0, 0, 0, time.UTC)
	return []models.Game{
		{
			GameID:       "100",
			Platform:     Ptr("STEAM"),
			Title:        "Zelda Like",
			Summary:      Ptr("An open world adventure"),
			ReleaseDate:  &released,
			CriticsScore: 95,
			MyRating:     Ptr(8.0),
			Genres:       []models.Genre{{Name: "RPG"}, {Name: "Adventure"}},
			Tags:         []models.Tag{{Name: "Open World"}},
			Developers:   []models.Developer{{Name: "Indie Co"}},
			Publishers:   []models.Publisher{{Name: "Big Pub"}},
			Supported:    []models.SupportedPlatform{{Platform: "WINDOWS"}},
			GameStats:    &models.GameStats{Playtime: 120, Achievements: 10},
			Score:        &models.Score{Critics: 7, Metacritic: 90},
		},
		{
			GameID:       "200",
			Platform:     Ptr("GOG"),
			Title:        "Age of Tactics",
			CriticsScore: 70,
			Genres:       []models.Genre{{Name: "Strategy"}},
			Tags:         []models.Tag{{Name: "100%_Turn"}},
			Developers:   []models.Developer{{Name: "Big Co"}},
			Publishers:   []models.Publisher{{Name: "Big Pub"}},
		},
		{
			GameID:       "300",
			Title:        "Blast Arena",
			Summary:      Ptr("Fast shooter"),
			CriticsScore: 0,
			Genres:       []models.Genre{{Name: "Action"}},
			Developers:   []models.Developer{{Name: "Indie Co"}},
		},
	}
}

// Seed inserts games and returns them with assigned IDs.
func Seed(t *testing.T, db *gorm.DB, games []models.Game) []models.Game {
	t.Helper()
	for i := range games {
		if err := db.Create(&games[i]).Error; err != nil {
			t.Fatalf("seed %q: %v", games[i].Title, err)
		}
	}
	return games
}
