package catalog

import (
	"reflect"
	"testing"

	"gamevault/backend/internal/models"
)

func TestAggregateEmpty(t *testing.T) {
	report := Aggregate(nil)
	if report.TotalGames != 0 || report.AverageScore != 0 {
		t.Fatalf("unexpected report: %+v", report)
	}
	if len(report.TopDevelopers) != 0 || report.PlatformDistribution == nil {
		t.Fatalf("expected empty, non-nil collections: %+v", report)
	}
}

func TestAggregateTotalPlaytimeTreatsMissingStatsAsZero(t *testing.T) {
	games := []models.Game{
		{Title: "A", GameStats: &models.GameStats{Playtime: 120}},
		{Title: "B"},
	}
	if got := Aggregate(games).TotalPlaytime; got != 120 {
		t.Fatalf("expected 120, got %d", got)
	}
}

func TestAggregateAverageScoreNoEligible(t *testing.T) {
	games := []models.Game{{Title: "A"}, {Title: "B", Score: &models.Score{Metacritic: 90}}}
	if got := Aggregate(games).AverageScore; got != 0 {
		t.Fatalf("expected 0, got %v", got)
	}
}

func TestAggregateAverageScorePrecedence(t *testing.T) {
	games := []models.Game{
		// personal rating wins over every other source
		{Title: "A", MyRating: floatPtr(8), CriticsScore: 6, Score: &models.Score{Metacritic: 90, Critics: 7}},
		// score-block critics before raw critics score
		{Title: "B", CriticsScore: 50, Score: &models.Score{Critics: 6}},
		{Title: "C", CriticsScore: 70},
		{Title: "D"},
	}
	want := (8.0 + 6.0 + 70.0) / 3
	if got := Aggregate(games).AverageScore; got != want {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestAggregateDistributions(t *testing.T) {
	games := []models.Game{
		{Title: "A", Platform: strPtr("STEAM"), Genres: []models.Genre{{Name: "RPG"}, {Name: "Action"}, {Name: "Indie"}}},
		{Title: "B", Platform: strPtr("STEAM"), Genres: []models.Genre{{Name: "RPG"}}},
		{Title: "C", Platform: strPtr("GOG")},
		{Title: "D"},
	}
	report := Aggregate(games)
	if !reflect.DeepEqual(report.PlatformDistribution, map[string]int{"STEAM": 2, "GOG": 1}) {
		t.Fatalf("platforms: %v", report.PlatformDistribution)
	}
	if !reflect.DeepEqual(report.GenreDistribution, map[string]int{"RPG": 2, "Action": 1, "Indie": 1}) {
		t.Fatalf("genres: %v", report.GenreDistribution)
	}
}

func TestAggregateTopDevelopers(t *testing.T) {
	dev := func(name string) models.Game {
		return models.Game{Title: name, Developers: []models.Developer{{Name: name}}}
	}
	games := []models.Game{dev("Indie Co"), dev("Big Co"), dev("Indie Co"), dev("Indie Co"), dev("Indie Co")}

	want := []NameCount{{Name: "Indie Co", Count: 4}, {Name: "Big Co", Count: 1}}
	if got := Aggregate(games).TopDevelopers; !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestAggregateTopPublishersTruncatesAndKeepsTieOrder(t *testing.T) {
	var games []models.Game
	for _, name := range []string{"p1", "p2", "p3", "p4", "p5", "p6", "p7", "p8", "p9", "p10", "p11", "p12"} {
		games = append(games, models.Game{Title: name, Publishers: []models.Publisher{{Name: name}}})
	}
	games = append(games, models.Game{Title: "extra", Publishers: []models.Publisher{{Name: "p12"}}})

	top := Aggregate(games).TopPublishers
	if len(top) != 10 {
		t.Fatalf("expected 10 entries, got %d", len(top))
	}
	if top[0].Name != "p12" || top[0].Count != 2 {
		t.Fatalf("expected p12 first, got %+v", top[0])
	}
	if top[1].Name != "p1" || top[9].Name != "p9" {
		t.Fatalf("ties not in first-seen order: %+v", top)
	}
}
