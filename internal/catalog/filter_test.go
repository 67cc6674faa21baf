package catalog

import (
	"testing"

	"gamevault/backend/internal/models"
)

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }
func boolPtr(b bool) *bool        { return &b }

func sampleGames() []models.Game {
	return []models.Game{
		{
			ID: 1, GameID: "1", Title: "Dragon Quest", Platform: strPtr("STEAM"), CriticsScore: 80,
			Summary:  strPtr("A classic adventure"),
			Genres:   []models.Genre{{Name: "RPG"}, {Name: "Strategy"}},
			Tags:     []models.Tag{{Name: "Fantasy"}},
			MyRating: floatPtr(9),
		},
		{
			ID: 2, GameID: "2", Title: "Shooter X", Platform: strPtr("GOG"), CriticsScore: 60,
			Genres:     []models.Genre{{Name: "Action"}},
			Developers: []models.Developer{{Name: "Big Co"}},
		},
		{
			ID: 3, GameID: "3", Title: "Quiet Farm", CriticsScore: 0,
			Publishers: []models.Publisher{{Name: "Indie Publishing"}},
		},
	}
}

func ids(games []models.Game) []uint {
	out := make([]uint, 0, len(games))
	for _, g := range games {
		out = append(out, g.ID)
	}
	return out
}

func TestBuildPredicateEmptyMatchesAll(t *testing.T) {
	blank := "   "
	p := BuildPredicate(Filters{Search: &blank, Genre: strPtr("")})
	if !p.IsEmpty() {
		t.Fatalf("expected empty predicate, got %d clauses", len(p.Clauses))
	}
	games := sampleGames()
	if got := Apply(p, games); len(got) != len(games) {
		t.Fatalf("expected all %d games, got %d", len(games), len(got))
	}
}

func TestGenreFilterIsCaseInsensitive(t *testing.T) {
	games := []models.Game{
		{ID: 1, Title: "A", Genres: []models.Genre{{Name: "RPG"}, {Name: "Strategy"}}},
		{ID: 2, Title: "B", Genres: []models.Genre{{Name: "Action"}}},
	}
	got := Apply(BuildPredicate(Filters{Genre: strPtr("rpg")}), games)
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("expected only game 1, got %v", ids(got))
	}
}

func TestSearchMatchesTitleOrSummary(t *testing.T) {
	games := sampleGames()

	got := Apply(BuildPredicate(Filters{Search: strPtr("ADVENTURE")}), games)
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("summary match: got %v", ids(got))
	}

	got = Apply(BuildPredicate(Filters{Search: strPtr("farm")}), games)
	if len(got) != 1 || got[0].ID != 3 {
		t.Fatalf("title match: got %v", ids(got))
	}
}

func TestPlatformFilterSkipsMissingPlatform(t *testing.T) {
	got := Apply(BuildPredicate(Filters{Platform: strPtr("st")}), sampleGames())
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("expected game 1, got %v", ids(got))
	}
}

func TestHasRatingExcludesUnrated(t *testing.T) {
	games := sampleGames()
	got := Apply(BuildPredicate(Filters{HasRating: boolPtr(true), Search: strPtr("")}), games)
	for _, g := range got {
		if g.MyRating == nil {
			t.Fatalf("game %d has no rating", g.ID)
		}
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 rated game, got %d", len(got))
	}

	if p := BuildPredicate(Filters{HasRating: boolPtr(false)}); !p.IsEmpty() {
		t.Fatalf("hasRating=false must not constrain")
	}
}

func TestScoreRange(t *testing.T) {
	games := sampleGames()
	got := Apply(BuildPredicate(Filters{MinScore: floatPtr(60), MaxScore: floatPtr(80)}), games)
	if len(got) != 2 {
		t.Fatalf("expected 2 games in range, got %v", ids(got))
	}
	for _, g := range got {
		if g.CriticsScore < 60 || g.CriticsScore > 80 {
			t.Fatalf("score %v outside range", g.CriticsScore)
		}
	}

	got = Apply(BuildPredicate(Filters{MinScore: floatPtr(80), MaxScore: floatPtr(60)}), games)
	if len(got) != 0 {
		t.Fatalf("inverted bounds should match nothing, got %v", ids(got))
	}
}

func TestFiltersCombineWithAnd(t *testing.T) {
	f := Filters{Genre: strPtr("rpg"), Developer: strPtr("big")}
	if got := Apply(BuildPredicate(f), sampleGames()); len(got) != 0 {
		t.Fatalf("expected no match, got %v", ids(got))
	}

	f = Filters{Publisher: strPtr("indie"), MaxScore: floatPtr(10)}
	got := Apply(BuildPredicate(f), sampleGames())
	if len(got) != 1 || got[0].ID != 3 {
		t.Fatalf("expected game 3, got %v", ids(got))
	}
}

func TestContainsFoldNormalizes(t *testing.T) {
	// "é" precomposed against "e" + combining acute.
	if !ContainsFold("Pokémon", "POKÉMON") {
		t.Fatalf("expected normalized match")
	}
}
