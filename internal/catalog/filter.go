package catalog

import (
	"strings"

	"gamevault/backend/internal/models"
)

// Filters is the set of optional narrowing criteria accepted by search.
// Nil and blank fields impose no constraint.
type Filters struct {
	Search    *string
	Platform  *string
	Genre     *string
	Tag       *string
	Developer *string
	Publisher *string
	MinScore  *float64
	MaxScore  *float64
	HasRating *bool
}

// Op is the comparison a Clause applies.
type Op int

const (
	OpContains Op = iota
	OpGTE
	OpLTE
	OpNotNull
)

// Relations that can be matched by name.
const (
	RelationGenres     = "genres"
	RelationTags       = "tags"
	RelationDevelopers = "developers"
	RelationPublishers = "publishers"
)

// Game columns referenced by clauses.
const (
	ColumnTitle        = "title"
	ColumnSummary      = "summary"
	ColumnPlatform     = "platform"
	ColumnCriticsScore = "critics_score"
	ColumnMyRating     = "my_rating"
	ColumnName         = "name"
)

// Clause is one constraint of a Predicate.
//
// With Relation empty, Columns are game columns and a contains clause matches
// when any of them contains Text. With Relation set, the clause matches when
// any associated record's name contains Text.
type Clause struct {
	Op       Op
	Columns  []string
	Relation string
	Text     string
	Number   float64
}

// Predicate is a conjunction of clauses. An empty predicate matches every game.
type Predicate struct {
	Clauses []Clause
}

func (p Predicate) IsEmpty() bool {
	return len(p.Clauses) == 0
}

func present(s *string) (string, bool) {
	if s == nil {
		return "", false
	}
	v := strings.TrimSpace(*s)
	return v, v != ""
}

// BuildPredicate translates filters into a store-independent predicate.
func BuildPredicate(f Filters) Predicate {
	var clauses []Clause

	if v, ok := present(f.Search); ok {
		clauses = append(clauses, Clause{Op: OpContains, Columns: []string{ColumnTitle, ColumnSummary}, Text: v})
	}
	if v, ok := present(f.Platform); ok {
		clauses = append(clauses, Clause{Op: OpContains, Columns: []string{ColumnPlatform}, Text: v})
	}

	relations := []struct {
		value    *string
		relation string
	}{
		{f.Genre, RelationGenres},
		{f.Tag, RelationTags},
		{f.Developer, RelationDevelopers},
		{f.Publisher, RelationPublishers},
	}
	for _, r := range relations {
		if v, ok := present(r.value); ok {
			clauses = append(clauses, Clause{Op: OpContains, Relation: r.relation, Columns: []string{ColumnName}, Text: v})
		}
	}

	if f.MinScore != nil {
		clauses = append(clauses, Clause{Op: OpGTE, Columns: []string{ColumnCriticsScore}, Number: *f.MinScore})
	}
	if f.MaxScore != nil {
		clauses = append(clauses, Clause{Op: OpLTE, Columns: []string{ColumnCriticsScore}, Number: *f.MaxScore})
	}
	if f.HasRating != nil && *f.HasRating {
		clauses = append(clauses, Clause{Op: OpNotNull, Columns: []string{ColumnMyRating}})
	}

	return Predicate{Clauses: clauses}
}

// Matches evaluates the predicate against a loaded game.
func (p Predicate) Matches(g *models.Game) bool {
	for _, c := range p.Clauses {
		if !c.matches(g) {
			return false
		}
	}
	return true
}

func (c Clause) matches(g *models.Game) bool {
	switch c.Op {
	case OpContains:
		if c.Relation != "" {
			for _, name := range relationNames(g, c.Relation) {
				if ContainsFold(name, c.Text) {
					return true
				}
			}
			return false
		}
		for _, col := range c.Columns {
			if v, ok := columnText(g, col); ok && ContainsFold(v, c.Text) {
				return true
			}
		}
		return false
	case OpGTE:
		return g.CriticsScore >= c.Number
	case OpLTE:
		return g.CriticsScore <= c.Number
	case OpNotNull:
		return g.MyRating != nil
	}
	return false
}

func columnText(g *models.Game, column string) (string, bool) {
	switch column {
	case ColumnTitle:
		return g.Title, true
	case ColumnSummary:
		if g.Summary == nil {
			return "", false
		}
		return *g.Summary, true
	case ColumnPlatform:
		if g.Platform == nil {
			return "", false
		}
		return *g.Platform, true
	}
	return "", false
}

// relationNames returns the names of a game's associated records for relation.
func relationNames(g *models.Game, relation string) []string {
	var names []string
	switch relation {
	case RelationGenres:
		for _, x := range g.Genres {
			names = append(names, x.Name)
		}
	case RelationTags:
		for _, x := range g.Tags {
			names = append(names, x.Name)
		}
	case RelationDevelopers:
		for _, x := range g.Developers {
			names = append(names, x.Name)
		}
	case RelationPublishers:
		for _, x := range g.Publishers {
			names = append(names, x.Name)
		}
	}
	return names
}

// Apply returns the games matching p, preserving order.
func Apply(p Predicate, games []models.Game) []models.Game {
	if p.IsEmpty() {
		return games
	}
	out := make([]models.Game, 0, len(games))
	for i := range games {
		if p.Matches(&games[i]) {
			out = append(out, games[i])
		}
	}
	return out
}
