package catalog

import (
	"sort"

	"gamevault/backend/internal/models"
)

const topLimit = 10

// NameCount is one bucket of a ranked distribution.
type NameCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// StatsReport summarizes a game collection.
type StatsReport struct {
	TotalGames           int            `json:"totalGames"`
	TotalPlaytime        int64          `json:"totalPlaytime"`
	AverageScore         float64        `json:"averageScore"`
	PlatformDistribution map[string]int `json:"platformDistribution"`
	GenreDistribution    map[string]int `json:"genreDistribution"`
	TopDevelopers        []NameCount    `json:"topDevelopers"`
	TopPublishers        []NameCount    `json:"topPublishers"`
}

// Aggregate reduces games into a StatsReport. Output is deterministic for a
// given input order.
func Aggregate(games []models.Game) StatsReport {
	report := StatsReport{
		TotalGames:           len(games),
		PlatformDistribution: map[string]int{},
		GenreDistribution:    map[string]int{},
	}

	var scoreSum float64
	var eligible int
	developers := newCounter()
	publishers := newCounter()

	for i := range games {
		g := &games[i]

		if g.GameStats != nil {
			report.TotalPlaytime += g.GameStats.Playtime
		}

		if score, ok := averagedScore(g); ok {
			scoreSum += score
			eligible++
		}

		if g.Platform != nil && *g.Platform != "" {
			report.PlatformDistribution[*g.Platform]++
		}
		for _, genre := range g.Genres {
			report.GenreDistribution[genre.Name]++
		}
		for _, d := range g.Developers {
			developers.add(d.Name)
		}
		for _, p := range g.Publishers {
			publishers.add(p.Name)
		}
	}

	if eligible > 0 {
		report.AverageScore = scoreSum / float64(eligible)
	}
	report.TopDevelopers = developers.top(topLimit)
	report.TopPublishers = publishers.top(topLimit)
	return report
}

// averagedScore returns the score a game contributes to the average, and
// whether it is eligible at all.
func averagedScore(g *models.Game) (float64, bool) {
	scoreCritics := 0.0
	if g.Score != nil {
		scoreCritics = g.Score.Critics
	}
	if g.CriticsScore <= 0 && g.MyRating == nil && scoreCritics <= 0 {
		return 0, false
	}
	switch {
	case g.MyRating != nil:
		return *g.MyRating, true
	case scoreCritics > 0:
		return scoreCritics, true
	default:
		return g.CriticsScore, true
	}
}

// counter counts names while remembering first-seen order.
type counter struct {
	order  []string
	counts map[string]int
}

func newCounter() *counter {
	return &counter{counts: map[string]int{}}
}

func (c *counter) add(name string) {
	if _, ok := c.counts[name]; !ok {
		c.order = append(c.order, name)
	}
	c.counts[name]++
}

func (c *counter) top(n int) []NameCount {
	out := make([]NameCount, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, NameCount{Name: name, Count: c.counts[name]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	if len(out) > n {
		out = out[:n]
	}
	return out
}
