package catalog

import (
	"math"
	"strconv"
	"strings"
	"time"

	"gamevault/backend/internal/models"
)

const releaseDateLayout = "02/01/2006"

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// DisplayScore renders the score shown for a game. Precedence is personal
// rating, metacritic, score-block critics, then the raw critics score.
func DisplayScore(g *models.Game) string {
	if g.MyRating != nil {
		return formatNumber(*g.MyRating) + "/10 (Personnel)"
	}
	if g.Score != nil && g.Score.Metacritic > 0 {
		return formatNumber(g.Score.Metacritic) + "/100 (Metacritic)"
	}
	if g.Score != nil && g.Score.Critics > 0 {
		return formatNumber(g.Score.Critics) + "/10 (Critiques)"
	}
	if g.CriticsScore > 0 {
		return formatNumber(g.CriticsScore) + "/100 (Score)"
	}
	return ""
}

// CoverImage picks the first available image URL for a card.
func CoverImage(g *models.Game) string {
	for _, url := range []*string{
		g.VerticalCover,
		g.HorizontalCover,
		g.Background,
		g.Logo,
		g.SquareIcon,
		g.ProductCard,
	} {
		if url != nil && strings.TrimSpace(*url) != "" {
			return *url
		}
	}
	return ""
}

func FormatReleaseDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.UTC().Format(releaseDateLayout)
}

// PlaytimeHours converts recorded playtime minutes to whole hours.
func PlaytimeHours(stats *models.GameStats) int64 {
	if stats == nil {
		return 0
	}
	return int64(math.Round(float64(stats.Playtime) / 60))
}

func SupportedPlatforms(g *models.Game) []string {
	out := make([]string, 0, len(g.Supported))
	for _, s := range g.Supported {
		out = append(out, s.Platform)
	}
	return out
}

var platformIcons = map[string]string{
	"STEAM":     "./icons/steam.jfif",
	"GOG":       "./icons/gog.png",
	"EPIC":      "./icons/epic.png",
	"XBOXONE":   "./icons/xbox.png",
	"WINDOWS":   "./icons/Pc.png",
	"BATTLENET": "./icons/battlenet.png",
	"MAC":       "./icons/apple.jfif",
	"LINUX":     "🐧",
}

// PlatformIcon returns the icon for a storefront or OS name.
func PlatformIcon(platform string) string {
	if icon, ok := platformIcons[strings.ToUpper(strings.TrimSpace(platform))]; ok {
		return icon
	}
	return "📱"
}

// SplitTags parses a comma-separated tag list, dropping blanks.
func SplitTags(s string) []string {
	var tags []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// Card is the condensed view of a game used by the library grid.
type Card struct {
	ID                 uint     `json:"id"`
	GameID             string   `json:"gameId"`
	Title              string   `json:"title"`
	Platform           *string  `json:"platform"`
	PlatformIcon       string   `json:"platformIcon"`
	Image              string   `json:"image"`
	Score              string   `json:"score"`
	ReleaseDate        string   `json:"releaseDate"`
	PlaytimeHours      int64    `json:"playtimeHours"`
	Genres             []string `json:"genres"`
	Tags               []string `json:"tags"`
	Developers         []string `json:"developers"`
	Publishers         []string `json:"publishers"`
	SupportedPlatforms []string `json:"supportedPlatforms"`
}

func firstN(names []string, n int) []string {
	if len(names) > n {
		return names[:n]
	}
	if names == nil {
		return []string{}
	}
	return names
}

// NewCard builds the grid card for g.
func NewCard(g *models.Game) Card {
	icon := ""
	if g.Platform != nil {
		icon = PlatformIcon(*g.Platform)
	}
	return Card{
		ID:                 g.ID,
		GameID:             g.GameID,
		Title:              g.Title,
		Platform:           g.Platform,
		PlatformIcon:       icon,
		Image:              CoverImage(g),
		Score:              DisplayScore(g),
		ReleaseDate:        FormatReleaseDate(g.ReleaseDate),
		PlaytimeHours:      PlaytimeHours(g.GameStats),
		Genres:             firstN(relationNames(g, RelationGenres), 3),
		Tags:               firstN(relationNames(g, RelationTags), 3),
		Developers:         firstN(relationNames(g, RelationDevelopers), 2),
		Publishers:         firstN(relationNames(g, RelationPublishers), 2),
		SupportedPlatforms: SupportedPlatforms(g),
	}
}
