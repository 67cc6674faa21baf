package handler

import (
	"time"

	"gamevault/backend/internal/catalog"
	"gamevault/backend/internal/models"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// region --- DTOs ---

// GameResponse mirrors models.Game with camelCase keys. Absent optional
// fields are null and associations are always arrays.
type GameResponse struct {
	ID                uint       `json:"id"`
	GameID            string     `json:"gameId"`
	Platform          *string    `json:"platform"`
	Title             string     `json:"title"`
	Summary           *string    `json:"summary"`
	ReleaseDate       *time.Time `json:"releaseDate"`
	CriticsScore      float64    `json:"criticsScore"`
	MyRating          *float64   `json:"myRating"`
	All               int        `json:"all"`
	Unlocked          int        `json:"unlocked"`
	IsFromProductsAPI int        `json:"isFromProductsApi"`
	IsModifiedByUser  int        `json:"isModifiedByUser"`
	State             *string    `json:"state"`
	ParentGrk         *string    `json:"parentGrk"`
	Background        *string    `json:"background"`
	HorizontalCover   *string    `json:"horizontalCover"`
	VerticalCover     *string    `json:"verticalCover"`
	Logo              *string    `json:"logo"`
	SquareIcon        *string    `json:"squareIcon"`
	ProductCard       *string    `json:"productCard"`
	Changelog         *string    `json:"changelog"`
	Forum             *string    `json:"forum"`
	Support           *string    `json:"support"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`

	DisplayScore string `json:"displayScore"`
	CoverImage   string `json:"coverImage"`

	Artworks         []models.Artwork           `json:"artworks"`
	Bonuses          []models.Bonus             `json:"bonuses"`
	DLCs             []models.DLC               `json:"dlcs"`
	Features         []models.Feature           `json:"features"`
	Genres           []models.Genre             `json:"genres"`
	Developers       []models.Developer         `json:"developers"`
	Publishers       []models.Publisher         `json:"publishers"`
	Tags             []models.Tag               `json:"tags"`
	Themes           []models.Theme             `json:"themes"`
	Screenshots      []models.Screenshot        `json:"screenshots"`
	Videos           []models.Video             `json:"videos"`
	Installers       []models.Installer         `json:"installers"`
	Patches          []models.Patch             `json:"patches"`
	LanguagePacks    []models.LanguagePack      `json:"languagePacks"`
	Localizations    []models.Localization      `json:"localizations"`
	Releases         []models.Release           `json:"releases"`
	Items            []models.Item              `json:"items"`
	Supported        []models.SupportedPlatform `json:"supported"`
	ReleasesStats    []models.ReleaseStat       `json:"releasesStats"`
	OwnedReleaseKeys []models.OwnedReleaseKey   `json:"ownedReleaseKeys"`

	GameStats *models.GameStats `json:"gameStats"`
	Score     *models.Score     `json:"score"`
}

func list[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

func newGameResponse(game models.Game) GameResponse {
	return GameResponse{
		ID:                game.ID,
		GameID:            game.GameID,
		Platform:          game.Platform,
		Title:             game.Title,
		Summary:           game.Summary,
		ReleaseDate:       game.ReleaseDate,
		CriticsScore:      game.CriticsScore,
		MyRating:          game.MyRating,
		All:               game.All,
		Unlocked:          game.Unlocked,
		IsFromProductsAPI: game.IsFromProductsAPI,
		IsModifiedByUser:  game.IsModifiedByUser,
		State:             game.State,
		ParentGrk:         game.ParentGrk,
		Background:        game.Background,
		HorizontalCover:   game.HorizontalCover,
		VerticalCover:     game.VerticalCover,
		Logo:              game.Logo,
		SquareIcon:        game.SquareIcon,
		ProductCard:       game.ProductCard,
		Changelog:         game.Changelog,
		Forum:             game.Forum,
		Support:           game.Support,
		CreatedAt:         game.CreatedAt,
		UpdatedAt:         game.UpdatedAt,

		DisplayScore: catalog.DisplayScore(&game),
		CoverImage:   catalog.CoverImage(&game),

		Artworks:         list(game.Artworks),
		Bonuses:          list(game.Bonuses),
		DLCs:             list(game.DLCs),
		Features:         list(game.Features),
		Genres:           list(game.Genres),
		Developers:       list(game.Developers),
		Publishers:       list(game.Publishers),
		Tags:             list(game.Tags),
		Themes:           list(game.Themes),
		Screenshots:      list(game.Screenshots),
		Videos:           list(game.Videos),
		Installers:       list(game.Installers),
		Patches:          list(game.Patches),
		LanguagePacks:    list(game.LanguagePacks),
		Localizations:    list(game.Localizations),
		Releases:         list(game.Releases),
		Items:            list(game.Items),
		Supported:        list(game.Supported),
		ReleasesStats:    list(game.ReleasesStats),
		OwnedReleaseKeys: list(game.OwnedReleaseKeys),

		GameStats: game.GameStats,
		Score:     game.Score,
	}
}

func newGameResponses(games []models.Game) []GameResponse {
	response := make([]GameResponse, 0, len(games))
	for _, game := range games {
		response = append(response, newGameResponse(game))
	}
	return response
}

// RatingInput is the body of a rating update. A null rating clears it.
type RatingInput struct {
	Rating *float64 `json:"rating"`
}

// SyncResponse reports the outcome of a library sync.
type SyncResponse struct {
	Success  bool           `json:"success"`
	Message  string         `json:"message"`
	Platform string         `json:"platform"`
	Created  int            `json:"created"`
	Updated  int            `json:"updated"`
	Games    []GameResponse `json:"games"`
}

// endregion
