package models

import "time"

// Game is one owned title, keyed internally by ID and externally by (GameID, Platform).
type Game struct {
	ID       uint    `gorm:"primaryKey"`
	GameID   string  `gorm:"size:128;not null;uniqueIndex:idx_games_external" validate:"required"`
	Platform *string `gorm:"size:64;uniqueIndex:idx_games_external;index" validate:"omitempty,min=1"`

	Title        string  `gorm:"size:512;not null;index" validate:"required"`
	Summary      *string `gorm:"type:text"`
	ReleaseDate  *time.Time
	CriticsScore float64  `gorm:"not null;default:0;index" validate:"gte=0"`
	MyRating     *float64 `validate:"omitempty,gte=0,lte=10"`
	All          int      `gorm:"not null;default:0" validate:"gte=0"`
	Unlocked     int      `gorm:"not null;default:0" validate:"gte=0"`

	IsFromProductsAPI int `gorm:"column:is_from_products_api;not null;default:0" validate:"oneof=0 1"`
	IsModifiedByUser  int `gorm:"not null;default:0" validate:"oneof=0 1"`

	State     *string `gorm:"size:64"`
	ParentGrk *string `gorm:"size:128"`

	Background      *string `gorm:"size:1024"`
	HorizontalCover *string `gorm:"size:1024"`
	VerticalCover   *string `gorm:"size:1024"`
	Logo            *string `gorm:"size:1024"`
	SquareIcon      *string `gorm:"size:1024"`
	ProductCard     *string `gorm:"size:1024"`

	Changelog *string `gorm:"type:text"`
	Forum     *string `gorm:"size:1024"`
	Support   *string `gorm:"size:1024"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Artworks         []Artwork           `gorm:"constraint:OnDelete:CASCADE"`
	Bonuses          []Bonus             `gorm:"constraint:OnDelete:CASCADE"`
	DLCs             []DLC               `gorm:"constraint:OnDelete:CASCADE"`
	Features         []Feature           `gorm:"constraint:OnDelete:CASCADE"`
	Genres           []Genre             `gorm:"constraint:OnDelete:CASCADE"`
	Developers       []Developer         `gorm:"constraint:OnDelete:CASCADE"`
	Publishers       []Publisher         `gorm:"constraint:OnDelete:CASCADE"`
	Tags             []Tag               `gorm:"constraint:OnDelete:CASCADE"`
	Themes           []Theme             `gorm:"constraint:OnDelete:CASCADE"`
	Screenshots      []Screenshot        `gorm:"constraint:OnDelete:CASCADE"`
	Videos           []Video             `gorm:"constraint:OnDelete:CASCADE"`
	Installers       []Installer         `gorm:"constraint:OnDelete:CASCADE"`
	Patches          []Patch             `gorm:"constraint:OnDelete:CASCADE"`
	LanguagePacks    []LanguagePack      `gorm:"constraint:OnDelete:CASCADE"`
	Localizations    []Localization      `gorm:"constraint:OnDelete:CASCADE"`
	Releases         []Release           `gorm:"constraint:OnDelete:CASCADE"`
	Items            []Item              `gorm:"constraint:OnDelete:CASCADE"`
	Supported        []SupportedPlatform `gorm:"constraint:OnDelete:CASCADE"`
	ReleasesStats    []ReleaseStat       `gorm:"constraint:OnDelete:CASCADE"`
	OwnedReleaseKeys []OwnedReleaseKey   `gorm:"constraint:OnDelete:CASCADE"`

	GameStats *GameStats `gorm:"constraint:OnDelete:CASCADE"`
	Score     *Score     `gorm:"constraint:OnDelete:CASCADE"`
}

// TableName pins the table used by raw filter subqueries.
func (Game) TableName() string {
	return "games"
}

// GameStats holds play activity for a game. Playtime is in minutes.
type GameStats struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	GameID        uint       `gorm:"not null;uniqueIndex" json:"-"`
	Playtime      int64      `gorm:"not null;default:0" json:"playtime" validate:"gte=0"`
	Achievements  int        `gorm:"not null;default:0" json:"achievements" validate:"gte=0"`
	LastPlayed    *time.Time `json:"lastPlayed"`
	TimesLaunched int        `gorm:"not null;default:0" json:"timesLaunched" validate:"gte=0"`
}

func (GameStats) TableName() string { return "game_stats" }

// Score holds third-party ratings. A zero value means the source has no score.
type Score struct {
	ID         uint    `gorm:"primaryKey" json:"id"`
	GameID     uint    `gorm:"not null;uniqueIndex" json:"-"`
	Critics    float64 `gorm:"not null;default:0" json:"critics" validate:"gte=0"`
	Users      float64 `gorm:"not null;default:0" json:"users" validate:"gte=0"`
	Metacritic float64 `gorm:"not null;default:0" json:"metacritic" validate:"gte=0"`
}

func (Score) TableName() string { return "scores" }

// All returns every model managed by the schema, in migration order.
func All() []any {
	return []any{
		&Game{},
		&Artwork{}, &Bonus{}, &DLC{}, &Feature{}, &Genre{}, &Developer{}, &Publisher{},
		&Tag{}, &Theme{}, &Screenshot{}, &Video{}, &Installer{}, &Patch{},
		&LanguagePack{}, &Localization{}, &Release{}, &Item{}, &SupportedPlatform{},
		&ReleaseStat{}, &OwnedReleaseKey{},
		&GameStats{}, &Score{},
	}
}
