package models

import "time"

// Artwork is an image attached to a game.
type Artwork struct {
	ID     uint    `gorm:"primaryKey" json:"id"`
	GameID uint    `gorm:"not null;index" json:"-"`
	URL    string  `gorm:"size:1024;not null" json:"url"`
	Type   *string `gorm:"size:64" json:"type"`
}

func (Artwork) TableName() string { return "artworks" }

// Bonus is extra content such as soundtracks or manuals.
type Bonus struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	GameID      uint    `gorm:"not null;index" json:"-"`
	Name        string  `gorm:"size:255;not null" json:"name"`
	Type        *string `gorm:"size:64" json:"type"`
	URL         *string `gorm:"size:1024" json:"url"`
	Description *string `gorm:"type:text" json:"description"`
}

func (Bonus) TableName() string { return "bonuses" }

type DLC struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	GameID      uint       `gorm:"not null;index" json:"-"`
	ExternalID  string     `gorm:"size:128;not null" json:"externalId"`
	Title       string     `gorm:"size:512;not null" json:"title"`
	ReleaseDate *time.Time `json:"releaseDate"`
	Price       *float64   `json:"price"`
}

func (DLC) TableName() string { return "dlcs" }

type Feature struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	GameID uint   `gorm:"not null;index" json:"-"`
	Name   string `gorm:"size:255;not null" json:"name"`
}

func (Feature) TableName() string { return "features" }

type Genre struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	GameID uint   `gorm:"not null;index" json:"-"`
	Name   string `gorm:"size:255;not null;index" json:"name"`
}

func (Genre) TableName() string { return "genres" }

type Developer struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	GameID uint   `gorm:"not null;index" json:"-"`
	Name   string `gorm:"size:255;not null;index" json:"name"`
}

func (Developer) TableName() string { return "developers" }

type Publisher struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	GameID uint   `gorm:"not null;index" json:"-"`
	Name   string `gorm:"size:255;not null;index" json:"name"`
}

func (Publisher) TableName() string { return "publishers" }

// Tag represents a game tag (e.g., "RPG", "Roguelike", "Co-op").
type Tag struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	GameID uint   `gorm:"not null;index" json:"-"`
	Name   string `gorm:"size:100;not null;index" json:"name"`
}

func (Tag) TableName() string { return "tags" }

type Theme struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	GameID uint   `gorm:"not null;index" json:"-"`
	Name   string `gorm:"size:255;not null" json:"name"`
}

func (Theme) TableName() string { return "themes" }

type Screenshot struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	GameID uint   `gorm:"not null;index" json:"-"`
	URL    string `gorm:"size:1024;not null" json:"url"`
}

func (Screenshot) TableName() string { return "screenshots" }

type Video struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	GameID      uint    `gorm:"not null;index" json:"-"`
	URL         string  `gorm:"size:1024;not null" json:"url"`
	Title       *string `gorm:"size:512" json:"title"`
	Description *string `gorm:"type:text" json:"description"`
	Thumbnail   *string `gorm:"size:1024" json:"thumbnail"`
}

func (Video) TableName() string { return "videos" }

type Installer struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	GameID   uint    `gorm:"not null;index" json:"-"`
	Name     string  `gorm:"size:255;not null" json:"name"`
	Version  *string `gorm:"size:64" json:"version"`
	Platform *string `gorm:"size:64" json:"platform"`
	Language *string `gorm:"size:32" json:"language"`
	Size     *int64  `json:"size"`
	URL      *string `gorm:"size:1024" json:"url"`
}

func (Installer) TableName() string { return "installers" }

type Patch struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	GameID      uint       `gorm:"not null;index" json:"-"`
	Version     string     `gorm:"size:64;not null" json:"version"`
	ReleaseDate *time.Time `json:"releaseDate"`
	Size        *int64     `json:"size"`
	Description *string    `gorm:"type:text" json:"description"`
	URL         *string    `gorm:"size:1024" json:"url"`
}

func (Patch) TableName() string { return "patches" }

type LanguagePack struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	GameID   uint    `gorm:"not null;index" json:"-"`
	Language string  `gorm:"size:32;not null" json:"language"`
	Name     *string `gorm:"size:255" json:"name"`
}

func (LanguagePack) TableName() string { return "language_packs" }

type Localization struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	GameID   uint    `gorm:"not null;index" json:"-"`
	Language string  `gorm:"size:32;not null" json:"language"`
	Region   *string `gorm:"size:32" json:"region"`
}

func (Localization) TableName() string { return "localizations" }

type Release struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	GameID      uint       `gorm:"not null;index" json:"-"`
	ReleaseKey  string     `gorm:"size:128;not null" json:"releaseKey"`
	Platform    *string    `gorm:"size:64" json:"platform"`
	Version     *string    `gorm:"size:64" json:"version"`
	ReleaseDate *time.Time `json:"releaseDate"`
}

func (Release) TableName() string { return "releases" }

type Item struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	GameID      uint    `gorm:"not null;index" json:"-"`
	Name        string  `gorm:"size:255;not null" json:"name"`
	Type        *string `gorm:"size:64" json:"type"`
	Description *string `gorm:"type:text" json:"description"`
}

func (Item) TableName() string { return "items" }

// SupportedPlatform names an operating system the game runs on.
type SupportedPlatform struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	GameID   uint   `gorm:"not null;index" json:"-"`
	Platform string `gorm:"size:64;not null" json:"platform"`
}

func (SupportedPlatform) TableName() string { return "supported_platforms" }

type ReleaseStat struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	GameID     uint   `gorm:"not null;index" json:"-"`
	ReleaseKey string `gorm:"size:128;not null" json:"releaseKey"`
	Downloads  int64  `gorm:"not null;default:0" json:"downloads"`
	Installs   int64  `gorm:"not null;default:0" json:"installs"`
}

func (ReleaseStat) TableName() string { return "release_stats" }

type OwnedReleaseKey struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	GameID     uint   `gorm:"not null;index" json:"-"`
	ReleaseKey string `gorm:"size:128;not null" json:"releaseKey"`
}

func (OwnedReleaseKey) TableName() string { return "owned_release_keys" }
