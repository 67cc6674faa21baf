package repository

import "gorm.io/gorm"

// FullProjection lists every association loaded with a game. All read paths
// go through withFullProjection so responses always have the same shape.
var FullProjection = []string{
	"Artworks",
	"Bonuses",
	"DLCs",
	"Features",
	"Genres",
	"Developers",
	"Publishers",
	"Tags",
	"Themes",
	"Screenshots",
	"Videos",
	"Installers",
	"Patches",
	"LanguagePacks",
	"Localizations",
	"Releases",
	"Items",
	"Supported",
	"ReleasesStats",
	"OwnedReleaseKeys",
	"GameStats",
	"Score",
}

func withFullProjection(db *gorm.DB) *gorm.DB {
	for _, name := range FullProjection {
		db = db.Preload(name, func(tx *gorm.DB) *gorm.DB {
			return tx.Order("id ASC")
		})
	}
	return db
}
