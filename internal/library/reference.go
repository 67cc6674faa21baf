package library

import (
	"gamevault/backend/internal/catalog"
	"gamevault/backend/internal/models"
)

// Reference records stand in for the storefront APIs until real clients exist.

func steamReference() models.Game {
	platform := PlatformSteam
	return models.Game{
		GameID:    "12345",
		Platform:  &platform,
		Title:     "Test Game Steam",
		Supported: supportedFrom(true, false, false),
	}
}

func gogReference() models.Game {
	platform := PlatformGOG
	summary := "Un jeu de test GOG"
	return models.Game{
		GameID:    "67890",
		Platform:  &platform,
		Title:     "Test Game GOG",
		Summary:   &summary,
		Genres:    []models.Genre{{Name: "RPG"}},
		Tags:      tagsFrom("RPG,Fantasy,Test"),
		Supported: supportedFrom(true, true, false),
	}
}

// tagsFrom builds tag rows from the comma-separated list storefronts report.
func tagsFrom(list string) []models.Tag {
	names := catalog.SplitTags(list)
	tags := make([]models.Tag, 0, len(names))
	for _, name := range names {
		tags = append(tags, models.Tag{Name: name})
	}
	return tags
}

func supportedFrom(windows, mac, linux bool) []models.SupportedPlatform {
	var out []models.SupportedPlatform
	if windows {
		out = append(out, models.SupportedPlatform{Platform: "WINDOWS"})
	}
	if mac {
		out = append(out, models.SupportedPlatform{Platform: "MAC"})
	}
	if linux {
		out = append(out, models.SupportedPlatform{Platform: "LINUX"})
	}
	return out
}
