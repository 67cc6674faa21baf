package library

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/andygrunwald/vdf"

	"gamevault/backend/internal/models"
)

// SteamApp is one installed app read from an appmanifest file.
type SteamApp struct {
	AppID      string
	Name       string
	InstallDir string
}

func (a SteamApp) Game() models.Game {
	platform := PlatformSteam
	cover := fmt.Sprintf("https://cdn.cloudflare.steamstatic.com/steam/apps/%s/header.jpg", a.AppID)
	state := "installed"
	return models.Game{
		GameID:          a.AppID,
		Platform:        &platform,
		Title:           a.Name,
		State:           &state,
		HorizontalCover: &cover,
	}
}

// ScanSteamLibrary reads steamapps/appmanifest_*.acf under root. Manifests
// without an appid are skipped.
func ScanSteamLibrary(root string) ([]SteamApp, error) {
	dir := filepath.Join(root, "steamapps")
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read steam library: %w", err)
	}

	var apps []SteamApp
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, "appmanifest_") || !strings.HasSuffix(name, ".acf") {
			continue
		}
		app, ok, err := parseAppManifest(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		if ok {
			apps = append(apps, app)
		}
	}
	sort.Slice(apps, func(i, j int) bool { return apps[i].AppID < apps[j].AppID })
	return apps, nil
}

func parseAppManifest(path string) (SteamApp, bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return SteamApp{}, false, fmt.Errorf("open manifest: %w", err)
	}
	defer f.Close()

	data, err := vdf.NewParser(f).Parse()
	if err != nil {
		return SteamApp{}, false, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	appState, ok := data["AppState"].(map[string]interface{})
	if !ok {
		return SteamApp{}, false, nil
	}
	appID, _ := appState["appid"].(string)
	name, _ := appState["name"].(string)
	installDir, _ := appState["installdir"].(string)
	if appID == "" {
		return SteamApp{}, false, nil
	}
	if name == "" {
		name = "App " + appID
	}
	return SteamApp{AppID: appID, Name: name, InstallDir: installDir}, true, nil
}
