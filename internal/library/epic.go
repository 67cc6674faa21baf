package library

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/goccy/go-json"

	"gamevault/backend/internal/models"
)

// EpicManifest is the subset of an Epic launcher .item file we import.
type EpicManifest struct {
	FormatVersion   int    `json:"FormatVersion"`
	AppName         string `json:"AppName"`
	DisplayName     string `json:"DisplayName"`
	InstallLocation string `json:"InstallLocation"`
	MainGameAppName string `json:"MainGameAppName"`
}

func (m EpicManifest) Game() models.Game {
	platform := PlatformEpic
	state := "installed"
	return models.Game{
		GameID:   m.AppName,
		Platform: &platform,
		Title:    m.DisplayName,
		State:    &state,
	}
}

// ScanEpicManifests reads every .item manifest in dir. Add-ons, whose
// MainGameAppName names another app, and unreadable files are skipped.
func ScanEpicManifests(dir string) ([]EpicManifest, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read epic manifests: %w", err)
	}

	var manifests []EpicManifest
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".item" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			continue
		}
		var m EpicManifest
		if err := json.Unmarshal(data, &m); err != nil {
			continue
		}
		if m.AppName == "" || m.DisplayName == "" {
			continue
		}
		if m.MainGameAppName != "" && m.MainGameAppName != m.AppName {
			continue
		}
		manifests = append(manifests, m)
	}
	sort.Slice(manifests, func(i, j int) bool { return manifests[i].AppName < manifests[j].AppName })
	return manifests, nil
}
