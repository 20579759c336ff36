// Package engineconfig persists engine-only preferences (debug overlays,
// grid, volume) across runs. In-game save data is separate and handled by
// the savegame package.
package engineconfig

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
)

// EngineConfigPath is the engine config file, relative to the process
// working directory.
const EngineConfigPath = "config/strata.json"

// EnginePrefs holds engine preferences. Environment variables with the
// STRATA_ prefix override the file so headless runs and CI can flip settings
// without editing config.
type EnginePrefs struct {
	ShowFPS      bool    `json:"show_fps"`
	ShowMemAlloc bool    `json:"show_memalloc"`
	GridVisible  bool    `json:"grid_visible"`
	AudioEnabled bool    `json:"audio_enabled"`
	MasterVolume float64 `json:"master_volume"`
	SaveDir      string  `json:"save_dir,omitempty"`
}

// Default returns default preferences: overlays off, grid on, audio on at
// moderate volume.
func Default() EnginePrefs {
	return EnginePrefs{
		ShowFPS:      false,
		ShowMemAlloc: false,
		GridVisible:  true,
		AudioEnabled: true,
		MasterVolume: 0.7,
	}
}

// Load reads preferences from config/strata.json, then applies STRATA_*
// environment overrides. A missing or invalid file yields Default() (plus
// overrides) and does not create a file.
func Load() (EnginePrefs, error) {
	p := Default()
	if data, err := os.ReadFile(EngineConfigPath); err == nil {
		var file EnginePrefs
		if err := json.Unmarshal(data, &file); err == nil {
			p = file
		}
	}
	applyEnvOverrides(&p)
	return p, nil
}

// applyEnvOverrides flips settings from STRATA_* environment variables.
// Unset or unparsable values leave the setting unchanged.
func applyEnvOverrides(p *EnginePrefs) {
	if v, ok := envBool("STRATA_SHOW_FPS"); ok {
		p.ShowFPS = v
	}
	if v, ok := envBool("STRATA_SHOW_MEMALLOC"); ok {
		p.ShowMemAlloc = v
	}
	if v, ok := envBool("STRATA_GRID"); ok {
		p.GridVisible = v
	}
	if v, ok := envBool("STRATA_AUDIO"); ok {
		p.AudioEnabled = v
	}
	if raw := os.Getenv("STRATA_MASTER_VOLUME"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			if v < 0 {
				v = 0
			}
			if v > 1 {
				v = 1
			}
			p.MasterVolume = v
		}
	}
	if dir := os.Getenv("STRATA_SAVE_DIR"); dir != "" {
		p.SaveDir = dir
	}
}

func envBool(key string) (bool, bool) {
	raw := os.Getenv(key)
	if raw == "" {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return v, true
}

// Save writes preferences to config/strata.json, creating the config
// directory if needed.
func Save(p EnginePrefs) error {
	dir := filepath.Dir(EngineConfigPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(p, "", "\t")
	if err != nil {
		return err
	}
	return os.WriteFile(EngineConfigPath, data, 0644)
}
