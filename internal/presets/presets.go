// Package presets defines data-driven emitter and terrain configurations.
// Presets are plain YAML documents so effects can be tuned without
// recompiling; a few weather presets (rain, snow, embers) ship built in.
package presets

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"

	"strata/internal/particles"
	"strata/internal/terrain"
)

// EmitterPreset is the serializable form of a particle emitter configuration.
// Vector fields use [3]float32 so presets stay independent of any math or
// render library; Palette entries are hex color strings ("#rrggbb" or
// "#rrggbbaa").
type EmitterPreset struct {
	Name string `yaml:"name"`

	Capacity int     `yaml:"capacity"`
	Rate     float32 `yaml:"rate"`
	Lifetime float32 `yaml:"lifetime"`

	Origin          [3]float32 `yaml:"origin,flow"`
	SpawnRadius     float32    `yaml:"spawn_radius"`
	InitialVelocity [3]float32 `yaml:"initial_velocity,flow"`
	VelocityJitter  [3]float32 `yaml:"velocity_jitter,flow"`

	SpinRate  float32 `yaml:"spin_rate"`
	StartSize float32 `yaml:"start_size"`
	EndSize   float32 `yaml:"end_size"`

	Gravity         [3]float32 `yaml:"gravity,flow"`
	Wind            [3]float32 `yaml:"wind,flow"`
	Turbulence      float32    `yaml:"turbulence"`
	TurbulenceScale float32    `yaml:"turbulence_scale"`

	Palette []string `yaml:"palette"`
}

// TerrainPreset is the serializable form of a terrain configuration.
type TerrainPreset struct {
	Name string `yaml:"name"`

	Size       [3]float32 `yaml:"size,flow"`
	Resolution [3]int     `yaml:"resolution,flow"`

	Octaves    int     `yaml:"octaves"`
	Frequency  float32 `yaml:"frequency"`
	Lacunarity float32 `yaml:"lacunarity"`
	Gain       float32 `yaml:"gain"`

	Caves         bool    `yaml:"caves"`
	CaveThreshold float32 `yaml:"cave_threshold"`
	CaveBlend     float32 `yaml:"cave_blend"`
	CaveWarp      float32 `yaml:"cave_warp"`
}

// File is the top-level document layout of a preset file. Either section may
// be empty.
type File struct {
	Emitters []EmitterPreset `yaml:"emitters"`
	Terrains []TerrainPreset `yaml:"terrains"`
}

// Options converts the preset into emitter options with the given seed.
// Construction validation (positive capacity and lifetime) still happens in
// particles.New; this is a pure mapping.
func (p EmitterPreset) Options(seed int64) particles.Options {
	colors := len(p.Palette)
	if colors < 1 {
		colors = 1
	}
	return particles.Options{
		Capacity:        p.Capacity,
		Rate:            p.Rate,
		Lifetime:        p.Lifetime,
		Origin:          mgl32.Vec3(p.Origin),
		SpawnRadius:     p.SpawnRadius,
		InitialVelocity: mgl32.Vec3(p.InitialVelocity),
		VelocityJitter:  mgl32.Vec3(p.VelocityJitter),
		SpinRate:        p.SpinRate,
		StartSize:       p.StartSize,
		EndSize:         p.EndSize,
		ColorCount:      colors,
		Seed:            seed,
		Forces: particles.Forces{
			Gravity:         mgl32.Vec3(p.Gravity),
			Wind:            mgl32.Vec3(p.Wind),
			Turbulence:      p.Turbulence,
			TurbulenceScale: p.TurbulenceScale,
		},
	}
}

// Colors parses the preset's palette into RGBA bytes. Unparsable entries
// fall back to opaque white so a bad preset degrades visibly instead of
// failing a frame.
func (p EmitterPreset) Colors() [][4]uint8 {
	if len(p.Palette) == 0 {
		return [][4]uint8{{255, 255, 255, 255}}
	}
	out := make([][4]uint8, len(p.Palette))
	for i, s := range p.Palette {
		c, err := parseHexColor(s)
		if err != nil {
			c = [4]uint8{255, 255, 255, 255}
		}
		out[i] = c
	}
	return out
}

// Options converts the preset into terrain options with the given seed.
func (p TerrainPreset) Options(seed int64) terrain.Options {
	return terrain.Options{
		Size:          mgl32.Vec3(p.Size),
		Resolution:    p.Resolution,
		Seed:          seed,
		Octaves:       p.Octaves,
		Frequency:     p.Frequency,
		Lacunarity:    p.Lacunarity,
		Gain:          p.Gain,
		Caves:         p.Caves,
		CaveThreshold: p.CaveThreshold,
		CaveBlend:     p.CaveBlend,
		CaveWarp:      p.CaveWarp,
	}
}

// Load reads a preset file from disk.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("presets: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a preset document. Unknown fields are rejected so typos in
// hand-edited files surface as errors instead of silently defaulting.
func Parse(data []byte) (*File, error) {
	var f File
	dec := yaml.NewDecoder(strings.NewReader(string(data)))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("presets: decode: %w", err)
	}
	for _, e := range f.Emitters {
		if e.Name == "" {
			return nil, fmt.Errorf("presets: emitter preset without a name")
		}
	}
	for _, t := range f.Terrains {
		if t.Name == "" {
			return nil, fmt.Errorf("presets: terrain preset without a name")
		}
	}
	return &f, nil
}

// Emitter returns the named emitter preset from the file, or false if absent.
func (f *File) Emitter(name string) (EmitterPreset, bool) {
	for _, e := range f.Emitters {
		if e.Name == name {
			return e, true
		}
	}
	return EmitterPreset{}, false
}

// Terrain returns the named terrain preset from the file, or false if absent.
func (f *File) Terrain(name string) (TerrainPreset, bool) {
	for _, t := range f.Terrains {
		if t.Name == name {
			return t, true
		}
	}
	return TerrainPreset{}, false
}

// Weather returns a built-in weather emitter preset by name ("rain", "snow",
// or "embers"), or false for an unknown name. These are starting points; a
// preset file with the same name overrides them via Emitter.
func Weather(name string) (EmitterPreset, bool) {
	switch name {
	case "rain":
		return EmitterPreset{
			Name:            "rain",
			Capacity:        2048,
			Rate:            600,
			Lifetime:        1.6,
			Origin:          [3]float32{0, 14, 0},
			SpawnRadius:     16,
			InitialVelocity: [3]float32{0, -10, 0},
			VelocityJitter:  [3]float32{0.4, 1, 0.4},
			StartSize:       0.04,
			EndSize:         0.04,
			Gravity:         [3]float32{0, -6, 0},
			Wind:            [3]float32{1.5, 0, 0.5},
			Palette:         []string{"#9db4d4", "#b9c9e2"},
		}, true
	case "snow":
		return EmitterPreset{
			Name:            "snow",
			Capacity:        1536,
			Rate:            220,
			Lifetime:        7,
			Origin:          [3]float32{0, 12, 0},
			SpawnRadius:     16,
			InitialVelocity: [3]float32{0, -1.2, 0},
			VelocityJitter:  [3]float32{0.3, 0.1, 0.3},
			SpinRate:        1.2,
			StartSize:       0.08,
			EndSize:         0.06,
			Wind:            [3]float32{0.4, 0, 0.2},
			Turbulence:      0.8,
			TurbulenceScale: 0.3,
			Palette:         []string{"#ffffff", "#e8f0ff"},
		}, true
	case "embers":
		return EmitterPreset{
			Name:            "embers",
			Capacity:        512,
			Rate:            90,
			Lifetime:        2.5,
			SpawnRadius:     0.4,
			InitialVelocity: [3]float32{0, 1.8, 0},
			VelocityJitter:  [3]float32{0.3, 0.4, 0.3},
			SpinRate:        3,
			StartSize:       0.12,
			EndSize:         0.02,
			Gravity:         [3]float32{0, 0.6, 0}, // hot air lifts embers
			Turbulence:      2.2,
			TurbulenceScale: 0.8,
			Palette:         []string{"#ff8c2b", "#ffc23d", "#d94f1e"},
		}, true
	}
	return EmitterPreset{}, false
}

// parseHexColor parses "#rrggbb" or "#rrggbbaa" (leading # optional) into
// RGBA bytes. Missing alpha defaults to 255.
func parseHexColor(s string) ([4]uint8, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 && len(s) != 8 {
		return [4]uint8{}, fmt.Errorf("presets: invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(s, 16, 64)
	if err != nil {
		return [4]uint8{}, fmt.Errorf("presets: invalid hex color %q", s)
	}
	if len(s) == 6 {
		v = v<<8 | 0xff
	}
	return [4]uint8{
		uint8(v >> 24),
		uint8(v >> 16),
		uint8(v >> 8),
		uint8(v),
	}, nil
}
