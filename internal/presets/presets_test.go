package presets

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"strata/internal/particles"
)

const sampleDoc = `
emitters:
  - name: fountain
    capacity: 128
    rate: 40
    lifetime: 1.5
    origin: [0, 0.5, 0]
    spawn_radius: 0.2
    initial_velocity: [0, 3, 0]
    velocity_jitter: [0.5, 0.2, 0.5]
    start_size: 0.15
    end_size: 0.02
    gravity: [0, -9.8, 0]
    palette: ["#4488ff", "#88bbff"]
terrains:
  - name: hills
    size: [48, 10, 48]
    resolution: [48, 20, 48]
    octaves: 5
    frequency: 0.05
    lacunarity: 2.0
    gain: 0.5
    caves: true
    cave_threshold: 0.4
`

func TestParseAndLookup(t *testing.T) {
	f, err := Parse([]byte(sampleDoc))
	require.NoError(t, err)

	e, ok := f.Emitter("fountain")
	require.True(t, ok)
	assert.Equal(t, 128, e.Capacity)
	assert.Equal(t, float32(1.5), e.Lifetime)
	assert.Equal(t, [3]float32{0, 3, 0}, e.InitialVelocity)

	tr, ok := f.Terrain("hills")
	require.True(t, ok)
	assert.Equal(t, 5, tr.Octaves)
	assert.True(t, tr.Caves)

	_, ok = f.Emitter("missing")
	assert.False(t, ok)
	_, ok = f.Terrain("missing")
	assert.False(t, ok)
}

func TestParseRejectsUnknownFields(t *testing.T) {
	_, err := Parse([]byte("emitters:\n  - name: x\n    capcity: 10\n"))
	assert.Error(t, err)
}

func TestParseRejectsUnnamedPresets(t *testing.T) {
	_, err := Parse([]byte("emitters:\n  - capacity: 10\n"))
	assert.Error(t, err)
	_, err = Parse([]byte("terrains:\n  - octaves: 3\n"))
	assert.Error(t, err)
}

func TestEmitterOptionsMapping(t *testing.T) {
	f, err := Parse([]byte(sampleDoc))
	require.NoError(t, err)
	e, _ := f.Emitter("fountain")

	opts := e.Options(7)
	assert.Equal(t, int64(7), opts.Seed)
	assert.Equal(t, 128, opts.Capacity)
	assert.Equal(t, mgl32.Vec3{0, 3, 0}, opts.InitialVelocity)
	assert.Equal(t, mgl32.Vec3{0, -9.8, 0}, opts.Forces.Gravity)
	assert.Equal(t, 2, opts.ColorCount)

	// The mapped options must construct a working emitter.
	em, err := particles.New(opts)
	require.NoError(t, err)
	assert.Equal(t, 128, em.Capacity())
}

func TestTerrainOptionsMapping(t *testing.T) {
	f, err := Parse([]byte(sampleDoc))
	require.NoError(t, err)
	tr, _ := f.Terrain("hills")

	opts := tr.Options(42)
	assert.Equal(t, int64(42), opts.Seed)
	assert.Equal(t, mgl32.Vec3{48, 10, 48}, opts.Size)
	assert.Equal(t, [3]int{48, 20, 48}, opts.Resolution)
	assert.True(t, opts.Caves)
}

func TestBuiltinWeatherPresets(t *testing.T) {
	for _, name := range []string{"rain", "snow", "embers"} {
		p, ok := Weather(name)
		require.True(t, ok, name)
		assert.Equal(t, name, p.Name)

		em, err := particles.New(p.Options(1))
		require.NoError(t, err, name)
		assert.Positive(t, em.Capacity(), name)
	}
	_, ok := Weather("hail")
	assert.False(t, ok)
}

func TestPaletteColors(t *testing.T) {
	p := EmitterPreset{Palette: []string{"#ff8c2b", "ffc23d80", "bogus"}}
	colors := p.Colors()
	require.Len(t, colors, 3)
	assert.Equal(t, [4]uint8{0xff, 0x8c, 0x2b, 0xff}, colors[0])
	assert.Equal(t, [4]uint8{0xff, 0xc2, 0x3d, 0x80}, colors[1])
	assert.Equal(t, [4]uint8{255, 255, 255, 255}, colors[2])

	empty := EmitterPreset{}
	assert.Equal(t, [][4]uint8{{255, 255, 255, 255}}, empty.Colors())
}
