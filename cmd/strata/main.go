// Command strata is the demo binary: procedurally generated terrain, a
// weather particle emitter, a wandering agent, and a few physics crates,
// all rendered through the raylib adapter.
//
// Controls: Tab switches the camera mode, G toggles the grid, Space bursts
// extra particles, F5/F9 save and load, F1 toggles the info panel.
package main

import (
	"fmt"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"strata/internal/audio"
	"strata/internal/debug"
	"strata/internal/engineconfig"
	"strata/internal/env"
	"strata/internal/graphics"
	"strata/internal/hud"
	"strata/internal/logger"
	"strata/internal/mcubes"
	"strata/internal/particles"
	"strata/internal/physics"
	"strata/internal/presets"
	"strata/internal/render"
	"strata/internal/savegame"
	"strata/internal/scene"
	"strata/internal/steering"
	"strata/internal/terrain"
	"strata/internal/vmath"
)

const (
	autosaveSlot = "autosave"
	worldSeed    = int64(7)
	healthRegen  = 0.05 // per second
	crateCount   = 3
)

// saveState is what the demo persists between runs.
type saveState struct {
	Seed     int64      `json:"seed"`
	Weather  string     `json:"weather"`
	AgentPos [3]float32 `json:"agent_pos"`
	Health   float32    `json:"health"`
}

// app owns everything the frame loop touches.
type app struct {
	log   *logger.Logger
	prefs engineconfig.EnginePrefs

	renderer *render.Renderer
	scene    *scene.Scene
	overlay  *debug.Overlay
	sound    *audio.Player
	store    *savegame.Store

	terrainOpts terrain.Options
	terrainMesh *mcubes.Mesh
	terrainGPU  *render.MeshHandle
	heights     *terrain.HeightSampler

	weatherName string
	emitter     *particles.Emitter
	emitterPos  mgl32.Vec3
	palette     []rl.Color

	agent *steering.Agent
	world *physics.World
	props []*physics.Body

	healthBar *hud.HealthBar
	panel     *hud.Panel
	showPanel bool
	health    float32
}

func main() {
	_ = env.Load(".env")
	log := logger.New()

	prefs, err := engineconfig.Load()
	if err != nil {
		log.Logf("config: %v", err)
	}

	a, err := newApp(log, prefs)
	if err != nil {
		log.Logf("startup failed: %v", err)
		fmt.Fprintln(os.Stderr, "startup failed:", err)
		os.Exit(1)
	}

	graphics.Run("Strata", a.update, a.draw)

	a.autosave()
	a.sound.Close()
	if err := engineconfig.Save(a.prefs); err != nil {
		log.Logf("config save: %v", err)
	}
}

// newApp builds everything that does not need a window: terrain geometry,
// the emitter, physics bodies, the agent, and HUD widgets. GPU upload waits
// for the first frame.
func newApp(log *logger.Logger, prefs engineconfig.EnginePrefs) (*app, error) {
	a := &app{
		log:       log,
		prefs:     prefs,
		renderer:  render.New(),
		scene:     scene.New(),
		overlay:   debug.New(),
		store:     savegame.NewStore(prefs.SaveDir),
		showPanel: true,
		health:    1,
	}
	a.scene.SetGridVisible(prefs.GridVisible)
	a.overlay.ShowFPS = prefs.ShowFPS
	a.overlay.ShowMemAlloc = prefs.ShowMemAlloc
	a.overlay.ShowSimStats = prefs.ShowFPS

	sound, err := audio.New(prefs.AudioEnabled, float32(prefs.MasterVolume))
	if err != nil {
		log.Logf("audio unavailable, continuing silent: %v", err)
		sound, _ = audio.New(false, 0)
	}
	a.sound = sound

	// Terrain: default hills with caves, deterministic for the fixed seed.
	a.terrainOpts = terrain.DefaultOptions()
	a.terrainOpts.Seed = worldSeed
	a.terrainOpts.Caves = true
	mesh, err := terrain.Generate(a.terrainOpts)
	if err != nil {
		return nil, fmt.Errorf("terrain: %w", err)
	}
	a.terrainMesh = mesh
	a.heights, err = terrain.NewHeightSampler(a.terrainOpts)
	if err != nil {
		return nil, fmt.Errorf("terrain sampler: %w", err)
	}
	log.Logf("terrain: %d vertices, %d triangles", mesh.VertexCount(), mesh.TriangleCount())

	if err := a.setupWeather(); err != nil {
		return nil, err
	}
	a.setupAgentAndProps()

	a.healthBar = hud.NewHealthBar(12, 12, 220, 20)
	a.panel = hud.NewPanel(12, 44)

	if a.store.Exists(autosaveSlot) {
		a.loadGame()
	}
	return a, nil
}

// setupWeather builds the particle emitter from a built-in weather preset,
// overridable by name via STRATA_WEATHER and by content via a preset file.
func (a *app) setupWeather() error {
	a.weatherName = os.Getenv("STRATA_WEATHER")
	if a.weatherName == "" {
		a.weatherName = "snow"
	}
	preset, ok := presets.Weather(a.weatherName)
	if !ok {
		a.log.Logf("unknown weather %q, using snow", a.weatherName)
		a.weatherName = "snow"
		preset, _ = presets.Weather(a.weatherName)
	}
	if file, err := presets.Load("config/presets.yaml"); err == nil {
		if p, ok := file.Emitter(a.weatherName); ok {
			preset = p
			a.log.Logf("weather %q loaded from preset file", a.weatherName)
		}
	}

	em, err := particles.New(preset.Options(worldSeed))
	if err != nil {
		return fmt.Errorf("weather emitter: %w", err)
	}
	a.emitter = em
	a.emitterPos = mgl32.Vec3(preset.Origin)
	for _, c := range preset.Colors() {
		a.palette = append(a.palette, rl.NewColor(c[0], c[1], c[2], c[3]))
	}
	a.log.Logf("weather: %s, pool capacity %d", a.weatherName, em.Capacity())
	return nil
}

// setupAgentAndProps places the wandering agent and drops a few crates, each
// with a static ground pad at the sampled terrain height under it.
func (a *app) setupAgentAndProps() {
	start := mgl32.Vec3{0, a.heights.At(0, 0), 0}
	a.agent = steering.NewAgent(start, 2.5, 5, worldSeed)

	a.world = physics.NewWorld()
	for i := 0; i < crateCount; i++ {
		x := float32(i*4 - 4)
		z := float32(3 + i)
		ground := a.heights.At(x, z)

		pad := physics.NewBody(mgl32.Vec3{x, ground - 0.25, z}, mgl32.Vec3{2, 0.5, 2}, 1, true)
		crate := physics.NewBody(mgl32.Vec3{x, ground + 4 + float32(i), z}, mgl32.Vec3{1, 1, 1}, 1, false)
		a.world.AddBody(pad)
		a.world.AddBody(crate)
		a.props = append(a.props, crate)
	}
}

func (a *app) update(dt float32) {
	a.handleInput()
	a.scene.Update()

	a.emitter.Update(dt)
	a.world.Step(dt)

	// The agent wanders the XZ plane and is pinned to the terrain surface.
	a.agent.Apply(a.agent.Wander(2, 1, 0.25), dt)
	a.agent.Position[1] = a.heights.At(a.agent.Position.X(), a.agent.Position.Z())

	a.health = vmath.Clamp01(a.health + healthRegen*dt)

	a.renderer.SetView(a.scene.ViewPos(), [3]float32{0.5, 1, 0.5})
	a.overlay.SetSimStats(a.emitter.ActiveCount(), a.terrainMesh.TriangleCount())
	a.healthBar.Fraction = a.health
	if a.showPanel {
		a.panel.SetLines(
			fmt.Sprintf("weather: %s  particles: %d/%d", a.weatherName, a.emitter.ActiveCount(), a.emitter.Capacity()),
			fmt.Sprintf("agent: (%.1f, %.1f)", a.agent.Position.X(), a.agent.Position.Z()),
			"tab camera  g grid  space burst  f5 save  f9 load",
		)
	}
}

func (a *app) handleInput() {
	if rl.IsKeyPressed(rl.KeyTab) {
		if a.scene.Mode == scene.ModeFree {
			a.scene.Mode = scene.ModeOrbit
		} else {
			a.scene.Mode = scene.ModeFree
		}
	}
	if rl.IsKeyPressed(rl.KeyG) {
		a.prefs.GridVisible = !a.prefs.GridVisible
		a.scene.SetGridVisible(a.prefs.GridVisible)
	}
	if rl.IsKeyPressed(rl.KeyF1) {
		a.showPanel = !a.showPanel
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		a.emitter.EmitBurst(64)
		dist := a.emitterPos.Sub(mgl32.Vec3(a.scene.ViewPos())).Len()
		_ = a.sound.PlayToneAt(220, 80*time.Millisecond, dist)
	}
	if rl.IsKeyPressed(rl.KeyH) {
		a.health = vmath.Clamp01(a.health - 0.25)
	}
	if rl.IsKeyPressed(rl.KeyF5) {
		a.autosave()
		_ = a.sound.PlayTone(880, 100*time.Millisecond)
	}
	if rl.IsKeyPressed(rl.KeyF9) {
		a.loadGame()
		_ = a.sound.PlayTone(440, 100*time.Millisecond)
	}
}

func (a *app) draw() {
	// GPU upload needs the GL context, so it happens on the first frame.
	if a.terrainGPU == nil {
		h, err := a.renderer.Upload(a.terrainMesh)
		if err != nil {
			a.log.Logf("terrain upload: %v", err)
			rl.DrawText("terrain upload failed, see log", 12, 12, 20, rl.Red)
			return
		}
		a.terrainGPU = h
	}

	a.scene.Draw(func() {
		a.renderer.DrawMesh(a.terrainGPU, [3]float32{0, 0, 0}, rl.NewColor(96, 140, 92, 255))
		a.renderer.DrawEmitter(a.emitter, a.palette)

		for _, crate := range a.props {
			p := crate.Position
			rl.DrawCube(rl.NewVector3(p.X(), p.Y(), p.Z()), crate.Scale.X(), crate.Scale.Y(), crate.Scale.Z(), rl.NewColor(170, 120, 70, 255))
			rl.DrawCubeWires(rl.NewVector3(p.X(), p.Y(), p.Z()), crate.Scale.X(), crate.Scale.Y(), crate.Scale.Z(), rl.Brown)
		}

		ap := a.agent.Position
		rl.DrawSphere(rl.NewVector3(ap.X(), ap.Y()+0.3, ap.Z()), 0.3, rl.NewColor(230, 200, 80, 255))
	})

	a.healthBar.Draw()
	if a.showPanel {
		a.panel.Draw()
	}
	a.overlay.Draw()
}

func (a *app) autosave() {
	state := saveState{
		Seed:     worldSeed,
		Weather:  a.weatherName,
		AgentPos: [3]float32(a.agent.Position),
		Health:   a.health,
	}
	if err := a.store.Save(autosaveSlot, state); err != nil {
		a.log.Logf("save: %v", err)
		return
	}
	a.log.Logf("saved slot %q", autosaveSlot)
}

func (a *app) loadGame() {
	var state saveState
	if err := a.store.Load(autosaveSlot, &state); err != nil {
		a.log.Logf("load: %v", err)
		return
	}
	a.agent.Position = mgl32.Vec3(state.AgentPos)
	a.health = vmath.Clamp01(state.Health)
	a.log.Logf("loaded slot %q", autosaveSlot)
}
