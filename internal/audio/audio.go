// Package audio is a thin wrapper over beep's speaker: generated tones with
// gain derived from listener distance. The speaker mixes concurrently
// playing streams itself; this package only shapes what goes in.
package audio

import (
	"fmt"
	"time"

	"github.com/chewxy/math32"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"strata/internal/vmath"
)

const sampleRate = beep.SampleRate(44100)

// Player plays short generated tones. Disabled players accept every call
// and do nothing, so callers never need to branch on an audio flag.
type Player struct {
	enabled      bool
	masterVolume float32

	// Distance fade: full volume at <= fadeStart world units from the
	// listener, silent at >= fadeEnd.
	fadeStart float32
	fadeEnd   float32
}

// New initializes the speaker and returns a player. With enabled false the
// speaker is not touched and the player is a no-op.
func New(enabled bool, masterVolume float32) (*Player, error) {
	p := &Player{
		enabled:      enabled,
		masterVolume: vmath.Clamp01(masterVolume),
		fadeStart:    4,
		fadeEnd:      40,
	}
	if !enabled {
		return p, nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return nil, fmt.Errorf("audio: speaker init: %w", err)
	}
	return p, nil
}

// SetMasterVolume sets the overall gain, clamped to [0,1].
func (p *Player) SetMasterVolume(v float32) {
	p.masterVolume = vmath.Clamp01(v)
}

// SetDistanceFade sets the distance range over which positional tones fade
// out. Invalid ranges (end <= start) leave the current range unchanged.
func (p *Player) SetDistanceFade(start, end float32) {
	if end <= start {
		return
	}
	p.fadeStart = start
	p.fadeEnd = end
}

// PlayTone plays a sine tone of the given frequency for the given duration
// at the master volume.
func (p *Player) PlayTone(freq float64, duration time.Duration) error {
	return p.play(freq, duration, p.masterVolume)
}

// PlayToneAt plays a tone attenuated by the distance between the sound and
// the listener. Beyond the fade range the tone is dropped entirely instead
// of queueing silence.
func (p *Player) PlayToneAt(freq float64, duration time.Duration, distance float32) error {
	gain := p.masterVolume * vmath.Fade(distance, p.fadeStart, p.fadeEnd)
	if gain <= 0 {
		return nil
	}
	return p.play(freq, duration, gain)
}

func (p *Player) play(freq float64, duration time.Duration, gain float32) error {
	if !p.enabled || gain <= 0 {
		return nil
	}
	tone, err := generators.SineTone(sampleRate, freq)
	if err != nil {
		return fmt.Errorf("audio: tone %vHz: %w", freq, err)
	}
	// beep volume is exponential: Volume is the log2 of the linear gain.
	shaped := &effects.Volume{
		Streamer: beep.Take(sampleRate.N(duration), tone),
		Base:     2,
		Volume:   float64(math32.Log2(gain)),
	}
	speaker.Play(shaped)
	return nil
}

// Close releases the speaker. Safe to call on a disabled player.
func (p *Player) Close() {
	if p.enabled {
		speaker.Close()
	}
}
