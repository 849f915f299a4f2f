// Package audio plays short sound effects through a single beep mixer.
package audio

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"

	"github.com/akorn123w/FishingInTheVoid/config"
)

var ErrLoad = errors.New("audio load failed")

// Sound names used by the game.
const (
	SoundClick    = "click"
	SoundPurchase = "purchase"
	SoundEat      = "eat"
	SoundStage    = "stage"
)

// fallbackTones are the chime pitches used when a sound file is missing.
var fallbackTones = map[string]float64{
	SoundClick:    880,
	SoundPurchase: 660,
	SoundEat:      330,
	SoundStage:    523.25,
}

// SoundManager owns decoded sounds and the output mixer.
type SoundManager struct {
	mu          sync.Mutex
	rate        beep.SampleRate
	volume      float64
	mixer       *beep.Mixer
	buffers     map[string]*beep.Buffer
	initialized bool
}

// NewSoundManager creates a manager for cfg. Nothing plays until Initialize.
func NewSoundManager(cfg config.AudioConfig) *SoundManager {
	rate := cfg.SampleRate
	if rate <= 0 {
		rate = 44100
	}
	return &SoundManager{
		rate:    beep.SampleRate(rate),
		volume:  min(max(cfg.MasterVolume, 0), 1),
		mixer:   &beep.Mixer{},
		buffers: make(map[string]*beep.Buffer),
	}
}

// Initialize opens the speaker and starts the mixer.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if err := speaker.Init(sm.rate, sm.rate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("initializing speaker: %w", err)
	}
	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup silences everything. beep has no speaker close; clearing the
// mixer stops all output.
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	sm.initialized = false
}

func (sm *SoundManager) format() beep.Format {
	return beep.Format{SampleRate: sm.rate, NumChannels: 2, Precision: 2}
}

// Load decodes a wav file into memory under name, resampling to the
// manager's rate. Errors wrap ErrLoad.
func (sm *SoundManager) Load(name, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrLoad, name, err)
	}
	defer f.Close()

	stream, format, err := wav.Decode(f)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrLoad, name, err)
	}
	defer stream.Close()

	var s beep.Streamer = stream
	if format.SampleRate != sm.rate {
		s = beep.Resample(4, format.SampleRate, sm.rate, stream)
	}
	buf := beep.NewBuffer(sm.format())
	buf.Append(s)
	if err := stream.Err(); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrLoad, name, err)
	}

	sm.mu.Lock()
	sm.buffers[name] = buf
	sm.mu.Unlock()
	return nil
}

// LoadAll loads every named file. A file that fails is logged and replaced
// by a generated chime so play never breaks. Returns how many files loaded.
func (sm *SoundManager) LoadAll(sounds map[string]string) int {
	loaded := 0
	for name, path := range sounds {
		if err := sm.Load(name, path); err != nil {
			slog.Warn("sound unavailable, using generated tone", "sound", name, "path", path, "error", err)
			sm.useChime(name)
			continue
		}
		loaded++
	}
	for name := range fallbackTones {
		if !sm.Has(name) {
			sm.useChime(name)
		}
	}
	return loaded
}

func (sm *SoundManager) useChime(name string) {
	freq, ok := fallbackTones[name]
	if !ok {
		freq = 440
	}
	buf := beep.NewBuffer(sm.format())
	buf.Append(NewChime(sm.rate, freq, 120*time.Millisecond))

	sm.mu.Lock()
	sm.buffers[name] = buf
	sm.mu.Unlock()
}

// Has reports whether a sound is registered under name.
func (sm *SoundManager) Has(name string) bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	_, ok := sm.buffers[name]
	return ok
}

// Len returns the length of a sound in samples, or 0 if unknown.
func (sm *SoundManager) Len(name string) int {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if buf, ok := sm.buffers[name]; ok {
		return buf.Len()
	}
	return 0
}

// Volume returns the master volume in [0, 1].
func (sm *SoundManager) Volume() float64 {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.volume
}

// SetVolume sets the master volume for sounds started afterwards.
func (sm *SoundManager) SetVolume(v float64) {
	sm.mu.Lock()
	sm.volume = min(max(v, 0), 1)
	sm.mu.Unlock()
}

// Play starts a sound. Unknown names and an uninitialized speaker are no-ops.
func (sm *SoundManager) Play(name string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || sm.volume == 0 {
		return
	}
	buf, ok := sm.buffers[name]
	if !ok {
		return
	}
	vol := &effects.Volume{
		Streamer: buf.Streamer(0, buf.Len()),
		Base:     2,
		Volume:   math.Log2(sm.volume),
	}
	speaker.Lock()
	sm.mixer.Add(vol)
	speaker.Unlock()
}

// Chime is a decaying sine tone.
type Chime struct {
	sr    beep.SampleRate
	freq  float64
	pos   int
	total int
}

// NewChime creates a chime of the given pitch and length.
func NewChime(sr beep.SampleRate, freq float64, d time.Duration) *Chime {
	return &Chime{sr: sr, freq: freq, total: sr.N(d)}
}

func (c *Chime) Stream(samples [][2]float64) (n int, ok bool) {
	if c.pos >= c.total {
		return 0, false
	}
	for i := range samples {
		if c.pos >= c.total {
			return i, true
		}
		t := float64(c.pos) / float64(c.sr)
		env := 1 - float64(c.pos)/float64(c.total)
		v := 0.3 * env * env * math.Sin(2*math.Pi*c.freq*t)
		samples[i][0] = v
		samples[i][1] = v
		c.pos++
	}
	return len(samples), true
}

func (c *Chime) Err() error {
	return nil
}
