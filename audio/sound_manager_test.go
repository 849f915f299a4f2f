package audio

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"

	"github.com/akorn123w/FishingInTheVoid/config"
)

func writeWav(t *testing.T, rate beep.SampleRate, d time.Duration) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tone.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	format := beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2}
	if err := wav.Encode(f, NewChime(rate, 440, d), format); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return path
}

func testConfig() config.AudioConfig {
	return config.AudioConfig{Enabled: true, MasterVolume: 0.5, SampleRate: 44100}
}

func TestChimeLength(t *testing.T) {
	rate := beep.SampleRate(44100)
	c := NewChime(rate, 440, 100*time.Millisecond)

	samples := make([][2]float64, 1000)
	total := 0
	for {
		n, ok := c.Stream(samples)
		total += n
		if !ok {
			break
		}
		for i := 0; i < n; i++ {
			if samples[i][0] < -1 || samples[i][0] > 1 {
				t.Fatalf("sample %d out of range: %f", i, samples[i][0])
			}
		}
	}
	if want := rate.N(100 * time.Millisecond); total != want {
		t.Errorf("streamed %d samples, want %d", total, want)
	}
}

func TestLoadWav(t *testing.T) {
	sm := NewSoundManager(testConfig())
	path := writeWav(t, 44100, 50*time.Millisecond)

	if err := sm.Load(SoundClick, path); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got, want := sm.Len(SoundClick), beep.SampleRate(44100).N(50*time.Millisecond); got != want {
		t.Errorf("len = %d, want %d", got, want)
	}
}

func TestLoadResamples(t *testing.T) {
	sm := NewSoundManager(testConfig())
	path := writeWav(t, 22050, 100*time.Millisecond)

	if err := sm.Load(SoundEat, path); err != nil {
		t.Fatalf("Load: %v", err)
	}
	// Twice the source samples, within resampler slack
	want := beep.SampleRate(44100).N(100 * time.Millisecond)
	if got := sm.Len(SoundEat); got < want-32 || got > want+32 {
		t.Errorf("resampled len = %d, want ~%d", got, want)
	}
}

func TestLoadErrors(t *testing.T) {
	sm := NewSoundManager(testConfig())

	if err := sm.Load("missing", filepath.Join(t.TempDir(), "nope.wav")); !errors.Is(err, ErrLoad) {
		t.Errorf("missing file err = %v, want ErrLoad", err)
	}

	bad := filepath.Join(t.TempDir(), "bad.wav")
	os.WriteFile(bad, []byte("not a wav file"), 0644)
	if err := sm.Load("bad", bad); !errors.Is(err, ErrLoad) {
		t.Errorf("bad file err = %v, want ErrLoad", err)
	}
}

func TestLoadAllFallsBack(t *testing.T) {
	sm := NewSoundManager(testConfig())
	good := writeWav(t, 44100, 20*time.Millisecond)

	n := sm.LoadAll(map[string]string{
		SoundClick:    good,
		SoundPurchase: filepath.Join(t.TempDir(), "missing.wav"),
	})
	if n != 1 {
		t.Errorf("loaded = %d, want 1", n)
	}
	for _, name := range []string{SoundClick, SoundPurchase, SoundEat, SoundStage} {
		if !sm.Has(name) {
			t.Errorf("sound %q not registered", name)
		}
	}
}

func TestPlayBeforeInitialize(t *testing.T) {
	sm := NewSoundManager(testConfig())
	sm.LoadAll(nil)
	// Must not panic or touch the speaker
	sm.Play(SoundClick)
	sm.Play("unknown")
	sm.Cleanup()
}

func TestSetVolumeClamps(t *testing.T) {
	sm := NewSoundManager(config.AudioConfig{MasterVolume: 0.5, SampleRate: 44100})
	if sm.Volume() != 0.5 {
		t.Fatalf("volume = %v, want 0.5", sm.Volume())
	}
	sm.SetVolume(3)
	if sm.Volume() != 1 {
		t.Errorf("volume = %v, want 1", sm.Volume())
	}
	sm.SetVolume(-1)
	if sm.Volume() != 0 {
		t.Errorf("volume = %v, want 0", sm.Volume())
	}
}
