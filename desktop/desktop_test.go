package desktop

import (
	"testing"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/akorn123w/FishingInTheVoid/audio"
	"github.com/akorn123w/FishingInTheVoid/devtools"
	"github.com/akorn123w/FishingInTheVoid/game"
	"github.com/akorn123w/FishingInTheVoid/progression"
)

func TestSoundFor(t *testing.T) {
	tests := []struct {
		name string
		ev   game.Event
		want string
		ok   bool
	}{
		{"click", game.Event{Kind: game.EventClick}, audio.SoundClick, true},
		{"purchase", game.Event{Kind: game.EventPurchase}, audio.SoundPurchase, true},
		{"eaten", game.Event{Kind: game.EventConsumptionFinished}, audio.SoundEat, true},
		{"stage up", game.Event{Kind: game.EventStageChanged, From: progression.Dormant, To: progression.Growing}, audio.SoundStage, true},
		{"stage down", game.Event{Kind: game.EventStageChanged, From: progression.Growing, To: progression.Dormant}, "", false},
		{"rejected click", game.Event{Kind: game.EventClickRejected}, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := SoundFor(tt.ev)
			if got != tt.want || ok != tt.ok {
				t.Errorf("SoundFor = (%q, %v), want (%q, %v)", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestDevShortcut(t *testing.T) {
	tests := []struct {
		ctrl bool
		key  int32
		want devtools.Command
		ok   bool
	}{
		{true, rl.KeyC, devtools.CommandGrant, true},
		{true, rl.KeyR, devtools.CommandReset, true},
		{true, rl.KeyM, devtools.CommandMultiplier, true},
		{false, rl.KeySpace, devtools.CommandTogglePause, true},
		{false, rl.KeyC, "", false},
		{true, rl.KeyQ, "", false},
	}
	for _, tt := range tests {
		got, ok := devShortcut(tt.ctrl, tt.key)
		if got != tt.want || ok != tt.ok {
			t.Errorf("devShortcut(%v, %d) = (%q, %v), want (%q, %v)", tt.ctrl, tt.key, got, ok, tt.want, tt.ok)
		}
	}
}

func TestClickRate(t *testing.T) {
	t0 := time.Unix(100, 0)
	r := newClickRate(time.Second)
	for i := 0; i < 5; i++ {
		r.Add(t0.Add(time.Duration(i) * 100 * time.Millisecond))
	}
	if got := r.Rate(t0.Add(500 * time.Millisecond)); got != 5 {
		t.Errorf("rate = %v, want 5", got)
	}
	// The first three clicks fall out of the window
	if got := r.Rate(t0.Add(1250 * time.Millisecond)); got != 2 {
		t.Errorf("rate = %v, want 2", got)
	}
	if got := r.Rate(t0.Add(10 * time.Second)); got != 0 {
		t.Errorf("rate = %v, want 0", got)
	}
}
