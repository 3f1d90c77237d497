package audio

import (
	"bytes"
	"math/rand"
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/gonewx/blockbattle/pkg/event"
)

func TestRenderCue(t *testing.T) {
	rate := beep.SampleRate(SampleRate)
	for _, cue := range event.AllCues() {
		t.Run(string(cue), func(t *testing.T) {
			pcm := RenderCue(cue, rand.New(rand.NewSource(1)))
			if len(pcm) == 0 {
				t.Fatal("cue rendered no samples")
			}
			if len(pcm)%4 != 0 {
				t.Errorf("pcm length %d is not whole stereo frames", len(pcm))
			}
			if max := rate.N(CueDuration(cue)) * 4; len(pcm) > max {
				t.Errorf("pcm length %d exceeds cue duration (%d bytes)", len(pcm), max)
			}
			if bytes.Count(pcm, []byte{0}) == len(pcm) {
				t.Error("cue rendered pure silence")
			}
		})
	}
}

func TestRenderCueUnknown(t *testing.T) {
	if pcm := RenderCue(event.AudioCue("nope"), rand.New(rand.NewSource(1))); pcm != nil {
		t.Errorf("unknown cue should render nil, got %d bytes", len(pcm))
	}
	if d := CueDuration(event.AudioCue("nope")); d != 0 {
		t.Errorf("unknown cue duration = %v", d)
	}
}

func TestCueDuration(t *testing.T) {
	// 三个音依次延迟 140ms，最后一个长 320ms
	if got, want := CueDuration(event.CueWaveComplete), 600*time.Millisecond; got != want {
		t.Errorf("wave complete duration = %v, want %v", got, want)
	}
	if got, want := CueDuration(event.CueHit), 70*time.Millisecond; got != want {
		t.Errorf("hit duration = %v, want %v", got, want)
	}
}

func TestOscillatorLength(t *testing.T) {
	rate := beep.SampleRate(SampleRate)
	osc := newOscillator(440, 0, 10*time.Millisecond, WaveSine, rate, rand.New(rand.NewSource(1)))
	pcm := Render(osc)
	if got, want := len(pcm), rate.N(10*time.Millisecond)*4; got != want {
		t.Errorf("rendered %d bytes, want %d", got, want)
	}
}

func TestCuePlayerWithoutContext(t *testing.T) {
	p := NewCuePlayer(nil, nil)
	if p.Play(event.CueHit) {
		t.Error("player without audio context should not play")
	}
	p.Preload()
	if len(p.pcm) != len(event.AllCues()) {
		t.Errorf("preloaded %d cues, want %d", len(p.pcm), len(event.AllCues()))
	}
}
