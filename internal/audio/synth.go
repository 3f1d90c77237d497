// Package audio 把模拟发出的音效提示合成为 PCM 并交给 ebiten 播放
//
// 竞技场没有音频素材，所有音效都由振荡器和包络在启动时合成一次，
// 之后按提示名称缓存播放。
package audio

import (
	"encoding/binary"
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/gonewx/blockbattle/pkg/event"
)

// SampleRate 合成和播放使用的采样率
const SampleRate = 48000

// Wave 振荡器波形
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator 生成固定时长的原始波形
type oscillator struct {
	freq     float64
	sweep    float64 // 每秒频率变化量，用于下滑/上扬音
	phase    float64
	length   int
	position int
	wave     Wave
	rate     beep.SampleRate
	rng      *rand.Rand
}

func newOscillator(freq, sweep float64, d time.Duration, wave Wave, rate beep.SampleRate, rng *rand.Rand) beep.Streamer {
	return &oscillator{
		freq:   freq,
		sweep:  sweep,
		length: rate.N(d),
		wave:   wave,
		rate:   rate,
		rng:    rng,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		if o.position >= o.length {
			return i, i > 0
		}

		var v float64
		switch o.wave {
		case WaveSine:
			v = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			v = 1
			if o.phase >= 0.5 {
				v = -1
			}
		case WaveSaw:
			v = 2 * (o.phase - 0.5)
		case WaveNoise:
			v = o.rng.Float64()*2 - 1
		}
		samples[i][0] = v
		samples[i][1] = v

		t := float64(o.position) / float64(o.rate)
		f := math.Max(20, o.freq+o.sweep*t)
		o.phase += f / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope 起音/释音包络
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

func newEnvelope(s beep.Streamer, d, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer: s,
		attack:   rate.N(attack),
		release:  rate.N(release),
		total:    rate.N(d),
	}
}

func (e *envelope) Stream(samples [][2]float64) (int, bool) {
	n, ok := e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		if e.position >= e.total {
			return i, i > 0
		}
		vol := 1.0
		if e.attack > 0 && e.position < e.attack {
			vol = float64(e.position) / float64(e.attack)
		}
		if start := e.total - e.release; e.release > 0 && e.position >= start {
			vol = math.Max(0, float64(e.total-e.position)/float64(e.release))
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// withVolume 线性音量转换成 beep 的对数音量，0 为静音
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// tone 单个带包络的音
type tone struct {
	freq    float64
	sweep   float64
	wave    Wave
	length  time.Duration
	attack  time.Duration
	release time.Duration
	delay   time.Duration
	gain    float64
}

// cueTones 每个提示的音色组成
var cueTones = map[event.AudioCue][]tone{
	event.CueHit: {
		{freq: 220, sweep: -600, wave: WaveSquare, length: 70 * time.Millisecond, attack: 2 * time.Millisecond, release: 50 * time.Millisecond, gain: 0.35},
	},
	event.CueDefeat: {
		{freq: 330, sweep: -900, wave: WaveSaw, length: 220 * time.Millisecond, attack: 5 * time.Millisecond, release: 160 * time.Millisecond, gain: 0.4},
		{wave: WaveNoise, length: 120 * time.Millisecond, attack: 2 * time.Millisecond, release: 100 * time.Millisecond, gain: 0.2},
	},
	event.CueBoss: {
		{freq: 110, wave: WaveSaw, length: 600 * time.Millisecond, attack: 40 * time.Millisecond, release: 300 * time.Millisecond, gain: 0.45},
		{freq: 82.5, wave: WaveSquare, length: 600 * time.Millisecond, attack: 40 * time.Millisecond, release: 300 * time.Millisecond, gain: 0.25},
	},
	event.CueWaveComplete: {
		{freq: 523.25, wave: WaveSine, length: 160 * time.Millisecond, attack: 5 * time.Millisecond, release: 80 * time.Millisecond, gain: 0.5},
		{freq: 659.25, wave: WaveSine, length: 160 * time.Millisecond, attack: 5 * time.Millisecond, release: 80 * time.Millisecond, delay: 140 * time.Millisecond, gain: 0.5},
		{freq: 783.99, wave: WaveSine, length: 320 * time.Millisecond, attack: 5 * time.Millisecond, release: 200 * time.Millisecond, delay: 280 * time.Millisecond, gain: 0.5},
	},
	event.CuePickup: {
		{freq: 880, sweep: 1200, wave: WaveSine, length: 120 * time.Millisecond, attack: 3 * time.Millisecond, release: 60 * time.Millisecond, gain: 0.4},
	},
	event.CueExplosion: {
		{wave: WaveNoise, length: 450 * time.Millisecond, attack: 3 * time.Millisecond, release: 400 * time.Millisecond, gain: 0.6},
		{freq: 70, sweep: -60, wave: WaveSine, length: 400 * time.Millisecond, attack: 3 * time.Millisecond, release: 300 * time.Millisecond, gain: 0.5},
	},
	event.CuePlayerHit: {
		{freq: 150, sweep: -200, wave: WaveSquare, length: 140 * time.Millisecond, attack: 2 * time.Millisecond, release: 100 * time.Millisecond, gain: 0.4},
	},
	event.CueThrow: {
		{wave: WaveNoise, length: 90 * time.Millisecond, attack: 20 * time.Millisecond, release: 60 * time.Millisecond, gain: 0.25},
	},
}

// CueStreamer 返回提示对应的合成音流，长度为 CueDuration，未知提示返回 nil
func CueStreamer(cue event.AudioCue, rng *rand.Rand) beep.Streamer {
	tones, ok := cueTones[cue]
	if !ok {
		return nil
	}
	rate := beep.SampleRate(SampleRate)

	parts := make([]beep.Streamer, 0, len(tones))
	for _, t := range tones {
		osc := newOscillator(t.freq, t.sweep, t.length, t.wave, rate, rng)
		shaped := withVolume(newEnvelope(osc, t.length, t.attack, t.release, rate), t.gain)
		if t.delay > 0 {
			shaped = beep.Seq(beep.Silence(rate.N(t.delay)), shaped)
		}
		parts = append(parts, shaped)
	}
	return beep.Take(rate.N(CueDuration(cue)), beep.Mix(parts...))
}

// CueDuration 提示的总时长，未知提示为 0
func CueDuration(cue event.AudioCue) time.Duration {
	var total time.Duration
	for _, t := range cueTones[cue] {
		if end := t.delay + t.length; end > total {
			total = end
		}
	}
	return total
}

// Render 把有限长度的音流渲染成 16 位小端立体声 PCM
func Render(s beep.Streamer) []byte {
	var out []byte
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			for c := 0; c < 2; c++ {
				v := int16(math.Max(-1, math.Min(1, buf[i][c])) * math.MaxInt16)
				out = binary.LittleEndian.AppendUint16(out, uint16(v))
			}
		}
		if !ok {
			return out
		}
	}
}

// RenderCue 合成并渲染一个提示，未知提示返回 nil
func RenderCue(cue event.AudioCue, rng *rand.Rand) []byte {
	s := CueStreamer(cue, rng)
	if s == nil {
		return nil
	}
	return Render(s)
}
