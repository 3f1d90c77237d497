package audio

import (
	"log"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/gonewx/blockbattle/pkg/event"
	"github.com/gonewx/blockbattle/pkg/game"
)

// CuePlayer 音效播放器
//
// 职责：
//   - 订阅 EventAudioCue，把提示映射为合成音效并播放
//   - 从 SettingsManager 读取音效开关和音量
//
// 每个提示在首次播放时合成一次，之后复用同一份 PCM
type CuePlayer struct {
	context  *audio.Context
	settings *game.SettingsManager
	rng      *rand.Rand

	pcm     map[event.AudioCue][]byte
	players map[event.AudioCue]*audio.Player
}

// NewCuePlayer 创建音效播放器
//
// 参数：
//   - ctx: ebiten 音频上下文，采样率必须为 SampleRate；nil 时所有播放请求被忽略
//   - settings: 设置管理器，可为 nil
func NewCuePlayer(ctx *audio.Context, settings *game.SettingsManager) *CuePlayer {
	return &CuePlayer{
		context:  ctx,
		settings: settings,
		rng:      rand.New(rand.NewSource(1)),
		pcm:      make(map[event.AudioCue][]byte),
		players:  make(map[event.AudioCue]*audio.Player),
	}
}

// Attach 订阅事件分发器上的音效提示
func (p *CuePlayer) Attach(d *event.Dispatcher) event.Subscription {
	return d.Subscribe(event.EventAudioCue, p)
}

// OnEvent 实现 event.Listener
func (p *CuePlayer) OnEvent(e event.Event) {
	payload, ok := e.Data.(event.AudioCuePayload)
	if !ok {
		return
	}
	p.Play(payload.Cue)
}

// Play 播放提示音效
//
// 返回：
//   - bool: 是否实际播放
func (p *CuePlayer) Play(cue event.AudioCue) bool {
	if p.context == nil {
		return false
	}
	volume := 1.0
	if p.settings != nil {
		s := p.settings.Settings()
		if !s.SoundEnabled {
			return false
		}
		volume = s.SoundVolume
	}

	player := p.player(cue)
	if player == nil {
		return false
	}
	player.SetVolume(volume)
	if err := player.Rewind(); err != nil {
		log.Printf("[CuePlayer] Warning: failed to rewind %s: %v", cue, err)
	}
	player.Play()
	return true
}

// Preload 预先合成全部提示
func (p *CuePlayer) Preload() {
	for _, cue := range event.AllCues() {
		p.samples(cue)
	}
	log.Printf("[CuePlayer] Synthesized %d cues", len(p.pcm))
}

func (p *CuePlayer) samples(cue event.AudioCue) []byte {
	if pcm, ok := p.pcm[cue]; ok {
		return pcm
	}
	pcm := RenderCue(cue, p.rng)
	if pcm != nil {
		p.pcm[cue] = pcm
	}
	return pcm
}

func (p *CuePlayer) player(cue event.AudioCue) *audio.Player {
	if player, ok := p.players[cue]; ok {
		return player
	}
	pcm := p.samples(cue)
	if pcm == nil {
		log.Printf("[CuePlayer] Warning: unknown cue %q", cue)
		return nil
	}
	player := p.context.NewPlayerFromBytes(pcm)
	p.players[cue] = player
	return player
}
