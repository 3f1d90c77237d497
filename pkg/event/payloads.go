package event

import (
	"github.com/gonewx/blockbattle/pkg/ecs"
	"github.com/gonewx/blockbattle/pkg/types"
)

// HealthPayload 玩家血量百分比 (0~100)
type HealthPayload struct {
	Percent float64
}

// WavePayload 当前波次
type WavePayload struct {
	Wave     int
	Complete bool
}

// BossHealthPayload 首领血量百分比，没有首领时为 100
type BossHealthPayload struct {
	Percent float64
}

// PointsPayload 积分总数
type PointsPayload struct {
	Total int
}

// BuffPayload 当前增益标签和剩余秒数（向上取整），无增益时 Label 为 "None"
// Note 是拾取或到期时的一次性说明，例如 "Picked up Tornado"
type BuffPayload struct {
	Label   string
	Seconds int
	Note    string
}

// MessagePayload 横幅提示
type MessagePayload struct {
	Text     string
	Duration float64 // 秒
}

// DebugCounters 调试计数
type DebugCounters struct {
	Wave            int     `json:"wave"`
	Complete        bool    `json:"complete"`
	Pending         int     `json:"pending"`
	BossSpawned     bool    `json:"bossSpawned"`
	Enemies         int     `json:"enemies"`
	Alive           int     `json:"alive"`
	NonBossAlive    int     `json:"nonBossAlive"`
	Spawned         int     `json:"spawned"`
	Defeated        int     `json:"defeated"`
	NonBossSpawned  int     `json:"nonBossSpawned"`
	NonBossDefeated int     `json:"nonBossDefeated"`
	BossAlive       bool    `json:"bossAlive"`
	Elapsed         float64 `json:"elapsed"`
	Grace           float64 `json:"grace"`
}

// DebugPayload 调试 HUD 内容
type DebugPayload struct {
	Text     string
	Counters DebugCounters
}

// WeaponPayload 装备栏状态
type WeaponPayload struct {
	Primary        string
	PrimaryLevel   int
	Secondary      string
	SecondaryLevel int
	Active         types.WeaponSlot
}

// AmmoPayload 弹药数
type AmmoPayload struct {
	Spear int
	Bombs int
}

// GameOverPayload 玩家死亡
type GameOverPayload struct {
	Wave int
}

// ArmoryStage 军械库选择阶段
type ArmoryStage string

const (
	ArmoryPrimary   ArmoryStage = "primary"
	ArmorySecondary ArmoryStage = "secondary"
	ArmoryClosed    ArmoryStage = "closed"
)

// ArmoryPayload 军械库界面状态
type ArmoryPayload struct {
	Stage   ArmoryStage
	Options []string
}

// MarkerPayload 长矛插入后的一次性标记
type MarkerPayload struct {
	Entity   ecs.EntityID
	Position types.Vec3
}

// FlashPayload 材质闪烁请求，Active 为 false 表示恢复
type FlashPayload struct {
	Entity   ecs.EntityID
	Active   bool
	Duration float64
}

// PosePayload 玩家姿态变化
type PosePayload struct {
	Entity  ecs.EntityID
	Toppled bool
}

// AudioCue 音效提示
type AudioCue string

const (
	CueHit          AudioCue = "hit"
	CueDefeat       AudioCue = "defeat"
	CueBoss         AudioCue = "boss"
	CueWaveComplete AudioCue = "wave_complete"
	CuePickup       AudioCue = "pickup"
	CueExplosion    AudioCue = "explosion"
	CuePlayerHit    AudioCue = "player_hit"
	CueThrow        AudioCue = "throw"
)

// AllCues 返回全部音效提示
func AllCues() []AudioCue {
	return []AudioCue{CueHit, CueDefeat, CueBoss, CueWaveComplete, CuePickup, CueExplosion, CuePlayerHit, CueThrow}
}

// AudioCuePayload 音效提示
type AudioCuePayload struct {
	Cue AudioCue
}
